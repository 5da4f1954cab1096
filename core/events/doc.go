// Package events defines the typed event contract emitted while a lesson
// script plays.
//
// Event kinds are grouped by receiver-facing namespaces:
//
//   - playback.*
//   - step.*
//   - answer.*
//   - lesson.*
//
// Every event carries the playback generation it belongs to. Receivers that
// restart playback can drop events whose generation is older than the one
// they started.
//
// playback events
//
//   - PlaybackStarted (playback.started): a new session started at step 0.
//   - PlaybackEnded (playback.ended): the last step finished naturally.
//   - PlaybackStopped (playback.stopped): playback was stopped or pre-empted
//     before reaching the end.
//
// step events
//
//   - StepNarrationStarted (step.narration_started): the step text is being
//     spoken.
//   - StepNarrationEnded (step.narration_ended): narration finished or failed;
//     Err is set on failure.
//
// answer events
//
//   - AnswerWaiting (answer.waiting): a question step is waiting for an answer.
//   - ListeningStarted (answer.listening_started): one recognition attempt
//     started.
//   - AnswerRecognized (answer.recognized): an utterance or typed answer was
//     received.
//   - AnswerMatched (answer.matched): the answer satisfied the expected one.
//   - AnswerMismatched (answer.mismatched): the answer was wrong and the
//     learner is encouraged to retry.
//   - RecognitionFailed (answer.recognition_failed): recognition produced an
//     error and will be retried.
//   - AnswerAttemptsExhausted (answer.attempts_exhausted): the configured
//     attempt limit was reached and playback moved on.
//
// lesson events
//
//   - LessonAnswerChecked (lesson.answer_checked): a lesson question was
//     graded.
//   - LessonCompleted (lesson.completed): the learner answered the last
//     question.
package events
