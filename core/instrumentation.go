package tutor

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const scopeName = "github.com/koscakluka/ema-tutor/core"

var (
	tracer = otel.Tracer(scopeName)
	meter  = otel.Meter(scopeName)
	logger = otelslog.NewLogger(scopeName)
)

var (
	narrationCounter, _ = meter.Int64Counter("tutor.narrations",
		metric.WithDescription("Steps and feedback lines handed to the synthesizer"))
	listenCounter, _ = meter.Int64Counter("tutor.listens",
		metric.WithDescription("Recognition attempts started while waiting for an answer"))
	answerCounter, _ = meter.Int64Counter("tutor.answers",
		metric.WithDescription("Judged answers by outcome"))
	staleCounter, _ = meter.Int64Counter("tutor.stale_updates",
		metric.WithDescription("State updates and events dropped because their generation ended"))
)
