package deepgram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"

	api "github.com/deepgram/deepgram-go-sdk/pkg/api/listen/v1/websocket/interfaces"
	"github.com/gorilla/websocket"
	"github.com/koscakluka/ema-tutor/core/audio"
	"github.com/koscakluka/ema-tutor/core/speechtotext"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const defaultBaseURL = "wss://api.deepgram.com/v1/listen"

const typeErrorResponse api.TypeResponse = "Error"

// errDeepgram marks an Error frame. It ends the recognition.
var errDeepgram = errors.New("deepgram error")

// AudioInput captures microphone audio until StopCapture is called.
type AudioInput interface {
	EncodingInfo() audio.EncodingInfo
	StartCapture(ctx context.Context, onAudio func(audio []byte)) error
	StopCapture() error
}

// TranscriptionClient recognizes one utterance per Recognize call over
// Deepgram's live listen websocket.
type TranscriptionClient struct {
	apiKey      string
	baseURL     string
	model       string
	endpointing int
	dialer      *websocket.Dialer
	input       AudioInput
}

type ClientOption func(*TranscriptionClient)

func WithAPIKey(apiKey string) ClientOption {
	return func(c *TranscriptionClient) { c.apiKey = apiKey }
}

func WithBaseURL(baseURL string) ClientOption {
	return func(c *TranscriptionClient) { c.baseURL = baseURL }
}

func WithModel(model string) ClientOption {
	return func(c *TranscriptionClient) {
		if model != "" {
			c.model = model
		}
	}
}

// WithEndpointing sets how many milliseconds of silence end an utterance.
func WithEndpointing(ms int) ClientOption {
	return func(c *TranscriptionClient) {
		if ms > 0 {
			c.endpointing = ms
		}
	}
}

func WithDialer(dialer *websocket.Dialer) ClientOption {
	return func(c *TranscriptionClient) {
		if dialer != nil {
			c.dialer = dialer
		}
	}
}

// NewTranscriptionClient builds a client listening on input. The API key
// defaults to DEEPGRAM_API_KEY.
func NewTranscriptionClient(input AudioInput, opts ...ClientOption) (*TranscriptionClient, error) {
	client := &TranscriptionClient{
		baseURL:     defaultBaseURL,
		model:       "nova-3",
		endpointing: 300,
		dialer:      websocket.DefaultDialer,
		input:       input,
	}
	client.apiKey, _ = os.LookupEnv("DEEPGRAM_API_KEY")

	for _, opt := range opts {
		opt(client)
	}

	if client.apiKey == "" {
		return nil, fmt.Errorf("deepgram api key not found")
	}

	return client, nil
}

type recognitionResult struct {
	transcript string
	err        error
}

// Recognize streams microphone audio until Deepgram reports the end of one
// utterance and returns its normalized transcript.
func (c *TranscriptionClient) Recognize(ctx context.Context, opts ...speechtotext.RecognizeOption) (string, error) {
	if c.input == nil {
		return "", speechtotext.ErrUnavailable
	}
	options := speechtotext.NewRecognizeOptions(opts...)

	encoding, err := convertEncoding(c.input.EncodingInfo())
	if err != nil {
		return "", fmt.Errorf("invalid encoding: %w", err)
	}

	ctx, span := tracer.Start(ctx, "recognize utterance")
	defer span.End()
	span.SetAttributes(attribute.String("locale", options.Locale))

	listenCtx := ctx
	if options.Timeout > 0 {
		var cancel context.CancelFunc
		listenCtx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	conn, err := c.connect(listenCtx, encoding, options.Locale)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	var writeMu sync.Mutex
	closed := false
	send := func(chunk []byte) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if closed {
			return
		}
		if err := conn.WriteMessage(websocket.BinaryMessage, chunk); err != nil {
			logger.Debug("failed to write audio to deepgram", "error", err)
		}
	}

	if err := c.input.StartCapture(listenCtx, send); err != nil {
		conn.Close()
		err = fmt.Errorf("%w: %v", speechtotext.ErrUnavailable, err)
		span.RecordError(err)
		return "", err
	}

	defer func() {
		if err := c.input.StopCapture(); err != nil {
			logger.Warn("failed to stop audio capture", "error", err)
		}
		writeMu.Lock()
		closed = true
		if err := conn.WriteJSON(struct {
			Type string `json:"type"`
		}{Type: string(api.TypeCloseStreamResponse)}); err != nil {
			logger.Debug("failed to close deepgram stream", "error", err)
		}
		writeMu.Unlock()
		conn.Close()
	}()

	results := make(chan recognitionResult, 1)
	go readUtterance(conn, results)

	select {
	case result := <-results:
		if result.err != nil {
			span.RecordError(result.err)
			span.SetStatus(codes.Error, result.err.Error())
			return "", result.err
		}
		return speechtotext.Normalize(result.transcript), nil
	case <-listenCtx.Done():
		if ctx.Err() == nil {
			return "", speechtotext.ErrNoSpeech
		}
		return "", ctx.Err()
	}
}

func (c *TranscriptionClient) connect(ctx context.Context, encoding *encodingInfo, locale string) (*websocket.Conn, error) {
	listenURL, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid deepgram url: %w", err)
	}
	queryParams := listenURL.Query()
	queryParams.Set("encoding", encoding.Format.Name())
	queryParams.Set("sample_rate", strconv.Itoa(encoding.SampleRate))
	queryParams.Set("channels", strconv.Itoa(encoding.Channels))
	queryParams.Set("model", c.model)
	queryParams.Set("language", locale)
	queryParams.Set("smart_format", "true")
	queryParams.Set("interim_results", "false")
	queryParams.Set("endpointing", strconv.Itoa(c.endpointing))
	listenURL.RawQuery = queryParams.Encode()

	conn, _, err := c.dialer.DialContext(ctx, listenURL.String(),
		http.Header{"Authorization": {"Token " + c.apiKey}})
	if err != nil {
		return nil, fmt.Errorf("failed to open socket connection to deepgram: %w", err)
	}

	return conn, nil
}

func readUtterance(conn *websocket.Conn, results chan<- recognitionResult) {
	collector := utteranceCollector{}
	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if transcript := collector.transcript(); transcript != "" {
				results <- recognitionResult{transcript: transcript}
				return
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				results <- recognitionResult{err: speechtotext.ErrNoSpeech}
				return
			}
			results <- recognitionResult{err: fmt.Errorf("failed to read deepgram message: %w", err)}
			return
		}
		if msgType == websocket.BinaryMessage {
			continue
		}

		transcript, done, err := collector.handle(msg)
		if errors.Is(err, errDeepgram) {
			results <- recognitionResult{err: err}
			return
		}
		if err != nil {
			logger.Warn("failed to handle deepgram message", "error", err)
			continue
		}
		if done {
			results <- recognitionResult{transcript: transcript}
			return
		}
	}
}

// utteranceCollector accumulates final segments until Deepgram marks the end
// of the utterance.
type utteranceCollector struct {
	segments []string
}

func (u *utteranceCollector) transcript() string {
	return strings.TrimSpace(strings.Join(u.segments, " "))
}

func (u *utteranceCollector) handle(msg []byte) (string, bool, error) {
	var parsedMsg struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(msg, &parsedMsg); err != nil {
		return "", false, fmt.Errorf("failed to unmarshal deepgram message: %w", err)
	}

	switch api.TypeResponse(parsedMsg.Type) {
	case api.TypeMessageResponse:
		var msgResp api.MessageResponse
		if err := json.Unmarshal(msg, &msgResp); err != nil {
			return "", false, fmt.Errorf("failed to unmarshal deepgram results: %w", err)
		}
		if !msgResp.IsFinal {
			return "", false, nil
		}
		if len(msgResp.Channel.Alternatives) > 0 {
			if segment := strings.TrimSpace(msgResp.Channel.Alternatives[0].Transcript); segment != "" {
				u.segments = append(u.segments, segment)
			}
		}
		if msgResp.SpeechFinal && len(u.segments) > 0 {
			return u.transcript(), true, nil
		}

	case api.TypeUtteranceEndResponse:
		if len(u.segments) > 0 {
			return u.transcript(), true, nil
		}

	case typeErrorResponse:
		var errResp api.ErrorResponse
		if err := json.Unmarshal(msg, &errResp); err != nil || errResp.Description == "" {
			return "", false, fmt.Errorf("%w: %s", errDeepgram, msg)
		}
		return "", false, fmt.Errorf("%w: %s", errDeepgram, errResp.Description)
	}

	return "", false, nil
}
