package deepgram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/koscakluka/ema-tutor/core/audio"
	"github.com/koscakluka/ema-tutor/core/texttospeech"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const defaultBaseURL = "https://api.deepgram.com/v1/speak"

// chunkSize is how much audio is forwarded to the output at a time.
const chunkSize = 4096

// AudioOutput plays synthesized audio. AwaitMark blocks until everything
// sent so far has been played or the buffer has been cleared.
type AudioOutput interface {
	EncodingInfo() audio.EncodingInfo
	SendAudio(audio []byte) error
	ClearBuffer()
	AwaitMark() error
}

// TextToSpeechClient speaks text through Deepgram's Aura REST endpoint and
// plays the result on an audio output.
type TextToSpeechClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	output     AudioOutput

	voice deepgramVoice
}

type ClientOption func(*TextToSpeechClient)

func WithAPIKey(apiKey string) ClientOption {
	return func(c *TextToSpeechClient) { c.apiKey = apiKey }
}

func WithBaseURL(baseURL string) ClientOption {
	return func(c *TextToSpeechClient) { c.baseURL = baseURL }
}

func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *TextToSpeechClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func WithVoice(voice deepgramVoice) ClientOption {
	return func(c *TextToSpeechClient) { c.voice = voice }
}

// WithVoiceID selects a voice by its model id, e.g. "aura-luna-en". An empty
// id keeps the default.
func WithVoiceID(id string) ClientOption {
	return func(c *TextToSpeechClient) {
		if id != "" {
			c.voice = deepgramVoice(id)
		}
	}
}

// NewTextToSpeechClient builds a client playing on output. A nil output
// still synthesizes but discards the audio. The API key defaults to
// DEEPGRAM_API_KEY.
func NewTextToSpeechClient(output AudioOutput, opts ...ClientOption) (*TextToSpeechClient, error) {
	client := &TextToSpeechClient{
		baseURL: defaultBaseURL,
		output:  output,
		voice:   defaultVoice,
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithSpanNameFormatter(func(string, *http.Request) string {
				return "deepgram speak"
			}),
		)},
	}
	client.apiKey, _ = os.LookupEnv("DEEPGRAM_API_KEY")

	for _, opt := range opts {
		opt(client)
	}

	if client.apiKey == "" {
		return nil, fmt.Errorf("deepgram api key not found")
	}
	if !isKnownVoice(string(client.voice)) {
		return nil, fmt.Errorf("invalid voice %q", client.voice)
	}

	return client, nil
}

func (c *TextToSpeechClient) Voices(context.Context) ([]texttospeech.Voice, error) {
	available := make([]texttospeech.Voice, 0, len(voiceOrder))
	for _, id := range voiceOrder {
		info := voices[id]
		available = append(available, texttospeech.Voice{ID: string(id), Name: info.name, Language: info.language})
	}
	return available, nil
}

// Speak synthesizes text and blocks until it has been played. Rate, pitch and
// volume are not supported by Aura and are ignored.
func (c *TextToSpeechClient) Speak(ctx context.Context, text string, opts ...texttospeech.SpeakOption) error {
	options := texttospeech.NewSpeakOptions(opts...)
	voice := c.voice
	if options.Voice != nil && isKnownVoice(options.Voice.ID) {
		voice = deepgramVoice(options.Voice.ID)
	}

	ctx, span := tracer.Start(ctx, "speak text")
	defer span.End()
	span.SetAttributes(attribute.String("deepgram.voice", string(voice)), attribute.Int("text.length", len(text)))

	resp, err := c.request(ctx, voice, text)
	if err != nil {
		if c.output != nil && ctx.Err() != nil {
			c.output.ClearBuffer()
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer resp.Body.Close()

	played, err := c.play(ctx, resp.Body)
	span.SetAttributes(attribute.Int("audio.bytes", played))
	if err != nil {
		if c.output != nil {
			c.output.ClearBuffer()
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return c.awaitPlayback(ctx)
}

func (c *TextToSpeechClient) encodingInfo() audio.EncodingInfo {
	if c.output == nil || c.output.EncodingInfo().IsZero() {
		return audio.GetDefaultEncodingInfo()
	}
	return c.output.EncodingInfo()
}

func (c *TextToSpeechClient) request(ctx context.Context, voice deepgramVoice, text string) (*http.Response, error) {
	encodingInfo := c.encodingInfo()

	speakURL, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid deepgram url: %w", err)
	}
	query := speakURL.Query()
	query.Set("model", string(voice))
	query.Set("encoding", encodingInfo.Format.Name())
	query.Set("sample_rate", strconv.Itoa(encodingInfo.SampleRate))
	query.Set("container", "none")
	speakURL.RawQuery = query.Encode()

	body, err := json.Marshal(struct {
		Text string `json:"text"`
	}{Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to encode speak request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, speakURL.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build speak request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call deepgram speak: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("deepgram speak returned %s: %s", resp.Status, bytes.TrimSpace(msg))
	}

	return resp, nil
}

func (c *TextToSpeechClient) play(ctx context.Context, body io.Reader) (int, error) {
	played := 0
	buf := make([]byte, chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return played, err
		}

		n, err := body.Read(buf)
		if n > 0 {
			played += n
			if c.output != nil {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				if sendErr := c.output.SendAudio(chunk); sendErr != nil {
					return played, fmt.Errorf("failed to send audio to output: %w", sendErr)
				}
			}
		}
		if errors.Is(err, io.EOF) {
			return played, nil
		} else if err != nil {
			return played, fmt.Errorf("failed to read speech audio: %w", err)
		}
	}
}

func (c *TextToSpeechClient) awaitPlayback(ctx context.Context) error {
	if c.output == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() { done <- c.output.AwaitMark() }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed waiting for playback: %w", err)
		}
		return nil
	case <-ctx.Done():
		// clearing releases the pending mark so the waiter goroutine exits
		c.output.ClearBuffer()
		return ctx.Err()
	}
}
