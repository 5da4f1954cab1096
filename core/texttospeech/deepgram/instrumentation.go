package deepgram

import (
	"go.opentelemetry.io/otel"
)

const scopeName = "github.com/koscakluka/ema-tutor/core/texttospeech/deepgram"

var tracer = otel.Tracer(scopeName)
