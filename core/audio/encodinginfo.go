package audio

import "time"

const (
	DefaultSampleRate = 16000
	DefaultFormat     = "linear16"
	DefaultChannels   = 1
)

func GetDefaultEncodingInfo() EncodingInfo {
	return EncodingInfo{SampleRate: DefaultSampleRate, Format: EncodingLinear16, Channels: DefaultChannels}
}

// EncodingInfo describes raw PCM audio exchanged between devices and speech
// providers.
type EncodingInfo struct {
	SampleRate int
	Format     encodingFormat
	Channels   int
}

func (e EncodingInfo) IsZero() bool {
	return e.SampleRate == 0 || e.Format.Name() == ""
}

func (e EncodingInfo) channels() int {
	if e.Channels <= 0 {
		return 1
	}
	return e.Channels
}

// FrameSize is the number of bytes holding one sample for every channel.
func (e EncodingInfo) FrameSize() int {
	if e.Format.ByteSize() < 0 {
		return 0
	}
	return e.Format.ByteSize() * e.channels()
}

// BytesFor returns the number of bytes needed to hold d of audio.
func (e EncodingInfo) BytesFor(d time.Duration) int {
	return int(int64(e.SampleRate) * int64(e.FrameSize()) * int64(d) / int64(time.Second))
}

// DurationOf returns how long n bytes of audio take to play.
func (e EncodingInfo) DurationOf(n int) time.Duration {
	bytesPerSecond := e.SampleRate * e.FrameSize()
	if bytesPerSecond == 0 {
		return 0
	}
	return time.Duration(int64(n) * int64(time.Second) / int64(bytesPerSecond))
}

func (e EncodingInfo) SilenceValue() byte {
	switch e.Format {
	case EncodingALaw:
		return 0x55
	case EncodingMulaw:
		return 0xFF
	case EncodingLinear16:
		return 0
	}

	return 0
}

type encodingFormat string

func (e encodingFormat) Name() string {
	return string(e)
}

func (e encodingFormat) ByteSize() int {
	switch e {
	case EncodingMulaw, EncodingALaw:
		return 1
	case EncodingLinear16:
		return 2
	}
	return -1
}

// ParseFormat maps a format name onto a known encoding.
func ParseFormat(name string) (encodingFormat, bool) {
	switch encodingFormat(name) {
	case EncodingMulaw, EncodingALaw, EncodingLinear16:
		return encodingFormat(name), true
	}
	return "", false
}

const (
	EncodingMulaw    encodingFormat = "mulaw"
	EncodingALaw     encodingFormat = "alaw"
	EncodingLinear16 encodingFormat = "linear16"
)
