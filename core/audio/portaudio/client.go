package portaudio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/koscakluka/ema-tutor/core/audio"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const scopeName = "github.com/koscakluka/ema-tutor/core/audio/portaudio"

var logger = otelslog.NewLogger(scopeName)

// Client drives a blocking full-duplex default stream. Writes happen on the
// caller's goroutine, reads on a capture goroutine started by StartCapture.
type Client struct {
	bufferSize int
	stream     *portaudio.Stream

	writeMu       sync.Mutex
	leftoverAudio []byte
	out           []int16

	captureMu   sync.Mutex
	in          []int16
	stopCapture context.CancelFunc
	captureDone chan struct{}
}

func NewClient(bufferSize int) (*Client, error) {
	if bufferSize <= 0 {
		return nil, fmt.Errorf("invalid buffer size %d", bufferSize)
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	in := make([]int16, bufferSize)
	out := make([]int16, bufferSize)
	stream, err := portaudio.OpenDefaultStream(1, 1, audio.DefaultSampleRate, bufferSize, in, out)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("failed to open portaudio stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("failed to start portaudio stream: %w", err)
	}

	return &Client{
		bufferSize: bufferSize,
		stream:     stream,
		in:         in,
		out:        out,
	}, nil
}

func (c *Client) StartCapture(ctx context.Context, onAudio func(audio []byte)) error {
	c.captureMu.Lock()
	defer c.captureMu.Unlock()
	if c.stopCapture != nil {
		return nil
	}

	captureCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.stopCapture = cancel
	c.captureDone = done

	go func() {
		defer close(done)
		for captureCtx.Err() == nil {
			if err := c.stream.Read(); err != nil {
				logger.Warn("failed to read from portaudio stream", "error", err)
				continue
			}

			audioBuffer := bytes.Buffer{}
			_ = binary.Write(&audioBuffer, binary.LittleEndian, c.in)
			onAudio(audioBuffer.Bytes())
		}
	}()

	return nil
}

func (c *Client) StopCapture() error {
	c.captureMu.Lock()
	stop := c.stopCapture
	done := c.captureDone
	c.stopCapture = nil
	c.captureDone = nil
	c.captureMu.Unlock()

	if stop == nil {
		return nil
	}
	stop()
	<-done
	return nil
}

func (c *Client) Close() {
	_ = c.StopCapture()
	if err := c.stream.Stop(); err != nil {
		logger.Warn("failed to stop portaudio stream", "error", err)
	}
	c.stream.Close()
	portaudio.Terminate()
}

// SendAudio writes whole buffers to the device and keeps the remainder until
// more audio arrives or AwaitMark flushes it.
func (c *Client) SendAudio(audio []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	pending := append(c.leftoverAudio, audio...)
	chunks, rest := splitFrames(pending, c.bufferSize*2)
	for _, chunk := range chunks {
		if err := c.write(chunk); err != nil {
			return err
		}
	}
	c.leftoverAudio = append([]byte(nil), rest...)
	return nil
}

func (c *Client) ClearBuffer() {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.leftoverAudio = nil
}

// AwaitMark flushes the remainder padded with silence. Writes are blocking so
// once it returns the audio has been handed to the device.
func (c *Client) AwaitMark() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if len(c.leftoverAudio) == 0 {
		return nil
	}
	chunk := make([]byte, c.bufferSize*2)
	copy(chunk, c.leftoverAudio)
	c.leftoverAudio = nil
	return c.write(chunk)
}

func (c *Client) write(chunk []byte) error {
	if err := binary.Read(bytes.NewReader(chunk), binary.LittleEndian, c.out); err != nil {
		return fmt.Errorf("failed to decode audio chunk: %w", err)
	}
	if err := c.stream.Write(); err != nil {
		return fmt.Errorf("failed to write to portaudio stream: %w", err)
	}
	return nil
}

func (c *Client) EncodingInfo() audio.EncodingInfo {
	return audio.EncodingInfo{
		SampleRate: audio.DefaultSampleRate,
		Format:     audio.EncodingLinear16,
		Channels:   1,
	}
}

// splitFrames cuts audio into size-byte chunks and returns the incomplete tail
// separately.
func splitFrames(audio []byte, size int) ([][]byte, []byte) {
	if size <= 0 {
		return nil, audio
	}

	var chunks [][]byte
	for len(audio) >= size {
		chunks = append(chunks, audio[:size])
		audio = audio[size:]
	}
	return chunks, audio
}
