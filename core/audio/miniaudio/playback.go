package miniaudio

import (
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"
	"github.com/koscakluka/ema-tutor/core/audio"
)

type playbackClient struct {
	audioContext *malgo.AllocatedContext
	device       *malgo.Device
	config       malgo.DeviceConfig

	buffer playbackBuffer

	mu sync.Mutex
}

func (c *playbackClient) Init(audioContext *malgo.AllocatedContext, encodingInfo audio.EncodingInfo) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	format := malgo.FormatS16
	bytesPerFrame := malgo.SampleSizeInBytes(format) * encodingInfo.Channels

	c.config = malgo.DefaultDeviceConfig(malgo.Playback)
	c.config.SampleRate = uint32(encodingInfo.SampleRate)
	c.config.Playback.Format = format
	c.config.Playback.Channels = uint32(encodingInfo.Channels)
	c.config.Alsa.NoMMap = 1
	c.config.PeriodSizeInFrames = uint32(encodingInfo.SampleRate / 10) // ~100ms of audio
	c.config.Periods = 4

	c.audioContext = audioContext

	var err error
	if c.device, err = malgo.InitDevice(
		c.audioContext.Context,
		c.config,
		malgo.DeviceCallbacks{Data: func(pOutput, _ []byte, frameCount uint32) {
			c.buffer.read(pOutput[:int(frameCount)*bytesPerFrame])
		}},
	); err != nil {
		return fmt.Errorf("failed to initialize playback device: %w", err)
	}

	return nil
}

func (c *playbackClient) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.device == nil {
		return fmt.Errorf("device not initialized")
	}

	if err := c.device.Start(); err != nil {
		return fmt.Errorf("failed to start playback device: %w", err)
	}

	return nil
}

func (c *playbackClient) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.device == nil {
		return fmt.Errorf("device not initialized")
	}

	if err := c.device.Stop(); err != nil {
		return fmt.Errorf("failed to stop playback device: %w", err)
	}

	c.buffer.clear()
	return nil
}

func (c *playbackClient) SendAudio(audio []byte) error {
	c.mu.Lock()
	device := c.device
	c.mu.Unlock()
	if device == nil {
		return fmt.Errorf("device not initialized")
	} else if !device.IsStarted() {
		return fmt.Errorf("device not started")
	}

	c.buffer.write(audio)
	return nil
}

func (c *playbackClient) ClearBuffer() {
	c.buffer.clear()
}

// AwaitMark blocks until everything queued so far has been played or the
// buffer has been cleared.
func (c *playbackClient) AwaitMark() error {
	done := make(chan struct{})
	c.buffer.mark(func() { close(done) })
	<-done
	return nil
}

func (c *playbackClient) Uninit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device == nil {
		return nil
	}

	c.device.Uninit()
	c.device = nil
	c.buffer.clear()

	return nil
}

// playbackBuffer queues audio for the device callback and fires marks once
// the audio queued before them has been consumed.
type playbackBuffer struct {
	mu    sync.Mutex
	audio []byte
	marks []playbackMark
}

type playbackMark struct {
	position int
	callback func()
}

func (b *playbackBuffer) write(audio []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.audio = append(b.audio, audio...)
}

func (b *playbackBuffer) mark(callback func()) {
	b.mu.Lock()
	if len(b.audio) == 0 {
		b.mu.Unlock()
		callback()
		return
	}
	b.marks = append(b.marks, playbackMark{position: len(b.audio), callback: callback})
	b.mu.Unlock()
}

// clear drops queued audio. Pending marks fire so that waiters never hang on
// audio that will not be played.
func (b *playbackBuffer) clear() {
	b.mu.Lock()
	marks := b.marks
	b.audio = nil
	b.marks = nil
	b.mu.Unlock()

	for _, mark := range marks {
		mark.callback()
	}
}

// read fills out with queued audio, padding with silence, and returns how
// many bytes of queued audio were consumed.
func (b *playbackBuffer) read(out []byte) int {
	b.mu.Lock()
	n := copy(out, b.audio)
	b.audio = b.audio[n:]
	for i := n; i < len(out); i++ {
		out[i] = 0
	}

	passed := 0
	for i := range b.marks {
		b.marks[i].position -= n
		if b.marks[i].position <= 0 {
			passed++
		}
	}
	fired := b.marks[:passed]
	b.marks = b.marks[passed:]
	b.mu.Unlock()

	for _, mark := range fired {
		mark.callback()
	}
	return n
}
