package miniaudio

import (
	"context"
	"fmt"

	"github.com/gen2brain/malgo"
	"github.com/koscakluka/ema-tutor/core/audio"
)

// Client owns one malgo context with a playback and a capture device.
//
// It satisfies the audio output used by narration and the audio input used
// by single-utterance recognition.
type Client struct {
	// audioContext is only saved to be able to uninitialize it, it is an
	// ownership thing
	audioContext *malgo.AllocatedContext
	encodingInfo audio.EncodingInfo
	playbackClient
	captureClient
}

func NewClient() (*Client, error) {
	return NewClientWithEncoding(audio.GetDefaultEncodingInfo())
}

// NewClientWithEncoding opens both devices for linear16 audio at the given
// sample rate. Other formats are rejected since malgo is driven with S16
// frames.
func NewClientWithEncoding(encodingInfo audio.EncodingInfo) (*Client, error) {
	if encodingInfo.Format != audio.EncodingLinear16 {
		return nil, fmt.Errorf("unsupported encoding %q", encodingInfo.Format)
	}
	if encodingInfo.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", encodingInfo.SampleRate)
	}
	if encodingInfo.Channels <= 0 {
		encodingInfo.Channels = audio.DefaultChannels
	}

	audioCtx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {
		logger.Debug("malgo", "message", message)
	})
	if err != nil {
		return nil, fmt.Errorf("malgo InitContext failed: %w", err)
	}

	client := Client{
		audioContext: audioCtx,
		encodingInfo: encodingInfo,
	}

	if err := client.playbackClient.Init(audioCtx, encodingInfo); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to initialize playback client: %w", err)
	}

	if err := client.playbackClient.Start(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to start playback device: %w", err)
	}

	if err := client.captureClient.Init(audioCtx, encodingInfo); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to initialize capture client: %w", err)
	}

	return &client, nil
}

func (c *Client) StartCapture(_ context.Context, onAudio func(audio []byte)) error {
	return c.captureClient.Start(onAudio)
}

func (c *Client) StopCapture() error {
	return c.captureClient.Stop()
}

func (c *Client) Close() {
	_ = c.captureClient.Uninit()
	_ = c.playbackClient.Uninit()
	if c.audioContext != nil {
		_ = c.audioContext.Uninit()
		c.audioContext.Free()
		c.audioContext = nil
	}
}

func (c *Client) SendAudio(audio []byte) error {
	return c.playbackClient.SendAudio(audio)
}

func (c *Client) ClearBuffer() {
	c.playbackClient.ClearBuffer()
}

func (c *Client) AwaitMark() error {
	return c.playbackClient.AwaitMark()
}

func (c *Client) EncodingInfo() audio.EncodingInfo {
	return c.encodingInfo
}
