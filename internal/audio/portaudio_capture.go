//go:build portaudio

package audio

import (
	"context"
	"fmt"

	"github.com/gordonklaus/portaudio"

	"voicefir/internal/ports"
)

const framesPerBuffer = 1024

// PortAudioCapture records the default input device through PortAudio and
// exposes it as little-endian s16 PCM.
type PortAudioCapture struct{}

// NewPortAudioCapture returns the PortAudio backend.
func NewPortAudioCapture() (ports.AudioCapture, error) {
	return &PortAudioCapture{}, nil
}

func (c *PortAudioCapture) Start(ctx context.Context, cfg ports.AudioConfig) (ports.AudioSession, error) {
	cfg = withAudioDefaults(cfg)
	if cfg.Encoding != ports.EncodingWAV {
		return nil, fmt.Errorf("portaudio capture only produces %s, got %q", ports.EncodingWAV, cfg.Encoding)
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	buffer := make([]int16, framesPerBuffer*cfg.Channels)
	stream, err := portaudio.OpenDefaultStream(cfg.Channels, 0, float64(cfg.SampleRate), framesPerBuffer, buffer)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("failed to open input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("failed to start input stream: %w", err)
	}

	s := newPortaudioSession(stream, buffer, portaudio.Terminate)
	go func() {
		select {
		case <-ctx.Done():
			_ = s.Stop()
		case <-s.done:
		}
	}()
	return s, nil
}
