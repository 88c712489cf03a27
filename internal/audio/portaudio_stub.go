//go:build !portaudio

package audio

import (
	"fmt"

	"voicefir/internal/ports"
)

// NewPortAudioCapture reports that PortAudio support was not compiled in.
func NewPortAudioCapture() (ports.AudioCapture, error) {
	return nil, fmt.Errorf("%w (rebuild with -tags portaudio)", ErrPortAudioUnavailable)
}
