package usecase

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"voicefir/internal/domain"
	"voicefir/internal/ports"
)

// pumpAudioChunks moves capture reads into the recording until the
// capture session reports its terminal boundary.
func pumpAudioChunks(
	audio ports.AudioSession,
	rec *recording,
	chunkSize int,
	events ports.EventSink,
	log zerolog.Logger,
	done chan struct{},
) {
	defer close(done)

	if chunkSize < 256 {
		chunkSize = 4096
	}

	buf := make([]byte, chunkSize)
	chunks := 0
	for {
		n, err := audio.Read(buf)
		if n > 0 && rec.append(buf[:n]) {
			chunks++
		}
		if err != nil {
			if !isEndOfCapture(err) {
				log.Warn().Err(err).Str("session_id", rec.id).Msg("audio capture read failed")
				_ = audio.Stop()
				events.SessionError(domain.ErrorCodeAudioStream, fmt.Sprintf("audio capture error: %v", err))
			}
			log.Debug().Str("session_id", rec.id).Int("chunks", chunks).Msg("audio pump drained")
			return
		}
	}
}

// A stopped capture may surface a closed pipe instead of a clean EOF.
func isEndOfCapture(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) || errors.Is(err, os.ErrClosed)
}
