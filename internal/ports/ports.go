package ports

import (
	"context"
	"io"

	"voicefir/internal/domain"
)

// Audio encodings a capture backend can produce.
const (
	EncodingWAV  = "wav"
	EncodingWebM = "webm"
)

// AudioConfig describes how the microphone should be captured.
type AudioConfig struct {
	SampleRate  int
	Channels    int
	Encoding    string
	InputFormat string
	InputDevice string
}

// AudioSession is a live capture session. Reads return chunks in capture
// order; io.EOF after Stop marks the end of the recording.
type AudioSession interface {
	io.ReadCloser
	Stop() error
}

// AudioCapture acquires the microphone and starts capture sessions.
type AudioCapture interface {
	Start(ctx context.Context, cfg AudioConfig) (AudioSession, error)
}

// PayloadEncoder seals concatenated capture bytes into an uploadable payload.
type PayloadEncoder interface {
	Encode(raw []byte) (domain.Payload, error)
}

// Uploader sends one sealed recording to a transcription service.
type Uploader interface {
	Upload(ctx context.Context, payload domain.Payload) (domain.TranscriptResult, error)
}

// Clipboard writes text into the system clipboard.
type Clipboard interface {
	SetText(ctx context.Context, text string) error
}

// Notifier shows desktop notifications. Implementations swallow their own failures.
type Notifier interface {
	Notify(title string, message string)
}

// EventSink emits backend state/events to the UI.
type EventSink interface {
	SessionChanged(session domain.Session, reason domain.SessionStateReason)
	SessionError(code domain.ErrorCode, detail string)
}
