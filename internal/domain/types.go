package domain

import "time"

// SessionStatus models the record-then-transcribe lifecycle.
type SessionStatus string

const (
	SessionStatusIdle      SessionStatus = "idle"
	SessionStatusRecording SessionStatus = "recording"
	SessionStatusUploading SessionStatus = "uploading"
	SessionStatusDone      SessionStatus = "done"
	SessionStatusFailed    SessionStatus = "failed"
)

// Active reports whether a session in this status still owns the microphone or the upload slot.
func (s SessionStatus) Active() bool {
	return s == SessionStatusRecording || s == SessionStatusUploading
}

// SessionStateReason provides a structured reason for state transitions.
type SessionStateReason string

const (
	SessionReasonRecordingStarted          SessionStateReason = "recording_started"
	SessionReasonDeviceUnavailable         SessionStateReason = "device_unavailable"
	SessionReasonTranscribing              SessionStateReason = "transcribing"
	SessionReasonTranscriptReady           SessionStateReason = "transcript_ready"
	SessionReasonTranscriptCopied          SessionStateReason = "transcript_copied"
	SessionReasonTranscriptClipboardFailed SessionStateReason = "transcript_clipboard_failed"
	SessionReasonTranscriptionFailed       SessionStateReason = "transcription_failed"
	SessionReasonEncodingFailed            SessionStateReason = "encoding_failed"
	SessionReasonRecordingDiscarded        SessionStateReason = "recording_discarded"
)

// ErrorCode identifies non-fatal and fatal backend errors.
type ErrorCode string

const (
	ErrorCodeStartup     ErrorCode = "startup"
	ErrorCodeDevice      ErrorCode = "device"
	ErrorCodeNetwork     ErrorCode = "network"
	ErrorCodeHTTP        ErrorCode = "http"
	ErrorCodeService     ErrorCode = "service"
	ErrorCodeEncoding    ErrorCode = "encoding"
	ErrorCodeAudioStop   ErrorCode = "audio_stop"
	ErrorCodeAudioStream ErrorCode = "audio_stream"
	ErrorCodeClipboard   ErrorCode = "clipboard"
)

// Session is a point-in-time view of one recording attempt.
type Session struct {
	ID               string        `json:"id,omitempty"`
	Status           SessionStatus `json:"status"`
	ResultText       string        `json:"resultText,omitempty"`
	ErrorMessage     string        `json:"errorMessage,omitempty"`
	DetectedLanguage string        `json:"detectedLanguage,omitempty"`
	LanguageName     string        `json:"languageName,omitempty"`
	WasTranslated    bool          `json:"wasTranslated,omitempty"`
	ChunkCount       int           `json:"chunkCount"`
	PayloadBytes     int           `json:"payloadBytes,omitempty"`
	StartedAt        time.Time     `json:"startedAt,omitempty"`
}

// Payload is a sealed recording ready for upload.
type Payload struct {
	Data        []byte
	ContentType string
	FileName    string
}

// TranscriptResult is what a transcription service returned for one payload.
type TranscriptResult struct {
	Transcript    string `json:"transcript"`
	Language      string `json:"language,omitempty"`
	IsTranslation bool   `json:"isTranslation,omitempty"`
}
