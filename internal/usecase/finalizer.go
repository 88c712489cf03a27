package usecase

import (
	"context"
	"strings"

	"voicefir/internal/domain"
	"voicefir/internal/ports"
)

type transcriptFinalizer struct {
	clipboard ports.Clipboard
	notifier  ports.Notifier
	events    ports.EventSink
	copy      bool
}

func newTranscriptFinalizer(clipboard ports.Clipboard, notifier ports.Notifier, events ports.EventSink, copyToClipboard bool) transcriptFinalizer {
	return transcriptFinalizer{clipboard: clipboard, notifier: notifier, events: events, copy: copyToClipboard}
}

// Finalize runs the post-transcription side effects. None of them can fail the session.
func (f transcriptFinalizer) Finalize(ctx context.Context, result domain.TranscriptResult) domain.SessionStateReason {
	reason := domain.SessionReasonTranscriptReady

	if f.copy && f.clipboard != nil && strings.TrimSpace(result.Transcript) != "" {
		if err := f.clipboard.SetText(ctx, result.Transcript); err != nil {
			reason = domain.SessionReasonTranscriptClipboardFailed
			f.events.SessionError(domain.ErrorCodeClipboard, "transcript ready but clipboard write failed")
		} else {
			reason = domain.SessionReasonTranscriptCopied
		}
	}

	if f.notifier != nil {
		title := "Transcript ready"
		if result.IsTranslation && result.Language != "" {
			title = "Translated from " + domain.LanguageName(result.Language)
		}
		f.notifier.Notify(title, result.Transcript)
	}

	return reason
}

// Failed reports a terminal session error to the desktop.
func (f transcriptFinalizer) Failed(message string) {
	if f.notifier != nil {
		f.notifier.Notify("Transcription failed", message)
	}
}
