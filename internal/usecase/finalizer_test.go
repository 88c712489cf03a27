package usecase

import (
	"context"
	"errors"
	"testing"

	"voicefir/internal/domain"
)

func TestTranscriptFinalizerCopiesTranscript(t *testing.T) {
	t.Parallel()

	clipboard := &fakeClipboard{}
	notifier := &fakeNotifier{}
	f := newTranscriptFinalizer(clipboard, notifier, &fakeEventSink{}, true)

	reason := f.Finalize(context.Background(), domain.TranscriptResult{Transcript: "hola", Language: "es"})
	if reason != domain.SessionReasonTranscriptCopied {
		t.Fatalf("unexpected reason: %s", reason)
	}
	if clipboard.lastText != "hola" {
		t.Fatalf("clipboard did not receive transcript")
	}
	if len(notifier.sent) != 1 || notifier.sent[0].title != "Transcript ready" || notifier.sent[0].message != "hola" {
		t.Fatalf("unexpected notifications: %+v", notifier.sent)
	}
}

func TestTranscriptFinalizerClipboardFailure(t *testing.T) {
	t.Parallel()

	events := &fakeEventSink{}
	f := newTranscriptFinalizer(&fakeClipboard{err: errors.New("clipboard")}, nil, events, true)

	reason := f.Finalize(context.Background(), domain.TranscriptResult{Transcript: "final"})
	if reason != domain.SessionReasonTranscriptClipboardFailed {
		t.Fatalf("unexpected reason: %s", reason)
	}
	errs := events.snapshotErrors()
	if len(errs) != 1 || errs[0].code != domain.ErrorCodeClipboard {
		t.Fatalf("unexpected error events: %+v", errs)
	}
}

func TestTranscriptFinalizerSkipsClipboard(t *testing.T) {
	t.Parallel()

	clipboard := &fakeClipboard{}
	disabled := newTranscriptFinalizer(clipboard, nil, &fakeEventSink{}, false)
	if reason := disabled.Finalize(context.Background(), domain.TranscriptResult{Transcript: "text"}); reason != domain.SessionReasonTranscriptReady {
		t.Fatalf("unexpected reason with copy disabled: %s", reason)
	}

	enabled := newTranscriptFinalizer(clipboard, nil, &fakeEventSink{}, true)
	if reason := enabled.Finalize(context.Background(), domain.TranscriptResult{Transcript: "  "}); reason != domain.SessionReasonTranscriptReady {
		t.Fatalf("unexpected reason for blank transcript: %s", reason)
	}
	if clipboard.lastText != "" {
		t.Fatalf("clipboard should not be written, got %q", clipboard.lastText)
	}
}

func TestTranscriptFinalizerTranslationTitle(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{}
	f := newTranscriptFinalizer(nil, notifier, &fakeEventSink{}, false)
	f.Finalize(context.Background(), domain.TranscriptResult{Transcript: "Hello", Language: "ja", IsTranslation: true})
	f.Failed("HTTP error! status: 500")

	if len(notifier.sent) != 2 {
		t.Fatalf("expected two notifications, got %d", len(notifier.sent))
	}
	if notifier.sent[0].title != "Translated from Japanese" {
		t.Fatalf("unexpected title: %q", notifier.sent[0].title)
	}
	if notifier.sent[1].title != "Transcription failed" {
		t.Fatalf("unexpected failure title: %q", notifier.sent[1].title)
	}
}
