package usecase

import (
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"voicefir/internal/domain"
)

func TestPumpAudioChunksReportsReadError(t *testing.T) {
	t.Parallel()

	audio := &errorAudioSession{err: errors.New("read failed")}
	rec := newRecording("rec-1", time.Now())
	rec.begin(func() {}, audio)
	events := &fakeEventSink{}
	done := make(chan struct{})

	go pumpAudioChunks(audio, rec, 256, events, zerolog.Nop(), done)
	<-done

	errs := events.snapshotErrors()
	if len(errs) == 0 || errs[0].code != domain.ErrorCodeAudioStream {
		t.Fatalf("expected audio stream error")
	}
	if !audio.stopped {
		t.Fatalf("expected capture to be stopped after a read failure")
	}
}

func TestPumpAudioChunksAppendsUntilEOF(t *testing.T) {
	t.Parallel()

	audio := &scriptedAudioSession{reads: [][]byte{[]byte("ab"), nil, []byte("cd")}}
	rec := newRecording("rec-2", time.Now())
	rec.begin(func() {}, audio)
	events := &fakeEventSink{}
	done := make(chan struct{})

	go pumpAudioChunks(audio, rec, 0, events, zerolog.Nop(), done)
	<-done

	raw, ok := rec.seal()
	if !ok || string(raw) != "abcd" {
		t.Fatalf("unexpected pumped bytes: %q (sealed=%t)", raw, ok)
	}
	if got := rec.snapshot().ChunkCount; got != 2 {
		t.Fatalf("expected empty reads to be skipped, got %d chunks", got)
	}
	if errs := events.snapshotErrors(); len(errs) != 0 {
		t.Fatalf("expected clean EOF, got %+v", errs)
	}
}

func TestIsEndOfCapture(t *testing.T) {
	t.Parallel()

	for _, err := range []error{io.EOF, io.ErrClosedPipe, os.ErrClosed} {
		if !isEndOfCapture(err) {
			t.Fatalf("expected %v to end capture", err)
		}
	}
	if isEndOfCapture(errors.New("device unplugged")) {
		t.Fatalf("unexpected end of capture for device error")
	}
}

type errorAudioSession struct {
	err     error
	stopped bool
}

func (s *errorAudioSession) Read(_ []byte) (int, error) { return 0, s.err }
func (s *errorAudioSession) Close() error               { return nil }
func (s *errorAudioSession) Stop() error {
	s.stopped = true
	return nil
}

// scriptedAudioSession returns one scripted read per call and io.EOF after the last.
type scriptedAudioSession struct {
	reads [][]byte
}

func (s *scriptedAudioSession) Read(p []byte) (int, error) {
	if len(s.reads) == 0 {
		return 0, io.EOF
	}
	next := s.reads[0]
	s.reads = s.reads[1:]
	return copy(p, next), nil
}

func (s *scriptedAudioSession) Close() error { return nil }
func (s *scriptedAudioSession) Stop() error  { return nil }
