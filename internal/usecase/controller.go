package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"voicefir/internal/domain"
	"voicefir/internal/ports"
)

var (
	ErrSessionActive = errors.New("a recording session is already active")
	ErrNotRecording  = errors.New("no recording in progress")
	ErrDiscarded     = errors.New("recording was discarded before capture started")
)

const defaultDrainTimeout = 3 * time.Second

// Config controls recording and upload behavior.
type Config struct {
	Audio           ports.AudioConfig
	ChunkSize       int
	UploadTimeout   time.Duration
	DrainTimeout    time.Duration
	CopyToClipboard bool
	Logger          *zerolog.Logger
}

// SessionController orchestrates microphone capture and the single
// transcription upload that follows each recording.
type SessionController struct {
	audio     ports.AudioCapture
	encoder   ports.PayloadEncoder
	uploader  ports.Uploader
	events    ports.EventSink
	finalizer transcriptFinalizer
	cfg       Config
	log       zerolog.Logger

	mu      sync.Mutex
	current *recording
}

func NewSessionController(
	audio ports.AudioCapture,
	encoder ports.PayloadEncoder,
	uploader ports.Uploader,
	clipboard ports.Clipboard,
	notifier ports.Notifier,
	events ports.EventSink,
	cfg Config,
) *SessionController {
	if cfg.ChunkSize < 256 {
		cfg.ChunkSize = 4096
	}
	if cfg.DrainTimeout <= 0 {
		cfg.DrainTimeout = defaultDrainTimeout
	}
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	return &SessionController{
		audio:     audio,
		encoder:   encoder,
		uploader:  uploader,
		events:    events,
		finalizer: newTranscriptFinalizer(clipboard, notifier, events, cfg.CopyToClipboard),
		cfg:       cfg,
		log:       log.With().Str("component", "session_controller").Logger(),
	}
}

// Start acquires the microphone and begins a fresh recording. A finished
// or failed session is replaced; an active one is left untouched.
func (c *SessionController) Start(ctx context.Context) (domain.Session, error) {
	rec := newRecording(uuid.NewString(), time.Now())

	c.mu.Lock()
	if c.current != nil && c.current.active() {
		current := c.current
		c.mu.Unlock()
		return current.snapshot(), ErrSessionActive
	}
	c.current = rec
	c.mu.Unlock()

	log := c.log.With().Str("session_id", rec.id).Logger()

	sessionCtx, cancel := context.WithCancel(ctx)
	audioSession, err := c.audio.Start(sessionCtx, c.cfg.Audio)
	if err != nil {
		cancel()
		close(rec.audioDone)
		deviceErr := &domain.DeviceAccessError{Err: err}
		rec.fail(deviceErr)
		log.Warn().Err(err).Msg("microphone unavailable")
		c.events.SessionError(domain.ErrorCodeDevice, domain.UserMessage(deviceErr))
		c.emit(rec, domain.SessionReasonDeviceUnavailable)
		return rec.snapshot(), deviceErr
	}

	if !rec.begin(cancel, audioSession) {
		if err := audioSession.Stop(); err != nil {
			log.Warn().Err(err).Msg("audio capture did not stop cleanly")
		}
		_ = audioSession.Close()
		cancel()
		close(rec.audioDone)
		log.Info().Msg("recording discarded during microphone acquisition")
		return rec.snapshot(), ErrDiscarded
	}
	go pumpAudioChunks(audioSession, rec, c.cfg.ChunkSize, c.events, log, rec.audioDone)

	log.Info().
		Int("sample_rate", c.cfg.Audio.SampleRate).
		Int("channels", c.cfg.Audio.Channels).
		Str("encoding", c.cfg.Audio.Encoding).
		Msg("recording started")
	c.emit(rec, domain.SessionReasonRecordingStarted)
	return rec.snapshot(), nil
}

// AppendChunk adds captured audio to the current recording. It reports
// false and changes nothing when data is empty or nothing is recording.
func (c *SessionController) AppendChunk(data []byte) bool {
	rec := c.getCurrent()
	if rec == nil {
		return false
	}
	return rec.append(data)
}

// Stop ends capture, seals the recording and uploads it. It blocks until
// the transcription service answers or the upload fails.
func (c *SessionController) Stop(ctx context.Context) (domain.Session, error) {
	rec := c.getCurrent()
	if rec == nil {
		return c.Snapshot(), ErrNotRecording
	}
	if !rec.beginStop() {
		return rec.snapshot(), ErrNotRecording
	}

	log := c.log.With().Str("session_id", rec.id).Logger()
	c.release(rec, log)

	raw, _ := rec.seal()
	payload, err := c.encoder.Encode(raw)
	if err != nil {
		err = fmt.Errorf("failed to package recording: %w", err)
		rec.fail(err)
		log.Error().Err(err).Msg("recording could not be packaged")
		c.events.SessionError(domain.ErrorCodeEncoding, err.Error())
		c.finalizer.Failed(domain.UserMessage(err))
		c.emit(rec, domain.SessionReasonEncodingFailed)
		return rec.snapshot(), err
	}
	rec.setPayloadSize(len(payload.Data))
	c.emit(rec, domain.SessionReasonTranscribing)

	uploadCtx, cancel := ctx, context.CancelFunc(func() {})
	if c.cfg.UploadTimeout > 0 {
		uploadCtx, cancel = context.WithTimeout(ctx, c.cfg.UploadTimeout)
	}
	started := time.Now()
	result, err := c.uploader.Upload(uploadCtx, payload)
	cancel()

	if err != nil {
		rec.fail(err)
		message := domain.UserMessage(err)
		log.Warn().Err(err).Dur("latency", time.Since(started)).Msg("transcription failed")
		c.events.SessionError(domain.ErrorCodeFor(err), message)
		c.finalizer.Failed(message)
		c.emit(rec, domain.SessionReasonTranscriptionFailed)
		return rec.snapshot(), err
	}

	rec.complete(result)
	log.Info().
		Dur("latency", time.Since(started)).
		Int("payload_bytes", len(payload.Data)).
		Str("language", result.Language).
		Bool("translated", result.IsTranslation).
		Msg("transcription received")
	reason := c.finalizer.Finalize(ctx, result)
	c.emit(rec, reason)
	return rec.snapshot(), nil
}

// Abort discards an in-progress recording without uploading it. A
// recording still acquiring the microphone is discarded as soon as the
// device arrives.
func (c *SessionController) Abort() error {
	rec := c.getCurrent()
	if rec == nil {
		return ErrNotRecording
	}
	if rec.abandon() {
		c.forget(rec)
		return nil
	}
	if !rec.beginStop() {
		return ErrNotRecording
	}

	c.release(rec, c.log.With().Str("session_id", rec.id).Logger())
	rec.discard()
	c.emit(rec, domain.SessionReasonRecordingDiscarded)
	c.forget(rec)
	return nil
}

func (c *SessionController) forget(rec *recording) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == rec {
		c.current = nil
	}
}

// Close releases the microphone if a recording is running and forgets
// the current session.
func (c *SessionController) Close() {
	if err := c.Abort(); err != nil && !errors.Is(err, ErrNotRecording) {
		c.log.Warn().Err(err).Msg("abort on close failed")
	}

	c.mu.Lock()
	c.current = nil
	c.mu.Unlock()
}

// Snapshot returns the current session, or an idle one when none exists.
func (c *SessionController) Snapshot() domain.Session {
	rec := c.getCurrent()
	if rec == nil {
		return domain.Session{Status: domain.SessionStatusIdle}
	}
	return rec.snapshot()
}

func (c *SessionController) getCurrent() *recording {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// release stops the device and waits for the pump to deliver the chunks
// flushed on stop.
func (c *SessionController) release(rec *recording, log zerolog.Logger) {
	if err := rec.audio.Stop(); err != nil {
		log.Warn().Err(err).Msg("audio capture did not stop cleanly")
		c.events.SessionError(domain.ErrorCodeAudioStop, "failed to stop audio capture cleanly")
	}

	timer := time.NewTimer(c.cfg.DrainTimeout)
	defer timer.Stop()
	select {
	case <-rec.audioDone:
	case <-timer.C:
		log.Warn().Dur("timeout", c.cfg.DrainTimeout).Msg("audio pump did not drain in time")
	}
	_ = rec.audio.Close()
	rec.cancel()
}

func (c *SessionController) emit(rec *recording, reason domain.SessionStateReason) {
	session := rec.snapshot()
	c.log.Debug().
		Str("session_id", session.ID).
		Str("status", string(session.Status)).
		Str("reason", string(reason)).
		Int("chunks", session.ChunkCount).
		Msg("session changed")
	c.events.SessionChanged(session, reason)
}
