package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"voicefir/internal/bootstrap"
	"voicefir/internal/config"
	"voicefir/internal/domain"
	"voicefir/internal/usecase"
)

const (
	eventSession = "voicefir:session"
	eventError   = "voicefir:error"
)

// App is the Wails application root.
type App struct {
	ctx context.Context

	controller *usecase.SessionController
	cfg        config.Config
	endpoint   string
	log        zerolog.Logger
	bootErr    error

	// emit is swapped in tests; it defaults to the Wails event bus.
	emit func(ctx context.Context, name string, data ...interface{})
}

func NewApp() *App {
	return &App{log: zerolog.Nop(), emit: runtime.EventsEmit}
}

func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	services, err := bootstrap.Build(a, &wailsClipboard{})
	if err != nil {
		a.bootErr = err
		a.SessionError(domain.ErrorCodeStartup, err.Error())
		return
	}

	a.cfg = services.Config
	a.endpoint = services.Endpoint
	a.log = services.Logger.With().Str("component", "app").Logger()
	a.controller = services.Controller
	a.SessionChanged(a.controller.Snapshot(), "")
}

func (a *App) shutdown(_ context.Context) {
	if a.controller != nil {
		a.controller.Close()
	}
}

// StartRecording acquires the microphone and starts a new session. A
// denied microphone is reported through the returned session, not as an error.
func (a *App) StartRecording() (domain.Session, error) {
	if err := a.requireReady(); err != nil {
		return domain.Session{}, err
	}
	session, err := a.controller.Start(a.ctx)
	if err != nil && errors.Is(err, usecase.ErrSessionActive) {
		return session, err
	}
	return session, nil
}

// StopRecording ends capture and blocks until the transcript arrives or
// the upload fails.
func (a *App) StopRecording() (domain.Session, error) {
	if err := a.requireReady(); err != nil {
		return domain.Session{}, err
	}
	session, err := a.controller.Stop(a.ctx)
	if err != nil && !errors.Is(err, usecase.ErrNotRecording) {
		a.log.Debug().Err(err).Str("session_id", session.ID).Msg("stop finished with failure")
	}
	return session, nil
}

// CancelRecording discards an in-progress recording.
func (a *App) CancelRecording() error {
	if err := a.requireReady(); err != nil {
		return err
	}
	if err := a.controller.Abort(); err != nil && !errors.Is(err, usecase.ErrNotRecording) {
		return err
	}
	return nil
}

// GetSession returns the current session snapshot.
func (a *App) GetSession() domain.Session {
	if a.controller == nil {
		if a.bootErr != nil {
			return domain.Session{Status: domain.SessionStatusFailed, ErrorMessage: a.bootErr.Error()}
		}
		return domain.Session{Status: domain.SessionStatusIdle}
	}
	return a.controller.Snapshot()
}

// GetRuntimeInfo returns non-sensitive config for the UI.
func (a *App) GetRuntimeInfo() map[string]string {
	if a.bootErr != nil {
		return map[string]string{"error": a.bootErr.Error()}
	}

	info := map[string]string{
		"provider":         a.cfg.Provider,
		"endpoint":         a.endpoint,
		"capture":          a.cfg.Audio.Backend,
		"encoding":         a.cfg.Audio.Encoding,
		"audioInput":       a.cfg.Audio.InputDevice,
		"audioInputFormat": a.cfg.Audio.InputFormat,
	}
	if a.cfg.Provider == "openai" {
		info["model"] = a.cfg.OpenAI.Model
		info["language"] = a.cfg.OpenAI.Language
		info["translate"] = fmt.Sprintf("%t", a.cfg.OpenAI.Translate)
	}
	return info
}

// LanguageName maps a language code to its display name.
func (a *App) LanguageName(code string) string {
	return domain.LanguageName(code)
}

func (a *App) requireReady() error {
	if a.bootErr != nil {
		return a.bootErr
	}
	if a.controller == nil {
		return fmt.Errorf("application is not initialized")
	}
	return nil
}

// SessionChanged emits session lifecycle updates to the frontend.
func (a *App) SessionChanged(session domain.Session, reason domain.SessionStateReason) {
	if a.ctx == nil || a.emit == nil {
		return
	}
	a.emit(a.ctx, eventSession, map[string]interface{}{
		"status":  string(session.Status),
		"reason":  string(reason),
		"message": sessionReasonMessage(reason),
		"session": session,
	})
}

// SessionError emits backend errors to the UI.
func (a *App) SessionError(code domain.ErrorCode, detail string) {
	if a.ctx == nil || a.emit == nil {
		return
	}
	a.emit(a.ctx, eventError, map[string]string{
		"code":    string(code),
		"message": errorMessage(code, detail),
		"detail":  detail,
	})
}

func sessionReasonMessage(reason domain.SessionStateReason) string {
	switch reason {
	case domain.SessionReasonRecordingStarted:
		return "Recording..."
	case domain.SessionReasonDeviceUnavailable:
		return "Microphone unavailable"
	case domain.SessionReasonTranscribing:
		return "Recording stopped. Transcribing..."
	case domain.SessionReasonTranscriptReady:
		return "Transcript ready"
	case domain.SessionReasonTranscriptCopied:
		return "Transcript copied to clipboard"
	case domain.SessionReasonTranscriptClipboardFailed:
		return "Transcript ready (clipboard write failed)"
	case domain.SessionReasonTranscriptionFailed:
		return "Transcription failed"
	case domain.SessionReasonEncodingFailed:
		return "Recording could not be packaged"
	case domain.SessionReasonRecordingDiscarded:
		return "Recording discarded"
	default:
		return ""
	}
}

func errorMessage(code domain.ErrorCode, detail string) string {
	switch code {
	case domain.ErrorCodeStartup:
		return "Startup failed"
	case domain.ErrorCodeDevice:
		return "Microphone access failed"
	case domain.ErrorCodeNetwork:
		return "Transcription server unreachable"
	case domain.ErrorCodeHTTP:
		return "Transcription server error"
	case domain.ErrorCodeService:
		return "Transcription error"
	case domain.ErrorCodeEncoding:
		return "Audio packaging failed"
	case domain.ErrorCodeAudioStop:
		return "Audio stop issue"
	case domain.ErrorCodeAudioStream:
		return "Audio capture issue"
	case domain.ErrorCodeClipboard:
		return "Clipboard write failed"
	default:
		if detail == "" {
			return "Unknown error"
		}
		return detail
	}
}

type wailsClipboard struct{}

func (c *wailsClipboard) SetText(ctx context.Context, text string) error {
	return runtime.ClipboardSetText(ctx, text)
}
