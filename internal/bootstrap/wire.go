package bootstrap

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"voicefir/internal/audio"
	"voicefir/internal/config"
	"voicefir/internal/logging"
	"voicefir/internal/notify"
	"voicefir/internal/ports"
	"voicefir/internal/providers/openai"
	"voicefir/internal/providers/whisperhttp"
	"voicefir/internal/usecase"
)

// Services is the assembled runtime graph.
type Services struct {
	Controller *usecase.SessionController
	Config     config.Config
	Logger     zerolog.Logger
	// Endpoint is the transcription target shown to the user.
	Endpoint string
}

// Build wires all backend dependencies for the current runtime.
func Build(eventSink ports.EventSink, clipboard ports.Clipboard) (Services, error) {
	return build(eventSink, clipboard, os.Stderr)
}

func build(eventSink ports.EventSink, clipboard ports.Clipboard, logOut io.Writer) (Services, error) {
	cfg, err := config.Load()
	if err != nil {
		return Services{}, err
	}
	logger := logging.New(cfg.Log, logOut)

	capture, err := newCapture(cfg.Audio)
	if err != nil {
		return Services{}, err
	}
	uploader, endpoint := newUploader(cfg)

	audioCfg := ports.AudioConfig{
		SampleRate:  cfg.Audio.SampleRate,
		Channels:    cfg.Audio.Channels,
		Encoding:    cfg.Audio.Encoding,
		InputFormat: cfg.Audio.InputFormat,
		InputDevice: cfg.Audio.InputDevice,
	}

	controller := usecase.NewSessionController(
		capture,
		audio.NewPackager(audioCfg),
		uploader,
		clipboard,
		notify.New(cfg.Notify.Enabled, logger),
		eventSink,
		usecase.Config{
			Audio:           audioCfg,
			ChunkSize:       cfg.Session.ChunkSize,
			UploadTimeout:   cfg.Session.UploadTimeout,
			CopyToClipboard: cfg.Session.CopyToClipboard,
			Logger:          &logger,
		},
	)

	logger.Info().
		Str("provider", cfg.Provider).
		Str("endpoint", endpoint).
		Str("capture", cfg.Audio.Backend).
		Str("encoding", cfg.Audio.Encoding).
		Msg("services ready")

	return Services{Controller: controller, Config: cfg, Logger: logger, Endpoint: endpoint}, nil
}

func newCapture(cfg config.AudioConfig) (ports.AudioCapture, error) {
	switch cfg.Backend {
	case "portaudio":
		capture, err := audio.NewPortAudioCapture()
		if err != nil {
			return nil, fmt.Errorf("portaudio capture: %w", err)
		}
		return capture, nil
	default:
		return audio.NewFFMPEGCapture(cfg.FFMPEGCommand), nil
	}
}

func newUploader(cfg config.Config) (ports.Uploader, string) {
	if cfg.Provider == "openai" {
		return openai.NewUploader(openai.Config{
			APIKey:    cfg.OpenAI.APIKey,
			BaseURL:   cfg.OpenAI.BaseURL,
			Model:     cfg.OpenAI.Model,
			Language:  cfg.OpenAI.Language,
			Translate: cfg.OpenAI.Translate,
		}), cfg.OpenAI.BaseURL
	}

	uploader := whisperhttp.NewUploader(whisperhttp.Config{
		BaseURL:   cfg.Transcribe.BaseURL,
		Path:      cfg.Transcribe.Path,
		FieldName: cfg.Transcribe.FieldName,
		Timeout:   cfg.Transcribe.Timeout,
	})
	return uploader, uploader.Endpoint()
}
