package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("VOICEFIR_ENV_FILE", "")
	t.Setenv("VOICEFIR_CONFIG", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Provider != "http" {
		t.Fatalf("unexpected provider: %q", cfg.Provider)
	}
	if cfg.Transcribe.BaseURL != "http://localhost:5000" || cfg.Transcribe.Path != "/transcribe" || cfg.Transcribe.FieldName != "audio" {
		t.Fatalf("unexpected transcribe config: %+v", cfg.Transcribe)
	}
	if cfg.Transcribe.Timeout != 120*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.Transcribe.Timeout)
	}
	if cfg.Audio.SampleRate != 16000 || cfg.Audio.Channels != 1 || cfg.Audio.Encoding != "wav" {
		t.Fatalf("unexpected audio config: %+v", cfg.Audio)
	}
	if cfg.Audio.Backend != "ffmpeg" || cfg.Audio.InputFormat != "pulse" || cfg.Audio.InputDevice != "default" {
		t.Fatalf("unexpected capture config: %+v", cfg.Audio)
	}
	if cfg.Session.ChunkSize != 4096 || cfg.Session.UploadTimeout != 0 || cfg.Session.CopyToClipboard {
		t.Fatalf("unexpected session config: %+v", cfg.Session)
	}
	if cfg.Notify.Enabled {
		t.Fatalf("notifications should default to off")
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "console" {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
}

func TestLoadRespectsEnvOverrides(t *testing.T) {
	t.Setenv("VOICEFIR_ENV_FILE", "")
	t.Setenv("VOICEFIR_CONFIG", "")
	t.Setenv("VOICEFIR_PROVIDER", "OpenAI")
	t.Setenv("VOICEFIR_OPENAI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-fallback")
	t.Setenv("VOICEFIR_OPENAI_TRANSLATE", "true")
	t.Setenv("VOICEFIR_TRANSCRIBE_BASE_URL", "http://stt.internal:9000")
	t.Setenv("VOICEFIR_TRANSCRIBE_TIMEOUT", "15s")
	t.Setenv("VOICEFIR_AUDIO_ENCODING", "webm")
	t.Setenv("VOICEFIR_AUDIO_INPUT_FORMAT", "alsa")
	t.Setenv("VOICEFIR_AUDIO_INPUT_DEVICE", "hw:1")
	t.Setenv("VOICEFIR_AUDIO_SAMPLE_RATE", "48000")
	t.Setenv("VOICEFIR_SESSION_CHUNK_SIZE", "512")
	t.Setenv("VOICEFIR_SESSION_UPLOAD_TIMEOUT", "30s")
	t.Setenv("VOICEFIR_SESSION_COPY_TO_CLIPBOARD", "1")
	t.Setenv("VOICEFIR_NOTIFY_ENABLED", "true")
	t.Setenv("VOICEFIR_LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-fallback" || !cfg.OpenAI.Translate {
		t.Fatalf("unexpected provider config: %q %+v", cfg.Provider, cfg.OpenAI)
	}
	if cfg.Transcribe.BaseURL != "http://stt.internal:9000" || cfg.Transcribe.Timeout != 15*time.Second {
		t.Fatalf("unexpected transcribe config: %+v", cfg.Transcribe)
	}
	if cfg.Audio.Encoding != "webm" || cfg.Audio.InputFormat != "alsa" || cfg.Audio.InputDevice != "hw:1" || cfg.Audio.SampleRate != 48000 {
		t.Fatalf("unexpected audio config: %+v", cfg.Audio)
	}
	if cfg.Session.ChunkSize != 512 || cfg.Session.UploadTimeout != 30*time.Second || !cfg.Session.CopyToClipboard {
		t.Fatalf("unexpected session config: %+v", cfg.Session)
	}
	if !cfg.Notify.Enabled || cfg.Log.Level != "debug" {
		t.Fatalf("unexpected notify/log config: %+v %+v", cfg.Notify, cfg.Log)
	}
}

func TestLoadReadsDotenvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "voicefir.env")
	if err := os.WriteFile(envFile, []byte("VOICEFIR_TRANSCRIBE_PATH=/v2/transcribe\n"), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	t.Setenv("VOICEFIR_CONFIG", "")
	t.Setenv("VOICEFIR_ENV_FILE", envFile)
	// Registered so t.Setenv restores the pre-test state after godotenv sets it.
	t.Setenv("VOICEFIR_TRANSCRIBE_PATH", "")
	os.Unsetenv("VOICEFIR_TRANSCRIBE_PATH")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Transcribe.Path != "/v2/transcribe" {
		t.Fatalf("expected dotenv value, got %q", cfg.Transcribe.Path)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "voicefir.yaml")
	contents := "transcribe:\n  base_url: http://files.example:7000\naudio:\n  channels: 2\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	t.Setenv("VOICEFIR_ENV_FILE", "")
	t.Setenv("VOICEFIR_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Transcribe.BaseURL != "http://files.example:7000" || cfg.Audio.Channels != 2 {
		t.Fatalf("unexpected config from file: %+v %+v", cfg.Transcribe, cfg.Audio)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown provider":       {"VOICEFIR_PROVIDER": "deepgram"},
		"unknown encoding":       {"VOICEFIR_AUDIO_ENCODING": "mp3"},
		"bad base url":           {"VOICEFIR_TRANSCRIBE_BASE_URL": "not a url"},
		"openai without key":     {"VOICEFIR_PROVIDER": "openai", "OPENAI_API_KEY": "", "VOICEFIR_OPENAI_API_KEY": ""},
		"portaudio with webm":    {"VOICEFIR_AUDIO_BACKEND": "portaudio", "VOICEFIR_AUDIO_ENCODING": "webm"},
		"zero sample rate":       {"VOICEFIR_AUDIO_SAMPLE_RATE": "0"},
		"missing config file":    {"VOICEFIR_CONFIG": "/does/not/exist.yaml"},
		"missing dotenv file":    {"VOICEFIR_ENV_FILE": "/does/not/exist.env"},
		"chunk size below floor": {"VOICEFIR_SESSION_CHUNK_SIZE": "16"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("VOICEFIR_ENV_FILE", "")
			t.Setenv("VOICEFIR_CONFIG", "")
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected load error")
			}
		})
	}
}

func TestValidateReportsFieldNames(t *testing.T) {
	t.Parallel()

	err := Config{Provider: "nope"}.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "Config.Provider (oneof)") {
		t.Fatalf("unexpected validation message: %v", err)
	}
}
