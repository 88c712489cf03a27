package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"voicefir/internal/logging"
)

const envPrefix = "VOICEFIR"

// Config stores runtime configuration.
type Config struct {
	Provider   string           `mapstructure:"provider" validate:"oneof=http openai"`
	Transcribe TranscribeConfig `mapstructure:"transcribe"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Audio      AudioConfig      `mapstructure:"audio"`
	Session    SessionConfig    `mapstructure:"session"`
	Notify     NotifyConfig     `mapstructure:"notify"`
	Log        logging.Config   `mapstructure:"log"`
}

type TranscribeConfig struct {
	BaseURL   string        `mapstructure:"base_url" validate:"required,url"`
	Path      string        `mapstructure:"path" validate:"required"`
	FieldName string        `mapstructure:"field_name" validate:"required"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

type OpenAIConfig struct {
	APIKey    string `mapstructure:"api_key"`
	BaseURL   string `mapstructure:"base_url" validate:"omitempty,url"`
	Model     string `mapstructure:"model"`
	Language  string `mapstructure:"language"`
	Translate bool   `mapstructure:"translate"`
}

type AudioConfig struct {
	Backend       string `mapstructure:"backend" validate:"oneof=ffmpeg portaudio"`
	FFMPEGCommand string `mapstructure:"ffmpeg_command"`
	InputFormat   string `mapstructure:"input_format"`
	InputDevice   string `mapstructure:"input_device"`
	SampleRate    int    `mapstructure:"sample_rate" validate:"min=1"`
	Channels      int    `mapstructure:"channels" validate:"min=1,max=2"`
	Encoding      string `mapstructure:"encoding" validate:"oneof=wav webm"`
}

type SessionConfig struct {
	ChunkSize       int           `mapstructure:"chunk_size" validate:"min=256"`
	UploadTimeout   time.Duration `mapstructure:"upload_timeout" validate:"gte=0"`
	CopyToClipboard bool          `mapstructure:"copy_to_clipboard"`
}

type NotifyConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

var defaults = map[string]any{
	"provider":                  "http",
	"transcribe.base_url":       "http://localhost:5000",
	"transcribe.path":           "/transcribe",
	"transcribe.field_name":     "audio",
	"transcribe.timeout":        "120s",
	"openai.api_key":            "",
	"openai.base_url":           "https://api.openai.com/v1",
	"openai.model":              "whisper-1",
	"openai.language":           "",
	"openai.translate":          false,
	"audio.backend":             "ffmpeg",
	"audio.ffmpeg_command":      "ffmpeg",
	"audio.input_format":        "pulse",
	"audio.input_device":        "default",
	"audio.sample_rate":         16000,
	"audio.channels":            1,
	"audio.encoding":            "wav",
	"session.chunk_size":        4096,
	"session.upload_timeout":    "0s",
	"session.copy_to_clipboard": false,
	"notify.enabled":            false,
	"log.level":                 "info",
	"log.format":                "console",
	"log.no_color":              false,
}

// Load resolves configuration from an optional dotenv file, an optional
// config file, VOICEFIR_* environment variables and defaults.
func Load() (Config, error) {
	if err := loadDotenv(); err != nil {
		return Config{}, err
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("openai.api_key", envPrefix+"_OPENAI_API_KEY", "OPENAI_API_KEY"); err != nil {
		return Config{}, err
	}

	if path := strings.TrimSpace(os.Getenv(envPrefix + "_CONFIG")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and cross-field rules.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			fields := make([]string, 0, len(invalid))
			for _, fe := range invalid {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.Provider == "openai" && strings.TrimSpace(c.OpenAI.APIKey) == "" {
		return errors.New("invalid configuration: openai.api_key is required when provider is openai")
	}
	if c.Audio.Backend == "portaudio" && c.Audio.Encoding != "wav" {
		return errors.New("invalid configuration: portaudio capture only supports the wav encoding")
	}
	return nil
}

func (c *Config) normalize() {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	c.Audio.Backend = strings.ToLower(strings.TrimSpace(c.Audio.Backend))
	c.Audio.Encoding = strings.ToLower(strings.TrimSpace(c.Audio.Encoding))
	c.OpenAI.APIKey = strings.TrimSpace(c.OpenAI.APIKey)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
}

// loadDotenv loads VOICEFIR_ENV_FILE, or ./.env when present. Variables
// already set in the environment win.
func loadDotenv() error {
	if path := strings.TrimSpace(os.Getenv(envPrefix + "_ENV_FILE")); path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %q: %w", path, err)
		}
		return nil
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("failed to load .env: %w", err)
		}
	}
	return nil
}
