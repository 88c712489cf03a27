package openai

import (
	"bytes"
	"context"
	"errors"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"voicefir/internal/domain"
)

const defaultModel = goopenai.Whisper1

// Config controls the OpenAI-compatible audio endpoint.
type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	Language  string
	Translate bool
}

// Uploader implements ports.Uploader with the OpenAI audio API.
type Uploader struct {
	cfg    Config
	client *goopenai.Client
}

func NewUploader(cfg Config) *Uploader {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	return &Uploader{cfg: cfg, client: goopenai.NewClientWithConfig(clientCfg)}
}

// Upload transcribes the payload, or translates it to English when configured.
func (u *Uploader) Upload(ctx context.Context, payload domain.Payload) (domain.TranscriptResult, error) {
	if strings.TrimSpace(u.cfg.APIKey) == "" {
		return domain.TranscriptResult{}, &domain.TranscriptionServiceError{Message: "OpenAI API key is not configured"}
	}

	fileName := payload.FileName
	if fileName == "" {
		fileName = "recording.wav"
	}
	req := goopenai.AudioRequest{
		Model:    u.cfg.Model,
		FilePath: fileName,
		Reader:   bytes.NewReader(payload.Data),
		Format:   goopenai.AudioResponseFormatVerboseJSON,
	}

	var (
		resp goopenai.AudioResponse
		err  error
	)
	if u.cfg.Translate {
		resp, err = u.client.CreateTranslation(ctx, req)
	} else {
		req.Language = u.cfg.Language
		resp, err = u.client.CreateTranscription(ctx, req)
	}
	if err != nil {
		return domain.TranscriptResult{}, mapError(err)
	}

	language := domain.LanguageCode(resp.Language)
	if language == "" {
		language = domain.LanguageCode(u.cfg.Language)
	}
	return domain.TranscriptResult{
		Transcript:    strings.TrimSpace(resp.Text),
		Language:      language,
		IsTranslation: u.cfg.Translate && language != "" && !domain.IsEnglish(language),
	}, nil
}

func mapError(err error) error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return &domain.TranscriptionHTTPError{StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message}
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		body := ""
		if reqErr.Err != nil {
			body = reqErr.Err.Error()
		}
		return &domain.TranscriptionHTTPError{StatusCode: reqErr.HTTPStatusCode, Body: body}
	}
	return &domain.NetworkError{Err: err}
}
