package whisperhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"voicefir/internal/domain"
)

const (
	defaultBaseURL   = "http://localhost:5000"
	defaultPath      = "/transcribe"
	defaultFieldName = "audio"
	defaultTimeout   = 120 * time.Second

	maxErrorBody = 2048
)

// Config controls the transcription endpoint.
type Config struct {
	BaseURL   string
	Path      string
	FieldName string
	Timeout   time.Duration
	Headers   map[string]string
}

// Uploader implements ports.Uploader against a `POST /transcribe` service.
type Uploader struct {
	cfg    Config
	client *http.Client
}

func NewUploader(cfg Config) *Uploader {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Path == "" {
		cfg.Path = defaultPath
	}
	if cfg.FieldName == "" {
		cfg.FieldName = defaultFieldName
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Uploader{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Endpoint returns the resolved transcription URL.
func (u *Uploader) Endpoint() string {
	return strings.TrimRight(u.cfg.BaseURL, "/") + "/" + strings.TrimLeft(u.cfg.Path, "/")
}

type transcribeResponse struct {
	Transcript    *string `json:"transcript"`
	Language      string  `json:"language"`
	IsTranslation bool    `json:"is_translation"`
	Error         string  `json:"error"`
}

// Upload sends the payload as a single multipart file field and maps the reply.
func (u *Uploader) Upload(ctx context.Context, payload domain.Payload) (domain.TranscriptResult, error) {
	body, contentType, err := encodeMultipart(u.cfg.FieldName, payload)
	if err != nil {
		return domain.TranscriptResult{}, fmt.Errorf("build multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.Endpoint(), body)
	if err != nil {
		return domain.TranscriptResult{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	for k, v := range u.cfg.Headers {
		req.Header.Set(k, v)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return domain.TranscriptResult{}, &domain.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return domain.TranscriptResult{}, &domain.TranscriptionHTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	var decoded transcribeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.TranscriptResult{}, &domain.TranscriptionServiceError{
			Message: fmt.Sprintf("malformed transcription response: %v", err),
		}
	}
	if decoded.Error != "" {
		return domain.TranscriptResult{}, &domain.TranscriptionServiceError{Message: decoded.Error}
	}
	if decoded.Transcript == nil {
		return domain.TranscriptResult{}, &domain.TranscriptionServiceError{
			Message: "transcription response did not include a transcript",
		}
	}

	return domain.TranscriptResult{
		Transcript:    strings.TrimSpace(*decoded.Transcript),
		Language:      decoded.Language,
		IsTranslation: decoded.IsTranslation,
	}, nil
}

func encodeMultipart(field string, payload domain.Payload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fileName := payload.FileName
	if fileName == "" {
		fileName = "recording"
	}

	var (
		part io.Writer
		err  error
	)
	if payload.ContentType != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			`form-data; name="`+escapeQuotes(field)+`"; filename="`+escapeQuotes(fileName)+`"`)
		header.Set("Content-Type", payload.ContentType)
		part, err = w.CreatePart(header)
	} else {
		part, err = w.CreateFormFile(field, fileName)
	}
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(payload.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func escapeQuotes(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
