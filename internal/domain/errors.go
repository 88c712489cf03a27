package domain

import (
	"errors"
	"fmt"
)

// DeviceAccessError means the microphone could not be acquired: permission
// was denied, no input exists, or the capture backend failed to start.
type DeviceAccessError struct {
	Err error
}

func (e *DeviceAccessError) Error() string {
	if e.Err == nil {
		return "failed to access microphone"
	}
	return "failed to access microphone: " + e.Err.Error()
}

func (e *DeviceAccessError) Unwrap() error { return e.Err }

// NetworkError is a transport failure reaching the transcription endpoint.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return "network error"
	}
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// TranscriptionHTTPError is a non-2xx response from the transcription endpoint.
type TranscriptionHTTPError struct {
	StatusCode int
	Body       string
}

func (e *TranscriptionHTTPError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

// TranscriptionServiceError is a 2xx response that carried an application error.
type TranscriptionServiceError struct {
	Message string
}

func (e *TranscriptionServiceError) Error() string { return e.Message }

// UserMessage renders err as the single line shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var deviceErr *DeviceAccessError
	if errors.As(err, &deviceErr) {
		if deviceErr.Err == nil {
			return "Failed to access microphone"
		}
		return "Failed to access microphone: " + deviceErr.Err.Error()
	}

	var serviceErr *TranscriptionServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Message
	}

	var httpErr *TranscriptionHTTPError
	if errors.As(err, &httpErr) {
		return "Failed to send audio to server: " + httpErr.Error()
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		if netErr.Err == nil {
			return "Failed to send audio to server"
		}
		return "Failed to send audio to server: " + netErr.Err.Error()
	}

	return err.Error()
}

// ErrorCodeFor classifies err for UI error events.
func ErrorCodeFor(err error) ErrorCode {
	var (
		deviceErr  *DeviceAccessError
		serviceErr *TranscriptionServiceError
		httpErr    *TranscriptionHTTPError
		netErr     *NetworkError
	)
	switch {
	case errors.As(err, &deviceErr):
		return ErrorCodeDevice
	case errors.As(err, &serviceErr):
		return ErrorCodeService
	case errors.As(err, &httpErr):
		return ErrorCodeHTTP
	case errors.As(err, &netErr):
		return ErrorCodeNetwork
	default:
		return ErrorCodeService
	}
}
