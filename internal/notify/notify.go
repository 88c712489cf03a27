// Package notify shows desktop notifications for finished sessions.
package notify

import (
	"github.com/gen2brain/beeep"
	"github.com/rs/zerolog"
)

const (
	appName    = "voicefir"
	maxMessage = 100
)

type sendFunc func(title, message string, icon string) error

// Notifier sends desktop notifications through the OS notifier.
type Notifier struct {
	enabled bool
	send    sendFunc
	log     zerolog.Logger
}

// New creates a Notifier. A disabled Notifier drops every message.
func New(enabled bool, log zerolog.Logger) *Notifier {
	return &Notifier{
		enabled: enabled,
		send:    func(title, message string, icon string) error { return beeep.Notify(title, message, icon) },
		log:     log.With().Str("component", "notify").Logger(),
	}
}

// Notify implements ports.Notifier.
func (n *Notifier) Notify(title string, message string) {
	if !n.enabled {
		return
	}

	full := appName
	if title != "" {
		full = appName + ": " + title
	}
	if err := n.send(full, truncate(message, maxMessage), ""); err != nil {
		n.log.Debug().Err(err).Msg("desktop notification failed")
	}
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
