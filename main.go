package main

import (
	"embed"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"voicefir/internal/logging"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	app := NewApp()

	err := wails.Run(&options.App{
		Title:  "voicefir",
		Width:  420,
		Height: 360,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		OnStartup:  app.startup,
		OnShutdown: app.shutdown,
		Bind: []interface{}{
			app,
		},
	})
	if err != nil {
		log := hostLogger(os.Stderr)
		log.Fatal().Err(err).Msg("wails run failed")
	}
}

// hostLogger is used before config is loaded, so it runs at the default level.
func hostLogger(w io.Writer) zerolog.Logger {
	return logging.New(logging.Config{Level: "info", Format: "console", NoColor: true}, w).
		With().Str("component", "host").Logger()
}
