package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	app "github.com/rocketscienceinc/gomoku-backend/internal"
	"github.com/rocketscienceinc/gomoku-backend/internal/config"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the YAML config file")
	mode := flag.String("mode", "", "override the config mode (web or terminal)")
	flag.Parse()

	if err := run(*configPath, *mode); err != nil {
		fmt.Fprintf(os.Stderr, "gomoku: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, mode string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recovered from panic: %v", r)
		}
	}()

	conf := config.MustLoad(configPath)
	if mode != "" {
		conf.Mode = mode
		if err = conf.Validate(); err != nil {
			return fmt.Errorf("invalid -mode: %w", err)
		}
	}

	if err = app.RunApp(newLogger(conf), conf); err != nil {
		return fmt.Errorf("app run failed: %w", err)
	}

	return nil
}

// newLogger writes JSON logs to stdout, or to stderr when the terminal front owns stdout.
// An unknown level falls back to info.
func newLogger(conf *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(conf.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	var out io.Writer = os.Stdout
	if conf.Mode == config.ModeTerminal {
		out = os.Stderr
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
}
