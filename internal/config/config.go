package config

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const (
	ModeWeb      = "web"
	ModeTerminal = "terminal"

	FullBoardDraw     = "draw"
	FullBoardContinue = "continue"

	ProfileAuto  = "auto"
	ProfileASCII = "ascii"
)

var (
	ErrUnknownMode      = errors.New("unknown mode")
	ErrUnknownFullBoard = errors.New("unknown full board policy")
	ErrUnknownProfile   = errors.New("unknown terminal profile")
)

type Config struct {
	LogLevel   string   `yaml:"log-level" env:"GOMOKU_LOG_LEVEL" env-default:"info"`
	Mode       string   `yaml:"mode" env:"GOMOKU_MODE" env-default:"web"`
	HTTPPort   string   `yaml:"http-port" env:"GOMOKU_HTTP_PORT" env-default:"9090"`
	SocketPort string   `yaml:"socket-port" env:"GOMOKU_SOCKET_PORT" env-default:"9091"`
	Rules      Rules    `yaml:"rules"`
	Terminal   Terminal `yaml:"terminal"`
}

type Rules struct {
	BoardSize     int    `yaml:"board-size" env-default:"15"`
	WinLength     int    `yaml:"win-length" env-default:"5"`
	AllowOverline bool   `yaml:"allow-overline" env-default:"false"`
	OnFullBoard   string `yaml:"on-full-board" env-default:"draw"`
}

type Terminal struct {
	// Profile is "auto" to detect color support, or "ascii" for plain output.
	Profile string `yaml:"profile" env:"GOMOKU_TERMINAL_PROFILE" env-default:"auto"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch that.Mode {
	case ModeWeb, ModeTerminal:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, that.Mode)
	}

	switch that.Rules.OnFullBoard {
	case FullBoardDraw, FullBoardContinue:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFullBoard, that.Rules.OnFullBoard)
	}

	switch that.Terminal.Profile {
	case ProfileAuto, ProfileASCII:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProfile, that.Terminal.Profile)
	}

	if err := that.Rules.GameRules().Validate(); err != nil {
		return fmt.Errorf("invalid rules config: %w", err)
	}

	return nil
}

// GameRules converts the config section into game rules.
func (that *Rules) GameRules() entity.Rules {
	return entity.Rules{
		Size:            that.BoardSize,
		WinLength:       that.WinLength,
		AllowOverline:   that.AllowOverline,
		DrawOnFullBoard: that.OnFullBoard == FullBoardDraw,
	}
}
