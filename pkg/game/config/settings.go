// Package config loads demo settings and action profiles.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"actionpad/pkg/engine/geometry"
)

// ErrInvalidSettings is returned when a loaded setting is out of range.
var ErrInvalidSettings = errors.New("config: invalid settings")

// Run modes.
const (
	ModeEbiten   = "ebiten"
	ModeTerminal = "terminal"
)

const envPrefix = "ACTIONPAD"

// Settings is the resolved demo configuration.
type Settings struct {
	Mode      string
	LogLevel  string
	LogFormat string
	// LogFile receives log lines when set; otherwise they go to stderr, or
	// nowhere in terminal mode.
	LogFile      string
	ProfilesFile string
	// LocaleFile is a .po catalog replacing the built-in English messages.
	LocaleFile string
	Joystick   JoystickSettings
}

// JoystickSettings configures the on-screen joystick.
type JoystickSettings struct {
	Deadzone           float64
	DirectionThreshold float64
	EightWay           bool
	Radius             float64
}

// Options returns the geometry options for the joystick.
func (j JoystickSettings) Options() geometry.Options {
	return geometry.Options{
		Deadzone:           j.Deadzone,
		DirectionThreshold: j.DirectionThreshold,
		EightWay:           j.EightWay,
	}
}

// flag name -> viper key
var flagKeys = map[string]string{
	"mode":                         "mode",
	"log-level":                    "log.level",
	"log-format":                   "log.format",
	"log-file":                     "log.file",
	"locale-file":                  "locale.file",
	"profiles":                     "profiles.file",
	"joystick-deadzone":            "joystick.deadzone",
	"joystick-direction-threshold": "joystick.direction_threshold",
	"joystick-eight-way":           "joystick.eight_way",
	"joystick-radius":              "joystick.radius",
}

// NewFlagSet declares the demo's command-line flags.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringP("config", "c", "", "settings file (yaml, json or toml)")
	fs.StringP("mode", "m", ModeEbiten, "run mode: ebiten or terminal")
	fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.String("log-format", "console", "log format: console, text, json")
	fs.String("log-file", "", "write logs to this file")
	fs.String("locale-file", "", "message catalog (.po) for the demo text")
	fs.StringP("profiles", "p", "", "action profile file (yaml); built-in profiles when empty")
	fs.Float64("joystick-deadzone", geometry.DefaultDeadzone, "joystick deadzone as a fraction of the radius")
	fs.Float64("joystick-direction-threshold", geometry.DefaultDirectionThreshold, "four-way sector half-width in degrees")
	fs.Bool("joystick-eight-way", false, "report diagonal joystick directions")
	fs.Float64("joystick-radius", 60, "joystick radius in pixels; 0 disables the joystick")
	return fs
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", ModeEbiten)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("locale.file", "")
	v.SetDefault("profiles.file", "")
	v.SetDefault("joystick.deadzone", geometry.DefaultDeadzone)
	v.SetDefault("joystick.direction_threshold", geometry.DefaultDirectionThreshold)
	v.SetDefault("joystick.eight_way", false)
	v.SetDefault("joystick.radius", 60.0)
}

// Load parses args with fs and resolves the settings. Explicit flags win over
// ACTIONPAD_* environment variables, which win over the settings file, which
// wins over the defaults.
func Load(fs *pflag.FlagSet, args []string) (*Settings, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for name, key := range flagKeys {
		if f := fs.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading settings %s: %w", path, err)
		}
	}

	s := &Settings{
		Mode:         strings.ToLower(v.GetString("mode")),
		LogLevel:     v.GetString("log.level"),
		LogFormat:    v.GetString("log.format"),
		LogFile:      v.GetString("log.file"),
		ProfilesFile: v.GetString("profiles.file"),
		LocaleFile:   v.GetString("locale.file"),
		Joystick: JoystickSettings{
			Deadzone:           v.GetFloat64("joystick.deadzone"),
			DirectionThreshold: v.GetFloat64("joystick.direction_threshold"),
			EightWay:           v.GetBool("joystick.eight_way"),
			Radius:             v.GetFloat64("joystick.radius"),
		},
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the mode and the joystick settings.
func (s *Settings) Validate() error {
	switch s.Mode {
	case ModeEbiten, ModeTerminal:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidSettings, s.Mode)
	}
	if err := s.Joystick.Options().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	if !(s.Joystick.Radius >= 0) || math.IsInf(s.Joystick.Radius, 0) {
		return fmt.Errorf("%w: joystick radius %v", ErrInvalidSettings, s.Joystick.Radius)
	}
	return nil
}
