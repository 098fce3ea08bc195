package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lowaak/hiit-timer/internal/workout"
)

// EnvPrefix is prepended to every key when reading the environment,
// e.g. HIIT_WORK_MINUTES
const EnvPrefix = "HIIT"

// Setting keys, shared by flags, environment and the YAML file
const (
	KeyConfig            = "config"
	KeyWarmupSeconds     = "warmup_seconds"
	KeyWorkMinutes       = "work_minutes"
	KeyHighSeconds       = "high_seconds"
	KeyLowSeconds        = "low_seconds"
	KeyIntervalsPerBlock = "intervals_per_block"
	KeyBlockBreakSeconds = "block_break_seconds"
	KeyCooldownSeconds   = "cooldown_seconds"
	KeySound             = "sound"
	KeyVibration         = "vibration"
	KeySpeech            = "speech"
	KeyKeepAwake         = "keep_awake"
	KeyLogFile           = "log_file"
	KeyFrameInterval     = "frame_interval"
)

const (
	DefaultFrameInterval = 100 * time.Millisecond
	DefaultLogFile       = "hiit-timer.log"

	configName = "hiit-timer"
)

// Settings is everything the application reads from flags, environment and file
type Settings struct {
	WarmupSeconds     int `mapstructure:"warmup_seconds" yaml:"warmup_seconds"`
	WorkMinutes       int `mapstructure:"work_minutes" yaml:"work_minutes"`
	HighSeconds       int `mapstructure:"high_seconds" yaml:"high_seconds"`
	LowSeconds        int `mapstructure:"low_seconds" yaml:"low_seconds"`
	IntervalsPerBlock int `mapstructure:"intervals_per_block" yaml:"intervals_per_block"`
	BlockBreakSeconds int `mapstructure:"block_break_seconds" yaml:"block_break_seconds"`
	CooldownSeconds   int `mapstructure:"cooldown_seconds" yaml:"cooldown_seconds"`

	Sound     bool `mapstructure:"sound" yaml:"sound"`
	Vibration bool `mapstructure:"vibration" yaml:"vibration"`
	Speech    bool `mapstructure:"speech" yaml:"speech"`
	KeepAwake bool `mapstructure:"keep_awake" yaml:"keep_awake"`

	LogFile       string        `mapstructure:"log_file" yaml:"log_file"`
	FrameInterval time.Duration `mapstructure:"frame_interval" yaml:"frame_interval"`
}

// FromWorkout copies a workout configuration into Settings, keeping the
// application fields of base
func FromWorkout(base Settings, cfg workout.Config) Settings {
	base.WarmupSeconds = cfg.WarmupSeconds
	base.WorkMinutes = cfg.WorkMinutes
	base.HighSeconds = cfg.HighSeconds
	base.LowSeconds = cfg.LowSeconds
	base.IntervalsPerBlock = cfg.IntervalsPerBlock
	base.BlockBreakSeconds = cfg.BlockBreakSeconds
	base.CooldownSeconds = cfg.CooldownSeconds
	base.Sound = cfg.Sound
	base.Vibration = cfg.Vibration
	base.Speech = cfg.Speech
	base.KeepAwake = cfg.KeepAwake
	return base
}

// Workout returns the plan and cue configuration part of the settings
func (s Settings) Workout() workout.Config {
	return workout.Config{
		WarmupSeconds:     s.WarmupSeconds,
		WorkMinutes:       s.WorkMinutes,
		HighSeconds:       s.HighSeconds,
		LowSeconds:        s.LowSeconds,
		IntervalsPerBlock: s.IntervalsPerBlock,
		BlockBreakSeconds: s.BlockBreakSeconds,
		CooldownSeconds:   s.CooldownSeconds,
		Sound:             s.Sound,
		Vibration:         s.Vibration,
		Speech:            s.Speech,
		KeepAwake:         s.KeepAwake,
	}
}

// Validate checks the workout configuration and the application fields
func (s Settings) Validate() error {
	if err := s.Workout().Validate(); err != nil {
		return err
	}
	if s.FrameInterval <= 0 {
		return fmt.Errorf("frame interval must be positive, got %v", s.FrameInterval)
	}
	return nil
}

// Defaults returns the settings used when nothing overrides them
func Defaults() Settings {
	return FromWorkout(Settings{
		LogFile:       DefaultLogFile,
		FrameInterval: DefaultFrameInterval,
	}, workout.DefaultConfig())
}

// SetDefaults registers Defaults with v
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault(KeyWarmupSeconds, d.WarmupSeconds)
	v.SetDefault(KeyWorkMinutes, d.WorkMinutes)
	v.SetDefault(KeyHighSeconds, d.HighSeconds)
	v.SetDefault(KeyLowSeconds, d.LowSeconds)
	v.SetDefault(KeyIntervalsPerBlock, d.IntervalsPerBlock)
	v.SetDefault(KeyBlockBreakSeconds, d.BlockBreakSeconds)
	v.SetDefault(KeyCooldownSeconds, d.CooldownSeconds)
	v.SetDefault(KeySound, d.Sound)
	v.SetDefault(KeyVibration, d.Vibration)
	v.SetDefault(KeySpeech, d.Speech)
	v.SetDefault(KeyKeepAwake, d.KeepAwake)
	v.SetDefault(KeyLogFile, d.LogFile)
	v.SetDefault(KeyFrameInterval, d.FrameInterval)
}

// BindFlags defines one flag per setting on flags and binds them to v.
// Flags use dashes where keys use underscores.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	d := Defaults()
	flags.String(KeyConfig, "", "path to a YAML config file")
	flags.Int(flagName(KeyWarmupSeconds), d.WarmupSeconds, "warmup length in seconds")
	flags.Int(flagName(KeyWorkMinutes), d.WorkMinutes, "work phase length in minutes")
	flags.Int(flagName(KeyHighSeconds), d.HighSeconds, "high interval length in seconds")
	flags.Int(flagName(KeyLowSeconds), d.LowSeconds, "low interval length in seconds")
	flags.Int(flagName(KeyIntervalsPerBlock), d.IntervalsPerBlock, "high/low pairs between block breaks")
	flags.Int(flagName(KeyBlockBreakSeconds), d.BlockBreakSeconds, "block break length in seconds")
	flags.Int(flagName(KeyCooldownSeconds), d.CooldownSeconds, "cooldown length in seconds")
	flags.Bool(flagName(KeySound), d.Sound, "play tones")
	flags.Bool(flagName(KeyVibration), d.Vibration, "vibrate where supported")
	flags.Bool(flagName(KeySpeech), d.Speech, "speak segment names")
	flags.Bool(flagName(KeyKeepAwake), d.KeepAwake, "keep the screen awake while running")
	flags.String(flagName(KeyLogFile), d.LogFile, "rotating log file")
	flags.Duration(flagName(KeyFrameInterval), d.FrameInterval, "display refresh interval")

	for _, key := range []string{
		KeyConfig, KeyWarmupSeconds, KeyWorkMinutes, KeyHighSeconds, KeyLowSeconds,
		KeyIntervalsPerBlock, KeyBlockBreakSeconds, KeyCooldownSeconds, KeySound,
		KeyVibration, KeySpeech, KeyKeepAwake, KeyLogFile, KeyFrameInterval,
	} {
		if err := v.BindPFlag(key, flags.Lookup(flagName(key))); err != nil {
			return fmt.Errorf("binding flag %s: %w", flagName(key), err)
		}
	}
	return nil
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// NewViper returns a viper instance with defaults and environment binding
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// Load reads the config file, if any, and returns the validated settings.
// An explicit --config path must exist; the default locations may be empty.
func Load(v *viper.Viper) (Settings, error) {
	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, configName))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("reading config: %w", err)
		}
	}
	return decode(v)
}

func decode(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Watch calls onChange with freshly decoded settings each time the config
// file changes. Invalid edits are logged and skipped.
func Watch(v *viper.Viper, logger *log.Logger, onChange func(Settings)) {
	if logger == nil {
		panic("Config: logger cannot be nil")
	}
	if v.ConfigFileUsed() == "" {
		logger.Printf("Config: No config file in use, not watching")
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		s, err := decode(v)
		if err != nil {
			logger.Printf("Config: Ignoring change to %s: %v", e.Name, err)
			return
		}
		logger.Printf("Config: Reloaded %s", e.Name)
		onChange(s)
	})
	v.WatchConfig()
	logger.Printf("Config: Watching %s", v.ConfigFileUsed())
}
