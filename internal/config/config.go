package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	tutor "github.com/koscakluka/ema-tutor/core"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ModeDemo   = "demo"
	ModeLesson = "lesson"

	AudioMiniaudio = "miniaudio"
	AudioPortaudio = "portaudio"
	AudioNone      = "none"
)

type Config struct {
	Mode string
	// ScriptFile replaces the built-in demo script when set.
	ScriptFile      string
	Language        string
	Voice           string
	PreferredVoices []string
	AudioBackend    string
	Encouragement   string
	MaxAttempts     int
	MetricsAddr     string
	// LogFile receives log records while the terminal UI owns the screen.
	LogFile string

	Deepgram struct {
		APIKey string
		Model  string
	}

	Timings struct {
		Settle      time.Duration
		Step        time.Duration
		Match       time.Duration
		Retry       time.Duration
		ErrorRetry  time.Duration
		Narration   time.Duration
		Recognition time.Duration
	}
}

// Load reads configuration from flags, TUTOR_* environment variables, an
// optional config file and .env, in that order of precedence.
func Load(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("TUTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	defaults := tutor.DefaultTimings()
	v.SetDefault("mode", ModeDemo)
	v.SetDefault("language", "en-US")
	v.SetDefault("preferred_voices", []string{"Google", "Microsoft", "Alex", "Samantha"})
	v.SetDefault("audio", AudioMiniaudio)
	v.SetDefault("encouragement", tutor.DefaultEncouragement)
	v.SetDefault("max_attempts", 0)
	v.SetDefault("log_file", "tutor.log")
	v.SetDefault("deepgram.model", "nova-3")
	v.SetDefault("timings.settle", defaults.SettleDelay)
	v.SetDefault("timings.step", defaults.StepDelay)
	v.SetDefault("timings.match", defaults.MatchDelay)
	v.SetDefault("timings.retry", defaults.RetryDelay)
	v.SetDefault("timings.error_retry", defaults.ErrorRetryDelay)
	v.SetDefault("timings.narration", defaults.NarrationTimeout)
	v.SetDefault("timings.recognition", defaults.RecognitionTimeout)

	_ = v.BindEnv("deepgram.api_key", "DEEPGRAM_API_KEY")

	flags := pflag.NewFlagSet("tutor", pflag.ContinueOnError)
	configFile := flags.String("config", "", "path to a YAML config file")
	flags.String("mode", ModeDemo, "demo or lesson")
	flags.String("script", "", "YAML lesson script to play instead of the built-in demo")
	flags.String("language", "en-US", "script language and recognition locale")
	flags.String("voice", "", "synthesizer voice id")
	flags.StringSlice("preferred-voices", nil, "voice name fragments to prefer")
	flags.String("audio", AudioMiniaudio, "audio backend: miniaudio, portaudio or none")
	flags.Int("max-attempts", 0, "wrong answers before moving on, 0 keeps asking")
	flags.String("metrics-addr", "", "serve Prometheus metrics on this address")
	flags.String("log-file", "tutor.log", "file receiving log records")
	flags.Duration("settle-delay", defaults.SettleDelay, "pause between a question and listening")
	flags.Duration("step-delay", defaults.StepDelay, "pause between statements")
	flags.Duration("retry-delay", defaults.RetryDelay, "pause between a wrong answer and listening again")
	if err := flags.Parse(args); err != nil {
		return Config{}, fmt.Errorf("failed to parse flags: %w", err)
	}

	bindings := map[string]string{
		"mode":             "mode",
		"script":           "script",
		"language":         "language",
		"voice":            "voice",
		"preferred_voices": "preferred-voices",
		"audio":            "audio",
		"max_attempts":     "max-attempts",
		"metrics_addr":     "metrics-addr",
		"log_file":         "log-file",
		"timings.settle":   "settle-delay",
		"timings.step":     "step-delay",
		"timings.retry":    "retry-delay",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return Config{}, fmt.Errorf("failed to bind flag %q: %w", flag, err)
		}
	}

	if *configFile != "" {
		v.SetConfigFile(*configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var c Config
	c.Mode = v.GetString("mode")
	c.ScriptFile = v.GetString("script")
	c.Language = v.GetString("language")
	c.Voice = v.GetString("voice")
	c.PreferredVoices = splitList(v.GetStringSlice("preferred_voices"))
	c.AudioBackend = v.GetString("audio")
	c.Encouragement = v.GetString("encouragement")
	c.MaxAttempts = v.GetInt("max_attempts")
	c.MetricsAddr = v.GetString("metrics_addr")
	c.LogFile = v.GetString("log_file")

	c.Deepgram.APIKey = v.GetString("deepgram.api_key")
	c.Deepgram.Model = v.GetString("deepgram.model")

	c.Timings.Settle = v.GetDuration("timings.settle")
	c.Timings.Step = v.GetDuration("timings.step")
	c.Timings.Match = v.GetDuration("timings.match")
	c.Timings.Retry = v.GetDuration("timings.retry")
	c.Timings.ErrorRetry = v.GetDuration("timings.error_retry")
	c.Timings.Narration = v.GetDuration("timings.narration")
	c.Timings.Recognition = v.GetDuration("timings.recognition")

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	var errs []error
	switch c.Mode {
	case ModeDemo, ModeLesson:
	default:
		errs = append(errs, fmt.Errorf("unknown mode %q", c.Mode))
	}
	switch c.AudioBackend {
	case AudioMiniaudio, AudioPortaudio, AudioNone:
	default:
		errs = append(errs, fmt.Errorf("unknown audio backend %q", c.AudioBackend))
	}
	if c.MaxAttempts < 0 {
		errs = append(errs, fmt.Errorf("max attempts must not be negative"))
	}
	for name, d := range map[string]time.Duration{
		"settle": c.Timings.Settle, "step": c.Timings.Step, "match": c.Timings.Match,
		"retry": c.Timings.Retry, "error retry": c.Timings.ErrorRetry,
	} {
		if d < 0 {
			errs = append(errs, fmt.Errorf("%s delay must not be negative", name))
		}
	}
	return errors.Join(errs...)
}

// PlayerTimings converts the configured delays for the script player.
func (c Config) PlayerTimings() tutor.Timings {
	return tutor.Timings{
		SettleDelay:        c.Timings.Settle,
		StepDelay:          c.Timings.Step,
		MatchDelay:         c.Timings.Match,
		RetryDelay:         c.Timings.Retry,
		ErrorRetryDelay:    c.Timings.ErrorRetry,
		NarrationTimeout:   c.Timings.Narration,
		RecognitionTimeout: c.Timings.Recognition,
	}
}

// splitList accepts both repeated values and a single comma separated one,
// as environment variables arrive.
func splitList(values []string) []string {
	var list []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				list = append(list, part)
			}
		}
	}
	return list
}
