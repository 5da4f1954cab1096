// Command tutor plays voice lessons in the terminal.
//
//	tutor [flags]          play the landing demo or a script file
//	tutor --mode lesson    run the question-by-question lesson
//	tutor schema           print the script file JSON schema
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/koscakluka/ema-tutor/core/script"
	"github.com/koscakluka/ema-tutor/internal/config"
	"github.com/koscakluka/ema-tutor/internal/observe"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const scopeName = "github.com/koscakluka/ema-tutor/cmd/tutor"

var logger = otelslog.NewLogger(scopeName)

var version = "dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "schema" {
		schema, err := script.MarshalJSONSchema()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(string(schema))
		return
	}

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	providerCfg := observe.ProviderConfig{ServiceVersion: version}
	if cfg.LogFile != "" {
		logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer logFile.Close()
		providerCfg.LogWriter = logFile
	}

	provider, err := observe.InitProvider(ctx, providerCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("failed to shut down telemetry", "error", err)
		}
	}()

	if cfg.MetricsAddr != "" {
		go func() {
			if err := provider.Serve(ctx, cfg.MetricsAddr); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	speech, err := newSpeech(cfg)
	if err != nil {
		return err
	}
	defer speech.Close()

	var model tea.Model
	switch cfg.Mode {
	case config.ModeLesson:
		model, err = newLessonModel(ctx, cfg, speech)
	default:
		model, err = newDemoModel(ctx, cfg, speech)
	}
	if err != nil {
		return err
	}

	if _, err := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen()).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal ui failed: %w", err)
	}
	return nil
}
