package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/recera/cutpath/cmd/cutpath/internal/config"
	"github.com/recera/cutpath/pkg/api"
	"github.com/recera/cutpath/pkg/debug"
	"github.com/recera/cutpath/pkg/reconcile"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed, color.Bold)
	dimColor  = color.New(color.Faint)
	keyColor  = color.New(color.FgCyan)
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	server     string
	verbose    bool
}

func (g *globalFlags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default ./"+config.FileName+")")
	cmd.PersistentFlags().StringVar(&g.server, "server", "", "backend base URL (overrides the config file)")
	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log requests to stderr")
}

// load reads the config file and applies flag overrides.
func (g *globalFlags) load() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if g.configPath != "" {
		cfg, err = config.LoadFile(g.configPath)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if g.server != "" {
		cfg.Server.BaseURL = g.server
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging sends logs to the configured file, or to stderr with
// --verbose. Headless commands otherwise stay quiet.
func (g *globalFlags) setupLogging(cfg *config.Config) (io.Closer, error) {
	if g.verbose && cfg.Log.File == "" {
		log.SetOutput(os.Stderr)
		return io.NopCloser(nil), nil
	}
	return debug.EnableLogging(debug.Options{
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
}

// syncer connects to the configured backend.
func syncer(cfg *config.Config) *reconcile.Syncer {
	return reconcile.New(api.NewClient(cfg.Server.BaseURL))
}

func params(cfg *config.Config) api.Params {
	return api.Params{Speed: cfg.Machine.Speed, SetupTime: cfg.Machine.SetupTime}
}
