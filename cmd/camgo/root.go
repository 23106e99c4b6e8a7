package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cjeanneret/CamGo/internal/config"
	"github.com/cjeanneret/CamGo/internal/log"
	"github.com/cjeanneret/CamGo/internal/logic/photo"
)

var defaultConfigPath = filepath.Join("configs", "default.yaml")

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "camgo",
		Short:         "Capture and save photos from a desktop or tethered camera",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", defaultConfigPath, "path to config file (must be configs/*.yaml)")

	root.AddCommand(
		newServeCmd(opts),
		newMCPCmd(opts),
		newTakeCmd(opts),
		newGreetCmd(opts),
	)
	return root
}

// app is the process-wide state built once per command run.
type app struct {
	cfg      *config.Config
	commands *photo.Commands
	close    func() error
}

// loadConfig reads the config file. A missing default file falls back to
// the built-in configuration; an explicit --config must exist.
func loadConfig(cmd *cobra.Command, path string) (*config.Config, error) {
	f := cmd.Flag("config")
	explicit := f != nil && f.Changed
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && !explicit {
		return config.Default(), nil
	}
	if err := config.ValidateConfigPath(path); err != nil {
		return nil, err
	}
	return config.Load(path)
}

// newApp loads configuration, configures logging to logOut and registers
// the configured camera backend into the command layer.
func newApp(cmd *cobra.Command, opts *rootOptions, logOut io.Writer) (*app, error) {
	cfg, err := loadConfig(cmd, opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log.Configure(log.Config{DebugLevel: cfg.Defaults.DebugLevel, Output: logOut})
	logger := log.WithComponent("init")
	logger.Debug().
		Str("config", opts.configPath).
		Int("debug_level", cfg.Defaults.DebugLevel).
		Bool("mock_gpio", cfg.Defaults.MockGPIO).
		Msg("configuration loaded")

	cam, closeCam, err := newCameraFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("init camera: %w", err)
	}

	commands := photo.NewCommands(cam, photo.WithDir(cfg.Storage.Dir))
	logger.Info().Str(log.FieldBackend, commands.Backend()).Msg("camera backend registered")

	return &app{cfg: cfg, commands: commands, close: closeCam}, nil
}

func (a *app) shutdown() {
	if err := a.close(); err != nil {
		logger := log.WithComponent("init")
		logger.Warn().Err(err).Msg("closing camera backend failed")
	}
}
