package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/pkg/cipher"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/loader"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/spf13/cobra"
)

// cfg is bound to the persistent flags of rootCmd.
var cfg cli.Config

var rootCmd = &cobra.Command{
	Use:   "turing",
	Short: "Turing is a deterministic Turing machine engine",
	Long: `Turing runs deterministic single-tape Turing machines.
It ships with the Caesar cipher machines (caesar-encrypt-<k> and caesar-decrypt-<k>)
and loads any other machine from YAML or JSON documents.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.LogLevel, "log-level", "", "Log level: debug, info, warn or error (env "+cli.EnvLogLevel+")")
	flags.StringVar(&cfg.LogFile, "log-file", "", "Also append logs to this file")
	flags.IntVar(&cfg.StepLimit, "step-limit", turing.DefaultStepLimit, "Maximum number of transitions per run")
	flags.StringVar(&cfg.SpecPath, "spec", "", "Machine document (YAML or JSON) to run")
	flags.StringVar(&cfg.MachinesDir, "machines", "", "Directory of machine documents")
	flags.StringVar(&cfg.RedisAddr, "redis", "", "Redis address for the run store (env "+cli.EnvRedisAddr+")")
	flags.StringVar(&cfg.StoreDir, "store-dir", "", "Keep runs as JSON files in this directory")
	flags.StringSliceVar(&cfg.Redact, "redact", nil, "Mask input and tape of runs whose machine matches these patterns")
}

// app carries what a command needs once the flags are resolved.
type app struct {
	logger   *slog.Logger
	store    ports.RunStore
	cipher   *cipher.Cipher
	machines ports.MachineLoader
	closers  []func() error
}

// setup resolves the global configuration. Callers must defer app.Close.
func setup(ctx context.Context, stderr io.Writer) (*app, error) {
	cfg.ApplyEnv(os.Getenv)

	logger, closeLog, err := cfg.Logger(stderr)
	if err != nil {
		return nil, err
	}
	a := &app{logger: logger, closers: []func() error{closeLog}}

	store, closeStore, err := cfg.Store(ctx, logger)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.store = store
	a.closers = append(a.closers, closeStore)

	a.cipher = cipher.New(a.options(domain.LifecycleHooks{})...)
	if a.machines, err = cfg.Machines(a.cipher); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

// options returns the facade options with logging hooks chained before hooks.
func (a *app) options(hooks domain.LifecycleHooks) []turing.Option {
	return cfg.MachineOptions(a.logger, a.store, observability.Chain(observability.LoggingHooks(a.logger), hooks))
}

// resolve finds a machine by name. An empty name selects the --spec document.
func (a *app) resolve(name string) (*machine.Spec, error) {
	if name == "" {
		if cfg.SpecPath == "" {
			return nil, errors.New("a machine name or --spec is required")
		}
		return loader.LoadFile(cfg.SpecPath)
	}
	return a.machines.GetMachine(name)
}

func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}
