package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/adapters/redis"
	"github.com/aretw0/turing/pkg/cipher"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/loader"
	"github.com/aretw0/turing/pkg/persistence/middleware"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/registry"
)

// Environment variables read when the matching flag is unset.
const (
	EnvRedisAddr = "TURING_REDIS_ADDR"
	EnvLogLevel  = "TURING_LOG_LEVEL"
	EnvStoreKey  = "TURING_STORE_KEY"
)

// Config holds the global command-line settings.
type Config struct {
	LogLevel    string
	LogFile     string
	StepLimit   int
	SpecPath    string
	MachinesDir string
	RedisAddr   string
	StoreDir    string

	// StoreKey is a base64 AES-256 key sealing recorded tapes. Only read from the environment.
	StoreKey string
	// Redact lists machine name patterns whose runs are stored masked.
	Redact []string
}

// ApplyEnv fills unset fields from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if c.RedisAddr == "" {
		c.RedisAddr = getenv(EnvRedisAddr)
	}
	if c.LogLevel == "" {
		c.LogLevel = getenv(EnvLogLevel)
	}
	if c.StoreKey == "" {
		c.StoreKey = getenv(EnvStoreKey)
	}
}

// Logger builds the application logger. The returned closer releases the log file, if any.
func (c *Config) Logger(stderr io.Writer) (*slog.Logger, func() error, error) {
	level := slog.LevelWarn
	if c.LogLevel != "" {
		var err error
		if level, err = logging.ParseLevel(c.LogLevel); err != nil {
			return nil, nil, err
		}
	}

	opts := []logging.Option{logging.WithOutput(stderr)}
	closer := func() error { return nil }
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		opts = append(opts, logging.WithFile(f))
		closer = f.Close
	}
	return logging.New(level, opts...), closer, nil
}

// Store opens the run store: Redis when an address is configured, then a run directory,
// memory otherwise. The store is wrapped with redaction and encryption when configured.
func (c *Config) Store(ctx context.Context, logger *slog.Logger) (ports.RunStore, func() error, error) {
	mws, err := c.storeMiddleware()
	if err != nil {
		return nil, nil, err
	}

	nop := func() error { return nil }
	if c.RedisAddr == "" {
		if c.StoreDir != "" {
			logger.Debug("using file run store", "dir", c.StoreDir)
			return middleware.Wrap(file.New(c.StoreDir), mws...), nop, nil
		}
		return middleware.Wrap(memory.NewStore(), mws...), nop, nil
	}

	store := redis.New(c.RedisAddr, "", 0)
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", c.RedisAddr, err)
	}
	logger.Debug("using redis run store", "addr", c.RedisAddr)
	return middleware.Wrap(store, mws...), store.Close, nil
}

func (c *Config) storeMiddleware() ([]middleware.Middleware, error) {
	var mws []middleware.Middleware
	if len(c.Redact) > 0 {
		mw, err := middleware.NewRedactionMiddleware(c.Redact)
		if err != nil {
			return nil, err
		}
		mws = append(mws, mw)
	}
	if c.StoreKey != "" {
		key, err := base64.StdEncoding.DecodeString(c.StoreKey)
		if err != nil {
			return nil, fmt.Errorf("%s must be base64: %w", EnvStoreKey, err)
		}
		mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
		if err != nil {
			return nil, err
		}
		mws = append(mws, mw)
	}
	return mws, nil
}

// Machines resolves machine names: the --spec document first, then the --machines
// directory, then the built-in Caesar machines.
func (c *Config) Machines(ciph *cipher.Cipher) (ports.MachineLoader, error) {
	reg := registry.NewRegistry()
	if c.SpecPath != "" {
		spec, err := loader.LoadFile(c.SpecPath)
		if err != nil {
			return nil, err
		}
		mem, err := memory.NewFromSpecs(spec)
		if err != nil {
			return nil, err
		}
		reg.Register(mem)
	}
	if c.MachinesDir != "" {
		dir, err := loader.NewDirLoader(c.MachinesDir)
		if err != nil {
			return nil, err
		}
		reg.Register(dir)
	}
	reg.Register(cipher.NewCatalog(ciph))
	return reg, nil
}

// MachineOptions are the facade options shared by every command.
func (c *Config) MachineOptions(logger *slog.Logger, store ports.RunStore, hooks domain.LifecycleHooks) []turing.Option {
	opts := []turing.Option{
		turing.WithLogger(logger),
		turing.WithLifecycleHooks(hooks),
	}
	if c.StepLimit > 0 {
		opts = append(opts, turing.WithStepLimit(c.StepLimit))
	}
	if store != nil {
		opts = append(opts, turing.WithStore(store))
	}
	return opts
}
