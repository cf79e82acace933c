// Package commands implements the bundlekit subcommands. Each command is a
// function taking the shared Env and its own arguments; internal/cli routes
// to them by name.
package commands

import (
	"context"
	"io"
	"os"
	"time"

	"bundlekit/internal/config"
	"bundlekit/internal/store"
	"bundlekit/pkg/exec"
)

// Env carries what every command needs.
type Env struct {
	Store *store.FileStore
	Out   io.Writer
	Err   io.Writer
	// Commander spawns processes; nil means exec.Default.
	Commander exec.Commander
	// Context bounds every process run.
	Context context.Context
}

// NewEnv returns an Env writing to the standard streams.
func NewEnv(s *store.FileStore) *Env {
	return &Env{Store: s, Out: os.Stdout, Err: os.Stderr, Context: context.Background()}
}

func (env *Env) ctx() context.Context {
	if env.Context == nil {
		return context.Background()
	}
	return env.Context
}

func (env *Env) loadConfig() (config.Config, error) {
	return config.Load(env.Store)
}

func (env *Env) saveConfig(cfg config.Config) error {
	return config.Save(env.Store, cfg)
}

// executor returns an executor masking cfg's passwords.
func (env *Env) executor(cfg config.Config, timeout time.Duration) *exec.Executor {
	return &exec.Executor{
		Commander: env.Commander,
		Timeout:   timeout,
		Secrets:   cfg.Secrets(),
	}
}
