package commands

import (
	"fmt"
	"strings"

	"bundlekit/internal/command"
	e "bundlekit/pkg/errors"
	"bundlekit/pkg/logger"
	"bundlekit/pkg/terminal"
)

// Adb handles "adb verify [path]". A path that answers "version" is stored;
// one that fails is cleared so device builds stay disabled.
func Adb(env *Env, args []string) error {
	if len(args) == 0 || args[0] != "verify" {
		fmt.Fprintln(env.Err, "Usage: bundlekit adb verify [path]")
		return e.New(e.ErrInvalidConfig, "Unknown adb subcommand").
			WithSuggestion("Run: bundlekit adb verify /path/to/adb")
	}

	cfg, err := env.loadConfig()
	if err != nil {
		return err
	}
	path := cfg.AdbPath
	if len(args) > 1 {
		path = args[1]
	}

	line := command.New().VerifyBridge(true, path).BridgeVersionCommand()
	if line == "" {
		return e.New(e.ErrMissingConfig, "No adb path to verify").
			WithSuggestion("Run: bundlekit adb verify /path/to/adb")
	}

	fmt.Fprintln(env.Out, "Verifying ADB path..")
	res, runErr := env.executor(cfg, cfg.VerifyTimeout.Duration).Run(env.ctx(), line)
	if runErr != nil {
		cfg.AdbPath = ""
		if err := env.saveConfig(cfg); err != nil {
			logger.Warnf("could not clear adb path: %v", err)
		}
		return e.Wrap(runErr, e.ErrToolNotFound, "adb did not respond")
	}

	cfg.AdbPath = path
	if err := env.saveConfig(cfg); err != nil {
		return err
	}
	first, _, _ := strings.Cut(strings.TrimSpace(res.Output), "\n")
	fmt.Fprintf(env.Out, "%s Adb connected: %s\n", terminal.IconSuccess, first)
	return nil
}
