package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"bundlekit/internal/command"
	e "bundlekit/pkg/errors"
	"bundlekit/pkg/terminal"
)

// Devices lists devices known to adb.
func Devices(env *Env, args []string) error {
	cfg, err := env.loadConfig()
	if err != nil {
		return err
	}

	fs := pflag.NewFlagSet("devices", pflag.ContinueOnError)
	fs.SetOutput(env.Err)
	fs.StringVar(&cfg.AdbPath, "adb", cfg.AdbPath, "adb path (defaults to the verified one)")
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return e.Wrap(err, e.ErrInvalidConfig, "Invalid devices flags")
	}

	line := command.New().BridgeDevicesCommand(cfg.AdbPath)
	if line == "" {
		return e.New(e.ErrMissingConfig, "adb is not set up").
			WithSuggestion("Run: bundlekit adb verify /path/to/adb")
	}
	res, err := env.executor(cfg, cfg.VerifyTimeout.Duration).Run(env.ctx(), line)
	if err != nil {
		return err
	}

	devices := command.ParseDevices(res.Output)
	if len(devices) == 0 {
		return e.New(e.ErrDeviceMissing, "No devices attached")
	}
	for _, d := range devices {
		state := terminal.Success(d.State)
		if !d.Ready() {
			state = terminal.Warning(d.State)
		}
		fmt.Fprintf(env.Out, "%s %-24s %s\n", terminal.IconDevice, d.Serial, state)
	}
	return nil
}
