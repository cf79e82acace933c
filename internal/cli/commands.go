package cli

import (
	"bundlekit/internal/cli/commands"
)

// envCommand adapts a commands function to the Command interface.
type envCommand struct {
	name        string
	description string
	env         *commands.Env
	run         func(*commands.Env, []string) error
}

func (c envCommand) Name() string            { return c.name }
func (c envCommand) Description() string     { return c.description }
func (c envCommand) Run(args []string) error { return c.run(c.env, args) }

// Command factory functions
func NewBuildCommand(env *commands.Env) Command {
	return envCommand{"build", "Build an .apks from an app bundle", env, commands.Build}
}

func NewAdbCommand(env *commands.Env) Command {
	return envCommand{"adb", "Verify the adb path (adb verify [path])", env, commands.Adb}
}

func NewDevicesCommand(env *commands.Env) Command {
	return envCommand{"devices", "List connected devices", env, commands.Devices}
}

func NewConfigCommand(env *commands.Env) Command {
	return envCommand{"config", "Show or change saved settings", env, commands.Config}
}

func NewDoctorCommand(env *commands.Env) Command {
	return envCommand{"doctor", "Environment health check", env, commands.Doctor}
}

func NewUICommand(env *commands.Env) Command {
	return envCommand{"ui", "Interactive terminal interface", env, commands.UI}
}

func NewCompletionCommand(env *commands.Env) Command {
	return envCommand{"completion", "Generate shell completion scripts", env, commands.Completion}
}
