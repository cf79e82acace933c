// Package cli provides the command-line interface for bundlekit.
// It implements a modular command system with support for subcommands,
// help text, and version information. The CLI uses a registry pattern
// to register available commands and route execution based on user input.
//
// The main components are:
//   - CLI: The main interface that handles command routing and execution
//   - Command: Interface that all commands must implement
//   - Command registry: Maps command names to their implementations
//
// Commands are implemented in the commands subpackage and registered
// during CLI initialization for clean separation of concerns.
package cli

import (
	"fmt"
	"sort"

	"bundlekit/internal/cli/commands"
	"bundlekit/pkg/version"
)

// Command represents a CLI command
type Command interface {
	Name() string
	Description() string
	Run(args []string) error
}

// CLI represents the command-line interface
type CLI struct {
	env      *commands.Env
	commands map[string]Command
}

// New creates a new CLI instance
func New(env *commands.Env) *CLI {
	c := &CLI{env: env, commands: make(map[string]Command)}
	c.registerCommands()
	return c
}

func (c *CLI) register(cmd Command) {
	c.commands[cmd.Name()] = cmd
}

// registerCommands registers all available commands
func (c *CLI) registerCommands() {
	c.register(NewBuildCommand(c.env))
	c.register(NewAdbCommand(c.env))
	c.register(NewDevicesCommand(c.env))
	c.register(NewConfigCommand(c.env))
	c.register(NewDoctorCommand(c.env))
	c.register(NewUICommand(c.env))
	c.register(NewCompletionCommand(c.env))
}

// Run executes the CLI with given arguments
func (c *CLI) Run(args []string) error {
	if len(args) < 2 {
		c.printUsage()
		return nil
	}
	switch args[1] {
	case "help", "--help", "-h":
		c.printUsage()
		return nil
	case "version", "--version", "-v":
		fmt.Fprintf(c.env.Out, "bundlekit %s\n", version.Version)
		return nil
	default:
		// Try registered commands
		if cmd, ok := c.commands[args[1]]; ok {
			return cmd.Run(args[2:])
		}
		c.printUsage()
		return fmt.Errorf("unknown command: %s", args[1])
	}
}

func (c *CLI) printUsage() {
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(c.env.Out, "Usage: bundlekit <command> [args]")
	fmt.Fprintln(c.env.Out, "Commands:")
	for _, name := range names {
		fmt.Fprintf(c.env.Out, "  %-10s %s\n", name, c.commands[name].Description())
	}
	fmt.Fprintln(c.env.Out, "  version    Show version")
	fmt.Fprintln(c.env.Out, "  help       Show this help")
	fmt.Fprintln(c.env.Out, "Global flags: --verbose, --debug")
}
