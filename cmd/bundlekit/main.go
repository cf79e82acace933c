package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"bundlekit/internal/cli"
	"bundlekit/internal/cli/commands"
	"bundlekit/internal/store"
	"bundlekit/pkg/logger"
)

func main() {
	args, verbose, debug := globalFlags(os.Args)

	// Initialize logging
	logger.Initialize(verbose, debug)
	defer logger.Close()

	// Install a panic recoverer to avoid raw panics
	var ph cli.PanicHandler
	defer ph.Recover()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := commands.NewEnv(store.Open(store.DefaultPath()))
	env.Context = ctx

	code := run(args, env, cli.NewErrorHandler(verbose, debug).WithOutput(env.Err))
	if code != 0 {
		stop()
		logger.Close()
		os.Exit(code)
	}
}

// run executes one invocation and returns the process exit code.
func run(args []string, env *commands.Env, handler *cli.ErrorHandler) int {
	app := cli.New(env)
	return handler.Handle(app.Run(args))
}

// globalFlags strips --verbose and --debug from args. BUNDLEKIT_VERBOSE=1
// and BUNDLEKIT_DEBUG=1 turn them on as well.
func globalFlags(argv []string) (args []string, verbose, debug bool) {
	args = make([]string, 0, len(argv))
	for i, a := range argv {
		if i == 0 {
			args = append(args, a)
			continue
		}
		switch a {
		case "--verbose":
			verbose = true
		case "--debug":
			debug = true
		default:
			args = append(args, a)
		}
	}
	if strings.EqualFold(os.Getenv("BUNDLEKIT_VERBOSE"), "1") {
		verbose = true
	}
	if strings.EqualFold(os.Getenv("BUNDLEKIT_DEBUG"), "1") {
		debug = true
	}
	return args, verbose, debug
}
