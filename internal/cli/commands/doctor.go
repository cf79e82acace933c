package commands

import (
	"path/filepath"

	"bundlekit/internal/doctor"
)

// Doctor runs environment health checks and diagnostics.
// Supports flags: --verbose, --fix
func Doctor(env *Env, args []string) error {
	verbose := false
	fix := false
	for _, a := range args {
		switch a {
		case "--verbose", "-v":
			verbose = true
		case "--fix":
			fix = true
		}
	}
	cfg, err := env.loadConfig()
	if err != nil {
		return err
	}
	d := doctor.New(cfg, filepath.Dir(env.Store.Path()), verbose)
	_ = d.Run(env.Out)
	if fix {
		d.Fix(env.Out)
	}
	return nil
}
