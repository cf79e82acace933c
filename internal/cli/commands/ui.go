package commands

import (
	"bundlekit/internal/ui"
)

// UI starts the interactive terminal interface.
func UI(env *Env, args []string) error {
	return ui.Run(env.ctx(), ui.Options{Store: env.Store, Commander: env.Commander})
}
