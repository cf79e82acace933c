package commands

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"bundlekit/internal/config"
	e "bundlekit/pkg/errors"
)

// Config handles "config show", "config set <key> <value>" and "config path".
func Config(env *Env, args []string) error {
	sub := "show"
	if len(args) > 0 {
		sub = args[0]
	}
	switch sub {
	case "show":
		cfg, err := env.loadConfig()
		if err != nil {
			return err
		}
		b, err := yaml.Marshal(cfg.Redacted())
		if err != nil {
			return e.Wrap(err, e.ErrUnknown, "Cannot render settings")
		}
		fmt.Fprint(env.Out, string(b))
		return nil
	case "set":
		if len(args) != 3 {
			return e.New(e.ErrInvalidConfig, "Usage: bundlekit config set <key> <value>").
				WithSuggestion("Known settings: " + strings.Join(config.Keys(), ", "))
		}
		cfg, err := env.loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Set(args[1], args[2]); err != nil {
			return err
		}
		if err := env.saveConfig(cfg); err != nil {
			return err
		}
		fmt.Fprintf(env.Out, "%s = %s\n", args[1], displayValue(args[1], args[2]))
		return nil
	case "path":
		fmt.Fprintln(env.Out, env.Store.Path())
		return nil
	case "keys":
		for _, k := range config.Keys() {
			fmt.Fprintln(env.Out, k)
		}
		return nil
	default:
		return e.New(e.ErrInvalidConfig, fmt.Sprintf("Unknown config subcommand %q", sub)).
			WithSuggestion("Use one of: show, set, path, keys")
	}
}

func displayValue(key, value string) string {
	if strings.HasSuffix(key, "_password") && value != "" {
		return "****"
	}
	return value
}
