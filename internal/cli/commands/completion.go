package commands

import (
	"fmt"
	"io"
	"strings"

	"bundlekit/internal/config"
	e "bundlekit/pkg/errors"
)

// Completion provides shell completion scripts for bash and zsh.
// Usage:
//
//	bundlekit completion           # prints completions for all supported shells
//	bundlekit completion bash      # prints bash completion
//	bundlekit completion zsh       # prints zsh completion
func Completion(env *Env, args []string) error {
	shell := ""
	if len(args) > 0 {
		shell = strings.ToLower(args[0])
	}

	switch shell {
	case "bash":
		printBashCompletion(env.Out)
		return nil
	case "zsh":
		printZshCompletion(env.Out)
		return nil
	case "", "all":
		// Print both so Homebrew's generator can detect them
		printBashCompletion(env.Out)
		fmt.Fprintln(env.Out)
		printZshCompletion(env.Out)
		return nil
	default:
		return e.New(e.ErrInvalidConfig, fmt.Sprintf("unsupported shell: %s", shell)).
			WithSuggestion("Supported shells: bash, zsh")
	}
}

const buildFlags = "--bundletool --bundle --aapt2 --overwrite --universal --release --ks --ks-pass --ks-key-alias --key-pass --device-id --unzip --timeout --save --dry-run"

func printBashCompletion(w io.Writer) {
	fmt.Fprintf(w, `# bash completion for bundlekit
_bundlekit_completions()
{
    local cur prev words cword
    _init_completion || return

    local -a commands
    commands=(
        build adb devices config doctor ui completion help version
    )

    case ${COMP_CWORD} in
        1)
            COMPREPLY=( $(compgen -W "${commands[*]}" -- "$cur") )
            return ;;
        *)
            case ${COMP_WORDS[1]} in
                build)
                    COMPREPLY=( $(compgen -W "%s" -- "$cur") ) ;;
                adb)
                    COMPREPLY=( $(compgen -W "verify" -- "$cur") ) ;;
                config)
                    if [[ ${COMP_CWORD} -eq 3 && ${COMP_WORDS[2]} == set ]]; then
                        COMPREPLY=( $(compgen -W "%s" -- "$cur") )
                    else
                        COMPREPLY=( $(compgen -W "show set path keys" -- "$cur") )
                    fi ;;
                doctor)
                    COMPREPLY=( $(compgen -W "--verbose --fix" -- "$cur") ) ;;
                completion)
                    COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") ) ;;
                *)
                    COMPREPLY=( $(compgen -W "--verbose --debug" -- "$cur") ) ;;
            esac
            return ;;
    esac
}
complete -F _bundlekit_completions bundlekit
`, buildFlags, strings.Join(config.Keys(), " "))
}

func printZshCompletion(w io.Writer) {
	fmt.Fprintf(w, `#compdef bundlekit
_bundlekit() {
  local -a commands
  commands=(
    'build:Build an .apks from an app bundle'
    'adb:Verify the adb path'
    'devices:List connected devices'
    'config:Show or change saved settings'
    'doctor:Environment health check'
    'ui:Interactive terminal interface'
    'completion:Generate shell completion scripts'
    'version:Show version'
    'help:Show help'
  )

  _arguments \
    '1: :->cmds' \
    '*:: :->args'

  case $state in
    cmds)
      _describe 'command' commands
      ;;
    args)
      case $words[1] in
        completion)
          _values 'shell' bash zsh
          ;;
        build)
          _values 'options' %s
          ;;
        config)
          _values 'subcommand' show set path keys
          ;;
        *)
          _message 'arguments'
          ;;
      esac
      ;;
  esac
}
_bundlekit "$@"
`, buildFlags)
}
