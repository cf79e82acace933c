//go:build windows

package exec

import (
	"os"
	"os/exec"
	"syscall"
)

// shellCommand returns cmd.exe; the command line itself is passed raw
// through SysProcAttr.CmdLine in configureProcess.
func shellCommand(string) (string, []string) {
	return getShell(), nil
}

// configureProcess hands cmd.exe the line verbatim. Go's default argument
// escaping uses backslashes, which cmd.exe does not understand, and would
// break the double-quoted paths produced by the command builder.
func configureProcess(cmd *exec.Cmd, shell string, command string) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CmdLine: shell + ` /S /C "` + command + `"`,
	}
}

// toolMissing reports cmd.exe's "is not recognized" status.
func toolMissing(code int) bool {
	return code == 9009
}

func getShell() string {
	if comspec := os.Getenv("ComSpec"); comspec != "" {
		return comspec
	}
	return "cmd.exe"
}
