//go:build !windows

package exec

import (
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// shellCommand returns the shell invocation for a command line.
func shellCommand(command string) (string, []string) {
	return getShell(), []string{"-c", command}
}

// configureProcess puts the shell in its own process group so that a
// cancelled run also takes down java or adb children it started.
func configureProcess(cmd *exec.Cmd, _ string, _ string) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return unix.Kill(-cmd.Process.Pid, unix.SIGKILL)
	}
}

// toolMissing reports the POSIX shell codes for "not executable" and "not found".
func toolMissing(code int) bool {
	return code == 126 || code == 127
}

// getShell returns the user's shell, falling back to /bin/sh.
func getShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "/bin/sh"
}
