package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"bundlekit/pkg/terminal"
	"bundlekit/pkg/version"
)

// PanicHandler recovers from panics and shows friendly errors
type PanicHandler struct {
	// CrashDir overrides where reports are written; empty means
	// ~/.bundlekit/crashes.
	CrashDir string
	// Exit terminates the process; nil means os.Exit.
	Exit func(code int)
}

// Recover catches panics and converts them to friendly output.
// It must be deferred directly.
func (p *PanicHandler) Recover() { //nolint:revive
	if r := recover(); r != nil {
		p.handlePanic(r)
	}
}

func (p *PanicHandler) handlePanic(r interface{}) {
	var message string
	switch v := r.(type) {
	case string:
		message = v
	case error:
		message = v.Error()
	default:
		message = fmt.Sprintf("%v", r)
	}

	stack := string(debug.Stack())
	crashReport := p.saveCrashReport(message, stack)

	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "💥 %s%sbundlekit crashed unexpectedly%s\n", terminal.Red, terminal.Bold, terminal.Reset)
	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "A crash report has been saved to:\n%s\n", crashReport)
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Include the crash report and what you were doing when this happened.")

	exit := p.Exit
	if exit == nil {
		exit = os.Exit
	}
	exit(2)
}

func (p *PanicHandler) saveCrashReport(message, stack string) string {
	crashDir := p.CrashDir
	if crashDir == "" {
		crashDir = os.ExpandEnv("$HOME/.bundlekit/crashes")
	}
	_ = os.MkdirAll(crashDir, 0o755)
	ts := time.Now().Format("2006-01-02-15-04-05")
	fp := filepath.Join(crashDir, fmt.Sprintf("crash-%s.txt", ts))
	report := fmt.Sprintf(`bundlekit Crash Report
======================
Time: %s
Version: %s
OS: %s
Arch: %s

Error:
%s

Stack Trace:
%s

Environment:
%s
`, time.Now().Format(time.RFC3339), version.Version, runtime.GOOS, runtime.GOARCH, message, stack, p.getEnvironmentInfo())
	_ = os.WriteFile(fp, []byte(report), 0o644)
	return fp
}

func (p *PanicHandler) getEnvironmentInfo() string {
	var info []string
	for _, key := range []string{"BUNDLEKIT_DEBUG", "BUNDLEKIT_HOME", "JAVA_HOME", "ANDROID_HOME", "SHELL", "PATH"} {
		if v := os.Getenv(key); v != "" {
			info = append(info, fmt.Sprintf("%s=%s", key, v))
		}
	}
	return strings.Join(info, "\n")
}
