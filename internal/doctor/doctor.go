// Package doctor provides environment health checks for bundlekit.
package doctor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"bundlekit/internal/config"
)

// execCommand and lookPath enable test stubbing.
var (
	execCommand = exec.CommandContext
	lookPath    = exec.LookPath
)

// queryVersion runs a version query, bounded by timeout when it is positive.
func queryVersion(timeout time.Duration, name string, args ...string) ([]byte, error) {
	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	cmd := execCommand(ctx, name, args...)
	cmd.WaitDelay = time.Second
	out, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return out, fmt.Errorf("no answer within %s", timeout)
	}
	return out, err
}

// Doctor performs environment health checks
type Doctor struct {
	checks  []HealthCheck
	verbose bool
}

// HealthCheck represents a single diagnostic check
type HealthCheck interface {
	Name() string
	Description() string
	Run() CheckResult
	CanAutoFix() bool
	Fix() error
	Severity() Severity
}

// CheckResult contains the outcome of a health check
type CheckResult struct {
	Status     Status
	Message    string
	Details    string
	FixCommand string
	Impact     string
}

// Status represents check status
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusError
	StatusCritical
)

// Severity indicates how important a fix is
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// HealthReport summarizes checks
type HealthReport struct {
	TotalChecks int
	Passed      int
	Warnings    int
	Errors      int
	Critical    int
	Score       int
	StartTime   time.Time
	EndTime     time.Time
}

// Healthy reports whether nothing failed outright.
func (r HealthReport) Healthy() bool { return r.Errors == 0 && r.Critical == 0 }

// New returns a Doctor with the checks that apply to cfg. settingsDir is the
// directory holding the settings store.
func New(cfg config.Config, settingsDir string, verbose bool) *Doctor {
	checks := []HealthCheck{
		&JavaCheck{Timeout: cfg.VerifyTimeout.Duration},
		&FileCheck{
			Label: "Bundletool jar", Path: cfg.BundletoolPath, Key: "bundletool_path",
			Required: true, Hint: "Download bundletool from https://github.com/google/bundletool/releases",
		},
		&FileCheck{Label: "App bundle", Path: cfg.BundlePath, Key: "bundle_path", Required: true},
	}
	if cfg.Aapt2Path != "" {
		checks = append(checks, &FileCheck{Label: "aapt2", Path: cfg.Aapt2Path, Key: "aapt2_path"})
	}
	if cfg.IsRelease() {
		checks = append(checks, &FileCheck{Label: "Keystore", Path: cfg.KeystorePath, Key: "keystore_path", Required: true})
	}
	checks = append(checks, &AdbCheck{Path: cfg.AdbPath, Timeout: cfg.VerifyTimeout.Duration}, &SettingsCheck{Dir: settingsDir})
	return &Doctor{checks: checks, verbose: verbose}
}

// Run executes all checks and prints a concise report
func (d *Doctor) Run(w io.Writer) HealthReport {
	rpt := HealthReport{StartTime: time.Now()}
	fmt.Fprintln(w, "\n📦 bundlekit doctor - Environment Check")
	fmt.Fprintln(w, strings.Repeat("=", 52))
	for _, c := range d.checks {
		res := c.Run()
		d.printResult(w, c, res)
		rpt.TotalChecks++
		switch res.Status {
		case StatusOK:
			rpt.Passed++
		case StatusWarning:
			rpt.Warnings++
		case StatusError:
			rpt.Errors++
		case StatusCritical:
			rpt.Critical++
		}
	}
	rpt.EndTime = time.Now()
	rpt.Score = score(rpt)
	fmt.Fprintf(w, "\n⏱  Completed in %.2fs\n", rpt.EndTime.Sub(rpt.StartTime).Seconds())
	fmt.Fprintf(w, "Readiness Score: %d/100\n", rpt.Score)
	if !rpt.Healthy() {
		fmt.Fprintln(w, "Run 'bundlekit doctor --fix' to auto-fix issues where possible")
	}
	return rpt
}

// 100 minus penalties
func score(r HealthReport) int {
	s := 100 - r.Warnings*5 - r.Errors*15 - r.Critical*25
	if s < 0 {
		return 0
	}
	return s
}

func (d *Doctor) printResult(w io.Writer, c HealthCheck, r CheckResult) {
	icon := "✅"
	switch r.Status {
	case StatusWarning:
		icon = "⚠️ "
	case StatusError, StatusCritical:
		icon = "❌"
	}
	fmt.Fprintf(w, "%s %s: %s\n", icon, c.Name(), r.Message)
	if r.Details != "" && d.verbose {
		fmt.Fprintf(w, "   %s\n", r.Details)
	}
	if r.FixCommand != "" && r.Status != StatusOK {
		fmt.Fprintf(w, "   💡 Fix: %s\n", r.FixCommand)
	}
	if r.Impact != "" && r.Status == StatusCritical {
		fmt.Fprintf(w, "   ⚠️  Impact: %s\n", r.Impact)
	}
}

// Fix attempts automatic fixes for checks that support it.
func (d *Doctor) Fix(w io.Writer) {
	fmt.Fprintln(w, "\n🔧 Attempting to fix issues...")
	for _, c := range d.checks {
		res := c.Run()
		if res.Status != StatusOK && c.CanAutoFix() {
			if err := c.Fix(); err != nil {
				fmt.Fprintf(w, "❌ %s: fix failed: %v\n", c.Name(), err)
			} else {
				fmt.Fprintf(w, "✅ %s: fixed\n", c.Name())
			}
		}
	}
}

// JavaCheck verifies a java runtime is on PATH; bundletool is a jar.
type JavaCheck struct {
	Timeout time.Duration
}

func (j *JavaCheck) Name() string        { return "Java" }
func (j *JavaCheck) Description() string { return "Checking for a java runtime" }
func (j *JavaCheck) CanAutoFix() bool    { return false }
func (j *JavaCheck) Fix() error          { return nil }
func (j *JavaCheck) Severity() Severity  { return SeverityCritical }

func (j *JavaCheck) Run() CheckResult {
	if _, err := lookPath("java"); err != nil {
		return CheckResult{Status: StatusCritical, Message: "java not found on PATH", FixCommand: "Install a JDK 11 or newer", Impact: "bundletool cannot run"}
	}
	// java prints its version on stderr.
	out, err := queryVersion(j.Timeout, "java", "-version")
	if err != nil {
		return CheckResult{Status: StatusError, Message: "java is installed but did not respond", Details: detail(out, err)}
	}
	first, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return CheckResult{Status: StatusOK, Message: "found", Details: first}
}

// FileCheck verifies a configured path points at a readable file.
type FileCheck struct {
	Label    string
	Path     string
	Key      string
	Required bool
	Hint     string
}

func (f *FileCheck) Name() string        { return f.Label }
func (f *FileCheck) Description() string { return "Checking " + f.Label }
func (f *FileCheck) CanAutoFix() bool    { return false }
func (f *FileCheck) Fix() error          { return nil }
func (f *FileCheck) Severity() Severity {
	if f.Required {
		return SeverityHigh
	}
	return SeverityLow
}

func (f *FileCheck) Run() CheckResult {
	setCmd := fmt.Sprintf("bundlekit config set %s <path>", f.Key)
	if strings.TrimSpace(f.Path) == "" {
		res := CheckResult{Status: StatusWarning, Message: "not configured", FixCommand: setCmd, Details: f.Hint}
		if f.Required {
			res.Status = StatusError
		}
		return res
	}
	info, err := os.Stat(f.Path)
	switch {
	case err != nil:
		return CheckResult{Status: StatusError, Message: fmt.Sprintf("%s does not exist", f.Path), FixCommand: setCmd, Details: f.Hint}
	case info.IsDir():
		return CheckResult{Status: StatusError, Message: fmt.Sprintf("%s is a directory", f.Path), FixCommand: setCmd}
	}
	return CheckResult{Status: StatusOK, Message: f.Path, Details: fmt.Sprintf("%d bytes", info.Size())}
}

// AdbCheck verifies the device bridge answers "version".
type AdbCheck struct {
	Path    string
	Timeout time.Duration
}

func (a *AdbCheck) Name() string        { return "adb" }
func (a *AdbCheck) Description() string { return "Checking the device bridge" }
func (a *AdbCheck) CanAutoFix() bool    { return false }
func (a *AdbCheck) Fix() error          { return nil }
func (a *AdbCheck) Severity() Severity  { return SeverityLow }

func (a *AdbCheck) Run() CheckResult {
	if strings.TrimSpace(a.Path) == "" {
		return CheckResult{Status: StatusOK, Message: "not configured (device builds disabled)", FixCommand: "bundlekit adb verify <path>"}
	}
	out, err := queryVersion(a.Timeout, a.Path, "version")
	if err != nil {
		return CheckResult{Status: StatusWarning, Message: fmt.Sprintf("%s did not respond", a.Path), Details: detail(out, err), FixCommand: "bundlekit adb verify <path>", Impact: "--device-id builds unavailable"}
	}
	first, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return CheckResult{Status: StatusOK, Message: "responding", Details: first}
}

// detail prefers the tool's own output over the process error.
func detail(out []byte, err error) string {
	if s := strings.TrimSpace(string(out)); s != "" {
		return s
	}
	return err.Error()
}

// SettingsCheck verifies the settings directory is private; it holds
// keystore passwords.
type SettingsCheck struct {
	Dir string
}

func (s *SettingsCheck) Name() string        { return "Settings" }
func (s *SettingsCheck) Description() string { return "Checking settings permissions" }
func (s *SettingsCheck) CanAutoFix() bool    { return true }
func (s *SettingsCheck) Severity() Severity  { return SeverityMedium }

func (s *SettingsCheck) Fix() error {
	if _, err := os.Stat(s.Dir); os.IsNotExist(err) {
		return os.MkdirAll(s.Dir, 0o700)
	}
	return os.Chmod(s.Dir, 0o700)
}

func (s *SettingsCheck) Run() CheckResult {
	info, err := os.Stat(s.Dir)
	if os.IsNotExist(err) {
		return CheckResult{Status: StatusOK, Message: "no settings saved yet"}
	}
	if err != nil {
		return CheckResult{Status: StatusWarning, Message: "cannot inspect " + s.Dir, Details: err.Error()}
	}
	if info.Mode().Perm()&0o077 != 0 {
		return CheckResult{Status: StatusWarning, Message: "settings directory is readable by other users", FixCommand: "chmod 700 " + filepath.Clean(s.Dir), Impact: "Keystore passwords may leak"}
	}
	return CheckResult{Status: StatusOK, Message: s.Dir}
}
