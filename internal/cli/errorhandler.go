// Package cli: Central error handling for CLI
// Provides consistent error presentation, recovery attempts, and suggestions
package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	e "bundlekit/pkg/errors"
	"bundlekit/pkg/terminal"
)

// ErrorHandler handles errors consistently across the CLI
type ErrorHandler struct {
	verbose   bool
	debug     bool
	out       io.Writer
	recoverer *e.Recoverer
}

// NewErrorHandler creates an error handler writing to stderr
func NewErrorHandler(verbose, debug bool) *ErrorHandler {
	return &ErrorHandler{
		verbose:   verbose,
		debug:     debug,
		out:       os.Stderr,
		recoverer: e.NewRecoverer(verbose),
	}
}

// WithOutput sends diagnostics to w instead of stderr.
func (h *ErrorHandler) WithOutput(w io.Writer) *ErrorHandler {
	h.out = w
	return h
}

// Handle displays err and returns the process exit code.
func (h *ErrorHandler) Handle(err error) int {
	if err == nil {
		return 0
	}

	var kitErr *e.Error
	if stderrors.As(err, &kitErr) {
		if kitErr.Recoverable {
			if recErr := h.recoverer.Recover(kitErr); recErr == nil {
				// Recovered; treat as success
				return 0
			}
		}
	} else {
		kitErr = e.Wrap(err, e.ErrUnknown, "An unexpected error occurred")
	}
	h.displayError(kitErr)
	return 1
}

func (h *ErrorHandler) displayError(err *e.Error) {
	fmt.Fprintln(h.out)
	icon := h.getErrorIcon(err.Code)
	fmt.Fprintf(h.out, "%s %s%s%s\n", icon, terminal.Bold, err.Message, terminal.Reset)

	// Details carry tool output.
	if err.Details != "" {
		fmt.Fprintf(h.out, "\n%s%s%s\n", terminal.Dim, err.Details, terminal.Reset)
	}

	if len(err.Context) > 0 && h.verbose {
		fmt.Fprintln(h.out, "\nContext:")
		keys := make([]string, 0, len(err.Context))
		for k := range err.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(h.out, "  %s: %s\n", k, err.Context[k])
		}
	}

	if err.Suggestion != "" {
		fmt.Fprintf(h.out, "\n💡 %s%s%s\n", terminal.Yellow, err.Suggestion, terminal.Reset)
	}

	if err.Cause != nil && h.verbose {
		fmt.Fprintf(h.out, "\n%sCaused by:%s\n", terminal.Dim, terminal.Reset)
		h.displayCauseChain(err.Cause, 1)
	}

	if h.debug && len(err.Stack) > 0 {
		fmt.Fprintf(h.out, "\n%sStack trace:%s\n", terminal.Dim, terminal.Reset)
		for _, f := range err.Stack {
			fmt.Fprintf(h.out, "  %s\n", h.formatStackFrame(f))
		}
	}

	fmt.Fprintln(h.out)
	if !h.verbose {
		fmt.Fprintf(h.out, "%sRun with --verbose for more details%s\n", terminal.Dim, terminal.Reset)
	}
	if !h.debug && err.Code == e.ErrUnknown {
		fmt.Fprintf(h.out, "%sRun with --debug for stack trace%s\n", terminal.Dim, terminal.Reset)
	}
}

func (h *ErrorHandler) displayCauseChain(err error, depth int) {
	indent := strings.Repeat("  ", depth)
	if kitErr, ok := err.(*e.Error); ok {
		fmt.Fprintf(h.out, "%s• %s\n", indent, kitErr.Message)
		if kitErr.Cause != nil {
			h.displayCauseChain(kitErr.Cause, depth+1)
		}
		return
	}
	fmt.Fprintf(h.out, "%s• %s\n", indent, err.Error())
	if next := stderrors.Unwrap(err); next != nil {
		h.displayCauseChain(next, depth+1)
	}
}

func (h *ErrorHandler) formatStackFrame(frame e.StackFrame) string {
	file := frame.File
	if idx := strings.LastIndex(file, "/bundlekit/"); idx >= 0 {
		file = "..." + file[idx:]
	}
	fn := frame.Function
	if idx := strings.LastIndex(fn, "."); idx >= 0 {
		fn = fn[idx+1:]
	}
	return fmt.Sprintf("%s:%d %s()", file, frame.Line, fn)
}

func (h *ErrorHandler) getErrorIcon(code e.ErrorCode) string {
	icons := map[e.ErrorCode]string{
		e.ErrMissingConfig:    "⚙️",
		e.ErrInvalidConfig:    "⚙️",
		e.ErrToolNotFound:     "🔍",
		e.ErrProcessExit:      "❌",
		e.ErrTimeout:          "⏱",
		e.ErrCancelled:        "🛑",
		e.ErrDeviceMissing:    "📱",
		e.ErrStoreCorrupted:   "💔",
		e.ErrStorePermission:  "🔒",
		e.ErrFileNotFound:     "🔍",
		e.ErrPermissionDenied: "🚫",
		e.ErrArchiveCorrupt:   "📦",
		e.ErrUnknown:          "❓",
	}
	if ic, ok := icons[code]; ok {
		return ic
	}
	return "❌"
}
