package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"bundlekit/internal/apks"
	"bundlekit/internal/command"
	"bundlekit/internal/config"
	"bundlekit/pkg/exec"
)

// editDoneMsg carries the committed value of a text field.
type editDoneMsg struct {
	key   string
	value string
}

// verifyFinishedMsg is sent once an adb version check completes.
type verifyFinishedMsg struct {
	path   string
	result exec.Result
	err    error
}

// buildFinishedMsg is sent once a build-apks run completes.
type buildFinishedMsg struct {
	result exec.Result
	err    error
}

// unpackFinishedMsg is sent once the .apks has been extracted.
type unpackFinishedMsg struct {
	report apks.Report
	err    error
}

// devicesFinishedMsg is sent once "adb devices" completes.
type devicesFinishedMsg struct {
	devices []command.Device
	output  string
	err     error
}

// storeChangedMsg is sent when another process rewrites the settings.
type storeChangedMsg struct{}

// runner executes one command line; each call yields exactly one result.
type runner func(ctx context.Context, timeout time.Duration, secrets []string, line string) (exec.Result, error)

func executorRunner(commander exec.Commander) runner {
	return func(ctx context.Context, timeout time.Duration, secrets []string, line string) (exec.Result, error) {
		x := &exec.Executor{Commander: commander, Timeout: timeout, Secrets: secrets}
		return x.Run(ctx, line)
	}
}

func verifyCmd(ctx context.Context, run runner, cfg config.Config, path, line string) tea.Cmd {
	return func() tea.Msg {
		res, err := run(ctx, cfg.VerifyTimeout.Duration, cfg.Secrets(), line)
		return verifyFinishedMsg{path: path, result: res, err: err}
	}
}

func buildCmd(ctx context.Context, run runner, cfg config.Config, line string) tea.Cmd {
	return func() tea.Msg {
		res, err := run(ctx, cfg.Timeout.Duration, cfg.Secrets(), line)
		return buildFinishedMsg{result: res, err: err}
	}
}

func devicesCmd(ctx context.Context, run runner, cfg config.Config, line string) tea.Cmd {
	return func() tea.Msg {
		res, err := run(ctx, cfg.VerifyTimeout.Duration, cfg.Secrets(), line)
		if err != nil {
			return devicesFinishedMsg{output: res.Output, err: err}
		}
		return devicesFinishedMsg{devices: command.ParseDevices(res.Output), output: res.Output}
	}
}

func unpackCmd(ctx context.Context, bundle string) tea.Cmd {
	return func() tea.Msg {
		report, err := apks.Extract(ctx, command.OutputPath(bundle), command.UnpackDir(bundle), apks.Options{RemoveArchive: true})
		return unpackFinishedMsg{report: report, err: err}
	}
}
