// Package ui is bundlekit's interactive terminal interface.
//
// The Model holds the configuration and a Step. Every transition happens
// in Update from a discrete message: key presses, and one finish message
// per process run. Runs are tea.Cmd closures, so the event loop never
// blocks on java or adb.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"bundlekit/internal/command"
	"bundlekit/internal/config"
	"bundlekit/pkg/exec"
	"bundlekit/pkg/logger"
)

// Step is where the UI is in its run cycle.
type Step int

const (
	StepIdle Step = iota
	// StepEditing means a field dialog is open.
	StepEditing
	// StepVerifying means an adb version check is running.
	StepVerifying
	// StepExecuting means a build, unpack or device query is running.
	StepExecuting
)

func (s Step) String() string {
	switch s {
	case StepEditing:
		return "editing"
	case StepVerifying:
		return "verifying"
	case StepExecuting:
		return "executing"
	}
	return "idle"
}

type logLevel int

const (
	levelInfo logLevel = iota
	levelSuccess
	levelError
	levelCommand
)

type logLine struct {
	level logLevel
	text  string
}

// Model is the bubbletea model.
type Model struct {
	cfg   config.Config
	store config.Store
	run   runner
	keys  KeyMap
	style styles

	step    Step
	cursor  int
	editing field
	status  string

	// The device serial filter is not persisted.
	serialEnabled bool
	serial        string

	input   textinput.Model
	spinner spinner.Model
	logView viewport.Model
	logs    []logLine

	ctx    context.Context
	runCtx context.Context
	cancel context.CancelFunc

	width  int
	height int
}

// NewModel returns a Model over cfg that saves to s and spawns processes
// through commander (nil means exec.Default).
func NewModel(cfg config.Config, s config.Store, commander exec.Commander) Model {
	input := textinput.New()
	input.Prompt = "› "
	input.CharLimit = 4096

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))

	model := Model{
		cfg:     cfg,
		store:   s,
		keys:    DefaultKeyMap,
		style:   newStyles(DefaultTheme),
		input:   input,
		spinner: spin,
		logView: viewport.New(80, 10),
		run:     executorRunner(commander),
		ctx:     context.Background(),
	}
	return model
}

// Step returns the current step.
func (model Model) Step() Step { return model.step }

// Config returns the current configuration.
func (model Model) Config() config.Config { return model.cfg }

func (model Model) Init() tea.Cmd {
	return nil
}

func (model Model) busy() bool {
	return model.step == StepVerifying || model.step == StepExecuting
}

func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := message.(type) {
	case tea.WindowSizeMsg:
		model.width, model.height = msg.Width, msg.Height
		model.resize()
		return model, nil

	case tea.KeyMsg:
		if model.step == StepEditing {
			return model.handleEditKeys(msg)
		}
		return model.handleKeys(msg)

	case spinner.TickMsg:
		if !model.busy() {
			return model, nil
		}
		var cmd tea.Cmd
		model.spinner, cmd = model.spinner.Update(msg)
		return model, cmd

	case editDoneMsg:
		return model.applyEdit(msg)

	case verifyFinishedMsg:
		return model.finishVerify(msg)

	case buildFinishedMsg:
		return model.finishBuild(msg)

	case unpackFinishedMsg:
		return model.finishUnpack(msg)

	case devicesFinishedMsg:
		return model.finishDevices(msg)

	case storeChangedMsg:
		if model.step != StepIdle {
			return model, nil
		}
		cfg, err := config.Load(model.store)
		if err != nil {
			model.log(levelError, err.Error())
			return model, nil
		}
		model.cfg = cfg
		model.clampCursor()
		return model, nil
	}
	return model, nil
}

func (model Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, model.keys.Quit):
		if model.cancel != nil {
			model.cancel()
		}
		return model, tea.Quit
	case key.Matches(msg, model.keys.Cancel):
		if model.busy() && model.cancel != nil {
			model.cancel()
			model.log(levelInfo, "Cancelling...")
		}
		return model, nil
	case key.Matches(msg, model.keys.LogUp), key.Matches(msg, model.keys.LogDown):
		var cmd tea.Cmd
		model.logView, cmd = model.logView.Update(msg)
		return model, cmd
	}

	if model.busy() {
		return model, nil
	}

	fields := model.visibleFields()
	switch {
	case key.Matches(msg, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}
	case key.Matches(msg, model.keys.Down):
		if model.cursor < len(fields)-1 {
			model.cursor++
		}
	case key.Matches(msg, model.keys.Toggle), key.Matches(msg, model.keys.Edit):
		f := fields[model.cursor]
		if f.kind == kindToggle {
			return model.applyEdit(editDoneMsg{key: f.key, value: model.toggled(f.key)})
		}
		if key.Matches(msg, model.keys.Edit) {
			return model.openEditor(f)
		}
	case key.Matches(msg, model.keys.Execute):
		return model.startBuild()
	case key.Matches(msg, model.keys.FetchDevices):
		return model.startDevices()
	case key.Matches(msg, model.keys.ClearLogs):
		model.logs = nil
		model.refreshLog()
	}
	return model, nil
}

func (model Model) openEditor(f field) (tea.Model, tea.Cmd) {
	model.step = StepEditing
	model.editing = f
	model.input.SetValue(model.value(f.key))
	model.input.CursorEnd()
	model.input.Placeholder = f.label
	if f.kind == kindSecret {
		model.input.EchoMode = textinput.EchoPassword
		model.input.EchoCharacter = '•'
	} else {
		model.input.EchoMode = textinput.EchoNormal
	}
	return model, model.input.Focus()
}

func (model Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		done := editDoneMsg{key: model.editing.key, value: strings.TrimSpace(model.input.Value())}
		model.step = StepIdle
		model.input.Blur()
		return model, func() tea.Msg { return done }
	case tea.KeyEsc:
		model.step = StepIdle
		model.input.Blur()
		return model, nil
	case tea.KeyCtrlC:
		return model, tea.Quit
	}
	var cmd tea.Cmd
	model.input, cmd = model.input.Update(msg)
	return model, cmd
}

// applyEdit stores a committed value. A new adb path is verified before
// it is kept.
func (model Model) applyEdit(msg editDoneMsg) (tea.Model, tea.Cmd) {
	switch msg.key {
	case keySerialFilter:
		model.serialEnabled = msg.value == "true"
		return model, nil
	case keySerial:
		model.serial = msg.value
		return model, nil
	case "adb_path":
		if msg.value != "" && msg.value != model.cfg.AdbPath {
			return model.startVerify(msg.value)
		}
	}

	if err := model.cfg.Set(msg.key, msg.value); err != nil {
		model.log(levelError, err.Error())
		return model, nil
	}
	if msg.key == "adb_path" && msg.value == "" {
		model.serialEnabled = false
	}
	model.save()
	model.clampCursor()
	return model, nil
}

func (model Model) startVerify(path string) (tea.Model, tea.Cmd) {
	line := command.New().VerifyBridge(true, path).BridgeVersionCommand()
	if line == "" {
		return model, nil
	}
	model.step = StepVerifying
	model.status = "Verifying ADB Path.."
	model.log(levelCommand, line)
	ctx := model.startRun()
	return model, tea.Batch(verifyCmd(ctx, model.run, model.cfg, path, line), model.spinner.Tick)
}

func (model Model) finishVerify(msg verifyFinishedMsg) (tea.Model, tea.Cmd) {
	if model.step != StepVerifying {
		return model, nil
	}
	model.endRun()
	if msg.err != nil {
		model.log(levelError, msg.err.Error())
		model.cfg.AdbPath = ""
		model.serialEnabled = false
	} else {
		model.log(levelSuccess, "Adb connected: "+firstLine(msg.result.Output))
		model.cfg.AdbPath = msg.path
	}
	model.save()
	model.clampCursor()
	return model, nil
}

func (model Model) startBuild() (tea.Model, tea.Cmd) {
	builder := command.FromConfig(model.cfg).
		DeviceSerial(model.serialEnabled && model.cfg.AdbPath != "", model.serial)
	line, err := builder.ValidateAndGetCommand()
	if err != nil {
		model.log(levelError, err.Error())
		return model, nil
	}
	model.step = StepExecuting
	model.status = "Executing..."
	model.log(levelCommand, builder.MaskedCommand())
	ctx := model.startRun()
	return model, tea.Batch(buildCmd(ctx, model.run, model.cfg, line), model.spinner.Tick)
}

func (model Model) finishBuild(msg buildFinishedMsg) (tea.Model, tea.Cmd) {
	if model.step != StepExecuting {
		return model, nil
	}
	if out := strings.TrimSpace(msg.result.Output); out != "" {
		model.log(levelInfo, out)
	}
	if msg.err != nil {
		model.endRun()
		model.log(levelError, msg.err.Error())
		return model, nil
	}
	model.log(levelSuccess, fmt.Sprintf("Build finished in %s", msg.result.Duration.Round(time.Millisecond)))
	if model.cfg.AutoUnzip {
		model.status = "Unpacking..."
		return model, unpackCmd(model.runCtx, model.cfg.BundlePath)
	}
	model.endRun()
	model.log(levelInfo, fmt.Sprintf("File will be saved at %s.", command.OutputDir(model.cfg.BundlePath)))
	return model, nil
}

func (model Model) finishUnpack(msg unpackFinishedMsg) (tea.Model, tea.Cmd) {
	if model.step != StepExecuting {
		return model, nil
	}
	model.endRun()
	if msg.err != nil {
		model.log(levelError, msg.err.Error())
		return model, nil
	}
	model.log(levelSuccess, msg.report.Summary())
	return model, nil
}

func (model Model) startDevices() (tea.Model, tea.Cmd) {
	line := command.New().BridgeDevicesCommand(model.cfg.AdbPath)
	if line == "" {
		model.log(levelError, "Set up adb first")
		return model, nil
	}
	model.step = StepExecuting
	model.status = "Fetching devices..."
	model.log(levelCommand, line)
	ctx := model.startRun()
	return model, tea.Batch(devicesCmd(ctx, model.run, model.cfg, line), model.spinner.Tick)
}

func (model Model) finishDevices(msg devicesFinishedMsg) (tea.Model, tea.Cmd) {
	if model.step != StepExecuting {
		return model, nil
	}
	model.endRun()
	if msg.err != nil {
		model.log(levelError, msg.err.Error())
		return model, nil
	}
	if len(msg.devices) == 0 {
		model.log(levelInfo, "No devices attached")
		return model, nil
	}
	for _, d := range msg.devices {
		level := levelSuccess
		if !d.Ready() {
			level = levelError
		}
		model.log(level, fmt.Sprintf("%s\t%s", d.Serial, d.State))
	}
	return model, nil
}

// startRun creates the context a run is cancelled through.
func (model *Model) startRun() context.Context {
	ctx, cancel := context.WithCancel(model.ctx)
	model.runCtx, model.cancel = ctx, cancel
	return ctx
}

func (model *Model) endRun() {
	if model.cancel != nil {
		model.cancel()
		model.cancel = nil
	}
	model.runCtx = nil
	model.step = StepIdle
	model.status = ""
}

func (model *Model) save() {
	if err := config.Save(model.store, model.cfg); err != nil {
		model.log(levelError, err.Error())
		return
	}
	logger.Debug("settings saved")
}

func (model *Model) clampCursor() {
	if n := len(model.visibleFields()); model.cursor >= n {
		model.cursor = n - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
}

func (model *Model) log(level logLevel, text string) {
	model.logs = append(model.logs, logLine{level: level, text: text})
	model.refreshLog()
}

func (model *Model) refreshLog() {
	lines := make([]string, len(model.logs))
	for i, l := range model.logs {
		lines[i] = model.style.levels[l.level].Render(l.text)
	}
	model.logView.SetContent(strings.Join(lines, "\n"))
	model.logView.GotoBottom()
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
