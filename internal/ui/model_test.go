package ui

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"bundlekit/internal/config"
	"bundlekit/internal/store"
	e "bundlekit/pkg/errors"
	"bundlekit/pkg/exec"
)

// fakeRunner records every line it is asked to run and answers from reply.
type fakeRunner struct {
	mu    sync.Mutex
	lines []string
	reply func(ctx context.Context, line string) (exec.Result, error)
}

func (f *fakeRunner) run(ctx context.Context, _ time.Duration, _ []string, line string) (exec.Result, error) {
	f.mu.Lock()
	f.lines = append(f.lines, line)
	f.mu.Unlock()
	if f.reply == nil {
		return exec.Result{Command: line, ExitCode: 0}, nil
	}
	return f.reply(ctx, line)
}

func (f *fakeRunner) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.lines) == 0 {
		return ""
	}
	return f.lines[len(f.lines)-1]
}

func testModel(t *testing.T, cfg config.Config) (Model, *store.FileStore, *fakeRunner) {
	t.Helper()
	s := store.Open(filepath.Join(t.TempDir(), "store.yaml"))
	fake := &fakeRunner{}
	model := NewModel(cfg, s, nil)
	model.run = fake.run
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model), s, fake
}

func press(t *testing.T, model Model, k string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	updated, cmd := model.Update(msg)
	return updated.(Model), cmd
}

func send(t *testing.T, model Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := model.Update(msg)
	return updated.(Model), cmd
}

// drain runs cmd, expanding batches, and returns every message produced.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// finishOf returns the first run-finish message cmd produces.
func finishOf(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	for _, msg := range drain(cmd) {
		switch msg.(type) {
		case verifyFinishedMsg, buildFinishedMsg, unpackFinishedMsg, devicesFinishedMsg, editDoneMsg:
			return msg
		}
	}
	t.Fatal("command produced no finish message")
	return nil
}

func lastLog(model Model) logLine {
	if len(model.logs) == 0 {
		return logLine{}
	}
	return model.logs[len(model.logs)-1]
}

func hasLog(model Model, substr string) bool {
	for _, l := range model.logs {
		if strings.Contains(l.text, substr) {
			return true
		}
	}
	return false
}

func fieldKeys(fields []field) []string {
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.key
	}
	return keys
}

func contains(keys []string, k string) bool {
	for _, key := range keys {
		if key == k {
			return true
		}
	}
	return false
}

func loadSaved(t *testing.T, s *store.FileStore) config.Config {
	t.Helper()
	cfg, err := config.Load(s)
	if err != nil {
		t.Fatalf("loading saved settings: %v", err)
	}
	return cfg
}

func buildableConfig(dir string) config.Config {
	cfg := config.Default()
	cfg.BundletoolPath = filepath.Join(dir, "bundletool.jar")
	cfg.BundlePath = filepath.Join(dir, "app.aab")
	cfg.AutoUnzip = false
	return cfg
}

func TestModelNavigation(t *testing.T) {
	model, _, _ := testModel(t, config.Default())

	visible := len(model.visibleFields())
	if visible != 8 {
		t.Fatalf("debug form without adb should show 8 rows, got %d: %v", visible, fieldKeys(model.visibleFields()))
	}

	model, _ = press(t, model, "k")
	if model.cursor != 0 {
		t.Errorf("cursor should stay at 0, got %d", model.cursor)
	}
	for i := 0; i < visible+3; i++ {
		model, _ = press(t, model, "j")
	}
	if model.cursor != visible-1 {
		t.Errorf("cursor should stop at the last row %d, got %d", visible-1, model.cursor)
	}
	model, _ = press(t, model, "up")
	if model.cursor != visible-2 {
		t.Errorf("cursor after up should be %d, got %d", visible-2, model.cursor)
	}
}

func TestModelVisibleFields(t *testing.T) {
	cfg := config.Default()
	cfg.SigningMode = config.SigningRelease
	model, _, _ := testModel(t, cfg)

	keys := fieldKeys(model.visibleFields())
	if !contains(keys, "keystore_password") || !contains(keys, "key_alias") {
		t.Errorf("release form should show keystore rows: %v", keys)
	}
	if contains(keys, keySerialFilter) {
		t.Errorf("serial filter should be hidden without adb: %v", keys)
	}

	model.cfg.AdbPath = "/sdk/adb"
	keys = fieldKeys(model.visibleFields())
	if !contains(keys, keySerialFilter) || contains(keys, keySerial) {
		t.Errorf("only the serial filter should show with adb set: %v", keys)
	}

	model, _ = send(t, model, editDoneMsg{key: keySerialFilter, value: "true"})
	if !contains(fieldKeys(model.visibleFields()), keySerial) {
		t.Error("serial row should show once the filter is enabled")
	}
}

func TestModelToggleSigningModePersists(t *testing.T) {
	model, s, _ := testModel(t, config.Default())

	for model.visibleFields()[model.cursor].key != "signing_mode" {
		model, _ = press(t, model, "j")
	}
	model, _ = press(t, model, "space")

	if !model.Config().IsRelease() {
		t.Fatal("space on signing mode should select release")
	}
	if !loadSaved(t, s).IsRelease() {
		t.Error("signing mode should be saved to the store")
	}
	if !strings.Contains(model.View(), "(•) Release") {
		t.Error("view should mark release as selected")
	}

	model, _ = press(t, model, "enter")
	if model.Config().IsRelease() {
		t.Error("enter on a toggle should flip it back to debug")
	}
	if model.Step() != StepIdle {
		t.Errorf("toggles never open the editor, step is %v", model.Step())
	}
}

func TestModelEditorCommitsValue(t *testing.T) {
	model, s, _ := testModel(t, config.Default())

	model, _ = press(t, model, "enter")
	if model.Step() != StepEditing {
		t.Fatalf("enter on a text field should open the editor, step is %v", model.Step())
	}
	if model.editing.key != "bundletool_path" {
		t.Fatalf("editing %q, want bundletool_path", model.editing.key)
	}

	model, _ = press(t, model, "/opt/bundletool.jar")
	model, cmd := press(t, model, "enter")
	if model.Step() != StepIdle {
		t.Errorf("enter should close the editor, step is %v", model.Step())
	}
	done, ok := finishOf(t, cmd).(editDoneMsg)
	if !ok || done.value != "/opt/bundletool.jar" {
		t.Fatalf("expected editDoneMsg with the typed value, got %#v", done)
	}

	model, _ = send(t, model, done)
	if model.Config().BundletoolPath != "/opt/bundletool.jar" {
		t.Errorf("BundletoolPath = %q", model.Config().BundletoolPath)
	}
	if loadSaved(t, s).BundletoolPath != "/opt/bundletool.jar" {
		t.Error("edited value should be saved to the store")
	}
}

func TestModelEditorEscDiscards(t *testing.T) {
	cfg := config.Default()
	cfg.BundletoolPath = "/kept.jar"
	model, _, _ := testModel(t, cfg)

	model, _ = press(t, model, "enter")
	model, _ = press(t, model, "-changed")
	model, cmd := press(t, model, "esc")
	if cmd != nil {
		t.Error("esc should not commit anything")
	}
	if model.Step() != StepIdle || model.Config().BundletoolPath != "/kept.jar" {
		t.Errorf("step=%v path=%q", model.Step(), model.Config().BundletoolPath)
	}
}

func TestModelEditorHidesSecrets(t *testing.T) {
	cfg := config.Default()
	cfg.SigningMode = config.SigningRelease
	cfg.KeystorePassword = "hunter2"
	model, _, _ := testModel(t, cfg)

	view := model.View()
	if strings.Contains(view, "hunter2") {
		t.Error("view must not show passwords")
	}
	if !strings.Contains(view, "Keystore password") {
		t.Error("release form should list the keystore password row")
	}
}

func TestModelBuildValidationFailure(t *testing.T) {
	model, _, fake := testModel(t, config.Default())

	model, cmd := press(t, model, "x")
	if cmd != nil {
		t.Error("an invalid build should not start a run")
	}
	if model.Step() != StepIdle {
		t.Errorf("step = %v, want idle", model.Step())
	}
	if l := lastLog(model); l.level != levelError || l.text != "tool path missing" {
		t.Errorf("last log = %+v", l)
	}
	if fake.last() != "" {
		t.Errorf("nothing should have run, got %q", fake.last())
	}

	model.cfg.BundletoolPath = "/bt.jar"
	model.cfg.SigningMode = config.SigningRelease
	model.cfg.BundlePath = "/app.aab"
	model, _ = press(t, model, "x")
	if lastLog(model).text != "keystore info incomplete" {
		t.Errorf("release without keystore should fail, got %q", lastLog(model).text)
	}
}

func TestModelBuildWithoutUnzip(t *testing.T) {
	dir := t.TempDir()
	model, _, fake := testModel(t, buildableConfig(dir))
	fake.reply = func(_ context.Context, line string) (exec.Result, error) {
		return exec.Result{Command: line, Output: "built\n", Duration: 1500 * time.Millisecond}, nil
	}

	model, cmd := press(t, model, "x")
	if model.Step() != StepExecuting {
		t.Fatalf("step = %v, want executing", model.Step())
	}
	if !strings.Contains(model.View(), "Executing...") {
		t.Error("view should show the running status")
	}

	model, _ = send(t, model, finishOf(t, cmd))
	if model.Step() != StepIdle {
		t.Errorf("step = %v, want idle", model.Step())
	}
	if !strings.Contains(fake.last(), "build-apks") || !strings.Contains(fake.last(), "--bundle="+filepath.Join(dir, "app.aab")) {
		t.Errorf("unexpected command %q", fake.last())
	}
	if !hasLog(model, "Build finished in 1.5s") {
		t.Error("expected a build duration line")
	}
	if want := "File will be saved at " + dir + "."; lastLog(model).text != want {
		t.Errorf("last log = %q, want %q", lastLog(model).text, want)
	}
}

func TestModelBuildMasksPasswords(t *testing.T) {
	cfg := buildableConfig(t.TempDir())
	cfg.SigningMode = config.SigningRelease
	cfg.KeystorePath = "/keys/release.jks"
	cfg.KeystorePassword = "storesecret"
	cfg.KeyAlias = "upload"
	cfg.KeyPassword = "keysecret"
	model, _, fake := testModel(t, cfg)

	model, cmd := press(t, model, "x")
	for _, l := range model.logs {
		if strings.Contains(l.text, "storesecret") || strings.Contains(l.text, "keysecret") {
			t.Fatalf("log leaks a password: %q", l.text)
		}
	}
	finishOf(t, cmd)
	if !strings.Contains(fake.last(), "--ks-pass=pass:storesecret") {
		t.Errorf("the executed command needs the real password, got %q", fake.last())
	}
}

func TestModelBuildLogsShortPasswordsByPosition(t *testing.T) {
	cfg := buildableConfig(t.TempDir())
	cfg.SigningMode = config.SigningRelease
	cfg.KeystorePath = "/keys/release.jks"
	cfg.KeystorePassword = "a"
	cfg.KeyAlias = "upload"
	cfg.KeyPassword = "a"
	model, _, _ := testModel(t, cfg)

	model, _ = press(t, model, "x")
	l := lastLog(model)
	if l.level != levelCommand || !strings.HasPrefix(l.text, "java -jar ") || !strings.Contains(l.text, " build-apks ") {
		t.Errorf("command log mangled: %q", l.text)
	}
	if !strings.Contains(l.text, "--ks-pass=pass:**** --ks-key-alias=upload --key-pass=pass:****") {
		t.Errorf("passwords not masked: %q", l.text)
	}
}

func TestModelBuildFailure(t *testing.T) {
	model, _, fake := testModel(t, buildableConfig(t.TempDir()))
	fake.reply = func(_ context.Context, line string) (exec.Result, error) {
		return exec.Result{Command: line, Output: "[BT:1.15] Error: bad bundle"}, e.New(e.ErrProcessExit, "Command exited with status 1")
	}

	model, cmd := press(t, model, "x")
	model, _ = send(t, model, finishOf(t, cmd))
	if model.Step() != StepIdle {
		t.Errorf("step = %v, want idle", model.Step())
	}
	if !hasLog(model, "bad bundle") {
		t.Error("tool output should be logged")
	}
	if l := lastLog(model); l.level != levelError || !strings.Contains(l.text, "status 1") {
		t.Errorf("last log = %+v", l)
	}
}

// writeArchiveReply answers a build by writing a small .apks at archive.
func writeArchiveReply(archive string) func(context.Context, string) (exec.Result, error) {
	return func(_ context.Context, line string) (exec.Result, error) {
		f, err := os.Create(archive)
		if err != nil {
			return exec.Result{}, err
		}
		zw := zip.NewWriter(f)
		for _, name := range []string{"toc.pb", "splits/base-master.apk"} {
			w, _ := zw.Create(name)
			_, _ = w.Write([]byte(name))
		}
		_ = zw.Close()
		_ = f.Close()
		return exec.Result{Command: line}, nil
	}
}

func TestModelBuildThenUnpack(t *testing.T) {
	dir := t.TempDir()
	cfg := buildableConfig(dir)
	cfg.AutoUnzip = true
	model, _, fake := testModel(t, cfg)

	archive := filepath.Join(dir, "app.apks")
	fake.reply = writeArchiveReply(archive)

	model, cmd := press(t, model, "x")
	model, cmd = send(t, model, finishOf(t, cmd))
	if model.Step() != StepExecuting {
		t.Fatalf("unpacking keeps the run going, step is %v", model.Step())
	}
	if model.status != "Unpacking..." {
		t.Errorf("status = %q", model.status)
	}

	model, _ = send(t, model, finishOf(t, cmd))
	if model.Step() != StepIdle {
		t.Errorf("step = %v, want idle", model.Step())
	}
	if l := lastLog(model); l.level != levelSuccess || !strings.Contains(l.text, "base-master.apk") {
		t.Errorf("last log = %+v", l)
	}
	if _, err := os.Stat(filepath.Join(dir, "app", "splits", "base-master.apk")); err != nil {
		t.Errorf("split not extracted: %v", err)
	}
	if _, err := os.Stat(archive); !os.IsNotExist(err) {
		t.Error("archive should be removed after unpacking")
	}
}

func TestModelCancelUnpack(t *testing.T) {
	dir := t.TempDir()
	cfg := buildableConfig(dir)
	cfg.AutoUnzip = true
	model, _, fake := testModel(t, cfg)
	archive := filepath.Join(dir, "app.apks")
	fake.reply = writeArchiveReply(archive)

	model, cmd := press(t, model, "x")
	model, cmd = send(t, model, finishOf(t, cmd))
	model, _ = press(t, model, "esc")

	model, _ = send(t, model, finishOf(t, cmd))
	if model.Step() != StepIdle {
		t.Errorf("step = %v, want idle", model.Step())
	}
	if l := lastLog(model); l.level != levelError || !strings.Contains(l.text, "cancelled") {
		t.Errorf("last log = %+v", l)
	}
	if _, err := os.Stat(archive); err != nil {
		t.Errorf("a cancelled unpack must keep the archive: %v", err)
	}
}

func TestModelVerifyAdbSuccess(t *testing.T) {
	model, s, fake := testModel(t, config.Default())
	fake.reply = func(_ context.Context, line string) (exec.Result, error) {
		return exec.Result{Command: line, Output: "Android Debug Bridge version 1.0.41\nVersion 34.0.5\n"}, nil
	}

	model, cmd := send(t, model, editDoneMsg{key: "adb_path", value: "/sdk/adb"})
	if model.Step() != StepVerifying {
		t.Fatalf("step = %v, want verifying", model.Step())
	}
	if model.Config().AdbPath != "" {
		t.Error("adb path should not be kept before it is verified")
	}

	model, _ = send(t, model, finishOf(t, cmd))
	if fake.last() != "/sdk/adb version" {
		t.Errorf("ran %q", fake.last())
	}
	if model.Step() != StepIdle || model.Config().AdbPath != "/sdk/adb" {
		t.Errorf("step=%v adb=%q", model.Step(), model.Config().AdbPath)
	}
	if loadSaved(t, s).AdbPath != "/sdk/adb" {
		t.Error("verified adb path should be saved")
	}
	if lastLog(model).text != "Adb connected: Android Debug Bridge version 1.0.41" {
		t.Errorf("last log = %q", lastLog(model).text)
	}
}

func TestModelVerifyAdbFailureClearsPath(t *testing.T) {
	cfg := config.Default()
	cfg.AdbPath = "/old/adb"
	model, s, fake := testModel(t, cfg)
	model, _ = send(t, model, editDoneMsg{key: keySerialFilter, value: "true"})
	fake.reply = func(_ context.Context, line string) (exec.Result, error) {
		return exec.Result{Command: line, ExitCode: 127}, e.New(e.ErrToolNotFound, "Tool could not be started by the shell")
	}

	model, cmd := send(t, model, editDoneMsg{key: "adb_path", value: "/missing/adb"})
	model, _ = send(t, model, finishOf(t, cmd))

	if model.Config().AdbPath != "" {
		t.Errorf("failed verification should clear the adb path, got %q", model.Config().AdbPath)
	}
	if model.serialEnabled {
		t.Error("failed verification should disable the serial filter")
	}
	if loadSaved(t, s).AdbPath != "" {
		t.Error("cleared adb path should be saved")
	}
	if lastLog(model).level != levelError {
		t.Errorf("last log = %+v", lastLog(model))
	}
}

func TestModelClearingAdbSkipsVerify(t *testing.T) {
	cfg := config.Default()
	cfg.AdbPath = "/sdk/adb"
	model, _, fake := testModel(t, cfg)

	model, cmd := send(t, model, editDoneMsg{key: "adb_path", value: ""})
	if cmd != nil || model.Step() != StepIdle {
		t.Errorf("clearing adb should not verify, step=%v", model.Step())
	}
	if model.Config().AdbPath != "" || fake.last() != "" {
		t.Errorf("adb=%q ran=%q", model.Config().AdbPath, fake.last())
	}
}

func TestModelBuildForDevice(t *testing.T) {
	cfg := buildableConfig(t.TempDir())
	cfg.AdbPath = "/sdk/adb"
	model, _, fake := testModel(t, cfg)
	model, _ = send(t, model, editDoneMsg{key: keySerialFilter, value: "true"})

	model, _ = press(t, model, "x")
	if lastLog(model).text != "invalid serial id" {
		t.Fatalf("enabled filter without serial should fail, got %q", lastLog(model).text)
	}

	model, _ = send(t, model, editDoneMsg{key: keySerial, value: "emulator-5554"})
	_, cmd := press(t, model, "x")
	finishOf(t, cmd)
	if !strings.HasSuffix(fake.last(), "--device-id=emulator-5554") {
		t.Errorf("command should target the device, got %q", fake.last())
	}
}

func TestModelFetchDevices(t *testing.T) {
	model, _, _ := testModel(t, config.Default())
	model, cmd := press(t, model, "d")
	if cmd != nil || lastLog(model).text != "Set up adb first" {
		t.Errorf("fetching without adb should only log, got %q", lastLog(model).text)
	}

	cfg := config.Default()
	cfg.AdbPath = "/sdk/adb"
	model, _, fake := testModel(t, cfg)
	fake.reply = func(_ context.Context, line string) (exec.Result, error) {
		return exec.Result{Command: line, Output: "List of devices attached\nemulator-5554\tdevice\nR58M\tunauthorized\n\n"}, nil
	}

	model, cmd = press(t, model, "d")
	if model.Step() != StepExecuting {
		t.Fatalf("step = %v, want executing", model.Step())
	}
	model, _ = send(t, model, finishOf(t, cmd))
	if fake.last() != "/sdk/adb devices" {
		t.Errorf("ran %q", fake.last())
	}
	n := len(model.logs)
	if n < 2 {
		t.Fatalf("expected device lines, got %+v", model.logs)
	}
	if got := model.logs[n-2]; got.text != "emulator-5554\tdevice" || got.level != levelSuccess {
		t.Errorf("ready device line = %+v", got)
	}
	if got := model.logs[n-1]; got.text != "R58M\tunauthorized" || got.level != levelError {
		t.Errorf("unauthorized device line = %+v", got)
	}
}

func TestModelCancelRun(t *testing.T) {
	model, _, fake := testModel(t, buildableConfig(t.TempDir()))
	fake.reply = func(ctx context.Context, line string) (exec.Result, error) {
		if ctx.Err() != nil {
			return exec.Result{Command: line}, ctx.Err()
		}
		return exec.Result{Command: line}, nil
	}

	model, cmd := press(t, model, "x")
	model, _ = press(t, model, "esc")
	if !hasLog(model, "Cancelling...") {
		t.Error("esc during a run should log the cancellation")
	}

	model, _ = send(t, model, finishOf(t, cmd))
	if model.Step() != StepIdle {
		t.Errorf("step = %v, want idle", model.Step())
	}
	if l := lastLog(model); l.level != levelError || !strings.Contains(l.text, "canceled") {
		t.Errorf("last log = %+v", l)
	}
}

func TestModelIgnoresKeysWhileBusy(t *testing.T) {
	model, _, _ := testModel(t, buildableConfig(t.TempDir()))
	model, _ = press(t, model, "x")

	model, cmd := press(t, model, "x")
	if cmd != nil {
		t.Error("a second run should not start while one is active")
	}
	model, _ = press(t, model, "j")
	if model.cursor != 0 {
		t.Errorf("cursor moved while busy: %d", model.cursor)
	}
}

func TestModelStaleFinishIsIgnored(t *testing.T) {
	model, _, _ := testModel(t, config.Default())
	model, _ = send(t, model, buildFinishedMsg{})
	model, _ = send(t, model, verifyFinishedMsg{path: "/sdk/adb"})
	if model.Config().AdbPath != "" || len(model.logs) != 0 {
		t.Errorf("finish messages outside a run should be dropped: adb=%q logs=%d", model.Config().AdbPath, len(model.logs))
	}
}

func TestModelStoreChangedReloads(t *testing.T) {
	model, s, _ := testModel(t, config.Default())

	external := config.Default()
	external.BundlePath = "/elsewhere/app.aab"
	if err := config.Save(s, external); err != nil {
		t.Fatal(err)
	}

	model, _ = send(t, model, storeChangedMsg{})
	if model.Config().BundlePath != "/elsewhere/app.aab" {
		t.Errorf("idle model should reload, BundlePath = %q", model.Config().BundlePath)
	}

	model.step = StepExecuting
	external.BundlePath = "/later/app.aab"
	if err := config.Save(s, external); err != nil {
		t.Fatal(err)
	}
	model, _ = send(t, model, storeChangedMsg{})
	if model.Config().BundlePath != "/elsewhere/app.aab" {
		t.Error("a busy model should not reload settings")
	}
}

func TestModelClearLogs(t *testing.T) {
	model, _, _ := testModel(t, config.Default())
	model, _ = press(t, model, "x")
	if len(model.logs) == 0 {
		t.Fatal("expected a validation log line")
	}
	model, _ = press(t, model, "c")
	if len(model.logs) != 0 {
		t.Errorf("c should clear logs, %d left", len(model.logs))
	}
}

func TestModelView(t *testing.T) {
	model, _, _ := testModel(t, config.Default())
	view := model.View()

	for _, want := range []string{"Android Bundletool", "Bundletool jar", "Aab file", "Adb path", "q quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
	if strings.Contains(view, "Keystore path") {
		t.Error("debug form should hide keystore rows")
	}
}

func TestModelQuit(t *testing.T) {
	model, _, _ := testModel(t, config.Default())

	_, cmd := press(t, model, "q")
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestStepString(t *testing.T) {
	for step, want := range map[Step]string{
		StepIdle:      "idle",
		StepEditing:   "editing",
		StepVerifying: "verifying",
		StepExecuting: "executing",
	} {
		if step.String() != want {
			t.Errorf("%d.String() = %q, want %q", step, step.String(), want)
		}
	}
}
