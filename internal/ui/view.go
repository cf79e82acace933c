package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// minLogHeight keeps the log pane usable on short terminals.
const minLogHeight = 5

func (model *Model) resize() {
	formHeight := len(allFields) + 6
	height := model.height - formHeight
	if height < minLogHeight {
		height = minLogHeight
	}
	width := model.width - 2
	if width < 20 {
		width = 20
	}
	model.logView.Width = width
	model.logView.Height = height
	model.input.Width = width - 26
	model.refreshLog()
}

func (model Model) View() string {
	var b strings.Builder
	b.WriteString(model.style.title.Render("Android Bundletool"))
	b.WriteString("\n\n")

	fields := model.visibleFields()
	for i, f := range fields {
		label := model.style.label.Render(f.label)
		value := model.display(f)
		if model.step == StepEditing && model.editing.key == f.key {
			value = model.input.View()
		}
		row := label + " " + model.style.value.Render(value)
		if i == model.cursor {
			row = model.style.selected.Render(label + " " + value)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	if f := fields[model.cursor]; f.help != "" {
		b.WriteString(model.style.faint.Render(f.help))
	}
	b.WriteString("\n")

	if model.busy() {
		b.WriteString(fmt.Sprintf("%s %s", model.spinner.View(), model.status))
	}
	b.WriteString("\n")

	b.WriteString(model.style.pane.Render(model.logView.View()))
	b.WriteString("\n")
	b.WriteString(model.helpLine())
	return b.String()
}

func (model Model) helpLine() string {
	bindings := []struct{ keys, desc string }{
		{model.keys.Up.Help().Key + " " + model.keys.Down.Help().Key, "move"},
		{model.keys.Edit.Help().Key, model.keys.Edit.Help().Desc},
		{model.keys.Toggle.Help().Key, model.keys.Toggle.Help().Desc},
		{model.keys.Execute.Help().Key, model.keys.Execute.Help().Desc},
		{model.keys.FetchDevices.Help().Key, model.keys.FetchDevices.Help().Desc},
		{model.keys.ClearLogs.Help().Key, model.keys.ClearLogs.Help().Desc},
		{model.keys.Quit.Help().Key, model.keys.Quit.Help().Desc},
	}
	if model.step == StepEditing {
		bindings = bindings[:0]
		bindings = append(bindings, struct{ keys, desc string }{"enter", "save"}, struct{ keys, desc string }{"esc", "discard"})
	} else if model.busy() {
		bindings = bindings[:0]
		bindings = append(bindings, struct{ keys, desc string }{"esc", "cancel"}, struct{ keys, desc string }{"q", "quit"})
	}
	parts := make([]string, len(bindings))
	for i, h := range bindings {
		parts[i] = h.keys + " " + h.desc
	}
	return model.style.faint.Render(strings.Join(parts, lipgloss.NewStyle().Faint(true).Render(" · ")))
}
