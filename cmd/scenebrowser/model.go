package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/flywave/go-simscene/render"
	"github.com/flywave/go-simscene/scene"
)

// Model is the root bubbletea model. Scene mutations run synchronously in
// Update so the controller keeps its single-writer discipline.
type Model struct {
	controller *scene.Controller
	surface    *render.Offscreen

	cursor int
	status string
	err    error
	width  int
	height int
}

func newModel(controller *scene.Controller, surface *render.Offscreen) Model {
	return Model{
		controller: controller,
		surface:    surface,
		status:     "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.controller.Navigator().Rows()

	switch msg.String() {
	case "q", "ctrl+c":
		m.controller.Close()
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
		return m, nil

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "enter":
		if len(rows) == 0 {
			return m, nil
		}
		m.err = m.controller.Navigator().Select(m.cursor)
		if m.err == nil {
			m.status = fmt.Sprintf("selected %s", rows[m.cursor].Label)
		}
		return m, nil

	case "w":
		m.err = m.controller.GenerateWind()
		if m.err == nil {
			m.status = "wind generated"
		}
		return m.clampCursor(), nil

	case "c":
		m.controller.Clear()
		m.status = "scene cleared"
		m.err = nil
		return m.clampCursor(), nil
	}
	return m, nil
}

func (m Model) clampCursor() Model {
	n := m.controller.Navigator().Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("simscene browser"))
	b.WriteString("\n\n")

	rows := m.controller.Navigator().Rows()
	if len(rows) == 0 {
		b.WriteString(dimStyle.Render("  no objects. press w for wind, q to quit."))
		b.WriteString("\n")
	}
	for i, row := range rows {
		line := fmt.Sprintf(" %2d  %s ", row.ID, row.Label)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("▸" + line))
		} else {
			b.WriteString(rowStyle.Render(" " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.statusLine()))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("j/k move · enter select · w wind · c clear · q quit"))
	return b.String()
}

func (m Model) statusLine() string {
	parts := []string{
		fmt.Sprintf("%d objects", m.controller.Registry().Len()),
		m.status,
	}
	if m.surface.WidgetCount() > 0 {
		if target := m.surface.WidgetTarget(); target != nil {
			parts = append(parts, fmt.Sprintf("manipulator on %s", m.targetLabel(target)))
		}
		f := m.surface.Focus()
		parts = append(parts, fmt.Sprintf("focus %.1f %.1f %.1f", f[0], f[1], f[2]))
	}
	return strings.Join(parts, " · ")
}

func (m Model) targetLabel(target *render.OffscreenHandle) string {
	for _, obj := range m.controller.Registry().Objects() {
		if obj.Handle == render.Handle(target) {
			return obj.Label
		}
	}
	return "?"
}
