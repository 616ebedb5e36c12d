package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	polyvalue "github.com/Hitoprl/polymorphic-value"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	opStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#98FB98"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type opInfo struct {
	name   string
	desc   string
	params []paramInfo
}

type paramInfo struct {
	name        string
	placeholder string
}

// ops is the operation menu. Shape parameters are free-form: which of them a
// shape reads depends on the shape name (circle: radius; rect: width,height;
// label: text,pt; blob: seed).
var ops = []opInfo{
	{"new", "construct a shape into a fresh slot", []paramInfo{
		{"slot", "a"},
		{"shape", "circle|rect|label|blob"},
		{"args", "radius / w,h / text,pt / seed"},
	}},
	{"assign", "copy-assign a bare shape over a slot", []paramInfo{
		{"slot", "a"},
		{"shape", "circle|rect|label|blob"},
		{"args", "radius / w,h / text,pt / seed"},
	}},
	{"emplace", "destroy and rebuild a slot in place", []paramInfo{
		{"slot", "a"},
		{"shape", "circle|rect|label|blob"},
		{"args", "radius / w,h / text,pt / seed"},
	}},
	{"clone", "deep-copy one slot into a fresh slot", []paramInfo{
		{"slot", "b"},
		{"from", "a"},
	}},
	{"move", "transfer one slot into a fresh slot", []paramInfo{
		{"slot", "b"},
		{"from", "a"},
	}},
	{"copy-from", "copy-assign one slot over another", []paramInfo{
		{"slot", "a"},
		{"from", "b"},
	}},
	{"move-from", "move-assign one slot over another", []paramInfo{
		{"slot", "a"},
		{"from", "b"},
	}},
	{"dispose", "destroy a slot", []paramInfo{
		{"slot", "a"},
	}},
}

type modelState int

const (
	stateSelectOp modelState = iota
	stateInputArgs
	stateShowResult
)

type interactiveModel struct {
	err      error
	slots    map[string]*polyvalue.Value[Shape]
	result   string
	inputs   []textinput.Model
	selected int
	focusIdx int
	state    modelState
}

func newInteractiveModel() *interactiveModel {
	return &interactiveModel{
		slots: make(map[string]*polyvalue.Value[Shape]),
		state: stateSelectOp,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state != stateInputArgs || msg.String() == "ctrl+c" {
				for _, v := range m.slots {
					v.Dispose()
				}
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectOp && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectOp && m.selected < len(ops)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectOp:
				m.prepareInputs()
				m.state = stateInputArgs

			case stateInputArgs:
				m.result, m.err = m.execute()
				m.state = stateShowResult

			case stateShowResult:
				m.state = stateSelectOp
				m.result = ""
				m.err = nil
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectOp
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectOp
				m.result = ""
				m.err = nil
			}
		}
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) prepareInputs() {
	op := ops[m.selected]
	m.inputs = make([]textinput.Model, len(op.params))
	for i, p := range op.params {
		ti := textinput.New()
		ti.Placeholder = p.placeholder
		ti.Prompt = p.name + ": "
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *interactiveModel) execute() (string, error) {
	op := ops[m.selected]
	args := make(map[string]string, len(m.inputs))
	for i, input := range m.inputs {
		args[op.params[i].name] = strings.TrimSpace(input.Value())
	}

	st := step{
		Op:    op.name,
		Slot:  args["slot"],
		From:  args["from"],
		Shape: args["shape"],
	}
	if raw, ok := args["args"]; ok {
		parseShapeArgs(&st, raw)
	}

	if err := applyStep(m.slots, st); err != nil {
		return "", err
	}

	switch op.name {
	case "dispose", "move", "move-from":
		return "ok", nil
	default:
		if v, ok := m.slots[st.Slot]; ok {
			return fmt.Sprintf("%s = %s area=%g [%s %s]",
				st.Slot, v.Get().Describe(), v.Get().Area(),
				v.StorageKind(), v.ConcreteType()), nil
		}
		return "ok", nil
	}
}

// parseShapeArgs interprets the free-form args field for the selected shape.
func parseShapeArgs(st *step, raw string) {
	parts := strings.Split(raw, ",")
	num := func(i int) float64 {
		if i >= len(parts) {
			return 0
		}
		v, _ := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		return v
	}

	switch st.Shape {
	case "circle":
		st.Radius = num(0)
	case "rect":
		st.Width, st.Height = num(0), num(1)
	case "label":
		st.Text = strings.TrimSpace(parts[0])
		st.Pt = num(1)
		if st.Pt == 0 {
			st.Pt = 1
		}
	case "blob":
		st.Seed = num(0)
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("polyvalue playground"))
	b.WriteString("\n\n")

	b.WriteString(m.renderSlots())
	b.WriteString("\n")

	switch m.state {
	case stateSelectOp:
		b.WriteString("Select an operation:\n\n")
		for i, op := range ops {
			line := op.name + " — " + op.desc
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + opStyle.Render(op.name) + " — " + op.desc)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter run • q quit"))

	case stateInputArgs:
		op := ops[m.selected]
		b.WriteString(fmt.Sprintf("Operation %s\n\n", opStyle.Render(op.name)))
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter run • esc back"))

	case stateShowResult:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) renderSlots() string {
	if len(m.slots) == 0 {
		return helpStyle.Render("(no slots yet)") + "\n"
	}

	names := make([]string, 0, len(m.slots))
	for name := range m.slots {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		v := m.slots[name]
		b.WriteString(fmt.Sprintf("  %s: %s area=%g %s\n",
			opStyle.Render(name), v.Get().Describe(), v.Get().Area(),
			kindStyle.Render(fmt.Sprintf("[%s %s]", v.StorageKind(), v.ConcreteType()))))
	}
	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
