package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"cstree/internal/driver"
)

type progressModel struct {
	title    string
	events   <-chan driver.Event
	spinner  spinner.Model
	prog     progress.Model
	items    []fileItem
	index    map[string]int
	finished int
	failed   int
	width    int
	done     bool
}

type fileItem struct {
	path   string
	status string
	stage  driver.Stage
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders check progress.
// The model quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file, status: labelQueued, stage: driver.StageLoad})
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		// Ctrl+C только закрывает экран, проверка доработает сама
		if msg.Type == tea.KeyCtrlC {
			m.done = true
			return m, tea.Quit
		}
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s %d/%d", m.title, m.finished, len(m.items))
	if m.failed > 0 {
		header += fmt.Sprintf(", %d with errors", m.failed)
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	const statusWidth = 10
	nameWidth := max(m.width-statusWidth-4, 20)
	for _, item := range m.items {
		status := styleStatus(item.status).Render(fmt.Sprintf("%*s", statusWidth, item.status))
		fmt.Fprintf(&b, "  %s %s\n", status, truncate(item.path, nameWidth))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

// applyEvent moves one file forward. A file counts as finished once, on
// its first final status.
func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	item := &m.items[idx]
	wasFinal := isFinal(item.status)
	if label := statusLabel(ev.Stage, ev.Status); label != "" {
		item.status, item.stage = label, ev.Stage
	}
	if !wasFinal && isFinal(item.status) {
		m.finished++
		if item.status == labelError {
			m.failed++
		}
	}

	var sum float64
	for _, it := range m.items {
		if isFinal(it.status) {
			sum++
			continue
		}
		sum += stageWeight[it.stage]
	}
	return m.prog.SetPercent(sum / float64(len(m.items)))
}

const (
	labelQueued = "queued"
	labelDone   = "done"
	labelCached = "cached"
	labelError  = "error"
)

// Доля работы, выполненной к началу стадии.
var stageWeight = map[driver.Stage]float64{
	driver.StageTokenize: 0.2,
	driver.StageParse:    0.4,
	driver.StageCheck:    0.8,
}

var stageLabels = map[driver.Stage]string{
	driver.StageLoad:     "loading",
	driver.StageTokenize: "lexing",
	driver.StageParse:    "parsing",
	driver.StageCheck:    "checking",
}

var statusLabels = map[driver.Status]string{
	driver.StatusQueued: labelQueued,
	driver.StatusDone:   labelDone,
	driver.StatusCached: labelCached,
	driver.StatusError:  labelError,
}

func isFinal(label string) bool {
	return label == labelDone || label == labelCached || label == labelError
}

// statusLabel names what a file is doing; "" leaves the label unchanged.
func statusLabel(stage driver.Stage, status driver.Status) string {
	if status == driver.StatusWorking {
		return stageLabels[stage]
	}
	return statusLabels[status]
}

var (
	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	idleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	labelStyles  = map[string]lipgloss.Style{
		labelDone:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		labelCached: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		labelError:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

func styleStatus(label string) lipgloss.Style {
	if st, ok := labelStyles[label]; ok {
		return st
	}
	if label == labelQueued {
		return idleStyle
	}
	return workingStyle
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
