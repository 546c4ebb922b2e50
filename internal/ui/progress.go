package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"cldt/internal/driver"
)

type watchModel struct {
	title   string
	events  <-chan driver.WatchEvent
	spinner spinner.Model
	prog    progress.Model
	items   []fileItem
	index   map[string]int
	cycles  int
	width   int
	done    bool
}

type fileItem struct {
	path    string
	status  string
	settled bool
}

type eventMsg driver.WatchEvent
type doneMsg struct{}

// NewWatchModel returns a Bubble Tea model that renders per-file watch
// status. Files join the list as events mention them; the channel closing
// ends the program.
func NewWatchModel(title string, events <-chan driver.WatchEvent) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	return &watchModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		index:   make(map[string]int),
		width:   80,
	}
}

func (m *watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.WatchEvent(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.done = true
			return m, tea.Quit
		}
		return m, nil
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progModel, cmd := m.prog.Update(msg)
		m.prog = progModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *watchModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.cycles > 0 {
		header = fmt.Sprintf("%s (cycle %d)", header, m.cycles)
	}
	if m.done {
		header = fmt.Sprintf("stopped: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString("  waiting for changes...\n")
		return b.String()
	}

	statusWidth := 12
	nameWidth := m.width - statusWidth - 4
	if nameWidth < 20 {
		nameWidth = 20
	}

	for _, item := range m.items {
		name := truncate(item.path, nameWidth)
		statusStyled := styleStatus(item.status).Render(fmt.Sprintf("%12s", item.status))
		fmt.Fprintf(&b, "  %s %s\n", statusStyled, name)
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

func (m *watchModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *watchModel) applyEvent(ev driver.WatchEvent) tea.Cmd {
	if ev.File == "" {
		// A fileless event marks the start of a new cycle: every file goes
		// back to pending.
		m.cycles++
		for i := range m.items {
			m.items[i].settled = false
		}
		return m.prog.SetPercent(0)
	}

	idx, ok := m.index[ev.File]
	if !ok {
		m.items = append(m.items, fileItem{path: ev.File})
		sort.Slice(m.items, func(i, j int) bool { return m.items[i].path < m.items[j].path })
		m.index = make(map[string]int, len(m.items))
		for i, item := range m.items {
			m.index[item.path] = i
		}
		idx = m.index[ev.File]
	}

	m.items[idx].status = statusLabel(ev)
	m.items[idx].settled = ev.Status != driver.StatusWorking

	settled := 0
	for _, item := range m.items {
		if item.settled {
			settled++
		}
	}
	return m.prog.SetPercent(float64(settled) / float64(len(m.items)))
}

func statusLabel(ev driver.WatchEvent) string {
	switch ev.Status {
	case driver.StatusWorking:
		if ev.Stage == driver.StageFormat {
			return "formatting"
		}
		return "linting"
	case driver.StatusChanged:
		return "formatted"
	case driver.StatusClean:
		return "clean"
	case driver.StatusFindings:
		if ev.Findings == 1 {
			return "1 issue"
		}
		return fmt.Sprintf("%d issues", ev.Findings)
	case driver.StatusError:
		return "error"
	default:
		return ""
	}
}

func styleStatus(status string) lipgloss.Style {
	switch {
	case status == "clean":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case status == "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case status == "formatting" || status == "linting":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	case strings.HasSuffix(status, "issue") || strings.HasSuffix(status, "issues"):
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
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
	return runewidth.Truncate(value, width-3, "...")
}
