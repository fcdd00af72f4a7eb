package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/engine"
	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/ui"
)

type boardModel struct {
	ctx     context.Context
	svc     *engine.Service
	changes <-chan struct{}

	width  int
	height int

	status   *engine.Status
	missions []engine.Mission

	expanded map[engine.Category]bool
	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	status   *engine.Status
	missions []engine.Mission
	err      error
}

type toggledMsg struct {
	id  string
	res *engine.MutationResult
	err error
}

type bottleMsg struct {
	undone bool
	err    error
}

type rolloverMsg struct {
	day string
}

// reloadMsg is sent when the database changed underneath the board.
type reloadMsg struct{}

func newBoardModel(ctx context.Context, svc *engine.Service, changes <-chan struct{}) boardModel {
	expanded := map[engine.Category]bool{}
	for _, c := range engine.Categories {
		expanded[c] = true
	}
	return boardModel{
		ctx:      ctx,
		svc:      svc,
		changes:  changes,
		expanded: expanded,
		loading:  true,
		lastLog:  "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.waitForChange())
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		st := m.svc.Status()
		return loadedMsg{status: &st, missions: m.svc.Missions()}
	}
}

// reloadCmd picks up writes made by other processes before loading.
func (m boardModel) reloadCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.Refresh(m.ctx); err != nil {
			return loadedMsg{err: err}
		}
		st := m.svc.Status()
		return loadedMsg{status: &st, missions: m.svc.Missions()}
	}
}

func (m boardModel) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	changes := m.changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return reloadMsg{}
	}
}

func (m boardModel) toggleCmd(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.ToggleMission(m.ctx, id)
		return toggledMsg{id: id, res: res, err: err}
	}
}

func (m boardModel) bottleCmd() tea.Cmd {
	return func() tea.Msg {
		if m.svc.HasBottleToday() {
			return bottleMsg{undone: true, err: m.svc.UndoBottle(m.ctx)}
		}
		_, err := m.svc.CompleteBottle(m.ctx)
		return bottleMsg{err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		refreshing := m.loading
		m.loading = false
		if msg.err != nil {
			if m.status == nil {
				m.err = msg.err
			}
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.err = nil
		m.status = msg.status
		m.missions = msg.missions
		if refreshing {
			m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		}
		return m, nil
	case reloadMsg:
		m.loading = true
		return m, tea.Batch(m.reloadCmd(), m.waitForChange())
	case rolloverMsg:
		m.lastLog = fmt.Sprintf("%s New day %s.", ui.IconMoon, msg.day)
		return m, m.loadCmd()
	case toggledMsg:
		if msg.err != nil {
			m.lastLog = "Toggle failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = describeToggle(msg.id, msg.res)
		return m, m.loadCmd()
	case bottleMsg:
		switch {
		case msg.err != nil:
			m.lastLog = "Bottle failed: " + msg.err.Error()
		case msg.undone:
			m.lastLog = ui.IconUndo + " Bottle undone."
		default:
			m.lastLog = ui.IconBottle + " Bottle completed."
		}
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.reloadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			lines := m.boardLines()
			if m.selected < len(lines)-1 {
				m.selected++
			}
			return m, nil
		case "enter":
			line, ok := m.selectedLine()
			if !ok {
				return m, nil
			}
			if line.mission == nil {
				m.expanded[line.category] = !m.expanded[line.category]
				return m, nil
			}
			return m, m.toggleCmd(line.mission.ID)
		case "c", " ":
			line, ok := m.selectedLine()
			if !ok {
				return m, nil
			}
			if line.mission == nil {
				m.lastLog = "Select a mission to toggle."
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Toggling %s…", line.mission.ID)
			return m, m.toggleCmd(line.mission.ID)
		case "b":
			return m, m.bottleCmd()
		}
	}
	return m, nil
}

// boardLine is either a category header (mission == nil) or a mission row.
type boardLine struct {
	category engine.Category
	mission  *engine.Mission
	done     int
	total    int
}

func (m boardModel) boardLines() []boardLine {
	if len(m.missions) == 0 {
		return nil
	}
	byCat := map[engine.Category][]int{}
	for i, ms := range m.missions {
		byCat[ms.Category] = append(byCat[ms.Category], i)
	}

	var out []boardLine
	for _, c := range engine.Categories {
		idx := byCat[c]
		if len(idx) == 0 {
			continue
		}
		head := boardLine{category: c, total: len(idx)}
		for _, i := range idx {
			if m.missions[i].Completed {
				head.done++
			}
		}
		out = append(out, head)
		if !m.expanded[c] {
			continue
		}
		for _, i := range idx {
			out = append(out, boardLine{category: c, mission: &m.missions[i]})
		}
	}
	return out
}

func (m boardModel) selectedLine() (boardLine, bool) {
	lines := m.boardLines()
	if m.selected < 0 || m.selected >= len(lines) {
		return boardLine{}, false
	}
	return lines[m.selected], true
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	leftW := 30
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 20 {
			leftW = 20
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	rows := len(linesLeft)
	if len(linesRight) > rows {
		rows = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < rows; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.status == nil {
		return "Ascensão | loading…"
	}
	st := m.status
	bar := ui.ProgressBar(st.LevelInto, st.LevelSize, 30)
	return fmt.Sprintf("%s | %s | Level %d | %d pts %s | rollover in %s",
		ui.Title.Render("Ascensão"), st.Day, st.Level, st.Lifetime, bar, st.UntilRollover.Round(time.Minute))
}

func (m boardModel) renderSidebar() string {
	if m.status == nil {
		return "Today\n\nLoading…"
	}
	st := m.status
	today := st.Today
	lines := []string{ui.H2.Render("Today")}
	lines = append(lines, fmt.Sprintf("- points %s", ui.Points(today.TotalPoints)))
	lines = append(lines, fmt.Sprintf("- missions %d/%d", st.Completed, st.Total))
	if today.Practice != "" {
		lines = append(lines, fmt.Sprintf("- practice %s (%d)", today.Practice, engine.PracticePenalties[today.Practice]))
	}
	lines = append(lines, fmt.Sprintf("- %s %.1f km", ui.IconRun, today.RunningKm))
	lines = append(lines, fmt.Sprintf("- %s %d punches", ui.IconFist, today.Punches))
	lines = append(lines, fmt.Sprintf("- %s %d drops", ui.IconDrop, today.ClonaDrops))
	lines = append(lines, fmt.Sprintf("- %s %d rituals", ui.IconCandle, len(today.Rituals)))
	lines = append(lines, fmt.Sprintf("- %s bottle %s", ui.IconBottle, ui.Check(st.BottleToday)))
	lines = append(lines, "")
	lines = append(lines, ui.H2.Render("Month "+st.CurrentMonth.Month))
	lines = append(lines, fmt.Sprintf("- %.1f km", st.CurrentMonth.TotalKm))
	lines = append(lines, fmt.Sprintf("- %d punches", st.CurrentMonth.TotalPunches))
	lines = append(lines, fmt.Sprintf("- %d drops", st.CurrentMonth.TotalClona))
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- enter: expand/toggle")
	lines = append(lines, "- c/space: toggle")
	lines = append(lines, "- b: bottle")
	lines = append(lines, "- r: reload")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	out := []string{ui.H2.Render("Missions")}

	lines := m.boardLines()
	if len(lines) == 0 {
		out = append(out, "(empty)")
		return strings.Join(out, "\n")
	}
	for i, bl := range lines {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		if bl.mission == nil {
			fold := "▸ "
			if m.expanded[bl.category] {
				fold = "▾ "
			}
			out = append(out, fmt.Sprintf("%s%s%s %s (%d/%d)", cursor, fold, ui.CategoryIcon(string(bl.category)), bl.category.Title(), bl.done, bl.total))
			continue
		}
		ms := bl.mission
		out = append(out, fmt.Sprintf("%s    %s %s %s", cursor, ui.Check(ms.Completed), ms.Title, ui.Points(ms.Points)))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func describeToggle(id string, res *engine.MutationResult) string {
	if res == nil {
		return "Toggled " + id + "."
	}
	s := fmt.Sprintf("%s %s (%s, day %d, lifetime %d)", ui.IconDone, id, ui.Points(res.Delta), res.DayTotal, res.Lifetime)
	switch {
	case res.LevelUp():
		s += fmt.Sprintf(" %s %d → %d", ui.BadgeLevelUp, res.LevelBefore, res.LevelAfter)
	case res.LevelDown():
		s += fmt.Sprintf(" %s %d → %d", ui.BadgeLevelDown, res.LevelBefore, res.LevelAfter)
	}
	return s
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
