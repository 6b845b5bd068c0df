package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studyplan/internal/day"
	"studyplan/internal/engine"
	"studyplan/internal/ui"
)

type pane int

const (
	panePlan pane = iota
	paneReviews
)

// boardModel drives both panes synchronously: the services are not safe
// for concurrent use, so nothing touches them from a tea.Cmd goroutine.
type boardModel struct {
	svc     *engine.Service
	reviews *engine.ReviewService
	changes <-chan struct{}

	width  int
	height int

	date      time.Time
	focus     pane
	selected  int
	reviewSel int

	tasks []engine.Task
	due   []engine.Review
	exams []engine.ExamView

	lastLog string
}

// reloadMsg reports that the data files changed on disk.
type reloadMsg struct{}

func newBoardModel(svc *engine.Service, reviews *engine.ReviewService, changes <-chan struct{}) boardModel {
	m := boardModel{
		svc:     svc,
		reviews: reviews,
		changes: changes,
		date:    svc.Today(),
		lastLog: "Loaded.",
	}
	m.refresh()
	return m
}

func (m boardModel) Init() tea.Cmd {
	return m.waitForChange()
}

func (m boardModel) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return reloadMsg{}
	}
}

func (m *boardModel) refresh() {
	m.tasks = m.svc.GenerateDay(m.date)
	m.exams = m.svc.UpcomingExams(m.svc.Today())
	if m.reviews != nil {
		m.due = m.reviews.DueReviews(m.date)
	}
	m.selected = clamp(m.selected, len(m.tasks))
	m.reviewSel = clamp(m.reviewSel, len(m.due))
}

// reload re-reads config.json and the data files. A rejected config is
// logged by the service and the board keeps planning with the old one.
func (m *boardModel) reload() {
	cfgErr := m.svc.ReloadConfig()
	m.svc.Reload()
	if m.reviews != nil {
		if cfgErr == nil {
			m.reviews.ApplyConfig(m.svc.Config().Review)
		}
		m.reviews.Reload()
	}
	m.refresh()
	if cfgErr != nil {
		m.lastLog = "Config rejected, kept current settings."
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case reloadMsg:
		m.lastLog = fmt.Sprintf("Files changed, reloaded at %s.", time.Now().Format("15:04:05"))
		m.reload()
		return m, m.waitForChange()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		m.lastLog = "Reloaded."
		m.reload()
	case "t":
		m.date = m.svc.Today()
		m.selected = 0
		m.refresh()
	case "left", "h":
		m.date = day.Add(m.date, -1)
		m.selected = 0
		m.refresh()
	case "right", "l":
		m.date = day.Add(m.date, 1)
		m.selected = 0
		m.refresh()
	case "tab":
		if m.focus == panePlan {
			m.focus = paneReviews
		} else {
			m.focus = panePlan
		}
	case "up", "k":
		if m.focus == panePlan && m.selected > 0 {
			m.selected--
		}
		if m.focus == paneReviews && m.reviewSel > 0 {
			m.reviewSel--
		}
	case "down", "j":
		if m.focus == panePlan && m.selected < len(m.tasks)-1 {
			m.selected++
		}
		if m.focus == paneReviews && m.reviewSel < len(m.due)-1 {
			m.reviewSel++
		}
	case " ", "space", "c":
		if m.focus != panePlan {
			return m, nil
		}
		m.toggleSelected()
	case "0", "1", "2", "3", "4", "5":
		if m.focus != paneReviews {
			return m, nil
		}
		m.gradeSelected(int(key[0] - '0'))
	}
	return m, nil
}

func (m *boardModel) toggleSelected() {
	if m.selected < 0 || m.selected >= len(m.tasks) {
		m.lastLog = "Nothing to toggle."
		return
	}
	t := m.tasks[m.selected]
	done, ok := m.svc.ToggleDone(t.Date, t.PlanIndex)
	if !ok {
		m.lastLog = "Toggle failed."
		return
	}
	if done {
		m.lastLog = fmt.Sprintf("Done: %s.", t.Title)
	} else {
		m.lastLog = fmt.Sprintf("Reopened: %s.", t.Title)
	}
	m.refresh()
}

func (m *boardModel) gradeSelected(q int) {
	if m.reviews == nil || m.reviewSel < 0 || m.reviewSel >= len(m.due) {
		m.lastLog = "No review selected."
		return
	}
	r := m.due[m.reviewSel]
	if !m.reviews.RecordReview(r.ID, q) {
		m.lastLog = "Grade rejected."
		return
	}
	if next, ok := m.reviews.Review(r.ID); ok {
		m.lastLog = fmt.Sprintf("Graded %s %d, next %s.", r.Topic, q, day.Format(next.NextReviewDate))
	}
	m.refresh()
}

func (m boardModel) View() string {
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
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	rows := max(len(linesLeft), len(linesRight))

	var body strings.Builder
	for i := 0; i < rows; i++ {
		l, r := "", ""
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
	total, done := 0, 0
	for _, t := range m.tasks {
		total += t.DurationMinutes
		if t.Done {
			done += t.DurationMinutes
		}
	}
	title := fmt.Sprintf("%s %s", day.Format(m.date), m.date.Weekday())
	return fmt.Sprintf("%s | %s %s %d/%d min",
		ui.Heading(ui.IconPlan, "studyplan"),
		title,
		progressBar(done, total, 20),
		done, total)
}

func (m boardModel) renderSidebar() string {
	lines := []string{ui.PanelTitle.Render("Exams")}
	if len(m.exams) == 0 {
		lines = append(lines, ui.Muted.Render("(none upcoming)"))
	}
	for _, e := range m.exams {
		lines = append(lines, fmt.Sprintf("%s %s %s", ui.PriorityBadge(e.Priority), e.SubjectName, ui.DaysLeft(e.DaysLeft)))
	}
	lines = append(lines,
		"",
		ui.PanelTitle.Render("Keys"),
		"- ←/→: day",
		"- ↑/↓: move",
		"- space: toggle done",
		"- tab: plan/reviews",
		"- 0-5: grade review",
		"- t: today  r: reload",
		"- q: quit",
	)
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	var out []string
	out = append(out, paneTitle("Plan", m.focus == panePlan))
	if len(m.tasks) == 0 {
		out = append(out, ui.Muted.Render("(nothing planned)"))
	}
	for i, t := range m.tasks {
		line := fmt.Sprintf("%s %s %s %-14s %2dm  %s",
			ui.Check(t.Done), ui.PriorityBadge(t.Priority), ui.Swatch(t.Color), t.Title, t.DurationMinutes, t.Goal)
		out = append(out, cursor(line, m.focus == panePlan && i == m.selected, t.Done))
	}

	out = append(out, "", paneTitle("Reviews due", m.focus == paneReviews))
	if len(m.due) == 0 {
		out = append(out, ui.Muted.Render("(none due)"))
	}
	for i, r := range m.due {
		line := fmt.Sprintf("%s %s %s %s", ui.IconReview, r.SubjectID, r.Topic,
			ui.Muted.Render(fmt.Sprintf("(rep %d, ef %.2f)", r.RepetitionNumber, r.EaseFactor)))
		out = append(out, cursor(line, m.focus == paneReviews && i == m.reviewSel, false))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func paneTitle(title string, active bool) string {
	if active {
		return ui.Title.Render("▸ " + title)
	}
	return ui.PanelTitle.Render("  " + title)
}

func cursor(line string, selected, done bool) string {
	switch {
	case selected:
		return "> " + ui.SelectedRow.Render(line)
	case done:
		return "  " + ui.DoneRow.Render(line)
	default:
		return "  " + line
	}
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// padRight pads by visible width so styled cells line up.
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
