// Package tui provides the interactive Bubble Tea form for the planner.
package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/theirongolddev/finplan/internal/form"
	"github.com/theirongolddev/finplan/internal/gateway"
	"github.com/theirongolddev/finplan/internal/profile"
	"github.com/theirongolddev/finplan/internal/report"
	"github.com/theirongolddev/finplan/internal/tui/components"
	"github.com/theirongolddev/finplan/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

// Tab indexes.
const (
	tabIncome = iota
	tabExpenses
	tabLoans
	tabGoals
	tabInvestments
	tabSIPs
	tabProtection
	tabHealth
	tabAdvice
)

const (
	minTerminalWidth = 80
	maxContentWidth  = 160
	minContentHeight = 5
)

// Status messages shown after a submission.
const (
	msgSubmitting = "Getting advice..."
	msgNoAdvice   = "⚠ No advice returned from API!"
	msgFailed     = "⚠ Error fetching advice!"
)

// adviceMsg carries the outcome of a submission.
type adviceMsg struct {
	advice string
	err    error
}

// Options configures the App.
type Options struct {
	Store     *form.Store
	Submitter *gateway.Submitter
	Log       logrus.FieldLogger
	// ReportDir receives exported advice reports.
	ReportDir string
	Now       func() time.Time
}

// App is the root Bubble Tea model.
type App struct {
	store     *form.Store
	submitter *gateway.Submitter
	log       logrus.FieldLogger
	reportDir string
	now       func() time.Time

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	rows      []int // row cursor per tab
	field     int   // column cursor on list tabs

	// Field editing
	editing bool
	input   textinput.Model
	edit    editTarget

	// Reset confirmation (huh form)
	resetForm   *huh.Form
	resetChoice *bool

	// Submission
	submitting bool
	spinner    spinner.Model
	advice     string
	viewport   viewport.Model

	status    string
	statusErr bool
}

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		store:     opts.Store,
		submitter: opts.Submitter,
		log:       opts.Log,
		reportDir: opts.ReportDir,
		now:       opts.Now,
		rows:      make([]int, len(components.Tabs)),
		spinner:   sp,
		viewport:  viewport.New(0, 0),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	a.store.RefreshSummaries()
	return tea.EnableMouseCellMotion
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.viewport.Width = a.contentWidth() - 4
		a.viewport.Height = max(a.height-9, minContentHeight)
		if a.advice != "" {
			a.viewport.SetContent(renderMarkdown(a.advice, a.viewport.Width))
		}
		if a.resetForm != nil {
			a.resetForm = a.resetForm.WithWidth(min(msg.Width, 60))
		}
		return a, nil

	case adviceMsg:
		return a.finishSubmit(msg), nil

	case spinner.TickMsg:
		if a.submitting {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.MouseMsg:
		if a.editing || a.resetForm != nil || a.showHelp {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress && msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					return a.switchTab(tab), nil
				}
			}
		case tea.MouseButtonWheelUp:
			return a.moveRow(-1), nil
		case tea.MouseButtonWheelDown:
			return a.moveRow(1), nil
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)
	}

	if a.resetForm != nil {
		return a.updateResetForm(msg)
	}
	if a.editing {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Global: quit
	if key == "ctrl+c" {
		return a, tea.Quit
	}

	// Reset confirmation intercepts all keys
	if a.resetForm != nil {
		return a.updateResetForm(msg)
	}

	if a.editing {
		return a.updateEdit(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "ctrl+s":
		return a.startSubmit()
	case "ctrl+r":
		return a.startReset()
	case "tab":
		return a.switchTab((a.activeTab + 1) % len(components.Tabs)), nil
	case "shift+tab":
		return a.switchTab((a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)), nil
	}
	if idx := components.TabIdxByKey(key); idx >= 0 {
		return a.switchTab(idx), nil
	}

	switch a.activeTab {
	case tabAdvice:
		return a.updateAdviceKey(msg)
	case tabProtection:
		return a.updateProtectionKey(key)
	default:
		return a.updateListKey(key)
	}
}

func (a App) switchTab(idx int) App {
	a.activeTab = idx
	a.field = 0
	if idx == tabSIPs {
		a.store.RefreshSummaries()
	}
	return a
}

func (a App) moveRow(delta int) App {
	if a.activeTab == tabAdvice {
		if delta < 0 {
			a.viewport.ScrollUp(1)
		} else {
			a.viewport.ScrollDown(1)
		}
		return a
	}
	n := a.rowCount()
	if n == 0 {
		return a
	}
	a.rows[a.activeTab] = clamp(a.rows[a.activeTab]+delta, 0, n-1)
	return a
}

func (a App) rowCount() int {
	p := a.store.Profile()
	switch a.activeTab {
	case tabProtection:
		return len(protectionRows(p))
	case tabAdvice:
		return 0
	default:
		return p.Len(tabList(a.activeTab))
	}
}

func (a *App) setStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
}

// ─── Submission ─────────────────────────────────────────────────

func (a App) startSubmit() (tea.Model, tea.Cmd) {
	if a.submitter == nil {
		a.setStatus("No advice gateway configured", true)
		return a, nil
	}
	if a.submitting || a.submitter.Busy() {
		return a, nil
	}

	a.submitting = true
	a.setStatus(msgSubmitting, false)

	p := a.store.Profile()
	sub := a.submitter
	return a, tea.Batch(a.spinner.Tick, func() tea.Msg {
		advice, err := sub.Submit(context.Background(), p)
		return adviceMsg{advice: advice, err: err}
	})
}

func (a App) finishSubmit(msg adviceMsg) App {
	a.submitting = false

	switch {
	case errors.Is(msg.err, gateway.ErrNoAdvice):
		a.setStatus(msgNoAdvice, true)
	case errors.Is(msg.err, gateway.ErrBusy):
		// another submission owns the result
	case msg.err != nil:
		a.log.WithError(msg.err).Error("advice request failed")
		a.setStatus(msgFailed, true)
	default:
		a.advice = msg.advice
		a.viewport.SetContent(renderMarkdown(a.advice, max(a.viewport.Width, 40)))
		a.viewport.GotoTop()
		a.activeTab = tabAdvice
		a.setStatus("Advice ready", false)
	}
	return a
}

// ─── Reset ──────────────────────────────────────────────────────

func (a App) startReset() (tea.Model, tea.Cmd) {
	choice := new(bool)
	a.resetChoice = choice
	a.resetForm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Reset form & clear saved data?").
				Affirmative("Reset").
				Negative("Cancel").
				Value(choice),
		),
	).WithShowHelp(false).WithWidth(min(max(a.width, 40), 60))
	return a, a.resetForm.Init()
}

func (a App) updateResetForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	f, cmd := a.resetForm.Update(msg)
	if hf, ok := f.(*huh.Form); ok {
		a.resetForm = hf
	}

	switch a.resetForm.State {
	case huh.StateCompleted:
		if *a.resetChoice {
			a.store.Reset()
			a.rows = make([]int, len(components.Tabs))
			a.field = 0
			a.setStatus("Form reset", false)
		}
		a.resetForm, a.resetChoice = nil, nil
		return a, nil
	case huh.StateAborted:
		a.resetForm, a.resetChoice = nil, nil
		return a, nil
	}
	return a, cmd
}

// ─── Advice ─────────────────────────────────────────────────────

func (a App) updateAdviceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "w":
		return a.writeReport(report.DefaultName), nil
	case "p":
		return a.writeReport(report.DefaultPDFName), nil
	case "j":
		a.viewport.ScrollDown(1)
		return a, nil
	case "k":
		a.viewport.ScrollUp(1)
		return a, nil
	}
	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

func (a App) writeReport(name func(time.Time) string) App {
	if a.advice == "" {
		a.setStatus("No advice to export yet (ctrl+s to submit)", true)
		return a
	}
	now := a.now()
	path := filepath.Join(a.reportDir, name(now))
	if err := report.Save(path, a.advice, now); err != nil {
		a.log.WithError(err).Error("writing advice report")
		a.setStatus("Could not write report: "+err.Error(), true)
		return a
	}
	a.log.WithField("path", path).Info("advice report written")
	a.setStatus("Report written to "+path, false)
	return a
}

// ─── View ───────────────────────────────────────────────────────

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.resetForm != nil {
		return a.viewOverlay(a.resetForm.View())
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  finplan needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewOverlay(body string) string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Focus).
		Padding(1, 3).
		Render(body)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Quote).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"1-9", "Jump to section"},
			{"tab ⇧tab", "Next / Previous section"},
			{"j k", "Rows (scroll on Advice)"},
			{"h l ← →", "Fields"},
		}},
		{"Editing", []struct{ key, desc string }{
			{"Enter", "Edit field"},
			{"a", "Add row"},
			{"d", "Delete row"},
			{"y n u", "Answer yes / no / unset"},
			{"Esc", "Cancel edit"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"^s", "Get advice"},
			{"^r", "Reset form"},
			{"w", "Write advice report (Markdown)"},
			{"p", "Write advice report (PDF)"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return a.viewOverlay(b.String())
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, a.hints(), a.statusText(), a.statusErr)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabAdvice:
		content = a.renderAdviceTab(cw)
	case tabProtection:
		content = a.renderProtectionTab(cw)
	default:
		content = a.renderListTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusText() string {
	if a.submitting {
		return a.spinner.View() + " " + msgSubmitting
	}
	return a.status
}

func (a App) hints() string {
	if a.editing {
		return "[enter]save  [esc]cancel"
	}
	switch a.activeTab {
	case tabAdvice:
		return "[j/k]scroll  [w]rite md  [p]df  [^s]advice  [?]help  [q]uit"
	case tabProtection:
		return "[y/n/u]answer  [enter]edit rent  [^s]advice  [^r]eset  [?]help  [q]uit"
	default:
		return "[a]dd  [d]elete  [enter]edit  [^s]advice  [^r]eset  [?]help  [q]uit"
	}
}

// ─── Helpers ────────────────────────────────────────────────────

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1
	}
	return -1
}

// hasProfileList reports whether tab edits a profile list.
func hasProfileList(tab int) bool {
	return tab != tabProtection && tab != tabAdvice
}

func tabList(tab int) profile.List {
	switch tab {
	case tabIncome:
		return profile.Incomes
	case tabExpenses:
		return profile.Expenses
	case tabLoans:
		return profile.Loans
	case tabGoals:
		return profile.Goals
	case tabInvestments:
		return profile.Investments
	case tabSIPs:
		return profile.SIPs
	case tabHealth:
		return profile.HealthIssues
	}
	return ""
}
