package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/ansi"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/theirongolddev/finplan/internal/form"
	"github.com/theirongolddev/finplan/internal/gateway"
	"github.com/theirongolddev/finplan/internal/profile"
	"github.com/theirongolddev/finplan/internal/tui/components"
)

var fixedNow = time.Date(2026, time.October, 14, 10, 0, 0, 0, time.UTC)

type stubRequester struct {
	advice string
	err    error
}

func (s stubRequester) RequestAdvice(context.Context, profile.Profile) (string, error) {
	return s.advice, s.err
}

func newTestApp(t *testing.T, req gateway.Requester) App {
	t.Helper()
	log, _ := test.NewNullLogger()
	clock := func() time.Time { return fixedNow }
	a := NewApp(Options{
		Store:     form.New(nil, form.WithClock(clock), form.WithLogger(log)),
		Submitter: gateway.NewSubmitter(req),
		Log:       log,
		ReportDir: t.TempDir(),
		Now:       clock,
	})
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(App)
}

func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "ctrl+s":
			msg = tea.KeyMsg{Type: tea.KeyCtrlS}
		case "ctrl+r":
			msg = tea.KeyMsg{Type: tea.KeyCtrlR}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ := a.Update(msg)
		a = m.(App)
	}
	return a
}

func typeText(t *testing.T, a App, s string) App {
	t.Helper()
	for _, r := range s {
		m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		a = m.(App)
	}
	return a
}

func TestEditIncomeField(t *testing.T) {
	a := newTestApp(t, stubRequester{})

	a = press(t, a, "enter")
	a = typeText(t, a, "Salary")
	a = press(t, a, "enter", "l", "enter")
	a = typeText(t, a, "85000")
	a = press(t, a, "enter")

	p := a.store.Profile()
	if p.Incomes[0].Source != "Salary" || p.Incomes[0].Amount != "85000" {
		t.Fatalf("income = %+v", p.Incomes[0])
	}
	if a.editing {
		t.Fatal("still editing after enter")
	}
}

func TestEscCancelsEdit(t *testing.T) {
	a := newTestApp(t, stubRequester{})

	a = press(t, a, "enter")
	a = typeText(t, a, "ignored")
	a = press(t, a, "esc")

	if got := a.store.Profile().Incomes[0].Source; got != "" {
		t.Fatalf("source = %q, want unchanged", got)
	}
}

func TestAddAndDeleteRows(t *testing.T) {
	a := newTestApp(t, stubRequester{})

	a = press(t, a, "2", "a", "a")
	if n := len(a.store.Profile().Expenses); n != 3 {
		t.Fatalf("expenses = %d, want 3", n)
	}
	if a.rows[tabExpenses] != 2 {
		t.Fatalf("cursor = %d, want last row", a.rows[tabExpenses])
	}

	a = press(t, a, "d", "d", "d", "d")
	if n := len(a.store.Profile().Expenses); n != 0 {
		t.Fatalf("expenses = %d, want 0", n)
	}
	if a.rows[tabExpenses] != 0 {
		t.Fatalf("cursor = %d, want 0", a.rows[tabExpenses])
	}
}

func TestProtectionFlagsAndRent(t *testing.T) {
	a := newTestApp(t, stubRequester{})
	a = press(t, a, "7", "y", "j", "n", "j", "n")

	p := a.store.Profile()
	if p.HasHealthInsurance != profile.Yes || p.HasLifeInsurance != profile.No || p.OwnsHouse != profile.No {
		t.Fatalf("flags = %v %v %v", p.HasHealthInsurance, p.HasLifeInsurance, p.OwnsHouse)
	}

	a = press(t, a, "j", "enter")
	a = typeText(t, a, "18000")
	a = press(t, a, "enter")
	if got := a.store.Profile().MonthlyRent; got != "18000" {
		t.Fatalf("rent = %q", got)
	}
}

func TestHealthIssuesLockedUntilAnswered(t *testing.T) {
	a := newTestApp(t, stubRequester{})

	a = press(t, a, "8", "a")
	if n := len(a.store.Profile().HealthIssues); n != 1 {
		t.Fatalf("health issues = %d, want template row only", n)
	}
	if !a.statusErr {
		t.Fatal("expected a hint explaining the lock")
	}

	a.store.SetFlag(profile.FlagHealthIssues, profile.Yes)
	a = press(t, a, "a")
	if n := len(a.store.Profile().HealthIssues); n != 2 {
		t.Fatalf("health issues = %d, want 2", n)
	}
}

func TestSubmitShowsAdvice(t *testing.T) {
	a := newTestApp(t, stubRequester{advice: "## Plan\n- **Save** more"})

	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	a = m.(App)
	if !a.submitting || cmd == nil {
		t.Fatal("ctrl+s should start a submission")
	}

	m, cmd = a.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	a = m.(App)
	if cmd != nil {
		t.Fatal("second ctrl+s while submitting must be ignored")
	}

	m, _ = a.Update(adviceMsg{advice: "## Plan\n- **Save** more"})
	a = m.(App)
	if a.submitting || a.activeTab != tabAdvice || a.advice == "" {
		t.Fatalf("advice not shown: submitting=%v tab=%d", a.submitting, a.activeTab)
	}
	if !strings.Contains(a.View(), "Save") {
		t.Fatal("advice text missing from view")
	}
}

func TestSubmitErrors(t *testing.T) {
	a := newTestApp(t, stubRequester{})
	a.submitting = true

	m, _ := a.Update(adviceMsg{err: gateway.ErrNoAdvice})
	a = m.(App)
	if a.status != msgNoAdvice || !a.statusErr {
		t.Fatalf("status = %q", a.status)
	}

	m, _ = a.Update(adviceMsg{err: errors.New("AI API error: boom")})
	a = m.(App)
	if a.status != msgFailed || a.activeTab == tabAdvice {
		t.Fatalf("status = %q tab = %d", a.status, a.activeTab)
	}
}

func TestWriteReport(t *testing.T) {
	a := newTestApp(t, stubRequester{})
	m, _ := a.Update(adviceMsg{advice: "Keep an emergency fund."})
	a = press(t, m.(App), "w")

	path := filepath.Join(a.reportDir, "financial-advice-2026-10-14.md")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("report not written: %v (status %q)", err, a.status)
	}
	if !strings.Contains(string(data), "Keep an emergency fund.") {
		t.Fatalf("report = %q", data)
	}
}

func TestWritePDFReport(t *testing.T) {
	a := newTestApp(t, stubRequester{})
	m, _ := a.Update(adviceMsg{advice: "Keep an emergency fund."})
	a = press(t, m.(App), "p")

	data, err := os.ReadFile(filepath.Join(a.reportDir, "Financial_Advice_Report_2026-10-14.pdf"))
	if err != nil {
		t.Fatalf("pdf report not written: %v (status %q)", err, a.status)
	}
	if !strings.HasPrefix(string(data), "%PDF-") {
		t.Fatal("report is not a PDF")
	}
}

func TestResetConfirmOpens(t *testing.T) {
	a := newTestApp(t, stubRequester{})
	a = press(t, a, "ctrl+r")
	if a.resetForm == nil {
		t.Fatal("ctrl+r should open the confirmation")
	}
	if a.resetChoice == nil || *a.resetChoice {
		t.Fatal("confirmation should start unconfirmed")
	}
}

type noopMsg struct{}

func TestResetCompletedClearsForm(t *testing.T) {
	a := newTestApp(t, stubRequester{})
	a.store.UpdateField(profile.Incomes, 0, profile.FieldSource, "Salary")

	a = press(t, a, "ctrl+r")
	*a.resetChoice = true
	a.resetForm.State = huh.StateCompleted
	m, _ := a.updateResetForm(noopMsg{})
	a = m.(App)

	if a.resetForm != nil {
		t.Fatal("confirmation should close")
	}
	if !profile.Equal(a.store.Profile(), profile.Blank()) {
		t.Fatal("form not reset")
	}
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0
		for i, tab := range components.Tabs {
			w := components.TabVisualWidth(tab, i == active)
			if got := a.tabAtX(pos + w/2); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, pos+w/2, got, i)
			}
			pos += w + 1
		}
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := ansi.Strip(renderMarkdown("# Title\n\n- one **bold** item\n\n1. first\n\n---\n\nplain text", 60))
	for _, want := range []string{"Title", "• ", "bold", "1. first", "plain text"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered markdown missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "**") || strings.Contains(out, "# Title") {
		t.Errorf("markdown markers not rendered:\n%s", out)
	}
}

func TestRenderMarkdownWraps(t *testing.T) {
	long := strings.Repeat("emergency fund ", 20)
	for _, line := range strings.Split(ansi.Strip(renderMarkdown(long, 40)), "\n") {
		if w := len([]rune(strings.TrimRight(line, " "))); w > 40 {
			t.Fatalf("line width %d exceeds 40: %q", w, line)
		}
	}
}
