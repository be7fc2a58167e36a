// Package tui is the interactive match browser behind `matchlog browse`.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/matchlog/internal/filter"
	"github.com/jask/matchlog/internal/match"
	"github.com/jask/matchlog/internal/service"
	"github.com/jask/matchlog/internal/stats"
)

// App is the bubbletea model for the browse view. Mutations of the service run
// inside Update, never from a tea.Cmd, so View always reads a settled
// collection.
type App struct {
	ctx      context.Context
	svc      *service.MatchService
	now      func() time.Time
	visible  []match.Record
	criteria filter.Criteria
	cursor   int
	mode     inputMode
	input    string
	modal    modalState
	status   string
}

type inputMode string

const (
	modeBrowse inputMode = "browse"
	modeSearch inputMode = "search"
)

type modalState string

const (
	modalNone          modalState = ""
	modalConfirmDelete modalState = "confirmDelete"
	modalConfirmReset  modalState = "confirmReset"
)

func New(ctx context.Context, svc *service.MatchService) *App {
	a := &App{ctx: ctx, svc: svc, now: time.Now, mode: modeBrowse}
	a.refresh()
	return a
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) refresh() {
	a.visible = filter.Apply(a.svc.All(), a.criteria)
	if a.cursor >= len(a.visible) {
		a.cursor = max(len(a.visible)-1, 0)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		if a.mode == modeSearch {
			return a.handleSearchKey(m)
		}
		switch m.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "/":
			a.mode = modeSearch
			a.input = a.criteria.Text
		case "up", "k":
			if a.cursor > 0 {
				a.cursor--
			}
		case "down", "j":
			if a.cursor < len(a.visible)-1 {
				a.cursor++
			}
		case "s":
			a.criteria.Surface = next(filter.Surfaces(a.svc.All()), a.criteria.Surface)
			a.refresh()
		case "o":
			a.criteria.Outcome = next(outcomes, a.criteria.Outcome)
			a.refresh()
		case "c":
			a.criteria = filter.Criteria{}
			a.refresh()
			a.status = "filters cleared"
		case "a":
			a.mutate("sample match added", func() error {
				_, err := a.svc.AddSample(a.ctx, a.now())
				return err
			})
		case "d":
			if len(a.visible) > 0 {
				a.modal = modalConfirmDelete
			}
		case "X":
			a.modal = modalConfirmReset
		}
	}
	return a, nil
}

// mutate applies fn to the service and refreshes the list on success.
func (a *App) mutate(status string, fn func() error) {
	if err := fn(); err != nil {
		a.status = "error: " + err.Error()
		return
	}
	a.refresh()
	a.status = status
}

var outcomes = []string{string(match.OutcomeWin), string(match.OutcomeLoss), string(match.OutcomeRetired)}

// next cycles through "" followed by options.
func next(options []string, cur string) string {
	if cur == "" {
		if len(options) == 0 {
			return ""
		}
		return options[0]
	}
	for i, o := range options {
		if o == cur && i+1 < len(options) {
			return options[i+1]
		}
	}
	return ""
}

func (a *App) handleSearchKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEnter:
		a.mode = modeBrowse
	case tea.KeyEsc:
		a.mode = modeBrowse
		a.input = ""
	case tea.KeyBackspace:
		if r := []rune(a.input); len(r) > 0 {
			a.input = string(r[:len(r)-1])
		}
	case tea.KeyCtrlC:
		return a, tea.Quit
	case tea.KeyRunes, tea.KeySpace:
		a.input += string(m.Runes)
	}
	a.criteria.Text = a.input
	a.refresh()
	return a, nil
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	modal := a.modal
	a.modal = modalNone
	if m.String() != "y" {
		return a, nil
	}
	switch modal {
	case modalConfirmDelete:
		if a.cursor >= len(a.visible) {
			return a, nil
		}
		id := a.visible[a.cursor].ID
		a.mutate("match deleted", func() error {
			_, err := a.svc.Remove(a.ctx, id)
			return err
		})
	case modalConfirmReset:
		a.mutate("all matches removed", func() error {
			return a.svc.Reset(a.ctx)
		})
	}
	return a, nil
}

// styles
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	kpiStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	cursorRow  = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
	outcomeFG  = map[match.Outcome]lipgloss.Style{
		match.OutcomeWin:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		match.OutcomeLoss:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		match.OutcomeRetired: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	}
)

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Match log"))
	b.WriteString("\n")
	b.WriteString(a.renderKPIs())
	b.WriteString("\n")
	b.WriteString(a.renderFilters())
	b.WriteString("\n\n")
	b.WriteString(a.renderList())
	if a.modal != modalNone {
		b.WriteString("\n\n" + a.renderModal())
	}
	b.WriteString("\n[/] Search  [s] Surface  [o] Outcome  [c] Clear  [a] Sample  [d] Delete  [X] Reset  [q] Quit")
	if a.status != "" {
		b.WriteString("\n" + a.status)
	}
	return b.String()
}

func (a *App) renderKPIs() string {
	l := stats.Compute(a.visible).Labels()
	boxes := []string{
		kpiStyle.Render("Win rate\n" + l.WinRate),
		kpiStyle.Render("Streak\n" + l.Streak),
		kpiStyle.Render("Avg duration\n" + l.AvgDuration),
		kpiStyle.Render("Avg RPE\n" + l.AvgEffort),
		kpiStyle.Render("By surface\n" + l.Surfaces),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (a *App) renderFilters() string {
	text := a.criteria.Text
	if a.mode == modeSearch {
		text = a.input + "▏"
	}
	return fmt.Sprintf("Search: %s  Surface: %s  Outcome: %s  (%d of %d)",
		orDash(text), orDash(a.criteria.Surface), orDash(a.criteria.Outcome), len(a.visible), a.svc.Len())
}

func (a *App) renderList() string {
	if len(a.visible) == 0 {
		return dimStyle.Render("No matches.")
	}
	var b strings.Builder
	for i, r := range a.visible {
		marker := " "
		if i == a.cursor {
			marker = "▶"
		}
		res := orDash(string(r.Outcome))
		if st, ok := outcomeFG[r.Outcome]; ok {
			res = st.Render(res)
		}
		line := fmt.Sprintf("%s %-10s  %-20s  %-8s  %-24s  %s", marker, orDash(r.Date), orDash(r.Opponent), orDash(r.Surface), orDash(match.DisplaySets(r.Sets)), res)
		if i == a.cursor {
			line = cursorRow.Render(line)
		}
		b.WriteString(line)
		if i < len(a.visible)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalConfirmDelete:
		r := a.visible[a.cursor]
		return titleStyle.Render("Delete match?") + fmt.Sprintf("\n%s vs %s\n[y] Yes  [n] No", r.Date, orDash(r.Opponent))
	case modalConfirmReset:
		return titleStyle.Render("Reset all data?") + "\nThis will delete every match.\n[y] Yes  [n] No"
	default:
		return ""
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return match.Placeholder
	}
	return s
}
