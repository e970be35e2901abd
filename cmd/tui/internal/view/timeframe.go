package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

// Timeframe is one of the export periods offered by the picker.
type Timeframe int

const (
	TimeframeThisWeek Timeframe = iota
	TimeframeLastWeek
	TimeframeThisMonth
	TimeframeLastMonth
	TimeframeThisFinancialYear
	TimeframeLastFinancialYear
	TimeframeAll
	TimeframeCustom
)

var timeframeLabels = [...]string{
	TimeframeThisWeek:          "This Week",
	TimeframeLastWeek:          "Last Week",
	TimeframeThisMonth:         "This Month",
	TimeframeLastMonth:         "Last Month",
	TimeframeThisFinancialYear: "This Financial Year",
	TimeframeLastFinancialYear: "Last Financial Year",
	TimeframeAll:               "All Time",
	TimeframeCustom:            "Custom Range",
}

func (t Timeframe) String() string {
	if t < 0 || int(t) >= len(timeframeLabels) {
		return "Unknown"
	}

	return timeframeLabels[t]
}

// fixed reports whether t resolves to dates without further input.
func (t Timeframe) fixed() bool {
	return t != TimeframeAll && t != TimeframeCustom
}

// financialYearStart is 1 April of the Indian financial year containing now.
func financialYearStart(now time.Time) time.Time {
	year := now.Year()
	if now.Month() < time.April {
		year--
	}

	return time.Date(year, time.April, 1, 0, 0, 0, 0, now.Location())
}

// rangeFor resolves tf to whole days relative to now. Weeks start on Monday,
// financial years on 1 April.
func rangeFor(tf Timeframe, now time.Time) (time.Time, time.Time) {
	var start, end time.Time

	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	switch tf {
	case TimeframeThisWeek:
		start, end = now.AddDate(0, 0, -weekday+1), now
	case TimeframeLastWeek:
		end = now.AddDate(0, 0, -weekday)
		start = end.AddDate(0, 0, -6)
	case TimeframeThisMonth:
		start, end = monthStart, now
	case TimeframeLastMonth:
		start = monthStart.AddDate(0, -1, 0)
		end = monthStart.AddDate(0, 0, -1)
	case TimeframeThisFinancialYear:
		start, end = financialYearStart(now), now
	case TimeframeLastFinancialYear:
		end = financialYearStart(now).AddDate(0, 0, -1)
		start = financialYearStart(end)
	}

	return wholeDays(start, end)
}

// wholeDays widens [start, end] to midnight on start and the last second of end.
func wholeDays(start, end time.Time) (time.Time, time.Time) {
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, time.UTC)
}

// TimeframeSelectedMsg carries the chosen period. Start and End are zero when
// All is set.
type TimeframeSelectedMsg struct {
	Start time.Time
	End   time.Time
	All   bool
}

// Filter turns the selection into a ledger query.
func (m TimeframeSelectedMsg) Filter() transaction.ListFilter {
	if m.All {
		return transaction.ListFilter{}
	}

	return transaction.ListFilter{StartDate: &m.Start, EndDate: &m.End}
}

// Label describes the selection for result screens.
func (m TimeframeSelectedMsg) Label() string {
	if m.All {
		return "all time"
	}

	return fmt.Sprintf("%s to %s", m.Start.Format("02 Jan 2006"), m.End.Format("02 Jan 2006"))
}

type rangeInput struct {
	start string
	end   string
}

func parseDay(s string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, errors.New("use YYYY-MM-DD")
	}

	return d, nil
}

// selection validates the custom range once both dates parse.
func (in rangeInput) selection() (TimeframeSelectedMsg, error) {
	start, err := parseDay(in.start)
	if err != nil {
		return TimeframeSelectedMsg{}, fmt.Errorf("start date: %w", err)
	}

	end, err := parseDay(in.end)
	if err != nil {
		return TimeframeSelectedMsg{}, fmt.Errorf("end date: %w", err)
	}

	if end.Before(start) {
		return TimeframeSelectedMsg{}, errors.New("end date is before start date")
	}

	start, end = wholeDays(start, end)

	return TimeframeSelectedMsg{Start: start, End: end}, nil
}

func newRangeForm(in *rangeInput) *huh.Form {
	validDay := func(s string) error {
		_, err := parseDay(s)
		return err
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("From").
				Placeholder(time.DateOnly).
				CharLimit(10).
				Value(&in.start).
				Validate(validDay),
			huh.NewInput().
				Title("To").
				Placeholder(time.DateOnly).
				CharLimit(10).
				Value(&in.end).
				Validate(validDay),
		),
	).WithWidth(40).WithShowHelp(false)
}

// TimeframePicker lists the export periods with their resolved dates and
// asks for dates when Custom Range is chosen.
type TimeframePicker struct {
	cursor Timeframe
	first  Timeframe

	custom *rangeInput
	form   *huh.Form

	now func() time.Time
	err error
}

// NewTimeframePicker offers every period from first onwards.
func NewTimeframePicker(first Timeframe) TimeframePicker {
	return TimeframePicker{cursor: first, first: first, now: time.Now}
}

func (m TimeframePicker) Init() tea.Cmd {
	return nil
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	if m.form != nil {
		return m.updateCustom(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > m.first {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < TimeframeCustom {
			m.cursor++
		}
	case "enter":
		return m.choose()
	}

	return m, nil
}

func (m TimeframePicker) choose() (TimeframePicker, tea.Cmd) {
	switch m.cursor {
	case TimeframeCustom:
		m.custom = &rangeInput{}
		m.form = newRangeForm(m.custom)
		m.err = nil

		return m, m.form.Init()
	case TimeframeAll:
		return m, selected(TimeframeSelectedMsg{All: true})
	}

	start, end := rangeFor(m.cursor, m.now())

	return m, selected(TimeframeSelectedMsg{Start: start, End: end})
}

func selected(msg TimeframeSelectedMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m TimeframePicker) updateCustom(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.form, m.custom, m.err = nil, nil, nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	sel, err := m.custom.selection()
	if err != nil {
		m.err = err
		m.form = newRangeForm(m.custom)

		return m, m.form.Init()
	}

	m.form, m.err = nil, nil

	return m, selected(sel)
}

func (m TimeframePicker) View() string {
	var b strings.Builder

	if m.form != nil {
		b.WriteString(titleStyle.Render("Custom range") + "\n\n")
		b.WriteString(m.form.View())
		b.WriteString("\n" + faintStyle.Render("Enter: next | Esc: back to periods"))
	} else {
		b.WriteString(titleStyle.Render("Export which period?") + "\n\n")

		now := m.now()
		for tf := m.first; tf <= TimeframeCustom; tf++ {
			line := fmt.Sprintf("%-20s", tf)
			if tf.fixed() {
				start, end := rangeFor(tf, now)
				line += faintStyle.Render(fmt.Sprintf("%s to %s", start.Format("02 Jan"), end.Format("02 Jan 2006")))
			}

			if tf == m.cursor {
				b.WriteString("> " + activeStyle(line) + "\n")
				continue
			}

			b.WriteString("  " + line + "\n")
		}

		b.WriteString("\n" + faintStyle.Render("↑/↓: choose | Enter: select | Esc: back"))
	}

	if m.err != nil {
		b.WriteString("\n\n" + errorStyle.Render(m.err.Error()))
	}

	return b.String()
}

// IsSelecting reports whether the period list, not the custom form, has focus.
func (m TimeframePicker) IsSelecting() bool {
	return m.form == nil
}

// Reset returns the picker to its first period.
func (m *TimeframePicker) Reset() {
	m.cursor = m.first
	m.form, m.custom, m.err = nil, nil, nil
}
