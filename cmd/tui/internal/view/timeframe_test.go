package view

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeFor(t *testing.T) {
	// Wednesday.
	now := time.Date(2026, 3, 18, 15, 30, 0, 0, time.UTC)

	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
	endOf := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 23, 59, 59, 0, time.UTC) }

	tests := []struct {
		name      string
		tf        Timeframe
		wantStart time.Time
		wantEnd   time.Time
	}{
		{name: "ThisWeek", tf: TimeframeThisWeek, wantStart: day(2026, 3, 16), wantEnd: endOf(2026, 3, 18)},
		{name: "LastWeek", tf: TimeframeLastWeek, wantStart: day(2026, 3, 9), wantEnd: endOf(2026, 3, 15)},
		{name: "ThisMonth", tf: TimeframeThisMonth, wantStart: day(2026, 3, 1), wantEnd: endOf(2026, 3, 18)},
		{name: "LastMonth", tf: TimeframeLastMonth, wantStart: day(2026, 2, 1), wantEnd: endOf(2026, 2, 28)},
		{name: "ThisFinancialYear", tf: TimeframeThisFinancialYear, wantStart: day(2025, 4, 1), wantEnd: endOf(2026, 3, 18)},
		{name: "LastFinancialYear", tf: TimeframeLastFinancialYear, wantStart: day(2024, 4, 1), wantEnd: endOf(2025, 3, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := rangeFor(tt.tf, now)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestRangeFor_SundayClosesTheWeek(t *testing.T) {
	sunday := time.Date(2026, 3, 22, 9, 0, 0, 0, time.UTC)

	start, _ := rangeFor(TimeframeThisWeek, sunday)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), start)
}

func TestTimeframeSelectedMsg_Filter(t *testing.T) {
	assert.Nil(t, TimeframeSelectedMsg{All: true}.Filter().StartDate)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)

	f := TimeframeSelectedMsg{Start: start, End: end}.Filter()
	assert.Equal(t, start, *f.StartDate)
	assert.Equal(t, end, *f.EndDate)
}

func TestRangeFor_FinancialYearTurnsInApril(t *testing.T) {
	april := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

	start, end := rangeFor(TimeframeThisFinancialYear, april)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 4, 1, 23, 59, 59, 0, time.UTC), end)

	start, end = rangeFor(TimeframeLastFinancialYear, april)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC), end)
}

func TestRangeInput_Selection(t *testing.T) {
	tests := []struct {
		name    string
		in      rangeInput
		wantErr string
	}{
		{name: "valid", in: rangeInput{start: "2026-01-01", end: "2026-01-31"}},
		{name: "single day", in: rangeInput{start: "2026-01-05", end: "2026-01-05"}},
		{name: "bad start", in: rangeInput{start: "01/01/2026", end: "2026-01-31"}, wantErr: "start date"},
		{name: "bad end", in: rangeInput{start: "2026-01-01", end: ""}, wantErr: "end date"},
		{name: "reversed", in: rangeInput{start: "2026-02-01", end: "2026-01-31"}, wantErr: "before start"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := tt.in.selection()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 0, sel.Start.Hour())
			assert.Equal(t, 23, sel.End.Hour())
		})
	}
}

func TestTimeframePicker(t *testing.T) {
	p := NewTimeframePicker(TimeframeThisMonth)
	p.now = func() time.Time { return time.Date(2026, 3, 18, 15, 30, 0, 0, time.UTC) }

	out := p.View()
	assert.Contains(t, out, "This Financial Year")
	assert.Contains(t, out, "01 Apr to 18 Mar 2026")
	assert.NotContains(t, out, "Last Week")

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, TimeframeThisMonth, p.cursor)

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, TimeframeThisFinancialYear, p.cursor)

	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(TimeframeSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), msg.Start)
	assert.Equal(t, "01 Apr 2025 to 18 Mar 2026", msg.Label())

	for range 10 {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	require.Equal(t, TimeframeCustom, p.cursor)

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, p.IsSelecting())

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, p.IsSelecting())

	p.Reset()
	assert.Equal(t, TimeframeThisMonth, p.cursor)
}

func TestTimeframeSelectedMsg_Label(t *testing.T) {
	assert.Equal(t, "all time", TimeframeSelectedMsg{All: true}.Label())
}
