// Package calendar holds the pure time-grid layout math and the date
// bucketing helpers behind the day, week and month appointment views.
package calendar

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/selim-create/rejimde-datahub/internal/models"
)

const (
	DefaultStartHour  = 8
	DefaultEndHour    = 20
	DefaultHourHeight = 64.0

	// Appointments with no end time and no duration span one hour.
	DefaultDurationMin = 60
)

// Grid is a fixed-height-per-hour day column. Zero values fall back to the
// defaults, so models can embed a Grid without configuring it.
type Grid struct {
	StartHour  int
	EndHour    int
	HourHeight float64
}

func DefaultGrid() Grid {
	return Grid{StartHour: DefaultStartHour, EndHour: DefaultEndHour, HourHeight: DefaultHourHeight}
}

func (g Grid) normalized() Grid {
	if g.HourHeight <= 0 {
		g.HourHeight = DefaultHourHeight
	}
	if g.EndHour <= g.StartHour {
		g.StartHour = DefaultStartHour
		g.EndHour = DefaultEndHour
	}
	return g
}

// Block is an absolutely positioned appointment inside a day column.
// Clipped reports that the appointment's time range was truncated to the
// visible grid hours.
type Block struct {
	Top     float64
	Height  float64
	Clipped bool
}

// ParseClock parses a strict "HH:mm" string into minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock string %q (want HH:mm)", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight back to "HH:mm".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// EndFromDuration derives an end time from a start time and a duration in
// minutes, defaulting the duration to one hour, capped at midnight.
func EndFromDuration(start string, durationMin int) (string, error) {
	m, err := ParseClock(start)
	if err != nil {
		return "", err
	}
	if durationMin <= 0 {
		durationMin = DefaultDurationMin
	}
	end := m + durationMin
	if end > 24*60-1 {
		end = 24*60 - 1
	}
	return FormatClock(end), nil
}

// Position maps a start/end pair onto the grid. It returns ok=false for
// malformed times, a non-positive span, or a range entirely outside the
// visible hours; partially visible ranges are clamped and flagged Clipped.
func (g Grid) Position(start, end string) (Block, bool) {
	g = g.normalized()

	startMin, err := ParseClock(start)
	if err != nil {
		return Block{}, false
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return Block{}, false
	}
	if endMin <= startMin {
		return Block{}, false
	}

	gridStart := g.StartHour * 60
	gridEnd := g.EndHour * 60

	if endMin <= gridStart || startMin >= gridEnd {
		return Block{}, false
	}

	clipped := false
	if startMin < gridStart {
		startMin = gridStart
		clipped = true
	}
	if endMin > gridEnd {
		endMin = gridEnd
		clipped = true
	}

	return Block{
		Top:     float64(startMin-gridStart) / 60.0 * g.HourHeight,
		Height:  float64(endMin-startMin) / 60.0 * g.HourHeight,
		Clipped: clipped,
	}, true
}

// Placed pairs a cached appointment with its resolved grid block.
type Placed struct {
	Appointment models.Appointment
	Block       Block
}

// DayLayout positions every appointment of one calendar day. Appointments
// with a missing end time get one derived from their duration; rows that
// cannot be placed (malformed times, fully out of grid) are skipped, the
// same way malformed sync rows are skipped rather than failing the batch.
func (g Grid) DayLayout(rows []models.Appointment) []Placed {
	out := make([]Placed, 0, len(rows))
	for _, a := range rows {
		end := a.EndTime
		if end == "" {
			derived, err := EndFromDuration(a.StartTime, a.DurationMin)
			if err != nil {
				continue
			}
			end = derived
		}
		block, ok := g.Position(a.StartTime, end)
		if !ok {
			continue
		}
		out = append(out, Placed{Appointment: a, Block: block})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Appointment.StartTime < out[j].Appointment.StartTime
	})
	return out
}

// DateKey renders a calendar day the way the backend does.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ByDate buckets appointments by exact string equality on their date field.
// Dates are local calendar-day strings; no timezone normalization happens.
func ByDate(rows []models.Appointment) map[string][]models.Appointment {
	out := make(map[string][]models.Appointment)
	for _, a := range rows {
		out[a.Date] = append(out[a.Date], a)
	}
	return out
}

// ForDate filters appointments to one calendar day, ordered by start time.
func ForDate(rows []models.Appointment, date string) []models.Appointment {
	var out []models.Appointment
	for _, a := range rows {
		if a.Date == date {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out
}

// DayStrip returns center ± radius days, oldest first, for the day-strip
// header. A non-positive radius falls back to the default of 3.
func DayStrip(center time.Time, radius int) []time.Time {
	if radius <= 0 {
		radius = 3
	}
	out := make([]time.Time, 0, 2*radius+1)
	for offset := -radius; offset <= radius; offset++ {
		out = append(out, dateOnly(center.AddDate(0, 0, offset)))
	}
	return out
}

// WeekRange returns the Monday and Sunday of t's ISO week.
func WeekRange(t time.Time) (time.Time, time.Time) {
	d := dateOnly(t)
	weekday := int(d.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	start := d.AddDate(0, 0, -(weekday - 1))
	return start, start.AddDate(0, 0, 6)
}

// MonthRange returns the first and last day of t's month.
func MonthRange(t time.Time) (time.Time, time.Time) {
	y, m, _ := t.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, -1)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
