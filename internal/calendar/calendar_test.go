package calendar

import (
	"testing"
	"time"

	"github.com/selim-create/rejimde-datahub/internal/models"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "morning", input: "08:00", want: 480},
		{name: "midday", input: "12:30", want: 750},
		{name: "end of day", input: "23:59", want: 1439},
		{name: "midnight", input: "00:00", want: 0},
		{name: "padded input", input: " 09:15 ", want: 555},
		{name: "missing minutes", input: "10", wantErr: true},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "not numeric", input: "ab:cd", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseClock(%q) expected error, got %d", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClock(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseClock(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestPosition_HeightMatchesSpan(t *testing.T) {
	g := DefaultGrid()

	tests := []struct {
		name       string
		start, end string
		wantTop    float64
		wantHeight float64
	}{
		{name: "one hour at ten", start: "10:00", end: "11:00", wantTop: 128, wantHeight: 64},
		{name: "half hour", start: "08:00", end: "08:30", wantTop: 0, wantHeight: 32},
		{name: "ninety minutes", start: "14:15", end: "15:45", wantTop: 400, wantHeight: 96},
		{name: "full grid", start: "08:00", end: "20:00", wantTop: 0, wantHeight: 768},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, ok := g.Position(tt.start, tt.end)
			if !ok {
				t.Fatalf("Position(%q, %q) not ok", tt.start, tt.end)
			}
			if block.Top != tt.wantTop {
				t.Errorf("Top = %v, want %v", block.Top, tt.wantTop)
			}
			if block.Height != tt.wantHeight {
				t.Errorf("Height = %v, want %v", block.Height, tt.wantHeight)
			}
			if block.Clipped {
				t.Errorf("Clipped = true for fully visible range")
			}
		})
	}
}

func TestPosition_ClampsAndRejects(t *testing.T) {
	g := DefaultGrid()

	t.Run("starts before grid", func(t *testing.T) {
		block, ok := g.Position("07:00", "09:00")
		if !ok {
			t.Fatal("expected partially visible block")
		}
		if !block.Clipped {
			t.Error("expected Clipped")
		}
		if block.Top != 0 || block.Height != 64 {
			t.Errorf("got top=%v height=%v, want 0/64", block.Top, block.Height)
		}
	})

	t.Run("ends after grid", func(t *testing.T) {
		block, ok := g.Position("19:30", "21:00")
		if !ok {
			t.Fatal("expected partially visible block")
		}
		if !block.Clipped {
			t.Error("expected Clipped")
		}
		if block.Height != 32 {
			t.Errorf("Height = %v, want 32", block.Height)
		}
	})

	t.Run("entirely before grid", func(t *testing.T) {
		if _, ok := g.Position("06:00", "07:00"); ok {
			t.Error("expected not ok")
		}
	})

	t.Run("entirely after grid", func(t *testing.T) {
		if _, ok := g.Position("21:00", "22:00"); ok {
			t.Error("expected not ok")
		}
	})

	t.Run("end before start", func(t *testing.T) {
		if _, ok := g.Position("11:00", "10:00"); ok {
			t.Error("expected not ok")
		}
	})

	t.Run("zero span", func(t *testing.T) {
		if _, ok := g.Position("10:00", "10:00"); ok {
			t.Error("expected not ok")
		}
	})

	t.Run("malformed start", func(t *testing.T) {
		if _, ok := g.Position("10", "11:00"); ok {
			t.Error("expected not ok")
		}
	})
}

func TestEndFromDuration(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		duration int
		want     string
	}{
		{name: "explicit duration", start: "10:00", duration: 45, want: "10:45"},
		{name: "missing duration defaults to one hour", start: "10:00", duration: 0, want: "11:00"},
		{name: "negative duration defaults too", start: "09:30", duration: -5, want: "10:30"},
		{name: "capped at midnight", start: "23:30", duration: 90, want: "23:59"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EndFromDuration(tt.start, tt.duration)
			if err != nil {
				t.Fatalf("EndFromDuration() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("EndFromDuration(%q, %d) = %q, want %q", tt.start, tt.duration, got, tt.want)
			}
		})
	}

	if _, err := EndFromDuration("25:00", 60); err == nil {
		t.Error("expected error for malformed start")
	}
}

func TestDayLayout(t *testing.T) {
	g := DefaultGrid()
	rows := []models.Appointment{
		{ID: 1, StartTime: "10:00", EndTime: "", DurationMin: 60},
		{ID: 2, StartTime: "09:00", EndTime: "09:30"},
		{ID: 3, StartTime: "06:00", EndTime: "07:00"}, // out of grid
		{ID: 4, StartTime: "bad", EndTime: "10:00"},   // malformed
	}

	placed := g.DayLayout(rows)
	if len(placed) != 2 {
		t.Fatalf("DayLayout() returned %d blocks, want 2", len(placed))
	}
	if placed[0].Appointment.ID != 2 {
		t.Errorf("first block ID = %d, want 2 (sorted by start)", placed[0].Appointment.ID)
	}
	// create scenario: 10:00 start, 60 min duration on an 8:00 grid.
	if placed[1].Block.Top != 2*g.HourHeight {
		t.Errorf("derived-end block Top = %v, want %v", placed[1].Block.Top, 2*g.HourHeight)
	}
	if placed[1].Block.Height != g.HourHeight {
		t.Errorf("derived-end block Height = %v, want %v", placed[1].Block.Height, g.HourHeight)
	}
}

func TestByDate_ExactStringEquality(t *testing.T) {
	rows := []models.Appointment{
		{ID: 1, Date: "2026-08-31"},
		{ID: 2, Date: "2026-08-31"},
		{ID: 3, Date: "2026-09-01"},
	}

	buckets := ByDate(rows)
	if len(buckets["2026-08-31"]) != 2 {
		t.Errorf("bucket 2026-08-31 has %d rows, want 2", len(buckets["2026-08-31"]))
	}
	if len(buckets["2026-09-01"]) != 1 {
		t.Errorf("bucket 2026-09-01 has %d rows, want 1", len(buckets["2026-09-01"]))
	}

	day := ForDate(rows, "2026-08-31")
	if len(day) != 2 {
		t.Errorf("ForDate returned %d rows, want 2", len(day))
	}
}

func TestDayStrip(t *testing.T) {
	center := time.Date(2026, time.August, 31, 15, 30, 0, 0, time.UTC)
	strip := DayStrip(center, 0)

	if len(strip) != 7 {
		t.Fatalf("DayStrip returned %d days, want 7", len(strip))
	}
	if DateKey(strip[0]) != "2026-08-28" {
		t.Errorf("first day = %s, want 2026-08-28", DateKey(strip[0]))
	}
	if DateKey(strip[3]) != "2026-08-31" {
		t.Errorf("center day = %s, want 2026-08-31", DateKey(strip[3]))
	}
	if DateKey(strip[6]) != "2026-09-03" {
		t.Errorf("last day = %s, want 2026-09-03", DateKey(strip[6]))
	}

	if got := len(DayStrip(center, 7)); got != 15 {
		t.Errorf("radius 7 strip has %d days, want 15", got)
	}
}

func TestWeekRange(t *testing.T) {
	tests := []struct {
		name      string
		input     time.Time
		wantStart string
		wantEnd   string
	}{
		{
			name:      "monday maps to itself",
			input:     time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC), // a Monday
			wantStart: "2026-08-31",
			wantEnd:   "2026-09-06",
		},
		{
			name:      "sunday belongs to preceding monday",
			input:     time.Date(2026, time.September, 6, 23, 0, 0, 0, time.UTC),
			wantStart: "2026-08-31",
			wantEnd:   "2026-09-06",
		},
		{
			name:      "midweek",
			input:     time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC),
			wantStart: "2026-08-31",
			wantEnd:   "2026-09-06",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekRange(tt.input)
			if DateKey(start) != tt.wantStart {
				t.Errorf("start = %s, want %s", DateKey(start), tt.wantStart)
			}
			if DateKey(end) != tt.wantEnd {
				t.Errorf("end = %s, want %s", DateKey(end), tt.wantEnd)
			}
		})
	}
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(time.Date(2026, time.February, 14, 0, 0, 0, 0, time.UTC))
	if DateKey(start) != "2026-02-01" {
		t.Errorf("start = %s, want 2026-02-01", DateKey(start))
	}
	if DateKey(end) != "2026-02-28" {
		t.Errorf("end = %s, want 2026-02-28", DateKey(end))
	}
}
