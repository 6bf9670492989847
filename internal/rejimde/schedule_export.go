package rejimde

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/selim-create/rejimde-datahub/internal/calendar"
	"github.com/selim-create/rejimde-datahub/internal/repos"
)

// ScheduleExporter writes one professional's weekly calendar out of the
// cache, as CSV and XLSX. Rows are placed through the same grid the
// calendar view uses, so the files mirror what that view renders,
// including which rows it drops.
type ScheduleExporter struct {
	Repo   *repos.AppointmentsRepo
	Logger *log.Logger

	Grid      calendar.Grid
	ExportDir string

	// DryRun logs a bounded preview instead of writing files.
	DryRun     bool
	MaxPreview int
}

func (s ScheduleExporter) lg() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}

// ExportWeek exports the ISO week containing anchor. It returns the paths
// of the written files, or empty strings on a dry run.
func (s ScheduleExporter) ExportWeek(professionalID int64, anchor time.Time) (csvPath, xlsxPath string, err error) {
	if professionalID <= 0 {
		return "", "", fmt.Errorf("professional id is required")
	}
	if s.MaxPreview <= 0 {
		s.MaxPreview = 20
	}

	weekStart, weekEnd := calendar.WeekRange(anchor)
	from, to := calendar.DateKey(weekStart), calendar.DateKey(weekEnd)

	rows, err := s.Repo.FetchWindow(professionalID, from, to)
	if err != nil {
		return "", "", err
	}

	// Walk the week day by day through the grid; rows the grid cannot
	// place are skipped, the same as in the calendar view.
	var placed []calendar.Placed
	for day := weekStart; !day.After(weekEnd); day = day.AddDate(0, 0, 1) {
		dayRows := calendar.ForDate(rows, calendar.DateKey(day))
		placed = append(placed, s.Grid.DayLayout(dayRows)...)
	}

	s.lg().Printf("📆 export pro=%d week %s..%s: %d appointments, %d placed",
		professionalID, from, to, len(rows), len(placed))

	if s.DryRun {
		preview := placed
		if len(preview) > s.MaxPreview {
			preview = preview[:s.MaxPreview]
		}
		for _, p := range preview {
			a := p.Appointment
			s.lg().Printf("  · %s %s-%s %-10s %s", a.Date, a.StartTime, a.EndTime, a.Status, a.ClientName)
		}
		if len(placed) > len(preview) {
			s.lg().Printf("  … and %d more", len(placed)-len(preview))
		}
		return "", "", nil
	}

	if err := os.MkdirAll(s.ExportDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create export dir %q: %w", s.ExportDir, err)
	}

	base := fmt.Sprintf("schedule_%d_%s", professionalID, from)
	csvPath = filepath.Join(s.ExportDir, base+".csv")
	xlsxPath = filepath.Join(s.ExportDir, base+".xlsx")

	if err := writeScheduleCSV(csvPath, placed); err != nil {
		return "", "", err
	}
	if err := writeScheduleXLSX(xlsxPath, from, placed); err != nil {
		return "", "", err
	}

	s.lg().Printf("✅ export written: %s, %s", csvPath, xlsxPath)
	return csvPath, xlsxPath, nil
}

var exportHeader = []string{
	"date", "start_time", "end_time", "duration_min",
	"status", "type", "client", "service", "location",
	"grid_top", "grid_height", "clipped",
}

func exportRecord(p calendar.Placed) []string {
	a := p.Appointment
	return []string{
		a.Date,
		a.StartTime,
		a.EndTime,
		strconv.Itoa(a.DurationMin),
		a.Status,
		a.Type,
		a.ClientName,
		a.Service,
		a.Location,
		strconv.FormatFloat(p.Block.Top, 'f', 1, 64),
		strconv.FormatFloat(p.Block.Height, 'f', 1, 64),
		strconv.FormatBool(p.Block.Clipped),
	}
}

func writeScheduleCSV(path string, placed []calendar.Placed) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(exportHeader); err != nil {
		return err
	}
	for _, p := range placed {
		if err := w.Write(exportRecord(p)); err != nil {
			return err
		}
	}
	return w.Error()
}

func writeScheduleXLSX(path, weekOf string, placed []calendar.Placed) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	sheet := "Week " + weekOf
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	for col, name := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}

	for i, p := range placed {
		for col, val := range exportRecord(p) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}
