package repos

import (
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/selim-create/rejimde-datahub/internal/models"
)

type AppointmentsRepo struct {
	db *gorm.DB
	lg *log.Logger
}

func NewAppointmentsRepo(db *gorm.DB, lg *log.Logger) *AppointmentsRepo {
	return &AppointmentsRepo{db: db, lg: lg}
}

func (r *AppointmentsRepo) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Appointment{}).Count(&n).Error
	return n, err
}

// appointmentCols are the columns refreshed on conflict, each guarded so a
// stale page fetched out of order cannot overwrite a newer row.
var appointmentCols = []string{
	"professional_id",
	"date", "start_time", "end_time", "duration_min",
	"status", "type",
	"client_name", "client_email", "client_phone", "client_avatar",
	"service", "location", "meeting_link", "notes",
	"is_recurring",
}

// guardedAssignments builds EXCLUDED-wins-only-when-newer CASE expressions
// for every refreshed column.
func guardedAssignments(table string, cols []string) map[string]interface{} {
	out := make(map[string]interface{}, len(cols)+2)
	for _, col := range cols {
		out[col] = gorm.Expr(fmt.Sprintf(
			`CASE WHEN EXCLUDED.updated_at_remote > %[1]s.updated_at_remote OR %[1]s.updated_at_remote IS NULL THEN EXCLUDED.%[2]s ELSE %[1]s.%[2]s END`,
			table, col,
		))
	}
	out["updated_at_remote"] = gorm.Expr(fmt.Sprintf(
		`GREATEST(%[1]s.updated_at_remote, EXCLUDED.updated_at_remote)`, table,
	))
	out["updated_at"] = gorm.Expr("now()")
	return out
}

func (r *AppointmentsRepo) UpsertBatch(rows []models.Appointment, batchSize int) error {
	if len(rows) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}

	for i := 0; i < len(rows); i += batchSize {
		end := i + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[i:end]

		res := r.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(guardedAssignments("appointments", appointmentCols)),
		}).Create(&chunk)

		if res.Error != nil {
			return res.Error
		}
	}

	r.lg.Printf("Upserted %d appointment rows", len(rows))
	return nil
}

// FetchWindow returns a professional's appointments inside an inclusive
// date window, ordered for day-column layout. Dates compare as strings,
// which is safe because the format is fixed YYYY-MM-DD.
func (r *AppointmentsRepo) FetchWindow(professionalID int64, fromDate, toDate string) ([]models.Appointment, error) {
	var rows []models.Appointment
	err := r.db.
		Where("professional_id = ? AND date >= ? AND date <= ?", professionalID, fromDate, toDate).
		Order("date, start_time").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetch appointments %s..%s: %w", fromDate, toDate, err)
	}
	return rows, nil
}
