package repos

import (
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/selim-create/rejimde-datahub/internal/models"
)

type ProgressRepo struct {
	db *gorm.DB
	lg *log.Logger
}

func NewProgressRepo(db *gorm.DB, lg *log.Logger) *ProgressRepo {
	return &ProgressRepo{db: db, lg: lg}
}

func (r *ProgressRepo) UpsertBatch(rows []models.ProgressRecord, batchSize int) error {
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
			Columns: []clause.Column{
				{Name: "user_id"}, {Name: "content_type"}, {Name: "content_id"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"completed_items": gorm.Expr("EXCLUDED.completed_items"),
				"is_started":      gorm.Expr("EXCLUDED.is_started"),
				"is_completed":    gorm.Expr("EXCLUDED.is_completed"),
				// reward_claimed is monotonic: once claimed, stays claimed
				"reward_claimed":    gorm.Expr("progress_records.reward_claimed OR EXCLUDED.reward_claimed"),
				"updated_at_remote": gorm.Expr("EXCLUDED.updated_at_remote"),
				"updated_at":        gorm.Expr("now()"),
			}),
		}).Create(&chunk)

		if res.Error != nil {
			return res.Error
		}
	}

	r.lg.Printf("Upserted %d progress rows", len(rows))
	return nil
}
