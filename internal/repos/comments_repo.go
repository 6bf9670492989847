package repos

import (
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/selim-create/rejimde-datahub/internal/models"
)

type CommentsRepo struct {
	db *gorm.DB
	lg *log.Logger
}

func NewCommentsRepo(db *gorm.DB, lg *log.Logger) *CommentsRepo {
	return &CommentsRepo{db: db, lg: lg}
}

// UpsertBatch refreshes cached comments wholesale; comment payloads carry
// no remote updated-at, so the latest fetch wins.
func (r *CommentsRepo) UpsertBatch(rows []models.Comment, batchSize int) error {
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
			UpdateAll: true,
		}).Create(&chunk)

		if res.Error != nil {
			return res.Error
		}
	}

	r.lg.Printf("Upserted %d comment rows", len(rows))
	return nil
}

// FetchForExpert returns cached reviews of one expert, top-level first.
func (r *CommentsRepo) FetchForExpert(slug string) ([]models.Comment, error) {
	var rows []models.Comment
	err := r.db.
		Where("expert_slug = ?", slug).
		Order("parent, date desc").
		Find(&rows).Error
	return rows, err
}
