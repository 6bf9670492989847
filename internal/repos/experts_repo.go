package repos

import (
	"errors"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/selim-create/rejimde-datahub/internal/models"
)

type ExpertsRepo struct {
	db *gorm.DB
	lg *log.Logger
}

func NewExpertsRepo(db *gorm.DB, lg *log.Logger) *ExpertsRepo {
	return &ExpertsRepo{db: db, lg: lg}
}

func (r *ExpertsRepo) Upsert(row models.ExpertProfile) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		UpdateAll: true,
	}).Create(&row).Error
}

func (r *ExpertsRepo) FetchBySlug(slug string) (*models.ExpertProfile, error) {
	var row models.ExpertProfile
	err := r.db.Where("slug = ?", slug).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
