package repos

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/selim-create/rejimde-datahub/internal/models"
)

type WatermarksRepo struct {
	db *gorm.DB
	lg *log.Logger
}

func NewWatermarksRepo(db *gorm.DB, lg *log.Logger) *WatermarksRepo {
	return &WatermarksRepo{db: db, lg: lg}
}

// GetLastUpdated returns the stored watermark, or nil when the entity and
// scope have never synced.
func (r *WatermarksRepo) GetLastUpdated(entity, scope string) (*time.Time, error) {
	var row models.SyncWatermark
	err := r.db.Where("entity = ? AND scope = ?", entity, scope).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	ts := row.LastUpdated
	return &ts, nil
}

// UpsertLastUpdated moves the watermark forward; it never regresses.
func (r *WatermarksRepo) UpsertLastUpdated(entity, scope string, ts time.Time) error {
	row := models.SyncWatermark{Entity: entity, Scope: scope, LastUpdated: ts.UTC()}

	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "entity"}, {Name: "scope"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"last_updated": gorm.Expr("GREATEST(sync_watermarks.last_updated, EXCLUDED.last_updated)"),
			"updated_at":   gorm.Expr("now()"),
		}),
	}).Create(&row).Error
}
