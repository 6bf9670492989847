package rejimde

import (
	"log"

	"gorm.io/gorm"

	"github.com/selim-create/rejimde-datahub/internal/config"
)

// Runner drives the read-through cache: it pulls appointments, reviews,
// expert profiles and progress records from the backend into the local
// database.
type Runner struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Logger *log.Logger
	API    *Client
}

func NewRunner(db *gorm.DB, cfg *config.Config, lg *log.Logger) *Runner {
	return &Runner{
		DB:     db,
		Cfg:    cfg,
		Logger: lg,
		API:    NewClient(cfg.APIBaseURL, TokenSourceFromConfig(cfg)),
	}
}
