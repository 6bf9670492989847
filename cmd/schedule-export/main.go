package main

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/selim-create/rejimde-datahub/internal/calendar"
	"github.com/selim-create/rejimde-datahub/internal/config"
	"github.com/selim-create/rejimde-datahub/internal/db"
	"github.com/selim-create/rejimde-datahub/internal/rejimde"
	"github.com/selim-create/rejimde-datahub/internal/repos"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := cfg.Logger

	proID, err := strconv.ParseInt(os.Getenv("EXPORT_PROFESSIONAL_ID"), 10, 64)
	if err != nil || proID <= 0 {
		logger.Fatalf("EXPORT_PROFESSIONAL_ID is required (numeric)")
	}

	anchor := time.Now()
	if raw := os.Getenv("EXPORT_WEEK_OF"); raw != "" {
		anchor, err = time.Parse("2006-01-02", raw)
		if err != nil {
			logger.Fatalf("invalid EXPORT_WEEK_OF %q: %v", raw, err)
		}
	}

	gdb, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("DB connection failed: %v", err)
	}
	defer db.Close(gdb)

	if err := db.HealthCheck(gdb, 3*time.Second); err != nil {
		logger.Fatalf("DB health check failed: %v", err)
	}
	logger.Println("✅ Database connection healthy.")

	exp := rejimde.ScheduleExporter{
		Repo:       repos.NewAppointmentsRepo(gdb, logger),
		Logger:     logger,
		Grid:       calendar.DefaultGrid(),
		ExportDir:  cfg.ExportDir,
		DryRun:     os.Getenv("EXPORT_DRY_RUN") == "1",
		MaxPreview: 25,
	}

	csvPath, xlsxPath, err := exp.ExportWeek(proID, anchor)
	if err != nil {
		logger.Fatalf("schedule export failed: %v", err)
	}
	if exp.DryRun {
		logger.Println("🧪 Dry-run complete, nothing written.")
		return
	}
	logger.Printf("✅ Schedule export complete: %s, %s", csvPath, xlsxPath)
}
