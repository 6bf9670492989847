package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron"

	"github.com/selim-create/rejimde-datahub/internal/config"
	"github.com/selim-create/rejimde-datahub/internal/db"
	"github.com/selim-create/rejimde-datahub/internal/rejimde"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := cfg.Logger

	if err := os.MkdirAll(cfg.ExportDir, 0o755); err != nil {
		logger.Fatalf("create export dir %q: %v", cfg.ExportDir, err)
	}
	logger.Printf("📂 Using export dir: %s", cfg.ExportDir)

	gdb, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("DB connection failed: %v", err)
	}
	defer db.Close(gdb)

	if err := db.HealthCheck(gdb, 3*time.Second); err != nil {
		logger.Fatalf("DB health check failed: %v", err)
	}
	logger.Println("✅ Database connection healthy.")

	if cfg.AutoMigrate {
		logger.Println("Running schema migrations...")
		if err := db.RunMigrations(gdb, logger); err != nil {
			logger.Fatalf("Database migration failed: %v", err)
		}
		logger.Println("✅ Database migrated successfully.")
	}

	for _, id := range cfg.ProfessionalIDs {
		logger.Printf("Professional: %d\n", id)
	}

	logger.Println("✅ Startup complete. Ready to sync Rejimde data.")

	runner := rejimde.NewRunner(gdb, cfg, logger)

	runOnce := func() {
		// ---------- INCREMENTAL API SYNC (ENV-GUARDED) ----------

		if os.Getenv("RUN_APPOINTMENTS_SYNC") == "1" {
			logger.Println("🚀 Running incremental APPOINTMENTS sync…")

			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
			defer cancel()

			if err := runner.RunIncrementalAppointmentsSync(ctx); err != nil {
				logger.Fatalf("APPOINTMENTS incremental sync failed: %v", err)
			}

			logger.Println("✅ Incremental APPOINTMENTS sync complete.")
		}

		if os.Getenv("RUN_REVIEWS_SYNC") == "1" {
			logger.Println("🚀 Running REVIEWS sync…")

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()

			if err := runner.RunReviewsSync(ctx); err != nil {
				logger.Fatalf("REVIEWS sync failed: %v", err)
			}

			logger.Println("✅ REVIEWS sync complete.")
		}

		if os.Getenv("RUN_EXPERTS_SYNC") == "1" {
			logger.Println("🚀 Running EXPERTS sync…")

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()

			if err := runner.RunExpertsSync(ctx); err != nil {
				logger.Fatalf("EXPERTS sync failed: %v", err)
			}

			logger.Println("✅ EXPERTS sync complete.")
		}

		if os.Getenv("RUN_PROGRESS_SYNC") == "1" {
			logger.Println("🚀 Running PROGRESS sync…")

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			if err := runner.RunProgressSync(ctx); err != nil {
				logger.Fatalf("PROGRESS sync failed: %v", err)
			}

			logger.Println("✅ PROGRESS sync complete.")
		}
	}

	// One-shot by default; SYNC_CRON keeps the process alive and re-runs
	// the enabled phases on a schedule.
	spec := os.Getenv("SYNC_CRON")
	if spec == "" {
		runOnce()
		return
	}

	runOnce()

	c := cron.New()
	if err := c.AddFunc(spec, runOnce); err != nil {
		logger.Fatalf("invalid SYNC_CRON %q: %v", spec, err)
	}
	c.Start()
	logger.Printf("⏰ Scheduled sync with cron spec %q", spec)

	select {}
}
