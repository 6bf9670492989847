package rejimde

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/selim-create/rejimde-datahub/internal/repos"
)

// RunIncrementalAppointmentsSync refreshes the appointment cache for every
// configured professional. The scanned window defaults to recent history
// plus the bookable future and is month-chunked; a watermark with a small
// overlap keeps normal runs incremental, and a backfill mode env switch
// re-fetches the whole window without touching watermarks.
func (r *Runner) RunIncrementalAppointmentsSync(ctx context.Context) error {
	lg := r.Logger

	lg.Printf("▶️ Starting APPOINTMENTS sync...")

	repo := repos.NewAppointmentsRepo(r.DB, lg)
	wr := repos.NewWatermarksRepo(r.DB, lg)

	const (
		pageSize = 100

		// small overlap to avoid missing boundary updates
		overlap = 2 * time.Minute
	)

	historyDays := getIntEnv("APPOINTMENTS_HISTORY_DAYS", 30)
	futureDays := getIntEnv("APPOINTMENTS_FUTURE_DAYS", 60)

	// Backfill mode: no updated_from filter and no watermark updates.
	ignoreWM := getBoolEnv("APPOINTMENTS_IGNORE_WATERMARK", false)

	now := time.Now().UTC()
	windowFrom := dateOnly(now.AddDate(0, 0, -historyDays))
	windowTo := dateOnly(now.AddDate(0, 0, futureDays))

	if fromOverride, err := getDateEnv("APPOINTMENTS_FROM_DATE"); err != nil {
		return err
	} else if fromOverride != nil {
		windowFrom = *fromOverride
	}
	if toOverride, err := getDateEnv("APPOINTMENTS_TO_DATE"); err != nil {
		return err
	} else if toOverride != nil {
		windowTo = *toOverride
	}

	if windowFrom.After(windowTo) {
		return fmt.Errorf("appointments: invalid window: start=%s is after end=%s",
			windowFrom.Format("2006-01-02"), windowTo.Format("2006-01-02"))
	}

	if ignoreWM {
		lg.Printf("🟥 APPOINTMENTS_IGNORE_WATERMARK=1 → BACKFILL MODE (no updated_from, no watermark updates)")
	}

	for _, proID := range r.Cfg.ProfessionalIDs {
		scope := strconv.FormatInt(proID, 10)

		var updatedFrom *time.Time
		if !ignoreWM {
			last, err := wr.GetLastUpdated("appointments", scope)
			if err != nil {
				return fmt.Errorf("get appointments watermark pro=%s: %w", scope, err)
			}
			if last != nil {
				uf := last.UTC().Add(-overlap)
				updatedFrom = &uf
				lg.Printf("ℹ️ appointments/%s: watermark=%s (updated_from=%s)",
					scope, last.UTC().Format(time.RFC3339), uf.Format(time.RFC3339))
			} else {
				lg.Printf("ℹ️ appointments/%s: no watermark yet → bootstrap window", scope)
			}
		}

		lg.Printf("📆 appointments/%s: scanning %s → %s",
			scope, windowFrom.Format("2006-01-02"), windowTo.Format("2006-01-02"))

		var (
			maxUpdated   *time.Time
			touchedCount int
			monthStart   = windowFrom
			safety       = 0
		)

		for !monthStart.After(windowTo) {
			safety++
			if safety > 120 {
				return fmt.Errorf("appointments/%s: safety stop tripped (too many month iterations)", scope)
			}

			monthEnd := endOfMonth(monthStart)
			if monthEnd.After(windowTo) {
				monthEnd = windowTo
			}

			page := 1
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}

				rows, err := r.API.FetchAppointmentsPage(ctx, proID, monthStart, monthEnd, updatedFrom, page, pageSize)
				if err != nil {
					return fmt.Errorf("fetch appointments pro=%s win=%s..%s page=%d: %w",
						scope, monthStart.Format("2006-01-02"), monthEnd.Format("2006-01-02"), page, err)
				}
				if len(rows) == 0 {
					break
				}

				if err := repo.UpsertBatch(rows, 500); err != nil {
					return fmt.Errorf("upsert appointments pro=%s page=%d: %w", scope, page, err)
				}

				touchedCount += len(rows)
				for i := range rows {
					if ts := rows[i].UpdatedAtRemote; ts != nil {
						if maxUpdated == nil || ts.After(*maxUpdated) {
							maxUpdated = ts
						}
					}
				}

				if len(rows) < pageSize {
					break
				}
				page++
			}

			monthStart = firstDayOfNextMonth(monthStart)
		}

		if touchedCount == 0 {
			lg.Printf("✅ appointments/%s: no rows returned (nothing to do)", scope)
			continue
		}

		if ignoreWM {
			lg.Printf("🧱 appointments/%s: BACKFILL MODE → watermark not updated", scope)
		} else if maxUpdated != nil {
			if err := wr.UpsertLastUpdated("appointments", scope, *maxUpdated); err != nil {
				return fmt.Errorf("update appointments watermark pro=%s: %w", scope, err)
			}
			lg.Printf("💾 appointments/%s: watermark → %s", scope, maxUpdated.UTC().Format(time.RFC3339))
		} else {
			lg.Printf("⚠️ appointments/%s: touched rows but no remote updated-at seen; watermark unchanged", scope)
		}

		lg.Printf("✅ appointments/%s: finished (%d rows touched)", scope, touchedCount)
	}

	return nil
}
