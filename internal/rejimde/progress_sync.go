package rejimde

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/selim-create/rejimde-datahub/internal/repos"
)

// RunProgressSync pulls every progress record of the authenticated user
// into the cache. The user is resolved from the configured token's
// claims; without a token there is nothing to sync.
func (r *Runner) RunProgressSync(ctx context.Context) error {
	lg := r.Logger
	lg.Printf("▶️ Starting PROGRESS sync...")

	if r.API.Tokens == nil {
		lg.Printf("⏭  PROGRESS sync skipped: no token configured (anonymous mode)")
		return nil
	}

	token, err := r.API.Tokens.Token()
	if err != nil || token == "" {
		return fmt.Errorf("progress sync: token unavailable: %v", err)
	}

	claims, err := InspectToken(token)
	if err != nil {
		return fmt.Errorf("progress sync: %w", err)
	}
	if claims.Expired(time.Now()) {
		return fmt.Errorf("progress sync: token expired at %s", claims.ExpiresAt.Format(time.RFC3339))
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return fmt.Errorf("progress sync: token subject %q is not a user id", claims.Subject)
	}

	rows, err := r.API.FetchUserProgress(ctx)
	if err != nil {
		return fmt.Errorf("fetch user progress: %w", err)
	}
	for i := range rows {
		rows[i].UserID = userID
	}

	repo := repos.NewProgressRepo(r.DB, lg)
	if err := repo.UpsertBatch(rows, 500); err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}

	lg.Printf("✅ progress: cached %d records for user %d", len(rows), userID)
	return nil
}
