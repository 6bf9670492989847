package rejimde

import (
	"context"
	"fmt"

	"github.com/selim-create/rejimde-datahub/internal/comments"
	"github.com/selim-create/rejimde-datahub/internal/models"
	"github.com/selim-create/rejimde-datahub/internal/repos"
)

// RunReviewsSync refreshes the cached reviews of every configured expert.
// Reviews carry no remote updated-at, so each run is a full refresh for
// the slug; one failing expert does not abort the others.
func (r *Runner) RunReviewsSync(ctx context.Context) error {
	lg := r.Logger
	lg.Printf("▶️ Starting REVIEWS sync...")

	repo := repos.NewCommentsRepo(r.DB, lg)

	var failed int
	for _, slug := range r.Cfg.ExpertSlugs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		list, err := r.API.FetchExpertReviews(ctx, slug)
		if err != nil {
			lg.Printf("❌ reviews/%s: fetch failed: %v", slug, err)
			failed++
			continue
		}

		rows := flattenReviews(slug, list)
		if err := repo.UpsertBatch(rows, 500); err != nil {
			lg.Printf("❌ reviews/%s: upsert failed: %v", slug, err)
			failed++
			continue
		}

		lg.Printf("✅ reviews/%s: cached %d rows (%d top-level)", slug, len(rows), len(list))
	}

	if failed > 0 {
		return fmt.Errorf("reviews sync: %d of %d experts failed", failed, len(r.Cfg.ExpertSlugs))
	}
	return nil
}

// flattenReviews turns normalized comment trees into cache rows. Replies
// nest one level deep, matching how they render.
func flattenReviews(slug string, list []comments.CommentData) []models.Comment {
	out := make([]models.Comment, 0, len(list))
	for _, c := range list {
		out = append(out, commentRow(slug, c))
		for _, reply := range c.Replies {
			if reply.Parent == 0 {
				reply.Parent = c.ID
			}
			out = append(out, commentRow(slug, reply))
		}
	}
	return out
}

func commentRow(slug string, c comments.CommentData) models.Comment {
	return models.Comment{
		ID:           c.ID,
		ExpertSlug:   slug,
		AuthorName:   c.Author.Name,
		AuthorSlug:   c.Author.Slug,
		AuthorAvatar: c.Author.Avatar,
		AuthorRank:   c.Author.Rank,
		AuthorRole:   c.Author.Role,
		IsExpert:     c.Author.IsExpert,
		IsVerified:   c.Author.IsVerified,
		AuthorScore:  c.Author.Score,
		Content:      c.Content,
		Date:         c.Date,
		Rating:       c.Rating,
		Parent:       c.Parent,
		LikesCount:   c.LikesCount,
		IsAnonymous:  c.IsAnonymous,
		GoalTag:      c.GoalTag,
		ProgramType:  c.ProgramType,
		ProcessWeeks: c.ProcessWeeks,
		SuccessStory: c.SuccessStory,
	}
}

// RunExpertsSync refreshes the cached public profiles of the configured
// experts.
func (r *Runner) RunExpertsSync(ctx context.Context) error {
	lg := r.Logger
	lg.Printf("▶️ Starting EXPERTS sync...")

	repo := repos.NewExpertsRepo(r.DB, lg)

	var failed int
	for _, slug := range r.Cfg.ExpertSlugs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		profile, err := r.API.FetchExpertProfile(ctx, slug)
		if err != nil {
			lg.Printf("❌ experts/%s: fetch failed: %v", slug, err)
			failed++
			continue
		}

		if err := repo.Upsert(*profile); err != nil {
			lg.Printf("❌ experts/%s: upsert failed: %v", slug, err)
			failed++
			continue
		}

		claimed := "unclaimed"
		if profile.IsClaimed {
			claimed = "claimed"
		}
		lg.Printf("✅ experts/%s: cached (%s)", slug, claimed)
	}

	if failed > 0 {
		return fmt.Errorf("experts sync: %d of %d experts failed", failed, len(r.Cfg.ExpertSlugs))
	}
	return nil
}
