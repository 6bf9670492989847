package rejimde

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/selim-create/rejimde-datahub/internal/models"
)

// expertPayload covers both profile variants. On unclaimed placeholder
// listings most fields are empty and is_claimed is false; tag fields may
// be JSON arrays or JSON-encoded strings and decode through FlexStrings
// exactly once here.
type expertPayload struct {
	ID        int64  `json:"id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	IsClaimed bool   `json:"is_claimed"`

	Title  string `json:"title"`
	City   string `json:"city"`
	About  string `json:"about"`
	Avatar string `json:"avatar"`

	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`

	ExpertiseTags models.FlexStrings `json:"expertise_tags"`
	GoalTags      models.FlexStrings `json:"goal_tags"`
	AgeGroups     models.FlexStrings `json:"age_groups"`

	UpdatedAt string `json:"updated_at"`
}

func (p expertPayload) row() models.ExpertProfile {
	return models.ExpertProfile{
		ID:              p.ID,
		Slug:            p.Slug,
		Name:            p.Name,
		IsClaimed:       p.IsClaimed,
		Title:           p.Title,
		City:            p.City,
		About:           p.About,
		AvatarURL:       p.Avatar,
		Rating:          p.Rating,
		ReviewCount:     p.ReviewCount,
		ExpertiseTags:   p.ExpertiseTags.JSONString(),
		GoalTags:        p.GoalTags.JSONString(),
		AgeGroups:       p.AgeGroups.JSONString(),
		UpdatedAtRemote: parseTS(p.UpdatedAt),
	}
}

// FetchExpertProfile fetches one professional's public profile by slug.
func (c *Client) FetchExpertProfile(ctx context.Context, slug string) (*models.ExpertProfile, error) {
	if slug == "" {
		return nil, fmt.Errorf("expert slug is required")
	}

	path := routePrefix + "/professionals/" + url.PathEscape(slug)
	res, err := c.do(ctx, "GET", path, nil, nil)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, res.Err()
	}

	var p expertPayload
	if err := json.Unmarshal(res.Data, &p); err != nil {
		return nil, fmt.Errorf("decode expert profile: %w", err)
	}
	if p.Slug == "" {
		p.Slug = slug
	}
	row := p.row()
	return &row, nil
}

// FetchExperts lists professionals, for directory views and cache warming.
func (c *Client) FetchExperts(ctx context.Context, page, perPage int) ([]models.ExpertProfile, error) {
	if perPage <= 0 {
		perPage = 50
	}
	if page <= 0 {
		page = 1
	}

	q := url.Values{}
	q.Set("page", fmt.Sprintf("%d", page))
	q.Set("per_page", fmt.Sprintf("%d", perPage))

	res, err := c.do(ctx, "GET", routePrefix+"/professionals", q, nil)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, fmt.Errorf("professionals API: %s", res.Message)
	}

	raws, err := decodeList(res.Data)
	if err != nil {
		return nil, fmt.Errorf("professionals list: %w", err)
	}

	out := make([]models.ExpertProfile, 0, len(raws))
	for _, r := range raws {
		var p expertPayload
		if err := json.Unmarshal(r, &p); err != nil {
			continue
		}
		if p.Slug == "" {
			continue
		}
		out = append(out, p.row())
	}
	return out, nil
}
