package rejimde

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/selim-create/rejimde-datahub/internal/models"
	"github.com/selim-create/rejimde-datahub/internal/progress"
)

// progressPayload tolerates completed_items arriving as a JSON array or a
// JSON-encoded string, the same drift the expert tag fields show.
type progressPayload struct {
	ContentType    string             `json:"content_type"`
	ContentID      int64              `json:"content_id"`
	CompletedItems models.FlexStrings `json:"completed_items"`
	IsStarted      bool               `json:"is_started"`
	IsCompleted    bool               `json:"is_completed"`
	RewardClaimed  bool               `json:"reward_claimed"`
	UpdatedAt      string             `json:"updated_at"`
}

func (p progressPayload) state() *progress.State {
	return &progress.State{
		CompletedItems: []string(p.CompletedItems),
		IsStarted:      p.IsStarted,
		IsCompleted:    p.IsCompleted,
		RewardClaimed:  p.RewardClaimed,
	}
}

func progressPath(contentType string, contentID int64) string {
	return fmt.Sprintf("%s/progress/%s/%d", routePrefix, contentType, contentID)
}

// GetProgress fetches the caller's progress record for one content item.
func (c *Client) GetProgress(ctx context.Context, contentType string, contentID int64) (*progress.State, error) {
	res, err := c.do(ctx, "GET", progressPath(contentType, contentID), nil, nil)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, res.Err()
	}

	var p progressPayload
	if err := json.Unmarshal(res.Data, &p); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	return p.state(), nil
}

// StartContent begins tracking a content item. The call is idempotent:
// an "already started" rejection is folded into success by re-fetching
// the current record.
func (c *Client) StartContent(ctx context.Context, contentType string, contentID int64) (*progress.State, error) {
	res, err := c.do(ctx, "POST", progressPath(contentType, contentID)+"/start", nil, nil)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		if isAlreadyStarted(res.Message) {
			return c.GetProgress(ctx, contentType, contentID)
		}
		return nil, res.Err()
	}

	var p progressPayload
	if err := json.Unmarshal(res.Data, &p); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	return p.state(), nil
}

func isAlreadyStarted(msg string) bool {
	m := strings.ToLower(msg)
	return strings.Contains(m, "already started") || strings.Contains(m, "zaten başlat")
}

// ToggleItem flips one checklist item. The idempotency key makes a retried
// or duplicated request a no-op server-side.
func (c *Client) ToggleItem(ctx context.Context, contentType string, contentID int64, itemID, idemKey string) (*progress.State, error) {
	if itemID == "" {
		return nil, fmt.Errorf("item id is required")
	}

	body := map[string]string{"item_id": itemID}
	if idemKey != "" {
		body["request_key"] = idemKey
	}

	res, err := c.do(ctx, "POST", progressPath(contentType, contentID)+"/toggle", nil, body)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, res.Err()
	}

	var p progressPayload
	if err := json.Unmarshal(res.Data, &p); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	return p.state(), nil
}

// ClaimReward claims the completion reward. reward_claimed only ever moves
// false → true.
func (c *Client) ClaimReward(ctx context.Context, contentType string, contentID int64) (*progress.State, error) {
	res, err := c.do(ctx, "POST", progressPath(contentType, contentID)+"/claim", nil, nil)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, res.Err()
	}

	var p progressPayload
	if err := json.Unmarshal(res.Data, &p); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	st := p.state()
	st.RewardClaimed = true
	return st, nil
}

// FetchUserProgress lists every progress record of the authenticated user,
// for warming the local cache.
func (c *Client) FetchUserProgress(ctx context.Context) ([]models.ProgressRecord, error) {
	res, err := c.do(ctx, "GET", routePrefix+"/progress", nil, nil)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, fmt.Errorf("progress API: %s", res.Message)
	}

	raws, err := decodeList(res.Data)
	if err != nil {
		return nil, fmt.Errorf("progress list: %w", err)
	}

	out := make([]models.ProgressRecord, 0, len(raws))
	for _, r := range raws {
		var p progressPayload
		if err := json.Unmarshal(r, &p); err != nil {
			continue
		}
		if p.ContentType == "" || p.ContentID == 0 {
			continue
		}
		out = append(out, models.ProgressRecord{
			ContentType:     p.ContentType,
			ContentID:       p.ContentID,
			CompletedItems:  p.CompletedItems.JSONString(),
			IsStarted:       p.IsStarted,
			IsCompleted:     p.IsCompleted,
			RewardClaimed:   p.RewardClaimed,
			UpdatedAtRemote: parseTS(p.UpdatedAt),
		})
	}
	return out, nil
}
