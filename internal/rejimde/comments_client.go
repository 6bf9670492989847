package rejimde

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/selim-create/rejimde-datahub/internal/comments"
)

// FetchComments lists the comments of one post, normalized into the
// canonical CommentData shape at the boundary.
func (c *Client) FetchComments(ctx context.Context, postID int64) ([]comments.CommentData, error) {
	q := url.Values{}
	q.Set("post", strconv.FormatInt(postID, 10))

	res, err := c.do(ctx, "GET", routePrefix+"/comments", q, nil)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, fmt.Errorf("comments API: %s", res.Message)
	}

	raws, err := decodeList(res.Data)
	if err != nil {
		return nil, fmt.Errorf("comments list: %w", err)
	}
	return comments.NormalizeList(raws), nil
}

// FetchExpertReviews lists an expert's reviews. The payload mixes the
// review-specific fields (rating, goal tag, success story) into the same
// heterogeneous comment shapes, so the same normalizer applies.
func (c *Client) FetchExpertReviews(ctx context.Context, expertSlug string) ([]comments.CommentData, error) {
	if expertSlug == "" {
		return nil, fmt.Errorf("expert slug is required")
	}

	path := routePrefix + "/professionals/" + url.PathEscape(expertSlug) + "/reviews"
	res, err := c.do(ctx, "GET", path, nil, nil)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, fmt.Errorf("reviews API: %s", res.Message)
	}

	raws, err := decodeList(res.Data)
	if err != nil {
		return nil, fmt.Errorf("reviews list: %w", err)
	}
	return comments.NormalizeList(raws), nil
}

// LikeComment toggles the caller's like on a comment and returns the
// confirmed counters.
func (c *Client) LikeComment(ctx context.Context, commentID int64) (likesCount int, isLiked bool, err error) {
	if commentID <= 0 {
		return 0, false, fmt.Errorf("comment id is required")
	}

	path := fmt.Sprintf("%s/comments/%d/like", routePrefix, commentID)
	res, err := c.do(ctx, "POST", path, nil, nil)
	if err != nil {
		return 0, false, err
	}
	if !res.Success {
		return 0, false, res.Err()
	}

	var p struct {
		LikesCount int  `json:"likes_count"`
		IsLiked    bool `json:"is_liked"`
	}
	if err := json.Unmarshal(res.Data, &p); err != nil {
		return 0, false, fmt.Errorf("decode like response: %w", err)
	}
	return p.LikesCount, p.IsLiked, nil
}
