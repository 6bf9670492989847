package rejimde

import "context"

// SendEvent fires a gamification event. The ledger behind it is
// backend-owned; failures here are never fatal to the triggering action.
func (c *Client) SendEvent(ctx context.Context, name string, meta map[string]interface{}) error {
	body := map[string]interface{}{"event": name}
	for k, v := range meta {
		body[k] = v
	}

	res, err := c.do(ctx, "POST", routePrefix+"/events", nil, body)
	if err != nil {
		return err
	}
	return res.Err()
}

// ContentCompleted dispatches the single completion event a progress
// tracker fires when a plan first reaches all-items-complete.
func (c *Client) ContentCompleted(ctx context.Context, contentType string, contentID int64) error {
	return c.SendEvent(ctx, "content_completed", map[string]interface{}{
		"content_type": contentType,
		"content_id":   contentID,
	})
}
