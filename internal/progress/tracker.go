// Package progress drives the per-content completion lifecycle:
// NotStarted → Started → (item toggling) → AllItemsComplete → RewardClaimed.
// The backend owns scoring and streaks; this package owns the client-side
// guards around them.
package progress

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// MsgStartFirst is the blocking, non-fatal message surfaced when an item
// toggle is attempted before the plan has been started.
const MsgStartFirst = "Önce planı başlatmalısın."

var (
	// ErrNotStarted rejects a toggle while the content is not started.
	ErrNotStarted = errors.New("content not started")

	// ErrBusy rejects a toggle while another request for the same content
	// is still in flight.
	ErrBusy = errors.New("request already in flight")
)

// State mirrors the backend's progress record for one user × content item.
type State struct {
	CompletedItems []string `json:"completed_items"`
	IsStarted      bool     `json:"is_started"`
	IsCompleted    bool     `json:"is_completed"`
	RewardClaimed  bool     `json:"reward_claimed"`
}

// Completed reports whether itemID is toggled on.
func (s State) Completed(itemID string) bool {
	for _, id := range s.CompletedItems {
		if id == itemID {
			return true
		}
	}
	return false
}

// API is the slice of the backend client the tracker needs. Toggle carries
// an idempotency key so a retried request cannot double-apply.
type API interface {
	StartContent(ctx context.Context, contentType string, contentID int64) (*State, error)
	ToggleItem(ctx context.Context, contentType string, contentID int64, itemID, idemKey string) (*State, error)
	ClaimReward(ctx context.Context, contentType string, contentID int64) (*State, error)
}

// Events receives the single completion dispatch.
type Events interface {
	ContentCompleted(ctx context.Context, contentType string, contentID int64) error
}

// Tracker owns the client-side state for one content item. Toggles are not
// applied locally until the server confirms, so a failed request leaves
// prior state untouched. At most one request per content key is in flight
// at any time.
type Tracker struct {
	api    API
	events Events

	contentType string
	contentID   int64
	totalItems  int

	mu          sync.Mutex
	state       State
	busy        bool
	rewardFired bool
}

func NewTracker(api API, events Events, contentType string, contentID int64, totalItems int, initial *State) *Tracker {
	t := &Tracker{
		api:         api,
		events:      events,
		contentType: contentType,
		contentID:   contentID,
		totalItems:  totalItems,
	}
	if initial != nil {
		t.state = *initial
		t.rewardFired = initial.RewardClaimed
	}
	return t
}

// State returns a copy of the current confirmed state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.state
	s.CompletedItems = append([]string(nil), t.state.CompletedItems...)
	return s
}

// AllComplete is derived, never stored: every item toggled on.
func (t *Tracker) AllComplete() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.allCompleteLocked()
}

func (t *Tracker) allCompleteLocked() bool {
	return t.totalItems > 0 && len(t.state.CompletedItems) >= t.totalItems
}

// PercentComplete derives the completion ratio in [0, 100].
func (t *Tracker) PercentComplete() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.totalItems <= 0 {
		return 0
	}
	pct := len(t.state.CompletedItems) * 100 / t.totalItems
	if pct > 100 {
		pct = 100
	}
	return pct
}

// Start transitions NotStarted → Started. Repeated calls are idempotent;
// an "already started" answer from the backend is success, not an error.
func (t *Tracker) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.state.IsStarted {
		t.mu.Unlock()
		return nil
	}
	if t.busy {
		t.mu.Unlock()
		return ErrBusy
	}
	t.busy = true
	t.mu.Unlock()

	state, err := t.api.StartContent(ctx, t.contentType, t.contentID)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.busy = false
	if err != nil {
		return err
	}
	t.adoptLocked(state)
	t.state.IsStarted = true
	return nil
}

// Toggle flips one item against the server. It is only legal once the
// content is started; the confirmed server state replaces local state.
// When the toggle first reaches full completion and the reward is still
// unclaimed, exactly one completion dispatch fires: the guard flag is set
// before the claim call goes out, so a racing second toggle cannot
// double-claim.
func (t *Tracker) Toggle(ctx context.Context, itemID string) error {
	if itemID == "" {
		return errors.New("item id is required")
	}

	t.mu.Lock()
	if !t.state.IsStarted {
		t.mu.Unlock()
		return ErrNotStarted
	}
	if t.busy {
		t.mu.Unlock()
		return ErrBusy
	}
	t.busy = true
	t.mu.Unlock()

	state, err := t.api.ToggleItem(ctx, t.contentType, t.contentID, itemID, uuid.NewString())

	t.mu.Lock()
	t.busy = false
	if err != nil {
		t.mu.Unlock()
		return err
	}
	t.adoptLocked(state)

	fire := t.allCompleteLocked() && !t.state.RewardClaimed && !t.rewardFired
	if fire {
		t.rewardFired = true
	}
	t.mu.Unlock()

	if !fire {
		return nil
	}
	return t.claimReward(ctx)
}

func (t *Tracker) claimReward(ctx context.Context) error {
	if t.events != nil {
		// a failed completion event does not block the claim
		_ = t.events.ContentCompleted(ctx, t.contentType, t.contentID)
	}

	state, err := t.api.ClaimReward(ctx, t.contentType, t.contentID)
	if err != nil {
		// rewardFired stays set: claiming retries are backend-idempotent
		// and the client must never double-dispatch.
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.adoptLocked(state)
	// reward_claimed is monotonic client-side
	t.state.RewardClaimed = true
	return nil
}

func (t *Tracker) adoptLocked(s *State) {
	if s == nil {
		return
	}
	claimed := t.state.RewardClaimed || s.RewardClaimed
	t.state = *s
	t.state.RewardClaimed = claimed
}
