package comments

// Filter is a pure predicate set over an already-normalized in-memory list.
// Applying it never triggers a refetch.
type Filter struct {
	// Minimum rating, inclusive. 0 disables the floor.
	MinRating int

	VerifiedOnly bool

	// Exact goal tag match when non-empty.
	GoalTag string

	// Only comments carrying a success story.
	HasStory bool
}

func (f Filter) Match(c CommentData) bool {
	if f.MinRating > 0 && c.Rating < f.MinRating {
		return false
	}
	if f.VerifiedOnly && !c.Author.IsVerified {
		return false
	}
	if f.GoalTag != "" && c.GoalTag != f.GoalTag {
		return false
	}
	if f.HasStory && c.SuccessStory == "" {
		return false
	}
	return true
}

// Apply filters top-level comments; replies ride along with their parent.
func (f Filter) Apply(list []CommentData) []CommentData {
	out := make([]CommentData, 0, len(list))
	for _, c := range list {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	return out
}
