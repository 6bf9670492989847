// Package comments maps the backend's heterogeneous comment/review payloads
// into one canonical CommentData shape and provides the pure client-side
// filters applied over an already-fetched list.
package comments

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

// AnonymousName is the fallback display name when no author field resolves.
const AnonymousName = "Anonim Kullanıcı"

type Author struct {
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Avatar     string `json:"avatar"`
	Rank       int    `json:"rank"`
	Role       string `json:"role"`
	IsExpert   bool   `json:"is_expert"`
	IsVerified bool   `json:"is_verified"`
	Score      int    `json:"score"`
}

// CommentData is the canonical comment shape. Replies nest one level deep
// in rendering; deeper trees are normalized but callers only walk one level.
type CommentData struct {
	ID     int64  `json:"id"`
	Author Author `json:"author"`

	Content string `json:"content"`
	Date    string `json:"date"`
	Rating  int    `json:"rating,omitempty"`

	// 0 = top-level.
	Parent int64 `json:"parent"`

	LikesCount int  `json:"likes_count"`
	IsLiked    bool `json:"is_liked"`

	Replies []CommentData `json:"replies,omitempty"`

	IsAnonymous  bool   `json:"is_anonymous"`
	GoalTag      string `json:"goal_tag,omitempty"`
	ProgramType  string `json:"program_type,omitempty"`
	ProcessWeeks int    `json:"process_weeks,omitempty"`
	SuccessStory string `json:"success_story,omitempty"`
}

type rawAuthor struct {
	Name       string          `json:"name"`
	Username   string          `json:"username"`
	Slug       string          `json:"slug"`
	Avatar     string          `json:"avatar"`
	AvatarURL  string          `json:"avatar_url"`
	Rank       json.RawMessage `json:"rank"`
	Level      json.RawMessage `json:"level"`
	Role       string          `json:"role"`
	IsExpert   bool            `json:"is_expert"`
	IsVerified bool            `json:"is_verified"`
	Score      int             `json:"score"`
}

// rawComment accepts every shape the backend has shipped: fields nested
// under an author object, flat snake_case fields, or both at once.
type rawComment struct {
	ID     int64      `json:"id"`
	Author *rawAuthor `json:"author"`

	AuthorName   string          `json:"author_name"`
	AuthorSlug   string          `json:"author_slug"`
	AuthorAvatar string          `json:"author_avatar"`
	Rank         json.RawMessage `json:"rank"`
	Level        json.RawMessage `json:"level"`

	Content json.RawMessage `json:"content"`
	Date    string          `json:"date"`
	Rating  int             `json:"rating"`
	Parent  int64           `json:"parent"`

	LikesCount *int `json:"likes_count"`
	Likes      *int `json:"likes"`
	IsLiked    bool `json:"is_liked"`

	Replies []json.RawMessage `json:"replies"`

	IsAnonymous  bool   `json:"is_anonymous"`
	GoalTag      string `json:"goal_tag"`
	ProgramType  string `json:"program_type"`
	ProcessWeeks int    `json:"process_weeks"`
	SuccessStory string `json:"success_story"`
}

// Normalize maps one raw payload into the canonical shape. It is a
// fixpoint: feeding a marshaled CommentData back through yields an equal
// value.
func Normalize(raw json.RawMessage) (CommentData, error) {
	var rc rawComment
	if err := json.Unmarshal(raw, &rc); err != nil {
		return CommentData{}, fmt.Errorf("decode comment: %w", err)
	}

	out := CommentData{
		ID:           rc.ID,
		Content:      decodeContent(rc.Content),
		Date:         rc.Date,
		Rating:       rc.Rating,
		Parent:       rc.Parent,
		IsLiked:      rc.IsLiked,
		IsAnonymous:  rc.IsAnonymous,
		GoalTag:      rc.GoalTag,
		ProgramType:  rc.ProgramType,
		ProcessWeeks: rc.ProcessWeeks,
		SuccessStory: rc.SuccessStory,
	}

	switch {
	case rc.LikesCount != nil:
		out.LikesCount = *rc.LikesCount
	case rc.Likes != nil:
		out.LikesCount = *rc.Likes
	}

	a := Author{}
	if rc.Author != nil {
		a.Name = firstNonEmpty(rc.Author.Name, rc.Author.Username, rc.AuthorName)
		a.Slug = firstNonEmpty(rc.Author.Slug, rc.AuthorSlug)
		a.Avatar = firstNonEmpty(rc.Author.Avatar, rc.Author.AvatarURL, rc.AuthorAvatar)
		a.Rank = resolveRank(rc.Author.Rank, rc.Author.Level)
		a.Role = rc.Author.Role
		a.IsExpert = rc.Author.IsExpert
		a.IsVerified = rc.Author.IsVerified
		a.Score = rc.Author.Score
	} else {
		a.Name = rc.AuthorName
		a.Slug = rc.AuthorSlug
		a.Avatar = rc.AuthorAvatar
		a.Rank = resolveRank(rc.Rank, rc.Level)
	}

	if a.Name == "" {
		a.Name = AnonymousName
	}
	if a.Avatar == "" || isGravatar(a.Avatar) {
		a.Avatar = PlaceholderAvatar(a.Name)
	}
	out.Author = a

	for _, rawReply := range rc.Replies {
		reply, err := Normalize(rawReply)
		if err != nil {
			// skip malformed replies rather than dropping the whole comment
			continue
		}
		out.Replies = append(out.Replies, reply)
	}

	return out, nil
}

// NormalizeList maps a raw list, skipping entries that fail to decode.
func NormalizeList(raws []json.RawMessage) []CommentData {
	out := make([]CommentData, 0, len(raws))
	for _, r := range raws {
		c, err := Normalize(r)
		if err != nil {
			continue
		}
		out = append(out, c)
	}
	return out
}

// resolveRank supports the backend's schema migration: an explicit numeric
// rank, a {"level": n} object, or a bare legacy numeric level, default 1.
func resolveRank(rank, level json.RawMessage) int {
	if n, ok := decodeInt(rank); ok && n > 0 {
		return n
	}
	var obj struct {
		Level json.RawMessage `json:"level"`
	}
	if len(level) > 0 && json.Unmarshal(level, &obj) == nil {
		if n, ok := decodeInt(obj.Level); ok && n > 0 {
			return n
		}
	}
	if n, ok := decodeInt(level); ok && n > 0 {
		return n
	}
	return 1
}

// decodeInt accepts a JSON number or a numeric string.
func decodeInt(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		var m int
		if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d", &m); err == nil {
			return m, true
		}
	}
	return 0, false
}

// decodeContent accepts plain strings and the WP {"rendered": "..."} form.
func decodeContent(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Rendered string `json:"rendered"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Rendered
	}
	return ""
}

func isGravatar(u string) bool {
	return strings.Contains(u, "gravatar.com")
}

// PlaceholderAvatar returns a deterministic initials identicon seeded by
// the resolved author name.
func PlaceholderAvatar(name string) string {
	return "https://api.dicebear.com/7.x/initials/svg?seed=" + url.QueryEscape(name)
}

// DisplayName applies the anonymity transform at render time; the stored
// author name is never mutated.
func DisplayName(c CommentData) string {
	if c.IsAnonymous {
		return Anonymize(c.Author.Name)
	}
	return c.Author.Name
}

// Anonymize reduces a full name to dotted initials: "Ayşe Kaya" → "A.K.".
func Anonymize(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	for _, f := range fields {
		r := []rune(f)[0]
		b.WriteRune(unicode.ToUpper(r))
		b.WriteByte('.')
	}
	return b.String()
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
