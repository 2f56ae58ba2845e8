package domain

import (
	"strconv"
	"strings"
	"time"
)

// PostStatus is the moderation state of a blog post.
type PostStatus int

const (
	StatusDraft    PostStatus = 0
	StatusPending  PostStatus = 1
	StatusRejected PostStatus = 2
	StatusApproved PostStatus = 3
)

func (s PostStatus) Valid() bool {
	return s >= StatusDraft && s <= StatusApproved
}

func (s PostStatus) String() string {
	switch s {
	case StatusDraft:
		return "draft"
	case StatusPending:
		return "pending"
	case StatusRejected:
		return "rejected"
	case StatusApproved:
		return "approved"
	default:
		return "unknown"
	}
}

// Label is the badge text shown next to a post.
func (s PostStatus) Label() string {
	switch s {
	case StatusDraft:
		return "Draft"
	case StatusPending:
		return "Pending review"
	case StatusRejected:
		return "Rejected"
	case StatusApproved:
		return "Published"
	default:
		return "Unknown"
	}
}

// ParsePostStatus accepts either the numeric code ("1") or the name ("pending").
func ParsePostStatus(s string) (PostStatus, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		st := PostStatus(n)
		return st, st.Valid()
	}
	switch s {
	case "draft":
		return StatusDraft, true
	case "pending", "review":
		return StatusPending, true
	case "rejected":
		return StatusRejected, true
	case "approved", "published":
		return StatusApproved, true
	}
	return 0, false
}

// Category identifies a blog category. Id 4 is intentionally unassigned.
type Category int

const (
	CategorySexualHealth    Category = 0
	CategoryReproductive    Category = 1
	CategoryMenstrualHealth Category = 2
	CategorySTIPrevention   Category = 3
	CategoryGenderWellbeing Category = 5
)

var categoryNames = map[Category]string{
	CategorySexualHealth:    "Sexual Health",
	CategoryReproductive:    "Reproductive Health",
	CategoryMenstrualHealth: "Menstrual Health",
	CategorySTIPrevention:   "STI Prevention",
	CategoryGenderWellbeing: "Gender & Wellbeing",
}

// Categories returns the known categories in id order.
func Categories() []Category {
	return []Category{
		CategorySexualHealth,
		CategoryReproductive,
		CategoryMenstrualHealth,
		CategorySTIPrevention,
		CategoryGenderWellbeing,
	}
}

func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

func (c Category) Name() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Uncategorized"
}

// Post represents a blog post as returned by the remote API
type Post struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	ImageURL   string     `json:"imageUrl"`
	Category   Category   `json:"category"`
	AuthorID   string     `json:"authorId"`
	AuthorName string     `json:"authorName,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	Status     PostStatus `json:"status"`
}

// OwnedBy reports whether userID authored the post.
func (p Post) OwnedBy(userID string) bool {
	return userID != "" && p.AuthorID == userID
}

// PostPayload holds the writable fields of a post
type PostPayload struct {
	Title    string     `json:"title"`
	Content  string     `json:"content"`
	ImageURL string     `json:"imageUrl,omitempty"`
	Category Category   `json:"category"`
	AuthorID string     `json:"authorId,omitempty"`
	Status   PostStatus `json:"status"`
}
