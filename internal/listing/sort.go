package listing

import (
	"slices"
	"strings"

	"github.com/tylum123/gendercare-admin/internal/domain"
)

const (
	SortNewest = "newest"
	SortOldest = "oldest"
	SortName   = "name"
	SortTitle  = "title"
)

// SortUsers returns a sorted copy. An empty or unknown key keeps server order.
func SortUsers(users []domain.User, key string) []domain.User {
	out := slices.Clone(users)
	switch strings.ToLower(strings.TrimSpace(key)) {
	case SortOldest:
		slices.SortStableFunc(out, func(a, b domain.User) int { return a.CreatedAt.Compare(b.CreatedAt) })
	case SortName:
		slices.SortStableFunc(out, func(a, b domain.User) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	case SortNewest:
		slices.SortStableFunc(out, func(a, b domain.User) int { return b.CreatedAt.Compare(a.CreatedAt) })
	}
	return out
}

// SortPosts returns a sorted copy. An empty or unknown key keeps server order.
func SortPosts(posts []domain.Post, key string) []domain.Post {
	out := slices.Clone(posts)
	switch strings.ToLower(strings.TrimSpace(key)) {
	case SortOldest:
		slices.SortStableFunc(out, func(a, b domain.Post) int { return a.CreatedAt.Compare(b.CreatedAt) })
	case SortTitle, SortName:
		slices.SortStableFunc(out, func(a, b domain.Post) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		})
	case SortNewest:
		slices.SortStableFunc(out, func(a, b domain.Post) int { return b.CreatedAt.Compare(a.CreatedAt) })
	}
	return out
}
