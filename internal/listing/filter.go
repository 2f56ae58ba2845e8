package listing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tylum123/gendercare-admin/internal/domain"
)

// Filter keys understood besides "all" and the role/status names
const (
	FilterActive         = "active"
	FilterInactive       = "inactive"
	FilterReview         = "review"
	FilterCategoryPrefix = "category:"
)

func unknownFilter(key string) error {
	return fmt.Errorf("%w %q: %w", domain.ErrUnknownFilter, key, domain.NewValidationError(map[string]string{
		"filter": fmt.Sprintf("unknown filter %q, showing all", key),
	}))
}

func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return domain.FilterAll
	}
	return key
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

// FilterUsers narrows users by a case-insensitive search over name, email and
// phone, then by key: "all", a role name, "active" or "inactive".
// An unknown key falls back to "all" and is reported through the error.
func FilterUsers(users []domain.User, term, key string) ([]domain.User, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	key = normalizeKey(key)

	var pred func(domain.User) bool
	var err error
	switch key {
	case domain.FilterAll:
	case FilterActive:
		pred = func(u domain.User) bool { return u.IsActive }
	case FilterInactive:
		pred = func(u domain.User) bool { return !u.IsActive }
	default:
		if role, ok := domain.ParseRole(key); ok {
			pred = func(u domain.User) bool { return u.Role == role }
		} else {
			err = unknownFilter(key)
		}
	}

	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if term != "" && !containsFold(u.Name, term) && !containsFold(u.Email, term) && !containsFold(u.PhoneNumber, term) {
			continue
		}
		if pred != nil && !pred(u) {
			continue
		}
		out = append(out, u)
	}
	return out, err
}

// FilterPosts narrows posts by a case-insensitive search over title, content
// and category name, then by key: "all", a status name ("review" is an alias
// of pending, "published" of approved) or "category:<id>".
func FilterPosts(posts []domain.Post, term, key string) ([]domain.Post, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	key = normalizeKey(key)

	var pred func(domain.Post) bool
	var err error
	switch {
	case key == domain.FilterAll:
	case strings.HasPrefix(key, FilterCategoryPrefix):
		id, convErr := strconv.Atoi(strings.TrimPrefix(key, FilterCategoryPrefix))
		if cat := domain.Category(id); convErr == nil && cat.Valid() {
			pred = func(p domain.Post) bool { return p.Category == cat }
		} else {
			err = unknownFilter(key)
		}
	default:
		if _, numErr := strconv.Atoi(key); numErr == nil {
			// numeric codes are accepted by ParsePostStatus but are not filter keys
			err = unknownFilter(key)
		} else if status, ok := domain.ParsePostStatus(key); ok {
			pred = func(p domain.Post) bool { return p.Status == status }
		} else {
			err = unknownFilter(key)
		}
	}

	out := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		if term != "" && !containsFold(p.Title, term) && !containsFold(p.Content, term) && !containsFold(p.Category.Name(), term) {
			continue
		}
		if pred != nil && !pred(p) {
			continue
		}
		out = append(out, p)
	}
	return out, err
}
