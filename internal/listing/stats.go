package listing

import "github.com/tylum123/gendercare-admin/internal/domain"

// CountPostsByStatus tallies posts per status; every status key is present.
func CountPostsByStatus(posts []domain.Post) map[string]int {
	counts := map[string]int{
		domain.StatusDraft.String():    0,
		domain.StatusPending.String():  0,
		domain.StatusRejected.String(): 0,
		domain.StatusApproved.String(): 0,
	}
	for _, p := range posts {
		if p.Status.Valid() {
			counts[p.Status.String()]++
		}
	}
	return counts
}

// CountUsersByRole tallies users per role; every role key is present.
func CountUsersByRole(users []domain.User) map[string]int {
	counts := make(map[string]int, len(domain.Roles()))
	for _, r := range domain.Roles() {
		counts[string(r)] = 0
	}
	for _, u := range users {
		if u.Role.Valid() {
			counts[string(u.Role)]++
		}
	}
	return counts
}

// CountActiveUsers returns (active, inactive).
func CountActiveUsers(users []domain.User) (int, int) {
	active := 0
	for _, u := range users {
		if u.IsActive {
			active++
		}
	}
	return active, len(users) - active
}
