package workflow

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tylum123/gendercare-admin/internal/domain"
)

// Actor is the identity attempting an action, taken from the session.
type Actor struct {
	UserID string
	Role   domain.Role
}

// StatusSetter persists a status change on the remote API.
type StatusSetter interface {
	SetStatus(ctx context.Context, postID string, status domain.PostStatus) error
}

type rule struct {
	from, to domain.PostStatus
	// ownerOnly transitions are reserved for the author; otherwise a privileged role is required.
	ownerOnly bool
	action    string
}

// transitions lists every status change the moderation flow allows.
var transitions = []rule{
	{from: domain.StatusDraft, to: domain.StatusPending, ownerOnly: true, action: "submit a post for review"},
	{from: domain.StatusRejected, to: domain.StatusPending, ownerOnly: true, action: "resubmit a rejected post"},
	{from: domain.StatusPending, to: domain.StatusApproved, action: "approve a post"},
	{from: domain.StatusPending, to: domain.StatusRejected, action: "reject a post"},
	{from: domain.StatusPending, to: domain.StatusDraft, action: "return a post to draft"},
}

func lookup(from, to domain.PostStatus) (rule, bool) {
	for _, r := range transitions {
		if r.from == from && r.to == to {
			return r, true
		}
	}
	return rule{}, false
}

func (r rule) allows(actor Actor, post domain.Post) bool {
	if r.ownerOnly {
		return post.OwnedBy(actor.UserID)
	}
	return actor.Role.Privileged()
}

// Engine executes role-gated status transitions for blog posts.
type Engine struct {
	setter StatusSetter
	logger *zap.Logger
}

// NewEngine creates a workflow engine writing through setter
func NewEngine(setter StatusSetter, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{setter: setter, logger: logger}
}

// Authorize reports whether actor may move post to target without doing it.
// A request for the current status is always allowed.
func Authorize(actor Actor, post domain.Post, target domain.PostStatus) error {
	if !target.Valid() {
		return fmt.Errorf("%w: unknown status %d", domain.ErrInvalidTransition, target)
	}
	if post.Status == target {
		return nil
	}
	r, ok := lookup(post.Status, target)
	if !ok {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, post.Status, target)
	}
	if !r.allows(actor, post) {
		return &domain.PermissionError{Action: r.action, Role: actor.Role}
	}
	return nil
}

// Transition moves post to target. Re-requesting the current status is a
// no-op success and performs no I/O. On a refused or failed transition the
// returned post keeps its previous status.
func (e *Engine) Transition(ctx context.Context, actor Actor, post domain.Post, target domain.PostStatus) (domain.Post, error) {
	if err := Authorize(actor, post, target); err != nil {
		e.logger.Info("transition refused",
			zap.String("post_id", post.ID),
			zap.String("from", post.Status.String()),
			zap.String("to", target.String()),
			zap.String("role", string(actor.Role)),
			zap.Error(err))
		return post, err
	}
	if post.Status == target {
		return post, nil
	}

	if err := e.setter.SetStatus(ctx, post.ID, target); err != nil {
		e.logger.Warn("failed to persist status",
			zap.String("post_id", post.ID),
			zap.String("to", target.String()),
			zap.Error(err))
		return post, fmt.Errorf("set status of post %s: %w", post.ID, err)
	}

	e.logger.Info("post status changed",
		zap.String("post_id", post.ID),
		zap.String("from", post.Status.String()),
		zap.String("to", target.String()),
		zap.String("actor", actor.UserID))

	post.Status = target
	return post, nil
}

// CanEdit reports whether actor may change a post's content: only the author,
// and only while it is a draft or was rejected.
func CanEdit(actor Actor, post domain.Post) bool {
	if !post.OwnedBy(actor.UserID) {
		return false
	}
	return post.Status == domain.StatusDraft || post.Status == domain.StatusRejected
}

// CanDelete reports whether actor may delete a post. Privileged roles may
// delete any post; authors may delete their own unless it is approved.
func CanDelete(actor Actor, post domain.Post) bool {
	if actor.Role.Privileged() {
		return true
	}
	if !post.OwnedBy(actor.UserID) {
		return false
	}
	return post.Status != domain.StatusApproved
}

// AvailableTransitions lists the targets actor may move post to.
func AvailableTransitions(actor Actor, post domain.Post) []domain.PostStatus {
	var out []domain.PostStatus
	for _, r := range transitions {
		if r.from == post.Status && r.allows(actor, post) {
			out = append(out, r.to)
		}
	}
	return out
}
