package controller

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tylum123/gendercare-admin/internal/domain"
	"github.com/tylum123/gendercare-admin/internal/listing"
	"github.com/tylum123/gendercare-admin/internal/validator"
	"github.com/tylum123/gendercare-admin/internal/workflow"
)

// PostGateway is the posts resource of the remote API.
type PostGateway interface {
	List(ctx context.Context) ([]domain.Post, error)
	GetByID(ctx context.Context, id string) (domain.Post, error)
	Create(ctx context.Context, payload domain.PostPayload) (domain.Post, error)
	Update(ctx context.Context, id string, payload domain.PostPayload) (domain.Post, error)
	Delete(ctx context.Context, id string) error
	workflow.StatusSetter
}

// PostController drives the blog moderation screen.
type PostController struct {
	*ListController[domain.Post]
	gateway PostGateway
	engine  *workflow.Engine
	actor   workflow.Actor
	logger  *zap.Logger
}

func NewPostController(gateway PostGateway, actor workflow.Actor, pageSize int, logger *zap.Logger) *PostController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostController{
		ListController: NewListController("posts", gateway.List, selectPosts, pageSize, logger),
		gateway:        gateway,
		engine:         workflow.NewEngine(gateway, logger),
		actor:          actor,
		logger:         logger,
	}
}

func selectPosts(posts []domain.Post, q domain.ListQuery) ([]domain.Post, error) {
	filtered, err := listing.FilterPosts(posts, q.SearchTerm, q.FilterKey)
	return listing.SortPosts(filtered, q.SortKey), err
}

func (c *PostController) Validate(form domain.FormState) map[string]string {
	return validator.ValidatePostForm(form)
}

// Create stores a new post as a Draft authored by the session user.
func (c *PostController) Create(ctx context.Context, form domain.FormState) (domain.Post, map[string]string, error) {
	if errs := c.Validate(form); len(errs) > 0 {
		return domain.Post{}, errs, domain.NewValidationError(errs)
	}

	payload := validator.PostPayloadFromForm(form)
	payload.AuthorID = c.actor.UserID
	payload.Status = domain.StatusDraft

	post, err := c.gateway.Create(ctx, payload)
	if err != nil {
		return domain.Post{}, validator.MergeServerErrors(nil, err), fmt.Errorf("create post: %w", err)
	}
	c.refetch(ctx)
	return post, nil, nil
}

// Update changes the content of post id. Only the author may edit, and only
// while the post is a Draft or was Rejected; the status is left unchanged.
func (c *PostController) Update(ctx context.Context, id string, form domain.FormState) (domain.Post, map[string]string, error) {
	current, err := c.lookup(ctx, id)
	if err != nil {
		return domain.Post{}, nil, err
	}
	if !workflow.CanEdit(c.actor, current) {
		return domain.Post{}, nil, &domain.PermissionError{Action: "edit this post", Role: c.actor.Role}
	}
	if errs := c.Validate(form); len(errs) > 0 {
		return domain.Post{}, errs, domain.NewValidationError(errs)
	}

	payload := validator.PostPayloadFromForm(form)
	payload.AuthorID = current.AuthorID
	payload.Status = current.Status

	post, err := c.gateway.Update(ctx, id, payload)
	if err != nil {
		return domain.Post{}, validator.MergeServerErrors(nil, err), fmt.Errorf("update post %s: %w", id, err)
	}
	c.refetch(ctx)
	return post, nil, nil
}

func (c *PostController) Delete(ctx context.Context, id string) error {
	current, err := c.lookup(ctx, id)
	if err != nil {
		return err
	}
	if !workflow.CanDelete(c.actor, current) {
		return &domain.PermissionError{Action: "delete this post", Role: c.actor.Role}
	}
	if err := c.gateway.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	c.refetch(ctx)
	return nil
}

// Transition moves post id to target through the workflow engine.
// A request for the current status succeeds without any remote call.
func (c *PostController) Transition(ctx context.Context, id string, target domain.PostStatus) (domain.Post, error) {
	current, err := c.lookup(ctx, id)
	if err != nil {
		return domain.Post{}, err
	}
	post, err := c.engine.Transition(ctx, c.actor, current, target)
	if err != nil {
		return post, err
	}
	if post.Status != current.Status {
		c.Patch(func(p domain.Post) bool { return p.ID == id }, func(p domain.Post) domain.Post {
			p.Status = post.Status
			return p
		})
		c.refetch(ctx)
	}
	return post, nil
}

// Available lists the statuses the session user may move post to.
func (c *PostController) Available(post domain.Post) []domain.PostStatus {
	return workflow.AvailableTransitions(c.actor, post)
}

// Stats returns per-status counts of the current snapshot.
func (c *PostController) Stats() map[string]int {
	return listing.CountPostsByStatus(c.Snapshot())
}

func (c *PostController) lookup(ctx context.Context, id string) (domain.Post, error) {
	if p, ok := c.Find(func(p domain.Post) bool { return p.ID == id }); ok {
		return p, nil
	}
	p, err := c.gateway.GetByID(ctx, id)
	if err != nil {
		return domain.Post{}, fmt.Errorf("get post %s: %w", id, err)
	}
	return p, nil
}

func (c *PostController) refetch(ctx context.Context) {
	if err := c.Load(ctx); err != nil {
		c.logger.Warn("refetch after mutation failed", zap.String("list", "posts"), zap.Error(err))
	}
}
