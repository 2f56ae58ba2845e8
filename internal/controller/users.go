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

// UserGateway is the users resource of the remote API.
type UserGateway interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, payload domain.UserPayload) (domain.User, error)
	Update(ctx context.Context, id string, payload domain.UserPayload) (domain.User, error)
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, user domain.User, active bool) error
}

// UserController drives the user management screen.
// Every mutation requires a privileged role and is followed by a full refetch.
type UserController struct {
	*ListController[domain.User]
	gateway UserGateway
	actor   workflow.Actor
	logger  *zap.Logger
}

func NewUserController(gateway UserGateway, actor workflow.Actor, pageSize int, logger *zap.Logger) *UserController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserController{
		ListController: NewListController("users", gateway.List, selectUsers, pageSize, logger),
		gateway:        gateway,
		actor:          actor,
		logger:         logger,
	}
}

func selectUsers(users []domain.User, q domain.ListQuery) ([]domain.User, error) {
	filtered, err := listing.FilterUsers(users, q.SearchTerm, q.FilterKey)
	return listing.SortUsers(filtered, q.SortKey), err
}

// Validate runs the synchronous form rules; it never touches the network.
func (c *UserController) Validate(form domain.FormState, isEdit bool) map[string]string {
	return validator.ValidateUserForm(form, isEdit)
}

func (c *UserController) authorize(action string) error {
	if !c.actor.Role.Privileged() {
		return &domain.PermissionError{Action: action, Role: c.actor.Role}
	}
	return nil
}

// Create validates form and creates the user. The returned map holds field
// errors from local validation or from the server's rejection.
func (c *UserController) Create(ctx context.Context, form domain.FormState) (domain.User, map[string]string, error) {
	if err := c.authorize("create users"); err != nil {
		return domain.User{}, nil, err
	}
	if errs := c.Validate(form, false); len(errs) > 0 {
		return domain.User{}, errs, domain.NewValidationError(errs)
	}

	user, err := c.gateway.Create(ctx, validator.UserPayloadFromForm(form, false))
	if err != nil {
		return domain.User{}, validator.MergeServerErrors(nil, err), fmt.Errorf("create user: %w", err)
	}
	c.refetch(ctx)
	return user, nil, nil
}

// Update validates form in edit mode and updates user id.
func (c *UserController) Update(ctx context.Context, id string, form domain.FormState) (domain.User, map[string]string, error) {
	if err := c.authorize("update users"); err != nil {
		return domain.User{}, nil, err
	}
	if errs := c.Validate(form, true); len(errs) > 0 {
		return domain.User{}, errs, domain.NewValidationError(errs)
	}

	current, err := c.lookup(ctx, id)
	if err != nil {
		return domain.User{}, nil, err
	}

	user, err := c.gateway.Update(ctx, id, validator.UserEditPayload(current, form))
	if err != nil {
		return domain.User{}, validator.MergeServerErrors(nil, err), fmt.Errorf("update user %s: %w", id, err)
	}
	c.refetch(ctx)
	return user, nil, nil
}

func (c *UserController) Delete(ctx context.Context, id string) error {
	if err := c.authorize("delete users"); err != nil {
		return err
	}
	if id == c.actor.UserID {
		return &domain.PermissionError{Action: "delete their own account", Role: c.actor.Role}
	}
	if err := c.gateway.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	c.refetch(ctx)
	return nil
}

// ToggleStatus flips isActive of user id and returns the new value.
func (c *UserController) ToggleStatus(ctx context.Context, id string) (bool, error) {
	if err := c.authorize("change user status"); err != nil {
		return false, err
	}
	user, err := c.lookup(ctx, id)
	if err != nil {
		return false, err
	}
	if err := c.gateway.SetActive(ctx, user, !user.IsActive); err != nil {
		return user.IsActive, fmt.Errorf("set status of user %s: %w", id, err)
	}
	c.refetch(ctx)
	return !user.IsActive, nil
}

// Stats returns the badge counts of the current snapshot.
func (c *UserController) Stats() UserStats {
	users := c.Snapshot()
	active, inactive := listing.CountActiveUsers(users)
	return UserStats{
		Total:    len(users),
		Active:   active,
		Inactive: inactive,
		ByRole:   listing.CountUsersByRole(users),
	}
}

type UserStats struct {
	Total    int            `json:"total"`
	Active   int            `json:"active"`
	Inactive int            `json:"inactive"`
	ByRole   map[string]int `json:"byRole"`
}

func (c *UserController) lookup(ctx context.Context, id string) (domain.User, error) {
	if u, ok := c.Find(func(u domain.User) bool { return u.ID == id }); ok {
		return u, nil
	}
	u, err := c.gateway.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("get user %s: %w", id, err)
	}
	return u, nil
}

// refetch reloads after a successful mutation. Its failure leaves the list
// in Error but does not undo the mutation.
func (c *UserController) refetch(ctx context.Context) {
	if err := c.Load(ctx); err != nil {
		c.logger.Warn("refetch after mutation failed", zap.String("list", "users"), zap.Error(err))
	}
}
