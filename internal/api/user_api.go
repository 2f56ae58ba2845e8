package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tylum123/gendercare-admin/internal/controller"
	"github.com/tylum123/gendercare-admin/internal/domain"
	"github.com/tylum123/gendercare-admin/internal/middleware"
	"github.com/tylum123/gendercare-admin/internal/response"
)

// UserAPI xử lý các HTTP endpoints quản lý User
type UserAPI struct {
	registry *controller.Registry
}

// NewUserAPI tạo mới UserAPI handler
func NewUserAPI(registry *controller.Registry) *UserAPI {
	return &UserAPI{registry: registry}
}

func (api *UserAPI) users(c *gin.Context) (*controller.UserController, bool) {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Missing session")
		return nil, false
	}
	return api.registry.For(s).Users, true
}

// ListUsers godoc
// @Summary      List users
// @Description  Returns one page of the user list. The first call loads the list from the remote API; later calls only re-filter the held snapshot.
// @Tags         Admin - User Management
// @Produce      json
// @Param        X-Session-ID  header  string  true   "Session id"
// @Param        search        query   string  false  "Search over name, email, phone"
// @Param        filter        query   string  false  "all, a role name, active or inactive"
// @Param        sort          query   string  false  "newest, oldest or name"
// @Param        page          query   int     false  "1-indexed page"
// @Param        page_size     query   int     false  "Items per page"
// @Success      200  {object}  object{code=string,message=string,data=object{state=string,items=[]object,total=int,total_pages=int,page=int,size=int}}
// @Failure      401  {object}  object{code=string,message=string}
// @Failure      403  {object}  object{code=string,message=string}
// @Router       /users [get]
func (api *UserAPI) ListUsers(c *gin.Context) {
	ctrl, ok := api.users(c)
	if !ok {
		return
	}

	// A failed initial load still renders: the view carries the error.
	// load errors are logged by the controller and returned in the view
	_ = ctrl.EnsureLoaded(c.Request.Context())

	v := ctrl.Apply(queryFromRequest(c, ctrl.Query()))
	response.SuccessList(c, listData(v, nil))
}

// RefreshUsers xử lý POST /api/v1/users/refresh
func (api *UserAPI) RefreshUsers(c *gin.Context) {
	ctrl, ok := api.users(c)
	if !ok {
		return
	}
	// a failed refresh keeps the previous snapshot; the view carries the error
	_ = ctrl.Load(c.Request.Context())
	response.SuccessList(c, listData(ctrl.View(), nil))
}

// CreateUser godoc
// @Summary      Create user
// @Description  Validates the form locally, then creates the user on the remote API and reloads the list.
// @Tags         Admin - User Management
// @Accept       json
// @Produce      json
// @Param        request body object{fields=map[string]string} true "Form fields: name, email, role, password, phoneNumber, address"
// @Success      201  {object}  object{code=string,message=string,data=object}
// @Failure      400  {object}  object{code=string,message=string,errors=map[string]string}
// @Failure      403  {object}  object{code=string,message=string}
// @Failure      503  {object}  object{code=string,message=string}
// @Router       /users [post]
func (api *UserAPI) CreateUser(c *gin.Context) {
	ctrl, ok := api.users(c)
	if !ok {
		return
	}

	var reqBody formRequest
	if err := c.ShouldBindJSON(&reqBody); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		return
	}

	user, errs, err := ctrl.Create(c.Request.Context(), domain.NewFormState(reqBody.Fields))
	if err != nil {
		middleware.AbortWithError(c, err, errs)
		return
	}

	response.Created(c, "User created successfully", user)
}

// UpdateUser xử lý PUT /api/v1/users/:id
func (api *UserAPI) UpdateUser(c *gin.Context) {
	ctrl, ok := api.users(c)
	if !ok {
		return
	}

	var reqBody formRequest
	if err := c.ShouldBindJSON(&reqBody); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		return
	}

	user, errs, err := ctrl.Update(c.Request.Context(), c.Param("id"), domain.NewFormState(reqBody.Fields))
	if err != nil {
		middleware.AbortWithError(c, err, errs)
		return
	}

	response.Success(c, "User updated successfully", user)
}

// ToggleUserStatus xử lý PATCH /api/v1/users/:id/status
func (api *UserAPI) ToggleUserStatus(c *gin.Context) {
	ctrl, ok := api.users(c)
	if !ok {
		return
	}

	active, err := ctrl.ToggleStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.AbortWithError(c, err, nil)
		return
	}

	response.Success(c, "User status updated", gin.H{
		"id":        c.Param("id"),
		"is_active": active,
	})
}

// DeleteUser xử lý DELETE /api/v1/users/:id
func (api *UserAPI) DeleteUser(c *gin.Context) {
	ctrl, ok := api.users(c)
	if !ok {
		return
	}

	if err := ctrl.Delete(c.Request.Context(), c.Param("id")); err != nil {
		middleware.AbortWithError(c, err, nil)
		return
	}

	response.Success(c, "User deleted successfully", nil)
}

// ValidateUser chạy validate form mà không gọi remote API
func (api *UserAPI) ValidateUser(c *gin.Context) {
	ctrl, ok := api.users(c)
	if !ok {
		return
	}

	var reqBody formRequest
	if err := c.ShouldBindJSON(&reqBody); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		return
	}

	errs := ctrl.Validate(domain.NewFormState(reqBody.Fields), reqBody.IsEdit)
	response.Success(c, "success", gin.H{
		"valid":  len(errs) == 0,
		"errors": errs,
	})
}
