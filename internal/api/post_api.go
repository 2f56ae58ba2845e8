package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tylum123/gendercare-admin/internal/controller"
	"github.com/tylum123/gendercare-admin/internal/domain"
	"github.com/tylum123/gendercare-admin/internal/middleware"
	"github.com/tylum123/gendercare-admin/internal/response"
	"github.com/tylum123/gendercare-admin/internal/session"
	"github.com/tylum123/gendercare-admin/internal/workflow"
)

// PostAPI xử lý các HTTP endpoints của blog moderation
type PostAPI struct {
	registry *controller.Registry
}

// NewPostAPI tạo mới PostAPI handler
func NewPostAPI(registry *controller.Registry) *PostAPI {
	return &PostAPI{registry: registry}
}

// postItem is a post plus the badges and actions the session may use on it.
type postItem struct {
	domain.Post
	StatusLabel  string              `json:"statusLabel"`
	CategoryName string              `json:"categoryName"`
	CanEdit      bool                `json:"canEdit"`
	CanDelete    bool                `json:"canDelete"`
	Transitions  []domain.PostStatus `json:"transitions"`
}

func toPostItem(actor workflow.Actor, p domain.Post) postItem {
	transitions := workflow.AvailableTransitions(actor, p)
	if transitions == nil {
		transitions = []domain.PostStatus{}
	}
	return postItem{
		Post:         p,
		StatusLabel:  p.Status.Label(),
		CategoryName: p.Category.Name(),
		CanEdit:      workflow.CanEdit(actor, p),
		CanDelete:    workflow.CanDelete(actor, p),
		Transitions:  transitions,
	}
}

func (api *PostAPI) posts(c *gin.Context) (*controller.PostController, *session.Session, bool) {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Missing session")
		return nil, nil, false
	}
	return api.registry.For(s).Posts, s, true
}

func (api *PostAPI) render(c *gin.Context, s *session.Session, v controller.View[domain.Post]) {
	actor := s.Actor()
	items := make([]postItem, 0, len(v.Page.Items))
	for _, p := range v.Page.Items {
		items = append(items, toPostItem(actor, p))
	}
	response.SuccessList(c, listData(v, items))
}

// ListPosts godoc
// @Summary      List blog posts
// @Description  Returns one page of posts with the actions available to the session. Filter keys: all, draft, pending, review, rejected, approved, category:<id>.
// @Tags         Blog Moderation
// @Produce      json
// @Param        X-Session-ID  header  string  true   "Session id"
// @Param        search        query   string  false  "Search over title, content, category"
// @Param        filter        query   string  false  "Status or category filter"
// @Param        sort          query   string  false  "newest, oldest or title"
// @Param        page          query   int     false  "1-indexed page"
// @Param        page_size     query   int     false  "Items per page"
// @Success      200  {object}  object{code=string,message=string,data=object{state=string,items=[]object,total=int,total_pages=int}}
// @Failure      401  {object}  object{code=string,message=string}
// @Router       /posts [get]
func (api *PostAPI) ListPosts(c *gin.Context) {
	ctrl, s, ok := api.posts(c)
	if !ok {
		return
	}

	// load errors are logged by the controller and returned in the view
	_ = ctrl.EnsureLoaded(c.Request.Context())
	api.render(c, s, ctrl.Apply(queryFromRequest(c, ctrl.Query())))
}

// RefreshPosts xử lý POST /api/v1/posts/refresh
func (api *PostAPI) RefreshPosts(c *gin.Context) {
	ctrl, s, ok := api.posts(c)
	if !ok {
		return
	}
	// a failed refresh keeps the previous snapshot; the view carries the error
	_ = ctrl.Load(c.Request.Context())
	api.render(c, s, ctrl.View())
}

// CreatePost xử lý POST /api/v1/posts; bài mới luôn là Draft của user hiện tại
func (api *PostAPI) CreatePost(c *gin.Context) {
	ctrl, s, ok := api.posts(c)
	if !ok {
		return
	}

	var reqBody formRequest
	if err := c.ShouldBindJSON(&reqBody); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		return
	}

	post, errs, err := ctrl.Create(c.Request.Context(), domain.NewFormState(reqBody.Fields))
	if err != nil {
		middleware.AbortWithError(c, err, errs)
		return
	}

	response.Created(c, "Post created successfully", toPostItem(s.Actor(), post))
}

// UpdatePost xử lý PUT /api/v1/posts/:id
func (api *PostAPI) UpdatePost(c *gin.Context) {
	ctrl, s, ok := api.posts(c)
	if !ok {
		return
	}

	var reqBody formRequest
	if err := c.ShouldBindJSON(&reqBody); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		return
	}

	post, errs, err := ctrl.Update(c.Request.Context(), c.Param("id"), domain.NewFormState(reqBody.Fields))
	if err != nil {
		middleware.AbortWithError(c, err, errs)
		return
	}

	response.Success(c, "Post updated successfully", toPostItem(s.Actor(), post))
}

// DeletePost xử lý DELETE /api/v1/posts/:id
func (api *PostAPI) DeletePost(c *gin.Context) {
	ctrl, _, ok := api.posts(c)
	if !ok {
		return
	}

	if err := ctrl.Delete(c.Request.Context(), c.Param("id")); err != nil {
		middleware.AbortWithError(c, err, nil)
		return
	}

	response.Success(c, "Post deleted successfully", nil)
}

// ChangePostStatus godoc
// @Summary      Change post status
// @Description  Moves a post through the moderation flow. Authors submit drafts and resubmit rejected posts; managers and admins approve, reject or return pending posts to draft. Requesting the current status is a no-op.
// @Tags         Blog Moderation
// @Produce      json
// @Param        id      path   string  true  "Post id"
// @Param        status  query  string  true  "0-3 or draft, pending, rejected, approved"
// @Success      200  {object}  object{code=string,message=string,data=object}
// @Failure      400  {object}  object{code=string,message=string}
// @Failure      403  {object}  object{code=string,message=string}
// @Failure      404  {object}  object{code=string,message=string}
// @Router       /posts/{id}/status [put]
func (api *PostAPI) ChangePostStatus(c *gin.Context) {
	ctrl, s, ok := api.posts(c)
	if !ok {
		return
	}

	target, valid := domain.ParsePostStatus(c.Query("status"))
	if !valid {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "status must be one of 0, 1, 2, 3")
		return
	}

	post, err := ctrl.Transition(c.Request.Context(), c.Param("id"), target)
	if err != nil {
		middleware.AbortWithError(c, err, nil)
		return
	}

	response.Success(c, "Post status is now "+post.Status.Label(), toPostItem(s.Actor(), post))
}

// Categories trả về danh sách category cho form editor
func (api *PostAPI) Categories(c *gin.Context) {
	out := make([]gin.H, 0, len(domain.Categories()))
	for _, cat := range domain.Categories() {
		out = append(out, gin.H{"id": int(cat), "name": cat.Name()})
	}
	c.Header("Cache-Control", "max-age=3600")
	response.Success(c, "success", out)
}
