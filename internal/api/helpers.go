package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tylum123/gendercare-admin/internal/controller"
	"github.com/tylum123/gendercare-admin/internal/domain"
	"github.com/tylum123/gendercare-admin/internal/response"
)

// formRequest is the body of every create/update/validate call
type formRequest struct {
	Fields map[string]string `json:"fields" binding:"required"`
	IsEdit bool              `json:"is_edit"`
}

// queryFromRequest overlays the list parameters present in the URL on cur.
func queryFromRequest(c *gin.Context, cur domain.ListQuery) domain.ListQuery {
	q := cur
	changed := false
	if v, ok := c.GetQuery("search"); ok {
		q.SearchTerm = v
		changed = true
	}
	if v, ok := c.GetQuery("filter"); ok {
		q.FilterKey = v
		changed = true
	}
	if v, ok := c.GetQuery("sort"); ok {
		q.SortKey = v
	}
	if v, ok := c.GetQuery("page_size"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			q.PageSize = n
			changed = true
		}
	}
	if changed {
		q.Page = 1
	}
	if v, ok := c.GetQuery("page"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			q.Page = n
		}
	}
	return q
}

func listData[T any](v controller.View[T], items interface{}) response.ListData {
	if items == nil {
		items = v.Page.Items
	}
	return response.ListData{
		State:       string(v.State),
		Items:       items,
		Total:       v.Page.Total,
		TotalPages:  v.Page.TotalPages,
		Page:        v.Page.Page,
		Size:        v.Page.PageSize,
		StartIndex:  v.Page.StartIndex,
		EndIndex:    v.Page.EndIndex,
		HasMore:     v.Page.HasMore(),
		Query:       v.Query,
		Error:       v.Error,
		FilterError: v.FilterError,
	}
}
