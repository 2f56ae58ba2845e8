package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tylum123/gendercare-admin/internal/cycle"
	"github.com/tylum123/gendercare-admin/internal/middleware"
	"github.com/tylum123/gendercare-admin/internal/response"
)

const dateLayout = "2006-01-02"

// CycleAPI exposes the menstrual cycle calculator
type CycleAPI struct {
	now func() time.Time
}

func NewCycleAPI() *CycleAPI {
	return &CycleAPI{now: time.Now}
}

// Predict godoc
// @Summary      Predict the menstrual cycle
// @Description  Projects next period, ovulation and fertile window from the last period start. Dates use YYYY-MM-DD.
// @Tags         Cycle
// @Accept       json
// @Produce      json
// @Param        request body object{last_period_start=string,cycle_length=int,period_length=int,today=string} true "Cycle data"
// @Success      200  {object}  object{code=string,message=string,data=object}
// @Failure      400  {object}  object{code=string,message=string,errors=map[string]string}
// @Router       /cycle/predict [post]
func (api *CycleAPI) Predict(c *gin.Context) {
	var reqBody struct {
		LastPeriodStart string `json:"last_period_start" binding:"required"`
		CycleLength     int    `json:"cycle_length"`
		PeriodLength    int    `json:"period_length"`
		Today           string `json:"today"`
	}

	if err := c.ShouldBindJSON(&reqBody); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		return
	}

	start, err := time.Parse(dateLayout, reqBody.LastPeriodStart)
	if err != nil {
		response.FieldErrors(c, http.StatusBadRequest, response.CodeBadRequest, "invalid date",
			map[string]string{"lastPeriodStart": "Date must use YYYY-MM-DD"})
		return
	}

	today := api.now()
	if reqBody.Today != "" {
		if today, err = time.Parse(dateLayout, reqBody.Today); err != nil {
			response.FieldErrors(c, http.StatusBadRequest, response.CodeBadRequest, "invalid date",
				map[string]string{"today": "Date must use YYYY-MM-DD"})
			return
		}
	}

	// Typical values when omitted
	if reqBody.CycleLength == 0 {
		reqBody.CycleLength = 28
	}
	if reqBody.PeriodLength == 0 {
		reqBody.PeriodLength = 5
	}

	p, err := cycle.Predict(start, reqBody.CycleLength, reqBody.PeriodLength, today)
	if err != nil {
		middleware.AbortWithError(c, err, nil)
		return
	}

	response.Success(c, "success", gin.H{
		"day_of_cycle":           p.DayOfCycle,
		"phase":                  p.Phase,
		"current_cycle_start":    p.CurrentStart.Format(dateLayout),
		"next_period_start":      p.NextPeriodStart.Format(dateLayout),
		"next_period_end":        p.NextPeriodEnd.Format(dateLayout),
		"ovulation_date":         p.Ovulation.Format(dateLayout),
		"fertile_window_start":   p.FertileStart.Format(dateLayout),
		"fertile_window_end":     p.FertileEnd.Format(dateLayout),
		"days_until_next_period": p.DaysUntilPeriod,
		"fertile_today":          p.InFertileWindow(today),
	})
}
