package v1

import (
	"net/http"
	"time"

	"recruiter-pipeline-backend/internal/delivery/http/response"
	"recruiter-pipeline-backend/internal/domain"
	"recruiter-pipeline-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const dateOnly = "2006-01-02"

type AnalyticsHandler struct {
	analyticsUC domain.AnalyticsUsecase
}

// NewAnalyticsHandler registers the funnel and timeline routes
func NewAnalyticsHandler(r *gin.RouterGroup, analyticsUC domain.AnalyticsUsecase) {
	handler := &AnalyticsHandler{analyticsUC: analyticsUC}

	analytics := r.Group("/analytics")
	{
		analytics.GET("/dashboard", handler.Dashboard)
		analytics.GET("/timeline", handler.Timeline)
		analytics.GET("/roles", handler.RoleAnalytics)
		analytics.GET("/experience", handler.ExperienceDistribution)
	}
}

// Dashboard godoc
// @Summary      Pipeline dashboard
// @Description  Funnel counts, conversion rates, role and experience breakdowns, monthly trend and recent activity.
// @Description  refreshIntervalSeconds tells clients how often to poll.
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.DashboardPayload}
// @Failure      401  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /analytics/dashboard [get]
// @Security     BearerAuth
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	ownerID := c.GetString(string(domain.KeyOwnerID))

	payload, err := h.analyticsUC.Dashboard(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Dashboard retrieved", payload)
}

// Timeline godoc
// @Summary      Application timeline
// @Description  Applications created per period. Status counts reflect each record's current status.
// @Tags         analytics
// @Produce      json
// @Param        period     query     string  false  "daily | weekly | monthly (default monthly)"
// @Param        startDate  query     string  false  "Inclusive lower bound, YYYY-MM-DD or RFC 3339"
// @Param        endDate    query     string  false  "Inclusive upper bound; a bare date covers the whole day"
// @Success      200  {object}  response.Response{data=domain.TimelineResult}
// @Failure      400  {object}  response.Response
// @Router       /analytics/timeline [get]
// @Security     BearerAuth
func (h *AnalyticsHandler) Timeline(c *gin.Context) {
	ownerID := c.GetString(string(domain.KeyOwnerID))

	q := domain.TimelineQuery{Period: domain.Period(c.Query("period"))}

	var details []string
	if v := c.Query("startDate"); v != "" {
		t, ok := parseDate(v, false)
		if !ok {
			details = append(details, "Start date: must be YYYY-MM-DD or an RFC 3339 timestamp")
		}
		q.StartDate = t
	}
	if v := c.Query("endDate"); v != "" {
		t, ok := parseDate(v, true)
		if !ok {
			details = append(details, "End date: must be YYYY-MM-DD or an RFC 3339 timestamp")
		}
		q.EndDate = t
	}
	if len(details) > 0 {
		c.Error(apperror.Validation(details))
		return
	}

	result, err := h.analyticsUC.Timeline(c.Request.Context(), ownerID, q)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Timeline retrieved", result)
}

// parseDate accepts a bare date or a full timestamp. A bare end date is moved to the
// last instant of that UTC day so the bound stays inclusive.
func parseDate(v string, endOfDay bool) (*time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		t = t.UTC()
		return &t, true
	}
	t, err := time.Parse(dateOnly, v)
	if err != nil {
		return nil, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, true
}

// RoleAnalytics godoc
// @Summary      Per-role breakdown
// @Tags         analytics
// @Produce      json
// @Param        role  query     string  false  "Case-insensitive role substring"
// @Success      200   {object}  response.Response{data=[]domain.RoleAnalytics}
// @Router       /analytics/roles [get]
// @Security     BearerAuth
func (h *AnalyticsHandler) RoleAnalytics(c *gin.Context) {
	ownerID := c.GetString(string(domain.KeyOwnerID))

	roles, err := h.analyticsUC.RoleAnalytics(c.Request.Context(), ownerID, c.Query("role"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Role analytics retrieved", roles)
}

// ExperienceDistribution godoc
// @Summary      Experience histogram
// @Description  Non-empty experience buckets with the candidate names in each
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.ExperienceBucket}
// @Router       /analytics/experience [get]
// @Security     BearerAuth
func (h *AnalyticsHandler) ExperienceDistribution(c *gin.Context) {
	ownerID := c.GetString(string(domain.KeyOwnerID))

	buckets, err := h.analyticsUC.ExperienceDistribution(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Experience distribution retrieved", buckets)
}
