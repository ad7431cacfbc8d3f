package v1

import (
	"net/http"
	"strconv"

	"recruiter-pipeline-backend/internal/delivery/http/response"
	"recruiter-pipeline-backend/internal/domain"
	"recruiter-pipeline-backend/pkg/apperror"
	"recruiter-pipeline-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes
func NewApplicationHandler(r *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	applications := r.Group("/applications")
	{
		applications.GET("", handler.ListApplications)
		applications.POST("", handler.CreateApplication)
		applications.GET("/export", handler.ExportApplications)
		applications.GET("/:id", handler.GetApplication)
		applications.PUT("/:id", handler.UpdateApplication)
		applications.PATCH("/:id/status", handler.UpdateStatus)
		applications.DELETE("/:id", handler.DeleteApplication)
	}
}

// UpdateStatusRequest is the request payload for a status transition
type UpdateStatusRequest struct {
	Status domain.Status `json:"status" example:"interview"`
}

// parseListQuery reads list filters from the query string. Numbers that fail to parse are
// reported the same way the validator reports out-of-range values.
func parseListQuery(c *gin.Context) (domain.ListApplicationsQuery, error) {
	q := domain.ListApplicationsQuery{
		Status:    c.Query("status"),
		Role:      c.Query("role"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}

	var details []string
	if v := c.Query("experienceMin"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			details = append(details, "Experience min: must be a number")
		} else {
			q.ExperienceMin = &f
		}
	}
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			details = append(details, "Page: must be a whole number")
		}
		q.Page = n
		if err == nil && n == 0 {
			details = append(details, "Page: must be at least 1")
		}
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			details = append(details, "Limit: must be a whole number")
		}
		q.Limit = n
		if err == nil && n == 0 {
			details = append(details, "Limit: must be at least 1")
		}
	}
	if len(details) > 0 {
		return q, apperror.Validation(details)
	}
	return q, nil
}

// ListApplications godoc
// @Summary      List applications
// @Description  One page of the caller's applications with filtering, search and sorting
// @Tags         applications
// @Produce      json
// @Param        status         query     string  false  "applied | interview | offer | rejected"
// @Param        role           query     string  false  "Case-insensitive role substring"
// @Param        experienceMin  query     number  false  "Minimum years of experience"
// @Param        search         query     string  false  "Matches candidate name, role or notes"
// @Param        page           query     int     false  "Page number (default 1)"
// @Param        limit          query     int     false  "Page size 1-100 (default 20)"
// @Param        sortBy         query     string  false  "createdAt | lastUpdated | candidateName | role | yearsOfExperience | status"
// @Param        sortOrder      query     string  false  "asc | desc"
// @Success      200  {object}  response.Response{data=domain.ApplicationList}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	ownerID := c.GetString(string(domain.KeyOwnerID))

	q, err := parseListQuery(c)
	if err != nil {
		c.Error(err)
		return
	}

	list, err := h.applicationUC.List(c.Request.Context(), ownerID, q)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", list)
}

// CreateApplication godoc
// @Summary      Create an application
// @Description  Adds a candidate to the caller's pipeline. Status defaults to applied.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        body  body      domain.CreateApplicationRequest  true  "Application data"
// @Success      201   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Router       /applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	ownerID := c.GetString(string(domain.KeyOwnerID))

	var req domain.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	app, err := h.applicationUC.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application created", app)
}

// GetApplication godoc
// @Summary      Get an application
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  response.Response{data=domain.Application}
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	ownerID := c.GetString(string(domain.KeyOwnerID))

	app, err := h.applicationUC.Get(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application retrieved", app)
}

// UpdateApplication godoc
// @Summary      Update an application
// @Description  Sparse update: only the provided fields change. lastUpdated moves only when status changes.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "Application ID"
// @Param        body  body      domain.ApplicationPatch  true  "Fields to change"
// @Success      200   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /applications/{id} [put]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateApplication(c *gin.Context) {
	ownerID := c.GetString(string(domain.KeyOwnerID))

	var patch domain.ApplicationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	app, err := h.applicationUC.Update(c.Request.Context(), ownerID, c.Param("id"), patch)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application updated", app)
}

// UpdateStatus godoc
// @Summary      Move an application to another stage
// @Description  Any stage may move to any other stage. Always refreshes lastUpdated.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Application ID"
// @Param        body  body      UpdateStatusRequest  true  "Target status"
// @Success      200   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /applications/{id}/status [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	ownerID := c.GetString(string(domain.KeyOwnerID))

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	app, err := h.applicationUC.SetStatus(c.Request.Context(), ownerID, c.Param("id"), req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Status updated", app)
}

// DeleteApplication godoc
// @Summary      Delete an application
// @Description  Permanent removal
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [delete]
// @Security     BearerAuth
func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	ownerID := c.GetString(string(domain.KeyOwnerID))

	if err := h.applicationUC.Delete(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application deleted", nil)
}

// ExportApplications godoc
// @Summary      Export applications
// @Description  Every application matching the list filters, as xlsx (default) or csv
// @Tags         applications
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,text/csv
// @Param        format  query     string  false  "xlsx | csv"
// @Param        status  query     string  false  "Status filter"
// @Param        role    query     string  false  "Role filter"
// @Param        search  query     string  false  "Search text"
// @Success      200
// @Failure      400     {object}  response.Response
// @Router       /applications/export [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ExportApplications(c *gin.Context) {
	ownerID := c.GetString(string(domain.KeyOwnerID))

	q, err := parseListQuery(c)
	if err != nil {
		c.Error(err)
		return
	}
	format := c.DefaultQuery("format", "xlsx")

	file, err := h.applicationUC.Export(c.Request.Context(), ownerID, q, format)
	if err != nil {
		c.Error(err)
		return
	}

	security.DefaultLogger().LogExport(c.Request.Context(), ownerID, c.ClientIP(), c.GetString(string(domain.KeyRequestID)), format)

	c.Header("Content-Disposition", "attachment; filename="+file.Filename)
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
