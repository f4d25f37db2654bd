package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mergington-activities-api/internal/dto"
	"github.com/noah-isme/mergington-activities-api/internal/middleware"
	"github.com/noah-isme/mergington-activities-api/internal/models"
	"github.com/noah-isme/mergington-activities-api/internal/service"
	appErrors "github.com/noah-isme/mergington-activities-api/pkg/errors"
	"github.com/noah-isme/mergington-activities-api/pkg/response"
)

type catalogService interface {
	List(ctx context.Context, filter models.ActivityFilter) ([]models.Activity, bool, error)
	Get(ctx context.Context, name string) (*models.Activity, error)
	Days(ctx context.Context) ([]models.Weekday, bool, error)
}

type registrationService interface {
	Signup(ctx context.Context, activity, email string, actor *models.Principal) (*models.Activity, error)
	Withdraw(ctx context.Context, activity, email string, actor *models.Principal) (*models.Activity, error)
}

type rosterExporter interface {
	Roster(ctx context.Context, activity string, format service.RosterFormat) (*service.RosterFile, error)
}

// ActivityHandler serves the catalog and roster endpoints.
type ActivityHandler struct {
	catalog      catalogService
	registration registrationService
	export       rosterExporter
}

// NewActivityHandler constructs an ActivityHandler.
func NewActivityHandler(catalog catalogService, registration registrationService, export rosterExporter) *ActivityHandler {
	return &ActivityHandler{catalog: catalog, registration: registration, export: export}
}

// List godoc
// @Summary List activities
// @Description List the catalog, optionally filtered by category, day, time of day and free text
// @Tags Activities
// @Produce json
// @Param category query string false "Sports, Arts, Academic, Technology or Community"
// @Param day query string false "Weekday, e.g. Monday"
// @Param timeOfDay query string false "any, morning, afternoon or evening"
// @Param q query string false "Case-insensitive search over name and description"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /activities [get]
func (h *ActivityHandler) List(c *gin.Context) {
	var query dto.ListActivitiesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	filter, err := parseFilter(query)
	if err != nil {
		response.Error(c, err)
		return
	}

	activities, cacheHit, err := h.catalog.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	middleware.SetMeta(c, "count", len(activities))
	response.JSON(c, http.StatusOK, dto.NewActivityViews(activities), middleware.ExtractMeta(c))
}

// Days godoc
// @Summary List meeting days
// @Description Weekdays on which at least one activity meets, Monday first
// @Tags Activities
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /activities/days [get]
func (h *ActivityHandler) Days(c *gin.Context) {
	days, cacheHit, err := h.catalog.Days(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, days, middleware.ExtractMeta(c))
}

// Get godoc
// @Summary Get activity
// @Tags Activities
// @Produce json
// @Param name path string true "Activity name"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /activities/{name} [get]
func (h *ActivityHandler) Get(c *gin.Context) {
	activity, err := h.catalog.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.NewActivityView(*activity))
}

// Signup godoc
// @Summary Sign a student up
// @Description Adds the student email to the roster. Teacher login required.
// @Tags Registration
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param name path string true "Activity name"
// @Param payload body dto.RosterChangeRequest false "Student email"
// @Param email query string false "Student email when no body is sent"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /activities/{name}/signup [post]
func (h *ActivityHandler) Signup(c *gin.Context) {
	email, err := rosterEmail(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	activity, err := h.registration.Signup(c.Request.Context(), c.Param("name"), email, middleware.Principal(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.RosterChangeResponse{
		Message:  fmt.Sprintf("Signed up %s for %s", normalizedEmail(email), activity.Name),
		Activity: dto.NewActivityView(*activity),
	})
}

// Withdraw godoc
// @Summary Withdraw a student
// @Description Removes the student email from the roster. Also served as /unregister. Teacher login required.
// @Tags Registration
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param name path string true "Activity name"
// @Param payload body dto.RosterChangeRequest false "Student email"
// @Param email query string false "Student email when no body is sent"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /activities/{name}/withdraw [post]
func (h *ActivityHandler) Withdraw(c *gin.Context) {
	email, err := rosterEmail(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	activity, err := h.registration.Withdraw(c.Request.Context(), c.Param("name"), email, middleware.Principal(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.RosterChangeResponse{
		Message:  fmt.Sprintf("Unregistered %s from %s", normalizedEmail(email), activity.Name),
		Activity: dto.NewActivityView(*activity),
	})
}

// Roster godoc
// @Summary Export roster
// @Description Downloads the roster as CSV or PDF. Teacher login required.
// @Tags Registration
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param name path string true "Activity name"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /activities/{name}/roster [get]
func (h *ActivityHandler) Roster(c *gin.Context) {
	format, err := service.ParseRosterFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.export.Roster(c.Request.Context(), c.Param("name"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, file.Filename, file.ContentType, file.Body)
}

func parseFilter(query dto.ListActivitiesQuery) (models.ActivityFilter, error) {
	category, err := service.ParseCategory(query.Category)
	if err != nil {
		return models.ActivityFilter{}, err
	}
	day, err := service.ParseWeekday(query.Day)
	if err != nil {
		return models.ActivityFilter{}, err
	}
	tod, err := service.ParseTimeOfDay(query.TimeOfDay)
	if err != nil {
		return models.ActivityFilter{}, err
	}
	return models.ActivityFilter{Category: category, Day: day, TimeOfDay: tod, Search: query.Search}, nil
}

// rosterEmail reads the email from the JSON body, falling back to the query string.
func rosterEmail(c *gin.Context) (string, error) {
	var req dto.RosterChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid roster payload")
	}
	if req.Email == "" {
		req.Email = c.Query("email")
	}
	return req.Email, nil
}

func normalizedEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
