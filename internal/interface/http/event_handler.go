package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/clubware/server/internal/application"
	"github.com/clubware/server/pkg/response"
	"github.com/clubware/server/pkg/validation"
)

// EventHandler exposes the event lifecycle.
type EventHandler struct {
	Svc    *application.EventService
	Logger *logrus.Logger
}

func NewEventHandler(svc *application.EventService, logger *logrus.Logger) *EventHandler {
	return &EventHandler{Svc: svc, Logger: logger}
}

type eventBody struct {
	Title       string `json:"title" binding:"required,eventtitle"`
	Description string `json:"description" binding:"required,eventdesc"`
	Location    string `json:"location" binding:"required,eventloc"`
	Date        string `json:"date" binding:"required,eventdate"`
	Price       int    `json:"price" binding:"eventprice"`
	FormURL     string `json:"formUrl" binding:"required,eventform"`
	Image       string `json:"image"`
	Visible     bool   `json:"visible"`
}

type mutateEventRequest struct {
	Auth  string    `json:"auth" binding:"required"`
	Event eventBody `json:"event" binding:"required"`
}

func (b eventBody) toInput() application.EventInput {
	return application.EventInput{
		Title:       b.Title,
		Description: b.Description,
		Location:    b.Location,
		Date:        b.Date,
		Price:       b.Price,
		FormURL:     b.FormURL,
		Image:       b.Image,
		Visible:     b.Visible,
	}
}

// Get GET /api/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	ev, err := h.Svc.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err, "event lookup failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"event": ev}, "event found")
}

// List GET /api/events
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.Svc.GetEvents(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err, "event listing failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"events": events}, "events listed")
}

// Create POST /api/events {auth, event}
func (h *EventHandler) Create(c *gin.Context) {
	var req mutateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	ev, err := h.Svc.CreateEvent(c.Request.Context(), req.Auth, req.Event.toInput())
	if err != nil {
		h.writeServiceError(c, err, "event create failed")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"event": ev}, "event created")
}

// Update PUT /api/events/:id {auth, event}
func (h *EventHandler) Update(c *gin.Context) {
	var req mutateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	ev, err := h.Svc.UpdateEvent(c.Request.Context(), c.Param("id"), req.Auth, req.Event.toInput())
	if err != nil {
		h.writeServiceError(c, err, "event update failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"event": ev}, "event updated")
}

type deleteEventRequest struct {
	Auth string `json:"auth" binding:"required"`
}

// Delete DELETE /api/events/:id {auth}
// Returns the deleted record.
func (h *EventHandler) Delete(c *gin.Context) {
	var req deleteEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	ev, err := h.Svc.DeleteEvent(c.Request.Context(), c.Param("id"), req.Auth)
	if err != nil {
		h.writeServiceError(c, err, "event delete failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"event": ev}, "event deleted")
}

// Search GET /api/events/search?q=...&size=...
func (h *EventHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchEvents(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Warn("event search failed")
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"events": hits}, "search results")
}

func (h *EventHandler) writeServiceError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, application.ErrUnauthorized):
		response.Error[any](c, http.StatusUnauthorized, "user not found", nil)
	case errors.Is(err, application.ErrForbidden):
		response.Error[any](c, http.StatusForbidden, "user does not have permission", nil)
	case errors.Is(err, application.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "event not found", nil)
	default:
		h.Logger.WithError(err).Warn(logMsg)
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}
