package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/clubware/server/internal/application"
	"github.com/clubware/server/internal/domain/entity"
	"github.com/clubware/server/pkg/response"
	"github.com/clubware/server/pkg/validation"
)

// UserHandler exposes member lookups and the admin dashboard's
// permission management.
type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

func userView(u *entity.User) gin.H {
	return gin.H{
		"id":          u.ID,
		"email":       u.Email,
		"name":        u.Name,
		"image":       u.Image,
		"permissions": u.Permissions,
	}
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Exists POST /api/users/exists {email}
func (h *UserHandler) Exists(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	exists, err := h.Svc.Exists(c.Request.Context(), req.Email)
	if err != nil {
		h.Logger.WithError(err).Warn("user existence check failed")
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exists": exists}, "checked")
}

// GetByEmail POST /api/users/get {email}
func (h *UserHandler) GetByEmail(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).Warn("user lookup failed")
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": userView(u)}, "user found")
}

// GetAll GET /api/users
func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.Svc.GetAllUsers(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Warn("user listing failed")
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	views := make([]gin.H, 0, len(users))
	for _, u := range users {
		views = append(views, userView(u))
	}
	response.Success(c, http.StatusOK, gin.H{"users": views}, "users listed")
}

type updateUserRequest struct {
	Auth string `json:"auth" binding:"required"`
	User struct {
		Name        string              `json:"name"`
		Permissions []entity.Permission `json:"permissions" binding:"required"`
	} `json:"user" binding:"required"`
}

// Update PUT /api/users/:id {auth, user:{name?, permissions}}
func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateUser(c.Request.Context(), req.Auth, c.Param("id"), application.UpdateUserInput{
		Name:        req.User.Name,
		Permissions: req.User.Permissions,
	})
	if err != nil {
		h.writeServiceError(c, err, "user update failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": userView(u)}, "user updated")
}

type permissionRequest struct {
	Auth       string            `json:"auth" binding:"required"`
	Permission entity.Permission `json:"permission" binding:"required"`
}

// Grant POST /api/users/:id/permissions/grant {auth, permission}
func (h *UserHandler) Grant(c *gin.Context) {
	var req permissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.GrantPermission(c.Request.Context(), req.Auth, c.Param("id"), req.Permission)
	if err != nil {
		h.writeServiceError(c, err, "permission grant failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": userView(u)}, "permission granted")
}

// Revoke POST /api/users/:id/permissions/revoke {auth, permission}
func (h *UserHandler) Revoke(c *gin.Context) {
	var req permissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.RevokePermission(c.Request.Context(), req.Auth, c.Param("id"), req.Permission)
	if err != nil {
		h.writeServiceError(c, err, "permission revoke failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": userView(u)}, "permission revoked")
}

func (h *UserHandler) writeServiceError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, application.ErrUnauthorized):
		response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
	case errors.Is(err, application.ErrForbidden):
		response.Error[any](c, http.StatusForbidden, "user does not have permission", nil)
	case errors.Is(err, application.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
	default:
		h.Logger.WithError(err).Warn(logMsg)
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}
