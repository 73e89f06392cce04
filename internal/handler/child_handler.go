package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Little-Sprouts/service-booking/internal/application"
	"github.com/Little-Sprouts/service-booking/pkg/auth"
	"github.com/Little-Sprouts/service-booking/pkg/middleware"
	"github.com/Little-Sprouts/service-booking/pkg/response"
)

// ChildHandler handles HTTP requests for saved child profiles.
type ChildHandler struct {
	service *application.ChildService
}

// NewChildHandler creates a new ChildHandler.
func NewChildHandler(service *application.ChildService) *ChildHandler {
	return &ChildHandler{service: service}
}

// RegisterRoutes registers all child-profile routes on the given router group.
func (h *ChildHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	children := r.Group("/api/v1/children")
	children.Use(middleware.AuthMiddleware(jwtManager), middleware.RequireRole(auth.RoleParent))
	{
		children.POST("", h.CreateChild)
		children.GET("", h.ListChildren)
		children.GET("/:id", h.GetChild)
		children.PATCH("/:id", h.UpdateChild)
		children.DELETE("/:id", h.ArchiveChild)
	}
}

// CreateChild handles POST /api/v1/children.
func (h *ChildHandler) CreateChild(c *gin.Context) {
	guardianID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.CreateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateChild(c.Request.Context(), guardianID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// ListChildren handles GET /api/v1/children.
func (h *ChildHandler) ListChildren(c *gin.Context) {
	guardianID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	result, err := h.service.GetMyChildren(c.Request.Context(), guardianID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetChild handles GET /api/v1/children/:id.
func (h *ChildHandler) GetChild(c *gin.Context) {
	guardianID, childID, ok := h.identify(c)
	if !ok {
		return
	}

	result, err := h.service.GetChild(c.Request.Context(), guardianID, childID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateChild handles PATCH /api/v1/children/:id.
func (h *ChildHandler) UpdateChild(c *gin.Context) {
	guardianID, childID, ok := h.identify(c)
	if !ok {
		return
	}

	var req application.UpdateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateChild(c.Request.Context(), guardianID, childID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ArchiveChild handles DELETE /api/v1/children/:id.
func (h *ChildHandler) ArchiveChild(c *gin.Context) {
	guardianID, childID, ok := h.identify(c)
	if !ok {
		return
	}

	if err := h.service.ArchiveChild(c.Request.Context(), guardianID, childID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *ChildHandler) identify(c *gin.Context) (guardianID, childID uuid.UUID, ok bool) {
	guardianID, found := middleware.GetUserID(c)
	if !found {
		response.Unauthorized(c, "unauthorized")
		return uuid.Nil, uuid.Nil, false
	}

	childID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid child ID")
		return uuid.Nil, uuid.Nil, false
	}
	return guardianID, childID, true
}
