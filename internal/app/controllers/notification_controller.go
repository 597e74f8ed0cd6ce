package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/winshaurya/alumnet/internal/app/models/dto"
	"github.com/winshaurya/alumnet/internal/app/services"
	"github.com/winshaurya/alumnet/internal/middleware"
	"github.com/winshaurya/alumnet/internal/pkg/helpers"
	"github.com/winshaurya/alumnet/internal/pkg/websocket"
)

// NotificationController handles notification reads and the live push socket
type NotificationController struct {
	notificationService *services.NotificationService
	hub                 *websocket.Hub
	logger              zerolog.Logger
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService *services.NotificationService, hub *websocket.Hub, logger zerolog.Logger) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		hub:                 hub,
		logger:              logger,
	}
}

// List returns the caller's notifications
// @Summary List notifications
// @Description Lists the caller's notifications, newest first
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Notifications"
// @Router /notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)
	resp, err := c.notificationService.List(ctx.Request.Context(), middleware.GetUserID(ctx), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// MarkRead marks one notification as read
// @Summary Mark a notification read
// @Description Marks one of the caller's notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.APIResponse "Marked read"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Router /notifications/{id}/read [put]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	notificationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.notificationService.MarkRead(ctx.Request.Context(), middleware.GetUserID(ctx), notificationID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Notification marked read"))
}

// Connect upgrades to a websocket delivering notifications live
// @Summary Notification stream
// @Description Upgrades the connection to a websocket that pushes the caller's notifications as they are created
// @Tags notifications
// @Security BearerAuth
// @Success 101 "Switching protocols"
// @Router /notifications/ws [get]
func (c *NotificationController) Connect(ctx *gin.Context) {
	websocket.ServeWS(c.hub, ctx, middleware.GetUserID(ctx))
}
