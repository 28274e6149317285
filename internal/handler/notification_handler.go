package handler

import (
	"net/http"

	"tailorpos/internal/middleware"
	"tailorpos/internal/model"
	"tailorpos/internal/service"
	"tailorpos/pkg/response"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	backOffice := middleware.RequireRole(model.RoleAdmin, model.RoleSupervisor)

	notifications := router.Group("/notifications", backOffice)
	{
		notifications.GET("", h.ListAll)
		notifications.GET("/stock", h.ListStock)
		notifications.GET("/tailor", h.ListTailor)
	}
}

// ListAll handles GET /notifications
// @Summary      List all notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.Notification}
// @Router       /notifications [get]
func (h *NotificationHandler) ListAll(c *gin.Context) {
	h.list(c, "")
}

// ListStock handles GET /notifications/stock
// @Summary      List low-stock notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.Notification}
// @Router       /notifications/stock [get]
func (h *NotificationHandler) ListStock(c *gin.Context) {
	h.list(c, model.NotificationStock)
}

// ListTailor handles GET /notifications/tailor
// @Summary      List tailoring notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.Notification}
// @Router       /notifications/tailor [get]
func (h *NotificationHandler) ListTailor(c *gin.Context) {
	h.list(c, model.NotificationTailor)
}

func (h *NotificationHandler) list(c *gin.Context, notificationType string) {
	notifications, err := h.notificationService.ListNotifications(c.Request.Context(), notificationType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, notifications))
}
