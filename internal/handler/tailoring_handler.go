package handler

import (
	"net/http"

	"tailorpos/internal/middleware"
	"tailorpos/internal/model"
	"tailorpos/internal/service"
	"tailorpos/pkg/pagination"
	"tailorpos/pkg/response"

	"github.com/gin-gonic/gin"
)

type TailoringHandler struct {
	tailoringService service.TailoringService
}

func NewTailoringHandler(tailoringService service.TailoringService) *TailoringHandler {
	return &TailoringHandler{tailoringService: tailoringService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *TailoringHandler) RegisterRoutes(router *gin.RouterGroup) {
	workshop := middleware.RequireRole(model.RoleAdmin, model.RoleTailor)

	tailoring := router.Group("/tailoring", workshop)
	{
		tailoring.GET("", h.ListOrders)
		tailoring.GET("/:id", h.GetOrderByID)
		tailoring.PATCH("/:id/accept", h.AcceptOrder)
		tailoring.PATCH("/:id/complete", h.CompleteOrder)
	}
}

// ListOrders handles GET /tailoring
// @Summary      List tailoring orders
// @Tags         tailoring
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Status filter: requested, accepted or completed"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Items per page"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Router       /tailoring [get]
func (h *TailoringHandler) ListOrders(c *gin.Context) {
	params := pagination.Parse(c)

	orders, total, err := h.tailoringService.ListOrders(c.Request.Context(), c.Query("status"), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagedData{
		Items:      orders,
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: pagination.TotalPages(total, params.Limit),
	}))
}

// GetOrderByID handles GET /tailoring/:id
// @Summary      Get a tailoring order
// @Tags         tailoring
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Tailoring order ID"
// @Success      200  {object}  response.Response{data=model.Tailoring}
// @Failure      404  {object}  response.Response
// @Router       /tailoring/{id} [get]
func (h *TailoringHandler) GetOrderByID(c *gin.Context) {
	order, err := h.tailoringService.GetOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// AcceptOrder handles PATCH /tailoring/:id/accept
// @Summary      Accept a tailoring order
// @Description  Moves a requested order to accepted; any other starting status is rejected
// @Tags         tailoring
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Tailoring order ID"
// @Success      200  {object}  response.Response{data=model.Tailoring}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /tailoring/{id}/accept [patch]
func (h *TailoringHandler) AcceptOrder(c *gin.Context) {
	order, err := h.tailoringService.AcceptOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// CompleteOrder handles PATCH /tailoring/:id/complete
// @Summary      Complete a tailoring order
// @Description  Moves an accepted order to completed; any other starting status is rejected
// @Tags         tailoring
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Tailoring order ID"
// @Success      200  {object}  response.Response{data=model.Tailoring}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /tailoring/{id}/complete [patch]
func (h *TailoringHandler) CompleteOrder(c *gin.Context) {
	order, err := h.tailoringService.CompleteOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}
