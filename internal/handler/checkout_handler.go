package handler

import (
	"net/http"

	"tailorpos/internal/middleware"
	"tailorpos/internal/model"
	"tailorpos/internal/service"
	"tailorpos/pkg/response"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *CheckoutHandler) RegisterRoutes(router *gin.RouterGroup) {
	counterStaff := middleware.RequireRole(
		model.RoleAdmin, model.RoleCashier, model.RoleSeller, model.RoleSupervisor,
	)
	anyStaff := middleware.RequireRole(
		model.RoleAdmin, model.RoleCashier, model.RoleSeller, model.RoleTailor, model.RoleSupervisor,
	)

	checkout := router.Group("/checkout")
	{
		checkout.POST("/buy", counterStaff, h.BuyProduct)
		checkout.POST("/buy/self", anyStaff, h.BuyForMyself)
		checkout.POST("/return/:invoiceNo", counterStaff, h.ReturnProduct)
	}
}

// BuyProduct handles POST /checkout/buy for counter sales
// @Summary      Sell a product to a client
// @Description  Runs the counter sale: client by phone, optional tailoring, stock reservation, invoice, transaction and report in one database transaction
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.BuyProductRequest  true  "Purchase Payload"
// @Success      201      {object}  response.Response{data=service.PurchaseResponse}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /checkout/buy [post]
func (h *CheckoutHandler) BuyProduct(c *gin.Context) {
	sellerID, _, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	var req service.BuyProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	purchase, err := h.checkoutService.BuyProduct(c.Request.Context(), sellerID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, purchase))
}

// BuyForMyself handles POST /checkout/buy/self for staff wallet purchases
// @Summary      Staff self-purchase
// @Description  Sells to the authenticated staff member, paid from the staff wallet with the staff discount stacked on top of any product discount
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.BuyForMyselfRequest  true  "Purchase Payload"
// @Success      201      {object}  response.Response{data=service.PurchaseResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /checkout/buy/self [post]
func (h *CheckoutHandler) BuyForMyself(c *gin.Context) {
	buyerID, _, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	var req service.BuyForMyselfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	purchase, err := h.checkoutService.BuyForMyself(c.Request.Context(), buyerID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, purchase))
}

// ReturnProduct handles POST /checkout/return/:invoiceNo
// @Summary      Return a purchase
// @Description  Processes a return by invoice number inside the 14-day window. Tailored articles are not returnable. Admins may return past the window.
// @Tags         checkout
// @Produce      json
// @Security     BearerAuth
// @Param        invoiceNo  path      string  true  "Invoice number"
// @Success      200        {object}  response.Response{data=service.ReturnResponse}
// @Failure      400        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Failure      409        {object}  response.Response
// @Router       /checkout/return/{invoiceNo} [post]
func (h *CheckoutHandler) ReturnProduct(c *gin.Context) {
	handlerID, handlerRole, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	result, err := h.checkoutService.ReturnProduct(c.Request.Context(), handlerID, handlerRole, c.Param("invoiceNo"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}
