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

type RetrievedHandler struct {
	retrievedService service.RetrievedService
}

func NewRetrievedHandler(retrievedService service.RetrievedService) *RetrievedHandler {
	return &RetrievedHandler{retrievedService: retrievedService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *RetrievedHandler) RegisterRoutes(router *gin.RouterGroup) {
	staff := middleware.RequireRole(
		model.RoleAdmin, model.RoleCashier, model.RoleSeller, model.RoleSupervisor,
	)

	returns := router.Group("/returns")
	{
		returns.GET("", staff, h.ListReturns)
		returns.GET("/invoice/:invoiceNo", staff, h.GetReturnByInvoiceNo)
		returns.GET("/client/:phone", staff, h.ListReturnsByClientPhone)
	}
}

// ListReturns handles GET /returns
// @Summary      List processed returns
// @Description  Lists the return ledger newest first with the joined invoice, product, staff and client records
// @Tags         returns
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Items per page"
// @Success      200    {object}  response.Response
// @Router       /returns [get]
func (h *RetrievedHandler) ListReturns(c *gin.Context) {
	params := pagination.Parse(c)

	records, total, err := h.retrievedService.ListReturns(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagedData{
		Items:      records,
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: pagination.TotalPages(total, params.Limit),
	}))
}

// GetReturnByInvoiceNo handles GET /returns/invoice/:invoiceNo
// @Summary      Get a return by invoice number
// @Tags         returns
// @Produce      json
// @Security     BearerAuth
// @Param        invoiceNo  path      string  true  "Invoice number"
// @Success      200        {object}  response.Response{data=model.Retrieved}
// @Failure      404        {object}  response.Response
// @Router       /returns/invoice/{invoiceNo} [get]
func (h *RetrievedHandler) GetReturnByInvoiceNo(c *gin.Context) {
	record, err := h.retrievedService.GetReturnByInvoiceNo(c.Request.Context(), c.Param("invoiceNo"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, record))
}

// ListReturnsByClientPhone handles GET /returns/client/:phone
// @Summary      List returns for a client
// @Tags         returns
// @Produce      json
// @Security     BearerAuth
// @Param        phone  path      string  true  "Client phone number"
// @Success      200    {object}  response.Response{data=[]model.Retrieved}
// @Failure      404    {object}  response.Response
// @Router       /returns/client/{phone} [get]
func (h *RetrievedHandler) ListReturnsByClientPhone(c *gin.Context) {
	records, err := h.retrievedService.ListReturnsByClientPhone(c.Request.Context(), c.Param("phone"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, records))
}
