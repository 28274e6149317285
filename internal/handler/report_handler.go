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

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	backOffice := middleware.RequireRole(model.RoleAdmin, model.RoleSupervisor)

	reports := router.Group("/reports", backOffice)
	{
		reports.GET("", h.ListReports)
		reports.GET("/statistics", h.GetStatistics)
		reports.GET("/user/:userId", h.ListReportsByUser)
		reports.GET("/range", h.ListReportsByDateRange)
		reports.GET("/:id", h.GetReportByID)
		reports.POST("/invoice/:invoiceNo", h.CreateFromInvoice)
	}
}

// ListReports handles GET /reports
// @Summary      List sales reports
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Items per page"
// @Success      200    {object}  response.Response
// @Router       /reports [get]
func (h *ReportHandler) ListReports(c *gin.Context) {
	params := pagination.Parse(c)

	reports, total, err := h.reportService.ListReports(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagedData{
		Items:      reports,
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: pagination.TotalPages(total, params.Limit),
	}))
}

// GetReportByID handles GET /reports/:id
// @Summary      Get a sales report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Report ID"
// @Success      200  {object}  response.Response{data=model.Report}
// @Failure      404  {object}  response.Response
// @Router       /reports/{id} [get]
func (h *ReportHandler) GetReportByID(c *gin.Context) {
	report, err := h.reportService.GetReportByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}

// ListReportsByUser handles GET /reports/user/:userId
// @Summary      List reports for a staff member
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  response.Response{data=[]model.Report}
// @Router       /reports/user/{userId} [get]
func (h *ReportHandler) ListReportsByUser(c *gin.Context) {
	reports, err := h.reportService.ListReportsByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, reports))
}

// ListReportsByDateRange handles GET /reports/range?from&to
// @Summary      List reports in a date range
// @Description  Lists sales reports between two dates (inclusive of the whole end day)
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        from  query     string  true  "Start date YYYY-MM-DD"
// @Param        to    query     string  true  "End date YYYY-MM-DD"
// @Success      200   {object}  response.Response{data=[]model.Report}
// @Failure      400   {object}  response.Response
// @Router       /reports/range [get]
func (h *ReportHandler) ListReportsByDateRange(c *gin.Context) {
	reports, err := h.reportService.ListReportsByDateRange(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, reports))
}

// GetStatistics handles GET /reports/statistics?from&to
// @Summary      Sales statistics
// @Description  Revenue total, invoice and return counts plus top products by quantity over a date range
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        from  query     string  true  "Start date YYYY-MM-DD"
// @Param        to    query     string  true  "End date YYYY-MM-DD"
// @Success      200   {object}  response.Response{data=service.Statistics}
// @Failure      400   {object}  response.Response
// @Router       /reports/statistics [get]
func (h *ReportHandler) GetStatistics(c *gin.Context) {
	stats, err := h.reportService.GetStatistics(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// CreateFromInvoice handles POST /reports/invoice/:invoiceNo
// @Summary      Rebuild a report from an invoice
// @Description  Rebuilds the denormalized sales snapshot from a stored invoice
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        invoiceNo  path      string  true  "Invoice number"
// @Success      201        {object}  response.Response{data=model.Report}
// @Failure      404        {object}  response.Response
// @Router       /reports/invoice/{invoiceNo} [post]
func (h *ReportHandler) CreateFromInvoice(c *gin.Context) {
	report, err := h.reportService.CreateFromInvoice(c.Request.Context(), c.Param("invoiceNo"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, report))
}
