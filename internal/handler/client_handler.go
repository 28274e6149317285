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

type ClientHandler struct {
	clientService service.ClientService
}

func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *ClientHandler) RegisterRoutes(router *gin.RouterGroup) {
	counterStaff := middleware.RequireRole(
		model.RoleAdmin, model.RoleCashier, model.RoleSeller, model.RoleSupervisor,
	)

	clients := router.Group("/clients")
	{
		clients.POST("", counterStaff, h.CreateClient)
		clients.GET("", counterStaff, h.ListClients)
		clients.GET("/phone/:phone", counterStaff, h.GetClientByPhone)
		clients.GET("/:id", counterStaff, h.GetClientByID)
		clients.GET("/:id/card", counterStaff, h.GetCard)
		clients.POST("/:phone/card", counterStaff, h.AddCard)
	}
}

// CreateClient handles POST /clients
// @Summary      Register a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateClientRequest  true  "Client Payload"
// @Success      201      {object}  response.Response{data=service.ClientResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req service.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, client))
}

// ListClients handles GET /clients
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Items per page"
// @Success      200    {object}  response.Response
// @Router       /clients [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	params := pagination.Parse(c)

	clients, total, err := h.clientService.ListClients(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagedData{
		Items:      clients,
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: pagination.TotalPages(total, params.Limit),
	}))
}

// GetClientByPhone handles GET /clients/phone/:phone
// @Summary      Look up a client by phone
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        phone  path      string  true  "Client phone number"
// @Success      200    {object}  response.Response{data=service.ClientResponse}
// @Failure      404    {object}  response.Response
// @Router       /clients/phone/{phone} [get]
func (h *ClientHandler) GetClientByPhone(c *gin.Context) {
	client, err := h.clientService.GetClientByPhone(c.Request.Context(), c.Param("phone"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, client))
}

// GetClientByID handles GET /clients/:id
// @Summary      Get a client by id
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  response.Response{data=service.ClientResponse}
// @Failure      404  {object}  response.Response
// @Router       /clients/{id} [get]
func (h *ClientHandler) GetClientByID(c *gin.Context) {
	client, err := h.clientService.GetClientByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, client))
}

// AddCard handles POST /clients/:phone/card
// @Summary      Store a payment card for a client
// @Description  Stores the single payment card for the client with this phone number
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        phone    path      string                  true  "Client phone number"
// @Param        payload  body      service.AddCardRequest  true  "Card Payload"
// @Success      201      {object}  response.Response{data=service.CardResponse}
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /clients/{phone}/card [post]
func (h *ClientHandler) AddCard(c *gin.Context) {
	var req service.AddCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	card, err := h.clientService.AddCard(c.Request.Context(), c.Param("phone"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, card))
}

// GetCard handles GET /clients/:id/card
// @Summary      Get the stored card for a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  response.Response{data=service.CardResponse}
// @Failure      404  {object}  response.Response
// @Router       /clients/{id}/card [get]
func (h *ClientHandler) GetCard(c *gin.Context) {
	card, err := h.clientService.GetCard(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, card))
}
