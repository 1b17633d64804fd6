package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"stockledger/internal/config"
	"stockledger/internal/middleware"
	"stockledger/internal/model"
	"stockledger/internal/service"
	"stockledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// DTOs
type SubmitRequest struct {
	Lines []service.CartLine `json:"lines" binding:"required,min=1"`
}

type DispatchRequest struct {
	// Send maps line id to the quantity to send now. Omitted lines stay Pending.
	Send map[string]decimal.Decimal `json:"send" binding:"required"`
}

type RequisitionHandler struct {
	requisitionService service.RequisitionService
}

func NewRequisitionHandler(requisitionService service.RequisitionService) *RequisitionHandler {
	return &RequisitionHandler{requisitionService: requisitionService}
}

func (h *RequisitionHandler) RegisterRoutes(router *gin.RouterGroup) {
	req := router.Group("/api/requisitions")
	{
		req.GET("/cart", h.GetCart)
		req.POST("/cart", h.AddToCart)
		req.DELETE("/cart", h.ClearCart)
		req.DELETE("/cart/:index", h.RemoveFromCart)
		req.POST("/cart/submit", h.SubmitCart)
		req.POST("", h.Submit)

		req.GET("/outstanding", h.Outstanding)
		req.GET("/history", h.History)
		req.POST("/lines/:lineId/accept", h.Accept)
		req.POST("/lines/:lineId/follow-up", h.RequestFollowUp)

		supplier := req.Group("", middleware.RequireRole(config.RoleWarehouse))
		supplier.GET("/pending", h.PendingBatches)
		supplier.POST("/batches/:orderId/dispatch", h.Dispatch)
	}
}

// GetCart returns the draft requisition
// @Summary      Get cart
// @Tags         requisitions
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.CartLine}
// @Router       /api/requisitions/cart [get]
func (h *RequisitionHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.requisitionService.Cart(c.Request.Context())))
}

// AddToCart appends a draft line
// @Summary      Add to cart
// @Tags         requisitions
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CartLine  true  "Cart Line"
// @Success      200      {object}  response.Response{data=[]service.CartLine}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/requisitions/cart [post]
func (h *RequisitionHandler) AddToCart(c *gin.Context) {
	var line service.CartLine
	if err := c.ShouldBindJSON(&line); err != nil {
		badRequest(c, err)
		return
	}
	cart, err := h.requisitionService.AddToCart(c.Request.Context(), line)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, cart))
}

// ClearCart drops every draft line
// @Summary      Clear cart
// @Tags         requisitions
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/requisitions/cart [delete]
func (h *RequisitionHandler) ClearCart(c *gin.Context) {
	h.requisitionService.ClearCart(c.Request.Context())
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Cart cleared"))
}

// RemoveFromCart drops one draft line
// @Summary      Remove cart line
// @Tags         requisitions
// @Produce      json
// @Param        index  path      int  true  "Cart position (0-based)"
// @Success      200    {object}  response.Response{data=[]service.CartLine}
// @Failure      400    {object}  response.Response
// @Router       /api/requisitions/cart/{index} [delete]
func (h *RequisitionHandler) RemoveFromCart(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Cart index must be a number"))
		return
	}
	cart, err := h.requisitionService.RemoveFromCart(c.Request.Context(), index)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, cart))
}

// SubmitCart sends the draft as one batch
// @Summary      Submit cart
// @Tags         requisitions
// @Produce      json
// @Success      201  {object}  response.Response{data=[]model.OrderLine}
// @Failure      400  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /api/requisitions/cart/submit [post]
func (h *RequisitionHandler) SubmitCart(c *gin.Context) {
	lines, err := h.requisitionService.SubmitCart(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, lines))
}

// Submit sends lines as one batch without using the cart
// @Summary      Submit requisition
// @Tags         requisitions
// @Accept       json
// @Produce      json
// @Param        payload  body      SubmitRequest  true  "Requisition Payload"
// @Success      201      {object}  response.Response{data=[]model.OrderLine}
// @Failure      400      {object}  response.Response
// @Failure      503      {object}  response.Response
// @Router       /api/requisitions [post]
func (h *RequisitionHandler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	lines, err := h.requisitionService.Submit(c.Request.Context(), req.Lines)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, lines))
}

// PendingBatches lists batches waiting for dispatch
// @Summary      Pending batches
// @Tags         requisitions
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.Batch}
// @Failure      403  {object}  response.Response
// @Router       /api/requisitions/pending [get]
func (h *RequisitionHandler) PendingBatches(c *gin.Context) {
	batches, err := h.requisitionService.PendingBatches(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, batches))
}

// Dispatch sends stock for a batch, splitting short lines into backorders
// @Summary      Dispatch batch
// @Description  Lines are dispatched independently. When some fail the response is 207 with the outcome of every line.
// @Tags         requisitions
// @Accept       json
// @Produce      json
// @Param        orderId  path      string           true  "Order ID"
// @Param        payload  body      DispatchRequest  true  "Send quantities by line id"
// @Success      200      {object}  response.Response{data=service.DispatchResult}
// @Success      207      {object}  response.Response{data=service.DispatchResult}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      503      {object}  response.Response
// @Router       /api/requisitions/batches/{orderId}/dispatch [post]
func (h *RequisitionHandler) Dispatch(c *gin.Context) {
	var req DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.requisitionService.Dispatch(c.Request.Context(), c.Param("orderId"), req.Send)
	if errors.Is(err, service.ErrPartialBatch) {
		_ = c.Error(err)
		c.JSON(http.StatusMultiStatus, response.Partial(http.StatusMultiStatus, result, err.Error()))
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// Accept books an In Transit line into this location's stock
// @Summary      Accept line
// @Tags         requisitions
// @Produce      json
// @Param        lineId  path      string  true  "Line ID"
// @Success      200     {object}  response.Response{data=model.OrderLine}
// @Failure      404     {object}  response.Response
// @Failure      409     {object}  response.Response
// @Router       /api/requisitions/lines/{lineId}/accept [post]
func (h *RequisitionHandler) Accept(c *gin.Context) {
	line, err := h.requisitionService.Accept(c.Request.Context(), c.Param("lineId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, line))
}

// RequestFollowUp flags a Pending line for the supplier's attention
// @Summary      Request follow-up
// @Tags         requisitions
// @Produce      json
// @Param        lineId  path      string  true  "Line ID"
// @Success      200     {object}  response.Response{data=model.OrderLine}
// @Failure      404     {object}  response.Response
// @Failure      409     {object}  response.Response
// @Router       /api/requisitions/lines/{lineId}/follow-up [post]
func (h *RequisitionHandler) RequestFollowUp(c *gin.Context) {
	line, err := h.requisitionService.RequestFollowUp(c.Request.Context(), c.Param("lineId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, line))
}

// Outstanding lists this location's Pending and In Transit lines
// @Summary      Outstanding lines
// @Tags         requisitions
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.OrderLine}
// @Router       /api/requisitions/outstanding [get]
func (h *RequisitionHandler) Outstanding(c *gin.Context) {
	lines, err := h.requisitionService.Outstanding(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, lines))
}

// History lists this location's lines
// @Summary      Requisition history
// @Tags         requisitions
// @Produce      json
// @Param        status  query     []string  false  "Statuses to include (repeat or comma separate)"
// @Param        item    query     string    false  "Item name contains"
// @Param        sort    query     string    false  "latest, oldest or item"
// @Success      200     {object}  response.Response{data=[]model.OrderLine}
// @Failure      400     {object}  response.Response
// @Router       /api/requisitions/history [get]
func (h *RequisitionHandler) History(c *gin.Context) {
	var statuses []model.OrderStatus
	for _, raw := range c.QueryArray("status") {
		for _, s := range strings.Split(raw, ",") {
			status := model.OrderStatus(strings.TrimSpace(s))
			if status == "" {
				continue
			}
			if !status.Valid() {
				c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Unknown status "+string(status)))
				return
			}
			statuses = append(statuses, status)
		}
	}

	lines, err := h.requisitionService.History(c.Request.Context(), service.HistoryFilter{
		Statuses: statuses,
		Item:     c.Query("item"),
		Sort:     c.DefaultQuery("sort", service.SortLatest),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, lines))
}
