package handler

import (
	"net/http"
	"strings"

	"stockledger/internal/config"
	"stockledger/internal/middleware"
	"stockledger/internal/model"
	"stockledger/internal/service"
	"stockledger/pkg/pagination"
	"stockledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// DTOs
type ApplyDeltaRequest struct {
	Day    int               `json:"day" binding:"gte=0,lte=31"`
	Qty    decimal.Decimal   `json:"qty"`
	Type   string            `json:"type"`
	Target model.EntryTarget `json:"target"`
}

type OpeningStockRequest struct {
	OpeningStock decimal.Decimal `json:"opening_stock"`
}

type PhysicalCountRequest struct {
	PhysicalCount *decimal.Decimal `json:"physical_count"`
}

type DeltaResponse struct {
	Item  model.Item        `json:"item"`
	Entry model.LedgerEntry `json:"entry"`
}

type UpdateRowResponse struct {
	Item    model.Item          `json:"item"`
	Entries []model.LedgerEntry `json:"entries"`
}

type StockHandler struct {
	stockService     service.StockService
	directoryService service.DirectoryService
	importService    service.ImportService
}

func NewStockHandler(stockService service.StockService, directoryService service.DirectoryService, importService service.ImportService) *StockHandler {
	return &StockHandler{
		stockService:     stockService,
		directoryService: directoryService,
		importService:    importService,
	}
}

func (h *StockHandler) RegisterRoutes(router *gin.RouterGroup) {
	inventory := router.Group("/api/inventory")
	{
		inventory.GET("", h.ListItems)
		inventory.GET("/items/:name", h.GetItem)
		inventory.POST("/items", h.RegisterItem)
		inventory.POST("/items/:name/deltas", h.ApplyDelta)
		inventory.PUT("/items/:name", h.UpdateRow)
		inventory.PUT("/items/:name/opening-stock", h.SetOpeningStock)
		inventory.PUT("/items/:name/physical-count", h.RecordPhysicalCount)
		inventory.POST("/import", h.Import)
		inventory.GET("/export", h.Export)
		inventory.GET("/low-stock", middleware.RequireRole(config.RoleWarehouse), h.LowStock)
	}
}

// ListItems returns the inventory table of this location
// @Summary      List inventory
// @Description  Retrieves a page of the location's inventory rows in table order
// @Tags         inventory
// @Produce      json
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Rows per page (default 50)"
// @Param        search  query     string  false  "Filter by product name"
// @Success      200     {object}  response.Response{data=response.Page{items=[]model.Item}}
// @Failure      500     {object}  response.Response
// @Router       /api/inventory [get]
func (h *StockHandler) ListItems(c *gin.Context) {
	params := pagination.Parse(c)
	search := strings.ToLower(strings.TrimSpace(c.Query("search")))

	items, err := h.stockService.Items(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	if search != "" {
		filtered := items[:0]
		for _, item := range items {
			if strings.Contains(strings.ToLower(item.ProductName), search) {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	start, end := params.Window(len(items))
	c.JSON(http.StatusOK, response.Paged(http.StatusOK, items[start:end], int64(len(items)), params.Page, params.Limit))
}

// GetItem returns one inventory row
// @Summary      Get item
// @Tags         inventory
// @Produce      json
// @Param        name  path      string  true  "Product name"
// @Success      200   {object}  response.Response{data=model.Item}
// @Failure      404   {object}  response.Response
// @Router       /api/inventory/items/{name} [get]
func (h *StockHandler) GetItem(c *gin.Context) {
	item, err := h.stockService.Item(c.Request.Context(), c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, item))
}

// RegisterItem adds a product to the inventory table
// @Summary      Register item
// @Description  Creates an item with empty receipts and logs a New Item Added entry
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RegisterItemRequest  true  "Register Item Payload"
// @Success      201      {object}  response.Response{data=model.Item}
// @Failure      400      {object}  response.Response
// @Router       /api/inventory/items [post]
func (h *StockHandler) RegisterItem(c *gin.Context) {
	var req service.RegisterItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.stockService.RegisterItem(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, item))
}

// ApplyDelta books a signed quantity against an item
// @Summary      Apply stock delta
// @Description  Adds qty to the day slot (or consumption/opening when target says so) and logs a ledger entry
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        name     path      string             true  "Product name"
// @Param        payload  body      ApplyDeltaRequest  true  "Delta Payload"
// @Success      200      {object}  response.Response{data=DeltaResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/inventory/items/{name}/deltas [post]
func (h *StockHandler) ApplyDelta(c *gin.Context) {
	var req ApplyDeltaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Type == "" {
		req.Type = model.EntryAddition
	}
	if model.IsUndoEntryType(req.Type) {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Undo entries are created through the ledger undo endpoint"))
		return
	}

	item, entry, err := h.stockService.ApplyDelta(c.Request.Context(), service.Delta{
		Item:   c.Param("name"),
		Day:    req.Day,
		Qty:    req.Qty,
		Type:   req.Type,
		Target: req.Target,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, DeltaResponse{Item: item, Entry: entry}))
}

// UpdateRow saves edited day slots and consumption of one row
// @Summary      Update row
// @Description  Each changed field is logged as its own Table Update entry
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        name     path      string                    true  "Product name"
// @Param        payload  body      service.UpdateRowRequest  true  "Row Payload"
// @Success      200      {object}  response.Response{data=UpdateRowResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/inventory/items/{name} [put]
func (h *StockHandler) UpdateRow(c *gin.Context) {
	var req service.UpdateRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, entries, err := h.stockService.UpdateRow(c.Request.Context(), c.Param("name"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, UpdateRowResponse{Item: item, Entries: entries}))
}

// SetOpeningStock corrects the opening stock of an item
// @Summary      Set opening stock
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        name     path      string               true  "Product name"
// @Param        payload  body      OpeningStockRequest  true  "Opening Stock Payload"
// @Success      200      {object}  response.Response{data=model.Item}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/inventory/items/{name}/opening-stock [put]
func (h *StockHandler) SetOpeningStock(c *gin.Context) {
	var req OpeningStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.stockService.SetOpeningStock(c.Request.Context(), c.Param("name"), req.OpeningStock)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, item))
}

// RecordPhysicalCount stores or clears a counted quantity
// @Summary      Record physical count
// @Description  A null physical_count clears the count; variance is recomputed
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        name     path      string                true  "Product name"
// @Param        payload  body      PhysicalCountRequest  true  "Physical Count Payload"
// @Success      200      {object}  response.Response{data=model.Item}
// @Failure      404      {object}  response.Response
// @Router       /api/inventory/items/{name}/physical-count [put]
func (h *StockHandler) RecordPhysicalCount(c *gin.Context) {
	var req PhysicalCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var count decimal.NullDecimal
	if req.PhysicalCount != nil {
		count = decimal.NewNullDecimal(*req.PhysicalCount)
	}
	item, err := h.stockService.RecordPhysicalCount(c.Request.Context(), c.Param("name"), count)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, item))
}

// Import loads a monthly stock sheet
// @Summary      Import stock sheet
// @Description  Registers every row of an .xlsx or .csv sheet and books its day columns as Additions
// @Tags         inventory
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Stock sheet"
// @Success      200   {object}  response.Response{data=service.ImportResult}
// @Failure      400   {object}  response.Response
// @Router       /api/inventory/import [post]
func (h *StockHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "File upload failed: "+err.Error()))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Could not open upload: "+err.Error()))
		return
	}
	defer file.Close()

	result, err := h.importService.Import(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// Export downloads the inventory table as xlsx
// @Summary      Export inventory
// @Tags         inventory
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Failure      500  {object}  response.Response
// @Router       /api/inventory/export [get]
func (h *StockHandler) Export(c *gin.Context) {
	data, err := h.importService.Export(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	filename := "inventory_" + h.stockService.Location() + ".xlsx"
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// LowStock lists items below their directory minimum
// @Summary      Low stock report
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.LowStockItem}
// @Failure      403  {object}  response.Response
// @Router       /api/inventory/low-stock [get]
func (h *StockHandler) LowStock(c *gin.Context) {
	items, err := h.stockService.Items(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	report, err := h.directoryService.LowStock(c.Request.Context(), items)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}
