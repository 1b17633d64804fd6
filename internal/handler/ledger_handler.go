package handler

import (
	"net/http"

	"stockledger/internal/service"
	"stockledger/pkg/pagination"
	"stockledger/pkg/response"

	"github.com/gin-gonic/gin"
)

type LedgerHandler struct {
	ledgerService service.LedgerService
}

func NewLedgerHandler(ledgerService service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

func (h *LedgerHandler) RegisterRoutes(router *gin.RouterGroup) {
	ledger := router.Group("/api/ledger")
	{
		ledger.GET("", h.ListEntries)
		ledger.POST("/:id/undo", h.Undo)
	}
}

// ListEntries returns the ledger newest first
// @Summary      List ledger entries
// @Tags         ledger
// @Produce      json
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Entries per page (default 50)"
// @Param        item   query     string  false  "Only entries of this item"
// @Success      200    {object}  response.Response{data=response.Page{items=[]model.LedgerEntry}}
// @Failure      500    {object}  response.Response
// @Router       /api/ledger [get]
func (h *LedgerHandler) ListEntries(c *gin.Context) {
	params := pagination.Parse(c)
	entries, total, err := h.ledgerService.Entries(c.Request.Context(), service.LedgerFilter{
		Item:   c.Query("item"),
		Offset: params.Offset,
		Limit:  params.Limit,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Paged(http.StatusOK, entries, total, params.Page, params.Limit))
}

// Undo reverses a ledger entry with a compensating entry
// @Summary      Undo entry
// @Description  Applies the opposite delta and flags the entry undone. Undoing twice changes nothing the second time.
// @Tags         ledger
// @Produce      json
// @Param        id   path      string  true  "Entry ID"
// @Success      200  {object}  response.Response{data=service.UndoResult}
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/ledger/{id}/undo [post]
func (h *LedgerHandler) Undo(c *gin.Context) {
	result, err := h.ledgerService.Undo(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}
