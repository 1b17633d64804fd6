package handler

import (
	"net/http"

	"stockledger/internal/config"
	"stockledger/internal/middleware"
	"stockledger/internal/service"
	"stockledger/pkg/response"

	"github.com/gin-gonic/gin"
)

type DirectoryHandler struct {
	directoryService service.DirectoryService
}

func NewDirectoryHandler(directoryService service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directoryService: directoryService}
}

func (h *DirectoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	directory := router.Group("/api/directory")
	{
		directory.GET("", h.List)
		directory.PUT("", middleware.RequireRole(config.RoleWarehouse), h.Upsert)
		directory.GET("/supplier/:supplier", h.BySupplier)
	}
}

// List returns the supplier directory
// @Summary      List directory
// @Tags         directory
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.DirectoryEntry}
// @Router       /api/directory [get]
func (h *DirectoryHandler) List(c *gin.Context) {
	entries, err := h.directoryService.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, entries))
}

// Upsert creates or replaces a directory entry
// @Summary      Save directory entry
// @Tags         directory
// @Accept       json
// @Produce      json
// @Param        payload  body      service.UpsertDirectoryRequest  true  "Directory Entry Payload"
// @Success      200      {object}  response.Response{data=model.DirectoryEntry}
// @Failure      400      {object}  response.Response
// @Router       /api/directory [put]
func (h *DirectoryHandler) Upsert(c *gin.Context) {
	var req service.UpsertDirectoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	entry, err := h.directoryService.Upsert(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, entry))
}

// BySupplier returns the products one supplier provides
// @Summary      Products by supplier
// @Tags         directory
// @Produce      json
// @Param        supplier  path      string  true  "Supplier name"
// @Success      200       {object}  response.Response{data=[]model.DirectoryEntry}
// @Router       /api/directory/supplier/{supplier} [get]
func (h *DirectoryHandler) BySupplier(c *gin.Context) {
	entries, err := h.directoryService.BySupplier(c.Request.Context(), c.Param("supplier"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, entries))
}
