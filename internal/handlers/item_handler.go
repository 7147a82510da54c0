package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todoey/internal/models"
	"todoey/internal/services"
)

// ItemHandler handles item-related requests
type ItemHandler struct {
	itemService services.ItemServicer
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(itemService services.ItemServicer) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// CreateItemRequest represents the request payload for creating an item
type CreateItemRequest struct {
	Title string `json:"title" binding:"required,not_blank,max=500"`
}

// ListItemsQuery holds the optional search filter.
type ListItemsQuery struct {
	Query string `form:"q" binding:"max=500"`
}

// ItemResponse represents an item in the response
type ItemResponse struct {
	Item *models.Item `json:"item"`
}

// ItemListResponse is the list of a category's items.
type ItemListResponse struct {
	Items    []models.Item `json:"items"`
	Revision uint64        `json:"revision"`
}

// CreateItem handles adding an item to a category
// @Summary     Create an item
// @Description Append a new item to a category's list
// @Tags        items
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id      path string            true "Category ID"
// @Param       request body CreateItemRequest true "Item details"
// @Success     201 {object} ItemResponse "Item created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /categories/{id}/items [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), categoryID, req.Title)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ItemResponse{Item: item})
}

// ListItems handles listing a category's items
// @Summary     List items
// @Description Without q, items sorted by title. With q, items whose title contains q (ignoring case and accents), oldest first.
// @Tags        items
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path  string true  "Category ID"
// @Param       q  query string false "Title filter"
// @Success     200 {object} ItemListResponse "Items"
// @Success     304 "Not modified"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /categories/{id}/items [get]
func (h *ItemHandler) ListItems(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query ListItemsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	result, err := h.itemService.ListItems(c.Request.Context(), categoryID, query.Query)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if notModified(c, result.Revision) {
		return
	}

	c.JSON(http.StatusOK, ItemListResponse{Items: result.Data, Revision: result.Revision})
}

// GetItem handles the retrieval of a specific item
// @Summary     Get item by ID
// @Tags        items
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Item ID"
// @Success     200 {object} ItemResponse "Item with its parent category"
// @Failure     400 {object} ErrorResponse "Invalid item ID"
// @Failure     404 {object} ErrorResponse "Item not found"
// @Router      /items/{id} [get]
func (h *ItemHandler) GetItem(c *gin.Context) {
	itemID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	item, err := h.itemService.GetItem(c.Request.Context(), itemID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ItemResponse{Item: item})
}

// ToggleDone handles flipping an item's done flag
// @Summary     Toggle item
// @Tags        items
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Item ID"
// @Success     200 {object} ItemResponse "Updated item"
// @Failure     404 {object} ErrorResponse "Item not found"
// @Failure     500 {object} ErrorResponse "Write failed"
// @Router      /items/{id}/toggle [post]
func (h *ItemHandler) ToggleDone(c *gin.Context) {
	itemID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	item, err := h.itemService.ToggleDone(c.Request.Context(), itemID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ItemResponse{Item: item})
}

// DeleteItem handles deleting an item
// @Summary     Delete item
// @Tags        items
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Item ID"
// @Success     200 {object} MessageResponse "Item deleted"
// @Failure     404 {object} ErrorResponse "Item not found"
// @Router      /items/{id} [delete]
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	itemID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.itemService.DeleteItem(c.Request.Context(), itemID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}
