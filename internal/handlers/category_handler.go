package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todoey/internal/models"
	"todoey/internal/pagination"
	"todoey/internal/services"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents the request payload for creating a category
type CreateCategoryRequest struct {
	Name   string `json:"name" binding:"required,not_blank,max=255"`
	Colour string `json:"colour" binding:"omitempty,hex_color"`
}

// EnsureColourRequest represents the request payload for assigning a colour.
// An empty colour asks for a random one if the category has none.
type EnsureColourRequest struct {
	Colour string `json:"colour" binding:"omitempty,hex_color"`
}

// CategoryResponse represents a category in the response
type CategoryResponse struct {
	Category *models.Category `json:"category"`
}

// CategoryListResponse is the unpaginated category list.
type CategoryListResponse struct {
	Categories []models.Category `json:"categories"`
	Revision   uint64            `json:"revision"`
}

// CreateCategory handles the creation of a new category
// @Summary     Create a category
// @Description Create a new category; a random colour is assigned when none is given
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     201 {object} CategoryResponse "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Write failed"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req.Name, req.Colour)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CategoryResponse{Category: category})
}

// ListCategories handles the retrieval of categories in insertion order
// @Summary     List categories
// @Description List categories in insertion order. Paginated when page or page_size is given.
// @Tags        categories
// @Produce     json
// @Security    ApiKeyAuth
// @Param       page      query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} CategoryListResponse "Categories"
// @Success     304 "Not modified"
// @Failure     400 {object} ErrorResponse "Invalid pagination"
// @Router      /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	if !page.IsZero() {
		result, err := h.categoryService.ListCategoriesPage(c.Request.Context(), page)
		if err != nil {
			respondWithError(c, err)
			return
		}
		if notModified(c, result.Revision) {
			return
		}
		c.JSON(http.StatusOK, result)
		return
	}

	result, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	if notModified(c, result.Revision) {
		return
	}

	c.JSON(http.StatusOK, CategoryListResponse{Categories: result.Data, Revision: result.Revision})
}

// GetCategory handles the retrieval of a specific category
// @Summary     Get category by ID
// @Tags        categories
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Category ID"
// @Success     200 {object} CategoryResponse "Category details"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.GetCategory(c.Request.Context(), categoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Category: category})
}

// EnsureColour handles assigning a category's display colour
// @Summary     Set category colour
// @Description Set the colour, or assign a random one when the body has none and the category is uncoloured
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id      path string              true "Category ID"
// @Param       request body EnsureColourRequest false "Colour"
// @Success     200 {object} CategoryResponse "Updated category"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /categories/{id}/colour [put]
func (h *CategoryHandler) EnsureColour(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req EnsureColourRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, bindError(err))
			return
		}
	}

	category, err := h.categoryService.EnsureColour(c.Request.Context(), categoryID, req.Colour)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Category: category})
}

// DeleteCategory handles deleting a category and its items
// @Summary     Delete category
// @Description Delete a category together with all of its items
// @Tags        categories
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Category ID"
// @Success     200 {object} MessageResponse "Category deleted"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
