package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "todoey/internal/errors"
	"todoey/internal/models"
	"todoey/internal/pagination"
	"todoey/internal/services"
)

// --- mock category service ---

type mockCategoryService struct {
	createCategoryFn     func(name, colour string) (*models.Category, error)
	listCategoriesFn     func() (*services.Results[models.Category], error)
	listCategoriesPageFn func(page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	getCategoryFn        func(categoryID string) (*models.Category, error)
	ensureColourFn       func(categoryID, colour string) (*models.Category, error)
	deleteCategoryFn     func(categoryID string) error
}

func (m *mockCategoryService) CreateCategory(_ context.Context, name, colour string) (*models.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(name, colour)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) ListCategories(_ context.Context) (*services.Results[models.Category], error) {
	if m.listCategoriesFn != nil {
		return m.listCategoriesFn()
	}
	return &services.Results[models.Category]{Data: []models.Category{}}, nil
}

func (m *mockCategoryService) ListCategoriesPage(_ context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	if m.listCategoriesPageFn != nil {
		return m.listCategoriesPageFn(page)
	}
	resp := pagination.NewPageResponse([]models.Category{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockCategoryService) GetCategory(_ context.Context, categoryID string) (*models.Category, error) {
	if m.getCategoryFn != nil {
		return m.getCategoryFn(categoryID)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) EnsureColour(_ context.Context, categoryID, colour string) (*models.Category, error) {
	if m.ensureColourFn != nil {
		return m.ensureColourFn(categoryID, colour)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) DeleteCategory(_ context.Context, categoryID string) error {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(categoryID)
	}
	return nil
}

var _ services.CategoryServicer = (*mockCategoryService)(nil)

func setupCategoryRouter(handler *CategoryHandler) *gin.Engine {
	r := gin.New()
	r.POST("/categories", handler.CreateCategory)
	r.GET("/categories", handler.ListCategories)
	r.GET("/categories/:id", handler.GetCategory)
	r.PUT("/categories/:id/colour", handler.EnsureColour)
	r.DELETE("/categories/:id", handler.DeleteCategory)
	return r
}

func TestCategoryHandler_CreateCategory(t *testing.T) {
	t.Run("body decodes as CategoryResponse", func(t *testing.T) {
		svc := &mockCategoryService{
			createCategoryFn: func(name, colour string) (*models.Category, error) {
				return &models.Category{Base: models.Base{ID: testCategoryID}, Name: name, Colour: "#1ABC9C"}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, "POST", "/categories", `{"name":"Work"}`)

		var resp CategoryResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Category == nil || resp.Category.ID != testCategoryID || resp.Category.Colour != "#1ABC9C" {
			t.Errorf("unexpected category %+v", resp.Category)
		}
	})

	t.Run("returns 201 on success", func(t *testing.T) {
		var gotColour string
		svc := &mockCategoryService{
			createCategoryFn: func(name, colour string) (*models.Category, error) {
				gotColour = colour
				return &models.Category{Base: models.Base{ID: testCategoryID}, Name: name, Colour: "#1ABC9C"}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, "POST", "/categories", `{"name":"Work"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		cat := parseJSON(t, rec)["category"].(map[string]interface{})
		if cat["name"] != "Work" {
			t.Errorf("expected Work, got %v", cat["name"])
		}
		if gotColour != "" {
			t.Errorf("expected empty colour passed through, got %q", gotColour)
		}
	})

	t.Run("passes an explicit colour", func(t *testing.T) {
		var gotColour string
		svc := &mockCategoryService{
			createCategoryFn: func(name, colour string) (*models.Category, error) {
				gotColour = colour
				return &models.Category{Name: name, Colour: colour}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, "POST", "/categories", `{"name":"Home","colour":"#ff0000"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		if gotColour != "#ff0000" {
			t.Errorf("expected #ff0000, got %q", gotColour)
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}))

		rec := doRequest(r, "POST", "/categories", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on blank name", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}))

		rec := doRequest(r, "POST", "/categories", `{"name":"   "}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on bad colour", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}))

		rec := doRequest(r, "POST", "/categories", `{"name":"Work","colour":"red"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 500 on write failure", func(t *testing.T) {
		svc := &mockCategoryService{
			createCategoryFn: func(_, _ string) (*models.Category, error) {
				return nil, apperrors.ErrWriteFailed
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, "POST", "/categories", `{"name":"Work"}`)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "WRITE_FAILED")
	})
}

func TestCategoryHandler_ListCategories(t *testing.T) {
	listed := &mockCategoryService{
		listCategoriesFn: func() (*services.Results[models.Category], error) {
			return &services.Results[models.Category]{
				Data: []models.Category{
					{Base: models.Base{ID: "a"}, Name: "Home"},
					{Base: models.Base{ID: "b"}, Name: "Work"},
				},
				Revision: 4,
			}, nil
		},
	}

	t.Run("returns categories with revision and etag", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(listed))

		rec := doRequest(r, "GET", "/categories", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if etag := rec.Header().Get("ETag"); etag != `"r4"` {
			t.Errorf(`expected ETag "r4", got %s`, etag)
		}
		result := parseJSON(t, rec)
		cats := result["categories"].([]interface{})
		if len(cats) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(cats))
		}
		if cats[0].(map[string]interface{})["name"] != "Home" {
			t.Errorf("expected Home first, got %v", cats[0])
		}
		if result["revision"] != float64(4) {
			t.Errorf("expected revision 4, got %v", result["revision"])
		}
	})

	t.Run("returns 304 when revision unchanged", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(listed))

		rec := doRequestWithHeader(r, "GET", "/categories", "If-None-Match", `"r4"`)

		if rec.Code != http.StatusNotModified {
			t.Fatalf("expected 304, got %d", rec.Code)
		}
	})

	t.Run("returns 200 when revision moved on", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(listed))

		rec := doRequestWithHeader(r, "GET", "/categories", "If-None-Match", `"r3"`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("paginates when page params are given", func(t *testing.T) {
		var gotPage pagination.PageRequest
		svc := &mockCategoryService{
			listCategoriesPageFn: func(page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
				gotPage = page
				resp := pagination.NewPageResponse([]models.Category{{Name: "Work"}}, 2, 1, 2)
				return &resp, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, "GET", "/categories?page=2&page_size=1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotPage.Page != 2 || gotPage.PageSize != 1 {
			t.Errorf("expected page 2 size 1, got %+v", gotPage)
		}
		result := parseJSON(t, rec)
		if result["total_pages"] != float64(2) {
			t.Errorf("expected total_pages 2, got %v", result["total_pages"])
		}
	})

	t.Run("returns 400 on invalid page size", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}))

		rec := doRequest(r, "GET", "/categories?page_size=500", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCategoryHandler_GetCategory(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		svc := &mockCategoryService{
			getCategoryFn: func(categoryID string) (*models.Category, error) {
				return &models.Category{Base: models.Base{ID: categoryID}, Name: "Work"}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, "GET", "/categories/"+testCategoryID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		cat := parseJSON(t, rec)["category"].(map[string]interface{})
		if cat["id"] != testCategoryID {
			t.Errorf("expected %s, got %v", testCategoryID, cat["id"])
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockCategoryService{
			getCategoryFn: func(_ string) (*models.Category, error) {
				return nil, apperrors.ErrCategoryNotFound
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, "GET", "/categories/"+testCategoryID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_NOT_FOUND")
	})

	t.Run("returns 400 on invalid id", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}))

		rec := doRequest(r, "GET", "/categories/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCategoryHandler_EnsureColour(t *testing.T) {
	t.Run("accepts an empty body", func(t *testing.T) {
		called := false
		svc := &mockCategoryService{
			ensureColourFn: func(categoryID, colour string) (*models.Category, error) {
				called = true
				if colour != "" {
					t.Errorf("expected empty colour, got %q", colour)
				}
				return &models.Category{Base: models.Base{ID: categoryID}, Colour: "#E74C3C"}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, "PUT", "/categories/"+testCategoryID+"/colour", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !called {
			t.Error("expected service to be called")
		}
	})

	t.Run("passes an explicit colour", func(t *testing.T) {
		svc := &mockCategoryService{
			ensureColourFn: func(categoryID, colour string) (*models.Category, error) {
				return &models.Category{Base: models.Base{ID: categoryID}, Colour: colour}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, "PUT", "/categories/"+testCategoryID+"/colour", `{"colour":"#00FF00"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		cat := parseJSON(t, rec)["category"].(map[string]interface{})
		if cat["colour"] != "#00FF00" {
			t.Errorf("expected #00FF00, got %v", cat["colour"])
		}
	})

	t.Run("returns 400 on bad colour", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}))

		rec := doRequest(r, "PUT", "/categories/"+testCategoryID+"/colour", `{"colour":"#GGGGGG"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCategoryHandler_DeleteCategory(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var deleted string
		svc := &mockCategoryService{
			deleteCategoryFn: func(categoryID string) error {
				deleted = categoryID
				return nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, "DELETE", "/categories/"+testCategoryID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if deleted != testCategoryID {
			t.Errorf("expected %s deleted, got %s", testCategoryID, deleted)
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockCategoryService{
			deleteCategoryFn: func(_ string) error { return apperrors.ErrCategoryNotFound },
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, "DELETE", "/categories/"+testCategoryID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
