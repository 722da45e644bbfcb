package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"productselector/internal/database"
	"productselector/internal/handlers"
	"productselector/internal/models"
	"productselector/internal/repositories"
	"productselector/internal/server"
	"productselector/internal/services"
)

// recordingPublisher keeps the routing keys of published events.
type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
}

func (p *recordingPublisher) Publish(routingKey string, _ []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, routingKey)
	return nil
}

func (p *recordingPublisher) routingKeys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

// setupApp wires the full stack on an in-memory SQLite database.
func setupApp(t *testing.T) (*fiber.App, *recordingPublisher) {
	t.Helper()

	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	log := zap.NewNop()
	publisher := &recordingPublisher{}

	productRepo := repositories.NewGORMProductRepository(db)
	recipeRepo := repositories.NewGORMRecipeRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	productService := services.NewProductService(productRepo, recipeRepo, publisher, log)
	recipeService := services.NewRecipeService(recipeRepo, productRepo, publisher, log)
	userService := services.NewUserService(userRepo, publisher, log)

	app := server.New(log, server.Options{},
		handlers.NewProductHandler(productService),
		handlers.NewRecipeHandler(recipeService),
		handlers.NewUserHandler(userService),
	)
	return app, publisher
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1) // -1 for no timeout
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func createRecipe(t *testing.T, app *fiber.App, name string, productIDs ...int64) models.Recipe {
	t.Helper()
	resp := doRequest(t, app, http.MethodPost, "/recipes", map[string]any{
		"name":            name,
		"description":     name + " description",
		"vegan":           true,
		"difficultyLevel": "EASY",
		"productIds":      productIDs,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var recipe models.Recipe
	decodeBody(t, resp, &recipe)
	return recipe
}

func createProduct(t *testing.T, app *fiber.App, name string, recipeIDs ...int64) models.Product {
	t.Helper()
	resp := doRequest(t, app, http.MethodPost, "/products", map[string]any{
		"name":      name,
		"recipeIds": recipeIDs,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var product models.Product
	decodeBody(t, resp, &product)
	return product
}

func TestProductEndpoints(t *testing.T) {
	app, publisher := setupApp(t)

	recipe1 := createRecipe(t, app, "Pancakes")
	recipe2 := createRecipe(t, app, "Omelette")

	// --- Create drops recipe ids that do not exist ---
	flour := createProduct(t, app, "Flour", recipe1.ID, 9999)
	assert.NotZero(t, flour.ID)
	assert.Equal(t, "Flour", flour.Name)
	require.Len(t, flour.Recipes, 1)
	assert.Equal(t, recipe1.ID, flour.Recipes[0].ID)

	eggs := createProduct(t, app, "Eggs", recipe1.ID, recipe2.ID)
	assert.ElementsMatch(t, []int64{recipe1.ID, recipe2.ID}, eggs.RecipeIDs())

	// --- Read ---
	resp := doRequest(t, app, http.MethodGet, "/products", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var all []models.Product
	decodeBody(t, resp, &all)
	assert.Len(t, all, 2)

	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/products/%d", flour.ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched models.Product
	decodeBody(t, resp, &fetched)
	assert.Equal(t, flour.ID, fetched.ID)

	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/products/batch?ids=%d,9999", eggs.ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var batch []models.Product
	decodeBody(t, resp, &batch)
	require.Len(t, batch, 1)
	assert.Equal(t, eggs.ID, batch[0].ID)

	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/products/recipe/%d", recipe2.ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var byRecipe []models.Product
	decodeBody(t, resp, &byRecipe)
	require.Len(t, byRecipe, 1)
	assert.Equal(t, eggs.ID, byRecipe[0].ID)

	// eggs uses both recipes but is returned once
	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/products/recipe/batch?ids=%d&ids=%d", recipe1.ID, recipe2.ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var byRecipes []models.Product
	decodeBody(t, resp, &byRecipes)
	assert.Len(t, byRecipes, 2)

	// --- Update replaces the recipe links ---
	resp = doRequest(t, app, http.MethodPut, "/products", map[string]any{
		"id":      eggs.ID,
		"name":    "Free Range Eggs",
		"recipes": []map[string]any{{"id": recipe2.ID}},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Product
	decodeBody(t, resp, &updated)
	assert.Equal(t, "Free Range Eggs", updated.Name)
	assert.Equal(t, []int64{recipe2.ID}, updated.RecipeIDs())

	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/recipes/product/%d", eggs.ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var recipesOfEggs []models.Recipe
	decodeBody(t, resp, &recipesOfEggs)
	require.Len(t, recipesOfEggs, 1)
	assert.Equal(t, recipe2.ID, recipesOfEggs[0].ID)

	// --- Delete ---
	resp = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/products/%d", flour.ID), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/products/%d", flour.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/products/%d", flour.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// recipe1 lost every product
	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/products/recipe/%d", recipe1.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	assert.Equal(t, []string{
		"recipe.created", "recipe.created",
		"product.created", "product.created",
		"product.updated", "product.deleted",
	}, publisher.routingKeys())
}

func TestUpdateNonExistentProduct(t *testing.T) {
	app, _ := setupApp(t)

	resp := doRequest(t, app, http.MethodPut, "/products", map[string]any{
		"id":   9999,
		"name": "Ghost",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var errResp handlers.ErrorResponse
	decodeBody(t, resp, &errResp)
	assert.Equal(t, "NOT_FOUND", errResp.Code)
	assert.Equal(t, "cannot update: product with id 9999 not found", errResp.Message)

	resp = doRequest(t, app, http.MethodGet, "/products", nil)
	var all []models.Product
	decodeBody(t, resp, &all)
	assert.Empty(t, all)
}

func TestBatchReads(t *testing.T) {
	app, _ := setupApp(t)
	product := createProduct(t, app, "Milk")

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{name: "only missing ids", path: "/products/batch?ids=9998,9999", status: http.StatusNotFound},
		{name: "no ids", path: "/products/batch", status: http.StatusBadRequest},
		{name: "non numeric id", path: "/products/batch?ids=1,abc", status: http.StatusBadRequest},
		{name: "repeated ids", path: fmt.Sprintf("/products/batch?ids=%d&ids=9999", product.ID), status: http.StatusOK},
		{name: "non numeric path id", path: "/products/abc", status: http.StatusBadRequest},
		{name: "unknown recipe", path: "/products/recipe/9999", status: http.StatusNotFound},
		{name: "unknown products for recipes", path: "/recipes/product/batch?ids=9999", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, app, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestValidationAndConflicts(t *testing.T) {
	app, _ := setupApp(t)
	createProduct(t, app, "Butter")

	resp := doRequest(t, app, http.MethodPost, "/products", map[string]any{"name": "Butter"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var errResp handlers.ErrorResponse
	decodeBody(t, resp, &errResp)
	assert.Equal(t, "CONFLICT", errResp.Code)

	resp = doRequest(t, app, http.MethodPost, "/products", map[string]any{"recipeIds": []int64{1}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errResp = handlers.ErrorResponse{}
	decodeBody(t, resp, &errResp)
	assert.Contains(t, errResp.Errors, "name")

	resp = doRequest(t, app, http.MethodPost, "/recipes", map[string]any{
		"name":            "Soup",
		"description":     "Hot",
		"difficultyLevel": "IMPOSSIBLE",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPut, "/recipes", map[string]any{"id": 1, "name": "Soup"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUserEndpoints(t *testing.T) {
	app, _ := setupApp(t)

	resp := doRequest(t, app, http.MethodPost, "/users", map[string]any{
		"name":      "Ada",
		"surname":   "Lovelace",
		"email":     "ada@example.com",
		"password":  "secret",
		"birthDate": "1815-12-10",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created map[string]any
	decodeBody(t, resp, &created)
	assert.NotContains(t, created, "password")
	assert.Equal(t, "1815-12-10", created["birthDate"])
	assert.Equal(t, "USER", created["accessLevel"])
	assert.NotEmpty(t, created["registrationDate"])
	id := int64(created["id"].(float64))

	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/users/%d", id), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched map[string]any
	decodeBody(t, resp, &fetched)
	assert.NotContains(t, fetched, "password")
	assert.Equal(t, "ada@example.com", fetched["email"])

	resp = doRequest(t, app, http.MethodPost, "/users", map[string]any{
		"email":    "ada@example.com",
		"password": "other",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/users", map[string]any{
		"email":    "not-an-email",
		"password": "secret",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPut, "/users", map[string]any{
		"id":          id,
		"name":        "Ada",
		"surname":     "King",
		"email":       "ada@example.com",
		"password":    "secret",
		"accessLevel": "ADMIN",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated map[string]any
	decodeBody(t, resp, &updated)
	assert.Equal(t, "King", updated["surname"])
	assert.Equal(t, "ADMIN", updated["accessLevel"])
	assert.NotContains(t, updated, "password")

	resp = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/users/batch?ids="+fmt.Sprint(id), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
