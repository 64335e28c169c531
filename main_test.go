package main_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	mainapp "productstore"
	"productstore/internal/repositories"
)

func TestHealthCheck(t *testing.T) {
	app := mainapp.NewApp(repositories.NewInMemoryProductRepository(), nil, "./static")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	resp.Body.Close()
	assert.Equal(t, float64(http.StatusOK), health["status"])
	assert.Equal(t, "OK", health["message"])
}

func TestIndexPage(t *testing.T) {
	app := mainapp.NewApp(repositories.NewInMemoryProductRepository(), nil, "./static")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.NoError(t, err)
	assert.Contains(t, string(body), "Product Store Service")
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html"))
}

func TestProductRoutesAreWired(t *testing.T) {
	app := mainapp.NewApp(repositories.NewInMemoryProductRepository(), nil, "./static")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/products", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.JSONEq(t, "[]", string(raw))
}
