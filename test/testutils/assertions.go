// Package testutils provides custom assertion helpers for testing
package testutils

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savory/api/internal/domain/recipe"
)

// RecipeAssertions provides recipe-specific assertion methods
type RecipeAssertions struct {
	t *testing.T
}

// NewRecipeAssertions creates a new recipe assertions helper
func NewRecipeAssertions(t *testing.T) *RecipeAssertions {
	return &RecipeAssertions{t: t}
}

// ValidRecipe asserts that a recipe is valid
func (ra *RecipeAssertions) ValidRecipe(r *recipe.Recipe, msgAndArgs ...interface{}) {
	require.NotNil(ra.t, r, "Recipe should not be nil")
	assert.NotEmpty(ra.t, r.ID, msgAndArgs...)
	assert.NotEmpty(ra.t, strings.TrimSpace(r.Title), msgAndArgs...)
	assert.NotEmpty(ra.t, r.Ingredients, msgAndArgs...)
	assert.NotZero(ra.t, r.CreatedAt, msgAndArgs...)
	assert.False(ra.t, r.UpdatedAt.Before(r.CreatedAt), msgAndArgs...)
	ra.StepsContiguous(r, msgAndArgs...)
}

// StepsContiguous asserts that step indices run 0..n-1 in order
func (ra *RecipeAssertions) StepsContiguous(r *recipe.Recipe, msgAndArgs ...interface{}) {
	for i, s := range r.Steps {
		assert.Equal(ra.t, i, s.Index, msgAndArgs...)
	}
}

// HTTPAssertions provides HTTP-specific assertion methods
type HTTPAssertions struct {
	t *testing.T
}

// NewHTTPAssertions creates a new HTTP assertions helper
func NewHTTPAssertions(t *testing.T) *HTTPAssertions {
	return &HTTPAssertions{t: t}
}

// StatusCode asserts the HTTP status code
func (ha *HTTPAssertions) StatusCode(rec *httptest.ResponseRecorder, expectedCode int) {
	require.NotNil(ha.t, rec, "Response should not be nil")
	require.Equal(ha.t, expectedCode, rec.Code, "body: %s", rec.Body.String())
}

// JSONResponse asserts that the response is valid JSON and unmarshals it
func (ha *HTTPAssertions) JSONResponse(rec *httptest.ResponseRecorder, target interface{}) {
	require.NotNil(ha.t, rec, "Response should not be nil")
	contentType := rec.Header().Get("Content-Type")
	assert.True(ha.t, strings.Contains(contentType, "application/json"),
		"Response should have JSON content type, got: %s", contentType)
	require.NoError(ha.t, json.Unmarshal(rec.Body.Bytes(), target), "Response should be valid JSON")
}

// ErrorResponse asserts that the response carries an error body with the given code
func (ha *HTTPAssertions) ErrorResponse(rec *httptest.ResponseRecorder, expectedCode string) map[string]interface{} {
	var body map[string]interface{}
	ha.JSONResponse(rec, &body)
	assert.Contains(ha.t, body, "error")
	if expectedCode != "" {
		assert.Equal(ha.t, expectedCode, body["code"])
	}
	return body
}
