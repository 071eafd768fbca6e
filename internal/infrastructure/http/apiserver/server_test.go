package apiserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	aiapp "github.com/savory/api/internal/application/ai"
	pantryapp "github.com/savory/api/internal/application/pantry"
	recipeapp "github.com/savory/api/internal/application/recipe"
	"github.com/savory/api/internal/domain/pantry"
	"github.com/savory/api/internal/domain/recipe"
	"github.com/savory/api/internal/infrastructure/config"
	"github.com/savory/api/internal/infrastructure/monitoring"
	"github.com/savory/api/internal/infrastructure/persistence/memory"
	"github.com/savory/api/internal/ports/inbound"
	"github.com/savory/api/internal/ports/outbound"
	"github.com/savory/api/pkg/healthcheck"
	"github.com/savory/api/test/testutils"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "savory", Environment: "test"},
		Server: config.ServerConfig{
			Host:           "127.0.0.1",
			Port:           0,
			RequestTimeout: 5 * time.Second,
			MaxBodyBytes:   1 << 20,
		},
		Monitoring: config.MonitoringConfig{EnableMetrics: true, MetricsPath: "/metrics"},
	}
}

func newTestServer(t *testing.T, completer outbound.ChatCompleter) *Server {
	t.Helper()
	logger := zap.NewNop()
	cfg := testConfig()

	recipes := memory.NewRecipeRepository()
	items := memory.NewPantryRepository()
	cache := memory.NewCacheRepository()
	t.Cleanup(func() { _ = cache.Close() })
	metrics := monitoring.NewMetricsCollector(logger)

	health := healthcheck.New("test", logger)
	health.Register("cache", healthcheck.NewPingChecker(cache.Ping))

	server, err := NewServer(
		cfg,
		logger,
		recipeapp.NewRecipeService(recipes, items, logger),
		pantryapp.NewPantryService(items, logger),
		aiapp.NewCopilotService(completer, cache, metrics, aiapp.Config{}, logger),
		health,
		metrics,
	)
	require.NoError(t, err)
	return server
}

// APITestSuite exercises the router end to end against in-memory stores
type APITestSuite struct {
	suite.Suite
	server *Server
	http   *testutils.HTTPAssertions
}

func (suite *APITestSuite) SetupTest() {
	suite.server = newTestServer(suite.T(), nil)
	suite.http = testutils.NewHTTPAssertions(suite.T())
}

func (suite *APITestSuite) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(suite.T(), json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	suite.server.Handler().ServeHTTP(rec, req)
	return rec
}

func (suite *APITestSuite) createToast() recipe.Recipe {
	rec := suite.do(http.MethodPost, "/recipes", map[string]interface{}{
		"title":       "Toast",
		"ingredients": []map[string]interface{}{{"name": "bread"}},
		"steps":       []map[string]interface{}{{"index": 5, "instruction": "Toast it"}},
		"tags":        []string{"Breakfast"},
	})
	suite.http.StatusCode(rec, http.StatusCreated)

	var created recipe.Recipe
	suite.http.JSONResponse(rec, &created)
	return created
}

func (suite *APITestSuite) TestHealth() {
	rec := suite.do(http.MethodGet, "/health", nil)
	suite.http.StatusCode(rec, http.StatusOK)
	assert.JSONEq(suite.T(), `{"status":"ok"}`, rec.Body.String())

	rec = suite.do(http.MethodGet, "/ready", nil)
	suite.http.StatusCode(rec, http.StatusOK)
}

func (suite *APITestSuite) TestToastLifecycle() {
	created := suite.createToast()
	assert.NotEmpty(suite.T(), created.ID)
	assert.Equal(suite.T(), 0, created.Steps[0].Index)
	assert.Equal(suite.T(), created.CreatedAt, created.UpdatedAt)

	rec := suite.do(http.MethodPost, "/pantry", map[string]interface{}{"name": "  Bread ", "haveState": "have"})
	suite.http.StatusCode(rec, http.StatusCreated)
	var item pantry.Item
	suite.http.JSONResponse(rec, &item)
	assert.Equal(suite.T(), "Bread", item.Name)

	rec = suite.do(http.MethodGet, "/recipes/suggestions", nil)
	suite.http.StatusCode(rec, http.StatusOK)
	var suggestions struct {
		Suggestions []struct {
			Recipe             recipe.Recipe `json:"recipe"`
			MatchPercent       int           `json:"matchPercent"`
			MissingIngredients []string      `json:"missingIngredients"`
		} `json:"suggestions"`
	}
	suite.http.JSONResponse(rec, &suggestions)
	require.Len(suite.T(), suggestions.Suggestions, 1)
	assert.Equal(suite.T(), 100, suggestions.Suggestions[0].MatchPercent)
	assert.NotNil(suite.T(), suggestions.Suggestions[0].MissingIngredients)
	assert.Empty(suite.T(), suggestions.Suggestions[0].MissingIngredients)

	rec = suite.do(http.MethodGet, "/recipes/"+created.ID, nil)
	suite.http.StatusCode(rec, http.StatusOK)

	rec = suite.do(http.MethodDelete, "/recipes/"+created.ID, nil)
	suite.http.StatusCode(rec, http.StatusNoContent)

	rec = suite.do(http.MethodDelete, "/recipes/"+created.ID, nil)
	suite.http.StatusCode(rec, http.StatusNotFound)
	suite.http.ErrorResponse(rec, "RECIPE_NOT_FOUND")

	rec = suite.do(http.MethodGet, "/recipes/"+created.ID, nil)
	suite.http.StatusCode(rec, http.StatusNotFound)
}

func (suite *APITestSuite) TestCreateRecipe_Validation() {
	rec := suite.do(http.MethodPost, "/recipes", map[string]interface{}{"title": "Toast"})
	suite.http.StatusCode(rec, http.StatusBadRequest)
	body := suite.http.ErrorResponse(rec, "VALIDATION_FAILED")
	assert.Contains(suite.T(), body["error"], "ingredients is required")

	rec = suite.do(http.MethodPost, "/recipes", nil)
	suite.http.StatusCode(rec, http.StatusBadRequest)
	suite.http.ErrorResponse(rec, "BAD_REQUEST")
}

func (suite *APITestSuite) TestUpdateRecipe() {
	created := suite.createToast()

	rec := suite.do(http.MethodPut, "/recipes/"+created.ID, map[string]interface{}{"title": "French Toast"})
	suite.http.StatusCode(rec, http.StatusOK)
	var updated recipe.Recipe
	suite.http.JSONResponse(rec, &updated)
	assert.Equal(suite.T(), "French Toast", updated.Title)
	assert.Equal(suite.T(), created.ID, updated.ID)
	assert.Equal(suite.T(), created.Ingredients, updated.Ingredients)
	assert.True(suite.T(), created.CreatedAt.Equal(updated.CreatedAt))

	rec = suite.do(http.MethodPut, "/recipes/"+created.ID, map[string]interface{}{"title": ""})
	suite.http.StatusCode(rec, http.StatusBadRequest)

	rec = suite.do(http.MethodPut, "/recipes/missing", map[string]interface{}{"title": "x"})
	suite.http.StatusCode(rec, http.StatusNotFound)
}

func (suite *APITestSuite) TestSearch() {
	suite.createToast()

	rec := suite.do(http.MethodGet, "/recipes/search?tag=breakfast&q=BREAD", nil)
	suite.http.StatusCode(rec, http.StatusOK)
	var body struct {
		Recipes []recipe.Recipe `json:"recipes"`
	}
	suite.http.JSONResponse(rec, &body)
	assert.Len(suite.T(), body.Recipes, 1)

	rec = suite.do(http.MethodGet, "/recipes/search?maxTimeMinutes=", nil)
	suite.http.StatusCode(rec, http.StatusOK)

	rec = suite.do(http.MethodGet, "/recipes/search?maxTimeMinutes=soon", nil)
	suite.http.StatusCode(rec, http.StatusBadRequest)
	suite.http.ErrorResponse(rec, "VALIDATION_FAILED")
}

func (suite *APITestSuite) TestPantry() {
	rec := suite.do(http.MethodPost, "/pantry", map[string]interface{}{"name": "rice", "haveState": "maybe"})
	suite.http.StatusCode(rec, http.StatusBadRequest)

	rec = suite.do(http.MethodPost, "/pantry", map[string]interface{}{"name": "rice", "haveState": "dont_have"})
	suite.http.StatusCode(rec, http.StatusCreated)
	var item pantry.Item
	suite.http.JSONResponse(rec, &item)

	rec = suite.do(http.MethodGet, "/pantry", nil)
	suite.http.StatusCode(rec, http.StatusOK)
	var list struct {
		Pantry []pantry.Item `json:"pantry"`
	}
	suite.http.JSONResponse(rec, &list)
	assert.Len(suite.T(), list.Pantry, 1)

	rec = suite.do(http.MethodDelete, "/pantry/"+item.ID, nil)
	suite.http.StatusCode(rec, http.StatusNoContent)
	rec = suite.do(http.MethodDelete, "/pantry/"+item.ID, nil)
	suite.http.StatusCode(rec, http.StatusNotFound)
}

func (suite *APITestSuite) TestChat_Fallback() {
	rec := suite.do(http.MethodPost, "/ai/chat", map[string]interface{}{
		"messages": []map[string]string{{"role": "user", "content": "Can I substitute oyster sauce?"}},
		"context":  map[string]interface{}{"recipeTitle": "Chicken Stir Fry"},
	})
	suite.http.StatusCode(rec, http.StatusOK)

	var reply inbound.ChatReply
	suite.http.JSONResponse(rec, &reply)
	assert.Equal(suite.T(), "fallback", string(reply.Mode))
	assert.Contains(suite.T(), reply.Message, "Substitution")
	assert.Contains(suite.T(), reply.Message, "(Recipe: Chicken Stir Fry)")
}

func (suite *APITestSuite) TestChat_InvalidInput() {
	rec := suite.do(http.MethodPost, "/ai/chat", map[string]interface{}{
		"messages": []map[string]string{{"role": "system", "content": "hi"}},
	})
	suite.http.StatusCode(rec, http.StatusBadRequest)
	suite.http.ErrorResponse(rec, "VALIDATION_FAILED")

	rec = suite.do(http.MethodPost, "/ai/chat", map[string]interface{}{"messages": []interface{}{}})
	suite.http.StatusCode(rec, http.StatusBadRequest)
}

func (suite *APITestSuite) TestMetricsEndpoint() {
	suite.do(http.MethodGet, "/health", nil)
	rec := suite.do(http.MethodGet, "/metrics", nil)
	suite.http.StatusCode(rec, http.StatusOK)
	assert.Contains(suite.T(), rec.Body.String(), "http_requests_total")
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

func chatRequest(t *testing.T, server *Server) *httptest.ResponseRecorder {
	t.Helper()
	body := `{"messages":[{"role":"user","content":"How long do I rest the dough?"}]}`
	req := httptest.NewRequest(http.MethodPost, "/ai/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

func TestChat_LiveAndFailures(t *testing.T) {
	ha := testutils.NewHTTPAssertions(t)

	t.Run("live", func(t *testing.T) {
		completer := testutils.NewMockChatCompleter("openai")
		completer.On("Complete", mock.Anything, mock.Anything).Return("Rest it 30 minutes.", nil)

		rec := chatRequest(t, newTestServer(t, completer))

		ha.StatusCode(rec, http.StatusOK)
		var reply inbound.ChatReply
		ha.JSONResponse(rec, &reply)
		assert.Equal(t, "live", string(reply.Mode))
		assert.Equal(t, "Rest it 30 minutes.", reply.Message)
	})

	t.Run("quota degrades to fallback", func(t *testing.T) {
		completer := testutils.NewMockChatCompleter("openai")
		completer.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("API error 429: quota exceeded"))

		rec := chatRequest(t, newTestServer(t, completer))

		ha.StatusCode(rec, http.StatusOK)
		var reply inbound.ChatReply
		ha.JSONResponse(rec, &reply)
		assert.Equal(t, "fallback", string(reply.Mode))
		assert.NotEmpty(t, reply.Message)
	})

	t.Run("unhandled failure is a 500 with detail", func(t *testing.T) {
		completer := testutils.NewMockChatCompleter("openai")
		completer.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("API error 500: upstream exploded"))

		rec := chatRequest(t, newTestServer(t, completer))

		ha.StatusCode(rec, http.StatusInternalServerError)
		body := ha.ErrorResponse(rec, "EXTERNAL_SERVICE_ERROR")
		assert.Equal(t, "AI chat failed", body["error"])
		assert.Contains(t, body["detail"], "upstream exploded")
	})
}
