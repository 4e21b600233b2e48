package rest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-advisor/internal/config"
	"github.com/rocketscienceinc/tictactoe-advisor/internal/entity"
	"github.com/rocketscienceinc/tictactoe-advisor/internal/service"
	"github.com/rocketscienceinc/tictactoe-advisor/internal/usecase"
)

const testAPIKey = "secret"

func newTestHandler(t *testing.T, apiKey string) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	conf := &config.Config{
		APIKey: apiKey,
		CORS:   config.CORS{AllowOrigins: []string{"*"}},
	}
	advisor := usecase.NewAdvisorUseCase(logger, service.NewBotService(logger), nil)

	return NewHandler(logger, conf, advisor)
}

func doRequest(handler http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func withKey() map[string]string {
	return map[string]string{APIKeyHeader: testAPIKey}
}

func TestOptimalMoveHandler(t *testing.T) {
	handler := newTestHandler(t, testAPIKey)

	t.Run("X completes the top row", func(t *testing.T) {
		// Given: X can win on cell 2
		body := `{"state": ["X","X",null,"O","O",null,null,null,null]}`

		// When: requesting the minimax move
		rec := doRequest(handler, http.MethodPost, "/api/ai-move/minmax", body, withKey())

		// Then: cell 2 is returned for player X with a winning value
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ai_move": 2, "player": "X", "value": 1}`, rec.Body.String())
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	})

	t.Run("Empty board draws", func(t *testing.T) {
		body := `{"state": [null,null,null,null,null,null,null,null,null]}`

		rec := doRequest(handler, http.MethodPost, "/api/ai-move/minmax", body, withKey())

		require.Equal(t, http.StatusOK, rec.Code)

		var resp OptimalMoveResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.AIMove)
		assert.Equal(t, entity.PlayerX, resp.Player)
		assert.Equal(t, entity.Draw, resp.Value)
	})

	t.Run("Full board returns null", func(t *testing.T) {
		body := `{"state": ["X","O","X","X","O","O","O","X","X"]}`

		rec := doRequest(handler, http.MethodPost, "/api/ai-move/minmax", body, withKey())

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ai_move": null, "player": "O", "value": 0}`, rec.Body.String())
	})

	t.Run("Wrong method", func(t *testing.T) {
		rec := doRequest(handler, http.MethodGet, "/api/ai-move/minmax", "", withKey())

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestRandomMoveHandler(t *testing.T) {
	handler := newTestHandler(t, testAPIKey)

	t.Run("Returns an empty cell", func(t *testing.T) {
		// Given: only cells 6 and 8 are empty
		body := `{"state": ["X","O","X","X","O","O",null,"X",null]}`

		// When: requesting a random move
		rec := doRequest(handler, http.MethodPost, "/api/ai-move/random", body, withKey())

		// Then: one of the empty cells is returned
		require.Equal(t, http.StatusOK, rec.Code)

		var resp RandomMoveResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.AIMove)
		assert.Contains(t, []int{6, 8}, *resp.AIMove)
	})

	t.Run("Full board returns null", func(t *testing.T) {
		body := `{"state": ["X","O","X","X","O","O","O","X","X"]}`

		rec := doRequest(handler, http.MethodPost, "/api/ai-move/random", body, withKey())

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ai_move": null}`, rec.Body.String())
	})
}

func TestBoardValidation(t *testing.T) {
	handler := newTestHandler(t, testAPIKey)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"malformed json", `{"state": [`, http.StatusBadRequest},
		{"missing state", `{}`, http.StatusUnprocessableEntity},
		{"too few cells", `{"state": [null,null,null]}`, http.StatusUnprocessableEntity},
		{"too many cells", `{"state": [null,null,null,null,null,null,null,null,null,null]}`, http.StatusUnprocessableEntity},
		{"unknown mark", `{"state": ["Z",null,null,null,null,null,null,null,null]}`, http.StatusUnprocessableEntity},
		{"lowercase mark", `{"state": ["x",null,null,null,null,null,null,null,null]}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, path := range []string{"/api/ai-move/random", "/api/ai-move/minmax"} {
				rec := doRequest(handler, http.MethodPost, path, tt.body, withKey())
				assert.Equal(t, tt.status, rec.Code, path)
			}
		})
	}
}

func TestAPIKey(t *testing.T) {
	body := `{"state": [null,null,null,null,null,null,null,null,null]}`

	t.Run("Missing key is rejected", func(t *testing.T) {
		handler := newTestHandler(t, testAPIKey)

		rec := doRequest(handler, http.MethodPost, "/api/ai-move/random", body, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Wrong key is rejected", func(t *testing.T) {
		handler := newTestHandler(t, testAPIKey)

		rec := doRequest(handler, http.MethodPost, "/api/ai-move/minmax", body, map[string]string{APIKeyHeader: "nope"})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Check is disabled without a configured key", func(t *testing.T) {
		handler := newTestHandler(t, "")

		rec := doRequest(handler, http.MethodPost, "/api/ai-move/random", body, nil)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Ping needs no key", func(t *testing.T) {
		handler := newTestHandler(t, testAPIKey)

		rec := doRequest(handler, http.MethodGet, "/ping", "", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "pong", rec.Body.String())
	})
}

func TestCORS(t *testing.T) {
	handler := newTestHandler(t, testAPIKey)

	t.Run("Preflight is answered without a key", func(t *testing.T) {
		// Given: a browser preflight request
		headers := map[string]string{
			"Origin":                         "https://game.example.com",
			"Access-Control-Request-Method":  http.MethodPost,
			"Access-Control-Request-Headers": "x_api_key,content-type",
		}

		// When: it reaches the server
		rec := doRequest(handler, http.MethodOptions, "/api/ai-move/minmax", "", headers)

		// Then: the CORS headers allow the request
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, POST", rec.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "x_api_key,content-type", rec.Header().Get("Access-Control-Allow-Headers"))
	})

	t.Run("Listed origin is echoed back", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		conf := &config.Config{CORS: config.CORS{AllowOrigins: []string{"https://game.example.com"}}}
		handler := NewHandler(logger, conf, usecase.NewAdvisorUseCase(logger, service.NewBotService(logger), nil))

		rec := doRequest(handler, http.MethodGet, "/ping", "", map[string]string{"Origin": "https://game.example.com"})

		assert.Equal(t, "https://game.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

		rec = doRequest(handler, http.MethodGet, "/ping", "", map[string]string{"Origin": "https://evil.example.com"})

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestID(t *testing.T) {
	handler := newTestHandler(t, testAPIKey)

	t.Run("Generated when missing", func(t *testing.T) {
		rec := doRequest(handler, http.MethodGet, "/ping", "", nil)

		assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
	})

	t.Run("Propagated when present", func(t *testing.T) {
		rec := doRequest(handler, http.MethodGet, "/ping", "", map[string]string{RequestIDHeader: "abc"})

		assert.Equal(t, "abc", rec.Header().Get(RequestIDHeader))
	})
}
