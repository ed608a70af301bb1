package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/dietplan/backend/config"
	"github.com/pageza/dietplan/backend/internal/router"
	"github.com/pageza/dietplan/backend/internal/service"
	"github.com/pageza/dietplan/backend/internal/types"
)

// fakeCompletionAPI answers like a chat completions endpoint with content.
func fakeCompletionAPI(t *testing.T, content string, calls *int32, captured *service.CompletionRequest) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, "Bearer gsk-test", r.Header.Get("Authorization"))
		if captured != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		payload, _ := json.Marshal(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
		w.Header().Set("Content-Type", "application/json")
		w.Write(payload)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newApp(t *testing.T, upstreamURL string, timeout time.Duration, matchMode string) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		CompletionAPIKey:      "gsk-test",
		CompletionAPIURL:      upstreamURL,
		CompletionModel:       "llama3-70b-8192",
		CompletionTemperature: 0.2,
		CompletionTimeout:     timeout,
		ComplianceMatchMode:   matchMode,
		CORSAllowedOrigins:    []string{"*"},
	}

	matcher, err := service.NewMatcher(cfg.ComplianceMatchMode)
	require.NoError(t, err)

	completer := service.NewCompletionClient(service.CompletionConfig{
		APIKey:  cfg.CompletionAPIKey,
		APIURL:  cfg.CompletionAPIURL,
		Timeout: cfg.CompletionTimeout,
	})
	dietService := service.NewDietPlanService(completer, service.DietPlanOptions{
		Model:       cfg.CompletionModel,
		Temperature: cfg.CompletionTemperature,
		Matcher:     matcher,
	})
	return router.SetupRouter(cfg, dietService)
}

func post(app http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/diet", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func TestDietPlanEndToEnd(t *testing.T) {
	var calls int32
	var captured service.CompletionRequest
	plan := "Day 1:\n- Breakfast: poha\n- Lunch: dal and rice\n- Dinner: paneer tikka\n- Snacks: fruit"
	upstream := fakeCompletionAPI(t, plan, &calls, &captured)
	app := newApp(t, upstream.URL, 5*time.Second, service.MatchSubstring)

	w := post(app, `{"age":"30","weight":"70","history":"none"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp types.DietPlanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, plan, resp.Plan)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	assert.Equal(t, "llama3-70b-8192", captured.Model)
	assert.Equal(t, 0.2, captured.Temperature)
	require.Len(t, captured.Messages, 2)
	assert.Contains(t, captured.Messages[0].Content, "specialized in veg diets")
	assert.Contains(t, captured.Messages[1].Content, "STRICT DIETARY RULES (VEGETARIAN)")
	assert.Contains(t, captured.Messages[1].Content, "- Weight: 70 kg")
}

func TestDietPlanVeganCheeseScenario(t *testing.T) {
	var calls int32
	upstream := fakeCompletionAPI(t, "Day 1:\n- Breakfast: toast with cheese spread", &calls, nil)
	app := newApp(t, upstream.URL, 5*time.Second, service.MatchSubstring)

	w := post(app, `{"age":30,"weight":70,"history":"none","dietType":"vegan"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "non-vegan items")
}

func TestDietPlanMissingHistoryScenario(t *testing.T) {
	var calls int32
	upstream := fakeCompletionAPI(t, "unused", &calls, nil)
	app := newApp(t, upstream.URL, 5*time.Second, service.MatchSubstring)

	w := post(app, `{"age":30,"weight":70}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing required fields")
	assert.EqualValues(t, 0, atomic.LoadInt32(&calls))
}

func TestDietPlanNonStringDietTypeScenario(t *testing.T) {
	var calls int32
	upstream := fakeCompletionAPI(t, "unused", &calls, nil)
	app := newApp(t, upstream.URL, 5*time.Second, service.MatchSubstring)

	w := post(app, `{"age":30,"weight":70,"history":"none","dietType":5}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "dietType must be a string", resp.Error)
	assert.EqualValues(t, 0, atomic.LoadInt32(&calls))
}

func TestDietPlanPreflightScenario(t *testing.T) {
	var calls int32
	upstream := fakeCompletionAPI(t, "unused", &calls, nil)
	app := newApp(t, upstream.URL, 5*time.Second, service.MatchSubstring)

	req := httptest.NewRequest(http.MethodOptions, "/api/diet", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.EqualValues(t, 0, atomic.LoadInt32(&calls))
}

func TestDietPlanWordMatchMode(t *testing.T) {
	var calls int32
	upstream := fakeCompletionAPI(t, "Day 1:\n- Snacks: butterscotch oat cookies", &calls, nil)
	body := `{"age":30,"weight":70,"history":"none","dietType":"vegan"}`

	w := post(newApp(t, upstream.URL, 5*time.Second, service.MatchSubstring), body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(newApp(t, upstream.URL, 5*time.Second, service.MatchWord), body)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDietPlanUpstreamFailures(t *testing.T) {
	body := `{"age":30,"weight":70,"history":"none"}`

	t.Run("status is relayed", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"error":{"message":"Rate limit reached"}}`)
		}))
		defer upstream.Close()

		w := post(newApp(t, upstream.URL, 5*time.Second, service.MatchSubstring), body)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "Rate limit reached")
	})

	t.Run("slow upstream times out", func(t *testing.T) {
		release := make(chan struct{})
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer upstream.Close()
		defer close(release)

		w := post(newApp(t, upstream.URL, 50*time.Millisecond, service.MatchSubstring), body)

		assert.Equal(t, http.StatusGatewayTimeout, w.Code)
		assert.Contains(t, w.Body.String(), "timed out")
	})

	t.Run("null content is a 500, not an empty plan", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":null}}]}`)
		}))
		defer upstream.Close()

		w := post(newApp(t, upstream.URL, 5*time.Second, service.MatchSubstring), `{"age":30,"weight":70,"history":"none","dietType":"nonveg"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), `"plan"`)
	})

	t.Run("malformed upstream body is a 500", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<html>bad gateway</html>`)
		}))
		defer upstream.Close()

		w := post(newApp(t, upstream.URL, 5*time.Second, service.MatchSubstring), body)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "An error occurred")
	})
}
