package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvalente/go-correction-engine/config"
	"github.com/mvalente/go-correction-engine/internal/dictionary"
	"github.com/mvalente/go-correction-engine/internal/engine"
	"github.com/mvalente/go-correction-engine/services"
)

func setupTestEngine(t *testing.T, words ...string) *engine.Engine {
	t.Helper()

	dataDir := t.TempDir()
	shardDir := filepath.Join(dataDir, "shards")

	if len(words) > 0 {
		listPath := filepath.Join(dataDir, "words.txt")
		content := ""
		for _, w := range words {
			content += w + "\n"
		}
		require.NoError(t, os.WriteFile(listPath, []byte(content), 0600))
		_, err := dictionary.CompileShards(listPath, shardDir, nil)
		require.NoError(t, err)
	}

	settings := config.EngineSettings{ShardDir: shardDir, ShardCacheSize: 60}
	eng := engine.NewEngine(dataDir, settings, nil)
	t.Cleanup(eng.Stop)
	return eng
}

func setupTestRouter(eng *engine.Engine) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, eng)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheckHandler(t *testing.T) {
	router := setupTestRouter(setupTestEngine(t))

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "go-correction-engine", body["service"])
}

func TestSuggestHandler(t *testing.T) {
	router := setupTestRouter(setupTestEngine(t, "the", "ten", "tea"))

	w := doJSON(t, router, http.MethodPost, "/corrections", services.CorrectionRequest{Word: "teh"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp services.CorrectionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Suggestions)
	assert.Equal(t, "the", resp.Suggestions[0].Text)
	assert.NotEmpty(t, resp.QueryID)
}

func TestSuggestHandlerEmptyResultIsOK(t *testing.T) {
	router := setupTestRouter(setupTestEngine(t, "the"))

	w := doJSON(t, router, http.MethodPost, "/corrections", services.CorrectionRequest{Word: "zzq"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp services.CorrectionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Suggestions)
	assert.Empty(t, resp.Suggestions)
}

func TestSuggestHandlerValidation(t *testing.T) {
	router := setupTestRouter(setupTestEngine(t, "the"))

	tests := []struct {
		name string
		body interface{}
	}{
		{"missing word", services.CorrectionRequest{Context: "hello"}},
		{"blank word", services.CorrectionRequest{Word: "   "}},
		{"malformed json", "not json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w *httptest.ResponseRecorder
			if s, isString := tt.body.(string); isString {
				req := httptest.NewRequest(http.MethodPost, "/corrections", bytes.NewReader([]byte(s)))
				req.Header.Set("Content-Type", "application/json")
				w = httptest.NewRecorder()
				router.ServeHTTP(w, req)
			} else {
				w = doJSON(t, router, http.MethodPost, "/corrections", tt.body)
			}
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestSentenceLifecycleHandlers(t *testing.T) {
	router := setupTestRouter(setupTestEngine(t, "went"))

	// Record a correction.
	w := doJSON(t, router, http.MethodPost, "/sentences/s1/corrections", AddCorrectionRequest{
		OriginalWord: "wnet",
		CorrectedTo:  "went",
		Position:     1,
		Confidence:   0.9,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var addResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &addResp))
	assert.Equal(t, true, addResp["stored"])

	// List it back.
	w = doJSON(t, router, http.MethodGet, "/sentences/s1/corrections", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listResp struct {
		Corrections []map[string]interface{} `json:"corrections"`
		Total       int                      `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Equal(t, 1, listResp.Total)

	// Complete the sentence.
	w = doJSON(t, router, http.MethodPost, "/sentences/s1/complete", CompleteSentenceRequest{Text: "i went home"})
	require.Equal(t, http.StatusOK, w.Code)
	var completeResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &completeResp))
	assert.Equal(t, true, completeResp["completed"])

	// Revalidate it.
	w = doJSON(t, router, http.MethodPost, "/sentences/s1/revalidate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var revalResp struct {
		Revalidated bool `json:"revalidated"`
		Record      struct {
			State string `json:"state"`
		} `json:"record"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &revalResp))
	assert.True(t, revalResp.Revalidated)
	assert.Equal(t, "revalidated", revalResp.Record.State)
}

func TestSentenceHandlersUnknownID(t *testing.T) {
	router := setupTestRouter(setupTestEngine(t))

	// Unknown ids are valid, empty results rather than errors.
	w := doJSON(t, router, http.MethodGet, "/sentences/ghost/corrections", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listResp struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Equal(t, 0, listResp.Total)

	w = doJSON(t, router, http.MethodPost, "/sentences/ghost/complete", CompleteSentenceRequest{Text: "text"})
	require.Equal(t, http.StatusOK, w.Code)
	var completeResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &completeResp))
	assert.Equal(t, false, completeResp["completed"])

	w = doJSON(t, router, http.MethodPost, "/sentences/ghost/revalidate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var revalResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &revalResp))
	assert.Equal(t, false, revalResp["revalidated"])
}

func TestAddCorrectionHandlerValidation(t *testing.T) {
	router := setupTestRouter(setupTestEngine(t))

	w := doJSON(t, router, http.MethodPost, "/sentences/s1/corrections", AddCorrectionRequest{
		OriginalWord: "wnet",
		CorrectedTo:  "went",
		Position:     -1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/sentences/s1/corrections", map[string]interface{}{
		"original_word": "wnet",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomWordHandlersWithoutRedis(t *testing.T) {
	router := setupTestRouter(setupTestEngine(t))

	w := doJSON(t, router, http.MethodPost, "/dictionary/custom-words", CustomWordRequest{Word: "kubectl"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/dictionary/custom-words/kubectl", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetJobHandlerNotFound(t *testing.T) {
	router := setupTestRouter(setupTestEngine(t))

	w := doJSON(t, router, http.MethodGet, "/jobs/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, ErrorCodeJobNotFound, apiErr.Code)
}

func TestCompileShardsHandler(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)

	listPath := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(listPath, []byte("went\n"), 0600))

	w := doJSON(t, router, http.MethodPost, "/dictionary/compile", DictionarySourceRequest{Path: listPath})
	require.Equal(t, http.StatusAccepted, w.Code)

	var accepted struct {
		JobID string `json:"job_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &accepted))
	require.NotEmpty(t, accepted.JobID)

	// Poll the job endpoint until the compile finishes.
	deadline := time.Now().Add(5 * time.Second)
	for {
		w = doJSON(t, router, http.MethodGet, "/jobs/"+accepted.JobID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var job struct {
			Status string `json:"status"`
			Error  string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))
		if job.Status == "completed" {
			break
		}
		if job.Status == "failed" {
			t.Fatalf("compile job failed: %s", job.Error)
		}
		if time.Now().After(deadline) {
			t.Fatal("compile job did not finish in time")
		}
		time.Sleep(10 * time.Millisecond)
	}

	// The compiled dictionary serves suggestions immediately.
	w = doJSON(t, router, http.MethodPost, "/corrections", services.CorrectionRequest{Word: "wnet"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp services.CorrectionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Suggestions)
	assert.Equal(t, "went", resp.Suggestions[0].Text)
}

func TestTrainNgramsHandlerValidation(t *testing.T) {
	router := setupTestRouter(setupTestEngine(t))

	w := doJSON(t, router, http.MethodPost, "/dictionary/train", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAnalyticsHandler(t *testing.T) {
	router := setupTestRouter(setupTestEngine(t, "the"))

	doJSON(t, router, http.MethodPost, "/corrections", services.CorrectionRequest{Word: "teh"})

	w := doJSON(t, router, http.MethodGet, "/analytics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var report struct {
		TotalRequests int `json:"total_requests"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 1, report.TotalRequests)
}
