package api

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mvalente/go-correction-engine/internal/engine"
	apperrors "github.com/mvalente/go-correction-engine/internal/errors"
	"github.com/mvalente/go-correction-engine/model"
	"github.com/mvalente/go-correction-engine/services"
)

// API holds dependencies for API handlers, primarily the correction engine.
type API struct {
	engine *engine.Engine
}

// NewAPI creates a new API handler structure.
func NewAPI(eng *engine.Engine) *API {
	return &API{engine: eng}
}

// SetupRoutes defines all the API routes for the correction engine.
func SetupRoutes(router *gin.Engine, eng *engine.Engine) {
	apiHandler := NewAPI(eng)

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Analytics route
	router.GET("/analytics", apiHandler.GetAnalyticsHandler)

	// Correction route
	router.POST("/corrections", apiHandler.SuggestHandler)

	// Sentence ledger routes
	sentenceRoutes := router.Group("/sentences")
	{
		sentenceRoutes.POST("/:sentenceId/corrections", apiHandler.AddCorrectionHandler) // Record an applied correction
		sentenceRoutes.GET("/:sentenceId/corrections", apiHandler.GetCorrectionsHandler) // List recorded corrections
		sentenceRoutes.POST("/:sentenceId/complete", apiHandler.CompleteSentenceHandler) // Freeze the sentence text
		sentenceRoutes.POST("/:sentenceId/revalidate", apiHandler.RevalidateHandler)     // Rerun consistency checks
	}

	// Dictionary management routes
	dictRoutes := router.Group("/dictionary")
	{
		dictRoutes.POST("/compile", apiHandler.CompileShardsHandler)                    // Rebuild shard files from a word list
		dictRoutes.POST("/train", apiHandler.TrainNgramsHandler)                        // Train context tables from a corpus
		dictRoutes.POST("/custom-words", apiHandler.AddCustomWordHandler)               // Add a user word
		dictRoutes.DELETE("/custom-words/:word", apiHandler.RemoveCustomWordHandler)    // Remove a user word
	}

	// Job management routes
	router.GET("/jobs/:jobId", apiHandler.GetJobHandler)
}

// SuggestHandler handles correction suggestion requests.
// Request Body: services.CorrectionRequest
func (api *API) SuggestHandler(c *gin.Context) {
	var req services.CorrectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if strings.TrimSpace(req.Word) == "" {
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "word is required")
		return
	}

	resp, err := api.engine.Suggest(c.Request.Context(), req)
	if err != nil {
		SendInternalError(c, "suggestion", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AddCorrectionRequest defines the body for recording an applied correction.
type AddCorrectionRequest struct {
	OriginalWord string  `json:"original_word" binding:"required"`
	CorrectedTo  string  `json:"corrected_to" binding:"required"`
	Position     int     `json:"position"`
	Confidence   float64 `json:"confidence"`
}

// AddCorrectionHandler records a correction against a sentence. Sentences
// that have already been revalidated no longer accept corrections; the
// request is acknowledged but not stored.
func (api *API) AddCorrectionHandler(c *gin.Context) {
	sentenceID := c.Param("sentenceId")

	var req AddCorrectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	if req.Position < 0 {
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "position must be non-negative")
		return
	}

	stored := api.engine.AddCorrection(sentenceID, model.Correction{
		OriginalWord: req.OriginalWord,
		CorrectedTo:  req.CorrectedTo,
		Position:     req.Position,
		Confidence:   req.Confidence,
	})

	c.JSON(http.StatusOK, gin.H{
		"sentence_id": sentenceID,
		"stored":      stored,
	})
}

// GetCorrectionsHandler lists the corrections recorded for a sentence.
// Unknown or expired sentence ids yield an empty list, not an error.
func (api *API) GetCorrectionsHandler(c *gin.Context) {
	sentenceID := c.Param("sentenceId")
	corrections := api.engine.GetSentenceCorrections(sentenceID)

	c.JSON(http.StatusOK, gin.H{
		"sentence_id": sentenceID,
		"corrections": corrections,
		"total":       len(corrections),
	})
}

// CompleteSentenceRequest defines the body for a sentence boundary signal.
type CompleteSentenceRequest struct {
	Text string `json:"text" binding:"required"`
}

// CompleteSentenceHandler freezes the sentence text on its boundary
// signal. Unknown, expired, or already-completed sentences are a no-op.
func (api *API) CompleteSentenceHandler(c *gin.Context) {
	sentenceID := c.Param("sentenceId")

	var req CompleteSentenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	completed := api.engine.MarkComplete(sentenceID, req.Text)
	c.JSON(http.StatusOK, gin.H{
		"sentence_id": sentenceID,
		"completed":   completed,
	})
}

// RevalidateHandler reruns consistency checks for a completed sentence and
// returns the updated record. Sentences not yet complete (or unknown or
// expired) yield an empty body.
func (api *API) RevalidateHandler(c *gin.Context) {
	sentenceID := c.Param("sentenceId")

	record, ok := api.engine.Revalidate(sentenceID)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"sentence_id": sentenceID, "revalidated": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sentence_id": sentenceID,
		"revalidated": true,
		"record":      record,
	})
}

// DictionarySourceRequest defines the body for the compile and train
// endpoints: a server-local path to the source file.
type DictionarySourceRequest struct {
	Path string `json:"path" binding:"required"`
}

// CompileShardsHandler starts a background shard compilation job.
func (api *API) CompileShardsHandler(c *gin.Context) {
	var req DictionarySourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	jobID, err := api.engine.CompileShards(req.Path)
	if err != nil {
		SendJobExecutionError(c, "shard compilation", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Shard compilation started from '" + req.Path + "'",
		"job_id":  jobID,
	})
}

// TrainNgramsHandler starts a background n-gram training job.
func (api *API) TrainNgramsHandler(c *gin.Context) {
	var req DictionarySourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	jobID, err := api.engine.TrainNgrams(req.Path)
	if err != nil {
		SendJobExecutionError(c, "n-gram training", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Context model training started from '" + req.Path + "'",
		"job_id":  jobID,
	})
}

// CustomWordRequest defines the body for adding a custom word.
type CustomWordRequest struct {
	Word string `json:"word" binding:"required"`
}

// AddCustomWordHandler adds a word to the user's custom dictionary.
func (api *API) AddCustomWordHandler(c *gin.Context) {
	var req CustomWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if err := api.engine.AddCustomWord(c.Request.Context(), req.Word); err != nil {
		sendCustomWordError(c, req.Word, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Custom word '" + strings.ToLower(strings.TrimSpace(req.Word)) + "' added"})
}

// RemoveCustomWordHandler removes a word from the user's custom dictionary.
func (api *API) RemoveCustomWordHandler(c *gin.Context) {
	word := c.Param("word")

	if err := api.engine.RemoveCustomWord(c.Request.Context(), word); err != nil {
		sendCustomWordError(c, word, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Custom word '" + strings.ToLower(strings.TrimSpace(word)) + "' removed"})
}

func sendCustomWordError(c *gin.Context, word string, err error) {
	if stderrors.Is(err, apperrors.ErrDictionaryUnavailable) {
		SendError(c, http.StatusServiceUnavailable, ErrorCodeDictionaryUnavailable,
			"Custom dictionary is not configured")
		return
	}
	if strings.Contains(err.Error(), "alphabetic") {
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}
	SendInternalError(c, "custom word update for '"+word+"'", err)
}

// GetJobHandler handles requests to get job status by ID.
func (api *API) GetJobHandler(c *gin.Context) {
	jobID := c.Param("jobId")

	job, err := api.engine.GetJob(jobID)
	if err != nil {
		SendJobNotFoundError(c, jobID)
		return
	}

	c.JSON(http.StatusOK, job)
}

// GetAnalyticsHandler returns a snapshot of engine statistics.
func (api *API) GetAnalyticsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.engine.Analytics())
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "go-correction-engine",
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	})
}
