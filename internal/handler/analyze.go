package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/personalens-api/internal/service"
)

// maxUploadBytes is the upload ceiling checked before any extraction work
const maxUploadBytes = 10 * 1024 * 1024

type AnalyzeHandler struct {
	analyses *service.AnalysisService
}

func NewAnalyzeHandler(analyses *service.AnalysisService) *AnalyzeHandler {
	return &AnalyzeHandler{analyses: analyses}
}

// AnalyzeCV handles POST /analyze/cv
// Accepts a PDF via multipart form, extracts text, scores it, persists the
// result under the authenticated user and returns the full analysis
func (h *AnalyzeHandler) AnalyzeCV(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	// Validate file type
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please upload a PDF file"})
		return
	}

	// Limit to 10MB
	if header.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds 10MB limit"})
		return
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}

	// Validate PDF magic bytes (header must start with %PDF)
	if len(fileBytes) < 4 || string(fileBytes[:4]) != "%PDF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid PDF file"})
		return
	}

	text, err := service.ExtractPDFText(fileBytes)
	if err != nil {
		log.Error().Err(err).Str("filename", header.Filename).Msg("Failed to extract text from PDF")
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Could not extract text from this PDF. It may be image-based or corrupted.",
		})
		return
	}

	result, err := h.analyses.Analyze(c.Request.Context(), text, header.Filename, userID)
	if errors.Is(err, service.ErrNoText) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "No text was found in this PDF. It may be image-based (scanned). Try a text-based PDF.",
		})
		return
	}
	if err != nil {
		log.Error().Err(err).Str("filename", header.Filename).Msg("CV analysis failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed. Please try again."})
		return
	}

	c.JSON(http.StatusOK, result)
}

// History handles GET /analyze/history
// Returns the user's past analyses newest-first as summaries
func (h *AnalyzeHandler) History(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	history, err := h.analyses.History(c.Request.Context(), userID, limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch analysis history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analysis history"})
		return
	}

	c.JSON(http.StatusOK, history)
}

// GetAnalysis handles GET /analyze/:id
func (h *AnalyzeHandler) GetAnalysis(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	analysis, err := h.analyses.GetByID(c.Request.Context(), c.Param("id"), userID)
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch analysis")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analysis"})
		return
	}

	c.JSON(http.StatusOK, analysis)
}
