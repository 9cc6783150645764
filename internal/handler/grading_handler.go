package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/AlzProject/backend/internal/middleware"
	"github.com/AlzProject/backend/internal/model"
	"github.com/AlzProject/backend/internal/response"
	"github.com/AlzProject/backend/internal/service"
	"github.com/AlzProject/backend/internal/validator"
)

// GradingHandler handles the grading endpoints.
type GradingHandler struct {
	attemptService *service.AttemptService
}

// NewGradingHandler creates a new GradingHandler.
func NewGradingHandler(attemptService *service.AttemptService) *GradingHandler {
	return &GradingHandler{attemptService: attemptService}
}

// AutoGrade godoc
// POST /api/v1/grading/auto
// Runs an auto-grading pass over an attempt's responses.
func (h *GradingHandler) AutoGrade(c *gin.Context) {
	var req model.AutoGradeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.attemptService.AutoGradeAttempt(c.Request.Context(), req.AttemptID)
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ManualGrade godoc
// POST /api/v1/grading/manual
// Records a human-assigned score for a single response.
func (h *GradingHandler) ManualGrade(c *gin.Context) {
	var req model.ManualGradeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	score, err := decimal.NewFromString(req.Score)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidScore)
		return
	}

	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	resp, err := h.attemptService.GradeResponse(c.Request.Context(), req.ResponseID, score, claims.UserID, req.Comment)
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"response": resp})
}
