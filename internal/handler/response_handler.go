package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AlzProject/backend/internal/middleware"
	"github.com/AlzProject/backend/internal/model"
	"github.com/AlzProject/backend/internal/response"
	"github.com/AlzProject/backend/internal/service"
	"github.com/AlzProject/backend/internal/validator"
)

// ResponseHandler handles answer submission and lookup endpoints.
type ResponseHandler struct {
	responseService *service.ResponseService
	attemptService  *service.AttemptService
}

// NewResponseHandler creates a new ResponseHandler.
func NewResponseHandler(responseService *service.ResponseService, attemptService *service.AttemptService) *ResponseHandler {
	return &ResponseHandler{
		responseService: responseService,
		attemptService:  attemptService,
	}
}

// SubmitResponse godoc
// POST /api/v1/responses
// Creates or replaces the answer for (attempt, question).
func (h *ResponseHandler) SubmitResponse(c *gin.Context) {
	var req model.SubmitResponseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	// Callers normally omit the score and let grading populate it.
	var score *decimal.Decimal
	if req.Score != nil {
		parsed, err := decimal.NewFromString(*req.Score)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidScore)
			return
		}
		score = &parsed
	}

	resp, err := h.responseService.SubmitResponse(c.Request.Context(), &req, score)
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"response": resp})
}

// GetResponse godoc
// GET /api/v1/responses/:id
func (h *ResponseHandler) GetResponse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	resp, err := h.responseService.GetResponse(c.Request.Context(), id)
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"response": resp})
}

// ListResponses godoc
// GET /api/v1/responses?attempt_id=&question_id=&limit=&offset=
func (h *ResponseHandler) ListResponses(c *gin.Context) {
	var attemptID, questionID *uuid.UUID
	if raw := c.Query("attempt_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		attemptID = &id
	}
	if raw := c.Query("question_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		questionID = &id
	}
	limit, offset := pageParams(c)

	responses, total, err := h.responseService.ListResponses(c.Request.Context(), attemptID, questionID, limit, offset)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if responses == nil {
		responses = []model.Response{}
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"responses": responses}, &response.Pagination{
		Limit:      limit,
		Offset:     offset,
		TotalItems: total,
	})
}

// GradeResponse godoc
// PATCH /api/v1/responses/:id
// Manually grades a response; valid for any question type.
func (h *ResponseHandler) GradeResponse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.GradeResponseRequest
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

	resp, err := h.attemptService.GradeResponse(c.Request.Context(), id, score, claims.UserID, req.Comment)
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"response": resp})
}
