package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AlzProject/backend/internal/model"
	"github.com/AlzProject/backend/internal/response"
	"github.com/AlzProject/backend/internal/service"
	"github.com/AlzProject/backend/internal/validator"
)

// QuestionHandler handles question and option catalog endpoints.
type QuestionHandler struct {
	catalogService *service.CatalogService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(catalogService *service.CatalogService) *QuestionHandler {
	return &QuestionHandler{catalogService: catalogService}
}

// CreateQuestion godoc
// POST /api/v1/sections/:id/questions
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	sectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.AddQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	maxScore, err := decimal.NewFromString(req.MaxScore)
	if err != nil || maxScore.Sign() <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidScore)
		return
	}
	negativeScore := decimal.Zero
	if req.NegativeScore != "" {
		negativeScore, err = decimal.NewFromString(req.NegativeScore)
		if err != nil || negativeScore.Sign() < 0 {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidScore)
			return
		}
	}

	question := &model.Question{
		SectionID:      sectionID,
		QuestionText:   req.QuestionText,
		QuestionType:   model.QuestionType(req.QuestionType),
		Ans:            req.Ans,
		MaxScore:       maxScore,
		NegativeScore:  negativeScore,
		PartialMarking: req.PartialMarking,
		OrderNum:       req.OrderNum,
	}
	if err := h.catalogService.CreateQuestion(c.Request.Context(), question); err != nil {
		failFromErr(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"question": question})
}

// ListQuestions godoc
// GET /api/v1/sections/:id/questions
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	sectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	questions, err := h.catalogService.ListQuestions(c.Request.Context(), sectionID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	if questions == nil {
		questions = []model.Question{}
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// DeleteQuestion godoc
// DELETE /api/v1/questions/:id
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.catalogService.DeleteQuestion(c.Request.Context(), id); err != nil {
		failFromErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "question deleted"})
}

// CreateOption godoc
// POST /api/v1/questions/:id/options
func (h *QuestionHandler) CreateOption(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.AddOptionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	weight := decimal.Zero
	if req.Weight != "" {
		weight, err = decimal.NewFromString(req.Weight)
		if err != nil || weight.Sign() < 0 {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidScore)
			return
		}
	}

	option := &model.Option{
		QuestionID: questionID,
		OptionText: req.OptionText,
		IsCorrect:  req.IsCorrect,
		Weight:     weight,
		OrderNum:   req.OrderNum,
	}
	if err := h.catalogService.CreateOption(c.Request.Context(), option); err != nil {
		failFromErr(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"option": option})
}

// DeleteOption godoc
// DELETE /api/v1/questions/:id/options/:optionId
func (h *QuestionHandler) DeleteOption(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	optionID, err := uuid.Parse(c.Param("optionId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.catalogService.DeleteOption(c.Request.Context(), questionID, optionID); err != nil {
		failFromErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "option deleted"})
}

// ListOptions godoc
// GET /api/v1/questions/:id/options
func (h *QuestionHandler) ListOptions(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	options, err := h.catalogService.ListOptions(c.Request.Context(), questionID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	if options == nil {
		options = []model.Option{}
	}

	response.Success(c, http.StatusOK, gin.H{"options": options})
}
