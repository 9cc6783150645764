package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AlzProject/backend/internal/model"
	"github.com/AlzProject/backend/internal/response"
	"github.com/AlzProject/backend/internal/service"
	"github.com/AlzProject/backend/internal/validator"
)

// TestHandler handles test and section catalog endpoints.
type TestHandler struct {
	catalogService *service.CatalogService
}

// NewTestHandler creates a new TestHandler.
func NewTestHandler(catalogService *service.CatalogService) *TestHandler {
	return &TestHandler{catalogService: catalogService}
}

// CreateTest godoc
// POST /api/v1/tests
func (h *TestHandler) CreateTest(c *gin.Context) {
	var req model.CreateTestRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	test := &model.Test{
		Title:                req.Title,
		AllowNegativeMarking: req.AllowNegativeMarking,
		AllowPartialMarking:  req.AllowPartialMarking,
	}
	if err := h.catalogService.CreateTest(c.Request.Context(), test); err != nil {
		failFromErr(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"test": test})
}

// GetTest godoc
// GET /api/v1/tests/:id
func (h *TestHandler) GetTest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	test, err := h.catalogService.GetTest(c.Request.Context(), id)
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"test": test})
}

// GetTestPaper godoc
// GET /api/v1/tests/:id/paper
// Returns the participant view of the test with answer keys stripped.
func (h *TestHandler) GetTestPaper(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	paper, err := h.catalogService.TestPaper(c.Request.Context(), id)
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"paper": paper})
}

// ListTests godoc
// GET /api/v1/tests?limit=&offset=
func (h *TestHandler) ListTests(c *gin.Context) {
	limit, offset := pageParams(c)

	tests, total, err := h.catalogService.ListTests(c.Request.Context(), limit, offset)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if tests == nil {
		tests = []model.Test{}
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"tests": tests}, &response.Pagination{
		Limit:      limit,
		Offset:     offset,
		TotalItems: total,
	})
}

// UpdateTest godoc
// PUT /api/v1/tests/:id
func (h *TestHandler) UpdateTest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateTestRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	test, err := h.catalogService.GetTest(c.Request.Context(), id)
	if err != nil {
		failFromErr(c, err)
		return
	}

	if req.Title != "" {
		test.Title = req.Title
	}
	if req.AllowNegativeMarking != nil {
		test.AllowNegativeMarking = *req.AllowNegativeMarking
	}
	if req.AllowPartialMarking != nil {
		test.AllowPartialMarking = *req.AllowPartialMarking
	}

	if err := h.catalogService.UpdateTest(c.Request.Context(), test); err != nil {
		failFromErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"test": test})
}

// DeleteTest godoc
// DELETE /api/v1/tests/:id
func (h *TestHandler) DeleteTest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.catalogService.DeleteTest(c.Request.Context(), id); err != nil {
		failFromErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "test deleted"})
}

// CreateSection godoc
// POST /api/v1/tests/:id/sections
func (h *TestHandler) CreateSection(c *gin.Context) {
	testID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.CreateSectionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	section := &model.Section{
		TestID:   testID,
		Title:    req.Title,
		OrderNum: req.OrderNum,
	}
	if err := h.catalogService.CreateSection(c.Request.Context(), section); err != nil {
		failFromErr(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"section": section})
}

// DeleteSection godoc
// DELETE /api/v1/sections/:id
func (h *TestHandler) DeleteSection(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.catalogService.DeleteSection(c.Request.Context(), id); err != nil {
		failFromErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "section deleted"})
}

// ListSections godoc
// GET /api/v1/tests/:id/sections
func (h *TestHandler) ListSections(c *gin.Context) {
	testID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	sections, err := h.catalogService.ListSections(c.Request.Context(), testID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	if sections == nil {
		sections = []model.Section{}
	}

	response.Success(c, http.StatusOK, gin.H{"sections": sections})
}
