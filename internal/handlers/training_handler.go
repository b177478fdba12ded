package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/services"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/utils"
)

type TrainingHandler struct {
	BaseHandler
	trainingService services.TrainingService
	validator       *utils.Validator
}

func NewTrainingHandler(
	trainingService services.TrainingService,
	validator *utils.Validator,
	logger utils.Logger,
) *TrainingHandler {
	return &TrainingHandler{
		BaseHandler:     NewBaseHandler(logger),
		trainingService: trainingService,
		validator:       validator,
	}
}

// GetTrainingWords returns a shuffled batch of words at one level
// @Summary Get training batch
// @Description Returns up to 20 shuffled words at the requested level
// @Tags training
// @Produce json
// @Param level query int true "Word level (1-10)"
// @Success 200 {object} services.QuizBatchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /training/words [get]
func (h *TrainingHandler) GetTrainingWords(c *gin.Context) {
	studentID, ok := h.requireStudentID(c)
	if !ok {
		return
	}

	level, err := strconv.Atoi(c.Query("level"))
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid level parameter", err, c.Query("level"))
		return
	}

	h.LogRequest(c, "Selecting training batch", "level", level)

	batch, err := h.trainingService.SelectTrainingBatch(c.Request.Context(), studentID, level)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, batch)
}

// GetReviewWords returns a shuffled batch of not-yet-mastered words
// @Summary Get review batch
// @Description Returns up to 20 shuffled words the student has not answered correctly
// @Tags training
// @Produce json
// @Param level query int false "Word level (1-10), omit for all levels"
// @Success 200 {object} services.QuizBatchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /training/review [get]
func (h *TrainingHandler) GetReviewWords(c *gin.Context) {
	studentID, ok := h.requireStudentID(c)
	if !ok {
		return
	}

	var level *int
	if raw := c.Query("level"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.RespondWithError(c, http.StatusBadRequest, "Invalid level parameter", err, raw)
			return
		}
		level = &parsed
	}

	h.LogRequest(c, "Selecting review batch")

	batch, err := h.trainingService.SelectReviewBatch(c.Request.Context(), studentID, level)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, batch)
}

// SubmitTrainingResult processes a finished batch
// @Summary Submit training results
// @Description Records answers and updates the student's statistics atomically
// @Tags training
// @Accept json
// @Produce json
// @Param submission body services.SubmitBatchRequest true "Batch results"
// @Success 200 {object} services.SubmissionSummary
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /training/submit [post]
func (h *TrainingHandler) SubmitTrainingResult(c *gin.Context) {
	studentID, ok := h.requireStudentID(c)
	if !ok {
		return
	}

	var req services.SubmitBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}
	req.StudentID = studentID

	h.LogRequest(c, "Processing training submission",
		"level", req.Level,
		"results", len(req.Results))

	summary, err := h.trainingService.SubmitBatch(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetStudentStatistics returns the aggregated statistics view
// @Summary Get student statistics
// @Description Returns study time, accuracy, streaks and per-level progress
// @Tags training
// @Produce json
// @Success 200 {object} services.StudentStatisticsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /training/statistics [get]
func (h *TrainingHandler) GetStudentStatistics(c *gin.Context) {
	studentID, ok := h.requireStudentID(c)
	if !ok {
		return
	}

	stats, err := h.trainingService.GetStatistics(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
