package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/repositories"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/services"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/utils"
)

type WordHandler struct {
	BaseHandler
	wordService services.WordService
	validator   *utils.Validator
}

func NewWordHandler(
	wordService services.WordService,
	validator *utils.Validator,
	logger utils.Logger,
) *WordHandler {
	return &WordHandler{
		BaseHandler: NewBaseHandler(logger),
		wordService: wordService,
		validator:   validator,
	}
}

// CreateWord registers a new word
// @Summary Create word
// @Description Registers a word and seeds answer records for all active students
// @Tags words
// @Accept json
// @Produce json
// @Param word body services.CreateWordRequest true "Word data"
// @Success 201 {object} models.Word
// @Failure 400 {object} ErrorResponse
// @Router /words [post]
func (h *WordHandler) CreateWord(c *gin.Context) {
	var req services.CreateWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	h.LogRequest(c, "Creating word", "level", req.Level)

	word, err := h.wordService.CreateWord(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, word)
}

// GetWord returns one word by id
func (h *WordHandler) GetWord(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	word, err := h.wordService.GetWord(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, word)
}

// UpdateWord updates one word by id
func (h *WordHandler) UpdateWord(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	h.LogRequest(c, "Updating word", "word_id", id)

	word, err := h.wordService.UpdateWord(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, word)
}

// DeleteWord removes one word by id
func (h *WordHandler) DeleteWord(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Deleting word", "word_id", id)

	if err := h.wordService.DeleteWord(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Word deleted", nil)
}

// ListWords returns a filtered, paginated word list
// @Summary List words
// @Tags words
// @Produce json
// @Param level query int false "Filter by level"
// @Param search query string false "Substring match on word text"
// @Success 200 {object} services.WordListResponse
// @Router /words [get]
func (h *WordHandler) ListWords(c *gin.Context) {
	filters := repositories.WordFilters{
		Search:    c.Query("search"),
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}

	if raw := c.Query("level"); raw != "" {
		level, err := strconv.Atoi(raw)
		if err != nil {
			h.RespondWithError(c, http.StatusBadRequest, "Invalid level parameter", err, raw)
			return
		}
		filters.Level = &level
	}
	filters.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	filters.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	resp, err := h.wordService.ListWords(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetLevelCounts returns the number of registered words per level
func (h *WordHandler) GetLevelCounts(c *gin.Context) {
	counts, err := h.wordService.LevelCounts(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"counts": counts})
}
