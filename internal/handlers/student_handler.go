package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/repositories"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/services"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/utils"
)

type StudentHandler struct {
	BaseHandler
	studentService services.StudentService
	validator      *utils.Validator
}

func NewStudentHandler(
	studentService services.StudentService,
	validator *utils.Validator,
	logger utils.Logger,
) *StudentHandler {
	return &StudentHandler{
		BaseHandler:    NewBaseHandler(logger),
		studentService: studentService,
		validator:      validator,
	}
}

// RegisterStudent creates a new student account
// @Summary Register student
// @Description Creates the account and seeds answer records for every word
// @Tags students
// @Accept json
// @Produce json
// @Param student body services.RegisterStudentRequest true "Student data"
// @Success 201 {object} models.Student
// @Failure 400 {object} ErrorResponse
// @Router /students [post]
func (h *StudentHandler) RegisterStudent(c *gin.Context) {
	var req services.RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	h.LogRequest(c, "Registering student", "new_student_id", req.StudentID)

	student, err := h.studentService.RegisterStudent(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, student)
}

// GetStudent returns one student by external id
func (h *StudentHandler) GetStudent(c *gin.Context) {
	studentID := c.Param("student_id")

	student, err := h.studentService.GetStudent(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// ListStudents returns a paginated student list
func (h *StudentHandler) ListStudents(c *gin.Context) {
	filters := repositories.StudentFilters{
		ActiveOnly: c.Query("active_only") == "true",
	}
	filters.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	filters.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	resp, err := h.studentService.ListStudents(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeactivateStudent marks a student inactive; their history is kept
func (h *StudentHandler) DeactivateStudent(c *gin.Context) {
	studentID := c.Param("student_id")

	h.LogRequest(c, "Deactivating student", "target_student_id", studentID)

	if err := h.studentService.DeactivateStudent(c.Request.Context(), studentID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Student deactivated", nil)
}

// RecordLogin stamps the authenticated student's last login time
func (h *StudentHandler) RecordLogin(c *gin.Context) {
	studentID, ok := h.requireStudentID(c)
	if !ok {
		return
	}

	if err := h.studentService.RecordLogin(c.Request.Context(), studentID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Login recorded", nil)
}
