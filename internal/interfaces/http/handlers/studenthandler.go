package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	capacityDTO "coachdesk/internal/application/capacity/dto"
	"coachdesk/internal/application/student/usecases"
	"coachdesk/internal/shared/errors"
	"coachdesk/internal/shared/id"
	"coachdesk/internal/shared/logger"
	"coachdesk/internal/shared/utils"
)

type StudentHandler struct {
	createStudentUC *usecases.CreateStudentUseCase
	listStudentsUC  *usecases.ListStudentsUseCase
	getStudentUC    *usecases.GetStudentUseCase
	logger          logger.Interface
}

func NewStudentHandler(
	createStudentUC *usecases.CreateStudentUseCase,
	listStudentsUC *usecases.ListStudentsUseCase,
	getStudentUC *usecases.GetStudentUseCase,
	log logger.Interface,
) *StudentHandler {
	return &StudentHandler{
		createStudentUC: createStudentUC,
		listStudentsUC:  listStudentsUC,
		getStudentUC:    getStudentUC,
		logger:          log,
	}
}

type CreateStudentRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"omitempty,email"`
}

// CreateStudent registers a student with the coach. The student starts
// inactive; activation is a separate capacity-checked call.
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	coachID, err := utils.ParseUintParam(c, "coach_id", "coach")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create student",
			"coach_id", coachID,
			"error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	st, err := h.createStudentUC.Execute(c.Request.Context(), usecases.CreateStudentCommand{
		CoachID: coachID,
		Name:    req.Name,
		Email:   req.Email,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, capacityDTO.ToStudentDTO(st), "Student created successfully")
}

// ListStudents lists the coach's students. ?active_only=true narrows to
// students currently holding a slot.
func (h *StudentHandler) ListStudents(c *gin.Context) {
	coachID, err := utils.ParseUintParam(c, "coach_id", "coach")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	activeOnly := false
	if activeOnlyStr := c.Query("active_only"); activeOnlyStr != "" {
		activeOnly, err = strconv.ParseBool(activeOnlyStr)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid active_only parameter"))
			return
		}
	}

	students, err := h.listStudentsUC.Execute(c.Request.Context(), usecases.ListStudentsCommand{
		CoachID:    coachID,
		ActiveOnly: activeOnly,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, capacityDTO.ToStudentDTOs(students))
}

// GetStudent returns one student by SID.
func (h *StudentHandler) GetStudent(c *gin.Context) {
	studentSID, err := utils.ParseSIDParam(c, "student_id", id.PrefixStudent, "student")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	st, err := h.getStudentUC.Execute(c.Request.Context(), usecases.GetStudentCommand{
		StudentSID: studentSID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, capacityDTO.ToStudentDTO(st))
}
