package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"coachdesk/internal/application/capacity/dto"
	"coachdesk/internal/application/capacity/usecases"
	"coachdesk/internal/shared/errors"
	"coachdesk/internal/shared/id"
	"coachdesk/internal/shared/logger"
	"coachdesk/internal/shared/utils"
)

// CapacityHandler serves the coach-facing capacity surface: the live
// capacity snapshot, slot activation and release, and the renewal
// reconciliation flow.
type CapacityHandler struct {
	getStatusUC       *usecases.GetCapacityStatusUseCase
	activateStudentUC *usecases.ActivateStudentUseCase
	deactivateUC      *usecases.DeactivateStudentUseCase
	getRenewalUC      *usecases.GetRenewalStateUseCase
	startRenewalUC    *usecases.StartRenewalUseCase
	finalizeCycleUC   *usecases.FinalizeCycleUseCase
	logger            logger.Interface
}

func NewCapacityHandler(
	getStatusUC *usecases.GetCapacityStatusUseCase,
	activateStudentUC *usecases.ActivateStudentUseCase,
	deactivateUC *usecases.DeactivateStudentUseCase,
	getRenewalUC *usecases.GetRenewalStateUseCase,
	startRenewalUC *usecases.StartRenewalUseCase,
	finalizeCycleUC *usecases.FinalizeCycleUseCase,
	log logger.Interface,
) *CapacityHandler {
	return &CapacityHandler{
		getStatusUC:       getStatusUC,
		activateStudentUC: activateStudentUC,
		deactivateUC:      deactivateUC,
		getRenewalUC:      getRenewalUC,
		startRenewalUC:    startRenewalUC,
		finalizeCycleUC:   finalizeCycleUC,
		logger:            log,
	}
}

// GetCapacityStatus returns the coach's current capacity snapshot.
// ?refresh=true bypasses the cache and recomputes from the database.
func (h *CapacityHandler) GetCapacityStatus(c *gin.Context) {
	coachID, err := utils.ParseUintParam(c, "coach_id", "coach")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	bypassCache := false
	if refreshStr := c.Query("refresh"); refreshStr != "" {
		bypassCache, err = strconv.ParseBool(refreshStr)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid refresh parameter"))
			return
		}
	}

	status, err := h.getStatusUC.Execute(c.Request.Context(), usecases.GetCapacityStatusCommand{
		CoachID:     coachID,
		BypassCache: bypassCache,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.OKResponse(c, status)
}

// ActivateStudent allocates a slot for the student and binds it to the
// backing source.
func (h *CapacityHandler) ActivateStudent(c *gin.Context) {
	coachID, err := utils.ParseUintParam(c, "coach_id", "coach")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	studentSID, err := utils.ParseSIDParam(c, "student_id", id.PrefixStudent, "student")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.activateStudentUC.Execute(c.Request.Context(), usecases.ActivateStudentCommand{
		CoachID:    coachID,
		StudentSID: studentSID,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.OKResponse(c, gin.H{
		"student":  dto.ToStudentDTO(result.Student),
		"capacity": result.Status,
	}, "Student activated successfully")
}

// DeactivateStudent releases the student's slot. Safe to call repeatedly.
func (h *CapacityHandler) DeactivateStudent(c *gin.Context) {
	studentSID, err := utils.ParseSIDParam(c, "student_id", id.PrefixStudent, "student")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.deactivateUC.Execute(c.Request.Context(), usecases.DeactivateStudentCommand{
		StudentSID: studentSID,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.OKResponse(c, gin.H{
		"student":        dto.ToStudentDTO(result.Student),
		"released":       result.Released,
		"token_restored": result.TokenRestored,
	}, "Student deactivated successfully")
}

// GetRenewalState reports where the coach stands in the renewal flow.
func (h *CapacityHandler) GetRenewalState(c *gin.Context) {
	coachID, err := utils.ParseUintParam(c, "coach_id", "coach")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getRenewalUC.Execute(c.Request.Context(), usecases.GetRenewalStateCommand{
		CoachID: coachID,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.OKResponse(c, dto.ToRenewalStatusDTO(result.Assignment))
}

// StartRenewal moves an approved renewal into roster selection.
func (h *CapacityHandler) StartRenewal(c *gin.Context) {
	coachID, err := utils.ParseUintParam(c, "coach_id", "coach")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	assignment, err := h.startRenewalUC.Execute(c.Request.Context(), usecases.StartRenewalCommand{
		CoachID: coachID,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.OKResponse(c, dto.ToPlanAssignmentDTO(assignment, nil), "Roster selection started")
}

type FinalizeCycleRequest struct {
	KeepStudentIDs []string `json:"keep_student_ids"`
}

// FinalizeCycle settles the renewal: kept students are re-bound against the
// renewed sources, everyone else is released.
func (h *CapacityHandler) FinalizeCycle(c *gin.Context) {
	coachID, err := utils.ParseUintParam(c, "coach_id", "coach")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req FinalizeCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for finalize cycle",
			"coach_id", coachID,
			"error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.finalizeCycleUC.Execute(c.Request.Context(), usecases.FinalizeCycleCommand{
		CoachID:         coachID,
		KeepStudentSIDs: req.KeepStudentIDs,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.OKResponse(c, gin.H{
		"assignment": dto.ToPlanAssignmentDTO(result.Assignment, nil),
		"kept":       dto.ToStudentDTOs(result.Kept),
		"released":   dto.ToStudentDTOs(result.Released),
		"capacity":   result.Status,
	}, "Cycle finalized successfully")
}
