package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"coachdesk/internal/domain/capacity"
	"coachdesk/internal/shared/utils"
)

// respondDomainError translates capacity domain errors into HTTP responses.
// Capacity rejections keep their stable code and snapshot so clients can
// tell "upgrade your plan" apart from "trim your keep list".
func respondDomainError(c *gin.Context, err error) {
	if capErr, ok := capacity.AsCapacityError(err); ok {
		utils.ErrorResponseWithCode(c, http.StatusConflict, capErr.Code, capErr.Message, capErr)
		return
	}

	switch {
	case errors.Is(err, capacity.ErrPlanNotFound),
		errors.Is(err, capacity.ErrTokenNotFound),
		errors.Is(err, capacity.ErrAssignmentNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, capacity.ErrPlanInactive):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, capacity.ErrTokenExhausted),
		errors.Is(err, capacity.ErrTokenExpired):
		utils.ErrorResponseWithCode(c, http.StatusConflict, capacity.CodeTokenExhausted, err.Error(), nil)
	case errors.Is(err, capacity.ErrStudentAlreadyBound),
		errors.Is(err, capacity.ErrNoRenewalInProgress),
		errors.Is(err, capacity.ErrInvalidRosterTransition),
		errors.Is(err, capacity.ErrInsufficientSources):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	default:
		utils.ErrorResponseWithError(c, err)
	}
}
