package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"coachdesk/internal/application/capacity/dto"
	"coachdesk/internal/application/capacity/usecases"
	"coachdesk/internal/shared/constants"
	"coachdesk/internal/shared/errors"
	"coachdesk/internal/shared/id"
	"coachdesk/internal/shared/logger"
	"coachdesk/internal/shared/utils"
)

// AdminHandler serves the back-office surface: the plan catalog, plan
// assignment, and token grants.
type AdminHandler struct {
	createPlanUC *usecases.CreatePlanDefinitionUseCase
	listPlansUC  *usecases.ListPlanDefinitionsUseCase
	assignPlanUC *usecases.AssignPlanUseCase
	addTokensUC  *usecases.AddTokensUseCase
	listTokensUC *usecases.ListTokensUseCase
	logger       logger.Interface
}

func NewAdminHandler(
	createPlanUC *usecases.CreatePlanDefinitionUseCase,
	listPlansUC *usecases.ListPlanDefinitionsUseCase,
	assignPlanUC *usecases.AssignPlanUseCase,
	addTokensUC *usecases.AddTokensUseCase,
	listTokensUC *usecases.ListTokensUseCase,
	log logger.Interface,
) *AdminHandler {
	return &AdminHandler{
		createPlanUC: createPlanUC,
		listPlansUC:  listPlansUC,
		assignPlanUC: assignPlanUC,
		addTokensUC:  addTokensUC,
		listTokensUC: listTokensUC,
		logger:       log,
	}
}

type CreatePlanRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	PriceCents   int64  `json:"price_cents" validate:"min=0"`
	StudentLimit int    `json:"student_limit" validate:"required,min=1"`
	DurationDays int    `json:"duration_days" validate:"required,min=1"`
}

func (h *AdminHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create plan", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	plan, err := h.createPlanUC.Execute(c.Request.Context(), usecases.CreatePlanDefinitionCommand{
		Name:         req.Name,
		PriceCents:   req.PriceCents,
		StudentLimit: req.StudentLimit,
		DurationDays: req.DurationDays,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.ToPlanDefinitionDTO(plan), "Plan created successfully")
}

func (h *AdminHandler) ListPlans(c *gin.Context) {
	activeOnly := false
	if activeOnlyStr := c.Query("active_only"); activeOnlyStr != "" {
		parsed, err := strconv.ParseBool(activeOnlyStr)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid active_only parameter"))
			return
		}
		activeOnly = parsed
	}

	plans, err := h.listPlansUC.Execute(c.Request.Context(), usecases.ListPlanDefinitionsCommand{
		ActiveOnly: activeOnly,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.OKResponse(c, dto.ToPlanDefinitionDTOs(plans))
}

type AssignPlanRequest struct {
	PlanID string `json:"plan_id" validate:"required"`
	// StartDate defaults to now when omitted.
	StartDate *time.Time `json:"start_date"`
	// DurationDays overrides the plan's default cycle length when set.
	DurationDays *int   `json:"duration_days" validate:"omitempty,min=1"`
	Reason       string `json:"reason" validate:"max=500"`
}

// AssignPlan grants the coach a new plan cycle. When the coach has active
// students the response flags that a roster reconciliation is pending.
func (h *AdminHandler) AssignPlan(c *gin.Context) {
	coachID, err := utils.ParseUintParam(c, "coach_id", "coach")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AssignPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for assign plan",
			"coach_id", coachID,
			"error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := id.ValidatePrefix(req.PlanID, id.PrefixPlanDefinition); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid plan ID format"))
		return
	}

	var startDate time.Time
	if req.StartDate != nil {
		startDate = req.StartDate.UTC()
	}

	result, err := h.assignPlanUC.Execute(c.Request.Context(), usecases.AssignPlanCommand{
		CoachID:      coachID,
		PlanSID:      req.PlanID,
		StartDate:    startDate,
		DurationDays: req.DurationDays,
		Reason:       req.Reason,
		AssignedBy:   c.GetUint(constants.ContextKeyCoachID),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"assignment":              dto.ToPlanAssignmentDTO(result.Assignment, result.Plan),
		"requires_reconciliation": result.RequiresReconciliation,
	}, "Plan assigned successfully")
}

type AddTokensRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
	// ExpirationDate defaults to the configured validity window when omitted.
	ExpirationDate *time.Time `json:"expiration_date"`
	Reason         string     `json:"reason" validate:"max=500"`
}

// AddTokens grants the coach supplementary capacity as one
// quantity-bearing token.
func (h *AdminHandler) AddTokens(c *gin.Context) {
	coachID, err := utils.ParseUintParam(c, "coach_id", "coach")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddTokensRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for add tokens",
			"coach_id", coachID,
			"error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var expirationDate time.Time
	if req.ExpirationDate != nil {
		expirationDate = req.ExpirationDate.UTC()
	}

	token, err := h.addTokensUC.Execute(c.Request.Context(), usecases.AddTokensCommand{
		CoachID:        coachID,
		Quantity:       req.Quantity,
		ExpirationDate: expirationDate,
		Reason:         req.Reason,
		CreatedBy:      c.GetUint(constants.ContextKeyCoachID),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.ToCapacityTokenDTO(token), "Capacity tokens granted successfully")
}

func (h *AdminHandler) ListTokens(c *gin.Context) {
	coachID, err := utils.ParseUintParam(c, "coach_id", "coach")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	tokens, err := h.listTokensUC.Execute(c.Request.Context(), usecases.ListTokensCommand{
		CoachID: coachID,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.OKResponse(c, dto.ToCapacityTokenDTOs(tokens))
}
