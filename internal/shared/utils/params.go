package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"coachdesk/internal/shared/errors"
	"coachdesk/internal/shared/id"
)

// ParseUintParam parses a numeric URL path parameter.
// entityName is used in error messages (e.g., "coach", "student").
func ParseUintParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " ID is required")
	}

	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, errors.NewValidationError(
			fmt.Sprintf("invalid %s ID: %s", entityName, raw),
		)
	}

	return uint(value), nil
}

// ParseSIDParam parses and validates a Stripe-style prefixed ID from a URL path parameter.
// prefix is the expected SID prefix (e.g., id.PrefixPlanDefinition).
func ParseSIDParam(c *gin.Context, paramName, prefix, entityName string) (string, error) {
	sid := c.Param(paramName)
	if sid == "" {
		return "", errors.NewValidationError(entityName + " ID is required")
	}

	if err := id.ValidatePrefix(sid, prefix); err != nil {
		return "", errors.NewValidationError(
			fmt.Sprintf("invalid %s ID format, expected %s_xxxxx", entityName, prefix),
		)
	}

	return sid, nil
}
