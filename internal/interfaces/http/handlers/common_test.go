package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coachdesk/internal/domain/capacity"
	"coachdesk/internal/shared/logger"
	"coachdesk/internal/shared/utils"
)

func TestHandlerConstructorsUseInjectedLogger(t *testing.T) {
	log := logger.NewLogger().Named("http-test")

	capacityH := NewCapacityHandler(nil, nil, nil, nil, nil, nil, log)
	studentH := NewStudentHandler(nil, nil, nil, log)
	adminH := NewAdminHandler(nil, nil, nil, nil, nil, log)

	assert.True(t, capacityH.logger == log)
	assert.True(t, studentH.logger == log)
	assert.True(t, adminH.logger == log)
}

func recordDomainError(t *testing.T, err error) (*httptest.ResponseRecorder, utils.APIResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondDomainError(c, err)

	var body utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestRespondDomainError_CapacityExceededKeepsSnapshot(t *testing.T) {
	status := capacity.CapacityStatus{EffectiveLimit: 7, ActiveCount: 7}
	w, body := recordDomainError(t, capacity.NewCapacityExceededError(status, 1))

	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, capacity.CodeCapacityExceeded, body.Error.Code)
	require.NotNil(t, body.Error.Details)
}

func TestRespondDomainError_PlanExpiredCode(t *testing.T) {
	w, body := recordDomainError(t, capacity.NewPlanExpiredError(capacity.CapacityStatus{}))

	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, capacity.CodePlanExpired, body.Error.Code)
}

func TestRespondDomainError_TokenSentinelsCarryStableCode(t *testing.T) {
	for _, err := range []error{capacity.ErrTokenExhausted, capacity.ErrTokenExpired} {
		w, body := recordDomainError(t, err)

		assert.Equal(t, http.StatusConflict, w.Code)
		require.NotNil(t, body.Error)
		assert.Equal(t, capacity.CodeTokenExhausted, body.Error.Code)
	}
}

func TestRespondDomainError_NotFoundSentinels(t *testing.T) {
	w, _ := recordDomainError(t, capacity.ErrPlanNotFound)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
