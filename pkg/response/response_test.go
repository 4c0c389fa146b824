package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/segyhp/lamf-engine/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, map[string]string{"id": "x"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "x", body["data"].(map[string]interface{})["id"])
}

func TestError_MapsKinds(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", apperrors.WrapApplicationNotFound("a1"), http.StatusNotFound, apperrors.ErrCodeApplicationNotFound},
		{"validation", apperrors.WrapValidation("tenure must be greater than or equal to 1"), http.StatusBadRequest, apperrors.ErrCodeValidationFailed},
		{"inactive product", apperrors.WrapProductInactive("p1"), http.StatusBadRequest, apperrors.ErrCodeProductInactive},
		{"invalid enum", apperrors.WrapInvalidPledgeStatus("foo"), http.StatusBadRequest, apperrors.ErrCodeInvalidPledgeStatus},
		{"conflict", apperrors.WrapInvalidTransition("pending", "closed"), http.StatusConflict, apperrors.ErrCodeInvalidTransition},
		{"internal", apperrors.WrapDatabaseError(errors.New("connection reset")), http.StatusInternalServerError, apperrors.ErrCodeDatabaseError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.code, body["code"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestError_InternalDoesNotLeakCause(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, apperrors.WrapDatabaseError(errors.New("password=secret")))

	body := decode(t, rec)
	assert.Equal(t, "Internal server error", body["error"])
}

func TestError_RangeViolationCarriesBounds(t *testing.T) {
	rec := httptest.NewRecorder()
	err := apperrors.WrapLTVOutOfRange(
		decimal.RequireFromString("94.7368"),
		decimal.NewFromInt(50),
		decimal.NewFromInt(80),
	)
	Error(rec, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "LTV ratio 94.74% is outside the allowed range (50% - 80%)", body["error"])
	details, ok := body["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, details, "min")
	assert.Contains(t, details, "max")
	assert.Contains(t, details, "value")
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	called := false
	h := CORSMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/loan-products", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, called)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
