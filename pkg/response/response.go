package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	apperrors "github.com/segyhp/lamf-engine/pkg/errors"
	"go.uber.org/zap"
)

type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Code      string      `json:"code,omitempty"`
	Details   interface{} `json:"details,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	write(w, statusCode, Response{
		Success:   statusCode >= 200 && statusCode < 300,
		Data:      data,
		Timestamp: time.Now(),
	})
}

// Success sends a successful JSON response
func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, data)
}

// SuccessMessage sends a 200 with a message and optional data
func SuccessMessage(w http.ResponseWriter, message string, data interface{}) {
	write(w, http.StatusOK, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

// Created sends a created JSON response
func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, data)
}

// Fail sends an error JSON response with an explicit status and code
func Fail(w http.ResponseWriter, statusCode int, code, message string, details interface{}) {
	write(w, statusCode, Response{
		Success:   false,
		Error:     message,
		Code:      code,
		Details:   details,
		Timestamp: time.Now(),
	})
}

// Error maps err onto a status code by its business kind and renders its message verbatim.
// Errors outside the taxonomy are reported as 500 without leaking their text.
func Error(w http.ResponseWriter, err error) {
	var be *apperrors.BusinessError
	if !errors.As(err, &be) {
		zap.L().Error("unhandled error", zap.Error(err))
		Fail(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	var details interface{}
	var re *apperrors.RangeError
	if errors.As(err, &re) {
		details = map[string]interface{}{
			"value": re.Value,
			"min":   re.Min,
			"max":   re.Max,
		}
	}

	status := StatusFor(be.Kind)
	message := be.Message
	if status == http.StatusInternalServerError {
		zap.L().Error("internal error", zap.String("code", be.Code), zap.Error(err))
		message = "Internal server error"
	}
	Fail(w, status, be.Code, message, details)
}

// StatusFor returns the HTTP status for an error kind.
func StatusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindValidation, apperrors.KindRangeViolation, apperrors.KindInvalidEnum:
		return http.StatusBadRequest
	case apperrors.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// BadRequest sends a 400 bad request response
func BadRequest(w http.ResponseWriter, message string, details interface{}) {
	Fail(w, http.StatusBadRequest, apperrors.ErrCodeValidationFailed, message, details)
}

// NotFound sends a 404 not found response
func NotFound(w http.ResponseWriter, message string) {
	Fail(w, http.StatusNotFound, "NOT_FOUND", message, nil)
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(w http.ResponseWriter, message string) {
	Fail(w, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

// Forbidden sends a 403 forbidden response
func Forbidden(w http.ResponseWriter, message string) {
	Fail(w, http.StatusForbidden, "FORBIDDEN", message, nil)
}

func write(w http.ResponseWriter, statusCode int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Warn("error encoding JSON response", zap.Error(err))
	}
}

// JSONMiddleware sets JSON content type for all responses
func JSONMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// CORSMiddleware adds CORS headers
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
