package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/zakatfund/backend/internal/models"
)

// ErrorResponse represents error response structure
type ErrorResponse struct {
	Error   string            `json:"error"`             // Error message
	Kind    string            `json:"kind,omitempty"`    // Ledger error kind
	Details map[string]string `json:"details,omitempty"` // Validation details
}

// ValidationHelper provides shared validation functionality
type ValidationHelper struct {
	validator *validator.Validate
}

// NewValidationHelper creates a new validation helper
func NewValidationHelper() *ValidationHelper {
	v := validator.New()
	v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.CampaignCategory(fl.Field().String()).Valid()
	})
	return &ValidationHelper{
		validator: v,
	}
}

// ValidateStruct validates a struct and returns validation errors
func (vh *ValidationHelper) ValidateStruct(s any) error {
	return vh.validator.Struct(s)
}

// SendErrorResponse sends a JSON error response
func SendErrorResponse(w http.ResponseWriter, message string, statusCode int, validationErr error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResp := ErrorResponse{Error: message}
	var fieldErrs validator.ValidationErrors
	if errors.As(validationErr, &fieldErrs) {
		errorResp.Details = make(map[string]string)
		for _, err := range fieldErrs {
			errorResp.Details[err.Field()] = fmt.Sprintf("Field Validation Failed on '%s' tag", err.Tag())
		}
	}

	json.NewEncoder(w).Encode(errorResp)
}

var statusByKind = map[string]int{
	"Unauthorized":       http.StatusUnauthorized,
	"NotFound":           http.StatusNotFound,
	"InvalidArgument":    http.StatusBadRequest,
	"InvalidState":       http.StatusConflict,
	"InsufficientFunds":  http.StatusUnprocessableEntity,
	"AlreadyInitialized": http.StatusConflict,
}

// StatusForError maps a ledger error to its HTTP status.
func StatusForError(err error) int {
	if status, ok := statusByKind[models.ErrorKind(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// SendServiceError renders a service error. Internal errors are reported
// without their message.
func SendServiceError(w http.ResponseWriter, err error) {
	status := StatusForError(err)
	kind := models.ErrorKind(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message, Kind: kind})
}
