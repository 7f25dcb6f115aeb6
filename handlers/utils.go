package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"pickem-app-go/logging"
	"pickem-app-go/models"
	"pickem-app-go/services"

	"github.com/go-playground/validator/v10"
)

// Error codes that are not rejection reasons
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidWeek        = "INVALID_WEEK"
	CodeUnknownGame        = "UNKNOWN_GAME"
	CodeInvalidTeam        = "INVALID_TEAM"
	CodeDuplicatePick      = "DUPLICATE_PICK"
	CodeEmptySubmission    = "EMPTY_SUBMISSION"
	CodeSubmissionConflict = "SUBMISSION_CONFLICT"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInternal           = "INTERNAL"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

// writeRejection reports a rule rejection as 422 with the reason as the code
func writeRejection(w http.ResponseWriter, reason models.RejectionReason) {
	writeError(w, http.StatusUnprocessableEntity, string(reason), reason.Message())
}

type mappedError struct {
	status int
	code   string
}

func mapError(err error) mappedError {
	switch {
	case errors.Is(err, services.ErrInvalidWeek):
		return mappedError{http.StatusBadRequest, CodeInvalidWeek}
	case errors.Is(err, services.ErrUnknownGame):
		return mappedError{http.StatusBadRequest, CodeUnknownGame}
	case errors.Is(err, services.ErrInvalidTeam):
		return mappedError{http.StatusBadRequest, CodeInvalidTeam}
	case errors.Is(err, services.ErrDuplicatePick):
		return mappedError{http.StatusBadRequest, CodeDuplicatePick}
	case errors.Is(err, services.ErrEmptySubmission):
		return mappedError{http.StatusBadRequest, CodeEmptySubmission}
	case errors.Is(err, services.ErrSubmissionConflict):
		return mappedError{http.StatusConflict, CodeSubmissionConflict}
	case errors.Is(err, services.ErrInvalidCredentials):
		return mappedError{http.StatusUnauthorized, CodeInvalidCredentials}
	default:
		return mappedError{http.StatusInternalServerError, CodeInternal}
	}
}

// writeServiceError maps a service error to its status and code. Internal
// errors are logged and their text is not exposed.
func writeServiceError(w http.ResponseWriter, logger *logging.Logger, err error) {
	mapped := mapError(err)
	if mapped.status == http.StatusInternalServerError {
		logger.Errorf("Request failed: %v", err)
		writeError(w, mapped.status, mapped.code, "internal server error")
		return
	}
	writeError(w, mapped.status, mapped.code, err.Error())
}

// requestValidator decodes JSON bodies and checks their struct tags
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	return &requestValidator{validate: validator.New()}
}

// decode reads r's body into dst and validates it, writing a 400 on failure
func (v *requestValidator) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, fmt.Sprintf("invalid JSON: %v", err))
		return false
	}

	if err := v.validate.StructCtx(r.Context(), dst); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, describeValidation(err))
		return false
	}
	return true
}

func describeValidation(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// parseWeek reads the required ?week= query parameter
func parseWeek(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("week")
	if raw == "" {
		return 0, fmt.Errorf("%w: week query parameter is required", services.ErrInvalidWeek)
	}
	week, err := strconv.Atoi(raw)
	if err != nil || week < 1 {
		return 0, fmt.Errorf("%w: %q", services.ErrInvalidWeek, raw)
	}
	return week, nil
}

func queryBool(r *http.Request, key string) bool {
	switch strings.ToLower(r.URL.Query().Get(key)) {
	case "true", "1", "yes":
		return true
	}
	return false
}
