package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	alertdomain "github.com/smallbiznis/ecoai/internal/alert/domain"
	analyticsdomain "github.com/smallbiznis/ecoai/internal/analytics/domain"
	carbondomain "github.com/smallbiznis/ecoai/internal/carbon/domain"
	companydomain "github.com/smallbiznis/ecoai/internal/company/domain"
	energydomain "github.com/smallbiznis/ecoai/internal/energy/domain"
	simulationdomain "github.com/smallbiznis/ecoai/internal/simulation/domain"
	"github.com/smallbiznis/ecoai/pkg/db/pagination"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrConflict           = errors.New("conflict")
	ErrInternal           = errors.New("internal_error")
	ErrNotFound           = errors.New("not_found")
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrServiceUnavailable = errors.New("service_unavailable")
	ErrRateLimited        = errors.New("rate_limited")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: conflictMessage(err),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: notFoundMessage(err),
		}
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "rate_limited",
			Message: "too many requests",
		}
	case errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "service unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

var validationSentinels = []error{
	ErrInvalidRequest,
	pagination.ErrInvalidPageToken,
	companydomain.ErrInvalidName,
	companydomain.ErrInvalidRegion,
	companydomain.ErrInvalidAiPercentage,
	companydomain.ErrInvalidCostPerKwh,
	companydomain.ErrInvalidCurrency,
	companydomain.ErrInvalidWeight,
	companydomain.ErrInvalidEmployeeCount,
	energydomain.ErrInvalidTotalKwh,
	energydomain.ErrInvalidUsageDate,
	energydomain.ErrInvalidPeriodType,
	energydomain.ErrInvalidDateRange,
	energydomain.ErrInvalidCSV,
	carbondomain.ErrInvalidRegion,
	carbondomain.ErrInvalidIntensity,
	carbondomain.ErrInvalidValidYear,
	analyticsdomain.ErrInvalidMonths,
	alertdomain.ErrInvalidMetricType,
	alertdomain.ErrInvalidOperator,
	alertdomain.ErrInvalidThresholdValue,
	simulationdomain.ErrInvalidSimulationType,
	simulationdomain.ErrInvalidMonthsAhead,
	simulationdomain.ErrInvalidRegion,
}

func matchValidationSentinel(err error) error {
	for _, sentinel := range validationSentinels {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return nil
}

func isValidationError(err error) bool {
	return matchValidationSentinel(err) != nil
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, companydomain.ErrNotFound),
		errors.Is(err, companydomain.ErrDepartmentNotFound),
		errors.Is(err, energydomain.ErrNotFound),
		errors.Is(err, carbondomain.ErrConfigNotFound),
		errors.Is(err, alertdomain.ErrNotFound),
		errors.Is(err, simulationdomain.ErrScenarioNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, companydomain.ErrConflict),
		errors.Is(err, companydomain.ErrDuplicateDepartment),
		errors.Is(err, carbondomain.ErrRecalculationInProgress):
		return true
	default:
		return false
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, companydomain.ErrNotFound):
		return "company not found"
	case errors.Is(err, companydomain.ErrDepartmentNotFound):
		return "department not found"
	case errors.Is(err, energydomain.ErrNotFound):
		return "energy usage record not found"
	case errors.Is(err, carbondomain.ErrConfigNotFound):
		return "carbon intensity config not found"
	case errors.Is(err, alertdomain.ErrNotFound):
		return "alert threshold not found"
	case errors.Is(err, simulationdomain.ErrScenarioNotFound):
		return "scenario not found"
	default:
		return "not found"
	}
}

func conflictMessage(err error) string {
	switch {
	case errors.Is(err, companydomain.ErrDuplicateDepartment):
		return "department already exists"
	case errors.Is(err, companydomain.ErrConflict):
		return "company already exists"
	case errors.Is(err, carbondomain.ErrRecalculationInProgress):
		return "emission recalculation already in progress"
	default:
		return "conflict"
	}
}

func validationErrorCode(err error) string {
	if sentinel := matchValidationSentinel(err); sentinel != nil {
		return sentinel.Error()
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	case "invalid_csv":
		return "csv file is missing required columns or has no valid rows"
	default:
		return "invalid value"
	}
}

// classifyErrorForLog returns the error type and a short reason for request logs.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	reason := payload.Type
	if len(payload.Errors) > 0 {
		reason = payload.Errors[0].Code
	}
	switch {
	case status >= http.StatusInternalServerError:
		return "server", reason
	default:
		return "client", reason
	}
}
