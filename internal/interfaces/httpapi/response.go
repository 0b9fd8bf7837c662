package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/chaeyoungson/goalgirls/internal/domain/draft"
	"github.com/chaeyoungson/goalgirls/internal/usecase"
)

const (
	apiVersion  = "1.0"
	errorDomain = "goalgirls"
)

type responseEnvelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Errors  []errorItem `json:"errors,omitempty"`
}

type errorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, responseEnvelope{
		APIVersion: apiVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	items := []errorItem{
		{
			Domain:  errorDomain,
			Reason:  mapError(err).Reason,
			Message: err.Error(),
		},
	}
	var submitErr *usecase.SubmitError
	if errors.As(err, &submitErr) {
		// The failing category tells the operator which part of the draft
		// to re-check before retrying.
		items = append(items, errorItem{
			Domain:  errorDomain,
			Reason:  "category/" + string(submitErr.Category),
			Message: "submission aborted; earlier categories stay committed",
		})
	}

	mapped := mapError(err)
	writeJSON(ctx, w, mapped.HTTPStatus, responseEnvelope{
		APIVersion: apiVersion,
		Error: &errorBody{
			Code:    mapped.HTTPStatus,
			Message: err.Error(),
			Status:  mapped.Status,
			Errors:  items,
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	const msg = "internal server error"

	writeJSON(ctx, w, http.StatusInternalServerError, responseEnvelope{
		APIVersion: apiVersion,
		Error: &errorBody{
			Code:    http.StatusInternalServerError,
			Message: msg,
			Status:  "INTERNAL",
			Errors: []errorItem{
				{
					Domain:  errorDomain,
					Reason:  "internalError",
					Message: msg,
				},
			},
		},
	})
}

// writeValidationFailure renders a failed whole-draft validation: one error
// item per category message, keeping every problem visible at once.
func writeValidationFailure(ctx context.Context, w http.ResponseWriter, result draft.Result) {
	ctx, span := startSpan(ctx, "httpapi.writeValidationFailure")
	defer span.End()

	items := make([]errorItem, 0, len(result.Errors))
	for _, category := range []draft.Category{
		draft.CategoryScore,
		draft.CategoryGoals,
		draft.CategoryAssists,
		draft.CategoryLineups,
		draft.CategorySubstitutions,
		draft.CategoryPenalties,
	} {
		for _, msg := range result.Errors[category] {
			items = append(items, errorItem{
				Domain:  errorDomain,
				Reason:  "category/" + string(category),
				Message: msg,
			})
		}
	}

	writeJSON(ctx, w, http.StatusUnprocessableEntity, responseEnvelope{
		APIVersion: apiVersion,
		Error: &errorBody{
			Code:    http.StatusUnprocessableEntity,
			Message: "draft validation failed",
			Status:  "FAILED_PRECONDITION",
			Errors:  items,
		},
	})
}

func mapError(err error) mappedError {
	var submitErr *usecase.SubmitError

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidInput",
			Status:     "INVALID_ARGUMENT",
		}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Reason:     "notFound",
			Status:     "NOT_FOUND",
		}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{
			HTTPStatus: http.StatusUnauthorized,
			Reason:     "unauthorized",
			Status:     "UNAUTHENTICATED",
		}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{
			HTTPStatus: http.StatusServiceUnavailable,
			Reason:     "dependencyUnavailable",
			Status:     "UNAVAILABLE",
		}
	case errors.As(err, &submitErr):
		return mappedError{
			HTTPStatus: http.StatusBadGateway,
			Reason:     "submissionFailed",
			Status:     "ABORTED",
		}
	default:
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "internalError",
			Status:     "INTERNAL",
		}
	}
}
