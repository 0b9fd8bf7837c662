package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/chaeyoungson/goalgirls/internal/domain/draft"
	"github.com/chaeyoungson/goalgirls/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "1.0" {
		t.Fatalf("expected apiVersion=1.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "1.0" {
		t.Fatalf("expected apiVersion=1.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestWriteError_SubmitFailureKeepsCategoryTag(t *testing.T) {
	rec := httptest.NewRecorder()
	submitErr := &usecase.SubmitError{
		Category: draft.CategoryLineups,
		Err:      errors.New("create lineup entry: connection reset"),
	}
	writeError(context.Background(), rec, submitErr)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "ABORTED" {
		t.Fatalf("expected error status ABORTED, got %v", errorObj["status"])
	}

	items, ok := errorObj["errors"].([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("expected 2 error items, got %v", errorObj["errors"])
	}
	categoryItem, ok := items[1].(map[string]any)
	if !ok {
		t.Fatalf("expected error item object, got %v", items[1])
	}
	if got, _ := categoryItem["reason"].(string); got != "category/lineups" {
		t.Fatalf("expected reason category/lineups, got %v", categoryItem["reason"])
	}
	if got, _ := categoryItem["message"].(string); got != "submission aborted; earlier categories stay committed" {
		t.Fatalf("unexpected category item message: %v", categoryItem["message"])
	}
}

func TestWriteValidationFailure_OneItemPerMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	result := draft.Result{
		Valid: false,
		Errors: map[draft.Category][]string{
			draft.CategoryScore: {"home score 1 does not match 2 recorded home goals"},
			draft.CategoryGoals: {
				"goal draft_7: minute is required",
				"goal draft_8: unknown scorer pl-xyz",
			},
		},
	}
	writeValidationFailure(context.Background(), rec, result)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "FAILED_PRECONDITION" {
		t.Fatalf("expected error status FAILED_PRECONDITION, got %v", errorObj["status"])
	}
	if got, _ := errorObj["message"].(string); got != "draft validation failed" {
		t.Fatalf("unexpected error message: %v", errorObj["message"])
	}

	items, ok := errorObj["errors"].([]any)
	if !ok || len(items) != 3 {
		t.Fatalf("expected 3 error items, got %v", errorObj["errors"])
	}
	// Score messages come before goal messages regardless of map order.
	first, _ := items[0].(map[string]any)
	if got, _ := first["reason"].(string); got != "category/score" {
		t.Fatalf("expected first item reason category/score, got %v", first["reason"])
	}
	second, _ := items[1].(map[string]any)
	if got, _ := second["reason"].(string); got != "category/goals" {
		t.Fatalf("expected second item reason category/goals, got %v", second["reason"])
	}
}

func TestMapError_NotFound(t *testing.T) {
	mapped := mapError(fmt.Errorf("%w: match match-s9e99", usecase.ErrNotFound))
	if mapped.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", mapped.HTTPStatus)
	}
	if mapped.Status != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %s", mapped.Status)
	}
}

func TestMapError_UnknownErrorIsInternal(t *testing.T) {
	mapped := mapError(errors.New("boom"))
	if mapped.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", mapped.HTTPStatus)
	}
	if mapped.Status != "INTERNAL" {
		t.Fatalf("expected INTERNAL, got %s", mapped.Status)
	}
}
