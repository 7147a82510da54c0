package testutil

import (
	"errors"
	"testing"

	apperrors "todoey/internal/errors"
	"todoey/internal/models"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertTitles checks that items carry exactly the expected titles, in order.
func AssertTitles(t *testing.T, items []models.Item, expected ...string) {
	t.Helper()

	got := make([]string, len(items))
	for i, item := range items {
		got[i] = item.Title
	}
	if len(got) != len(expected) {
		t.Fatalf("expected titles %q, got %q", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("expected titles %q, got %q", expected, got)
		}
	}
}
