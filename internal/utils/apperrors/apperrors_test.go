package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("query is required"), http.StatusBadRequest},
		{NotFound("no search results found"), http.StatusNotFound},
		{Unauthorized("invalid token"), http.StatusUnauthorized},
		{Provider("completion call failed", errors.New("boom")), http.StatusInternalServerError},
		{Store("append failed", errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestWrappedErrorsSurviveFmtErrorf(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("search handler: %w", Provider("search provider unavailable", cause))

	if TypeOf(err) != TypeProvider {
		t.Fatalf("expected provider type through wrapping, got %s", TypeOf(err))
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable via errors.Is")
	}
}

func TestErrorStringIncludesCause(t *testing.T) {
	err := Store("insert message", errors.New("duplicate key"))
	want := "insert message: duplicate key"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}
