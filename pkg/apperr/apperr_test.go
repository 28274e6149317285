package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{BadRequestf("bad"), http.StatusBadRequest},
		{Unauthorizedf("nope"), http.StatusUnauthorized},
		{Forbiddenf("denied"), http.StatusForbidden},
		{NotFoundf("missing"), http.StatusNotFound},
		{Conflictf("dup"), http.StatusConflict},
		{Internalf("boom"), http.StatusInternalServerError},
		{errors.New("untyped"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := StatusCode(tc.err); got != tc.want {
			t.Errorf("StatusCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestStatusCodeThroughWrapping(t *testing.T) {
	inner := NotFoundf("invoice %s not found", "ABC123")
	wrapped := fmt.Errorf("handling return: %w", inner)

	if got := StatusCode(wrapped); got != http.StatusNotFound {
		t.Errorf("StatusCode(wrapped) = %d, want 404", got)
	}
	if !IsKind(wrapped, NotFound) {
		t.Error("IsKind failed to see through fmt.Errorf wrapping")
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(Internal, "failed to store image", cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped error lost its cause")
	}
	if err.Error() != "failed to store image: disk full" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
