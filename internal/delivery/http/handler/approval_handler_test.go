package handler

import (
	"errors"
	"testing"

	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func TestMapApprovalErrorStatusCodes(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{usecase.ErrClaimNotFound, fiber.StatusNotFound},
		{usecase.ErrClaimNotPending, fiber.StatusConflict},
		{usecase.ErrInvalidAction, fiber.StatusConflict},
		{usecase.ErrNotApprover, fiber.StatusForbidden},
		{usecase.ErrInvalidInput, fiber.StatusBadRequest},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, c := range cases {
		var appErr *middleware.AppError
		if !errors.As(mapApprovalError(c.err), &appErr) {
			t.Fatalf("mapApprovalError(%v) did not return an AppError", c.err)
		}
		if appErr.StatusCode != c.code {
			t.Errorf("mapApprovalError(%v) status = %d, want %d", c.err, appErr.StatusCode, c.code)
		}
	}
}
