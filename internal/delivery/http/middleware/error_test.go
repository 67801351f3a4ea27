package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http/httptest"
	"testing"

	"empedi/internal/validation"

	"github.com/gofiber/fiber/v3"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func serve(t *testing.T, h fiber.Handler) (int, envelope) {
	t.Helper()

	app := fiber.New(fiber.Config{})
	app.Use(NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())
	app.Get("/", h)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Status != resp.StatusCode {
		t.Fatalf("envelope status %d disagrees with HTTP status %d", env.Status, resp.StatusCode)
	}
	return resp.StatusCode, env
}

func TestErrorMiddleware_AppError(t *testing.T) {
	status, env := serve(t, func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusNotFound, "Job not found", nil, errors.New("no rows"))
	})
	if status != fiber.StatusNotFound || env.Message != "Job not found" {
		t.Fatalf("unexpected %d %q", status, env.Message)
	}
}

func TestErrorMiddleware_HidesInternalCause(t *testing.T) {
	status, env := serve(t, func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "pq: relation jobs does not exist", nil, errors.New("boom"))
	})
	if status != fiber.StatusInternalServerError || env.Message != "internal server error" {
		t.Fatalf("5xx detail leaked: %d %q", status, env.Message)
	}

	status, env = serve(t, func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusGatewayTimeout, "Request timed out", nil, errors.New("context deadline exceeded"))
	})
	if status != fiber.StatusGatewayTimeout || env.Message != "request timed out" {
		t.Fatalf("expected 504 with the default message, got %d %q", status, env.Message)
	}

	status, _ = serve(t, func(c fiber.Ctx) error { return errors.New("plain") })
	if status != fiber.StatusInternalServerError {
		t.Fatalf("expected 500 for a bare error, got %d", status)
	}
}

func TestErrorMiddleware_ValidationFields(t *testing.T) {
	type req struct {
		Title string `json:"title" validate:"required"`
	}
	status, env := serve(t, func(c fiber.Ctx) error {
		return validation.Struct(req{})
	})
	if status != fiber.StatusBadRequest || env.Message != "Validation failed" {
		t.Fatalf("unexpected %d %q", status, env.Message)
	}
	var fields []validation.FieldError
	if err := json.Unmarshal(env.Data, &fields); err != nil {
		t.Fatalf("decode fields: %v", err)
	}
	if len(fields) != 1 || fields[0].Field != "title" || fields[0].Tag != "required" {
		t.Fatalf("unexpected fields %+v", fields)
	}
}

func TestErrorMiddleware_RecoversPanic(t *testing.T) {
	status, _ := serve(t, func(c fiber.Ctx) error { panic("nil map") })
	if status != fiber.StatusInternalServerError {
		t.Fatalf("expected 500 after panic, got %d", status)
	}
}

func TestErrorMiddleware_FiberError(t *testing.T) {
	status, env := serve(t, func(c fiber.Ctx) error { return fiber.NewError(fiber.StatusMethodNotAllowed, "nope") })
	if status != fiber.StatusMethodNotAllowed || env.Message != "nope" {
		t.Fatalf("unexpected %d %q", status, env.Message)
	}
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":  "abc",
		"bearer  xyz": "xyz",
		"Basic abc":   "",
		"Bearer":      "",
		"":            "",
	}
	for in, want := range cases {
		got, ok := BearerToken(in)
		if got != want || ok != (want != "") {
			t.Fatalf("BearerToken(%q) = %q, %v", in, got, ok)
		}
	}
}
