package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
)

func decode(t *testing.T, app *fiber.App, path string) (int, SemanticResponse) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var body SemanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	return resp.StatusCode, body
}

func TestError_CarriesRequestID(t *testing.T) {
	app := fiber.New()
	app.Get("/fail", func(c fiber.Ctx) error {
		c.Set(HeaderRequestID, "rid-123")
		return Error(c, fiber.StatusGatewayTimeout, "", nil)
	})

	status, body := decode(t, app, "/fail")
	if status != fiber.StatusGatewayTimeout || body.Status != fiber.StatusGatewayTimeout {
		t.Fatalf("unexpected status %d / %d", status, body.Status)
	}
	if body.Message != MessageGatewayTimeout {
		t.Fatalf("expected default message, got %q", body.Message)
	}
	if body.RequestID != "rid-123" {
		t.Fatalf("expected request id, got %q", body.RequestID)
	}
}

func TestCreated_DefaultsAndOmitsRequestID(t *testing.T) {
	app := fiber.New()
	app.Get("/new", func(c fiber.Ctx) error {
		c.Set(HeaderRequestID, "rid-456")
		return Created(c, "", fiber.Map{"id": "x"})
	})

	status, body := decode(t, app, "/new")
	if status != fiber.StatusCreated || body.Message != MessageCreated {
		t.Fatalf("unexpected response %d %+v", status, body)
	}
	if body.RequestID != "" {
		t.Fatalf("success envelopes must not carry a request id")
	}
}

func TestNormalizeStatus_OutOfRange(t *testing.T) {
	if got := normalizeStatus(42); got != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", got)
	}
	if got := normalizeMessage("", 418); got != MessageError {
		t.Fatalf("expected generic message, got %q", got)
	}
}
