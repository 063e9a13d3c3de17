package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

type samplePayload struct {
	Name  string `json:"name" validate:"required"`
	Count int    `json:"count" validate:"min=1,max=10"`
}

func TestDecodeJSONBodyValid(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"widget","count":3}`))

	var payload samplePayload
	if err := DecodeJSONBody(r, &payload); err != nil {
		t.Fatalf("DecodeJSONBody: %v", err)
	}
	if payload.Name != "widget" || payload.Count != 3 {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestDecodeJSONBodyRejectsMalformedJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":`))

	var payload samplePayload
	err := DecodeJSONBody(r, &payload)
	if err == nil {
		t.Fatal("expected malformed body to be rejected")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"widget","count":1,"extra":true}`))

	var payload samplePayload
	if err := DecodeJSONBody(r, &payload); err == nil {
		t.Fatal("expected unknown field to be rejected")
	}
}

func TestDecodeJSONBodyReportsFieldsByJSONName(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"count":99}`))

	var payload samplePayload
	err := DecodeJSONBody(r, &payload)
	if err == nil {
		t.Fatal("expected validation failure")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %v", typed.Details())
	}
	if _, ok := details["name"]; !ok {
		t.Fatalf("expected json tag name in details, got %v", details)
	}
	if _, ok := details["count"]; !ok {
		t.Fatalf("expected count violation in details, got %v", details)
	}
}

func TestParseQueryInt(t *testing.T) {
	r := httptest.NewRequest("GET", "/?limit=5", nil)
	got, err := ParseQueryInt(r, "limit", 10, 1, 50)
	if err != nil {
		t.Fatalf("ParseQueryInt: %v", err)
	}
	if got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}

	r = httptest.NewRequest("GET", "/", nil)
	if got, _ := ParseQueryInt(r, "limit", 10, 1, 50); got != 10 {
		t.Fatalf("expected default 10, got %d", got)
	}

	r = httptest.NewRequest("GET", "/?limit=oops", nil)
	if _, err := ParseQueryInt(r, "limit", 10, 1, 50); err == nil {
		t.Fatal("expected non-numeric value to be rejected")
	}

	r = httptest.NewRequest("GET", "/?limit=500", nil)
	if _, err := ParseQueryInt(r, "limit", 10, 1, 50); err == nil {
		t.Fatal("expected out-of-range value to be rejected")
	}
}
