package validation

import (
	"errors"
	"strings"
	"testing"
)

type sample struct {
	Email string   `json:"email" validate:"required,email"`
	Name  string   `json:"name" validate:"min=2,max=5"`
	Kind  string   `json:"kind" validate:"omitempty,oneof=job internship"`
	Tags  []string `json:"tags" validate:"max=2"`
}

func TestStruct_Valid(t *testing.T) {
	if err := Struct(sample{Email: "a@b.io", Name: "abc"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	err := Struct(sample{Email: "nope", Name: "x", Kind: "gig"})
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if len(verr.Fields) != 3 {
		t.Fatalf("expected 3 field errors, got %+v", verr.Fields)
	}
	want := map[string]string{
		"email": "email must be a valid email address",
		"name":  "name must be at least 2 characters",
		"kind":  "kind must be one of: job internship",
	}
	for _, f := range verr.Fields {
		if want[f.Field] != f.Message {
			t.Fatalf("field %s: got %q", f.Field, f.Message)
		}
	}
	if !strings.Contains(verr.Error(), "email must be") {
		t.Fatalf("unexpected error text %q", verr.Error())
	}
}
