package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("invalid_type", nil); msg == "invalid_type" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("invalid_type", nil); msg == "invalid type" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_EmbedsData(t *testing.T) {
	msg := T("invalid_type", map[string]string{"expected": "int", "observed": "string"})
	if msg != "expected int, got string" {
		t.Fatalf("unexpected message: %q", msg)
	}

	msg = T("uniqueness", map[string]string{"first": "2"})
	if msg != "duplicate value, first seen at row 2" {
		t.Fatalf("unexpected message: %q", msg)
	}

	// unknown codes fall back to the code itself
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("unexpected fallback: %q", msg)
	}
}
