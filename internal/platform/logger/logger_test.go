package logger

import (
	"strings"
	"testing"
)

func TestSanitizeKVs_RedactsAndHashes(t *testing.T) {
	out := sanitizeKVs([]interface{}{
		"x-import-secret", "s3cr3t",
		"email", "a@example.com",
		"user_id", "7b0a9d3c-8e53-4c43-9d9c-1a2b3c4d5e6f",
		"class_id", "c1",
	})
	if len(out) != 8 {
		t.Fatalf("unexpected length: %d", len(out))
	}
	if out[1] != "[REDACTED]" {
		t.Fatalf("secret not redacted: %v", out[1])
	}
	if out[3] != "[REDACTED]" {
		t.Fatalf("email not redacted: %v", out[3])
	}
	if s, _ := out[5].(string); !strings.HasPrefix(s, "hash:") || len(s) != len("hash:")+12 {
		t.Fatalf("user_id not hashed: %v", out[5])
	}
	if out[7] != "c1" {
		t.Fatalf("class_id changed: %v", out[7])
	}
}

func TestSanitizeKVs_OddLengthKeepsTrailingKey(t *testing.T) {
	out := sanitizeKVs([]interface{}{"status", 200, "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Fatalf("unexpected output: %v", out)
	}
}

func TestSanitizeValue_RedactsJWTLookingStrings(t *testing.T) {
	jwt := "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxMjM0NTY3ODkwIn0.signature"
	if got := sanitizeValue("detail", jwt); got != "[REDACTED]" {
		t.Fatalf("expected redaction, got %v", got)
	}
}
