package sqlgen

import (
	"strings"
	"testing"
)

func TestQuoteLiteral(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"openrouter", "'openrouter'"},
		{"", "''"},
		{"it's", "'it''s'"},
		{"''", "''''''"},
		{"a'b'c", "'a''b''c'"},
	}

	for _, tc := range cases {
		if got := QuoteLiteral(tc.in); got != tc.want {
			t.Errorf("QuoteLiteral(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestUpsertStatement(t *testing.T) {
	got := UpsertStatement("openrouter", "QUJD", "OpenRouter API Key")

	want := strings.Join([]string{
		"INSERT INTO api_keys (service_name, encrypted_value, description, updated_at)",
		"VALUES ('openrouter', 'QUJD', 'OpenRouter API Key', CURRENT_TIMESTAMP)",
		"ON CONFLICT (service_name)",
		"DO UPDATE SET encrypted_value = EXCLUDED.encrypted_value, updated_at = CURRENT_TIMESTAMP;",
	}, "\n")

	if got != want {
		t.Errorf("statement mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestUpsertStatementEscapesDescription(t *testing.T) {
	got := UpsertStatement("svc", "QUJD", "Bob's key")
	if !strings.Contains(got, "'Bob''s key'") {
		t.Errorf("description not escaped:\n%s", got)
	}
	// A description can never terminate the statement early.
	if strings.Count(got, ";") != 1 || !strings.HasSuffix(got, ";") {
		t.Errorf("unexpected statement terminators:\n%s", got)
	}
}

func TestVerifyStatement(t *testing.T) {
	want := "SELECT service_name, description, updated_at FROM api_keys;"
	if got := VerifyStatement(); got != want {
		t.Errorf("VerifyStatement() = %q, want %q", got, want)
	}
}

func TestWriteReport(t *testing.T) {
	var sb strings.Builder
	WriteReport(&sb, "openrouter", "QUJD", "OpenRouter API Key")
	out := sb.String()

	banner := strings.Repeat("=", 60)
	for _, want := range []string{
		banner,
		"ENCRYPTED OPENROUTER API KEY",
		"Run this SQL in Neon Console:",
		"INSERT INTO api_keys (service_name, encrypted_value, description, updated_at)",
		"VALUES ('openrouter', 'QUJD', 'OpenRouter API Key', CURRENT_TIMESTAMP)",
		"Verify with:",
		"SELECT service_name, description, updated_at FROM api_keys;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}

	// Four rule lines frame the two sections.
	if got := strings.Count(out, banner); got != 4 {
		t.Errorf("report has %d rule lines, want 4", got)
	}
}
