// Package sqlgen renders the operator-facing SQL for the api_keys table.
// The table itself belongs to the NotebookLLM database; this package only
// produces statements to paste into the Neon console, so every value is
// inlined as a quoted literal rather than bound as a parameter.
package sqlgen

import (
	"fmt"
	"strings"
)

// QuoteLiteral returns s as a single-quoted SQL string literal with
// embedded quotes doubled, safe to paste into the console.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// UpsertStatement renders the ready-to-run upsert for one encrypted value.
// On conflict only the ciphertext and timestamp are refreshed; the
// description set on first insert is kept.
func UpsertStatement(service, encryptedValue, description string) string {
	var b strings.Builder
	b.WriteString("INSERT INTO api_keys (service_name, encrypted_value, description, updated_at)\n")
	fmt.Fprintf(&b, "VALUES (%s, %s, %s, CURRENT_TIMESTAMP)\n",
		QuoteLiteral(service), QuoteLiteral(encryptedValue), QuoteLiteral(description))
	b.WriteString("ON CONFLICT (service_name)\n")
	b.WriteString("DO UPDATE SET encrypted_value = EXCLUDED.encrypted_value, updated_at = CURRENT_TIMESTAMP;")
	return b.String()
}

// VerifyStatement returns the row listing used to confirm an upsert landed.
func VerifyStatement() string {
	return "SELECT service_name, description, updated_at FROM api_keys;"
}
