package sqlgen

import (
	"fmt"
	"io"
	"strings"
)

var rule = strings.Repeat("=", 60)

// WriteReport writes the full announcement block for one encrypted value:
// banner, the upsert to run in the Neon console, and the verification
// query. This is the one-shot `encrypt` command's entire stdout.
func WriteReport(w io.Writer, service, encryptedValue, description string) {
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "ENCRYPTED %s API KEY\n", strings.ToUpper(service))
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run this SQL in Neon Console:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, UpsertStatement(service, encryptedValue, description))
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Verify with:")
	fmt.Fprintln(w, VerifyStatement())
	fmt.Fprintln(w, rule)
}
