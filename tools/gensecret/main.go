package main

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/cmgzone/notebookllm/internal/crypto"
)

// Generates a fresh shared secret for the app and the keyvault tool.
func main() {
	secret, err := crypto.GenerateRandom(32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	encoded := base64.StdEncoding.EncodeToString(secret)

	fmt.Println("Generated shared secret (base64):")
	fmt.Println()
	fmt.Println("  " + encoded)
	fmt.Println()
	fmt.Println("Set it for the app and for keyvault:")
	fmt.Println()
	fmt.Printf("  export NOTEBOOKLLM_SECRET=%s\n", encoded)
	fmt.Println()
	fmt.Println("Values encrypted under the old secret will not open under this one;")
	fmt.Println("run 'keyvault rotate' to migrate them.")
}
