// AngelaMos | 2026
// main.go

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sweetcorner/backend/internal/auth"
)

// Generates the ES256 key pair the API signs session tokens with.
func main() {
	privatePath := flag.String(
		"private", "keys/private.pem", "private key output path",
	)
	publicPath := flag.String(
		"public", "keys/public.pem", "public key output path",
	)
	flag.Parse()

	for _, p := range []string{*privatePath, *publicPath} {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			slog.Error("create key directory", "error", err)
			os.Exit(1)
		}
	}

	if err := auth.GenerateKeyPair(*privatePath, *publicPath); err != nil {
		slog.Error("key generation failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s and %s\n", *privatePath, *publicPath)
}
