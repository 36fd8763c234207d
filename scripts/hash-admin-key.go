// Command hash-admin-key generates an admin API key and the argon2id
// hash to configure as ADMIN_KEY_HASH.
//
// Usage:
//
//	go run ./scripts/hash-admin-key.go
//	go run ./scripts/hash-admin-key.go -key existing-key -format json
package main

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/booldo/booldo/internal/auth"
)

type output struct {
	Key  string `json:"key"`
	Hash string `json:"hash"`
}

func main() {
	var (
		key    = flag.String("key", "", "Key to hash; generated when empty")
		format = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	adminKey := *key
	if adminKey == "" {
		raw := make([]byte, 32)
		if _, err := rand.Read(raw); err != nil {
			fmt.Fprintf(os.Stderr, "generate key: %v\n", err)
			os.Exit(1)
		}
		adminKey = "bd_" + base64.RawURLEncoding.EncodeToString(raw)
	}

	hash, err := auth.HashKey(adminKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash key: %v\n", err)
		os.Exit(1)
	}

	out := output{Key: adminKey, Hash: hash}

	switch *format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "encode output: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Println("Store the key securely; only the hash goes in the environment.")
		fmt.Printf("ADMIN_KEY:      %s\n", out.Key)
		fmt.Printf("ADMIN_KEY_HASH: %s\n", out.Hash)
	}
}
