package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/forgo/community/api/internal/config"
	"github.com/forgo/community/api/pkg/jwt"
)

func main() {
	// Defaults come from the same environment the server reads
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	userID := flag.String("user", "", "Account ID for the token (required)")
	secret := flag.String("secret", cfg.SigningSecret(), "HS256 signing secret (default: JWT_SECRET)")
	issuer := flag.String("issuer", cfg.JWT.Issuer, "JWT issuer")
	expHours := flag.Int("exp", cfg.JWT.ExpirationHours, "Token expiration in hours")
	outputJSON := flag.Bool("json", false, "Output as JSON")

	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "Error: -user is required")
		flag.Usage()
		os.Exit(2)
	}

	jwtService, err := jwt.NewService(jwt.Config{
		Secret:     *secret,
		Issuer:     *issuer,
		Expiration: time.Duration(*expHours) * time.Hour,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating JWT service: %v\n", err)
		fmt.Fprintf(os.Stderr, "\nSet JWT_SECRET or pass -secret\n")
		os.Exit(1)
	}

	token, err := jwtService.Sign(jwt.Claims{UserID: *userID})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	expTime := time.Now().Add(jwtService.GetExpiration())
	if *outputJSON {
		output := map[string]any{
			"token":      token,
			"token_type": "Bearer",
			"expires_in": int(jwtService.GetExpiration().Seconds()),
			"expires_at": expTime.UTC().Format(time.RFC3339),
			"user_id":    *userID,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(output)
		return
	}

	fmt.Println("Session Token Generated")
	fmt.Println("=======================")
	fmt.Printf("User ID:  %s\n", *userID)
	fmt.Printf("Expires:  %s\n", expTime.Format(time.RFC3339))
	fmt.Println()
	fmt.Println("Token:")
	fmt.Println(token)
	fmt.Println()
	fmt.Println("Admin routes still require the account to hold the admin role.")
	fmt.Println("Usage:")
	fmt.Printf("  curl -H 'Authorization: Bearer %s' http://localhost:8080/api/users\n", abbreviate(token))
}

func abbreviate(token string) string {
	if len(token) <= 50 {
		return token
	}
	return token[:50] + "..."
}
