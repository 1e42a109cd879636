// Command issue_token prints a signed access token for local testing of the
// question endpoint. It uses the same JWT configuration as the API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"quiz-forge/internal/config"
	"quiz-forge/internal/service"
	"quiz-forge/internal/util"
)

func main() {
	userID := flag.String("user", "", "subject of the token (a new ULID when empty)")
	ttl := flag.Duration("ttl", 0, "token lifetime (defaults to jwt.access_token_ttl)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	authService, err := service.NewAuthService(cfg.JWT)
	if err != nil {
		log.Fatalf("Failed to create AuthService: %v", err)
	}

	subject := *userID
	if subject == "" {
		subject = util.NewULID()
	}
	lifetime := *ttl
	if lifetime <= 0 {
		lifetime = cfg.JWT.AccessTokenTTL
	}
	if lifetime <= 0 {
		lifetime = time.Hour
	}

	token, err := authService.CreateJWT(context.Background(), subject, lifetime, service.TokenTypeAccess)
	if err != nil {
		log.Fatalf("Failed to create token: %v", err)
	}
	fmt.Println(token)
}
