package main

// Mint an admin token for the listing endpoints:
//   JWT_SECRET=... go run ./cmd/admintoken -sub ops -email ops@example.com -ttl 12h

import (
	"flag"
	"fmt"
	"log"
	"time"

	"audit-backend/internal/shared/auth"
	"audit-backend/internal/shared/config"
)

func main() {
	sub := flag.String("sub", "admin", "token subject")
	email := flag.String("email", "", "optional email claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	// Loads .env so JWT_SECRET can live alongside the other local settings.
	_ = config.Load()

	token, err := auth.SignJWT(auth.Claims{Sub: *sub, Email: *email, Role: auth.RoleAdmin}, *ttl)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	fmt.Println(token)
}
