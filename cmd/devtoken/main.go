// server/cmd/devtoken/main.go
//
// devtoken in ra một JWT để thử API ở môi trường local, ký bằng jwt.secret
// trong config (hoặc JWT_SECRET).
//
//	go run ./cmd/devtoken -user uid-123 -email worker@example.com
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"waste-retrieval-api-server/config"
	"waste-retrieval-api-server/internal/auth"

	"github.com/joho/godotenv"
)

func main() {
	userID := flag.String("user", "local-dev", "user ID placed in the token subject")
	email := flag.String("email", "", "email claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	configDir := flag.String("config", "./config", "directory containing config.yaml")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not load config: %v\n", err)
		os.Exit(1)
	}

	token, err := auth.GenerateJWT([]byte(cfg.JWT.Secret), cfg.JWT.Issuer, *userID, *email, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not sign token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
