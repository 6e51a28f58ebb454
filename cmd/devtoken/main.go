// Command devtoken prints a bearer token signed with JWT_SECRET for local
// development against the server.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mmynk/cashcrush/internal/auth"
	"github.com/mmynk/cashcrush/internal/config"
)

func main() {
	name := flag.String("name", "Dev User", "display name")
	mail := flag.String("email", "dev@example.com", "email address")
	subject := flag.String("sub", "", "token identifier; defaults to dev|<email>")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	sub := *subject
	if sub == "" {
		sub = "dev|" + strings.ToLower(*mail)
	}

	token, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer).Issue(auth.Identity{
		TokenIdentifier: sub,
		Name:            *name,
		Email:           *mail,
	}, *ttl)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
