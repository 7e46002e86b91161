// Package services contains server-side business logic. This file implements
// UserService, which checks login credentials and issues JWTs.
package services

import (
	"context"
	"crypto/subtle"
	"time"

	"todoapi/internal/common"
	"todoapi/internal/server/auth"
	"todoapi/internal/server/config"
)

// UserService authenticates the single configured identity. Credentials
// live in immutable configuration; there is no per-user store.
type UserService struct {
	username              string
	password              string
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService from server config.
func NewUserService(cfg *config.Config) *UserService {
	return &UserService{
		username:              cfg.AuthUsername,
		password:              cfg.AuthPassword,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Login compares the presented credentials against the configured identity
// and mints a token on success. Both fields are compared in constant time
// before deciding, so a mismatch reveals nothing about which one was wrong.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password))
	if userOK&passOK != 1 {
		return "", common.ErrUnauthorized
	}

	token, err := auth.GenerateToken(username, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", common.ErrInternal
	}

	return token, nil
}
