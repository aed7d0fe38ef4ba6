package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"safari-backend/internal/domain"
	"safari-backend/internal/domain/models"
	"safari-backend/internal/repositories"
	"safari-backend/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 24 * time.Hour

// StaffClaims is the bearer token payload.
type StaffClaims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService issues and verifies staff bearer tokens.
type AuthService struct {
	Store     repositories.Store
	Secret    []byte
	TTL       time.Duration
	Now       func() time.Time
	RequestID string
}

func (s AuthService) ttl() time.Duration {
	if s.TTL <= 0 {
		return defaultTokenTTL
	}
	return s.TTL
}

// Login checks the password and returns a signed token with the user.
func (s AuthService) Login(ctx context.Context, username, password string) (string, models.StaffUser, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", models.StaffUser{}, domain.ValidationError{Msg: "username and password are required"}
	}

	var user models.StaffUser
	err := s.Store.InTx(ctx, func(tx repositories.Tx) error {
		var err error
		user, err = tx.GetStaffUser(ctx, username)
		return err
	})
	if errors.Is(err, repositories.ErrNotFound) {
		return "", models.StaffUser{}, domain.UnauthorizedError{Msg: "invalid username or password"}
	}
	if err != nil {
		return "", models.StaffUser{}, storeError("staff user", err)
	}
	if user.Status != "" && user.Status != "active" {
		return "", models.StaffUser{}, domain.UnauthorizedError{Msg: "account is disabled"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", models.StaffUser{}, domain.UnauthorizedError{Msg: "invalid username or password"}
	}

	now := clock(s.Now)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, StaffClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl())),
		},
	})
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", models.StaffUser{}, domain.InternalError{Msg: "could not sign token", Err: err}
	}
	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%d role=%s", user.ID, user.Role))
	return signed, user, nil
}

// Verify parses a bearer token signed with the service secret.
func (s AuthService) Verify(raw string) (StaffClaims, error) {
	var claims StaffClaims
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.Now != nil {
		opts = append(opts, jwt.WithTimeFunc(s.Now))
	}
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, opts...)
	if err != nil {
		return StaffClaims{}, domain.UnauthorizedError{Msg: "invalid or expired token"}
	}
	return claims, nil
}

// SeedStaff creates or resets a staff account.
func (s AuthService) SeedStaff(ctx context.Context, username, name, password, role string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.ValidationError{Msg: "username and password are required"}
	}
	switch role {
	case models.RoleReception, models.RoleGate, models.RoleManager:
	default:
		return domain.ValidationError{Field: "role", Msg: "unknown role " + role}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.InternalError{Msg: "could not hash password", Err: err}
	}
	u := models.StaffUser{Username: username, Name: safe(name, username), PasswordHash: string(hash), Role: role, Status: "active"}
	err = s.Store.InTx(ctx, func(tx repositories.Tx) error {
		return tx.UpsertStaffUser(ctx, &u)
	})
	if err != nil {
		return storeError("staff user", err)
	}
	utils.LogEvent(s.RequestID, "auth", "seed", fmt.Sprintf("user_id=%d role=%s", u.ID, u.Role))
	return nil
}
