package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidPassphrase = errors.New("invalid passphrase")

const (
	RoleOwner  = "owner"
	RoleEditor = "editor"
)

// Service issues and validates board-scoped access tokens. There are no user
// accounts: a token grants entry to exactly one board, under a display name
// chosen at join time.
type Service struct {
	jwtSecret []byte
}

func NewService(jwtSecret string) *Service {
	return &Service{jwtSecret: []byte(jwtSecret)}
}

// Grant is what a validated token carries.
type Grant struct {
	BoardID     string
	DisplayName string
	Role        string
}

func (s *Service) IssueBoardToken(boardID, displayName, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  boardID,
		"name": displayName,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

func (s *Service) ValidateToken(tokenString string) (*Grant, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	boardID, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("invalid token subject")
	}
	displayName, _ := claims["name"].(string)
	role, _ := claims["role"].(string)

	return &Grant{BoardID: boardID, DisplayName: displayName, Role: role}, nil
}

// HashPassphrase hashes a board passphrase for in-memory storage.
func HashPassphrase(passphrase string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), 12)
	if err != nil {
		return "", fmt.Errorf("hash passphrase: %w", err)
	}
	return string(hash), nil
}

// CheckPassphrase compares a passphrase against its stored hash.
func CheckPassphrase(hash, passphrase string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(passphrase)); err != nil {
		return ErrInvalidPassphrase
	}
	return nil
}
