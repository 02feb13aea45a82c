// Package users forwards user commands to the users-service channel.
// All business logic and persistence live downstream; this layer only
// translates shapes and classifies replies.
package users

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/example/bookstore-gateway/internal/auth"
	"github.com/example/bookstore-gateway/internal/gateway"
)

var (
	ErrUserNotFound = errors.New("user id not found")
	ErrNoNewUsers   = errors.New("no new users found")
)

// User is the downstream-owned record shape, referenced read-only.
type User struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Banned   bool   `json:"banned"`
}

// RegisterUser carries a plaintext password; Register hashes it before
// anything is emitted.
type RegisterUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"-"`
}

type UpdateUser struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

type Service struct {
	client *gateway.Client
}

func NewService(client *gateway.Client) *Service {
	return &Service{client: client}
}

func (s *Service) Register(ctx context.Context, reg RegisterUser) error {
	hash, err := auth.HashPassword(reg.Password)
	if err != nil {
		return err
	}
	return s.client.Emit(ctx,
		gateway.Envelope{Cmd: gateway.UsersCmd, Method: "register-user"},
		struct {
			Username     string `json:"username"`
			Email        string `json:"email"`
			HashPassword string `json:"hashPassword"`
		}{reg.Username, reg.Email, hash},
	)
}

func (s *Service) Update(ctx context.Context, userID string, upd UpdateUser) error {
	return s.client.Emit(ctx,
		gateway.Envelope{Cmd: gateway.UsersCmd, Method: "update-user"},
		struct {
			UserID string `json:"userId"`
			UpdateUser
		}{userID, upd},
	)
}

// ChangePassword hashes the new password and emits it keyed by user id.
func (s *Service) ChangePassword(ctx context.Context, userID, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	return s.client.Emit(ctx,
		gateway.Envelope{Cmd: gateway.UsersCmd, Method: "change-password"},
		struct {
			UserID       string `json:"userId"`
			HashPassword string `json:"hashPassword"`
		}{userID, hash},
	)
}

// ReportNewUsers returns recently registered users.
func (s *Service) ReportNewUsers(ctx context.Context) ([]User, error) {
	data, err := s.client.Request(ctx,
		gateway.Envelope{Cmd: gateway.UsersCmd, Method: "report-new-user"},
		struct{}{},
	)
	if err != nil {
		return nil, err
	}

	var out []User
	if len(data) > 0 && !isNull(data) {
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, err
		}
	}
	if len(out) == 0 {
		return nil, ErrNoNewUsers
	}
	return out, nil
}

// Ban requests the downstream ban; an empty reply means the id is
// unknown.
func (s *Service) Ban(ctx context.Context, userID string) error {
	return s.requestByID(ctx, "ban-user", userID)
}

func (s *Service) UnBan(ctx context.Context, userID string) error {
	return s.requestByID(ctx, "un-ban-user", userID)
}

func (s *Service) requestByID(ctx context.Context, method, userID string) error {
	data, err := s.client.Request(ctx,
		gateway.Envelope{Cmd: gateway.UsersCmd, Method: method},
		userID,
	)
	if err != nil {
		return err
	}
	if len(data) == 0 || isNull(data) {
		return ErrUserNotFound
	}
	return nil
}

func isNull(data json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}
