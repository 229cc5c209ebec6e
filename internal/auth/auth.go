// Package auth signs the panel user in and out against the auth backend
// and keeps the resulting session in the shared key-value namespace.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/nhle/admin-panel/internal/model"
)

// Credentials is the login form input.
type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// Signup is the registration form input.
type Signup struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// InputError reports the first invalid form field.
type InputError struct {
	Field string
	Tag   string
}

func (e *InputError) Error() string {
	switch e.Tag {
	case "required":
		return fmt.Sprintf("%s is required", e.Field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", e.Field)
	case "min":
		return fmt.Sprintf("%s is too short", e.Field)
	default:
		return fmt.Sprintf("%s is invalid", e.Field)
	}
}

// Service combines the backend client with the stored session.
type Service struct {
	client   *Client
	session  *Session
	validate *validator.Validate
}

// NewService creates a Service.
func NewService(client *Client, session *Session) *Service {
	return &Service{
		client:   client,
		session:  session,
		validate: validator.New(),
	}
}

// Login signs in. It returns false with a nil error when the backend
// rejects the credentials, and an error for invalid input or when the
// backend cannot be reached.
func (s *Service) Login(ctx context.Context, email, password string) (bool, error) {
	if err := s.check(Credentials{Email: email, Password: password}); err != nil {
		return false, err
	}

	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusBadRequest) {
			log.Printf("auth: login rejected: %v", apiErr)
			return false, nil
		}
		return false, err
	}

	return true, s.store(ctx, resp)
}

// Signup registers and signs in. Backend rejections are returned as
// *APIError so the form can show the message.
func (s *Service) Signup(ctx context.Context, name, email, password string) error {
	if err := s.check(Signup{Name: name, Email: email, Password: password}); err != nil {
		return err
	}

	resp, err := s.client.Register(ctx, name, email, password)
	if err != nil {
		return err
	}
	return s.store(ctx, resp)
}

// Logout forgets the session.
func (s *Service) Logout(ctx context.Context) error {
	return s.session.Clear(ctx)
}

// Current returns the signed-in user, or nil.
func (s *Service) Current(ctx context.Context) *model.User {
	return s.session.Load(ctx).User
}

func (s *Service) store(ctx context.Context, resp *Response) error {
	token := resp.Token
	return s.session.Save(ctx, model.AuthState{
		User: &model.User{
			ID:    resp.ID,
			Name:  resp.Name,
			Email: resp.Email,
			Role:  resp.Role,
		},
		Token: &token,
	})
}

func (s *Service) check(input any) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &InputError{Field: verrs[0].Field(), Tag: verrs[0].Tag()}
	}
	return err
}
