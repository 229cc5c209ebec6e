// Package settings validates and saves the company, website and account
// forms into the YAML configuration file.
package settings

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	gosync "sync"

	"github.com/go-playground/validator/v10"

	"github.com/nhle/admin-panel/internal/model"
)

// ValidationError maps each invalid field to a message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Lines(), "; ")
}

// Lines returns the messages ordered by field name.
func (e *ValidationError) Lines() []string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, e.Fields[name])
	}
	return lines
}

// AccountForm is the account page input. The password fields are checked
// but never stored.
type AccountForm struct {
	Username        string `validate:"required,alphanum"`
	FullName        string `validate:"required"`
	Email           string `validate:"required,email"`
	AvatarURL       string `validate:"omitempty,url"`
	NewPassword     string `validate:"omitempty,min=6"`
	ConfirmPassword string `validate:"eqfield=NewPassword"`
}

var messages = map[string]string{
	"required":  "%s is required",
	"email":     "%s must be a valid email address",
	"url":       "%s must be a valid URL",
	"latitude":  "%s must be between -90 and 90",
	"longitude": "%s must be between -180 and 180",
	"numeric":   "%s must be a number",
	"alphanum":  "%s may contain only letters and digits",
	"min":       "%s must be at least %s characters",
	"eqfield":   "Passwords do not match",
}

// Service edits the settings sections of one configuration file.
type Service struct {
	path     string
	validate *validator.Validate

	mu  gosync.Mutex
	cfg *model.AppConfig
}

// NewService edits cfg, saving it to path after every successful change.
func NewService(path string, cfg *model.AppConfig) *Service {
	return &Service{path: path, cfg: cfg, validate: validator.New()}
}

// Company returns the saved company profile.
func (s *Service) Company() model.CompanySettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Company
}

// Website returns the saved website profile.
func (s *Service) Website() model.WebsiteSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Website
}

// Account returns the saved account profile.
func (s *Service) Account() model.AccountSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Account
}

// SaveCompany validates and stores c.
func (s *Service) SaveCompany(c model.CompanySettings) error {
	c = trimCompany(c)
	if err := s.check(c); err != nil {
		return err
	}
	return s.save(func(cfg *model.AppConfig) { cfg.Company = c })
}

// SaveWebsite validates and stores w.
func (s *Service) SaveWebsite(w model.WebsiteSettings) error {
	w.Name = strings.TrimSpace(w.Name)
	w.Tagline = strings.TrimSpace(w.Tagline)
	w.FaviconURL = strings.TrimSpace(w.FaviconURL)
	if err := s.check(w); err != nil {
		return err
	}
	return s.save(func(cfg *model.AppConfig) { cfg.Website = w })
}

// SaveAccount validates f and stores its profile fields.
func (s *Service) SaveAccount(f AccountForm) error {
	f.Username = strings.TrimSpace(f.Username)
	f.FullName = strings.TrimSpace(f.FullName)
	f.Email = strings.TrimSpace(f.Email)
	f.AvatarURL = strings.TrimSpace(f.AvatarURL)
	if err := s.check(f); err != nil {
		return err
	}
	return s.save(func(cfg *model.AppConfig) {
		cfg.Account = model.AccountSettings{
			Username:  f.Username,
			FullName:  f.FullName,
			Email:     f.Email,
			AvatarURL: f.AvatarURL,
		}
	})
}

// Language returns the saved display language.
func (s *Service) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Display.Language
}

// SaveLanguage stores the display language.
func (s *Service) SaveLanguage(lang string) error {
	return s.save(func(cfg *model.AppConfig) { cfg.Display.Language = lang })
}

func (s *Service) save(apply func(*model.AppConfig)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := *s.cfg
	apply(&next)
	if err := model.SaveConfig(s.path, &next); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	*s.cfg = next
	return nil
}

// check runs struct validation and collects every failing field.
func (s *Service) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		format, ok := messages[fe.Tag()]
		if !ok {
			format = "%s is invalid"
		}
		if strings.Count(format, "%s") == 2 {
			out.Fields[fe.Field()] = fmt.Sprintf(format, fe.Field(), fe.Param())
		} else if strings.Contains(format, "%s") {
			out.Fields[fe.Field()] = fmt.Sprintf(format, fe.Field())
		} else {
			out.Fields[fe.Field()] = format
		}
	}
	return out
}

func trimCompany(c model.CompanySettings) model.CompanySettings {
	for _, f := range []*string{
		&c.Name, &c.Address, &c.City, &c.Postal, &c.Phone,
		&c.Email, &c.LogoURL, &c.Latitude, &c.Longitude, &c.Altitude,
	} {
		*f = strings.TrimSpace(*f)
	}
	return c
}
