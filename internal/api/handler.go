package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/facets/internal/services"
	"gorm.io/gorm"
)

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour

	loginAttemptLimit  = 5
	loginAttemptWindow = 15 * time.Minute
)

type Handler struct {
	database     *gorm.DB
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	policy       services.PasswordPolicy
	now          func() time.Time
	logins       *loginThrottle
}

type HandlerOption func(*Handler)

func WithLocation(location *time.Location) HandlerOption {
	return func(handler *Handler) {
		if location != nil {
			handler.location = location
		}
	}
}

func WithCookieSecure(secure bool) HandlerOption {
	return func(handler *Handler) {
		handler.cookieSecure = secure
	}
}

func WithPasswordPolicy(policy services.PasswordPolicy) HandlerOption {
	return func(handler *Handler) {
		handler.policy = policy
	}
}

// WithClock replaces the wall clock used for calendar days and session expiry.
func WithClock(now func() time.Time) HandlerOption {
	return func(handler *Handler) {
		if now != nil {
			handler.now = now
		}
	}
}

func NewHandler(database *gorm.DB, secret string, options ...HandlerOption) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if secret == "" {
		return nil, errors.New("secret key is required")
	}

	handler := &Handler{
		database:  database,
		secretKey: []byte(secret),
		location:  time.UTC,
		policy:    services.DefaultPasswordPolicy(),
		now:       time.Now,
		logins:    newLoginThrottle(loginAttemptLimit, loginAttemptWindow),
	}
	for _, option := range options {
		option(handler)
	}
	return handler, nil
}

// clock reports the current instant in the handler's location so calendar days follow TZ.
func (handler *Handler) clock() time.Time {
	return handler.now().In(handler.location)
}
