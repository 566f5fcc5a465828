package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/facets/internal/services"
)

const dateLayout = "2006-01-02"

type registerInput struct {
	FirstName       string `json:"first_name" form:"first_name"`
	Surname         string `json:"surname" form:"surname"`
	DateOfBirth     string `json:"date_of_birth" form:"date_of_birth"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
	Theme           string `json:"theme" form:"theme"`
	StayLoggedIn    bool   `json:"stay_logged_in" form:"stay_logged_in"`
}

type credentialsInput struct {
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
	RememberMe bool   `json:"remember_me" form:"remember_me"`
}

type activeIdentityInput struct {
	IdentityID uint `json:"identity_id" form:"identity_id"`
}

type identityNamesInput struct {
	Names map[string]string `json:"names"`
}

type projectInput struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	StartDate   string `json:"start_date" form:"start_date"`
	EndDate     string `json:"end_date" form:"end_date"`
}

type projectEditInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

type activeProjectInput struct {
	ProjectID uint `json:"project_id" form:"project_id"`
}

type taskInput struct {
	Name       string `json:"name" form:"name"`
	DueDate    string `json:"due_date" form:"due_date"`
	Difficulty string `json:"difficulty" form:"difficulty"`
}

type taskEditInput struct {
	Name    *string `json:"name"`
	DueDate *string `json:"due_date"`
}

type taskCompletionInput struct {
	Complete *bool `json:"complete"`
}

type thoughtInput struct {
	Content string `json:"content" form:"content"`
}

type settingsInput struct {
	Theme        *string `json:"theme"`
	ThemeMode    *string `json:"theme_mode"`
	StayLoggedIn *bool   `json:"stay_logged_in"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

type deleteAccountInput struct {
	Password string `json:"password" form:"password"`
}

func parseBody(c *fiber.Ctx, target any) error {
	if err := c.BodyParser(target); err != nil {
		return &services.Error{Kind: services.ErrValidation, Message: "Invalid request body", Err: err}
	}
	return nil
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(c.Params(name)), 10, 64)
	if err != nil || value == 0 {
		return 0, &services.Error{Kind: services.ErrValidation, Message: "Invalid " + name}
	}
	return uint(value), nil
}

// parseDate reads an optional YYYY-MM-DD value. Blank input yields nil.
func parseDate(field string, raw string) (*time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, &services.Error{Kind: services.ErrValidation, Message: field + " must use the YYYY-MM-DD format"}
	}
	return &parsed, nil
}

func parseOptionalDate(field string, raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	return parseDate(field, *raw)
}

func queryInt(c *fiber.Ctx, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &services.Error{Kind: services.ErrValidation, Message: "Invalid " + name}
	}
	return value, nil
}
