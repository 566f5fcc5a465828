package services

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/terraincognita07/facets/internal/db"
	"github.com/terraincognita07/facets/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxPersonNameLength = 50
	dateLayout          = "2006-01-02"
	invalidSignIn       = "Invalid email or password"
)

type RegistrationInput struct {
	FirstName       string
	Surname         string
	DateOfBirth     string
	Email           string
	Password        string
	ConfirmPassword string
	ThemeName       string
	StayLoggedIn    bool
}

// SettingsUpdate carries optional profile preference changes.
type SettingsUpdate struct {
	ThemeName    *string
	ThemeMode    *string
	StayLoggedIn *bool
}

type ProfileService struct {
	gateway    *db.Gateway
	identities *IdentityService
	themes     *ThemeService
	policy     PasswordPolicy
	now        clock
}

func NewProfileService(gateway *db.Gateway, identities *IdentityService, themes *ThemeService, policy PasswordPolicy, now func() time.Time) *ProfileService {
	return &ProfileService{gateway: gateway, identities: identities, themes: themes, policy: policy, now: now}
}

// CreateProfile stores the profile and its full identity set in one transaction.
func (service *ProfileService) CreateProfile(input RegistrationInput) (models.Profile, error) {
	firstName, err := normalizePersonName("First name", input.FirstName)
	if err != nil {
		return models.Profile{}, err
	}
	surname, err := normalizePersonName("Surname", input.Surname)
	if err != nil {
		return models.Profile{}, err
	}
	email, err := NormalizeEmail(input.Email)
	if err != nil {
		return models.Profile{}, err
	}
	dateOfBirth, err := service.parseDateOfBirth(input.DateOfBirth)
	if err != nil {
		return models.Profile{}, err
	}
	if input.Password != input.ConfirmPassword {
		return models.Profile{}, invalid("Passwords do not match")
	}
	if err := service.policy.Validate(input.Password); err != nil {
		return models.Profile{}, err
	}

	exists, err := db.Count[models.Profile](service.gateway, db.By("email", email))
	if err != nil {
		return models.Profile{}, storeFailure("checking email", err)
	}
	if exists > 0 {
		return models.Profile{}, invalid("An account with this email already exists")
	}

	themeID, err := service.resolveThemeID(input.ThemeName)
	if err != nil {
		return models.Profile{}, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Profile{}, storeFailure("securing password", err)
	}

	profile := models.Profile{
		FirstName:    firstName,
		Surname:      surname,
		DateOfBirth:  dateOfBirth,
		Email:        email,
		PasswordHash: string(passwordHash),
		StayLoggedIn: input.StayLoggedIn,
		ThemeID:      themeID,
		ThemeMode:    models.ThemeModeSystem,
		CreatedAt:    service.now.timestamp(),
	}
	err = service.gateway.Transaction(func(tx *db.Gateway) error {
		if err := tx.Create(&profile); err != nil {
			return err
		}
		identities, err := service.identities.initializeIdentities(tx, profile.ID)
		if err != nil {
			return err
		}
		if err := db.CreateMany(tx, identities); err != nil {
			return err
		}
		profile.Identities = identities
		return nil
	})
	if err != nil {
		return models.Profile{}, storeFailure("creating profile", err)
	}
	return profile, nil
}

// CheckSignIn never reveals whether the email or the password was wrong.
func (service *ProfileService) CheckSignIn(email string, password string) (models.Profile, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" || password == "" {
		return models.Profile{}, unauthenticated(invalidSignIn)
	}

	profile, err := db.FindOne[models.Profile](service.gateway, db.By("email", normalized))
	if err != nil {
		if isNotFound(err) {
			return models.Profile{}, unauthenticated(invalidSignIn)
		}
		return models.Profile{}, storeFailure("signing in", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)) != nil {
		return models.Profile{}, unauthenticated(invalidSignIn)
	}
	return profile, nil
}

func (service *ProfileService) GetProfileByID(profileID uint) (models.Profile, error) {
	profile, err := db.FindOne[models.Profile](service.gateway, db.By("id", profileID).With("Theme", "Identities", "Identities.Template"))
	if err != nil {
		return models.Profile{}, lookupFailure("Profile", err)
	}
	return profile, nil
}

func (service *ProfileService) GetProfileByEmail(email string) (models.Profile, error) {
	profile, err := db.FindOne[models.Profile](service.gateway, db.By("email", strings.ToLower(strings.TrimSpace(email))))
	if err != nil {
		return models.Profile{}, lookupFailure("Profile", err)
	}
	return profile, nil
}

func (service *ProfileService) UpdateSettings(profileID uint, update SettingsUpdate) (models.Profile, error) {
	profile, err := service.GetProfileByID(profileID)
	if err != nil {
		return models.Profile{}, err
	}

	columns := make([]string, 0, 3)
	if update.ThemeName != nil {
		theme, err := service.themes.GetByName(*update.ThemeName)
		if err != nil {
			return models.Profile{}, err
		}
		if profile.ThemeID == nil || *profile.ThemeID != theme.ID {
			profile.ThemeID = &theme.ID
			profile.Theme = &theme
			columns = append(columns, "theme_id")
		}
	}
	if update.ThemeMode != nil {
		mode := strings.ToLower(strings.TrimSpace(*update.ThemeMode))
		if !models.IsThemeMode(mode) {
			return models.Profile{}, invalid("Theme mode must be light, dark or system")
		}
		if mode != profile.ThemeMode {
			profile.ThemeMode = mode
			columns = append(columns, "theme_mode")
		}
	}
	if update.StayLoggedIn != nil && *update.StayLoggedIn != profile.StayLoggedIn {
		profile.StayLoggedIn = *update.StayLoggedIn
		columns = append(columns, "stay_logged_in")
	}
	if len(columns) == 0 {
		return profile, nil
	}

	if err := service.gateway.Update(&profile, columns...); err != nil {
		return models.Profile{}, storeFailure("updating settings", err)
	}
	return profile, nil
}

func (service *ProfileService) ChangePassword(profileID uint, currentPassword string, newPassword string, confirmPassword string) error {
	if currentPassword == "" || newPassword == "" || confirmPassword == "" {
		return invalid("All password fields are required")
	}
	if newPassword != confirmPassword {
		return invalid("Passwords do not match")
	}

	profile, err := db.FindOne[models.Profile](service.gateway, db.By("id", profileID))
	if err != nil {
		return lookupFailure("Profile", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(currentPassword)) != nil {
		return unauthenticated("Current password is incorrect")
	}
	if currentPassword == newPassword {
		return invalid("New password must differ from the current password")
	}
	if err := service.policy.Validate(newPassword); err != nil {
		return err
	}

	return service.SetPassword(profile, newPassword)
}

// SetPassword stores a new hash without checking the previous password.
func (service *ProfileService) SetPassword(profile models.Profile, password string) error {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return storeFailure("securing password", err)
	}
	profile.PasswordHash = string(passwordHash)
	return storeFailure("updating password", service.gateway.Update(&profile, "password_hash"))
}

// DeleteAccount removes the profile and everything it owns after confirming the password.
func (service *ProfileService) DeleteAccount(profileID uint, password string) error {
	profile, err := db.FindOne[models.Profile](service.gateway, db.By("id", profileID))
	if err != nil {
		return lookupFailure("Profile", err)
	}
	if password == "" || bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)) != nil {
		return unauthenticated("Password is incorrect")
	}

	err = service.gateway.Transaction(func(tx *db.Gateway) error {
		projects, err := db.FindMany[models.Project](tx, db.By("owner_id", profile.ID))
		if err != nil {
			return err
		}
		projectIDs := make([]uint, 0, len(projects))
		for _, project := range projects {
			projectIDs = append(projectIDs, project.ID)
		}
		if len(projectIDs) > 0 {
			if _, err := db.DeleteWhere[models.Task](tx, db.By("project_id", projectIDs)); err != nil {
				return err
			}
		}
		if _, err := db.DeleteWhere[models.Project](tx, db.By("owner_id", profile.ID)); err != nil {
			return err
		}
		if _, err := db.DeleteWhere[models.Thought](tx, db.By("profile_id", profile.ID)); err != nil {
			return err
		}
		if _, err := db.DeleteWhere[models.Identity](tx, db.By("profile_id", profile.ID)); err != nil {
			return err
		}
		return tx.Delete(&models.Profile{ID: profile.ID})
	})
	return storeFailure("deleting account", err)
}

// resolveThemeID falls back to the default theme when the named one is missing.
func (service *ProfileService) resolveThemeID(themeName string) (*uint, error) {
	if strings.TrimSpace(themeName) != "" {
		theme, err := service.themes.GetByName(themeName)
		if err == nil {
			return &theme.ID, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}

	theme, err := service.themes.GetDefault()
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &theme.ID, nil
}

func (service *ProfileService) parseDateOfBirth(raw string) (time.Time, error) {
	value, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, invalid("Date of birth must use the YYYY-MM-DD format")
	}
	if value.After(service.now.today()) {
		return time.Time{}, invalid("Date of birth cannot be in the future")
	}
	return value, nil
}

func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", invalid("Email is required")
	}
	address, err := mail.ParseAddress(email)
	if err != nil || address.Address != email {
		return "", invalid("Email address is invalid")
	}
	return email, nil
}

func normalizePersonName(field string, raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", invalid("%s is required", field)
	}
	if utf8.RuneCountInString(name) > maxPersonNameLength {
		return "", invalid("%s must be at most %d characters", field, maxPersonNameLength)
	}
	for _, char := range name {
		if !unicode.IsLetter(char) && char != ' ' && char != '-' && char != '\'' {
			return "", invalid("%s may only contain letters, spaces, hyphens and apostrophes", field)
		}
	}
	return name, nil
}
