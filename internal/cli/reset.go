package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/terraincognita07/facets/internal/db"
	"github.com/terraincognita07/facets/internal/security"
	"github.com/terraincognita07/facets/internal/services"
)

const temporaryPasswordLength = 14

// ResetPasswordOptions configures an operator password reset.
// With Prompt set the new password is read twice from Stdin without echo,
// otherwise a temporary password is generated and printed.
type ResetPasswordOptions struct {
	DBPath string
	Email  string
	Prompt bool
	Policy services.PasswordPolicy
	Stdin  *os.File
	Out    io.Writer
}

func RunResetPasswordCommand(options ResetPasswordOptions) error {
	email, err := services.NormalizeEmail(options.Email)
	if err != nil {
		return fmt.Errorf("invalid email address: %s", services.Message(err))
	}
	out := options.Out
	if out == nil {
		out = os.Stdout
	}

	database, err := db.OpenSQLite(options.DBPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer db.Close(database)

	registry := services.NewRegistry(db.NewGateway(database, db.NewRequestCache()), services.WithPasswordPolicy(options.Policy))
	profile, err := registry.Profiles().GetProfileByEmail(email)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return fmt.Errorf("profile %s not found", email)
		}
		return fmt.Errorf("load profile: %w", err)
	}

	password := ""
	if options.Prompt {
		password, err = promptNewPassword(options.Stdin, out, options.Policy)
	} else {
		password, err = generateTemporaryPassword(temporaryPasswordLength)
	}
	if err != nil {
		return err
	}

	if err := registry.Profiles().SetPassword(profile, password); err != nil {
		return fmt.Errorf("update profile password: %w", err)
	}

	fmt.Fprintf(out, "Password reset successful for %s\n", email)
	if !options.Prompt {
		fmt.Fprintf(out, "Temporary password: %s\n", password)
		fmt.Fprintln(out, "Ask the user to change it from the settings page after signing in.")
	}
	return nil
}

func promptNewPassword(stdin *os.File, out io.Writer, policy services.PasswordPolicy) (string, error) {
	if stdin == nil {
		stdin = os.Stdin
	}

	fmt.Fprint(out, "New password: ")
	first, err := readPasswordNoEcho(stdin)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	fmt.Fprint(out, "Confirm password: ")
	second, err := readPasswordNoEcho(stdin)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password confirmation: %w", err)
	}

	return checkPromptedPassword(string(first), string(second), policy)
}

func checkPromptedPassword(password string, confirmation string, policy services.PasswordPolicy) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is required")
	}
	if password != confirmation {
		return "", errors.New("passwords do not match")
	}
	if err := policy.Validate(password); err != nil {
		return "", errors.New(services.Message(err))
	}
	return password, nil
}

func generateTemporaryPassword(length int) (string, error) {
	password, err := security.TemporaryPassword(length)
	if err != nil {
		return "", fmt.Errorf("generate temporary password: %w", err)
	}
	return password, nil
}
