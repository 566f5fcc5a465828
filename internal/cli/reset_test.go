package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/terraincognita07/facets/internal/db"
	"github.com/terraincognita07/facets/internal/services"
)

func TestGenerateTemporaryPasswordSatisfiesDefaultPolicy(t *testing.T) {
	t.Parallel()

	password, err := generateTemporaryPassword(4)
	if err != nil {
		t.Fatalf("generateTemporaryPassword returned error: %v", err)
	}
	if len(password) != 8 {
		t.Fatalf("generateTemporaryPassword minimum len = %d, want 8", len(password))
	}
	if err := services.DefaultPasswordPolicy().Validate(password); err != nil {
		t.Fatalf("temporary password %q rejected by policy: %v", password, err)
	}
}

func TestCheckPromptedPassword(t *testing.T) {
	t.Parallel()

	policy := services.DefaultPasswordPolicy()
	if _, err := checkPromptedPassword("", "", policy); err == nil {
		t.Fatal("expected empty password to fail")
	}
	if _, err := checkPromptedPassword("Str0ng!Pass", "Str0ng!Past", policy); err == nil {
		t.Fatal("expected mismatched confirmation to fail")
	}
	if _, err := checkPromptedPassword("weakpass", "weakpass", policy); err == nil {
		t.Fatal("expected weak password to fail")
	}
	password, err := checkPromptedPassword("Str0ng!Pass", "Str0ng!Pass", policy)
	if err != nil {
		t.Fatalf("expected strong password to pass, got %v", err)
	}
	if password != "Str0ng!Pass" {
		t.Fatalf("expected password to be returned unchanged, got %q", password)
	}
}

func TestRunResetPasswordCommandPrintsWorkingTemporaryPassword(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "facets-cli.db")
	if err := RunSeedCommand(SeedOptions{DBPath: dbPath, Out: &bytes.Buffer{}}); err != nil {
		t.Fatalf("seed database: %v", err)
	}
	registerOperatorTarget(t, dbPath, "reset-me@example.com")

	var out bytes.Buffer
	err := RunResetPasswordCommand(ResetPasswordOptions{
		DBPath: dbPath,
		Email:  " Reset-Me@example.com ",
		Policy: services.DefaultPasswordPolicy(),
		Out:    &out,
	})
	if err != nil {
		t.Fatalf("reset password: %v", err)
	}

	password := ""
	for _, line := range strings.Split(out.String(), "\n") {
		if value, ok := strings.CutPrefix(line, "Temporary password: "); ok {
			password = value
		}
	}
	if password == "" {
		t.Fatalf("expected temporary password in output, got %q", out.String())
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("reopen database: %v", err)
	}
	defer db.Close(database)
	registry := services.NewRegistry(db.NewGateway(database, db.NewRequestCache()))
	if _, err := registry.Profiles().CheckSignIn("reset-me@example.com", password); err != nil {
		t.Fatalf("expected temporary password to sign in, got %v", err)
	}
}

func TestRunResetPasswordCommandRejectsUnknownProfile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "facets-cli.db")

	err := RunResetPasswordCommand(ResetPasswordOptions{
		DBPath: dbPath,
		Email:  "ghost@example.com",
		Policy: services.DefaultPasswordPolicy(),
		Out:    &bytes.Buffer{},
	})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}

	err = RunResetPasswordCommand(ResetPasswordOptions{DBPath: dbPath, Email: "not-an-email"})
	if err == nil || errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected invalid email error, got %v", err)
	}
}

func TestRunSeedCommandReportsNoChangesOnRerun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "facets-cli.db")

	var first bytes.Buffer
	if err := RunSeedCommand(SeedOptions{DBPath: dbPath, Out: &first}); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if !strings.Contains(first.String(), "Identity templates created") {
		t.Fatalf("expected creation report, got %q", first.String())
	}

	var second bytes.Buffer
	if err := RunSeedCommand(SeedOptions{DBPath: dbPath, Out: &second}); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if !strings.Contains(second.String(), "already up to date") {
		t.Fatalf("expected no-op report, got %q", second.String())
	}
}

func TestRunMigrationStatusCommandListsInitialMigration(t *testing.T) {
	var out bytes.Buffer
	if err := RunMigrationStatusCommand(filepath.Join(t.TempDir(), "facets-cli.db"), &out); err != nil {
		t.Fatalf("migration status: %v", err)
	}
	if !strings.Contains(out.String(), "0001") {
		t.Fatalf("expected initial migration in status output, got %q", out.String())
	}
}

func registerOperatorTarget(t *testing.T, dbPath string, email string) {
	t.Helper()

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close(database)

	registry := services.NewRegistry(db.NewGateway(database, db.NewRequestCache()))
	_, err = registry.Profiles().CreateProfile(services.RegistrationInput{
		FirstName:       "Operator",
		Surname:         "Target",
		DateOfBirth:     "1991-07-14",
		Email:           email,
		Password:        "Str0ng!Pass",
		ConfirmPassword: "Str0ng!Pass",
	})
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
}

func TestRunResetPasswordCommandReadsPromptedPassword(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "facets-cli.db")
	if err := RunSeedCommand(SeedOptions{DBPath: dbPath, Out: &bytes.Buffer{}}); err != nil {
		t.Fatalf("seed database: %v", err)
	}
	registerOperatorTarget(t, dbPath, "prompted@example.com")

	stdinPath := filepath.Join(t.TempDir(), "stdin")
	if err := os.WriteFile(stdinPath, []byte("Chosen#Secret7\nChosen#Secret7\n"), 0o600); err != nil {
		t.Fatalf("write stdin fixture: %v", err)
	}
	stdin, err := os.Open(stdinPath)
	if err != nil {
		t.Fatalf("open stdin fixture: %v", err)
	}
	defer stdin.Close()

	var out bytes.Buffer
	err = RunResetPasswordCommand(ResetPasswordOptions{
		DBPath: dbPath,
		Email:  "prompted@example.com",
		Prompt: true,
		Policy: services.DefaultPasswordPolicy(),
		Stdin:  stdin,
		Out:    &out,
	})
	if err != nil {
		t.Fatalf("reset password: %v", err)
	}
	if strings.Contains(out.String(), "Temporary password") {
		t.Fatalf("expected no temporary password for prompted reset, got %q", out.String())
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("reopen database: %v", err)
	}
	defer db.Close(database)
	registry := services.NewRegistry(db.NewGateway(database, db.NewRequestCache()))
	if _, err := registry.Profiles().CheckSignIn("prompted@example.com", "Chosen#Secret7"); err != nil {
		t.Fatalf("expected prompted password to sign in, got %v", err)
	}
}
