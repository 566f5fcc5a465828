package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/terraincognita07/facets/internal/db"
	"github.com/terraincognita07/facets/internal/seed"
	"github.com/terraincognita07/facets/internal/services"
)

type SeedOptions struct {
	DBPath         string
	IdentitiesPath string
	ThemesPath     string
	Out            io.Writer
}

// RunSeedCommand stores the reference data that is missing from the database.
func RunSeedCommand(options SeedOptions) error {
	out := options.Out
	if out == nil {
		out = os.Stdout
	}

	database, err := db.OpenSQLite(options.DBPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer db.Close(database)

	registry := services.NewRegistry(db.NewGateway(database, db.NewRequestCache()))
	report, err := seed.ApplyFiles(registry, options.IdentitiesPath, options.ThemesPath)
	if err != nil {
		return fmt.Errorf("seed database: %w", err)
	}

	if report.Empty() {
		fmt.Fprintln(out, "Reference data already up to date.")
		return nil
	}
	if len(report.Templates) > 0 {
		fmt.Fprintf(out, "Identity templates created: %s\n", strings.Join(report.Templates, ", "))
	}
	if len(report.Themes) > 0 {
		fmt.Fprintf(out, "Themes created: %s\n", strings.Join(report.Themes, ", "))
	}
	return nil
}
