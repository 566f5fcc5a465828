package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/terraincognita07/facets/internal/db"
)

// RunMigrationStatusCommand opens the database, applying pending migrations, and lists what is applied.
func RunMigrationStatusCommand(dbPath string, out io.Writer) error {
	if out == nil {
		out = os.Stdout
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer db.Close(database)

	records, err := db.AppliedMigrations(database)
	if err != nil {
		return fmt.Errorf("load applied migrations: %w", err)
	}

	writer := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(writer, "VERSION\tNAME\tAPPLIED AT")
	for _, record := range records {
		fmt.Fprintf(writer, "%s\t%s\t%s\n", record.Version, record.Name, record.AppliedAt)
	}
	return writer.Flush()
}
