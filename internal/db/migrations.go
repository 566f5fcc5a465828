package db

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strconv"
	"strings"

	embeddedmigrations "github.com/terraincognita07/facets/migrations"
	"gorm.io/gorm"
)

// MigrationRecord is one row of schema_migrations.
type MigrationRecord struct {
	Version   string `gorm:"column:version;primaryKey"`
	Name      string `gorm:"column:name"`
	AppliedAt string `gorm:"column:applied_at"`
}

func (MigrationRecord) TableName() string {
	return "schema_migrations"
}

// schemaMigration is a forward-only SQL file named "<number>_<label>.sql".
type schemaMigration struct {
	version  string
	sequence int
	file     string
	body     string
}

const createSchemaMigrationsSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

func applyEmbeddedMigrations(database *gorm.DB) error {
	return applyMigrations(database, embeddedmigrations.Files)
}

func applyMigrations(database *gorm.DB, files fs.FS) error {
	if err := database.Exec(createSchemaMigrationsSQL).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	available, err := loadMigrations(files)
	if err != nil {
		return err
	}

	var applied []string
	if err := database.Model(&MigrationRecord{}).Pluck("version", &applied).Error; err != nil {
		return fmt.Errorf("load applied migration versions: %w", err)
	}

	for _, migration := range available {
		if slices.Contains(applied, migration.version) {
			continue
		}
		if err := runMigration(database, migration); err != nil {
			return err
		}
	}
	return nil
}

// AppliedMigrations lists recorded migrations in version order.
func AppliedMigrations(database *gorm.DB) ([]MigrationRecord, error) {
	var records []MigrationRecord
	if err := database.Order("version ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load migration records: %w", err)
	}
	return records, nil
}

// loadMigrations reads every migration file at the root of files, ordered by sequence number.
// Files without a numeric prefix are ignored.
func loadMigrations(files fs.FS) ([]schemaMigration, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	migrations := make([]schemaMigration, 0, len(names))
	owners := make(map[string]string, len(names))
	for _, name := range names {
		version, _, found := strings.Cut(name, "_")
		if !found {
			continue
		}
		sequence, err := strconv.Atoi(version)
		if err != nil {
			continue
		}
		if previous, taken := owners[version]; taken {
			return nil, fmt.Errorf("duplicate migration version %s in %s and %s", version, previous, name)
		}
		owners[version] = name

		body, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		migrations = append(migrations, schemaMigration{version: version, sequence: sequence, file: name, body: string(body)})
	}

	slices.SortFunc(migrations, func(left, right schemaMigration) int {
		return cmp.Or(cmp.Compare(left.sequence, right.sequence), strings.Compare(left.file, right.file))
	})
	return migrations, nil
}

func runMigration(database *gorm.DB, migration schemaMigration) error {
	statements := splitSQLStatements(migration.body)
	if len(statements) == 0 {
		return fmt.Errorf("migration %s: %w", migration.file, errEmptyMigration)
	}

	return database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range statements {
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s statement %q: %w", migration.file, statement, err)
			}
		}

		record := MigrationRecord{Version: migration.version, Name: migration.file}
		if err := tx.Select("version", "name").Create(&record).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", migration.file, err)
		}
		return nil
	})
}

var errEmptyMigration = errors.New("no SQL statements")

func splitSQLStatements(script string) []string {
	var statements []string
	for part := range strings.SplitSeq(script, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}
