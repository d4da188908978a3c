package db

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"

	embeddedmigrations "github.com/IAMAGENCY/VITALMENTEAPP-sub000/migrations"
	"gorm.io/gorm"
)

var migrationFilePattern = regexp.MustCompile(`^(\d+)_.*\.sql$`)
var addColumnStatementPattern = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+([^\s]+)\s+ADD\s+COLUMN\s+([^\s]+)\b`)

type migrationFile struct {
	Version string
	Order   int
	Name    string
	SQL     string
}

func applyEmbeddedMigrations(database *gorm.DB) error {
	dialect := database.Dialector.Name()
	if err := ensureSchemaMigrationsTable(database, dialect); err != nil {
		return err
	}

	files, err := loadMigrationFiles(dialect)
	if err != nil {
		return err
	}

	applied, err := loadAppliedVersions(database)
	if err != nil {
		return err
	}

	for _, file := range files {
		if _, done := applied[file.Version]; done {
			continue
		}
		if err := applyMigration(database, dialect, file); err != nil {
			return err
		}
	}
	return nil
}

func ensureSchemaMigrationsTable(database *gorm.DB, dialect string) error {
	timestampType := "DATETIME"
	if dialect == DriverPostgres {
		timestampType = "TIMESTAMPTZ"
	}
	createTableSQL := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at %s NOT NULL DEFAULT CURRENT_TIMESTAMP
)`, timestampType)
	if err := database.Exec(createTableSQL).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}
	return nil
}

func loadMigrationFiles(dialect string) ([]migrationFile, error) {
	dialectFS, err := fs.Sub(embeddedmigrations.Files, dialect)
	if err != nil {
		return nil, fmt.Errorf("open %s migrations: %w", dialect, err)
	}

	entries, err := fs.ReadDir(dialectFS, ".")
	if err != nil {
		return nil, fmt.Errorf("read %s migrations: %w", dialect, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no migrations embedded for dialect %q", dialect)
	}

	files := make([]migrationFile, 0, len(entries))
	seen := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := strings.TrimSpace(entry.Name())
		matches := migrationFilePattern.FindStringSubmatch(name)
		if len(matches) != 2 {
			continue
		}

		version := matches[1]
		order, err := strconv.Atoi(version)
		if err != nil {
			return nil, fmt.Errorf("parse migration version from %s: %w", name, err)
		}
		if existing, exists := seen[version]; exists {
			return nil, fmt.Errorf("duplicate migration version %s in %s and %s", version, existing, name)
		}
		seen[version] = name

		raw, err := fs.ReadFile(dialectFS, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}

		files = append(files, migrationFile{Version: version, Order: order, Name: name, SQL: string(raw)})
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].Order == files[j].Order {
			return files[i].Name < files[j].Name
		}
		return files[i].Order < files[j].Order
	})
	return files, nil
}

func loadAppliedVersions(database *gorm.DB) (map[string]struct{}, error) {
	var rows []struct {
		Version string `gorm:"column:version"`
	}
	if err := database.Raw(`SELECT version FROM schema_migrations`).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("load applied migration versions: %w", err)
	}

	versions := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		versions[row.Version] = struct{}{}
	}
	return versions, nil
}

func applyMigration(database *gorm.DB, dialect string, file migrationFile) error {
	return database.Transaction(func(tx *gorm.DB) error {
		statements := splitSQLStatements(file.SQL)
		if len(statements) == 0 {
			return errors.New("migration has no SQL statements")
		}

		for _, statement := range statements {
			skip, err := columnAlreadyAdded(tx, dialect, statement)
			if err != nil {
				return fmt.Errorf("inspect migration %s: %w", file.Name, err)
			}
			if skip {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s statement %q: %w", file.Name, statement, err)
			}
		}

		if err := tx.Exec(
			`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`,
			file.Version,
			file.Name,
		).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", file.Name, err)
		}
		return nil
	})
}

func splitSQLStatements(sqlText string) []string {
	parts := strings.Split(sqlText, ";")
	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		statement := strings.TrimSpace(part)
		if statement == "" {
			continue
		}
		statements = append(statements, statement)
	}
	return statements
}

// columnAlreadyAdded makes ADD COLUMN statements re-runnable against schemas
// that were created before the migration table existed.
func columnAlreadyAdded(database *gorm.DB, dialect string, statement string) (bool, error) {
	matches := addColumnStatementPattern.FindStringSubmatch(strings.TrimSpace(statement))
	if len(matches) != 3 {
		return false, nil
	}

	tableName := normalizeSQLIdentifier(matches[1])
	columnName := normalizeSQLIdentifier(matches[2])
	columns, err := tableColumns(database, dialect, tableName)
	if err != nil {
		return false, err
	}
	for _, column := range columns {
		if strings.EqualFold(strings.TrimSpace(column), columnName) {
			return true, nil
		}
	}
	return false, nil
}

func tableColumns(database *gorm.DB, dialect string, tableName string) ([]string, error) {
	var rows []struct {
		Name string `gorm:"column:name"`
	}

	var err error
	if dialect == DriverPostgres {
		err = database.Raw(
			`SELECT column_name AS name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = ?`,
			tableName,
		).Scan(&rows).Error
	} else {
		escaped := strings.ReplaceAll(tableName, `"`, `""`)
		err = database.Raw(fmt.Sprintf(`PRAGMA table_info("%s")`, escaped)).Scan(&rows).Error
	}
	if err != nil {
		return nil, fmt.Errorf("load columns for %s: %w", tableName, err)
	}

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.Name)
	}
	return names, nil
}

func normalizeSQLIdentifier(identifier string) string {
	normalized := strings.TrimSpace(identifier)
	normalized = strings.Trim(normalized, "\"`[]")
	return strings.TrimSpace(normalized)
}
