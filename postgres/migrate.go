package postgres

import (
	"fmt"
	"slices"
	"time"

	"gorm.io/gorm"
)

const migrationsTable = "migrations"

// Migration is used to hold the database key and function for creating the migration.
//
// Once a Migration with a Key has run, it never runs again;
// change the schema with a new Migration rather than editing an old one.
type Migration struct {
	Executor func(*gorm.DB) error
	Key      string
}

// execute runs the Migration and records its Key in one transaction.
func (m Migration) execute(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := m.Executor(tx); err != nil {
			return err
		}

		return tx.Exec(
			`INSERT INTO migrations (key, ran_at) VALUES (?, ?)`,
			m.Key,
			time.Now().Unix(),
		).Error
	})
}

// MigrateUp ensures schema and the migrations table exist,
// then runs, in order, each of migrations not yet recorded.
func MigrateUp(db *gorm.DB, schema string, migrations []Migration) error {
	if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)).Error; err != nil {
		return fmt.Errorf("creating %s schema: %w", schema, err)
	}

	err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			ran_at bigint,
			key text,
			CONSTRAINT migrations_key UNIQUE (key)
		)
	`).Error
	if err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	toRun, err := pending(db, migrations)
	if err != nil {
		return err
	}

	for _, m := range toRun {
		if err := m.execute(db); err != nil {
			return fmt.Errorf("running migration %s: %w", m.Key, err)
		}
	}

	return nil
}

// pending filters out migrations whose keys are already recorded.
func pending(db *gorm.DB, migrations []Migration) ([]Migration, error) {
	var ran []string
	if err := db.Raw("SELECT key FROM migrations").Scan(&ran).Error; err != nil {
		return nil, fmt.Errorf("fetching ran migrations: %w", err)
	}

	toRun := make([]Migration, 0, len(migrations))
	for _, m := range migrations {
		if !slices.Contains(ran, m.Key) {
			toRun = append(toRun, m)
		}
	}

	return toRun, nil
}
