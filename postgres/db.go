package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/xy-planning-network/ridewitus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// safeGORMSession forces a clean *gorm.DB, detaching it from any statement in progress.
var safeGORMSession = &gorm.Session{}

// A DB wraps a *gorm.DB, translating failures into the error kinds of package ridewitus.
type DB struct {
	// *gorm.DB's methods are generally unsafe to reuse.
	// Some *gorm.DB methods mutate the statement backing DB.
	// Every DB method therefore returns a new *DB rather than mutating its receiver.
	db *gorm.DB
}

// NewDB constructs a *DB from a *gorm.DB.
func NewDB(db *gorm.DB) *DB { return &DB{db: db} }

// DB exposes the underlying *gorm.DB backing DB.
//
// NB: use in exceptional circumstances only.
func (db *DB) DB() *gorm.DB { return db.db }

// Ping checks the database answers.
func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %s", ridewitus.ErrUnexpected, err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %s", ridewitus.ErrUnexpected, err)
	}

	return nil
}

// WithContext binds ctx to the query so cancelling ctx cancels it.
func (db *DB) WithContext(ctx context.Context) *DB { return &DB{db: db.db.WithContext(ctx)} }

// **************************************************************************
// FINISHER METHODS
//
// These methods close out a current query, executing it.
// All finisher methods are terminal and cannot be chained.
// **************************************************************************

// Count returns the number of records matching the current query or an error.
func (db *DB) Count() (int64, error) {
	if db.db.Error != nil {
		return 0, db.db.Error
	}

	var count int64
	if err := db.db.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("%w: %s", ridewitus.ErrUnexpected, err)
	}

	return count, nil
}

// Create inserts value into the database, updating value with data yielded from that insertion.
// value is a pointer to a struct or a slice of them.
//
// If value violates a foreign key constraint, ErrNotValid returns.
// If value violates a unique constraint, ErrExists returns.
func (db *DB) Create(value any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	if v, ok := value.(Updates); ok {
		if err := v.valid(); err != nil {
			return err
		}

		value = map[string]any(v)
	}

	return createErr(value, db.db.Session(&gorm.Session{FullSaveAssociations: false}).Create(value).Error)
}

// CreateIgnoringConflicts inserts value, skipping rows that collide with an existing primary key.
// It returns the number of rows inserted.
func (db *DB) CreateIgnoringConflicts(value any) (int64, error) {
	if db.db.Error != nil {
		return 0, db.db.Error
	}

	res := db.db.Clauses(clause.OnConflict{DoNothing: true}).Create(value)
	if err := createErr(value, res.Error); err != nil {
		return 0, err
	}

	return res.RowsAffected, nil
}

func createErr(value any, err error) error {
	switch {
	case err == nil:
		return nil

	case errors.Is(err, gorm.ErrEmptySlice):
		return fmt.Errorf("%w: %T is empty", ridewitus.ErrMissingData, value)

	case errFKViolation.MatchString(err.Error()):
		return fmt.Errorf("%w: %s", ridewitus.ErrNotValid, err)

	case errUniqViolation.MatchString(err.Error()):
		return fmt.Errorf("%w: %s", ridewitus.ErrExists, err)

	case errSQLSyntax.MatchString(err.Error()):
		return fmt.Errorf("%w: %s", ridewitus.ErrNotValid, err)

	default:
		return fmt.Errorf("%w: failed creating %T: %s", ridewitus.ErrUnexpected, value, err)
	}
}

// Delete removes the records matching the current query from the table for value.
//
// If no records are deleted, ErrNotFound returns.
func (db *DB) Delete(value any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	res := db.db.Delete(value)
	if res.Error != nil {
		return fmt.Errorf("%w: failed deleting %T: %s", ridewitus.ErrUnexpected, value, res.Error)
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %T", ridewitus.ErrNotFound, value)
	}

	return nil
}

// Exec executes SQL query sql, passing values to it.
//
// If the query executed does not affect any records, Exec returns ErrNotFound.
// There are many use cases where the caller ought to specifically ignore this error,
// since the execution may not change existing records.
func (db *DB) Exec(sql string, values ...any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	res := db.db.Exec(sql, values...)
	if res.Error != nil {
		return fmt.Errorf("%w: %s", ridewitus.ErrUnexpected, res.Error)
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: exec failed to affect any rows", ridewitus.ErrNotFound)
	}

	return nil
}

// Exists asserts whether any record matches the current query.
func (db *DB) Exists() (bool, error) {
	if db.db.Error != nil {
		return false, db.db.Error
	}

	var exists bool
	// NOTE: without Session, GORM fails to render the current query as a sub-query.
	err := db.db.Raw("SELECT EXISTS(?)", db.db.Session(safeGORMSession)).Scan(&exists).Error
	if err != nil {
		return false, fmt.Errorf("%w: %s", ridewitus.ErrUnexpected, err)
	}

	return exists, nil
}

// Find retrieves all records matching the current query
// and stores them in dest.
//
// Unlike First, Find does not fail when nothing matches.
func (db *DB) Find(dest any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	err := db.db.Find(dest).Error
	switch {
	case err == nil:
		return nil

	case errSQLScan.MatchString(err.Error()), errSQLSyntax.MatchString(err.Error()):
		return fmt.Errorf("%w: %s", ridewitus.ErrNotValid, err)

	default:
		return fmt.Errorf("%w: %s", ridewitus.ErrUnexpected, err)
	}
}

// First retrieves a single record from the database matching the query
// and stores it in dest.
//
// If no matches are found, First returns ErrNotFound.
func (db *DB) First(dest any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	err := db.db.First(dest).Error
	switch {
	case err == nil:
		return nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %T", ridewitus.ErrNotFound, dest)

	case errSQLSyntax.MatchString(err.Error()):
		return fmt.Errorf("%w: %s", ridewitus.ErrNotValid, err)

	default:
		return fmt.Errorf("%w: %s", ridewitus.ErrUnexpected, err)
	}
}

// Update replaces existing data on all records matching the query with values.
//
// If no records are updated, ErrNotFound returns.
// If values violate a unique constraint, ErrExists returns.
func (db *DB) Update(values Updates) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	if err := values.valid(); err != nil {
		return err
	}

	res := db.db.Updates(map[string]any(values))
	switch {
	case res.Error == nil && res.RowsAffected == 0:
		return fmt.Errorf("%w", ridewitus.ErrNotFound)

	case res.Error == nil:
		return nil

	case errUniqViolation.MatchString(res.Error.Error()):
		return fmt.Errorf("%w: %s", ridewitus.ErrExists, res.Error)

	case errSQLSyntax.MatchString(res.Error.Error()):
		return fmt.Errorf("%w: %s", ridewitus.ErrNotValid, res.Error)

	default:
		return fmt.Errorf("%w: %s", ridewitus.ErrUnexpected, res.Error)
	}
}

// **************************************************************************
// QUERY BUILDING METHODS
//
// Query building methods initiate a query and then add clauses to it
// until a finisher method is called.
// **************************************************************************

// Limit applies a LIMIT clause to the current query.
func (db *DB) Limit(limit int) *DB {
	// NOTE: GORM ignores negatives; PostgreSQL errors on them.
	// This Limit mirrors PostgreSQL, not GORM.
	if limit < 0 {
		gdb := db.db.Session(safeGORMSession)
		_ = gdb.AddError(fmt.Errorf("%w: limit must not be negative", ridewitus.ErrNotValid))
		return &DB{db: gdb}
	}

	return &DB{db: db.db.Limit(limit)}
}

// Model declares the table used for the query.
//
// Model computes the name for the database table from the type of model,
// taking the plural of the table, for example:
//   - Account -> accounts
//   - PricingTier -> pricing_tiers
func (db *DB) Model(model any) *DB { return &DB{db: db.db.Model(model)} }

// Order applies an ORDER BY clause to the current query.
func (db *DB) Order(order string) *DB { return &DB{db: db.db.Order(order)} }

// Table defines which database table to query for the current query.
func (db *DB) Table(name string) *DB { return &DB{db: db.db.Table(name)} }

// Where applies the query fragment to the current query
// as a WHERE or AND clause.
//
// Where supports one or none args.
// If more than one arg is passed, finisher methods return ErrNotValid.
func (db *DB) Where(query string, args ...any) *DB {
	if len(args) > 1 {
		gdb := db.db.Session(safeGORMSession)
		_ = gdb.AddError(fmt.Errorf("%w: Where supports one or none args", ridewitus.ErrNotValid))
		return &DB{db: gdb}
	}

	return &DB{db: db.db.Where(query, args...)}
}

// **************************************************************************
// TRANSACTION METHODS
// **************************************************************************

// Transaction runs fn inside a database transaction,
// committing when fn returns nil and rolling back otherwise.
func (db *DB) Transaction(fn func(tx *DB) error) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	return db.db.Transaction(func(tx *gorm.DB) error { return fn(NewDB(tx)) })
}
