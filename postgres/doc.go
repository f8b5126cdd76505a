/*
Package postgres manages the RideWitUS database connection and persistence.

Connect opens the connection through GORM and runs every keyed [Migration] not yet recorded in the migrations table.
When connecting to a test database, the public schema is dropped first.

[DB] wraps a *gorm.DB, translating driver failures into the root package's error kinds:
unique violations become ErrExists, missing rows ErrNotFound and so on.

[AccountStore], [ActivityStore] and [PricingStore] are the persistence adapters
for the directory, activity and pricing services.
*/
package postgres
