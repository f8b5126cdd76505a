package postgres

import "gorm.io/gorm"

// Migrations lists every schema change RideWitUS needs, oldest first.
var Migrations = []Migration{
	{Key: "20240501-create-accounts", Executor: execSQL(`
		CREATE TABLE accounts (
			id uuid PRIMARY KEY,
			email text NOT NULL,
			name text NOT NULL,
			password bytea NOT NULL,
			role text NOT NULL DEFAULT 'user'
				CHECK (role IN ('user', 'manager', 'admin')),
			subscription_status text NOT NULL DEFAULT 'free'
				CHECK (subscription_status IN ('free', 'monthly', 'annual', 'none')),
			subscription_expiry timestamptz,
			billing_ref text,
			preferred_unit text NOT NULL DEFAULT 'miles'
				CHECK (preferred_unit IN ('miles', 'km')),
			created_at timestamptz NOT NULL DEFAULT now(),
			updated_at timestamptz NOT NULL DEFAULT now(),
			CONSTRAINT accounts_email_key UNIQUE (email)
		)
	`)},
	{Key: "20240501-create-activities", Executor: execSQL(`
		CREATE TABLE activities (
			account_id uuid NOT NULL REFERENCES accounts (id) ON DELETE CASCADE,
			id text NOT NULL,
			"date" timestamptz NOT NULL,
			"type" text NOT NULL
				CHECK ("type" IN ('walking', 'running', 'biking', 'driving')),
			distance double precision NOT NULL CHECK (distance >= 0),
			duration double precision NOT NULL CHECK (duration >= 0),
			maintenance_cost double precision CHECK (maintenance_cost >= 0),
			notes text,
			created_at timestamptz NOT NULL DEFAULT now(),
			updated_at timestamptz NOT NULL DEFAULT now(),
			PRIMARY KEY (account_id, id)
		);
		CREATE INDEX activities_account_date_idx ON activities (account_id, "date" DESC);
	`)},
	{Key: "20240501-create-pricing-tiers", Executor: execSQL(`
		CREATE TABLE pricing_tiers (
			id text PRIMARY KEY,
			name text NOT NULL,
			price double precision NOT NULL CHECK (price >= 0),
			"interval" text NOT NULL CHECK ("interval" IN ('month', 'year')),
			features jsonb NOT NULL DEFAULT '[]',
			price_ref text,
			"position" integer NOT NULL DEFAULT 0,
			created_at timestamptz NOT NULL DEFAULT now(),
			updated_at timestamptz NOT NULL DEFAULT now(),
			CONSTRAINT pricing_tiers_priced_ref CHECK (price = 0 OR coalesce(price_ref, '') <> '')
		)
	`)},
	{Key: "20240502-updated-at-triggers", Executor: execSQL(`
		CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
		BEGIN
			NEW.updated_at = now();
			RETURN NEW;
		END;
		$$ LANGUAGE plpgsql;

		CREATE TRIGGER accounts_updated_at BEFORE UPDATE ON accounts
			FOR EACH ROW EXECUTE FUNCTION set_updated_at();
		CREATE TRIGGER activities_updated_at BEFORE UPDATE ON activities
			FOR EACH ROW EXECUTE FUNCTION set_updated_at();
		CREATE TRIGGER pricing_tiers_updated_at BEFORE UPDATE ON pricing_tiers
			FOR EACH ROW EXECUTE FUNCTION set_updated_at();
	`)},
}

func execSQL(sql string) func(*gorm.DB) error {
	return func(tx *gorm.DB) error { return tx.Exec(sql).Error }
}
