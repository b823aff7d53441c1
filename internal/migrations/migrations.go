package migrations

import (
	"database/sql"
)

// Run creates the schema required by the back office. Statements are
// idempotent and stick to DDL that both MySQL and the sqlite driver used
// in tests accept: string ids are VARCHAR(36) UUIDs and every timestamp
// is a BIGINT of unix milliseconds.
func Run(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS medicines (
			id VARCHAR(36) NOT NULL,
			name VARCHAR(255) NOT NULL,
			stock INTEGER NOT NULL,
			min_stock INTEGER NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			buy_price DOUBLE PRECISION NOT NULL,
			barcode VARCHAR(64),
			expired_at BIGINT,
			supplier_id VARCHAR(36),
			created_at BIGINT NOT NULL,
			updated_at BIGINT NOT NULL,
			PRIMARY KEY (id)
		);`,
		`CREATE TABLE IF NOT EXISTS sales (
			id VARCHAR(36) NOT NULL,
			total DOUBLE PRECISION NOT NULL,
			discount DOUBLE PRECISION NOT NULL,
			tax DOUBLE PRECISION NOT NULL,
			user_id VARCHAR(36) NOT NULL,
			created_at BIGINT NOT NULL,
			PRIMARY KEY (id)
		);`,
		`CREATE TABLE IF NOT EXISTS sale_items (
			id VARCHAR(36) NOT NULL,
			sale_id VARCHAR(36) NOT NULL,
			medicine_id VARCHAR(36) NOT NULL,
			name VARCHAR(255) NOT NULL,
			quantity INTEGER NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			subtotal DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (id)
		);`,
		`CREATE TABLE IF NOT EXISTS suppliers (
			id VARCHAR(36) NOT NULL,
			name VARCHAR(255) NOT NULL,
			contact VARCHAR(255) NOT NULL,
			email VARCHAR(255),
			phone VARCHAR(64),
			address VARCHAR(255),
			created_at BIGINT NOT NULL,
			updated_at BIGINT NOT NULL,
			PRIMARY KEY (id)
		);`,
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(36) NOT NULL,
			email VARCHAR(255) NOT NULL,
			role VARCHAR(16) NOT NULL,
			display_name VARCHAR(255),
			created_at BIGINT NOT NULL,
			PRIMARY KEY (id)
		);`,
		`CREATE TABLE IF NOT EXISTS auth_credentials (
			id VARCHAR(36) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(16) NOT NULL,
			created_at BIGINT NOT NULL,
			PRIMARY KEY (id)
		);`,
		`CREATE TABLE IF NOT EXISTS alerts (
			id VARCHAR(36) NOT NULL,
			status VARCHAR(16) NOT NULL,
			type VARCHAR(16) NOT NULL,
			created_at BIGINT NOT NULL,
			PRIMARY KEY (id)
		);`,
		`CREATE TABLE IF NOT EXISTS alert_items (
			id VARCHAR(36) NOT NULL,
			alert_id VARCHAR(36) NOT NULL,
			medicine_id VARCHAR(36) NOT NULL,
			name VARCHAR(255) NOT NULL,
			stock INTEGER,
			min_stock INTEGER,
			expired_at BIGINT,
			reason VARCHAR(16) NOT NULL,
			PRIMARY KEY (id)
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
