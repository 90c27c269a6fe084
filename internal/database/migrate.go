package database

import (
	"database/sql"
	"log"
)

// schema holds the bootstrap DDL in dependency order.  Every statement
// is idempotent so Migrate can run on every start without a separate
// migration tool; the engine code assumes exactly these shapes.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS zones (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name       VARCHAR(100) NOT NULL,
		is_active  TINYINT(1) NOT NULL DEFAULT 1,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_zones_name (name)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS cabin_types (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name       VARCHAR(100) NOT NULL,
		is_active  TINYINT(1) NOT NULL DEFAULT 1,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_cabin_types_name (name)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS cabins (
		id                BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		code              VARCHAR(32) NOT NULL,
		name              VARCHAR(100) NOT NULL,
		zone_id           BIGINT UNSIGNED NOT NULL,
		cabin_type_id     BIGINT UNSIGNED NOT NULL,
		capacity          INT NOT NULL,
		nightly_rate      DECIMAL(10,2) NOT NULL,
		is_active         TINYINT(1) NOT NULL DEFAULT 1,
		under_maintenance TINYINT(1) NOT NULL DEFAULT 0,
		created_at        TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at        TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_cabins_code (code),
		KEY idx_cabins_zone (zone_id),
		KEY idx_cabins_type (cabin_type_id),
		CONSTRAINT fk_cabins_zone FOREIGN KEY (zone_id) REFERENCES zones (id),
		CONSTRAINT fk_cabins_type FOREIGN KEY (cabin_type_id) REFERENCES cabin_types (id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS services (
		id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name          VARCHAR(100) NOT NULL,
		fee_per_guest DECIMAL(10,2) NOT NULL,
		is_active     TINYINT(1) NOT NULL DEFAULT 1,
		created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_services_name (name)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		email         VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role          ENUM('GUEST','STAFF','ADMIN') NOT NULL DEFAULT 'GUEST',
		is_active     TINYINT(1) NOT NULL DEFAULT 1,
		created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id    BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_refresh_tokens_hash (token_hash),
		KEY idx_refresh_tokens_user (user_id),
		CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id) REFERENCES users (id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS reservations (
		id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		code          VARCHAR(20) NOT NULL,
		owner_id      BIGINT UNSIGNED NOT NULL,
		check_in      DATE NOT NULL,
		check_out     DATE NOT NULL,
		guest_count   INT NOT NULL,
		status        ENUM('CONFIRMED','CANCELLED','NO_SHOW','FINALIZED') NOT NULL DEFAULT 'CONFIRMED',
		total_amount  DECIMAL(10,2) NOT NULL,
		paid_amount   DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		is_fully_paid TINYINT(1) NOT NULL DEFAULT 0,
		created_by    BIGINT UNSIGNED NOT NULL,
		updated_by    BIGINT UNSIGNED NOT NULL,
		created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_reservations_code (code),
		KEY idx_reservations_owner (owner_id),
		KEY idx_reservations_status (status),
		KEY idx_reservations_dates (check_in, check_out),
		CONSTRAINT fk_reservations_owner FOREIGN KEY (owner_id) REFERENCES users (id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS reservation_cabins (
		id             BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		reservation_id BIGINT UNSIGNED NOT NULL,
		cabin_id       BIGINT UNSIGNED NOT NULL,
		nightly_rate   DECIMAL(10,2) NOT NULL,
		created_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_reservation_cabins (reservation_id, cabin_id),
		KEY idx_reservation_cabins_cabin (cabin_id),
		CONSTRAINT fk_rc_reservation FOREIGN KEY (reservation_id) REFERENCES reservations (id),
		CONSTRAINT fk_rc_cabin FOREIGN KEY (cabin_id) REFERENCES cabins (id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS reservation_services (
		id             BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		reservation_id BIGINT UNSIGNED NOT NULL,
		service_id     BIGINT UNSIGNED NOT NULL,
		fee_per_guest  DECIMAL(10,2) NOT NULL,
		created_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_reservation_services (reservation_id, service_id),
		CONSTRAINT fk_rs_reservation FOREIGN KEY (reservation_id) REFERENCES reservations (id),
		CONSTRAINT fk_rs_service FOREIGN KEY (service_id) REFERENCES services (id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS payments (
		id             BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		reservation_id BIGINT UNSIGNED NOT NULL,
		amount         DECIMAL(10,2) NOT NULL,
		method         ENUM('CASH','CARD','TRANSFER') NOT NULL,
		paid_on        DATE NOT NULL,
		is_active      TINYINT(1) NOT NULL DEFAULT 1,
		created_by     BIGINT UNSIGNED NOT NULL,
		updated_by     BIGINT UNSIGNED NOT NULL,
		created_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_payments_reservation (reservation_id),
		CONSTRAINT fk_payments_reservation FOREIGN KEY (reservation_id) REFERENCES reservations (id)
	) ENGINE=InnoDB`,

	// One row per calendar day; last_seq feeds the RES-YYYYMMDD-SSSSS
	// code generator through LAST_INSERT_ID so concurrent bookings
	// never reuse a sequence number.
	`CREATE TABLE IF NOT EXISTS reservation_codes (
		day      CHAR(8) NOT NULL PRIMARY KEY,
		last_seq BIGINT UNSIGNED NOT NULL
	) ENGINE=InnoDB`,
}

// Migrate applies the bootstrap schema.
func Migrate(db *sql.DB) error {
	log.Println("applying database schema...")
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	log.Println("database schema up to date")
	return nil
}
