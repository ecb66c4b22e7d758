package db

import (
	"fmt"

	"gorm.io/gorm"

	"spotbook/internal/config"
	"spotbook/internal/model"
)

// BookingOverlapConstraint names the storage guard against overlapping
// bookings. MySQL raises it as the SIGNAL message of the trigger.
const BookingOverlapConstraint = "bookings_no_overlap"

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Spot{},
		&model.Review{},
		&model.Booking{},
		&model.Image{},
	}
}

// Migrate creates the schema and installs the booking overlap guard.
// With reset it drops every table first.
func Migrate(db *gorm.DB, driver string, reset bool) error {
	if reset {
		tables := Models()
		for i := len(tables) - 1; i >= 0; i-- {
			if err := db.Migrator().DropTable(tables[i]); err != nil {
				return fmt.Errorf("drop table: %w", err)
			}
		}
	}

	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	switch driver {
	case config.DriverPostgres:
		return installPostgresOverlapGuard(db)
	case config.DriverMySQL:
		return installMySQLOverlapGuard(db)
	default:
		return fmt.Errorf("unsupported driver %q", driver)
	}
}

// The exclusion constraint makes the insert itself fail when any booking of
// the same spot shares a day with the new inclusive range.
func installPostgresOverlapGuard(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
			return fmt.Errorf("create btree_gist extension: %w", err)
		}
		return tx.Exec(fmt.Sprintf(`
			DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint WHERE conname = '%[1]s'
				) THEN
					ALTER TABLE bookings ADD CONSTRAINT %[1]s
					EXCLUDE USING gist (
						spot_id WITH =,
						daterange(start_date, end_date, '[]') WITH &&
					);
				END IF;
			END $$;
		`, BookingOverlapConstraint)).Error
	})
}

// MySQL has no exclusion constraints. The triggers take next-key locks on the
// spot's bookings inside the inserting statement and abort it on overlap.
func installMySQLOverlapGuard(db *gorm.DB) error {
	for _, op := range []string{"INSERT", "UPDATE"} {
		name := fmt.Sprintf("%s_%s", BookingOverlapConstraint, op)
		selfFilter := ""
		if op == "UPDATE" {
			selfFilter = "AND id <> NEW.id"
		}
		if err := db.Exec("DROP TRIGGER IF EXISTS " + name).Error; err != nil {
			return fmt.Errorf("drop trigger %s: %w", name, err)
		}
		trigger := fmt.Sprintf(`
			CREATE TRIGGER %[1]s BEFORE %[2]s ON bookings
			FOR EACH ROW
			BEGIN
				IF EXISTS (
					SELECT 1 FROM bookings
					WHERE spot_id = NEW.spot_id %[3]s
					  AND start_date <= NEW.end_date
					  AND end_date >= NEW.start_date
					FOR UPDATE
				) THEN
					SIGNAL SQLSTATE '45000' SET MESSAGE_TEXT = '%[4]s';
				END IF;
			END`, name, op, selfFilter, BookingOverlapConstraint)
		if err := db.Exec(trigger).Error; err != nil {
			return fmt.Errorf("create trigger %s: %w", name, err)
		}
	}
	return nil
}
