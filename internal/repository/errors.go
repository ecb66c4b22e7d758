package repository

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"

	mysqlDuplicateEntry = 1062
	mysqlSignal         = 1644
	mysqlLockWait       = 1205
	mysqlDeadlock       = 1213
)

var (
	// ErrNotFound is returned when no row matches.
	ErrNotFound = gorm.ErrRecordNotFound
	// ErrBookingOverlap is returned when the storage guard rejects a booking
	// range that overlaps another booking of the same spot.
	ErrBookingOverlap = errors.New("booking overlaps an existing booking")
)

// DuplicateError reports a unique-constraint violation on Field.
type DuplicateError struct {
	Table string
	Field string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate %s.%s", e.Table, e.Field)
}

var mysqlKeyPattern = regexp.MustCompile(`for key '(?:[^.']+\.)?([^']+)'`)

// translate maps driver constraint errors onto repository errors.
// Other errors pass through unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &DuplicateError{}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgExclusionViolation:
			return ErrBookingOverlap
		case pgUniqueViolation:
			return duplicateFromIndex(pgErr.TableName, pgErr.ConstraintName)
		}
		return err
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlSignal:
			if strings.Contains(myErr.Message, "bookings_no_overlap") {
				return ErrBookingOverlap
			}
		case mysqlDuplicateEntry:
			if m := mysqlKeyPattern.FindStringSubmatch(myErr.Message); m != nil {
				return duplicateFromIndex("", m[1])
			}
			return &DuplicateError{}
		}
	}
	return err
}

// translateBooking is translate for booking writes. On MySQL two inserts
// into the same free date gap can deadlock on the overlap trigger's gap
// locks; the loser was racing for the same dates, so it reads as an overlap.
func translateBooking(err error) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && (myErr.Number == mysqlDeadlock || myErr.Number == mysqlLockWait) {
		return ErrBookingOverlap
	}
	return translate(err)
}

// duplicateFromIndex derives the offending field from index names such as
// idx_spots_address or idx_reviews_spot_user.
func duplicateFromIndex(table, index string) error {
	if index == "idx_bookings_spot_range" {
		return ErrBookingOverlap
	}
	rest := strings.TrimPrefix(index, "idx_")
	if table == "" {
		if i := strings.Index(rest, "_"); i > 0 {
			table = rest[:i]
		}
	}
	field := strings.TrimPrefix(rest, table+"_")
	return &DuplicateError{Table: table, Field: field}
}
