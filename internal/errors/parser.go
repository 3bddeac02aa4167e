package errors

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind classifies a persistence-layer failure into the error taxonomy.
// Translation from driver errors happens here and nowhere else.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindValidation
)

// Postgres error codes the persistence layer can surface.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// Classify maps a database error to a taxonomy kind. gorm's translated
// sentinels cover both the postgres and the sqlite driver; *pgconn.PgError is
// checked as well in case translation is disabled.
func Classify(err error) Kind {
	if err == nil {
		return KindInternal
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return KindNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return KindConflict
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return KindNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return KindConflict
		case pgForeignKeyViolation:
			return KindNotFound
		case pgNotNullViolation, pgCheckViolation:
			return KindValidation
		}
	}

	return KindInternal
}

// ConflictField extracts the offending column or constraint from a uniqueness
// violation, for use in 409 responses. Returns "" when nothing useful can be
// recovered.
func ConflictField(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName != "" {
		return trimConstraintName(pgErr.ConstraintName)
	}

	// sqlite reports "UNIQUE constraint failed: stores.code"
	msg := err.Error()
	if idx := strings.Index(msg, "constraint failed: "); idx >= 0 {
		field := msg[idx+len("constraint failed: "):]
		if dot := strings.LastIndex(field, "."); dot >= 0 {
			field = field[dot+1:]
		}
		return strings.TrimSpace(field)
	}
	return ""
}

// trimConstraintName reduces index names like "idx_users_email" or
// "uni_stores_code" to the column part.
func trimConstraintName(name string) string {
	for _, prefix := range []string{"idx_", "uni_", "uq_"} {
		if strings.HasPrefix(name, prefix) {
			name = strings.TrimPrefix(name, prefix)
			break
		}
	}
	if idx := strings.LastIndex(name, "_"); idx >= 0 {
		return name[idx+1:]
	}
	return name
}
