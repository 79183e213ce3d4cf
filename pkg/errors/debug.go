package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// Constraint kinds reported in dumps. Postgres errors are classified by
// SQLSTATE, SQLite errors by message.
const (
	KindUniqueViolation     = "unique_violation"
	KindForeignKeyViolation = "foreign_key_violation"
	KindNotNullViolation    = "not_null_violation"
	KindCheckViolation      = "check_violation"
	KindSerialization       = "serialization_failure"
	KindQueryCanceled       = "query_canceled"
)

var pgKinds = map[string]string{
	"23505": KindUniqueViolation,
	"23503": KindForeignKeyViolation,
	"23502": KindNotNullViolation,
	"23514": KindCheckViolation,
	"40001": KindSerialization,
	"57014": KindQueryCanceled,
}

var sqliteKinds = []struct {
	fragment string
	kind     string
}{
	{"UNIQUE constraint failed", KindUniqueViolation},
	{"FOREIGN KEY constraint failed", KindForeignKeyViolation},
	{"NOT NULL constraint failed", KindNotNullViolation},
	{"CHECK constraint failed", KindCheckViolation},
}

// ErrorDump is the log-friendly view of an error chain.
type ErrorDump struct {
	TopMessage string   `json:"top_message"`
	Code       Code     `json:"code,omitempty"`
	Chain      []string `json:"chain,omitempty"`

	// Kind is one of the Kind* constants when a store constraint failed.
	Kind string `json:"kind,omitempty"`

	PGCode       string `json:"pg_code,omitempty"`
	PGConstraint string `json:"pg_constraint,omitempty"`
	PGTable      string `json:"pg_table,omitempty"`
	PGColumn     string `json:"pg_column,omitempty"`
	PGDetail     string `json:"pg_detail,omitempty"`
	PGMessage    string `json:"pg_message,omitempty"`
}

// Dump walks err and collects its chain, typed code and any database
// diagnostics from pgx, lib/pq or sqlite.
func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{TopMessage: err.Error()}
	if te := As(err); te != nil {
		d.Code = te.Code()
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var pgxErr *pgconn.PgError
	var pqErr *pq.Error
	switch {
	case errors.As(err, &pgxErr):
		d.PGCode, d.PGConstraint, d.PGTable = pgxErr.Code, pgxErr.ConstraintName, pgxErr.TableName
		d.PGColumn, d.PGDetail, d.PGMessage = pgxErr.ColumnName, pgxErr.Detail, pgxErr.Message
		d.Kind = pgKinds[d.PGCode]
	case errors.As(err, &pqErr):
		d.PGCode, d.PGConstraint, d.PGTable = string(pqErr.Code), pqErr.Constraint, pqErr.Table
		d.PGColumn, d.PGDetail, d.PGMessage = pqErr.Column, pqErr.Detail, pqErr.Message
		d.Kind = pgKinds[d.PGCode]
	default:
		for _, s := range sqliteKinds {
			if strings.Contains(d.TopMessage, s.fragment) {
				d.Kind = s.kind
				break
			}
		}
	}
	return d
}

// Fields flattens the dump into logger fields, omitting empty diagnostics.
func (d ErrorDump) Fields() map[string]any {
	fields := map[string]any{
		"error":       d.TopMessage,
		"error_code":  d.Code,
		"error_chain": d.Chain,
	}
	if d.Kind != "" {
		fields["error_kind"] = d.Kind
	}
	if d.PGCode != "" {
		fields["pg_code"] = d.PGCode
		fields["pg_detail"] = d.PGDetail
		fields["pg_message"] = d.PGMessage
		fields["pg_table"] = d.PGTable
		fields["pg_column"] = d.PGColumn
		fields["pg_constraint"] = d.PGConstraint
	}
	return fields
}
