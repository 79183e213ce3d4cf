package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestDumpClassifiesPostgresErrors(t *testing.T) {
	pgxErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_orders_one_open_per_customer", TableName: "orders"}
	d := Dump(Wrap(CodeConflict, fmt.Errorf("insert order: %w", pgxErr), "open order"))
	if d.Kind != KindUniqueViolation || d.PGConstraint != "idx_orders_one_open_per_customer" || d.PGTable != "orders" {
		t.Fatalf("unexpected pgx dump: %+v", d)
	}

	pqErr := &pq.Error{Code: "23503", Table: "order_items"}
	d = Dump(fmt.Errorf("add item: %w", pqErr))
	if d.Kind != KindForeignKeyViolation || d.PGCode != "23503" {
		t.Fatalf("unexpected pq dump: %+v", d)
	}
}

func TestDumpClassifiesSQLiteMessages(t *testing.T) {
	d := Dump(stdErrors.New("UNIQUE constraint failed: likes.book_id, likes.buyer_id"))
	if d.Kind != KindUniqueViolation {
		t.Fatalf("expected unique violation, got %q", d.Kind)
	}
	if d.PGCode != "" {
		t.Fatalf("sqlite errors carry no pg code, got %q", d.PGCode)
	}
}

func TestDumpFieldsOmitEmptyDiagnostics(t *testing.T) {
	fields := Dump(New(CodeNotFound, "book not found")).Fields()
	if fields["error_code"] != CodeNotFound {
		t.Fatalf("unexpected code field %v", fields["error_code"])
	}
	for _, key := range []string{"error_kind", "pg_code", "pg_constraint"} {
		if _, ok := fields[key]; ok {
			t.Fatalf("unexpected %s field for plain error", key)
		}
	}

	fields = Dump(&pgconn.PgError{Code: "23502", ColumnName: "title"}).Fields()
	if fields["error_kind"] != KindNotNullViolation || fields["pg_column"] != "title" {
		t.Fatalf("unexpected fields %v", fields)
	}
}
