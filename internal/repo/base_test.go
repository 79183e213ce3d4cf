package repo

import (
	"context"
	"testing"

	"github.com/angelmondragon/bookhaven-backend/internal/repo/repotest"
)

type ctxKey struct{}

func TestNewBaseStoresConnection(t *testing.T) {
	db := repotest.NewDB(t)
	base := NewBase(db)

	if base.db != db {
		t.Fatalf("expected base db to match provided connection")
	}
}

func TestBaseDB_BindsContext(t *testing.T) {
	base := NewBase(repotest.NewDB(t))

	ctx := context.WithValue(context.Background(), ctxKey{}, "value")
	if got := base.DB(ctx).Statement.Context; got != ctx {
		t.Fatalf("expected context to be bound to the statement")
	}
	if base.DB(nil) != base.db {
		t.Fatalf("nil context should return the raw connection")
	}
}

func TestBaseWithTx(t *testing.T) {
	db := repotest.NewDB(t)
	base := NewBase(db)

	tx := db.Begin()
	defer tx.Rollback()

	if bound := base.WithTx(tx); bound.db != tx {
		t.Fatalf("expected tx-bound base")
	}
	if same := base.WithTx(nil); same.db != db {
		t.Fatalf("nil tx should keep the original connection")
	}
}
