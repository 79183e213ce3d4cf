package auth

import (
	"context"
	"testing"

	"github.com/angelmondragon/bookhaven-backend/internal/repo/repotest"
	"github.com/angelmondragon/bookhaven-backend/pkg/config"
	"github.com/angelmondragon/bookhaven-backend/pkg/db"
	"github.com/angelmondragon/bookhaven-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/bookhaven-backend/pkg/errors"
	"github.com/angelmondragon/bookhaven-backend/pkg/security"
)

var fastArgon = config.PasswordConfig{ArgonMemoryKB: 1024, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32}

func TestRegisterCreatesUserAndCustomer(t *testing.T) {
	conn := repotest.NewDB(t)
	svc, err := NewRegisterService(RegisterServiceParams{DB: db.NewFromGorm(conn), PasswordConfig: fastArgon})
	if err != nil {
		t.Fatalf("new register service: %v", err)
	}

	user, err := svc.Register(context.Background(), RegisterRequest{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "Grace@Example.com",
		Password:  "cobol-forever",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "grace@example.com" {
		t.Fatalf("expected normalized email, got %s", user.Email)
	}

	var stored models.User
	if err := conn.First(&stored, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	ok, err := security.VerifyPassword("cobol-forever", stored.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("expected stored hash to verify, ok=%v err=%v", ok, err)
	}

	var customer models.Customer
	if err := conn.First(&customer, "user_id = ?", user.ID).Error; err != nil {
		t.Fatalf("load customer: %v", err)
	}
	if customer.Name != "Grace Hopper" {
		t.Fatalf("unexpected customer name %q", customer.Name)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	conn := repotest.NewDB(t)
	svc, _ := NewRegisterService(RegisterServiceParams{DB: db.NewFromGorm(conn), PasswordConfig: fastArgon})
	repotest.SeedUser(t, conn, "taken@example.com")

	_, err := svc.Register(context.Background(), RegisterRequest{
		FirstName: "A",
		LastName:  "B",
		Email:     "TAKEN@example.com",
		Password:  "long-enough",
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegisterShortPassword(t *testing.T) {
	conn := repotest.NewDB(t)
	svc, _ := NewRegisterService(RegisterServiceParams{DB: db.NewFromGorm(conn), PasswordConfig: fastArgon})

	_, err := svc.Register(context.Background(), RegisterRequest{
		FirstName: "A",
		LastName:  "B",
		Email:     "short@example.com",
		Password:  "short",
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
