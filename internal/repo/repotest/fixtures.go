package repotest

import (
	"fmt"
	"testing"
	"time"

	"github.com/angelmondragon/bookhaven-backend/pkg/db/models"
	"github.com/angelmondragon/bookhaven-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Create inserts value and fails the test on error.
func Create(t testing.TB, db *gorm.DB, value any) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}

// SeedUser inserts an active user with the given email.
func SeedUser(t testing.TB, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=1$c2FsdA$a2V5",
		FirstName:    "Test",
		LastName:     "Reader",
		IsActive:     true,
	}
	Create(t, db, user)
	return user
}

// SeedCustomer inserts a customer bound to a fresh user.
func SeedCustomer(t testing.TB, db *gorm.DB) *models.Customer {
	t.Helper()
	user := SeedUser(t, db, fmt.Sprintf("reader-%s@example.com", uuid.NewString()[:8]))
	customer := &models.Customer{UserID: &user.ID, Name: user.FullName(), Email: user.Email}
	Create(t, db, customer)
	return customer
}

// SeedAuthor inserts an author.
func SeedAuthor(t testing.TB, db *gorm.DB, first, last string) *models.Author {
	t.Helper()
	author := &models.Author{FirstName: first, LastName: last}
	Create(t, db, author)
	return author
}

// SeedBook inserts a book with a random ISBN. author may be nil.
func SeedBook(t testing.TB, db *gorm.DB, title string, author *models.Author) *models.Book {
	t.Helper()
	book := &models.Book{Title: title, ISBN: randomISBN()}
	if author != nil {
		book.AuthorID = &author.ID
	}
	Create(t, db, book)
	return book
}

// SeedProduct inserts a product wrapping a new book.
func SeedProduct(t testing.TB, db *gorm.DB, title, price string, digital bool) *models.Product {
	t.Helper()
	book := SeedBook(t, db, title, nil)
	product := &models.Product{
		BookID:  &book.ID,
		Price:   decimal.RequireFromString(price),
		Digital: digital,
	}
	Create(t, db, product)
	product.Book = book
	return product
}

// SeedInstance inserts a copy of book. borrower and dueBack may be nil.
func SeedInstance(t testing.TB, db *gorm.DB, book *models.Book, status enums.LoanStatus, borrower *models.User, dueBack *time.Time) *models.BookInstance {
	t.Helper()
	instance := &models.BookInstance{
		BookID:  &book.ID,
		Imprint: "First edition",
		Status:  status,
		DueBack: dueBack,
	}
	if borrower != nil {
		instance.BorrowerID = &borrower.ID
	}
	Create(t, db, instance)
	return instance
}

func randomISBN() string {
	digits := uuid.New()
	out := make([]byte, 13)
	for i := range out {
		out[i] = '0' + digits[i]%10
	}
	return string(out)
}
