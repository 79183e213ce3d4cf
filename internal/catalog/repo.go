package catalog

import (
	"context"

	"github.com/angelmondragon/bookhaven-backend/internal/repo"
	"github.com/angelmondragon/bookhaven-backend/pkg/db/models"
	"github.com/angelmondragon/bookhaven-backend/pkg/enums"
	"github.com/angelmondragon/bookhaven-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository reads the catalog tables.
type Repository struct {
	base repo.Base
}

// NewRepository binds a catalog repository to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

// ListBooks returns every book with its author, ordered by title.
func (r *Repository) ListBooks(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	err := r.base.DB(ctx).
		Preload("Author").
		Order("title ASC, id ASC").
		Find(&books).
		Error
	return books, err
}

// FindBook loads a book and all of its detail relations.
func (r *Repository) FindBook(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	var book models.Book
	err := r.base.DB(ctx).
		Preload("Author").
		Preload("Instances", func(db *gorm.DB) *gorm.DB { return db.Order("due_back ASC, id ASC") }).
		Preload("Genres").
		Preload("Categories").
		Preload("Ratings").
		Where("id = ?", id).
		First(&book).
		Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// ListAuthors returns authors ordered by last name then first name.
func (r *Repository) ListAuthors(ctx context.Context) ([]models.Author, error) {
	var authors []models.Author
	err := r.base.DB(ctx).
		Order("last_name ASC, first_name ASC, id ASC").
		Find(&authors).
		Error
	return authors, err
}

// FindAuthor loads an author with their books.
func (r *Repository) FindAuthor(ctx context.Context, id uuid.UUID) (*models.Author, error) {
	var author models.Author
	err := r.base.DB(ctx).
		Preload("Books", func(db *gorm.DB) *gorm.DB { return db.Order("title ASC") }).
		Where("id = ?", id).
		First(&author).
		Error
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// ListLoans returns on-loan copies ordered by due date. A nil borrowerID
// selects every borrower. A zero page lists everything.
func (r *Repository) ListLoans(ctx context.Context, borrowerID *uuid.UUID, page *pagination.Params) ([]models.BookInstance, int64, error) {
	scope := func() *gorm.DB {
		q := r.base.DB(ctx).Model(&models.BookInstance{}).Where("status = ?", enums.LoanStatusOnLoan)
		if borrowerID != nil {
			q = q.Where("borrower_id = ?", *borrowerID)
		}
		return q
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := scope().Preload("Book").Preload("Borrower").Order("due_back ASC, id ASC")
	if page != nil {
		q = q.Offset(page.Offset()).Limit(page.Limit())
	}
	var loans []models.BookInstance
	if err := q.Find(&loans).Error; err != nil {
		return nil, 0, err
	}
	return loans, total, nil
}

// Counts gathers the dashboard totals.
func (r *Repository) Counts(ctx context.Context) (Counts, error) {
	var out Counts
	db := r.base.DB(ctx)
	steps := []struct {
		query *gorm.DB
		dest  *int64
	}{
		{db.Model(&models.Book{}), &out.Books},
		{db.Model(&models.BookInstance{}), &out.Instances},
		{db.Model(&models.BookInstance{}).Where("status = ?", enums.LoanStatusAvailable), &out.InstancesAvailable},
		{db.Model(&models.Author{}), &out.Authors},
		{db.Model(&models.Genre{}), &out.Genres},
	}
	for _, step := range steps {
		if err := step.query.Count(step.dest).Error; err != nil {
			return Counts{}, err
		}
	}
	return out, nil
}
