package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/bookhaven-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/bookhaven-backend/pkg/errors"
	"github.com/angelmondragon/bookhaven-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type catalogRepository interface {
	ListBooks(ctx context.Context) ([]models.Book, error)
	FindBook(ctx context.Context, id uuid.UUID) (*models.Book, error)
	ListAuthors(ctx context.Context) ([]models.Author, error)
	FindAuthor(ctx context.Context, id uuid.UUID) (*models.Author, error)
	ListLoans(ctx context.Context, borrowerID *uuid.UUID, page *pagination.Params) ([]models.BookInstance, int64, error)
	Counts(ctx context.Context) (Counts, error)
}

// Service exposes read-only catalog views.
type Service interface {
	Dashboard(ctx context.Context) (Counts, error)
	ListBooks(ctx context.Context) ([]BookSummary, error)
	GetBook(ctx context.Context, id uuid.UUID) (*BookDetail, error)
	ListAuthors(ctx context.Context) ([]AuthorDTO, error)
	GetAuthor(ctx context.Context, id uuid.UUID) (*AuthorDetail, error)
	ListLoansByBorrower(ctx context.Context, userID uuid.UUID, page int) (LoanPage, error)
	ListAllLoans(ctx context.Context) ([]InstanceDTO, error)
}

type service struct {
	repo catalogRepository
	now  func() time.Time
}

// NewService builds the catalog service. now may be nil.
func NewService(repo catalogRepository, now func() time.Time) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, now: now}, nil
}

func (s *service) Dashboard(ctx context.Context) (Counts, error) {
	counts, err := s.repo.Counts(ctx)
	if err != nil {
		return Counts{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count catalog")
	}
	return counts, nil
}

func (s *service) ListBooks(ctx context.Context) ([]BookSummary, error) {
	books, err := s.repo.ListBooks(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list books")
	}
	out := make([]BookSummary, 0, len(books))
	for _, b := range books {
		out = append(out, bookSummary(b))
	}
	return out, nil
}

func (s *service) GetBook(ctx context.Context, id uuid.UUID) (*BookDetail, error) {
	book, err := s.repo.FindBook(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "book not found", "load book")
	}
	detail := bookDetail(*book, s.now())
	return &detail, nil
}

func (s *service) ListAuthors(ctx context.Context) ([]AuthorDTO, error) {
	authors, err := s.repo.ListAuthors(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list authors")
	}
	out := make([]AuthorDTO, 0, len(authors))
	for _, a := range authors {
		out = append(out, authorDTO(a))
	}
	return out, nil
}

func (s *service) GetAuthor(ctx context.Context, id uuid.UUID) (*AuthorDetail, error) {
	author, err := s.repo.FindAuthor(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "author not found", "load author")
	}
	detail := AuthorDetail{AuthorDTO: authorDTO(*author), Books: make([]BookSummary, 0, len(author.Books))}
	for _, b := range author.Books {
		b.Author = author
		detail.Books = append(detail.Books, bookSummary(b))
	}
	return &detail, nil
}

// ListLoansByBorrower pages through the caller's on-loan copies. Pages past
// the end are NotFound; an empty first page is not.
func (s *service) ListLoansByBorrower(ctx context.Context, userID uuid.UUID, page int) (LoanPage, error) {
	if userID == uuid.Nil {
		return LoanPage{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	params := pagination.Params{Page: page, PageSize: pagination.DefaultPageSize}.Normalize()
	loans, total, err := s.repo.ListLoans(ctx, &userID, &params)
	if err != nil {
		return LoanPage{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list loans")
	}
	meta := pagination.NewMeta(params, total)
	if params.Page > 1 && params.Page > meta.TotalPages {
		return LoanPage{}, pkgerrors.New(pkgerrors.CodeNotFound, "invalid page").
			WithDetails(map[string]any{"page": params.Page, "total_pages": meta.TotalPages})
	}
	return LoanPage{Items: instanceDTOs(loans, s.now()), Meta: meta}, nil
}

func (s *service) ListAllLoans(ctx context.Context) ([]InstanceDTO, error) {
	loans, _, err := s.repo.ListLoans(ctx, nil, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list loans")
	}
	return instanceDTOs(loans, s.now()), nil
}

func notFoundOr(err error, notFound, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFound)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, op)
}
