package catalog

import (
	"time"

	"github.com/angelmondragon/bookhaven-backend/pkg/db/models"
	"github.com/angelmondragon/bookhaven-backend/pkg/enums"
	"github.com/angelmondragon/bookhaven-backend/pkg/pagination"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// Counts are the dashboard totals.
type Counts struct {
	Books              int64 `json:"num_books"`
	Instances          int64 `json:"num_instances"`
	InstancesAvailable int64 `json:"num_instances_available"`
	Authors            int64 `json:"num_authors"`
	Genres             int64 `json:"num_genres"`
}

// AuthorSummary is the compact author shape embedded in book views.
type AuthorSummary struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// BookSummary is one row of the book list.
type BookSummary struct {
	ID       uuid.UUID      `json:"id"`
	Title    string         `json:"title"`
	ISBN     string         `json:"isbn"`
	PublYear string         `json:"publ_year"`
	Author   *AuthorSummary `json:"author"`
}

// InstanceDTO renders one copy with derived overdue state.
type InstanceDTO struct {
	ID          uuid.UUID        `json:"id"`
	BookID      *uuid.UUID       `json:"book_id"`
	BookTitle   string           `json:"book_title,omitempty"`
	Imprint     string           `json:"imprint"`
	Status      enums.LoanStatus `json:"status"`
	StatusLabel string           `json:"status_label"`
	DueBack     *string          `json:"due_back"`
	BorrowerID  *uuid.UUID       `json:"borrower_id"`
	Borrower    string           `json:"borrower,omitempty"`
	IsOverdue   bool             `json:"is_overdue"`
}

// NamedDTO renders genres, categories and ratings.
type NamedDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// BookDetail is the full book view.
type BookDetail struct {
	BookSummary
	Summary    string        `json:"summary"`
	Instances  []InstanceDTO `json:"instances"`
	Genres     []NamedDTO    `json:"genres"`
	Categories []NamedDTO    `json:"categories"`
	Ratings    []NamedDTO    `json:"ratings"`
}

// AuthorDTO is one row of the author list.
type AuthorDTO struct {
	AuthorSummary
	BioData string `json:"bio_data"`
}

// AuthorDetail adds the author's books.
type AuthorDetail struct {
	AuthorDTO
	Books []BookSummary `json:"books"`
}

// LoanPage is a page of on-loan copies.
type LoanPage struct {
	Items []InstanceDTO   `json:"items"`
	Meta  pagination.Meta `json:"meta"`
}

func authorSummary(a *models.Author) *AuthorSummary {
	if a == nil {
		return nil
	}
	return &AuthorSummary{ID: a.ID, FirstName: a.FirstName, LastName: a.LastName}
}

func bookSummary(b models.Book) BookSummary {
	return BookSummary{
		ID:       b.ID,
		Title:    b.Title,
		ISBN:     b.ISBN,
		PublYear: b.PublYear,
		Author:   authorSummary(b.Author),
	}
}

func instanceDTO(i models.BookInstance, now time.Time) InstanceDTO {
	dto := InstanceDTO{
		ID:          i.ID,
		BookID:      i.BookID,
		Imprint:     i.Imprint,
		Status:      i.Status,
		StatusLabel: i.Status.Label(),
		BorrowerID:  i.BorrowerID,
		IsOverdue:   i.IsOverdueAt(now),
	}
	if i.DueBack != nil {
		due := i.DueBack.Format(dateLayout)
		dto.DueBack = &due
	}
	if i.Book != nil {
		dto.BookTitle = i.Book.Title
	}
	if i.Borrower != nil {
		dto.Borrower = i.Borrower.FullName()
	}
	return dto
}

func instanceDTOs(items []models.BookInstance, now time.Time) []InstanceDTO {
	out := make([]InstanceDTO, 0, len(items))
	for _, item := range items {
		out = append(out, instanceDTO(item, now))
	}
	return out
}

func bookDetail(b models.Book, now time.Time) BookDetail {
	return BookDetail{
		BookSummary: bookSummary(b),
		Summary:     b.Summary,
		Instances:   instanceDTOs(b.Instances, now),
		Genres:      named(b.Genres, func(g models.Genre) NamedDTO { return NamedDTO{ID: g.ID, Name: g.Name} }),
		Categories:  named(b.Categories, func(c models.Category) NamedDTO { return NamedDTO{ID: c.ID, Name: c.Name} }),
		Ratings:     named(b.Ratings, func(r models.Rating) NamedDTO { return NamedDTO{ID: r.ID, Name: r.Name} }),
	}
}

func named[T any](items []T, conv func(T) NamedDTO) []NamedDTO {
	out := make([]NamedDTO, 0, len(items))
	for _, item := range items {
		out = append(out, conv(item))
	}
	return out
}

func authorDTO(a models.Author) AuthorDTO {
	return AuthorDTO{
		AuthorSummary: *authorSummary(&a),
		BioData:       a.BioData,
	}
}
