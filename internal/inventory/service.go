package inventory

import (
	"context"
	"strings"
	"unicode/utf8"

	pkgerrors "github.com/angelmondragon/bookhaven-backend/pkg/errors"
	"github.com/google/uuid"
)

const maxNoteLength = 200

// Service exposes inventory annotations and likes.
type Service interface {
	ForBook(ctx context.Context, bookID uuid.UUID, viewerID *uuid.UUID) (BookInventoryDTO, error)
	Like(ctx context.Context, userID, bookID uuid.UUID, note string) error
	Unlike(ctx context.Context, userID, bookID uuid.UUID) error
}

type service struct {
	repo *Repository
}

// NewService builds an inventory service with the required dependencies.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory repo is required")
	}
	return &service{repo: repo}, nil
}

// ForBook gathers stock, sold-out and like state for bookID. viewerID may be nil.
func (s *service) ForBook(ctx context.Context, bookID uuid.UUID, viewerID *uuid.UUID) (BookInventoryDTO, error) {
	if err := s.ensureBook(ctx, bookID); err != nil {
		return BookInventoryDTO{}, err
	}

	out := BookInventoryDTO{BookID: bookID}
	var err error
	if out.HowManyLeft, err = s.repo.StockForBook(ctx, bookID); err != nil {
		return BookInventoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stock")
	}
	soldOut, err := s.repo.SoldOutForBook(ctx, bookID)
	if err != nil {
		return BookInventoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sold out")
	}
	if soldOut != nil {
		out.SoldOut = true
		expected := soldOut.ExpectedAvailability
		out.ExpectedAvailability = &expected
	}
	if out.Likes, err = s.repo.CountLikes(ctx, bookID); err != nil {
		return BookInventoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count likes")
	}
	if viewerID != nil {
		if out.LikedByMe, err = s.repo.HasLike(ctx, bookID, *viewerID); err != nil {
			return BookInventoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load like")
		}
	}
	return out, nil
}

// Like records that userID likes bookID. Repeated likes are no-ops.
func (s *service) Like(ctx context.Context, userID, bookID uuid.UUID, note string) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	note = strings.TrimSpace(note)
	if utf8.RuneCountInString(note) > maxNoteLength {
		return pkgerrors.New(pkgerrors.CodeValidation, "recommended books is too long").
			WithDetails(map[string]any{"max_length": maxNoteLength})
	}
	if err := s.ensureBook(ctx, bookID); err != nil {
		return err
	}
	if err := s.repo.AddLike(ctx, bookID, userID, note); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add like")
	}
	return nil
}

// Unlike drops the like regardless of prior state.
func (s *service) Unlike(ctx context.Context, userID, bookID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if err := s.repo.RemoveLike(ctx, bookID, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove like")
	}
	return nil
}

func (s *service) ensureBook(ctx context.Context, bookID uuid.UUID) error {
	if bookID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "book id is required")
	}
	ok, err := s.repo.BookExists(ctx, bookID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load book")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
	}
	return nil
}
