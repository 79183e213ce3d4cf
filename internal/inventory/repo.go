package inventory

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/angelmondragon/bookhaven-backend/internal/repo"
	"github.com/angelmondragon/bookhaven-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository encapsulates stock, sold-out and like persistence.
type Repository struct {
	base repo.Base
}

// NewRepository constructs an inventory repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

// BookExists reports whether a catalog book with id exists.
func (r *Repository) BookExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.base.DB(ctx).Model(&models.Book{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// StockForBook sums how_many_left across the book's stock rows.
func (r *Repository) StockForBook(ctx context.Context, bookID uuid.UUID) (int64, error) {
	var total sql.NullInt64
	err := r.base.DB(ctx).
		Model(&models.InStock{}).
		Select("SUM(how_many_left)").
		Where("book_id = ?", bookID).
		Scan(&total).
		Error
	if err != nil {
		return 0, err
	}
	return total.Int64, nil
}

// SoldOutForBook returns a sold-out annotation for the book, or nil.
func (r *Repository) SoldOutForBook(ctx context.Context, bookID uuid.UUID) (*models.SoldOut, error) {
	var row models.SoldOut
	err := r.base.DB(ctx).Where("book_id = ?", bookID).Order("id DESC").Limit(1).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// CountLikes returns how many buyers liked the book.
func (r *Repository) CountLikes(ctx context.Context, bookID uuid.UUID) (int64, error) {
	var count int64
	err := r.base.DB(ctx).Model(&models.Like{}).Where("book_id = ?", bookID).Count(&count).Error
	return count, err
}

// HasLike reports whether buyerID liked bookID.
func (r *Repository) HasLike(ctx context.Context, bookID, buyerID uuid.UUID) (bool, error) {
	var count int64
	err := r.base.DB(ctx).Model(&models.Like{}).Where("book_id = ? AND buyer_id = ?", bookID, buyerID).Count(&count).Error
	return count > 0, err
}

// AddLike inserts a like and ignores duplicates.
func (r *Repository) AddLike(ctx context.Context, bookID, buyerID uuid.UUID, note string) error {
	if bookID == uuid.Nil || buyerID == uuid.Nil {
		return gorm.ErrInvalidValue
	}

	return r.base.DB(ctx).
		Exec(`INSERT INTO likes (id, book_id, buyer_id, recommended_books, created_at) VALUES (?, ?, ?, ?, ?) ON CONFLICT (book_id, buyer_id) DO NOTHING`,
			uuid.New(), bookID, buyerID, note, time.Now().UTC()).
		Error
}

// RemoveLike deletes the like if it exists.
func (r *Repository) RemoveLike(ctx context.Context, bookID, buyerID uuid.UUID) error {
	return r.base.DB(ctx).
		Where("book_id = ? AND buyer_id = ?", bookID, buyerID).
		Delete(&models.Like{}).
		Error
}
