package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InStock counts remaining sellable copies of a book.
type InStock struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	BookID      *uuid.UUID `gorm:"column:book_id;type:uuid;index" json:"book_id"`
	HowManyLeft int        `gorm:"column:how_many_left;not null;default:0" json:"how_many_left"`
}

func (InStock) TableName() string { return "in_stock" }

func (s *InStock) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

// SoldOut records when a sold-out book is expected back.
type SoldOut struct {
	ID                   uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	BookID               *uuid.UUID `gorm:"column:book_id;type:uuid;index" json:"book_id"`
	ExpectedAvailability string     `gorm:"column:expected_availability;type:varchar(100)" json:"expected_availability"`
}

func (SoldOut) TableName() string { return "sold_out" }

func (s *SoldOut) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

// Like links a buyer to a book they liked.
type Like struct {
	ID               uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	BookID           *uuid.UUID `gorm:"column:book_id;type:uuid;uniqueIndex:idx_likes_book_buyer" json:"book_id"`
	BuyerID          *uuid.UUID `gorm:"column:buyer_id;type:uuid;uniqueIndex:idx_likes_book_buyer" json:"buyer_id"`
	RecommendedBooks string     `gorm:"column:recommended_books;type:varchar(200)" json:"recommended_books"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (l *Like) BeforeCreate(*gorm.DB) error {
	ensureID(&l.ID)
	return nil
}
