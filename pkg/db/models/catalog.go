package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Author writes books. Listing order is last name then first name.
type Author struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FirstName string    `gorm:"column:first_name;type:varchar(100);not null" json:"first_name"`
	LastName  string    `gorm:"column:last_name;type:varchar(100);not null" json:"last_name"`
	BioData   string    `gorm:"column:bio_data;type:text" json:"bio_data"`
	Books     []Book    `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL" json:"books,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (a *Author) BeforeCreate(*gorm.DB) error {
	ensureID(&a.ID)
	return nil
}

// Book is a catalog title. ISBN is unique across the catalog.
type Book struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title      string         `gorm:"column:title;type:varchar(200);not null" json:"title"`
	AuthorID   *uuid.UUID     `gorm:"column:author_id;type:uuid;index" json:"author_id"`
	Author     *Author        `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Summary    string         `gorm:"column:summary;type:varchar(1000)" json:"summary"`
	ISBN       string         `gorm:"column:isbn;type:varchar(13);not null;uniqueIndex" json:"isbn"`
	PublYear   string         `gorm:"column:publ_year;type:varchar(20)" json:"publ_year"`
	Instances  []BookInstance `gorm:"foreignKey:BookID;constraint:OnDelete:SET NULL" json:"instances,omitempty"`
	Genres     []Genre        `gorm:"foreignKey:BookID;constraint:OnDelete:SET NULL" json:"genres,omitempty"`
	Categories []Category     `gorm:"foreignKey:BookID;constraint:OnDelete:SET NULL" json:"categories,omitempty"`
	Ratings    []Rating       `gorm:"foreignKey:BookID;constraint:OnDelete:SET NULL" json:"ratings,omitempty"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (b *Book) BeforeCreate(*gorm.DB) error {
	ensureID(&b.ID)
	return nil
}

// Genre tags a book.
type Genre struct {
	ID     uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name   string     `gorm:"column:name;type:varchar(200);not null" json:"name"`
	BookID *uuid.UUID `gorm:"column:book_id;type:uuid;index" json:"book_id"`
}

func (g *Genre) BeforeCreate(*gorm.DB) error {
	ensureID(&g.ID)
	return nil
}

// Category groups a book for browsing.
type Category struct {
	ID     uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name   string     `gorm:"column:name;type:varchar(200);not null" json:"name"`
	BookID *uuid.UUID `gorm:"column:book_id;type:uuid;index" json:"book_id"`
}

func (Category) TableName() string { return "categories" }

func (c *Category) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

// Rating is a named rating attached to a book.
type Rating struct {
	ID     uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name   string     `gorm:"column:name;type:varchar(200);not null" json:"name"`
	BookID *uuid.UUID `gorm:"column:book_id;type:uuid;index" json:"book_id"`
}

func (r *Rating) BeforeCreate(*gorm.DB) error {
	ensureID(&r.ID)
	return nil
}
