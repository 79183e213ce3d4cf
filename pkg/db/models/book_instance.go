package models

import (
	"time"

	"github.com/angelmondragon/bookhaven-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookInstance is a single lendable copy of a Book.
type BookInstance struct {
	ID         uuid.UUID        `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	BookID     *uuid.UUID       `gorm:"column:book_id;type:uuid;index" json:"book_id"`
	Book       *Book            `gorm:"foreignKey:BookID" json:"book,omitempty"`
	Imprint    string           `gorm:"column:imprint;type:varchar(200)" json:"imprint"`
	DueBack    *time.Time       `gorm:"column:due_back;type:date;index" json:"due_back"`
	BorrowerID *uuid.UUID       `gorm:"column:borrower_id;type:uuid;index" json:"borrower_id"`
	Borrower   *User            `gorm:"foreignKey:BorrowerID;constraint:OnDelete:SET NULL" json:"-"`
	Status     enums.LoanStatus `gorm:"column:status;type:varchar(1);not null;default:'m';index" json:"status"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (b *BookInstance) BeforeCreate(*gorm.DB) error {
	ensureID(&b.ID)
	if b.Status == "" {
		b.Status = enums.LoanStatusMaintenance
	}
	return nil
}

// IsOverdueAt reports whether the copy was due strictly before the calendar
// day of now. A copy due today is not overdue.
func (b BookInstance) IsOverdueAt(now time.Time) bool {
	if b.DueBack == nil {
		return false
	}
	return civilDate(*b.DueBack).Before(civilDate(now))
}

// IsOverdue evaluates IsOverdueAt against the current time.
func (b BookInstance) IsOverdue() bool {
	return b.IsOverdueAt(time.Now())
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
