package inventory

import "github.com/google/uuid"

// BookInventoryDTO summarizes stock annotations for one book.
type BookInventoryDTO struct {
	BookID               uuid.UUID `json:"book_id"`
	HowManyLeft          int64     `json:"how_many_left"`
	SoldOut              bool      `json:"sold_out"`
	ExpectedAvailability *string   `json:"expected_availability"`
	Likes                int64     `json:"likes"`
	LikedByMe            bool      `json:"liked_by_me"`
}
