package domain

import (
	"errors"
	"time"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

type Feedback struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (f *Feedback) Validate() error {
	if f.Rating < 1 || f.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}
