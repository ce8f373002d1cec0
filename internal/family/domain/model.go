package domain

import (
	"errors"
	"time"
)

var (
	ErrLinkNotFound  = errors.New("family link not found")
	ErrCodeInvalid   = errors.New("family code not recognized")
	ErrInvalidStatus = errors.New("status must be active or inactive")
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// FamilyLink is the shareable invite code that groups accounts under one
// family_id. One active link per creator, minted lazily.
type FamilyLink struct {
	ID          string    `json:"id"`
	FamilyID    string    `json:"familyId"`
	CreatorID   string    `json:"creatorId"`
	UniqueCode  string    `json:"uniqueCode"`
	Status      string    `json:"status"`
	MemberCount int       `json:"memberCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusInactive
}
