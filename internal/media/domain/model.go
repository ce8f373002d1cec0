package domain

import "errors"

var (
	ErrFileTooLarge    = errors.New("file exceeds the size limit")
	ErrNotAnImage      = errors.New("file is not an image")
	ErrMissingFile     = errors.New("no file supplied")
	ErrFamilyIDMissing = errors.New("familyId is required")
)

const (
	// MaxAvatarBytes bounds profile image uploads.
	MaxAvatarBytes = 5 << 20
	// MaxFamilyMediaBytes bounds family-shared uploads.
	MaxFamilyMediaBytes = 25 << 20
)

// Object describes one stored blob with a time-limited access URL.
type Object struct {
	Key       string `json:"key"`
	SignedURL string `json:"signedUrl"`
	Size      int64  `json:"size,omitempty"`
}
