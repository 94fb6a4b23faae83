package app

import "time"

type (
	// User represents a registered account. New accounts are created
	// unapproved and activated out of band.
	User struct {
		ID           string    `gorm:"primaryKey" json:"id"`
		Email        string    `gorm:"uniqueIndex;not null" json:"email"`
		PasswordHash string    `gorm:"not null" json:"-"`
		IsApproved   bool      `gorm:"default:false" json:"isApproved"`
		CreatedAt    time.Time `json:"createdAt"`
		UpdatedAt    time.Time `json:"updatedAt"`
	}

	// Album groups images for a single owner. UserID is set at creation
	// and never changes.
	Album struct {
		ID          string    `gorm:"primaryKey" json:"id"`
		UserID      string    `gorm:"not null;index" json:"userId"`
		Name        string    `gorm:"not null" json:"name"`
		Description string    `gorm:"default:''" json:"description"`
		IsPrivate   bool      `gorm:"default:false" json:"isPrivate"`
		CreatedAt   time.Time `json:"createdAt"`
		UpdatedAt   time.Time `json:"updatedAt"`
	}

	// Image is the metadata record for one stored picture. PublicID is
	// the blob-storage key; legacy records may have none, in which case
	// there is nothing to purge remotely.
	Image struct {
		ID          string    `gorm:"primaryKey" json:"id"`
		AlbumID     string    `gorm:"not null;index" json:"albumId"`
		UserID      string    `gorm:"not null" json:"userId"`
		PublicID    string    `json:"publicId"`
		Name        string    `json:"name"`
		ContentType string    `json:"contentType"`
		Size        int64     `json:"size"`
		CreatedAt   time.Time `json:"createdAt"`
	}
)
