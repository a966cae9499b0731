package domain

// Artwork Model
type Artwork struct {
	ID            uint    `gorm:"primaryKey"` // Primary key
	Title         string  `gorm:"not null"`   // Artwork title
	Price         int     `gorm:"not null"`   // Price in the smallest currency unit
	Category      string  // Category label
	ArtistName    string  // Original artist
	OwnerName     string  // Current owner: artist at creation, buyer after purchase
	ImageFilename string  // Stored image name in the artworks asset namespace
	IsSold        bool    `gorm:"default:false"` // Flips to true on purchase, never reverts
	Caption       string  `gorm:"type:text"`     // Free text, editable
	SlipFilename  *string // Stored slip name in the slips namespace, set once at purchase
}
