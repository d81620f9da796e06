package models

// Word is one vocabulary item in the catalogue. Content creation itself is
// external; this table only holds what due-review payloads need.
type Word struct {
	ID         string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Term       string `gorm:"not null;index" json:"term"`
	Definition string `gorm:"type:text" json:"definition"`
	Example    string `gorm:"type:text" json:"example,omitempty"`
	Slug       string `gorm:"uniqueIndex;not null" json:"slug"`
	Language   string `gorm:"type:varchar(16);not null;default:'en'" json:"language"` // BCP-47 tag

	Timestamps
}
