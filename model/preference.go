package model

import "time"

// Preference stores the remember-me choice of one device. Both values live
// in one row so they are always written and removed together.
type Preference struct {
	Namespace  string `gorm:"primaryKey;size:64"`
	RememberMe bool   `gorm:"default:false;not null"`
	SavedEmail string `gorm:"size:256;not null"`
	UpdatedAt  time.Time
}
