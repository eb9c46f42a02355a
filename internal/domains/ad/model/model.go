package model

import (
	"errors"
	"time"
)

// Ad slots. The slot name is the unique key; each slot carries one
// creative at a time.
const (
	SlotHomeBanner  = "home_banner"
	SlotNewsSidebar = "news_sidebar"
)

var ErrUnknownSlot = errors.New("unknown ad slot")

// ValidSlot reports whether name is one of the fixed slots.
func ValidSlot(name string) bool {
	return name == SlotHomeBanner || name == SlotNewsSidebar
}

// Ad is a creative placed in a named slot.
type Ad struct {
	SlotName    string    `json:"slot_name"`
	ImageURL    *string   `json:"image_url"`
	RedirectURL *string   `json:"redirect_url"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateAdRequest changes the redirect URL (and optionally the image)
// of a slot.
type UpdateAdRequest struct {
	RedirectURL string `json:"redirect_url"`
	ImageURL    string `json:"image_url"`
}
