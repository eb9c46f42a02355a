package model

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Categories the portal publishes under. Stored as plain text on the
// article row and matched case-insensitively, not via foreign key.
var Categories = []string{
	"Politik",
	"Ekonomi",
	"Olahraga",
	"Teknologi",
	"Hiburan",
	"Internasional",
}

// Article is a news article. Body carries sanitized HTML. ImageURL is
// always a fully-resolved public URL, never a storage key.
type Article struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	ImageURL  *string    `json:"image_url"`
	Published bool       `json:"published"`
	Category  *string    `json:"category"`
	Tags      []string   `json:"tags"`
	AuthorID  *uuid.UUID `json:"author_id"`
	Author    Author     `json:"author"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Author is the normalized author relation. The joined field arrives in
// different JSON shapes depending on the query path (a bare object from
// row-building joins, a one-element or empty array from aggregating
// joins, or null when the article has no author), so every read decodes
// through this single type. It never exposes an array.
type Author struct {
	FullName *string `json:"full_name"`
}

// UnmarshalJSON accepts object, [object], [], null, or absent input and
// always yields a single nullable object.
func (a *Author) UnmarshalJSON(data []byte) error {
	a.FullName = nil

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if trimmed[0] == '[' {
		var list []struct {
			FullName *string `json:"full_name"`
		}
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		if len(list) > 0 {
			a.FullName = list[0].FullName
		}
		return nil
	}

	var obj struct {
		FullName *string `json:"full_name"`
	}
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return err
	}
	a.FullName = obj.FullName
	return nil
}

// DisplayName is the render-ready author name.
func (a Author) DisplayName() string {
	if a.FullName == nil || *a.FullName == "" {
		return "Unknown Author"
	}
	return *a.FullName
}
