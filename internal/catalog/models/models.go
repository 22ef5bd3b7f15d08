// Package models defines the brand catalog records.
package models

import (
	"time"

	id "cardspace/pkg/domain"
)

// Brand is a merchant whose loyalty cards users can hold.
type Brand struct {
	ID         id.BrandID    `json:"id"`
	Name       string        `json:"name"`
	Subtitle   string        `json:"subtitle"`
	LogoURL    string        `json:"logo_url"`
	CategoryID id.CategoryID `json:"category_id,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}

// Category groups brands for browsing. DisplayOrder drives the browse
// screen's ordering; featured categories surface on the home screen.
type Category struct {
	ID           id.CategoryID `json:"id"`
	Name         string        `json:"name"`
	Slug         string        `json:"slug"`
	Description  string        `json:"description"`
	IconName     string        `json:"icon_name"`
	Color        string        `json:"color"`
	DisplayOrder int           `json:"display_order"`
	IsFeatured   bool          `json:"is_featured"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
