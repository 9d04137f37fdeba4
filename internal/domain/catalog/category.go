package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/shared"
)

// Category groups products; categories may nest one level under a parent
type Category struct {
	shared.BaseEntity
	Name     string
	Slug     string
	ParentID *uuid.UUID
	ImageURL string

	// Parent is populated when preloaded
	Parent *Category
}

// NewCategory creates a category with a slug derived from its name
func NewCategory(name string, parentID *uuid.UUID) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Category name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewValidationError("Category name cannot exceed 100 characters")
	}
	slug := shared.Slugify(name)
	if slug == "" {
		return nil, shared.NewValidationError("Category name must contain letters or digits")
	}
	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Slug:       slug,
		ParentID:   parentID,
	}, nil
}

// ParentName returns the parent's name, or empty for a root category
func (c *Category) ParentName() string {
	if c.Parent == nil {
		return ""
	}
	return c.Parent.Name
}
