package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/catalog"
	"github.com/renztrending/backend/internal/domain/shared"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := catalog.NewCategory(req.Name, req.ParentID)
	if err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		parent, err := s.categoryRepo.FindByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewValidationError("Parent category not found")
			}
			return nil, err
		}
		category.Parent = parent
	}

	exists, err := s.categoryRepo.ExistsBySlug(ctx, category.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Category with this name already exists")
	}
	category.ImageURL = req.ImageURL

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category, 0)
	return &resp, nil
}

// List returns every category with its product count
func (s *CategoryService) List(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.categoryRepo.CountProducts(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i], counts[categories[i].ID])
	}
	return responses, nil
}

// Tree returns categories nested under their parents
func (s *CategoryService) Tree(ctx context.Context) ([]CategoryTreeNode, error) {
	flat, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	children := make(map[uuid.UUID][]CategoryResponse)
	known := make(map[uuid.UUID]bool, len(flat))
	for _, c := range flat {
		known[c.ID] = true
	}
	var roots []CategoryResponse
	for _, c := range flat {
		if c.ParentID != nil && known[*c.ParentID] {
			children[*c.ParentID] = append(children[*c.ParentID], c)
			continue
		}
		roots = append(roots, c)
	}

	var build func(c CategoryResponse, depth int) CategoryTreeNode
	build = func(c CategoryResponse, depth int) CategoryTreeNode {
		node := CategoryTreeNode{CategoryResponse: c, Children: []CategoryTreeNode{}}
		// guards against cycles in bad data
		if depth > 16 {
			return node
		}
		for _, child := range children[c.ID] {
			node.Children = append(node.Children, build(child, depth+1))
		}
		return node
	}

	tree := make([]CategoryTreeNode, 0, len(roots))
	for _, r := range roots {
		tree = append(tree, build(r, 0))
	}
	return tree, nil
}
