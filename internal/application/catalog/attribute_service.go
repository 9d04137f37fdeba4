package catalog

import (
	"context"

	"github.com/renztrending/backend/internal/domain/catalog"
)

// AttributeService manages colors and the size chart
type AttributeService struct {
	repo catalog.AttributeRepository
}

// NewAttributeService creates a new AttributeService
func NewAttributeService(repo catalog.AttributeRepository) *AttributeService {
	return &AttributeService{repo: repo}
}

// ListColors returns all colors
func (s *AttributeService) ListColors(ctx context.Context) ([]ColorResponse, error) {
	colors, err := s.repo.ListColors(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ColorResponse, len(colors))
	for i := range colors {
		out[i] = ToColorResponse(&colors[i])
	}
	return out, nil
}

// CreateColor adds a color
func (s *AttributeService) CreateColor(ctx context.Context, req CreateColorRequest) (*ColorResponse, error) {
	color, err := catalog.NewColor(req.Name, req.HexCode)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveColor(ctx, color); err != nil {
		return nil, err
	}
	resp := ToColorResponse(color)
	return &resp, nil
}

// ListSizes returns the size chart
func (s *AttributeService) ListSizes(ctx context.Context) ([]SizeResponse, error) {
	sizes, err := s.repo.ListSizes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]SizeResponse, len(sizes))
	for i := range sizes {
		out[i] = ToSizeResponse(&sizes[i])
	}
	return out, nil
}

// CreateSize adds a size chart row
func (s *AttributeService) CreateSize(ctx context.Context, req CreateSizeRequest) (*SizeResponse, error) {
	size, err := catalog.NewSize(req.Code)
	if err != nil {
		return nil, err
	}
	size.Chest = req.Chest
	size.Length = req.Length
	size.Shoulder = req.Shoulder
	size.Sleeve = req.Sleeve
	if err := s.repo.SaveSize(ctx, size); err != nil {
		return nil, err
	}
	resp := ToSizeResponse(size)
	return &resp, nil
}
