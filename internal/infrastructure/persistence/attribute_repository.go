package persistence

import (
	"context"
	"errors"
	"sort"

	"github.com/renztrending/backend/internal/domain/catalog"
	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/renztrending/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAttributeRepository implements AttributeRepository using GORM
type GormAttributeRepository struct {
	db *gorm.DB
}

// NewGormAttributeRepository creates a new GormAttributeRepository
func NewGormAttributeRepository(db *gorm.DB) *GormAttributeRepository {
	return &GormAttributeRepository{db: db}
}

// ListColors lists colours by name
func (r *GormAttributeRepository) ListColors(ctx context.Context) ([]catalog.Color, error) {
	var rows []models.ColorModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	colors := make([]catalog.Color, len(rows))
	for i := range rows {
		colors[i] = *rows[i].ToDomain()
	}
	return colors, nil
}

// SaveColor creates or updates a colour
func (r *GormAttributeRepository) SaveColor(ctx context.Context, color *catalog.Color) error {
	if err := r.db.WithContext(ctx).Save(models.ColorModelFromDomain(color)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewDomainError(shared.CodeAlreadyExists, "Color already exists")
		}
		return err
	}
	return nil
}

// ListSizes lists sizes from smallest to largest
func (r *GormAttributeRepository) ListSizes(ctx context.Context) ([]catalog.Size, error) {
	var rows []models.SizeModel
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	rank := make(map[catalog.SizeCode]int, len(catalog.AllSizeCodes()))
	for i, code := range catalog.AllSizeCodes() {
		rank[code] = i
	}
	sizes := make([]catalog.Size, len(rows))
	for i := range rows {
		sizes[i] = *rows[i].ToDomain()
	}
	// garment order, not alphabetical
	sort.SliceStable(sizes, func(i, j int) bool { return rank[sizes[i].Code] < rank[sizes[j].Code] })
	return sizes, nil
}

// SaveSize creates or updates a size
func (r *GormAttributeRepository) SaveSize(ctx context.Context, size *catalog.Size) error {
	if err := r.db.WithContext(ctx).Save(models.SizeModelFromDomain(size)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewDomainError(shared.CodeAlreadyExists, "Size already exists")
		}
		return err
	}
	return nil
}

// Ensure GormAttributeRepository implements AttributeRepository
var _ catalog.AttributeRepository = (*GormAttributeRepository)(nil)
