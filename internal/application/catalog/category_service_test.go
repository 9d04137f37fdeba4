package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/catalog"
	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates child category", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		parent, err := catalog.NewCategory("Men", nil)
		require.NoError(t, err)
		repo.On("FindByID", ctx, parent.ID).Return(parent, nil)
		repo.On("ExistsBySlug", ctx, "t-shirts").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*catalog.Category")).Return(nil)

		got, err := NewCategoryService(repo).Create(ctx, CreateCategoryRequest{Name: "T-Shirts", ParentID: &parent.ID})
		require.NoError(t, err)
		assert.Equal(t, "t-shirts", got.Slug)
		assert.Equal(t, "Men", got.ParentName)
	})

	t.Run("missing parent", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		parentID := uuid.New()
		repo.On("FindByID", ctx, parentID).Return(nil, shared.ErrNotFound)

		_, err := NewCategoryService(repo).Create(ctx, CreateCategoryRequest{Name: "Tees", ParentID: &parentID})
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		repo.On("ExistsBySlug", ctx, "tees").Return(true, nil)

		_, err := NewCategoryService(repo).Create(ctx, CreateCategoryRequest{Name: "Tees"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestCategoryService_Tree(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)

	men, _ := catalog.NewCategory("Men", nil)
	women, _ := catalog.NewCategory("Women", nil)
	tees, _ := catalog.NewCategory("Tees", &men.ID)
	orphan, _ := catalog.NewCategory("Orphan", ptr(uuid.New()))

	repo.On("FindAll", ctx).Return([]catalog.Category{*men, *women, *tees, *orphan}, nil)
	repo.On("CountProducts", ctx).Return(map[uuid.UUID]int64{tees.ID: 4}, nil)

	tree, err := NewCategoryService(repo).Tree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 3, "men, women and the orphan are roots")
	assert.Equal(t, "Men", tree[0].Name)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, int64(4), tree[0].Children[0].TotalProducts)
	assert.Empty(t, tree[1].Children)
}

func ptr[T any](v T) *T { return &v }
