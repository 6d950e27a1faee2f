// AngelaMos | 2026
// service.go

package sweet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sweetcorner/backend/internal/core"
	"github.com/sweetcorner/backend/internal/storage"
)

var (
	ErrDuplicateName = errors.New("sweet name already exists")
	ErrOutOfStock    = errors.New("sweet is out of stock")
)

// Service holds the inventory business logic. Access control is enforced by
// the router middleware, not here; every method assumes an authorized caller.
type Service struct {
	repo   Repository
	images storage.ImageStore
}

func NewService(repo Repository, images storage.ImageStore) *Service {
	return &Service{
		repo:   repo,
		images: images,
	}
}

// Add creates a sweet. A failed image upload is logged and skipped; the
// sweet is still created without an image reference.
func (s *Service) Add(
	ctx context.Context,
	params CreateSweetParams,
	image *ImageUpload,
) (*Sweet, error) {
	exists, err := s.repo.ExistsByName(ctx, params.Name)
	if err != nil {
		return nil, fmt.Errorf("check sweet name: %w", err)
	}
	if exists {
		return nil, ErrDuplicateName
	}

	sweet := &Sweet{
		ID:       uuid.New().String(),
		Name:     params.Name,
		Price:    params.Price,
		Category: params.Category,
		Quantity: params.Quantity,
	}

	if url := s.uploadImage(ctx, image); url != "" {
		sweet.ImageURL = &url
	}

	if err := s.repo.Create(ctx, sweet); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}

	return sweet, nil
}

func (s *Service) List(ctx context.Context) ([]Sweet, error) {
	return s.repo.List(ctx)
}

func (s *Service) Search(
	ctx context.Context,
	filter Filter,
) ([]Sweet, error) {
	return s.repo.Find(ctx, filter)
}

// Update applies the provided fields, leaving the rest unchanged. A new
// image replaces the stored reference; the old image is not garbage
// collected. Renaming to a taken name surfaces as ErrDuplicateName through
// the unique index.
func (s *Service) Update(
	ctx context.Context,
	id string,
	params UpdateSweetParams,
	image *ImageUpload,
) (*Sweet, error) {
	sweet, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		sweet.Name = *params.Name
	}
	if params.Price != nil {
		sweet.Price = *params.Price
	}
	if params.Category != nil {
		sweet.Category = *params.Category
	}
	if params.Quantity != nil {
		sweet.Quantity = *params.Quantity
	}

	if url := s.uploadImage(ctx, image); url != "" {
		sweet.ImageURL = &url
	}

	if err := s.repo.Update(ctx, sweet); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}

	return sweet, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Purchase decrements stock by the requested quantity as one atomic
// read-modify-write. Insufficient stock fails with ErrOutOfStock and leaves
// the quantity unchanged.
func (s *Service) Purchase(
	ctx context.Context,
	id string,
	quantity int,
) (*Sweet, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf(
			"purchase quantity must be positive: %w",
			core.ErrInvalidInput,
		)
	}

	sweet, err := s.repo.DecrementStock(ctx, id, quantity)
	if err != nil {
		if errors.Is(err, ErrInsufficientStock) {
			return nil, ErrOutOfStock
		}
		return nil, err
	}

	return sweet, nil
}

// Restock increments stock by the given quantity. There is no upper bound.
func (s *Service) Restock(
	ctx context.Context,
	id string,
	quantity int,
) (*Sweet, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf(
			"restock quantity must be positive: %w",
			core.ErrInvalidInput,
		)
	}

	return s.repo.IncrementStock(ctx, id, quantity)
}

func (s *Service) uploadImage(
	ctx context.Context,
	image *ImageUpload,
) string {
	if image == nil || s.images == nil {
		return ""
	}

	url, err := s.images.Save(ctx, image.Filename, image.Reader)
	if err != nil {
		slog.Warn("image upload failed, saving sweet without image",
			"filename", image.Filename,
			"error", err,
		)
		return ""
	}

	return url
}
