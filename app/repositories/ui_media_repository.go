package repositories

import (
	"context"
	"time"

	"github.com/oguzk/eticaret/app/models"
	"gorm.io/gorm"
)

type UiMediaRepository interface {
	ListPublic(ctx context.Context, mediaType, locale string, limit, offset int, now time.Time) ([]models.UiMedia, error)
	ListAdmin(ctx context.Context, mediaType, locale string, limit, offset int) ([]models.UiMedia, error)
	Create(ctx context.Context, item *models.UiMedia) error
	GetByID(ctx context.Context, id string) (*models.UiMedia, error)
	Update(ctx context.Context, id string, fields map[string]any) (*models.UiMedia, error)
	Delete(ctx context.Context, id string) error
	UpdateSortOrder(ctx context.Context, id string, sortOrder int) error
}

type uiMediaRepository struct {
	db *gorm.DB
}

func NewUiMediaRepository(db *gorm.DB) UiMediaRepository {
	return &uiMediaRepository{db}
}

func (r *uiMediaRepository) ListPublic(ctx context.Context, mediaType, locale string, limit, offset int, now time.Time) ([]models.UiMedia, error) {
	var items []models.UiMedia

	query := r.db.WithContext(ctx).
		Model(&models.UiMedia{}).
		Where("is_active = ?", true).
		Where("publish_at IS NULL OR publish_at <= ?", now).
		Where("unpublish_at IS NULL OR unpublish_at >= ?", now)

	if mediaType != "" {
		query = query.Where("type = ?", mediaType)
	}
	if locale != "" {
		query = query.Where("locale = ?", locale)
	}

	err := query.
		Order("sort_order ASC").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error

	return items, err
}

func (r *uiMediaRepository) ListAdmin(ctx context.Context, mediaType, locale string, limit, offset int) ([]models.UiMedia, error) {
	var items []models.UiMedia

	query := r.db.WithContext(ctx).Model(&models.UiMedia{})
	if mediaType != "" {
		query = query.Where("type = ?", mediaType)
	}
	if locale != "" {
		query = query.Where("locale = ?", locale)
	}

	err := query.
		Order("sort_order ASC").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error

	return items, err
}

func (r *uiMediaRepository) Create(ctx context.Context, item *models.UiMedia) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *uiMediaRepository) GetByID(ctx context.Context, id string) (*models.UiMedia, error) {
	var item models.UiMedia
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *uiMediaRepository) Update(ctx context.Context, id string, fields map[string]any) (*models.UiMedia, error) {
	fields["updated_at"] = time.Now()

	res := r.db.WithContext(ctx).
		Model(&models.UiMedia{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *uiMediaRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.UiMedia{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateSortOrder applies a single reorder entry. Batch reorder issues these
// one by one without a surrounding transaction, so a failure partway leaves
// the earlier updates in place.
func (r *uiMediaRepository) UpdateSortOrder(ctx context.Context, id string, sortOrder int) error {
	res := r.db.WithContext(ctx).
		Model(&models.UiMedia{}).
		Where("id = ?", id).
		Updates(map[string]any{"sort_order": sortOrder, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
