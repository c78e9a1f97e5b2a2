package repository

import (
	"context"

	"github.com/agriconnect/agrimarket-backend/internal/model"
	"gorm.io/gorm"
)

// CropFilter narrows available-crop listings. Zero values mean "no filter".
type CropFilter struct {
	Category string
	County   string
	MaxPrice float64
	Search   string
}

type CropRepository interface {
	Create(ctx context.Context, crop *model.Crop) error
	FindByID(ctx context.Context, id uint64) (*model.Crop, error)
	ListAvailable(ctx context.Context, filter CropFilter) ([]model.Crop, error)
	ListByFarmer(ctx context.Context, farmerID uint64) ([]model.Crop, error)
	UpdateStatus(ctx context.Context, id uint64, status model.CropStatus) error
	CompareAndSwapQuantity(ctx context.Context, id uint64, oldQuantity, newQuantity float64, newStatus model.CropStatus) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type cropRepository struct {
	db *gorm.DB
}

func NewCropRepository(db *gorm.DB) CropRepository {
	return &cropRepository{db: db}
}

func (r *cropRepository) Create(ctx context.Context, crop *model.Crop) error {
	return r.db.WithContext(ctx).Create(crop).Error
}

func (r *cropRepository) FindByID(ctx context.Context, id uint64) (*model.Crop, error) {
	var crop model.Crop
	if err := r.db.WithContext(ctx).First(&crop, id).Error; err != nil {
		return nil, err
	}
	return &crop, nil
}

func (r *cropRepository) ListAvailable(ctx context.Context, filter CropFilter) ([]model.Crop, error) {
	q := r.db.WithContext(ctx).Where("status = ?", model.CropStatusAvailable)
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.County != "" {
		q = q.Where("county = ?", filter.County)
	}
	if filter.MaxPrice > 0 {
		q = q.Where("price_per_unit <= ?", filter.MaxPrice)
	}
	if filter.Search != "" {
		q = q.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	var crops []model.Crop
	if err := q.Order("created_at DESC").Find(&crops).Error; err != nil {
		return nil, err
	}
	return crops, nil
}

func (r *cropRepository) ListByFarmer(ctx context.Context, farmerID uint64) ([]model.Crop, error) {
	var crops []model.Crop
	if err := r.db.WithContext(ctx).
		Where("farmer_id = ?", farmerID).
		Order("created_at DESC").
		Find(&crops).Error; err != nil {
		return nil, err
	}
	return crops, nil
}

func (r *cropRepository) UpdateStatus(ctx context.Context, id uint64, status model.CropStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.Crop{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// CompareAndSwapQuantity writes the new quantity and status only if the row
// still holds the quantity the caller read. Zero rows affected means a
// concurrent writer got there first.
func (r *cropRepository) CompareAndSwapQuantity(ctx context.Context, id uint64, oldQuantity, newQuantity float64, newStatus model.CropStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Crop{}).
		Where("id = ? AND quantity = ?", id, oldQuantity).
		Updates(map[string]interface{}{
			"quantity": newQuantity,
			"status":   newStatus,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *cropRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Crop{}).Count(&count).Error
	return count, err
}
