package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/pharmacy/internal/models"
)

func (r *GormRepo) ListMedicines(ctx context.Context) ([]models.Medicine, error) {
	meds := make([]models.Medicine, 0)
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&meds).Error; err != nil {
		return nil, err
	}
	return meds, nil
}

func (r *GormRepo) GetMedicine(ctx context.Context, id uuid.UUID) (*models.Medicine, error) {
	var med models.Medicine
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&med).Error; err != nil {
		return nil, err
	}
	return &med, nil
}

func (r *GormRepo) CreateMedicine(ctx context.Context, med *models.Medicine) (*models.Medicine, error) {
	if err := r.DB.WithContext(ctx).Create(med).Error; err != nil {
		return nil, err
	}
	return med, nil
}

// ReplaceMedicine overwrites every business field of an existing record.
func (r *GormRepo) ReplaceMedicine(ctx context.Context, id uuid.UUID, in models.Medicine) (*models.Medicine, error) {
	med, err := r.GetMedicine(ctx, id)
	if err != nil {
		return nil, err
	}

	med.Name = in.Name
	med.Category = in.Category
	med.Price = in.Price
	med.Quantity = in.Quantity
	med.Expiry = in.Expiry
	med.Manufacturer = in.Manufacturer

	if err := r.DB.WithContext(ctx).Save(med).Error; err != nil {
		return nil, err
	}
	return med, nil
}

func (r *GormRepo) DeleteMedicine(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Medicine{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) SearchMedicines(ctx context.Context, q string, offset, limit int) (int64, []models.Medicine, error) {
	pattern := "%" + strings.ToLower(q) + "%"
	where := "LOWER(name) LIKE ? OR LOWER(category) LIKE ? OR LOWER(manufacturer) LIKE ?"

	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Medicine{}).
		Where(where, pattern, pattern, pattern).
		Count(&total).Error; err != nil {
		return 0, nil, err
	}

	meds := make([]models.Medicine, 0, limit)
	if err := r.DB.WithContext(ctx).
		Where(where, pattern, pattern, pattern).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&meds).Error; err != nil {
		return 0, nil, err
	}
	return total, meds, nil
}
