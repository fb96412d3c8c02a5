package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Skotchmaster/pharmacy/internal/models"
	"github.com/Skotchmaster/pharmacy/pkg/db"
)

var ErrAlreadyExists = errors.New("already exists")

func (r *GormRepo) CreateAdminIfNotExists(ctx context.Context, a *models.Admin) error {
	tx := r.DB.WithContext(ctx).Where("email = ?", a.Email).FirstOrCreate(a)
	if tx.Error != nil {
		if db.IsUniqueViolation(tx.Error) {
			return ErrAlreadyExists
		}
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (r *GormRepo) CreateCustomerIfNotExists(ctx context.Context, c *models.Customer) error {
	tx := r.DB.WithContext(ctx).Where("email = ?", c.Email).FirstOrCreate(c)
	if tx.Error != nil {
		if db.IsUniqueViolation(tx.Error) {
			return ErrAlreadyExists
		}
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (r *GormRepo) AdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var a models.Admin
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormRepo) CustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var c models.Customer
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormRepo) AdminByID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	var a models.Admin
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormRepo) SaveAdmin(ctx context.Context, a *models.Admin) error {
	if err := r.DB.WithContext(ctx).Save(a).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

// UpdatePasswordHash rewrites the hash of an admin or customer row.
func (r *GormRepo) UpdatePasswordHash(ctx context.Context, model any, id uuid.UUID, hash string) error {
	return r.DB.WithContext(ctx).Model(model).Where("id = ?", id).Update("password_hash", hash).Error
}
