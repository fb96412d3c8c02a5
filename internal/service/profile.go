package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/pharmacy/internal/models"
	"github.com/Skotchmaster/pharmacy/internal/repo"
	"github.com/Skotchmaster/pharmacy/internal/transport"
	pkg_hash "github.com/Skotchmaster/pharmacy/pkg/hash"
	"github.com/Skotchmaster/pharmacy/pkg/logging"
	"github.com/Skotchmaster/pharmacy/pkg/tokens"
)

type ProfileService struct {
	Repo *repo.GormRepo
}

func (s *ProfileService) GetProfile(ctx context.Context, p tokens.Principal) (*models.Admin, error) {
	a, err := s.Repo.AdminByID(ctx, p.AccountID)
	if err != nil {
		return nil, notFound(err, "admin not found")
	}
	return a, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, p tokens.Principal, req transport.UpdateProfileRequest) (*models.Admin, error) {
	l := logging.FromContext(ctx).With("svc", "profile.update")

	a, err := s.Repo.AdminByID(ctx, p.AccountID)
	if err != nil {
		return nil, notFound(err, "admin not found")
	}

	if v, ok := requiredString(req.Name); ok {
		a.Name = v
	}
	if v, ok := requiredString(req.Email); ok && v != a.Email {
		other, err := s.Repo.AdminByEmail(ctx, v)
		if err == nil && other.ID != a.ID {
			return nil, fmt.Errorf("%w: email already in use", ErrConflict)
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		a.Email = v
	}
	if v, ok := requiredString(req.Phone); ok {
		a.Phone = v
	}
	if v, ok := requiredString(req.Role); ok {
		a.Role = v
	}

	if req.NewPassword != "" {
		if !pkg_hash.CheckPassword(a.PasswordHash, req.CurrentPassword) {
			return nil, fmt.Errorf("%w: current password is incorrect", ErrValidation)
		}
		h, err := pkg_hash.HashPassword(req.NewPassword)
		if err != nil {
			l.Error("update_profile_error", "status", 500, "reason", "cannot hash the password", "error", err)
			return nil, err
		}
		a.PasswordHash = h
	}

	if err := s.Repo.SaveAdmin(ctx, a); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: email already in use", ErrConflict)
		}
		return nil, err
	}
	return a, nil
}
