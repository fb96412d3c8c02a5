package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/pharmacy/internal/models"
	"github.com/Skotchmaster/pharmacy/internal/repo"
	"github.com/Skotchmaster/pharmacy/internal/transport"
	pkg_hash "github.com/Skotchmaster/pharmacy/pkg/hash"
	"github.com/Skotchmaster/pharmacy/pkg/logging"
	"github.com/Skotchmaster/pharmacy/pkg/metrics"
	"github.com/Skotchmaster/pharmacy/pkg/mykafka"
	"github.com/Skotchmaster/pharmacy/pkg/tokens"
)

const DefaultTokenTTL = 24 * time.Hour

type AuthService struct {
	Repo      *repo.GormRepo
	Events    Publisher
	JWTSecret []byte
	TokenTTL  time.Duration
	Now       func() time.Time
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Name      string
	Email     string
	Role      string
}

type account struct {
	principal    tokens.Principal
	name         string
	passwordHash string
	profileRole  string
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func validKind(kind string) bool {
	return kind == tokens.RoleAdmin || kind == tokens.RoleCustomer
}

func (s *AuthService) Register(ctx context.Context, kind string, req transport.RegisterRequest) error {
	l := logging.FromContext(ctx).With("svc", "auth.register", "kind", kind)

	if !validKind(kind) {
		return fmt.Errorf("%w: unknown account kind", ErrValidation)
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return fmt.Errorf("%w: email and password required", ErrValidation)
	}

	pwHash, err := pkg_hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return err
	}

	var id string
	switch kind {
	case tokens.RoleAdmin:
		a := &models.Admin{Name: strings.TrimSpace(req.Name), Email: email, Phone: req.Phone, PasswordHash: pwHash}
		err = s.Repo.CreateAdminIfNotExists(ctx, a)
		id = a.ID.String()
	default:
		c := &models.Customer{Name: strings.TrimSpace(req.Name), Email: email, Phone: req.Phone, PasswordHash: pwHash}
		err = s.Repo.CreateCustomerIfNotExists(ctx, c)
		id = c.ID.String()
	}
	if err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return fmt.Errorf("%w: account already exists", ErrConflict)
		}
		return err
	}

	publish(ctx, s.Events, mykafka.TopicAccount, "account_registered", id, map[string]string{"kind": kind, "email": email})
	return nil
}

func (s *AuthService) lookup(ctx context.Context, kind, email string) (*account, error) {
	switch kind {
	case tokens.RoleAdmin:
		a, err := s.Repo.AdminByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return &account{
			principal:    tokens.Principal{AccountID: a.ID, Email: a.Email, Role: tokens.RoleAdmin},
			name:         a.Name,
			passwordHash: a.PasswordHash,
			profileRole:  a.Role,
		}, nil
	default:
		c, err := s.Repo.CustomerByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return &account{
			principal:    tokens.Principal{AccountID: c.ID, Email: c.Email, Role: tokens.RoleCustomer},
			name:         c.Name,
			passwordHash: c.PasswordHash,
		}, nil
	}
}

func (s *AuthService) Login(ctx context.Context, kind, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "kind", kind)

	if !validKind(kind) {
		return nil, fmt.Errorf("%w: unknown account kind", ErrValidation)
	}

	acc, err := s.lookup(ctx, kind, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.RecordLogin(kind, false)
			return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		l.Error("login_error", "status", 500, "reason", "account lookup failed", "error", err)
		return nil, err
	}
	if !pkg_hash.CheckPassword(acc.passwordHash, password) {
		metrics.RecordLogin(kind, false)
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if pkg_hash.NeedsRehash(acc.passwordHash) {
		s.rehash(ctx, kind, acc.principal.AccountID, password)
	}

	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	now := s.now()
	claims := tokens.NewAccessClaims(acc.principal.AccountID, acc.principal.Email, acc.principal.Role, now, ttl)
	tok, err := tokens.Sign(claims, s.JWTSecret)
	if err != nil {
		l.Error("login_error", "status", 500, "reason", "cannot sign token", "error", err)
		return nil, err
	}

	metrics.RecordLogin(kind, true)
	publish(ctx, s.Events, mykafka.TopicAccount, "account_logged_in", acc.principal.AccountID.String(), map[string]string{"kind": kind})

	return &LoginResult{
		Token:     tok,
		ExpiresAt: now.Add(ttl),
		Name:      acc.name,
		Email:     acc.principal.Email,
		Role:      acc.profileRole,
	}, nil
}

// rehash upgrades a stored hash to the current cost. Failures only log.
func (s *AuthService) rehash(ctx context.Context, kind string, id uuid.UUID, password string) {
	l := logging.FromContext(ctx).With("svc", "auth.rehash", "kind", kind)

	h, err := pkg_hash.HashPassword(password)
	if err != nil {
		l.Warn("rehash_failed", "error", err)
		return
	}
	var model any = &models.Customer{}
	if kind == tokens.RoleAdmin {
		model = &models.Admin{}
	}
	if err := s.Repo.UpdatePasswordHash(ctx, model, id, h); err != nil {
		l.Warn("rehash_failed", "error", err)
	}
}
