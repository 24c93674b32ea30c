package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/parley/internal/contract"
	"github.com/alexanderramin/parley/internal/db"
	"github.com/alexanderramin/parley/internal/domain"
	"github.com/alexanderramin/parley/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AccountSettings tunes account creation.
type AccountSettings struct {
	HashCost    int
	DefaultRole domain.Role
}

func DefaultAccountSettings() AccountSettings {
	return AccountSettings{HashCost: bcrypt.DefaultCost, DefaultRole: domain.RoleUser}
}

type accountService struct {
	accounts repository.AccountRepo
	uow      db.UnitOfWork
	settings AccountSettings
}

func NewAccountService(accounts repository.AccountRepo, uow db.UnitOfWork, settings AccountSettings) AccountService {
	if settings.HashCost == 0 {
		settings.HashCost = bcrypt.DefaultCost
	}
	if settings.DefaultRole == "" {
		settings.DefaultRole = domain.RoleUser
	}
	return &accountService{accounts: accounts, uow: uow, settings: settings}
}

func (s *accountService) Create(ctx context.Context, in contract.NewAccount) (*domain.Account, error) {
	role := normalizeRole(string(in.Role))
	if role == "" {
		role = s.settings.DefaultRole
	}
	now := time.Now().UTC()
	a := &domain.Account{
		ID:        uuid.New().String(),
		Email:     domain.NormalizeEmail(in.Email),
		Name:      strings.TrimSpace(in.Name),
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}
	a.PasswordHash = hash

	if err := s.accounts.Create(ctx, a); err != nil {
		return nil, err
	}
	return redacted(a), nil
}

func (s *accountService) List(ctx context.Context) ([]*domain.Account, error) {
	return s.accounts.List(ctx)
}

func (s *accountService) Find(ctx context.Context, f repository.AccountFilter) (*domain.Account, error) {
	a, err := s.accounts.Get(ctx, f)
	if err != nil {
		return nil, err
	}
	return redacted(a), nil
}

func (s *accountService) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	return s.Find(ctx, repository.AccountFilter{ID: id})
}

func (s *accountService) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return s.Find(ctx, repository.AccountFilter{Email: email})
}

func (s *accountService) Update(ctx context.Context, f repository.AccountFilter, changes contract.AccountChanges) (*domain.Account, error) {
	var hash string
	if changes.Password != nil {
		h, err := s.hash(*changes.Password)
		if err != nil {
			return nil, err
		}
		hash = h
	}

	var out *domain.Account
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txAccounts := repository.NewSQLiteAccountRepo(tx)

		a, err := txAccounts.Get(ctx, f)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if changes.Email != nil {
			a.Email = domain.NormalizeEmail(*changes.Email)
		}
		if changes.Name != nil {
			a.Name = strings.TrimSpace(*changes.Name)
		}
		if changes.Role != nil {
			a.Role = normalizeRole(string(*changes.Role))
		}
		if changes.IsActive != nil {
			a.IsActive = *changes.IsActive
		}
		a.UpdatedAt = now
		if err := a.Validate(); err != nil {
			return err
		}
		if err := txAccounts.Update(ctx, a); err != nil {
			return err
		}
		if hash != "" {
			if err := txAccounts.UpdatePassword(ctx, a.ID, hash, now); err != nil {
				return err
			}
		}
		out = redacted(a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *accountService) UpdateByID(ctx context.Context, id string, changes contract.AccountChanges) (*domain.Account, error) {
	return s.Update(ctx, repository.AccountFilter{ID: id}, changes)
}

func (s *accountService) Delete(ctx context.Context, f repository.AccountFilter) (*domain.Account, error) {
	var out *domain.Account
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txAccounts := repository.NewSQLiteAccountRepo(tx)

		a, err := txAccounts.Get(ctx, f)
		if err != nil {
			return err
		}
		if err := txAccounts.Delete(ctx, a.ID); err != nil {
			return err
		}
		out = redacted(a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *accountService) DeleteByID(ctx context.Context, id string) (*domain.Account, error) {
	return s.Delete(ctx, repository.AccountFilter{ID: id})
}

func (s *accountService) ChangePassword(ctx context.Context, f repository.AccountFilter, newPassword string) error {
	hash, err := s.hash(newPassword)
	if err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txAccounts := repository.NewSQLiteAccountRepo(tx)

		a, err := txAccounts.Get(ctx, f)
		if err != nil {
			return err
		}
		return txAccounts.UpdatePassword(ctx, a.ID, hash, time.Now().UTC())
	})
}

func (s *accountService) hash(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", &domain.ValidationError{Field: "password", Message: "password is required"}
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.settings.HashCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(h), nil
}

func normalizeRole(r string) domain.Role {
	return domain.Role(strings.ToLower(strings.TrimSpace(r)))
}

// redacted drops the hash before an account leaves the service.
func redacted(a *domain.Account) *domain.Account {
	cp := *a
	cp.PasswordHash = ""
	return &cp
}
