package services

import (
	"context"

	"ccaportal/configs/configslog"
	"ccaportal/models"
	"ccaportal/pkg/apperrors"
	"ccaportal/repositories"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// IAccountService manages society and CCA staff accounts. Only the pieces
// the approval engine depends on are implemented: account creation (CCA
// gated) and lookups for the access gate and notification routing.
type IAccountService interface {
	CreateSociety(ctx context.Context, society models.Society, password string) (*models.Society, error)
	CreateCCAAccount(ctx context.Context, account models.CCAAccount, password string, permissions models.CCAPermissions) (*models.CCAAccount, error)
	GetSociety(ctx context.Context, id uint) (*models.Society, error)
	GetCCAAccount(ctx context.Context, id uint) (*models.CCAAccount, error)
}

// AccountService implements IAccountService.
type AccountService struct {
	societies repositories.ISocietyRepository
	ccas      repositories.ICCARepository
}

func NewAccountService() IAccountService {
	return &AccountService{
		societies: repositories.NewSocietyRepository(),
		ccas:      repositories.NewCCARepository(),
	}
}

func (s *AccountService) CreateSociety(ctx context.Context, society models.Society, password string) (*models.Society, error) {
	if society.Email == "" || society.NameInitials == "" {
		return nil, apperrors.NewValidation("society email and initials are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewValidation("password could not be processed")
	}
	society.PasswordHash = string(hash)
	society.Active = true
	if err := s.societies.Create(ctx, &society); err != nil {
		configslog.SLog.Errorf("society account creation failed: %v", err)
		return nil, err
	}
	configslog.SLog.Infof("society account %d created (%s)", society.ID, society.NameInitials)
	return &society, nil
}

func (s *AccountService) CreateCCAAccount(ctx context.Context, account models.CCAAccount, password string, permissions models.CCAPermissions) (*models.CCAAccount, error) {
	if account.Email == "" {
		return nil, apperrors.NewValidation("account email is required")
	}
	if account.Role != models.CCARoleAdmin {
		account.Role = models.CCARoleMember
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewValidation("password could not be processed")
	}
	account.PasswordHash = string(hash)
	account.Permissions = datatypes.NewJSONType(permissions)
	account.Active = true
	if err := s.ccas.Create(ctx, &account); err != nil {
		configslog.SLog.Errorf("CCA account creation failed: %v", err)
		return nil, err
	}
	configslog.SLog.Infof("CCA account %d created (%s)", account.ID, account.Email)
	return &account, nil
}

func (s *AccountService) GetSociety(ctx context.Context, id uint) (*models.Society, error) {
	society, err := s.societies.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewForbidden("account not found")
	}
	return society, nil
}

func (s *AccountService) GetCCAAccount(ctx context.Context, id uint) (*models.CCAAccount, error) {
	account, err := s.ccas.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewForbidden("account not found")
	}
	return account, nil
}

var _ IAccountService = (*AccountService)(nil)
