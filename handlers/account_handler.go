package handlers

import (
	"ccaportal/models"
	"ccaportal/pkg/apperrors"
	"ccaportal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AccountHandler exposes the account-creation operations consumed by CCA
// staff.
type AccountHandler struct {
	service  services.IAccountService
	validate *validator.Validate
}

func NewAccountHandler(service services.IAccountService) *AccountHandler {
	return &AccountHandler{service: service, validate: validator.New()}
}

type createSocietyRequest struct {
	Name           string `json:"name" validate:"required"`
	NameInitials   string `json:"nameInitials" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	PresidentEmail string `json:"presidentEmail" validate:"required,email"`
	PatronEmail    string `json:"patronEmail" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
}

// CreateSociety registers a society account.
func (h *AccountHandler) CreateSociety(c *fiber.Ctx) error {
	var req createSocietyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("malformed request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidation("society details are incomplete or invalid")
	}

	society, err := h.service.CreateSociety(c.UserContext(), models.Society{
		Name:           req.Name,
		NameInitials:   req.NameInitials,
		Email:          req.Email,
		PresidentEmail: req.PresidentEmail,
		PatronEmail:    req.PatronEmail,
	}, req.Password)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{
		"message":   "Society Account Successfully Created!",
		"societyId": society.ID,
	})
}

type createCCARequest struct {
	Name        string                `json:"name" validate:"required"`
	Email       string                `json:"email" validate:"required,email"`
	Role        string                `json:"role" validate:"omitempty,oneof=member admin"`
	Password    string                `json:"password" validate:"required,min=8"`
	Permissions models.CCAPermissions `json:"permissions"`
}

// CreateCCA registers a CCA staff account with its permission flag set.
func (h *AccountHandler) CreateCCA(c *fiber.Ctx) error {
	var req createCCARequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("malformed request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidation("account details are incomplete or invalid")
	}

	account, err := h.service.CreateCCAAccount(c.UserContext(), models.CCAAccount{
		Name:  req.Name,
		Email: req.Email,
		Role:  models.CCARole(req.Role),
	}, req.Password, req.Permissions)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{
		"message":   "CCA Account Successfully Created!",
		"accountId": account.ID,
	})
}
