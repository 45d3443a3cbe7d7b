package handlers

import (
	"ccaportal/middlewares"
	"ccaportal/models"
	"ccaportal/pkg/apperrors"
	"ccaportal/pkg/queryparams"
	"ccaportal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// FormHandler exposes the form-authoring operations.
type FormHandler struct {
	service  services.IFormService
	validate *validator.Validate
}

func NewFormHandler(service services.IFormService) *FormHandler {
	return &FormHandler{service: service, validate: validator.New()}
}

type createFormRequest struct {
	Title          string                 `json:"title" validate:"required"`
	IsPublic       bool                   `json:"isPublic"`
	Sections       []models.Section       `json:"sections"`
	Components     []models.Component     `json:"components"`
	Items          []models.Item          `json:"items"`
	ChecklistItems []models.ChecklistItem `json:"checklistItems"`
}

func (r createFormRequest) toModel() models.Form {
	return models.Form{
		Title:          r.Title,
		IsPublic:       r.IsPublic,
		Sections:       r.Sections,
		Components:     r.Components,
		Items:          r.Items,
		ChecklistItems: r.ChecklistItems,
	}
}

// Create stores a new validated template.
func (h *FormHandler) Create(c *fiber.Ctx) error {
	actor, ok := middlewares.ActorFromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req createFormRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("malformed request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidation("form title is required")
	}

	form, err := h.service.CreateForm(c.UserContext(), actor.ID, req.toModel())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{
		"message": "Form Successfully Created!",
		"formId":  form.ID,
	})
}

type editFormRequest struct {
	FormID uint `json:"formId" validate:"required"`
	createFormRequest
}

// Edit replaces a stored template.
func (h *FormHandler) Edit(c *fiber.Ctx) error {
	var req editFormRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("malformed request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidation("formId and title are required")
	}

	form, err := h.service.EditForm(c.UserContext(), req.FormID, req.toModel())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{
		"message": "Form Successfully Edited!",
		"formId":  form.ID,
	})
}

type formIDRequest struct {
	FormID uint `json:"formId" validate:"required"`
}

// Delete removes a template.
func (h *FormHandler) Delete(c *fiber.Ctx) error {
	var req formIDRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("malformed request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidation("formId is required")
	}
	if err := h.service.DeleteForm(c.UserContext(), req.FormID); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{"message": "Form Successfully Deleted!"})
}

// Fetch returns one template.
func (h *FormHandler) Fetch(c *fiber.Ctx) error {
	var req formIDRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("malformed request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidation("formId is required")
	}
	form, err := h.service.FetchForm(c.UserContext(), req.FormID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{"form": form})
}

// FetchList returns a paginated template listing.
func (h *FormHandler) FetchList(c *fiber.Ctx) error {
	params := queryparams.DefaultListParams("created_at")
	if err := c.QueryParser(&params); err == nil {
		params.Validate()
	}
	result, err := h.service.FetchFormList(c.UserContext(), params)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{
		"forms": result.Data,
		"meta":  result.Meta,
	})
}

type changeFormStatusRequest struct {
	FormID   uint `json:"formId" validate:"required"`
	IsPublic bool `json:"isPublic"`
}

// ChangeStatus toggles template visibility.
func (h *FormHandler) ChangeStatus(c *fiber.Ctx) error {
	var req changeFormStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("malformed request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidation("formId is required")
	}
	if err := h.service.ChangeFormStatus(c.UserContext(), req.FormID, req.IsPublic); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{"message": "Form Status Successfully Changed!"})
}

// FetchChecklist returns the template's checklist in section order.
func (h *FormHandler) FetchChecklist(c *fiber.Ctx) error {
	var req formIDRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("malformed request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidation("formId is required")
	}
	checklist, err := h.service.FetchChecklist(c.UserContext(), req.FormID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{"checklist": checklist})
}
