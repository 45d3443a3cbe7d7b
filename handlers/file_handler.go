package handlers

import (
	"ccaportal/middlewares"
	"ccaportal/pkg/apperrors"
	"ccaportal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// FileHandler registers uploaded-file metadata and issues upload tokens.
type FileHandler struct {
	service  services.IFileService
	validate *validator.Validate
}

func NewFileHandler(service services.IFileService) *FileHandler {
	return &FileHandler{service: service, validate: validator.New()}
}

type uploadRequest struct {
	FileName string `json:"fileName" validate:"required"`
}

// Upload registers the file's metadata and returns the token the uploader
// places into the matching file item on submit.
func (h *FileHandler) Upload(c *fiber.Ctx) error {
	actor, ok := middlewares.ActorFromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req uploadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("malformed request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidation("fileName is required")
	}

	upload, err := h.service.RegisterUpload(c.UserContext(), actor.ID, req.FileName)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{
		"message": "File Successfully Registered!",
		"token":   upload.Token,
		"name":    upload.Name,
	})
}

type fetchFileRequest struct {
	FileID uint `json:"fileId" validate:"required"`
}

// Fetch returns an uploaded file's record.
func (h *FileHandler) Fetch(c *fiber.Ctx) error {
	var req fetchFileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("malformed request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidation("fileId is required")
	}
	file, err := h.service.FetchFile(c.UserContext(), req.FileID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{"file": file})
}
