package handlers

import (
	"time"

	"ccaportal/middlewares"
	"ccaportal/models"
	"ccaportal/pkg/apperrors"
	"ccaportal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// SubmissionHandler exposes the submission lifecycle operations.
type SubmissionHandler struct {
	service  services.ISubmissionService
	validate *validator.Validate
}

func NewSubmissionHandler(service services.ISubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service, validate: validator.New()}
}

type submitFormRequest struct {
	FormID       uint              `json:"formId" validate:"required"`
	SubmissionID uint              `json:"submissionId"`
	ItemsData    []models.ItemData `json:"itemsData" validate:"required,min=1"`
}

// SubmitForm handles both a first submission and an Issue-round
// resubmission, distinguished by the presence of submissionId.
func (h *SubmissionHandler) SubmitForm(c *fiber.Ctx) error {
	actor, ok := middlewares.ActorFromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req submitFormRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("malformed request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidation("formId and a non-empty itemsData are required")
	}

	result, err := h.service.SubmitForm(c.UserContext(), actor, req.FormID, req.SubmissionID, req.ItemsData)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{
		"message":           "Submission Successful!",
		"submissionId":      result.SubmissionID,
		"timestampCreated":  result.TimestampCreated,
		"timestampModified": result.TimestampModified,
	})
}

type addNoteRequest struct {
	SubmissionID uint   `json:"submissionId" validate:"required"`
	Note         string `json:"note" validate:"required"`
}

// AddCCANote appends a CCA annotation.
func (h *SubmissionHandler) AddCCANote(c *fiber.Ctx) error {
	return h.addNote(c, models.NoteCCA, "CCA Note Successfully Added!")
}

// AddSocietyNote appends a society annotation.
func (h *SubmissionHandler) AddSocietyNote(c *fiber.Ctx) error {
	return h.addNote(c, models.NoteSociety, "Society Note Successfully Added!")
}

func (h *SubmissionHandler) addNote(c *fiber.Ctx, kind models.NoteKind, message string) error {
	var req addNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("malformed request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidation("submissionId and note are required")
	}
	if err := h.service.AddNote(c.UserContext(), req.SubmissionID, kind, req.Note); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{"message": message})
}

type fetchListRequest struct {
	StatusList []models.SubmissionStatus `json:"statusList"`
	TimeObj    *struct {
		DateStart string `json:"dateStart"`
		DateEnd   string `json:"dateEnd"`
	} `json:"timeObj"`
}

// FetchList lists submissions scoped by actor role.
func (h *SubmissionHandler) FetchList(c *fiber.Ctx) error {
	actor, ok := middlewares.ActorFromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req fetchListRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidation("malformed request body")
		}
	}

	filter := services.SubmissionListFilter{StatusList: req.StatusList}
	if req.TimeObj != nil {
		start, err := parseDate(req.TimeObj.DateStart)
		if err != nil {
			return apperrors.NewValidation("invalid dateStart")
		}
		end, err := parseDate(req.TimeObj.DateEnd)
		if err != nil {
			return apperrors.NewValidation("invalid dateEnd")
		}
		filter.DateStart = &start
		filter.DateEnd = &end
	}

	submissions, err := h.service.ListSubmissions(c.UserContext(), actor, filter)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{
		"message":     "Submission List Successfully Fetched!",
		"submissions": submissions,
	})
}

type updateStatusRequest struct {
	SubmissionID uint   `json:"submissionId" validate:"required"`
	Status       string `json:"status" validate:"required"`
	Issue        string `json:"issue"`
}

// UpdateStatus applies a role-gated status transition.
func (h *SubmissionHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, ok := middlewares.ActorFromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("malformed request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidation("submissionId and status are required")
	}

	err := h.service.UpdateStatus(c.UserContext(), actor, req.SubmissionID, models.SubmissionStatus(req.Status), req.Issue)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{"message": "Status Update Successful!"})
}

type fetchSubmissionRequest struct {
	SubmissionID uint `json:"submissionId" validate:"required"`
}

// Fetch returns one submission with its answers and note history.
func (h *SubmissionHandler) Fetch(c *fiber.Ctx) error {
	var req fetchSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("malformed request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidation("submissionId is required")
	}

	detail, err := h.service.FetchSubmission(c.UserContext(), req.SubmissionID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{
		"formId":        detail.FormID,
		"status":        detail.Status,
		"itemsData":     detail.ItemsData,
		"itemFilledIds": detail.ItemFilledIDs,
		"societyNotes":  detail.SocietyNotes,
		"ccaNotes":      detail.CCANotes,
	})
}

// FetchReview resolves a reviewer's link token to its submission context.
func (h *SubmissionHandler) FetchReview(c *fiber.Ctx) error {
	actor, ok := middlewares.ActorFromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	ctx, err := h.service.FetchReviewContext(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{
		"message":      "Review Data Fetched Successfully!",
		"formId":       ctx.FormID,
		"submissionId": ctx.SubmissionID,
	})
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
