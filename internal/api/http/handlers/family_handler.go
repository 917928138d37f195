package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/family-service/internal/api/dto"
	"github.com/spec-kit/family-service/internal/domain"
	"github.com/spec-kit/family-service/internal/service"
	"github.com/spec-kit/family-service/internal/validation"
)

// FamilyHandler exposes family member CRUD with the {success, data|error}
// envelope.
type FamilyHandler struct {
	family   *service.FamilyService
	validate *validation.Validator
	logger   *zap.Logger
}

// NewFamilyHandler constructs the handler.
func NewFamilyHandler(familyService *service.FamilyService, validate *validation.Validator, logger *zap.Logger) *FamilyHandler {
	return &FamilyHandler{family: familyService, validate: validate, logger: logger}
}

// List handles GET /api/v1/family with page/limit query parameters.
func (h *FamilyHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	members, pageInfo, err := h.family.List(c.UserContext(), page, limit)
	if err != nil {
		return h.serverError(c, err, "Server error while fetching family members")
	}

	data := make([]dto.FamilyMemberResponse, 0, len(members))
	for i := range members {
		data = append(data, dto.NewFamilyMemberResponse(&members[i]))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(data),
		"pagination": dto.Pagination{
			Page:  pageInfo.Page,
			Pages: pageInfo.Pages,
			Total: pageInfo.Total,
		},
		"data": data,
	})
}

// Get handles GET /api/v1/family/:id.
func (h *FamilyHandler) Get(c *fiber.Ctx) error {
	member, err := h.family.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidID):
			return h.invalidID(c)
		case errors.Is(err, domain.ErrNotFound):
			return h.notFound(c)
		}
		return h.serverError(c, err, "Server error while fetching family member")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewFamilyMemberResponse(member),
	})
}

// Create handles POST /api/v1/family.
func (h *FamilyHandler) Create(c *fiber.Ctx) error {
	var req dto.FamilyMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return h.validationFailed(c, []string{"Request body is not valid"})
	}

	date, msgs := req.Validate(h.validate)
	if len(msgs) > 0 {
		return h.validationFailed(c, msgs)
	}

	member := &domain.FamilyMember{
		Username:   req.Username,
		FatherName: req.FatherName,
		MotherName: req.MotherName,
		FamilyName: req.FamilyName,
		Date:       date,
	}
	if err := h.family.Create(c.UserContext(), member); err != nil {
		return h.serverError(c, err, "Server error while creating family member")
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    dto.NewFamilyMemberResponse(member),
	})
}

// Update handles PUT /api/v1/family/:id.
func (h *FamilyHandler) Update(c *fiber.Ctx) error {
	var req dto.FamilyMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return h.validationFailed(c, []string{"Request body is not valid"})
	}

	date, msgs := req.Validate(h.validate)
	if len(msgs) > 0 {
		return h.validationFailed(c, msgs)
	}

	member := &domain.FamilyMember{
		ID:         c.Params("id"),
		Username:   req.Username,
		FatherName: req.FatherName,
		MotherName: req.MotherName,
		FamilyName: req.FamilyName,
		Date:       date,
	}
	if err := h.family.Update(c.UserContext(), member); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidID):
			return h.invalidID(c)
		case errors.Is(err, domain.ErrNotFound):
			return h.notFound(c)
		}
		return h.serverError(c, err, "Server error while updating family member")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewFamilyMemberResponse(member),
	})
}

// Delete handles DELETE /api/v1/family/:id.
func (h *FamilyHandler) Delete(c *fiber.Ctx) error {
	if err := h.family.Delete(c.UserContext(), c.Params("id")); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidID):
			return h.invalidID(c)
		case errors.Is(err, domain.ErrNotFound):
			return h.notFound(c)
		}
		return h.serverError(c, err, "Server error while deleting family member")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Family member deleted successfully",
	})
}

func (h *FamilyHandler) validationFailed(c *fiber.Ctx, msgs []string) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{
		"success":  false,
		"error":    "Validation failed",
		"messages": msgs,
	})
}

func (h *FamilyHandler) invalidID(c *fiber.Ctx) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   "Invalid family member ID format",
	})
}

func (h *FamilyHandler) notFound(c *fiber.Ctx) error {
	return c.Status(http.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"error":   "Family member not found",
	})
}

func (h *FamilyHandler) serverError(c *fiber.Ctx, err error, msg string) error {
	h.logger.Error("family request failed", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}
