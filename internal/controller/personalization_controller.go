package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/rafasilcos/arcflowapp-sub007/internal/dto"
	"github.com/rafasilcos/arcflowapp-sub007/internal/pkg/serverutils"
	"github.com/rafasilcos/arcflowapp-sub007/internal/service"
)

type IPersonalizationController interface {
	RegisterRoutes(r fiber.Router)
	Commit(ctx *fiber.Ctx) error
	ApplyOperations(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
}

type personalizationController struct {
	personalizationService service.IPersonalizationService
}

func NewPersonalizationController(personalizationService service.IPersonalizationService) IPersonalizationController {
	return &personalizationController{
		personalizationService: personalizationService,
	}
}

func (c *personalizationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/briefings/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Put(":id/estrutura", c.Commit)
	h.Patch(":id/estrutura", c.ApplyOperations)
	h.Delete(":id/estrutura", c.Clear)
}

func (c *personalizationController) Commit(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid briefing id")
	}

	var req dto.CommitOverlayRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.personalizationService.Commit(ctx.Context(), &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Briefing not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Estrutura personalizada salva", res))
}

func (c *personalizationController) ApplyOperations(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid briefing id")
	}

	var req dto.ApplyOperationsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.personalizationService.ApplyOperations(ctx.Context(), &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Briefing not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Estrutura atualizada", res))
}

func (c *personalizationController) Clear(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid briefing id")
	}

	res, err := c.personalizationService.Clear(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Briefing not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Personalização removida", res))
}
