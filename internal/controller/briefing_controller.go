package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/rafasilcos/arcflowapp-sub007/internal/dto"
	"github.com/rafasilcos/arcflowapp-sub007/internal/pkg/serverutils"
	"github.com/rafasilcos/arcflowapp-sub007/internal/service"
)

type IBriefingController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	SubmitAnswer(ctx *fiber.Ctx) error
	Progress(ctx *fiber.Ctx) error
	Conclude(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type briefingController struct {
	briefingService service.IBriefingService
}

func NewBriefingController(briefingService service.IBriefingService) IBriefingController {
	return &briefingController{
		briefingService: briefingService,
	}
}

func (c *briefingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/briefings/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Post(":id/respostas", c.SubmitAnswer)
	h.Get(":id/progresso", c.Progress)
	h.Post(":id/concluir", c.Conclude)
	h.Delete(":id", c.Delete)
}

func (c *briefingController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateBriefingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.briefingService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Briefing criado", res))
}

func (c *briefingController) List(ctx *fiber.Ctx) error {
	var req dto.ListBriefingsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}
	if req.ClienteId != "" {
		if _, err := uuid.Parse(req.ClienteId); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid cliente_id")
		}
	}
	if req.ProjetoId != "" {
		if _, err := uuid.Parse(req.ProjetoId); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid projeto_id")
		}
	}

	res, err := c.briefingService.List(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Briefings listados", res))
}

func (c *briefingController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid briefing id")
	}

	res, err := c.briefingService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Briefing not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Briefing carregado", res))
}

func (c *briefingController) SubmitAnswer(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid briefing id")
	}

	var req dto.SubmitAnswerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.briefingService.SubmitAnswer(ctx.Context(), &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Briefing not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Resposta registrada", res))
}

func (c *briefingController) Progress(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid briefing id")
	}

	res, err := c.briefingService.Progress(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Briefing not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Progresso calculado", res))
}

func (c *briefingController) Conclude(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid briefing id")
	}

	res, err := c.briefingService.Conclude(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Briefing not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Briefing concluído", res))
}

func (c *briefingController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid briefing id")
	}

	if err := c.briefingService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Briefing removido", nil))
}
