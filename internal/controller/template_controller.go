package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rafasilcos/arcflowapp-sub007/internal/dto"
	"github.com/rafasilcos/arcflowapp-sub007/internal/pkg/serverutils"
	"github.com/rafasilcos/arcflowapp-sub007/internal/service"
)

type ITemplateController interface {
	RegisterRoutes(r fiber.Router)
	Resolve(ctx *fiber.Ctx) error
}

type templateController struct {
	templateService service.ITemplateService
}

func NewTemplateController(templateService service.ITemplateService) ITemplateController {
	return &templateController{
		templateService: templateService,
	}
}

func (c *templateController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/templates/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.Resolve)
}

// Resolve answers "which structure would this classification render": the
// catalog entry for the triple, or its fallback when no exact entry exists.
func (c *templateController) Resolve(ctx *fiber.Ctx) error {
	req := dto.ResolveTemplateRequest{
		Disciplina: ctx.Query("disciplina"),
		Area:       ctx.Query("area"),
		Tipologia:  ctx.Query("tipologia"),
	}

	res, err := c.templateService.Resolve(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Template resolvido", res))
}
