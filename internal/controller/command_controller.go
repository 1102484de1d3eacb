package controller

import (
	"github.com/gofiber/fiber/v2"

	"one-editor-be/internal/dto"
	"one-editor-be/internal/pkg/serverutils"
	"one-editor-be/internal/service"
)

type ICommandController interface {
	RegisterRoutes(r fiber.Router)
	Dispatch(ctx *fiber.Ctx) error
}

type commandController struct {
	commandService service.ICommandService
}

func NewCommandController(commandService service.ICommandService) ICommandController {
	return &commandController{
		commandService: commandService,
	}
}

func (c *commandController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/commands/v1")
	h.Use(serverutils.DeviceMiddleware)
	h.Post("dispatch", c.Dispatch)
}

func (c *commandController) Dispatch(ctx *fiber.Ctx) error {
	var req dto.ChordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.commandService.Dispatch(ctx.Context(), deviceIdOf(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success dispatch chord", res))
}
