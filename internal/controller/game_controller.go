package controller

import (
	"github.com/gofiber/fiber/v2"

	"one-editor-be/internal/dto"
	"one-editor-be/internal/pkg/serverutils"
	"one-editor-be/internal/service"
)

type IGameController interface {
	RegisterRoutes(r fiber.Router)
	HighScore(ctx *fiber.Ctx) error
	SubmitScore(ctx *fiber.Ctx) error
}

type gameController struct {
	gameService service.IGameService
}

func NewGameController(gameService service.IGameService) IGameController {
	return &gameController{
		gameService: gameService,
	}
}

func (c *gameController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/game/v1")
	h.Use(serverutils.DeviceMiddleware)
	h.Get("high-score", c.HighScore)
	h.Post("score", c.SubmitScore)
}

func (c *gameController) HighScore(ctx *fiber.Ctx) error {
	res, err := c.gameService.HighScore(ctx.Context(), deviceIdOf(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success high score", res))
}

func (c *gameController) SubmitScore(ctx *fiber.Ctx) error {
	var req dto.SubmitScoreRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.gameService.SubmitScore(ctx.Context(), deviceIdOf(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success submit score", res))
}
