package controller

import (
	"github.com/gofiber/fiber/v2"

	"one-editor-be/internal/dto"
	"one-editor-be/internal/pkg/serverutils"
	"one-editor-be/internal/service"
)

type ISettingsController interface {
	RegisterRoutes(r fiber.Router)
	Preferences(ctx *fiber.Ctx) error
	SetDarkMode(ctx *fiber.Ctx) error
	SetFontColor(ctx *fiber.Ctx) error
	FontSize(ctx *fiber.Ctx) error
	IncreaseFontSize(ctx *fiber.Ctx) error
	DecreaseFontSize(ctx *fiber.Ctx) error
	AppSettings(ctx *fiber.Ctx) error
	SaveAppSettings(ctx *fiber.Ctx) error
	Shortcuts(ctx *fiber.Ctx) error
	SaveShortcut(ctx *fiber.Ctx) error
	DeleteShortcut(ctx *fiber.Ctx) error
}

type settingsController struct {
	settingsService service.ISettingsService
}

func NewSettingsController(settingsService service.ISettingsService) ISettingsController {
	return &settingsController{
		settingsService: settingsService,
	}
}

func (c *settingsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/settings/v1")
	h.Use(serverutils.DeviceMiddleware)
	h.Get("preferences", c.Preferences)
	h.Put("preferences/dark-mode", c.SetDarkMode)
	h.Put("preferences/font-color", c.SetFontColor)
	h.Get("font-size", c.FontSize)
	h.Post("font-size/increase", c.IncreaseFontSize)
	h.Post("font-size/decrease", c.DecreaseFontSize)
	h.Get("app", c.AppSettings)
	h.Put("app", c.SaveAppSettings)
	h.Get("shortcuts", c.Shortcuts)
	h.Put("shortcuts", c.SaveShortcut)
	h.Delete("shortcuts/:key", c.DeleteShortcut)
}

func deviceIdOf(ctx *fiber.Ctx) string {
	deviceId, _ := ctx.Locals("device_id").(string)
	return deviceId
}

func (c *settingsController) Preferences(ctx *fiber.Ctx) error {
	res, err := c.settingsService.Preferences(ctx.Context(), deviceIdOf(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success preferences", res))
}

func (c *settingsController) SetDarkMode(ctx *fiber.Ctx) error {
	var req dto.SetDarkModeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.settingsService.SetDarkMode(ctx.Context(), deviceIdOf(ctx), req.Enabled); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success set dark mode", nil))
}

func (c *settingsController) SetFontColor(ctx *fiber.Ctx) error {
	var req dto.SetFontColorRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.settingsService.SetFontColor(ctx.Context(), deviceIdOf(ctx), req.Color); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success set font color", nil))
}

func (c *settingsController) FontSize(ctx *fiber.Ctx) error {
	res, err := c.settingsService.FontSize(ctx.Context(), deviceIdOf(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success font size", res))
}

func (c *settingsController) IncreaseFontSize(ctx *fiber.Ctx) error {
	res, err := c.settingsService.StepFontSize(ctx.Context(), deviceIdOf(ctx), true)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success increase font size", res))
}

func (c *settingsController) DecreaseFontSize(ctx *fiber.Ctx) error {
	res, err := c.settingsService.StepFontSize(ctx.Context(), deviceIdOf(ctx), false)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success decrease font size", res))
}

func (c *settingsController) AppSettings(ctx *fiber.Ctx) error {
	res, err := c.settingsService.AppSettings(ctx.Context(), deviceIdOf(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success app settings", res))
}

func (c *settingsController) SaveAppSettings(ctx *fiber.Ctx) error {
	var req dto.AppSettingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.settingsService.SaveAppSettings(ctx.Context(), deviceIdOf(ctx), req.Settings); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success save app settings", nil))
}

func (c *settingsController) Shortcuts(ctx *fiber.Ctx) error {
	res, err := c.settingsService.Shortcuts(ctx.Context(), deviceIdOf(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list shortcuts", res))
}

func (c *settingsController) SaveShortcut(ctx *fiber.Ctx) error {
	var req dto.SaveShortcutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.settingsService.SaveShortcut(ctx.Context(), deviceIdOf(ctx), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success save shortcut", nil))
}

func (c *settingsController) DeleteShortcut(ctx *fiber.Ctx) error {
	key := ctx.Params("key")
	if err := c.settingsService.DeleteShortcut(ctx.Context(), deviceIdOf(ctx), key); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete shortcut", nil))
}
