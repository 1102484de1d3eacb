package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"one-editor-be/internal/dto"
	"one-editor-be/internal/pkg/serverutils"
	"one-editor-be/internal/service"
	"one-editor-be/pkg/collection"
	"one-editor-be/pkg/confirm"
)

type IWorkspaceController interface {
	RegisterRoutes(r fiber.Router)
	Tabs(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Switch(ctx *fiber.Ctx) error
	UpdateContent(ctx *fiber.Ctx) error
	Close(ctx *fiber.Ctx) error
	ResolveConfirmation(ctx *fiber.Ctx) error
	Tombstones(ctx *fiber.Ctx) error
}

type workspaceController struct {
	workspaceService service.IWorkspaceService
}

func NewWorkspaceController(workspaceService service.IWorkspaceService) IWorkspaceController {
	return &workspaceController{
		workspaceService: workspaceService,
	}
}

func (c *workspaceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/workspace/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.DeviceMiddleware)
	h.Get("tabs", c.Tabs)
	h.Get("status", c.Status)
	h.Post("notes", c.Create)
	h.Put("notes/active", c.Switch)
	h.Put("notes/content", c.UpdateContent)
	h.Post("notes/close", c.Close)
	h.Post("confirmations", c.ResolveConfirmation)
	h.Get("tombstones", c.Tombstones)
}

// mapWorkspaceError turns domain errors into client-facing statuses
// instead of a blanket 500.
func mapWorkspaceError(err error) error {
	switch {
	case errors.Is(err, collection.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, collection.ErrDuplicate), errors.Is(err, collection.ErrLastNote):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, confirm.ErrUnknownRequest):
		return fiber.NewError(fiber.StatusGone, err.Error())
	default:
		return err
	}
}

func requestIdentity(ctx *fiber.Ctx) (uuid.UUID, string) {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	deviceId, _ := ctx.Locals("device_id").(string)
	return userId, deviceId
}

func (c *workspaceController) Tabs(ctx *fiber.Ctx) error {
	userId, _ := requestIdentity(ctx)

	res, err := c.workspaceService.Tabs(ctx.Context(), userId)
	if err != nil {
		return mapWorkspaceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list tabs", res))
}

func (c *workspaceController) Status(ctx *fiber.Ctx) error {
	userId, _ := requestIdentity(ctx)

	res, err := c.workspaceService.Status(ctx.Context(), userId)
	if err != nil {
		return mapWorkspaceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success workspace status", res))
}

func (c *workspaceController) Create(ctx *fiber.Ctx) error {
	userId, deviceId := requestIdentity(ctx)

	var req dto.CreateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.workspaceService.Create(ctx.Context(), userId, deviceId, &req)
	if err != nil {
		return mapWorkspaceError(err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create note", res))
}

func (c *workspaceController) Switch(ctx *fiber.Ctx) error {
	userId, _ := requestIdentity(ctx)

	var req dto.SwitchNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.workspaceService.Switch(ctx.Context(), userId, &req)
	if err != nil {
		return mapWorkspaceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success switch note", res))
}

func (c *workspaceController) UpdateContent(ctx *fiber.Ctx) error {
	userId, deviceId := requestIdentity(ctx)

	var req dto.UpdateContentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.workspaceService.UpdateContent(ctx.Context(), userId, deviceId, &req)
	if err != nil {
		return mapWorkspaceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update content", res))
}

func (c *workspaceController) Close(ctx *fiber.Ctx) error {
	userId, deviceId := requestIdentity(ctx)

	var req dto.CloseNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.workspaceService.Close(ctx.Context(), userId, deviceId, &req)
	if err != nil {
		return mapWorkspaceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success close note", res))
}

func (c *workspaceController) ResolveConfirmation(ctx *fiber.Ctx) error {
	userId, deviceId := requestIdentity(ctx)

	var req dto.ResolveConfirmationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.workspaceService.ResolveConfirmation(ctx.Context(), userId, deviceId, &req)
	if err != nil {
		return mapWorkspaceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success resolve confirmation", res))
}

func (c *workspaceController) Tombstones(ctx *fiber.Ctx) error {
	userId, _ := requestIdentity(ctx)

	res, err := c.workspaceService.Tombstones(ctx.Context(), userId)
	if err != nil {
		return mapWorkspaceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list tombstones", res))
}
