package controller

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"one-editor-be/internal/pkg/serverutils"
	"one-editor-be/internal/service"
)

type IExportController interface {
	RegisterRoutes(r fiber.Router)
	DownloadNote(ctx *fiber.Ctx) error
	ExportAccount(ctx *fiber.Ctx) error
}

type exportController struct {
	exportService service.IExportService
}

func NewExportController(exportService service.IExportService) IExportController {
	return &exportController{
		exportService: exportService,
	}
}

func (c *exportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/export/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("notes/:name", c.DownloadNote)
	h.Get("account", serverutils.DeviceMiddleware, c.ExportAccount)
}

func (c *exportController) DownloadNote(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	// Note names carry spaces and colons, so the stripped route param
	// needs unescaping before lookup.
	name, err := url.PathUnescape(ctx.Params("name"))
	if err != nil || name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing note name")
	}

	filename, body, err := c.exportService.DownloadNote(ctx.Context(), userId, name)
	if err != nil {
		return mapWorkspaceError(err)
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return ctx.Send(body)
}

func (c *exportController) ExportAccount(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	filename, export, err := c.exportService.ExportAccount(ctx.Context(), userId, deviceIdOf(ctx))
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return ctx.JSON(export)
}
