package controller

import (
	"career-discovery-be/internal/dto"
	"career-discovery-be/internal/pkg/serverutils"
	"career-discovery-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IReportController interface {
	RegisterRoutes(r fiber.Router)
	CreateShareLink(ctx *fiber.Ctx) error
	EmailShareLink(ctx *fiber.Ctx) error
	ShowShared(ctx *fiber.Ctx) error
}

type reportController struct {
	reportService service.IReportService
}

func NewReportController(reportService service.IReportService) IReportController {
	return &reportController{
		reportService: reportService,
	}
}

func (c *reportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/report/v1")
	// Share-link resolution is public: the link IS the credential.
	h.Get("shared/:shareId", c.ShowShared)

	protected := h.Group("")
	protected.Use(serverutils.JwtMiddleware)
	protected.Post(":sessionId/share", c.CreateShareLink)
	protected.Post(":sessionId/share/email", c.EmailShareLink)
}

func (c *reportController) CreateShareLink(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	sessionIdParam := ctx.Params("sessionId")
	sessionId, _ := uuid.Parse(sessionIdParam)

	res, err := c.reportService.CreateShareLink(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create share link", res))
}

func (c *reportController) EmailShareLink(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	sessionIdParam := ctx.Params("sessionId")
	sessionId, _ := uuid.Parse(sessionIdParam)

	var req dto.EmailShareRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.reportService.EmailShareLink(ctx.Context(), userId, sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success email share link", res))
}

func (c *reportController) ShowShared(ctx *fiber.Ctx) error {
	shareIdParam := ctx.Params("shareId")
	shareId, _ := uuid.Parse(shareIdParam)

	res, err := c.reportService.GetByShareId(ctx.Context(), shareId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show shared report", res))
}
