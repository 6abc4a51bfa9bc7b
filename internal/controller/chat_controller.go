package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"crop-advisor-be/internal/dto"
	"crop-advisor-be/internal/pkg/serverutils"
	"crop-advisor-be/internal/service"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IAdvisoryService
}

func NewChatController(advisory service.IAdvisoryService) IChatController {
	return &chatController{service: advisory}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat", serverutils.JwtMiddleware)
	h.Post("/", c.SendChat)
	h.Get("/history", c.History)
}

func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": err.Error(),
		})
	}

	res, err := c.service.SendChat(ctx.Context(), serverutils.UserID(ctx), &req)
	if err != nil {
		return c.sessionError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Reply generated",
		"data":    res,
	})
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	res, err := c.service.History(serverutils.UserID(ctx))
	if err != nil {
		return c.sessionError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Chat history",
		"data":    res,
	})
}

func (c *chatController) sessionError(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if errors.Is(err, service.ErrNoActiveSession) {
		code = fiber.StatusConflict
	}
	return ctx.Status(code).JSON(fiber.Map{
		"success": false,
		"code":    code,
		"message": err.Error(),
	})
}
