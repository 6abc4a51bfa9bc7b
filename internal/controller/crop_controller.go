package controller

import (
	"github.com/gofiber/fiber/v2"

	"crop-advisor-be/internal/dto"
	"crop-advisor-be/internal/pkg/serverutils"
	"crop-advisor-be/internal/service"
)

type ICropController interface {
	RegisterRoutes(r fiber.Router)
	Recommend(ctx *fiber.Ctx) error
}

type cropController struct {
	service service.IAdvisoryService
}

func NewCropController(advisory service.IAdvisoryService) ICropController {
	return &cropController{service: advisory}
}

func (c *cropController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/crop", serverutils.JwtMiddleware)
	h.Post("/recommend", c.Recommend)
}

func (c *cropController) Recommend(ctx *fiber.Ctx) error {
	var req dto.RecommendRequest
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
	if !req.Features().Valid() {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": "all measurements must be finite numbers",
		})
	}

	res, err := c.service.Recommend(ctx.Context(), serverutils.UserID(ctx), &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    500,
			"message": err.Error(),
		})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Recommendation complete",
		"data":    res,
	})
}
