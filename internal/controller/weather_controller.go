package controller

import (
	"github.com/gofiber/fiber/v2"

	"crop-advisor-be/internal/pkg/serverutils"
	"crop-advisor-be/internal/service"
)

type IWeatherController interface {
	RegisterRoutes(r fiber.Router)
	Current(ctx *fiber.Ctx) error
	Forecast(ctx *fiber.Ctx) error
}

type weatherController struct {
	service service.IWeatherService
}

func NewWeatherController(weatherService service.IWeatherService) IWeatherController {
	return &weatherController{service: weatherService}
}

func (c *weatherController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/weather", serverutils.JwtMiddleware)
	h.Get("/current", c.Current)
	h.Get("/forecast", c.Forecast)
}

func (c *weatherController) Current(ctx *fiber.Ctx) error {
	city := ctx.Query("city", "")
	if city == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": "city parameter is required",
		})
	}

	res, err := c.service.GetCurrent(ctx.Context(), city)
	if err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"code":    502,
			"message": err.Error(),
		})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Current weather",
		"data":    res,
	})
}

func (c *weatherController) Forecast(ctx *fiber.Ctx) error {
	city := ctx.Query("city", "")
	if city == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": "city parameter is required",
		})
	}

	res, err := c.service.GetForecast(ctx.Context(), city)
	if err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"code":    502,
			"message": err.Error(),
		})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Forecast",
		"data":    res,
	})
}
