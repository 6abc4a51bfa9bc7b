package controller

import (
	"github.com/gofiber/fiber/v2"

	"crop-advisor-be/internal/dto"
	"crop-advisor-be/internal/pkg/serverutils"
	"crop-advisor-be/internal/service"
)

type IForumController interface {
	RegisterRoutes(r fiber.Router)
	CreatePost(ctx *fiber.Ctx) error
	GetPosts(ctx *fiber.Ctx) error
}

type forumController struct {
	service  service.IForumService
	pageSize int
}

func NewForumController(forumService service.IForumService, pageSize int) IForumController {
	return &forumController{
		service:  forumService,
		pageSize: pageSize,
	}
}

func (c *forumController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/forum", serverutils.JwtMiddleware)
	h.Post("/posts", c.CreatePost)
	h.Get("/posts", c.GetPosts)
}

func (c *forumController) CreatePost(ctx *fiber.Ctx) error {
	var req dto.CreatePostRequest
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

	if !c.service.AddPost(req.Name, req.Topic, req.Message) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": "Failed to add post. Check that name (2+), topic (5+) and message (10+ characters) are long enough.",
		})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Your post has been added",
		"data":    nil,
	})
}

func (c *forumController) GetPosts(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", c.pageSize)
	if limit <= 0 {
		limit = c.pageSize
	}

	posts := c.service.GetPosts(limit)
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Recent discussions",
		"data":    posts,
	})
}
