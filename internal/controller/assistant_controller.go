package controller

import (
	"errors"

	"cafe-assistant-be/internal/dto"
	"cafe-assistant-be/internal/pkg/serverutils"
	"cafe-assistant-be/internal/service"
	"cafe-assistant-be/pkg/recommend"

	"github.com/gofiber/fiber/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	ContextRecommendation(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
}

func NewAssistantController(assistantService service.IAssistantService) IAssistantController {
	return &assistantController{
		assistantService: assistantService,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Post("chat", c.Chat)
	h.Post("recommendations/context", c.ContextRecommendation)
}

func (c *assistantController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return &serverutils.ValidationError{Message: "invalid request body"}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assistantService.Chat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *assistantController) ContextRecommendation(ctx *fiber.Ctx) error {
	var req dto.ContextRecommendationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return &serverutils.ValidationError{Message: "invalid request body"}
	}

	res, err := c.assistantService.ContextRecommendation(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, recommend.ErrNoQualifyingItems) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "no qualifying items for this context",
			})
		}
		return err
	}

	return ctx.JSON(res)
}
