package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"agrimarket/models"
	"agrimarket/prediction"

	"github.com/gofiber/fiber/v2"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// InsightGenerator turns a prompt into a written analysis.
type InsightGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GeminiClient generates insights with the Gemini API.
type GeminiClient struct {
	apiKey string
	model  string
}

func NewGeminiClient(apiKey, model string) *GeminiClient {
	return &GeminiClient{apiKey: apiKey, model: model}
}

func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create AI client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate analysis: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("empty response from AI model")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

// HandleCropInsight asks the AI model to comment on the forecast of a crop.
// POST /api/v1/crops/:cropId/insight
func HandleCropInsight(c *fiber.Ctx) error {
	if Insights == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "error", "message": "AI insights are not configured"})
	}

	var req models.InsightRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request"})
		}
	}

	crop, pool, err := loadCropWithPool(c, c.Params("cropId"))
	if err != nil {
		return err
	}
	now := Engine.Now()
	rows := prediction.Rows(crop.Price, Engine.ForecastAt(now, crop, pool))

	prompt, err := insightPrompt(crop, rows, req.Question)
	if err != nil {
		log.Printf("Error building insight prompt for crop %s: %v", crop.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to prepare analysis"})
	}

	analysis, err := Insights.GenerateText(c.Context(), prompt)
	if err != nil {
		log.Printf("Error generating insight for crop %s: %v", crop.ID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"status": "error", "message": "Failed to generate analysis"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": models.InsightResponse{
		CropID:      crop.ID,
		CropName:    crop.Name,
		GeneratedAt: now,
		Forecast:    rows,
		Analysis:    analysis,
	}})
}

func insightPrompt(crop models.Crop, rows []models.ForecastRow, question string) (string, error) {
	jsonData, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("failed to serialize forecast: %w", err)
	}

	question = strings.TrimSpace(question)
	if question == "" {
		question = "Should a farmer sell now or wait, and what should a retailer expect to pay?"
	}

	return fmt.Sprintf(
		`You are a helpful market assistant for farmers and retailers. The crop "%s" is listed at %.2f per unit in %s, %s (%s). `+
			`The forecast below gives the predicted price and the percentage variation for the next months. `+
			`Answer the question in a few short sentences using only this data.

		Question: %s
		Forecast: %s`,
		crop.Name, crop.Price, crop.Taluk, crop.District, crop.State,
		question,
		string(jsonData),
	), nil
}
