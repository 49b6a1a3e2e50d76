package utils

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/raushankrgupta/price-watcher/config"
)

const priceExtractionPrompt = `You are given the visible text of an e-commerce product page.
Find the current selling price of the main product on the page.
Reply with ONLY the number, using a dot as decimal separator, no currency
symbol, no thousands separators. If you cannot find a price, reply NONE.

Page text:
%s`

// ExtractPriceFromText asks Gemini to pull the current price out of a
// product page's visible text. Used as the last fallback when every
// selector heuristic came up empty.
func ExtractPriceFromText(ctx context.Context, pageText string) (float64, error) {
	if config.GeminiAPIKey == "" {
		return 0, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.GeminiAPIKey))
	if err != nil {
		return 0, fmt.Errorf("failed to create Gemini client: %v", err)
	}
	defer client.Close()

	// Page text can be huge; the price is almost always in the first part.
	if len(pageText) > 8000 {
		pageText = pageText[:8000]
	}

	model := client.GenerativeModel("gemini-1.5-flash")
	resp, err := model.GenerateContent(ctx, genai.Text(fmt.Sprintf(priceExtractionPrompt, pageText)))
	if err != nil {
		return 0, fmt.Errorf("failed to generate content: %v", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return 0, fmt.Errorf("no content generated")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return 0, fmt.Errorf("unexpected response part type %T", resp.Candidates[0].Content.Parts[0])
	}

	answer := strings.TrimSpace(string(text))
	if answer == "" || strings.EqualFold(answer, "NONE") {
		return 0, fmt.Errorf("model found no price")
	}

	price, err := strconv.ParseFloat(answer, 64)
	if err != nil || price <= 0 {
		return 0, fmt.Errorf("model returned unparseable price %q", answer)
	}
	return price, nil
}
