// Package insight produces advisory business-analysis text from a summary of
// recent sales and low-stock items. It is purely read-only over the ledger
// and every failure degrades to a plain unavailable message.
package insight

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"autotrack-pos/internal/ledger"
	"autotrack-pos/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Unavailable is returned whenever the generator cannot produce a report.
const Unavailable = "Unable to generate insights at this moment."

const defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent"

type Generator struct {
	apiKey   string
	endpoint string
}

// New reads GEMINI_API_KEY from the environment. An empty key yields a
// generator that always reports unavailable instead of failing requests.
func New() *Generator {
	return &Generator{
		apiKey:   os.Getenv("GEMINI_API_KEY"),
		endpoint: defaultEndpoint,
	}
}

type saleSummary struct {
	Date  string `json:"date"`
	Total string `json:"total"`
	Items string `json:"items"`
}

type stockSummary struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// BusinessInsights summarizes the 50 most recent transactions and the
// current low-stock items and asks the model for a short report.
func (g *Generator) BusinessInsights(transactions []model.Transaction, products []model.Product) string {
	if g.apiKey == "" {
		return Unavailable
	}

	recent := transactions
	if len(recent) > 50 {
		recent = recent[:50]
	}
	sales := make([]saleSummary, 0, len(recent))
	for _, tx := range recent {
		names := make([]string, 0, len(tx.Items))
		for _, line := range tx.Items {
			names = append(names, line.Name)
		}
		sales = append(sales, saleSummary{
			Date:  tx.Timestamp.Format("2006-01-02"),
			Total: tx.TotalAmount.StringFixed(2),
			Items: strings.Join(names, ", "),
		})
	}

	var lowStock []stockSummary
	for _, p := range products {
		if p.Stock < ledger.LowStockThreshold {
			lowStock = append(lowStock, stockSummary{Name: p.Name, Stock: p.Stock})
		}
	}

	salesJSON, _ := json.Marshal(sales)
	stockJSON, _ := json.Marshal(lowStock)
	prompt := fmt.Sprintf(`You are a senior business analyst for an auto repair shop.
Here is a summary of recent sales transactions (last 50):
%s

Here is a list of low stock items:
%s

Please provide a concise business insight report (max 150 words).
1. Identify the top performing product or service category.
2. Highlight any critical stock issues.
3. Suggest a marketing action based on sales trends.`, salesJSON, stockJSON)

	return g.generate(prompt)
}

// PricingAnalysis evaluates a single product's margin.
func (g *Generator) PricingAnalysis(product model.Product) string {
	if g.apiKey == "" {
		return Unavailable
	}

	margin := "n/a"
	if product.SellingPrice.IsPositive() {
		margin = product.SellingPrice.Sub(product.BuyingPrice).
			Div(product.SellingPrice).Mul(hundred).StringFixed(2) + "%"
	}
	prompt := fmt.Sprintf(`Product: %s
Category: %s
Buying Price: $%s
Selling Price: $%s
Current Margin: %s

Briefly evaluate this pricing strategy for an auto repair shop. Is the margin healthy? (Target is usually 30-50%% for parts).
Provide a 1-sentence recommendation.`,
		product.Name, product.Category,
		product.BuyingPrice.StringFixed(2), product.SellingPrice.StringFixed(2), margin)

	return g.generate(prompt)
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (g *Generator) generate(prompt string) string {
	agent := fiber.AcquireAgent()
	defer fiber.ReleaseAgent(agent)

	req := agent.Request()
	req.Header.SetMethod(fiber.MethodPost)
	req.SetRequestURI(g.endpoint + "?key=" + g.apiKey)
	agent.JSON(generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}})

	if err := agent.Parse(); err != nil {
		log.Printf("insight: request setup failed: %v", err)
		return Unavailable
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 || code != fiber.StatusOK {
		log.Printf("insight: generate failed: status=%d errs=%v", code, errs)
		return Unavailable
	}

	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Printf("insight: bad response body: %v", err)
		return Unavailable
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return Unavailable
	}
	return resp.Candidates[0].Content.Parts[0].Text
}
