package insight

import (
	"testing"

	"autotrack-pos/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestMissingKeyDegradesToUnavailable(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	g := New()

	report := g.BusinessInsights(nil, nil)
	assert.Equal(t, Unavailable, report)

	analysis := g.PricingAnalysis(model.Product{Name: "Engine Oil"})
	assert.Equal(t, Unavailable, analysis)
}
