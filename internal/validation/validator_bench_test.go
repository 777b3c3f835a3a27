package validation

import (
	"testing"

	"github.com/content-platform-api/internal/models"
)

// BenchmarkValidation benchmarks article validation performance
func BenchmarkValidation(b *testing.B) {
	validator := NewValidator()
	article := &models.Article{
		Title:    "Benchmark article",
		Content:  "body",
		IsPublic: "1",
		IsTop:    "0",
		State:    "1",
		URL:      "https://example.com/a",
		Type:     "1",
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if err := validator.ValidateArticle(article); err != nil {
			b.Fatal(err)
		}
	}
}
