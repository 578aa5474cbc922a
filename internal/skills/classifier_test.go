package skills

import (
	"testing"

	"portfolio-service/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		language string
		want     models.SkillCategory
	}{
		{"empty input is Soft", "", models.SkillCategorySoft},
		{"python is Backend", "Python", models.SkillCategoryBackend},
		{"go is Backend", "Go", models.SkillCategoryBackend},
		{"c++ is Backend", "C++", models.SkillCategoryBackend},
		{"typescript is Frontend", "TypeScript", models.SkillCategoryFrontend},
		{"scss is Frontend", "SCSS", models.SkillCategoryFrontend},
		{"docker is Tools", "Docker", models.SkillCategoryTools},
		{"jupyter notebook is Tools", "Jupyter Notebook", models.SkillCategoryTools},
		{"unknown language is Soft", "Brainfuck", models.SkillCategorySoft},
		{"communication is Soft", "Public Speaking", models.SkillCategorySoft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.language))
		})
	}
}

// Frontend is checked before Tools, so "Dockerfile" (which contains both the
// frontend keyword "dockerfile" and the tools keyword "docker") lands in
// Frontend.
func TestClassifyOrderFrontendFirst(t *testing.T) {
	assert.Equal(t, models.SkillCategoryFrontend, Classify("Dockerfile"))
}

// Classify is total: any input must yield one of the four fixed categories.
func TestClassifyTotality(t *testing.T) {
	inputs := []string{
		"", " ", "???", "日本語", "HTML+CSS", "PYTHON", "python ", "\x00\x01",
		"a very long language name that matches nothing at all",
	}
	for _, in := range inputs {
		got := Classify(in)
		assert.True(t, models.ValidSkillCategory(got), "Classify(%q) returned %q", in, got)
	}
}
