// internal/skills/classifier.go
package skills

import (
	"strings"

	"portfolio-service/pkg/models"
)

// Keyword sets for language classification. Matching is case-insensitive
// substring containment, checked Frontend → Backend → Tools; first hit wins.
var (
	frontendKeywords = []string{
		"javascript", "typescript", "html", "css", "vue", "react", "angular",
		"svelte", "jsx", "tsx", "scss", "sass", "dockerfile",
	}
	backendKeywords = []string{
		"python", "django", "java", "c++", "ruby", "php", "go", "rust",
		"swift", "sql", "kotlin", "scala", "elixir",
	}
	toolsKeywords = []string{
		"docker", "git", "linux", "bash", "shell", "makefile",
		"jupyter notebook", "vim script", "cuda",
	}
)

// Classify maps a language name to one of the four fixed skill categories.
// Pure and total: any input yields a category, the empty string yields Soft.
func Classify(languageName string) models.SkillCategory {
	if languageName == "" {
		return models.SkillCategorySoft
	}
	lang := strings.ToLower(languageName)
	if containsAny(lang, frontendKeywords) {
		return models.SkillCategoryFrontend
	}
	if containsAny(lang, backendKeywords) {
		return models.SkillCategoryBackend
	}
	if containsAny(lang, toolsKeywords) {
		return models.SkillCategoryTools
	}
	return models.SkillCategorySoft
}

func containsAny(lang string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lang, kw) {
			return true
		}
	}
	return false
}
