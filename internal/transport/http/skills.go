// internal/transport/http/skills.go
package http

import (
	"errors"
	"log"

	"portfolio-service/pkg/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (h *Handler) GetAllSkills(c *fiber.Ctx) error {
	var skills []models.Skill
	if err := h.db.WithContext(c.Context()).Order("name asc").Find(&skills).Error; err != nil {
		log.Printf("❌ [SKILLS] Failed to fetch skills: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch skills"})
	}
	return c.JSON(fiber.Map{"skills": skills})
}

// CreateSkill — admin only; manual skill entry with an explicit category.
func (h *Handler) CreateSkill(c *fiber.Ctx) error {
	var req models.SkillRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}
	if req.Category == "" {
		req.Category = models.SkillCategorySoft
	}
	if !models.ValidSkillCategory(req.Category) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "category must be one of Frontend, Backend, Tools, Soft"})
	}

	skill := models.Skill{Name: req.Name, Category: req.Category}
	if err := h.db.WithContext(c.Context()).Create(&skill).Error; err != nil {
		log.Printf("❌ [SKILLS] CreateSkill failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create skill"})
	}
	return c.Status(fiber.StatusCreated).JSON(skill)
}

// UpdateSkill — admin only. This is the one place a skill's category may be
// rewritten; the sync path never does.
func (h *Handler) UpdateSkill(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid skill id"})
	}
	var skill models.Skill
	if err := h.db.WithContext(c.Context()).Where("id = ?", id).First(&skill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "skill not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch skill"})
	}

	var req models.SkillRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Name != "" {
		skill.Name = req.Name
	}
	if req.Category != "" {
		if !models.ValidSkillCategory(req.Category) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "category must be one of Frontend, Backend, Tools, Soft"})
		}
		skill.Category = req.Category
	}

	if err := h.db.WithContext(c.Context()).Save(&skill).Error; err != nil {
		log.Printf("❌ [SKILLS] UpdateSkill failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update skill"})
	}
	return c.JSON(skill)
}

func (h *Handler) DeleteSkill(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid skill id"})
	}
	if err := h.db.WithContext(c.Context()).Where("id = ?", id).Delete(&models.Skill{}).Error; err != nil {
		log.Printf("❌ [SKILLS] DeleteSkill failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete skill"})
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "skill deleted",
	})
}
