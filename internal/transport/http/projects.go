// internal/transport/http/projects.go
package http

import (
	"errors"
	"fmt"
	"log"
	"time"

	"portfolio-service/pkg/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// projectView is the public JSON shape: tags go out as a split list.
type projectView struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TagsList    []string  `json:"tags_list"`
	GithubURL   string    `json:"github_url"`
	Stars       int       `json:"stars"`
	CreatedAt   time.Time `json:"created_at"`
}

func toProjectView(p *models.Project) projectView {
	return projectView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		TagsList:    p.TagList(),
		GithubURL:   p.GithubURL,
		Stars:       p.Stars,
		CreatedAt:   p.CreatedAt,
	}
}

func (h *Handler) GetAllProjects(c *fiber.Ctx) error {
	var projects []models.Project
	if err := h.db.WithContext(c.Context()).Order("created_at desc").Find(&projects).Error; err != nil {
		log.Printf("❌ [PROJECTS] Failed to fetch projects: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch projects"})
	}
	views := make([]projectView, 0, len(projects))
	for i := range projects {
		views = append(views, toProjectView(&projects[i]))
	}
	return c.JSON(fiber.Map{"projects": views})
}

func (h *Handler) GetProject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid project id"})
	}
	var project models.Project
	if err := h.db.WithContext(c.Context()).Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "project not found"})
		}
		log.Printf("❌ [PROJECTS] Failed to fetch project %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch project"})
	}
	return c.JSON(toProjectView(&project))
}

// CreateProject — admin only; manual (non-synced) project entry.
func (h *Handler) CreateProject(c *fiber.Ctx) error {
	var req models.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.GithubURL == "" || req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "github_url and title are required"})
	}

	project := models.Project{
		GithubURL:   req.GithubURL,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Stars:       req.Stars,
		IsSynced:    false,
	}
	if err := h.db.WithContext(c.Context()).Create(&project).Error; err != nil {
		log.Printf("❌ [PROJECTS] CreateProject failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create project"})
	}
	return c.Status(fiber.StatusCreated).JSON(toProjectView(&project))
}

func (h *Handler) UpdateProject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid project id"})
	}
	var project models.Project
	if err := h.db.WithContext(c.Context()).Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "project not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch project"})
	}

	var req models.ProjectUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.GithubURL != nil {
		project.GithubURL = *req.GithubURL
	}
	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Tags != nil {
		project.Tags = *req.Tags
	}
	if req.Stars != nil {
		project.Stars = *req.Stars
	}
	if err := h.db.WithContext(c.Context()).Save(&project).Error; err != nil {
		log.Printf("❌ [PROJECTS] UpdateProject failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update project"})
	}
	return c.JSON(toProjectView(&project))
}

func (h *Handler) DeleteProject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid project id"})
	}
	if err := h.db.WithContext(c.Context()).Where("id = ?", id).Delete(&models.Project{}).Error; err != nil {
		log.Printf("❌ [PROJECTS] DeleteProject failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete project"})
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "project deleted",
	})
}

// SyncAllProjects — admin only; pulls every repository for the configured
// account and upserts projects + skills. Admin rejection happens in the route
// middleware, before any remote call is made.
func (h *Handler) SyncAllProjects(account string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		report, err := h.syncService.SyncAll(c.Context(), account)
		if err != nil {
			log.Printf("❌ [SYNC] Sync failed: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{
			"message": fmt.Sprintf("Sync Complete. Added %d new. Updated %d. Skills updated.", report.Created, report.Updated),
		})
	}
}
