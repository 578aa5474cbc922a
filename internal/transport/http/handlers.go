// internal/transport/http/handlers.go
package http

import (
	"errors"
	"io"
	"log"
	"path/filepath"
	"strings"

	"portfolio-service/internal/sync"
	"portfolio-service/pkg/models"
	"portfolio-service/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Handler struct {
	db          *gorm.DB
	syncService *sync.RepoSyncService
	r2Client    *utils.PortfolioR2Client
}

func NewHandler(db *gorm.DB, syncService *sync.RepoSyncService, r2Client *utils.PortfolioR2Client) *Handler {
	return &Handler{
		db:          db,
		syncService: syncService,
		r2Client:    r2Client,
	}
}

var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// GetProfile returns the singleton profile row.
func (h *Handler) GetProfile(c *fiber.Ctx) error {
	var profile models.Profile
	if err := h.db.WithContext(c.Context()).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "profile not set up yet"})
		}
		log.Printf("❌ [PROFILE] Failed to load profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load profile"})
	}
	return c.JSON(profile)
}

// UpdateProfile — admin only. A multipart request with a `profile_pic` file
// uploads the picture to R2 and stores its public URL; otherwise the JSON body
// is applied as a partial update (only provided fields overwrite).
func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	var profile models.Profile
	if err := h.db.WithContext(c.Context()).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "profile not set up yet"})
		}
		log.Printf("❌ [PROFILE] Failed to load profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load profile"})
	}

	// Picture upload path
	if fileHeader, err := c.FormFile("profile_pic"); err == nil && fileHeader != nil {
		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		if !allowedImageExts[ext] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "unsupported image extension: " + ext + " (allowed: .jpg, .png, .gif, .webp)",
			})
		}

		file, err := fileHeader.Open()
		if err != nil {
			log.Printf("❌ [PROFILE] Failed to open upload %s: %v", fileHeader.Filename, err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to read uploaded file"})
		}
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			log.Printf("❌ [PROFILE] Failed to read upload %s: %v", fileHeader.Filename, err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to read uploaded file"})
		}

		publicURL, err := h.r2Client.UploadProfilePicture(c.Context(), content, fileHeader.Filename)
		if err != nil {
			log.Printf("❌ [PROFILE] R2 upload failed for %s: %v", fileHeader.Filename, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "upload failed: " + err.Error()})
		}
		log.Printf("✅ [PROFILE] Uploaded %s → %s", fileHeader.Filename, publicURL)

		profile.ProfilePic = publicURL
		if err := h.db.WithContext(c.Context()).Save(&profile).Error; err != nil {
			log.Printf("❌ [PROFILE] Failed to save profile: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save profile"})
		}
		return c.JSON(profile)
	}

	// JSON partial-update path
	var req models.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	applyIfSet := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyIfSet(&profile.FullName, req.FullName)
	applyIfSet(&profile.Role, req.Role)
	applyIfSet(&profile.Bio, req.Bio)
	applyIfSet(&profile.ProfilePic, req.ProfilePic)
	applyIfSet(&profile.Email, req.Email)
	applyIfSet(&profile.LinkedinURL, req.LinkedinURL)
	applyIfSet(&profile.DiscordURL, req.DiscordURL)
	applyIfSet(&profile.InstagramURL, req.InstagramURL)
	applyIfSet(&profile.WhatsappNumber, req.WhatsappNumber)

	if err := h.db.WithContext(c.Context()).Save(&profile).Error; err != nil {
		log.Printf("❌ [PROFILE] Failed to save profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save profile"})
	}
	return c.JSON(profile)
}
