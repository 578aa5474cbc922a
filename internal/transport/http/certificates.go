// internal/transport/http/certificates.go
package http

import (
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"portfolio-service/pkg/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (h *Handler) GetAllCertificates(c *fiber.Ctx) error {
	var certificates []models.Certificate
	if err := h.db.WithContext(c.Context()).Order("issue_date desc").Find(&certificates).Error; err != nil {
		log.Printf("❌ [CERTS] Failed to fetch certificates: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch certificates"})
	}
	return c.JSON(fiber.Map{"certificates": certificates})
}

// CreateCertificate — admin only. Accepts either a JSON body or a multipart
// form; a `credential_file` upload goes to R2 and its public URL is stored.
func (h *Handler) CreateCertificate(c *fiber.Ctx) error {
	certificate := models.Certificate{Source: "Manual"}

	if strings.HasPrefix(c.Get("Content-Type"), "multipart/form-data") {
		certificate.Name = strings.TrimSpace(c.FormValue("name"))
		certificate.Issuer = strings.TrimSpace(c.FormValue("issuer"))
		certificate.CredentialURL = strings.TrimSpace(c.FormValue("credential_url"))
		if source := strings.TrimSpace(c.FormValue("source")); source != "" {
			certificate.Source = source
		}
		if dateStr := strings.TrimSpace(c.FormValue("issue_date")); dateStr != "" {
			t, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid issue_date — use YYYY-MM-DD"})
			}
			certificate.IssueDate = t
		}

		if fileHeader, err := c.FormFile("credential_file"); err == nil && fileHeader != nil {
			file, err := fileHeader.Open()
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to read uploaded file"})
			}
			defer file.Close()
			content, err := io.ReadAll(file)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to read uploaded file"})
			}
			publicURL, err := h.r2Client.UploadCertificateFile(c.Context(), content, fileHeader.Filename)
			if err != nil {
				log.Printf("❌ [CERTS] R2 upload failed for %s: %v", fileHeader.Filename, err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "upload failed: " + err.Error()})
			}
			log.Printf("✅ [CERTS] Uploaded %s → %s", fileHeader.Filename, publicURL)
			certificate.CredentialFile = publicURL
		}
	} else {
		var req models.CertificateRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		certificate.Name = req.Name
		certificate.Issuer = req.Issuer
		certificate.CredentialURL = req.CredentialURL
		if req.Source != "" {
			certificate.Source = req.Source
		}
		if req.IssueDate != "" {
			t, err := time.Parse("2006-01-02", req.IssueDate)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid issue_date — use YYYY-MM-DD"})
			}
			certificate.IssueDate = t
		}
	}

	if certificate.Name == "" || certificate.Issuer == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and issuer are required"})
	}

	if err := h.db.WithContext(c.Context()).Create(&certificate).Error; err != nil {
		log.Printf("❌ [CERTS] CreateCertificate failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create certificate"})
	}
	return c.Status(fiber.StatusCreated).JSON(certificate)
}

func (h *Handler) UpdateCertificate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid certificate id"})
	}
	var certificate models.Certificate
	if err := h.db.WithContext(c.Context()).Where("id = ?", id).First(&certificate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "certificate not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch certificate"})
	}

	var req models.CertificateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Name != "" {
		certificate.Name = req.Name
	}
	if req.Issuer != "" {
		certificate.Issuer = req.Issuer
	}
	if req.CredentialURL != "" {
		certificate.CredentialURL = req.CredentialURL
	}
	if req.Source != "" {
		certificate.Source = req.Source
	}
	if req.IssueDate != "" {
		t, err := time.Parse("2006-01-02", req.IssueDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid issue_date — use YYYY-MM-DD"})
		}
		certificate.IssueDate = t
	}

	if err := h.db.WithContext(c.Context()).Save(&certificate).Error; err != nil {
		log.Printf("❌ [CERTS] UpdateCertificate failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update certificate"})
	}
	return c.JSON(certificate)
}

func (h *Handler) DeleteCertificate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid certificate id"})
	}
	if err := h.db.WithContext(c.Context()).Where("id = ?", id).Delete(&models.Certificate{}).Error; err != nil {
		log.Printf("❌ [CERTS] DeleteCertificate failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete certificate"})
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "certificate deleted",
	})
}
