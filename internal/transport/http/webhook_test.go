package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio-service/internal/github"
	"portfolio-service/internal/sync"
	"portfolio-service/pkg/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// One connection so the in-memory database is shared across queries
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Profile{},
		&models.Project{},
		&models.Certificate{},
		&models.Skill{},
		&models.SyncConfig{},
		&models.SyncEvent{},
	))

	// Languages endpoint never matters in these tests: payloads carry no
	// languages_url, which short-circuits the skill sync.
	ghServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(ghServer.Close)

	syncService := sync.NewRepoSyncService(db, github.NewClient(ghServer.URL, ""))
	handler := NewHandler(db, syncService, nil)

	app := fiber.New()
	app.Get("/api/profile", handler.GetProfile)
	app.Get("/api/projects", handler.GetAllProjects)
	app.Put("/api/projects/:id", handler.UpdateProject)
	app.Get("/api/skills", handler.GetAllSkills)
	app.Post("/api/skills", handler.CreateSkill)
	app.Put("/api/skills/:id", handler.UpdateSkill)
	app.Get("/webhook/github", handler.GithubWebhookHealth)
	app.Post("/webhook/github", handler.GithubWebhook)
	return app, db
}

func TestWebhookHealthCheck(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/webhook/github", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "OK", string(body))
}

func TestWebhookRejectsUnknownMethod(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("PATCH", "/webhook/github", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusMethodNotAllowed, resp.StatusCode)
}

func TestWebhookPushEvent(t *testing.T) {
	app, db := newTestApp(t)

	payload := `{"repository": {"name": "bar", "html_url": "https://x/bar", "description": "d1"}, "pusher": {"name": "octocat"}}`
	req := httptest.NewRequest("POST", "/webhook/github", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "success", result["status"])

	var project models.Project
	require.NoError(t, db.Where("github_url = ?", "https://x/bar").First(&project).Error)
	assert.Equal(t, "d1", project.Description)
}

func TestWebhookIgnoresNonPushPayload(t *testing.T) {
	app, db := newTestApp(t)

	payload := `{"repository": {"name": "bar", "html_url": "https://x/bar"}}`
	req := httptest.NewRequest("POST", "/webhook/github", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "ignored", result["status"])

	var count int64
	db.Model(&models.Project{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestWebhookMalformedPayload(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("POST", "/webhook/github", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Contains(t, result["error"], "invalid push payload")
}

func TestGetProfileReturnsFirstRow(t *testing.T) {
	app, db := newTestApp(t)
	require.NoError(t, db.Create(&models.Profile{FullName: "Ada Lovelace", Role: "Engineer"}).Error)

	req := httptest.NewRequest("GET", "/api/profile", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var profile models.Profile
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&profile))
	assert.Equal(t, "Ada Lovelace", profile.FullName)
}

func TestGetProfileNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/profile", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// Projects go out with tags split into a list, matching the public API shape.
func TestGetAllProjectsSplitsTags(t *testing.T) {
	app, db := newTestApp(t)
	require.NoError(t, db.Create(&models.Project{
		GithubURL: "https://x/foo",
		Title:     "foo",
		Tags:      "GitHub, Project",
		Stars:     3,
	}).Error)

	req := httptest.NewRequest("GET", "/api/projects", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Projects []struct {
			Title    string   `json:"title"`
			TagsList []string `json:"tags_list"`
		} `json:"projects"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Projects, 1)
	assert.Equal(t, "foo", body.Projects[0].Title)
	assert.Equal(t, []string{"GitHub", "Project"}, body.Projects[0].TagsList)
}
