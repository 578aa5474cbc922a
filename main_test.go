package main

import (
	"bytes"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"portfolio-service/internal/github"
	"portfolio-service/internal/sync"
	"portfolio-service/internal/transport/http"
	"portfolio-service/pkg/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newAuthTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/admin-only", gatewayAuth(), adminRoleAuth(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	return app
}

// newRoutedApp builds an app through registerRoutes, so tests see the exact
// route and middleware order the server runs with.
func newRoutedApp(t *testing.T) (*fiber.App, *gorm.DB) {
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

	ghServer := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	t.Cleanup(ghServer.Close)

	syncService := sync.NewRepoSyncService(db, github.NewClient(ghServer.URL, ""))
	handler := http.NewHandler(db, syncService, nil)

	app := fiber.New()
	registerRoutes(app, handler, "octocat")
	return app, db
}

// Single-project reads are public: no gateway headers required.
func TestRoutingProjectReadIsPublic(t *testing.T) {
	app, db := newRoutedApp(t)
	project := models.Project{GithubURL: "https://x/pub", Title: "pub"}
	require.NoError(t, db.Create(&project).Error)

	req := httptest.NewRequest("GET", "/api/projects/"+project.ID.String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRoutingListReadsArePublic(t *testing.T) {
	app, db := newRoutedApp(t)
	require.NoError(t, db.Create(&models.Profile{FullName: "Ada"}).Error)

	for _, path := range []string{"/api/profile", "/api/projects", "/api/certificates", "/api/skills"} {
		req := httptest.NewRequest("GET", path, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, path)
	}
}

func TestRoutingSyncRequiresAdmin(t *testing.T) {
	app, _ := newRoutedApp(t)

	req := httptest.NewRequest("GET", "/api/projects/sync", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest("GET", "/api/projects/sync", nil)
	req.Header.Set("X-User-ID", "u-1")
	req.Header.Set("X-User-Roles", "viewer")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest("GET", "/api/projects/sync", nil)
	req.Header.Set("X-User-ID", "u-1")
	req.Header.Set("X-User-Roles", "admin")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRoutingMutationsRequireUserContext(t *testing.T) {
	app, _ := newRoutedApp(t)

	body := bytes.NewBufferString(`{"title": "t"}`)
	req := httptest.NewRequest("PUT", "/api/projects/abc", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRouteRequiresUserContext(t *testing.T) {
	app := newAuthTestApp()

	req := httptest.NewRequest("GET", "/admin-only", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// A non-admin caller is rejected with Forbidden before the handler (and thus
// before any remote call) runs.
func TestAdminRouteRejectsNonAdmin(t *testing.T) {
	app := newAuthTestApp()

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("X-User-ID", "u-1")
	req.Header.Set("X-User-Roles", "viewer,editor")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAdminRouteAcceptsAdmin(t *testing.T) {
	app := newAuthTestApp()

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("X-User-ID", "u-1")
	req.Header.Set("X-User-Roles", "viewer, Admin")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
