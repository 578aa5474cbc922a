package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"portfolio-service/internal/config"
	"portfolio-service/internal/github"
	"portfolio-service/internal/storage"
	"portfolio-service/internal/sync"
	"portfolio-service/internal/transport/http"
	"portfolio-service/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

var startTime time.Time

func main() {
	startTime = time.Now()
	cfg := config.Load()
	storage.InitDB(cfg)

	r2Config := utils.PortfolioR2Config{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		AccessKeySecret: cfg.R2AccessKeySecret,
		BucketName:      cfg.R2BucketName,
		PublicURL:       cfg.R2PublicURL,
	}
	r2Client, err := utils.NewPortfolioR2Client(r2Config)
	if err != nil {
		log.Fatalf("❌ [R2] Failed to initialize client: %v", err)
	}
	log.Println("✅ [R2] Portfolio R2 client initialized")

	githubClient := github.NewClient(cfg.GithubAPIURL, cfg.GithubToken)
	repoSyncService := sync.NewRepoSyncService(storage.GetDB(), githubClient)
	log.Printf("🔄 [SYNC] Repo sync service initialized (account: %s)", cfg.GithubAccount)

	handler := http.NewHandler(storage.GetDB(), repoSyncService, r2Client)
	log.Println("✅ [SERVICE] Handler initialized")

	app := fiber.New(fiber.Config{
		AppName:      "portfolio-service",
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Requested-With,X-User-ID,X-User-Roles",
		MaxAge:       86400,
	}))

	app.Use(logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${ua}\n",
	}))

	registerRoutes(app, handler, cfg.GithubAccount)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		uptime := time.Since(startTime).Round(time.Second)
		return c.JSON(fiber.Map{
			"status":         "ok",
			"service":        "portfolio-service",
			"uptime":         uptime.String(),
			"timestamp":      time.Now().UTC().Format(time.RFC3339),
			"github_account": cfg.GithubAccount,
		})
	})
	log.Println("✅ [ROUTES] Registered /health")

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("🛑 [SHUTDOWN] Graceful shutdown initiated...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ [SHUTDOWN] Error: %v", err)
		}
	}()

	log.Printf("🚀 portfolio-service starting...")
	log.Printf("   🔗 Listening on port: %s", cfg.ServerPort)
	log.Printf("   🌐 CORS allowed origins: %s", cfg.AllowedOrigins)
	log.Printf("   📦 R2 bucket: %s", cfg.R2BucketName)
	log.Printf("   🔄 GitHub account: %s", cfg.GithubAccount)
	log.Println("✅ Server ready.")

	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("❌ [STARTUP] Server failed to start: %v", err)
	}
}

// registerRoutes wires the public API, the admin surface and the webhook.
// Auth runs per admin route (not as group-prefix middleware) so the public
// reads on the same /api prefix stay anonymous regardless of registration
// order.
func registerRoutes(app *fiber.App, handler *http.Handler, githubAccount string) {
	gateway := gatewayAuth()
	adminRole := adminRoleAuth()

	// 1. Public read routes
	api := app.Group("/api")
	api.Get("/profile", handler.GetProfile)
	api.Get("/projects", handler.GetAllProjects)
	// The sync action sits above the :id read so "sync" never parses as an id
	api.Get("/projects/sync", gateway, adminRole, handler.SyncAllProjects(githubAccount))
	api.Get("/projects/:id", handler.GetProject)
	api.Get("/certificates", handler.GetAllCertificates)
	api.Get("/skills", handler.GetAllSkills)
	log.Println("✅ [ROUTES] Registered public routes: /api/*")

	// 2. Admin routes (via Gateway + admin role)
	api.Put("/profile", gateway, adminRole, handler.UpdateProfile)
	api.Post("/projects", gateway, adminRole, handler.CreateProject)
	api.Put("/projects/:id", gateway, adminRole, handler.UpdateProject)
	api.Delete("/projects/:id", gateway, adminRole, handler.DeleteProject)
	api.Post("/certificates", gateway, adminRole, handler.CreateCertificate)
	api.Put("/certificates/:id", gateway, adminRole, handler.UpdateCertificate)
	api.Delete("/certificates/:id", gateway, adminRole, handler.DeleteCertificate)
	api.Post("/skills", gateway, adminRole, handler.CreateSkill)
	api.Put("/skills/:id", gateway, adminRole, handler.UpdateSkill)
	api.Delete("/skills/:id", gateway, adminRole, handler.DeleteSkill)
	log.Println("✅ [ROUTES] Registered admin routes: /api/* (mutations + sync)")

	// 3. GitHub webhook (GET health ack + POST event; other methods → 405)
	app.Get("/webhook/github", handler.GithubWebhookHealth)
	app.Post("/webhook/github", handler.GithubWebhook)
	log.Println("✅ [ROUTES] Registered webhook route: /webhook/github")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var errMsg string
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		errMsg = e.Message
	} else {
		errMsg = err.Error()
	}
	log.Printf("🔥 [ERROR] [%d] %s %s → %v | IP=%s | UA=%s",
		code,
		c.Method(),
		c.Path(),
		errMsg,
		c.IP(),
		c.Get("User-Agent"),
	)
	return c.Status(code).JSON(fiber.Map{
		"error":      "something went wrong",
		"request_id": c.Get("X-Request-ID"),
	})
}

func gatewayAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("X-User-ID")
		if userID == "" {
			log.Printf("[GATEWAY-AUTH] ❌ REJECTED | IP=%s | Path=%s", c.IP(), c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized: missing user context from Gateway",
			})
		}
		return c.Next()
	}
}

func adminRoleAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRolesHeader := c.Get("X-User-Roles")
		if userRolesHeader == "" {
			log.Printf("[ADMIN-AUTH] ❌ REJECTED (no roles) | Path=%s", c.Path())
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: missing user roles from Gateway",
			})
		}
		hasAdminRole := false
		for _, role := range strings.Split(userRolesHeader, ",") {
			if strings.ToLower(strings.TrimSpace(role)) == "admin" {
				hasAdminRole = true
				break
			}
		}
		if !hasAdminRole {
			log.Printf("[ADMIN-AUTH] ❌ REJECTED (no admin) | Roles=%s | Path=%s",
				userRolesHeader, c.Path())
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: admin role required",
			})
		}
		return c.Next()
	}
}
