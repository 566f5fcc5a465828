package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/facets/internal/api"
	"github.com/terraincognita07/facets/internal/db"
	"github.com/terraincognita07/facets/internal/seed"
	"github.com/terraincognita07/facets/internal/services"
)

func runServe(options *commandOptions) error {
	location := mustLoadLocation(getEnv("TZ", "UTC"))
	time.Local = location

	secretKey, err := resolveSecretKey()
	if err != nil {
		return err
	}
	port, err := resolvePort()
	if err != nil {
		return err
	}
	cookieSecure, err := resolveBool("COOKIE_SECURE", false)
	if err != nil {
		return err
	}
	policy, err := resolvePasswordPolicy()
	if err != nil {
		return err
	}

	database, err := db.OpenSQLite(options.dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer db.Close(database)

	if options.seedOnStart {
		registry := services.NewRegistry(db.NewGateway(database, db.NewRequestCache()))
		report, err := seed.ApplyFiles(registry, options.identitiesPath, options.themesPath)
		if err != nil {
			return fmt.Errorf("seed reference data: %w", err)
		}
		if !report.Empty() {
			log.Printf("seeded %d identity templates and %d themes", len(report.Templates), len(report.Themes))
		}
	}

	handler, err := api.NewHandler(database, secretKey,
		api.WithLocation(location),
		api.WithCookieSecure(cookieSecure),
		api.WithPasswordPolicy(policy),
	)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	app := newApp(handler, cookieSecure)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Facets listening on http://0.0.0.0:%s (db: %s, tz: %s)", port, options.dbPath, location.String())
	if err := app.Listen(":" + port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func newApp(handler *api.Handler, cookieSecure bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Facets",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(csrf.New(csrfMiddlewareConfig(cookieSecure)))

	api.RegisterRoutes(app, handler)
	return app
}

func csrfMiddlewareConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		KeyLookup:      "header:" + csrfHeaderName,
		CookieName:     "facets_csrf",
		CookieSameSite: "Lax",
		CookieHTTPOnly: false,
		CookieSecure:   cookieSecure,
		Expiration:     2 * time.Hour,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/healthz")
		},
	}
}

const csrfHeaderName = "X-Csrf-Token"
