package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api", handler.RequestScope)

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)

	catalog := api.Group("/catalog", handler.AuthRequired)
	catalog.Get("/templates", handler.ListTemplates)

	api.Get("/themes", handler.ListThemes)

	identities := api.Group("/identities", handler.AuthRequired)
	identities.Get("", handler.ListIdentities)
	identities.Get("/active", handler.GetActiveIdentity)
	identities.Post("/active", handler.SetActiveIdentity)
	identities.Patch("/names", handler.UpdateIdentityNames)

	projects := api.Group("/projects", handler.AuthRequired)
	projects.Get("", handler.ListProjects)
	projects.Post("", handler.CreateProject)
	projects.Get("/active", handler.GetActiveProject)
	projects.Post("/active", handler.SetActiveProject)
	projects.Get("/summary", handler.ProjectSummary)
	projects.Patch("/:id", handler.EditProject)
	projects.Delete("/:id", handler.DeleteProject)
	projects.Get("/:id/tasks", handler.ListProjectTasks)
	projects.Post("/:id/tasks", handler.CreateTask)
	projects.Get("/:id/tasks/summary", handler.TaskSummary)

	tasks := api.Group("/tasks", handler.AuthRequired)
	tasks.Patch("/:id", handler.EditTask)
	tasks.Delete("/:id", handler.DeleteTask)
	tasks.Post("/:id/toggle", handler.ToggleTask)
	tasks.Put("/:id/completion", handler.SetTaskCompletion)

	thoughts := api.Group("/thoughts", handler.AuthRequired)
	thoughts.Get("", handler.ListThoughts)
	thoughts.Post("", handler.CreateThought)
	thoughts.Patch("/:id", handler.EditThought)
	thoughts.Delete("/:id", handler.DeleteThought)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Get("", handler.GetSettings)
	settings.Patch("", handler.UpdateSettings)
	settings.Post("/change-password", handler.ChangePassword)
	settings.Delete("/account", handler.DeleteAccount)
}
