package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sakib-arifin/exam-portal-api/internal/config"
	"github.com/sakib-arifin/exam-portal-api/internal/handler"
	"github.com/sakib-arifin/exam-portal-api/internal/middleware"
	"github.com/sakib-arifin/exam-portal-api/internal/models"
	"github.com/sakib-arifin/exam-portal-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	UserHandler       *handler.UserHandler
	ExamHandler       *handler.ExamHandler
	QuestionHandler   *handler.QuestionHandler
	AssignmentHandler *handler.AssignmentHandler
	AttemptHandler    *handler.AttemptHandler
	ReportHandler     *handler.ReportHandler
	GradingHandler    *handler.GradingHandler
	FeedbackHandler   *handler.FeedbackHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Public surface: signup, login, anonymous feedback
	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"))
	}
	if deps.FeedbackHandler != nil {
		deps.FeedbackHandler.Register(api.Group("/feedback"))
	}

	// Exam authoring and everything nested under a single exam
	if deps.ExamHandler != nil {
		exams := api.Group("/exams", jwtMiddleware)
		deps.ExamHandler.Register(exams.Group("", middleware.RequireAction(models.ActionManageExams)))

		if deps.QuestionHandler != nil {
			deps.QuestionHandler.Register(exams.Group("/:examID/questions", middleware.RequireAction(models.ActionManageQuestions)))
		}
		if deps.AssignmentHandler != nil {
			deps.AssignmentHandler.Register(exams.Group("/:examID/assignments", middleware.RequireAction(models.ActionAssignExams)))
		}
		if deps.ReportHandler != nil {
			deps.ReportHandler.Register(exams.Group("/:examID", middleware.RequireAction(models.ActionViewReports)))
		}
		if deps.GradingHandler != nil {
			deps.GradingHandler.Register(exams.Group("/:examID/responses", middleware.RequireAction(models.ActionGradeResponses)))
		}

		// Read-only listing for any authenticated user
		deps.ExamHandler.RegisterCatalog(api.Group("/catalog/exams", jwtMiddleware))
	}

	// Student surface: taking exams, own assignments, dashboard
	if deps.AttemptHandler != nil {
		student := api.Group("/my", jwtMiddleware, middleware.RequireAction(models.ActionTakeExams))
		submitLimiter := middleware.RateLimit("submit", cfg.SubmitRateLimit, cfg.SubmitRateWindow)
		deps.AttemptHandler.Register(student, submitLimiter)

		if deps.AssignmentHandler != nil {
			deps.AssignmentHandler.RegisterMine(student.Group("/assignments"))
		}
		if deps.ReportHandler != nil {
			deps.ReportHandler.RegisterDashboard(student.Group("/dashboard"))
		}
	}

	// Account management
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterProfile(api.Group("/profile", jwtMiddleware))
		deps.UserHandler.RegisterStudents(api.Group("/students", jwtMiddleware, middleware.RequireAction(models.ActionManageStudents)))
		deps.UserHandler.RegisterTeachers(api.Group("/teachers", jwtMiddleware, middleware.RequireAction(models.ActionManageTeachers)))
	}

	if deps.FeedbackHandler != nil {
		deps.FeedbackHandler.RegisterAdmin(api.Group("/admin/feedback", jwtMiddleware, middleware.RequireAction(models.ActionManageTeachers)))
	}
}
