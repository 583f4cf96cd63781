// Package mockbackend is an in-memory stand-in for the MindEase backend. It
// serves the same routes and error bodies, with canned text in place of the
// language model.
package mockbackend

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"tableflip.dev/mindease/pkg/api"
)

// RecalculatedSentiment is the label every recalculation assigns.
const RecalculatedSentiment = api.SentimentNeutral

const noEntriesSummary = "No journal entries found for the selected period."

// Server exposes the Fiber application.
type Server struct {
	app   *fiber.App
	store *Store
	log   *zap.Logger
}

// NewServer wires handlers and middleware.
func NewServer(store *Store, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	// Immutable: the store keeps param strings past the request.
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		Immutable:             true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
		ErrorHandler:          errorHandler,
	})
	app.Use(recover.New())
	app.Use(requestLogger(log))

	srv := &Server{app: app, store: store, log: log}
	srv.registerRoutes()
	return srv
}

// App returns the underlying Fiber app, for app.Test in tests.
func (s *Server) App() *fiber.App { return s.app }

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		_ = s.app.Shutdown()
	}()
	s.log.Info("mock backend listening", zap.String("addr", ln.Addr().String()))
	return s.app.Listener(ln)
}

// Run listens on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("mockbackend: %w", err)
	}
	return s.Serve(ctx, ln)
}

func (s *Server) registerRoutes() {
	s.app.Get("/", s.handleHealth)
	s.app.Post("/register", s.handleRegister)
	s.app.Post("/login", s.handleLogin)
	s.app.Put("/change_password/:username", s.handleChangePassword)

	j := s.app.Group("/journal")
	// fixed segments before the :username catch-all
	j.Post("/insight", s.handleInsight)
	j.Get("/sentiment_summary/:username", s.handleSummary)
	j.Get("/sentiment_trends/:username", s.handleTrends)
	j.Put("/update_sentiment/:username/:id", s.handleUpdateSentiment)
	j.Post("/generate_prompt/:username", s.handlePrompt)
	j.Post("/period_summary/:username", s.handlePeriod)
	j.Get("/:username", s.handleListEntries)
	j.Post("/:username", s.handleCreateEntry)
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func requestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		log.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		)
		return err
	}
}

func param(c *fiber.Ctx, name string) string {
	// Params are returned raw; the client escapes each segment.
	v := c.Params(name)
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(api.Health{
		Status:         "success",
		Message:        "MindEase backend is running!",
		DatabaseStatus: "connected",
	})
}

type credentialsBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) credentials(c *fiber.Ctx) (credentialsBody, error) {
	var body credentialsBody
	if err := c.BodyParser(&body); err != nil || body.Username == "" || body.Password == "" {
		return body, fiber.NewError(fiber.StatusBadRequest, "Username and password are required")
	}
	return body, nil
}

func (s *Server) handleRegister(c *fiber.Ctx) error {
	body, err := s.credentials(c)
	if err != nil {
		return err
	}
	if err := s.store.Register(body.Username, body.Password); err != nil {
		if errors.Is(err, ErrUserExists) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Registration failed: "+err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User registered successfully!"})
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	body, err := s.credentials(c)
	if err != nil {
		return err
	}
	if err := s.store.Authenticate(body.Username, body.Password); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}
	return c.JSON(fiber.Map{"message": "Login successful!", "username": body.Username})
}

type changePasswordBody struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (s *Server) handleChangePassword(c *fiber.Ctx) error {
	var body changePasswordBody
	if err := c.BodyParser(&body); err != nil || body.OldPassword == "" || body.NewPassword == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Old password and new password are required")
	}
	err := s.store.ChangePassword(param(c, "username"), body.OldPassword, body.NewPassword)
	switch {
	case errors.Is(err, ErrUserNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrWrongPassword):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case err != nil:
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update password: "+err.Error())
	}
	return c.JSON(fiber.Map{"message": "Password updated successfully!"})
}

type textBody struct {
	Text *string `json:"text"`
}

func entryText(c *fiber.Ctx) (string, error) {
	var body textBody
	if err := c.BodyParser(&body); err != nil || body.Text == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Missing 'text' field in request")
	}
	return *body.Text, nil
}

func (s *Server) handleListEntries(c *fiber.Ctx) error {
	return c.JSON(s.store.List(param(c, "username")))
}

func (s *Server) handleCreateEntry(c *fiber.Ctx) error {
	text, err := entryText(c)
	if err != nil {
		return err
	}
	e := s.store.Add(param(c, "username"), text)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Journal entry added successfully!",
		"id":      e.ID,
		"entry":   e,
	})
}

func (s *Server) handleInsight(c *fiber.Ctx) error {
	text, err := entryText(c)
	if err != nil {
		return err
	}
	words := len(strings.Fields(text))
	insight := fmt.Sprintf("Thank you for writing this down. Your entry is %d words long; "+
		"take a moment to notice which feelings came up most as you wrote it.", words)
	return c.JSON(fiber.Map{"insight": insight})
}

func (s *Server) handleSummary(c *fiber.Ctx) error {
	return c.JSON(s.store.Summary(param(c, "username")))
}

func (s *Server) handleTrends(c *fiber.Ctx) error {
	return c.JSON(s.store.Trends(param(c, "username")))
}

func (s *Server) handleUpdateSentiment(c *fiber.Ctx) error {
	id := param(c, "id")
	if _, err := s.store.SetSentiment(param(c, "username"), id, RecalculatedSentiment); err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return c.JSON(fiber.Map{
		"message":       "Sentiment updated successfully!",
		"id":            id,
		"new_sentiment": RecalculatedSentiment,
	})
}

func (s *Server) handlePrompt(c *fiber.Ctx) error {
	prompt := "What is one small thing that brought you comfort today?"
	if len(s.store.Recent(param(c, "username"), 5)) > 0 {
		prompt = "Looking back at your recent entries, what has shifted for you since you wrote them?"
	}
	return c.JSON(fiber.Map{"prompt": prompt})
}

type periodBody struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (s *Server) handlePeriod(c *fiber.Ctx) error {
	var body periodBody
	_ = c.BodyParser(&body)
	if body.StartDate == "" || body.EndDate == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Start date and end date are required.")
	}
	start, err1 := time.Parse(dayLayout, body.StartDate)
	end, err2 := time.Parse(dayLayout, body.EndDate)
	if err1 != nil || err2 != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid date format. Please use YYYY-MM-DD.")
	}

	entries := s.store.Between(param(c, "username"), start, end)
	if len(entries) == 0 {
		return c.JSON(fiber.Map{"summary": noEntriesSummary})
	}
	summary := fmt.Sprintf("Between %s and %s you wrote %d entries. "+
		"Your writing returned to the same themes several times; consider what they have in common.",
		body.StartDate, body.EndDate, len(entries))
	return c.JSON(fiber.Map{"summary": summary, "entry_count": len(entries)})
}
