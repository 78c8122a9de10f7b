package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/markdave123-py/Resumely/internal/api/handlers"
	appMiddleware "github.com/markdave123-py/Resumely/internal/api/middlewares"
	"github.com/markdave123-py/Resumely/internal/config"
	db "github.com/markdave123-py/Resumely/internal/core/database"
	"github.com/markdave123-py/Resumely/internal/core/objectstore"
	"github.com/markdave123-py/Resumely/internal/core/parser"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, dbc db.DbClient, obj objectstore.ObjectClient, p *parser.Parser) *Server {
	authHandler := handlers.NewAuthHandler(dbc)
	resumeHandler := handlers.NewResumeHandler(dbc, obj, p, cfg)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8888"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(api chi.Router) {
		// public endpoints
		api.Post("/signup", authHandler.Signup)
		api.Post("/login", authHandler.Login)

		// protected endpoints
		api.Group(func(protected chi.Router) {
			protected.Use(appMiddleware.JWTMiddleware)
			protected.Post("/resumes/upload", resumeHandler.UploadResumes)
			protected.Get("/resumes", resumeHandler.ListResumes)
			protected.Get("/resumes/{id}/file", resumeHandler.GetResumeFile)
			protected.Post("/resumes/filter", resumeHandler.FilterResumes)
			protected.Get("/skills/suggestions", resumeHandler.SkillSuggestions)
		})
	})

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	return &Server{httpServer: httpSrv}
}

// Start runs the HTTP server.
func (s *Server) Start() {
	log.Printf("HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
