package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/lunavic/tidylist-be/internal/api/handlers"
	"github.com/lunavic/tidylist-be/internal/auth"
	"github.com/lunavic/tidylist-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	tokens *auth.Service,
	users services.UserServiceProvider,
	lists services.ListServiceProvider,
	photos services.PhotoServiceProvider,
	clientURL, publicDir string,
	maxUploadBytes int64,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{clientURL},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(users, tokens)
	photoHandler := handlers.NewPhotoHandler(photos, maxUploadBytes)
	listHandler := handlers.NewListHandler(lists)

	r.Post("/register", userHandler.Register)
	r.Post("/login", userHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(tokens.Middleware)

		r.Get("/user", userHandler.Me)
		r.Post("/update", userHandler.Update)
		r.Post("/password", userHandler.ChangePassword)
		r.Post("/photo", photoHandler.Handle)

		r.Route("/list", func(r chi.Router) {
			r.Post("/create", listHandler.Create)
			r.Post("/update", listHandler.Update)
			r.Post("/delete", listHandler.Delete)
			r.Post("/star", listHandler.Star)
			r.Post("/archive", listHandler.Archive)
			r.Post("/complete", listHandler.Complete)
		})
	})

	// Uploaded photos and other public assets
	r.Handle("/*", http.FileServer(http.Dir(publicDir)))

	return r
}
