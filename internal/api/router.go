package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/example/bookstore-gateway/internal/api/middleware"
	"github.com/example/bookstore-gateway/internal/auth"
)

// RoleAdmin may ban users and read registration reports.
const RoleAdmin = "admin"

// RouterConfig carries the explicitly constructed dependencies; there
// is no container, main wires everything.
type RouterConfig struct {
	Users      *UsersHandlers
	Category   *CategoryHandlers
	Books      *BooksHandlers
	Stock      *StockHandlers
	JWTService *auth.JWTService
	RateLimit  func(http.Handler) http.Handler
	Logger     *slog.Logger
}

// NewRouter builds the explicit route table. Route paths follow the
// platform's public API contract and are never renamed.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(cfg.Logger))
	if cfg.RateLimit != nil {
		r.Use(cfg.RateLimit)
	}

	authn := middleware.Authenticate(cfg.JWTService)
	admin := middleware.RequireRole(RoleAdmin)

	r.Route("/users", func(r chi.Router) {
		r.Post("/register", cfg.Users.Register)

		r.Group(func(r chi.Router) {
			r.Use(authn)
			r.Get("/me", cfg.Users.Me)
			r.Put("/update", cfg.Users.Update)
			r.Put("/change-password", cfg.Users.ChangePassword)

			r.Group(func(r chi.Router) {
				r.Use(admin)
				r.Get("/report-new-user", cfg.Users.ReportNewUsers)
				r.Put("/ban-user/{userId}", cfg.Users.BanUser)
				r.Put("/un-ban-user/{userId}", cfg.Users.UnBanUser)
			})
		})
	})

	r.Route("/category", func(r chi.Router) {
		r.Use(authn)
		r.Get("/get-all", cfg.Category.GetAllCategory)
		r.Get("/get-category-by-categoryName/{categoryName}", cfg.Category.GetCategoryByName)
		r.Post("/create-category-book", cfg.Category.CreateCategoryBook)
		r.Put("/update-category-book", cfg.Category.UpdateCategoryBook)
	})

	r.Route("/books", func(r chi.Router) {
		r.Use(authn)
		r.Get("/pagination", cfg.Books.GetPagination)
		r.Get("/get-all-books", cfg.Books.GetAllBooks)
		r.Post("/create-book", cfg.Books.CreateBook)
		r.Delete("/delete-book/{bookId}", cfg.Books.DeleteBook)
	})

	r.Route("/books-stock", func(r chi.Router) {
		// Pagination is the public storefront query.
		r.Get("/pagination", cfg.Stock.GetPagination)

		r.Group(func(r chi.Router) {
			r.Use(authn)
			r.Get("/get-all-books-in-stock", cfg.Stock.GetAllBooksInStock)
			r.Post("/create-book-to-stock", cfg.Stock.CreateBookToStock)
			r.Put("/add-book-in-stock/{bookId}", cfg.Stock.AddBookInStock)
			r.Delete("/delete-book-in-stock/{bookId}", cfg.Stock.DeleteBookInStock)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
			)
		})
	}
}
