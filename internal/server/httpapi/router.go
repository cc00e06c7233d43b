package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Router builds the chi route tree:
//
//	POST /auth/register           {username, password, first_name, last_name, phone} => {token, user}
//	POST /auth/login              {username, password} => {token}
//	GET  /users                   => {users: [{username, first_name, last_name}]}
//	GET  /users/{username}        => {user}                       (that user only)
//	GET  /users/{username}/to     => {messages: [... from_user]}  (that user only)
//	GET  /users/{username}/from   => {messages: [... to_user]}    (that user only)
//	POST /messages                {to_username, body} => {message}
//	GET  /messages/{id}           => {message}                    (sender or recipient only)
func (s *HTTPServer) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: allowsCredentials(s.allowedOrigins),
		MaxAge:           300,
	}))
	r.Use(s.authenticateJWT)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.register)
		r.Post("/login", s.login)
	})

	r.Route("/users", func(r chi.Router) {
		r.With(ensureLoggedIn).Get("/", s.listUsers)
		r.Route("/{username}", func(r chi.Router) {
			r.Use(ensureCorrectUser)
			r.Get("/", s.getUser)
			r.Get("/to", s.messagesTo)
			r.Get("/from", s.messagesFrom)
		})
	})

	r.Route("/messages", func(r chi.Router) {
		r.Use(ensureLoggedIn)
		r.Post("/", s.sendMessage)
		r.Get("/{id}", s.getMessage)
	})

	return r
}

func (s *HTTPServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// allowsCredentials reports whether CORS responses may carry credentials.
// A wildcard origin list never does.
func allowsCredentials(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return false
		}
	}
	return len(origins) > 0
}
