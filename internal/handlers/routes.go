package handlers

import "net/http"

// RegisterRoutes wires HTTP handlers into the provided ServeMux.
func RegisterRoutes(mux *http.ServeMux, deps Dependencies) {
	health := HealthHandler{}
	auth := AuthHandler{Sessions: deps.Sessions, Limiter: deps.RateLimiter}
	videos := VideoHandler{Sessions: deps.Sessions, Videos: deps.Videos}
	analytics := AnalyticsHandler{Sessions: deps.Sessions, Videos: deps.Videos}

	mux.HandleFunc("/healthz", health.Handle)
	mux.HandleFunc("/api/v1/auth/login", auth.Login)
	mux.HandleFunc("/api/v1/auth/register", auth.Register)
	mux.HandleFunc("/api/v1/auth/logout", auth.Logout)
	mux.HandleFunc("/api/v1/auth/me", auth.Me)
	mux.HandleFunc("/api/v1/videos", videos.Collection)
	mux.HandleFunc("/api/v1/videos/{id}", videos.Item)
	mux.HandleFunc("/api/v1/dashboard", analytics.Dashboard)
	mux.HandleFunc("/api/v1/analytics", analytics.Analytics)
}

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Sessions    SessionStore
	Videos      VideoStore
	RateLimiter RateLimiter
}
