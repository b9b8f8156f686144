package http

import (
	"log/slog"
	"net/http"

	"github.com/hearbackapp/hearback/internal/journal/service"
	"github.com/hearbackapp/hearback/internal/journal/store"
	"github.com/hearbackapp/hearback/internal/journal/tts"
	"github.com/hearbackapp/hearback/pkg/httpx"
	"github.com/hearbackapp/hearback/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	logger *slog.Logger
	store  store.Store

	Guard              *service.AccessGuard
	TokenService       *service.TokenService
	UserService        *service.UserService
	EntryService       *service.EntryService
	PreferencesService *service.PreferencesService
	Engine             tts.Engine
}

func NewRouter(st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:    http.NewServeMux(),
		logger: logger,
		store:  st,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (rt *Router) ApplyRoutes() {
	rt.registerAuth()
	rt.registerEntries()
	rt.registerPreferences()
	rt.registerSynthesis()
	rt.registerSystem()
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (rt *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(rt.Mux, rt.middlewares...).ServeHTTP(w, req)
}

func (rt *Router) registerAuth() {
	h := &AuthHandler{
		UserService:  rt.UserService,
		TokenService: rt.TokenService,
	}

	// Credential endpoints take the strict per-IP limit: they are the
	// brute-force surface.
	rt.Mux.Handle("POST /auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	rt.Mux.Handle("POST /auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	rt.Mux.Handle("GET /auth/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			rt.withUser,
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (rt *Router) registerEntries() {
	h := &EntriesHandler{EntryService: rt.EntryService}

	secured := func(handler http.HandlerFunc) http.Handler {
		return httpx.Chain(handler,
			rt.withUser,
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	rt.Mux.Handle("POST /entries/text", secured(h.HandleUploadText))
	rt.Mux.Handle("GET /entries/list/me", secured(h.HandleList))
	rt.Mux.Handle("GET /entries/{id}", secured(h.HandleGet))
	rt.Mux.Handle("POST /entries/text/{id}/progress", secured(h.HandleProgress))
	rt.Mux.Handle("DELETE /entries/{id}", secured(h.HandleDelete))
}

func (rt *Router) registerPreferences() {
	h := &PreferencesHandler{PreferencesService: rt.PreferencesService}

	secured := func(handler http.HandlerFunc) http.Handler {
		return httpx.Chain(handler,
			rt.withUser,
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	rt.Mux.Handle("POST /me/preferences", secured(h.HandleUpdate))
	rt.Mux.Handle("GET /me/preferences", secured(h.HandleGet))
}

func (rt *Router) registerSynthesis() {
	h := &SynthesisHandler{Engine: rt.Engine}

	rt.Mux.Handle("POST /synthesis/GET",
		httpx.Chain(http.HandlerFunc(h.HandleSpeak),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (rt *Router) registerSystem() {
	rt.Mux.Handle("GET /health", HealthHandler())
	rt.Mux.Handle("GET /db/health", DBHealthHandler(rt.store))
}
