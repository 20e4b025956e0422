package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/lumahq/identity/internal/identity/service"
	"github.com/lumahq/identity/internal/identity/store"
	"github.com/lumahq/identity/pkg/httpx"
	"github.com/lumahq/identity/pkg/jwtx"
	"github.com/lumahq/identity/pkg/slogx"

	_ "github.com/lumahq/identity/api/identity" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	AccountService      *service.AccountService
	UserService         *service.UserService
	OrganisationService *service.OrganisationService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerOrganisations()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Identity & Membership Service API
//	@version		0.1.0
//	@description	Multi-tenant identity API: user registration, login, and
//	@description	organisation membership with ownership-scoped visibility.
//	@description
//	@description				Access tokens are EdDSA-signed JWTs verifiable via the JWKS endpoint.
//
//	@contact.name				Luma Platform Team
//	@contact.url				https://github.com/lumahq/identity
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps a handler in the bearer-token check plus the active-user
// gate. Every route under /api passes through both.
func (r *Router) secured(h http.Handler) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier), // verify JWT (iss/exp)
		RequireActiveUser(r.UserService),  // reject unknown/deactivated accounts
	)
}

func (r *Router) registerAuth() {
	registerHandler := &RegisterHandler{AccountService: r.AccountService}
	loginHandler := &LoginHandler{AccountService: r.AccountService}

	r.Mux.Handle("POST /auth/register", registerHandler)
	r.Mux.Handle("POST /auth/login", loginHandler)

	r.Mux.Handle("GET /.well-known/jwks.json", JWKSHandler(r.keys))
}

func (r *Router) registerUsers() {
	h := &UserDetailHandler{UserService: r.UserService}

	r.Mux.Handle("GET /api/users/{userId}", r.secured(h))
}

func (r *Router) registerOrganisations() {
	h := &OrganisationsHandler{OrganisationService: r.OrganisationService}
	membersHandler := &AddMemberHandler{OrganisationService: r.OrganisationService}

	r.Mux.Handle("GET /api/organisations", r.secured(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("POST /api/organisations", r.secured(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("GET /api/organisations/{orgId}", r.secured(http.HandlerFunc(h.HandleGet)))
	r.Mux.Handle("POST /api/organisations/{orgId}/users", r.secured(membersHandler))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys))
}
