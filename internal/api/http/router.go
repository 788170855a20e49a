package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/breathehq/breathe/internal/api/service"
	"github.com/breathehq/breathe/internal/api/store"
	"github.com/breathehq/breathe/pkg/httpx"
	"github.com/breathehq/breathe/pkg/jwtx"
	"github.com/breathehq/breathe/pkg/slogx"

	_ "github.com/breathehq/breathe/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	frontendURL  string
	startTime    time.Time
	logger       *slog.Logger

	store              store.Store
	AccountService     *service.AccountService
	ProfileService     *service.ProfileService
	CustomerService    *service.CustomerService
	SettingsService    *service.SettingsService
	BookmarkService    *service.BookmarkService
	ScreenTimeService  *service.ScreenTimeService
	ImprovementService *service.ImprovementService
	DeviceService      *service.DeviceService
	BillingService     *service.BillingService
	OAuthService       *service.OAuthService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion, frontendURL string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		frontendURL:  frontendURL,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORSMiddleware(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerProfile()
	r.registerCustomer()
	r.registerSettings()
	r.registerActivity()
	r.registerBilling()
	r.registerOAuth()
	r.registerSystem()

	r.Mux.Handle("/explorer/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
//
//	@title			Breathe API
//	@version		1.0.0
//	@description	Backend for the Breathe browser extension and dashboard:
//	@description	accounts, tenant user management, extension settings sync,
//	@description	activity tracking, and Stripe subscription billing.
//
//	@contact.name	Breathe Team
//
//	@host			localhost:5050
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session JWT. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAccounts() {
	signup := &SignupHandler{AccountService: r.AccountService}

	// Signup is also reachable as POST /account-details for older extension
	// builds.
	r.Mux.Handle("POST /signup",
		httpx.Chain(signup, httpx.RateLimitByIP(httpx.StrictLimit)))
	r.Mux.Handle("POST /account-details",
		httpx.Chain(signup, httpx.RateLimitByIP(httpx.StrictLimit)))

	r.Mux.Handle("POST /login",
		httpx.Chain(&LoginHandler{AccountService: r.AccountService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		))

	r.Mux.Handle("POST /company-details/{customerId}",
		httpx.Chain(&CompanyDetailsHandler{AccountService: r.AccountService},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		))

	r.Mux.Handle("PUT /password",
		httpx.Chain(&PasswordHandler{AccountService: r.AccountService},
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.StrictLimit),
		))
}

func (r *Router) registerProfile() {
	r.Mux.Handle("GET /me",
		httpx.Chain(&MeHandler{ProfileService: r.ProfileService},
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		))

	r.Mux.Handle("PUT /account-details",
		httpx.Chain(&AccountDetailsHandler{ProfileService: r.ProfileService},
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		))
}

func (r *Router) registerCustomer() {
	h := &CustomerUsersHandler{CustomerService: r.CustomerService}

	secured := func(hf http.HandlerFunc) http.Handler {
		return httpx.Chain(hf,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /customer/users", secured(h.HandleList))
	r.Mux.Handle("POST /customer/add-user", secured(h.HandleAdd))
	r.Mux.Handle("PUT /customer/update-user", secured(h.HandleUpdate))
	r.Mux.Handle("POST /customer/delete", secured(h.HandleDelete))
}

func (r *Router) registerSettings() {
	h := &SettingsHandler{SettingsService: r.SettingsService}

	secured := func(hf http.HandlerFunc) http.Handler {
		return httpx.Chain(hf,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /app-settings", secured(h.HandleGetApp))
	r.Mux.Handle("PUT /app-settings", secured(h.HandlePutApp))
	r.Mux.Handle("GET /breaks-settings", secured(h.HandleGetBreaks))
	r.Mux.Handle("PUT /breaks-settings", secured(h.HandlePutBreaks))
	r.Mux.Handle("GET /colors-settings", secured(h.HandleGetColors))
	r.Mux.Handle("PUT /colors-settings", secured(h.HandlePutColors))
	r.Mux.Handle("GET /sounds-settings", secured(h.HandleGetSounds))
	r.Mux.Handle("PUT /sounds-settings", secured(h.HandlePutSounds))
	r.Mux.Handle("GET /colors", secured(h.HandleGetColorList))
}

func (r *Router) registerActivity() {
	secured := func(hf http.HandlerFunc) http.Handler {
		return httpx.Chain(hf,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	bookmarks := &BookmarksHandler{BookmarkService: r.BookmarkService}
	r.Mux.Handle("GET /user/bookmarks", secured(bookmarks.HandleGet))
	r.Mux.Handle("PUT /user/bookmarks", secured(bookmarks.HandlePut))

	screenTime := &ScreenTimeHandler{ScreenTimeService: r.ScreenTimeService}
	r.Mux.Handle("GET /screentime/today", secured(screenTime.HandleToday))
	r.Mux.Handle("PUT /screentime", secured(screenTime.HandlePut))

	breaks := &BreakEventHandler{ImprovementService: r.ImprovementService}
	r.Mux.Handle("POST /browser-extension/event/break", secured(breaks.HandleEvent))
	r.Mux.Handle("GET /browser-extension/analytics", secured(breaks.HandleAnalytics))

	devices := &DevicesHandler{DeviceService: r.DeviceService}
	r.Mux.Handle("POST /user-devices", secured(devices.HandlePost))
}

func (r *Router) registerBilling() {
	h := &BillingHandler{BillingService: r.BillingService}

	secured := func(hf http.HandlerFunc) http.Handler {
		return httpx.Chain(hf,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("POST /create-subscription", secured(h.HandleCreateSubscription))
	r.Mux.Handle("POST /update-subscription", secured(h.HandleUpdateSubscription))
	r.Mux.Handle("POST /cancel-subscription", secured(h.HandleCancelSubscription))

	// Authenticated by signature, not by session token.
	r.Mux.Handle("POST /stripe-webhook",
		httpx.Chain(http.HandlerFunc(h.HandleWebhook),
			httpx.RateLimitByIP(httpx.LenientLimit),
		))
}

func (r *Router) registerOAuth() {
	h := &OAuthHandler{OAuthService: r.OAuthService, FrontendURL: r.frontendURL}

	// Callback first: the literal segment wins over {provider}.
	r.Mux.Handle("GET /thirdparty/google/callback",
		httpx.Chain(http.HandlerFunc(h.HandleGoogleCallback),
			httpx.RateLimitByIP(httpx.StrictLimit),
		))
	r.Mux.Handle("GET /thirdparty/{provider}",
		httpx.Chain(http.HandlerFunc(h.HandleProvider),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /", RootHandler())
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store.Ping))
}
