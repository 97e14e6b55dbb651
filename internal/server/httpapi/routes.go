// Package httpapi exposes the REST API consumed by the web and CLI clients.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dmitrijs2005/petswap/internal/logging"
)

const (
	apiBasePath        = "/api"
	authBasePath       = "/auth"
	propertiesBasePath = "/properties"
	bookingsBasePath   = "/bookings"
	healthPath         = "/health"
)

const (
	registerSubPath = "/register"
	loginSubPath    = "/login"
	meSubPath       = "/me"
	imagesSubPath   = "/images"
)

const paramID = "id"

const defaultRequestTimeout = 30 * time.Second

// Deps are the collaborators the router dispatches to.
type Deps struct {
	Logger     logging.Logger
	Verifier   TokenVerifier
	Users      UserService
	Properties PropertyService
	Bookings   BookingService

	AllowedOrigins []string
	RequestTimeout time.Duration
	Now            func() time.Time
}

// NewRouter builds the HTTP handler serving the whole API.
func NewRouter(d Deps) http.Handler {
	timeout := d.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	authHandler := NewAuthHandler(d.Users)
	propertyHandler := NewPropertyHandler(d.Properties)
	bookingHandler := NewBookingHandler(d.Bookings)
	healthHandler := NewHealthHandler(d.Now)

	requireAuth := RequireAuth(d.Verifier, d.Logger)
	h := func(fn AppHandler) http.HandlerFunc { return MakeHandler(d.Logger, fn) }

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(d.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(CORS(d.AllowedOrigins))

	r.Route(apiBasePath, func(r chi.Router) {
		r.Get(healthPath, healthHandler.HandleHealth)

		r.Route(authBasePath, func(r chi.Router) {
			r.Post(registerSubPath, h(authHandler.HandleRegister))
			r.Post(loginSubPath, h(authHandler.HandleLogin))
			r.With(requireAuth).Get(meSubPath, h(authHandler.HandleMe))
		})

		r.Route(propertiesBasePath, func(r chi.Router) {
			r.Get("/", h(propertyHandler.HandleList))
			r.Get(pathWithParam("", paramID), h(propertyHandler.HandleGet))
			r.With(requireAuth).Post("/", h(propertyHandler.HandleCreate))
			r.With(requireAuth).Post(pathWithParam("", paramID)+imagesSubPath, h(propertyHandler.HandleCreateImageUpload))
		})

		r.Route(bookingsBasePath, func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", h(bookingHandler.HandleList))
			r.Post("/", h(bookingHandler.HandleCreate))
		})
	})

	return otelhttp.NewHandler(r, "petswap-api")
}

func pathWithParam(basePath string, paramName string) string {
	return basePath + "/{" + paramName + "}"
}
