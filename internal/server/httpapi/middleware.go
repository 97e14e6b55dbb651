package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dmitrijs2005/petswap/internal/common"
	"github.com/dmitrijs2005/petswap/internal/logging"
	"github.com/dmitrijs2005/petswap/internal/server/auth"
)

// DefaultAllowedOrigins are always accepted by the CORS middleware.
var DefaultAllowedOrigins = []string{
	"https://petswap-web.onrender.com",
	"http://localhost:5173",
	"http://localhost:3000",
}

// TokenVerifier resolves a bearer token to the user id it was issued for.
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// RequireAuth rejects requests without a valid bearer token and attaches the
// authenticated user id to the request context otherwise.
func RequireAuth(verifier TokenVerifier, log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get(common.HeaderAuthorization))
			if !ok {
				RespondWithError(w, http.StatusUnauthorized, msgNoToken)
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				log.Warn(r.Context(), "bearer token rejected",
					"reason", rejectReason(err),
					"path", r.URL.Path,
					"remote", r.RemoteAddr,
				)
				RespondWithError(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return "expired"
	case errors.Is(err, auth.ErrTokenSignature):
		return "signature"
	case errors.Is(err, auth.ErrTokenMalformed):
		return "malformed"
	default:
		return "unknown"
	}
}

// RequestLogger logs one line per request once the response is written.
func RequestLogger(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.Info(r.Context(), "request",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}

// CORS allows the built-in origins plus extra with credentials.
func CORS(extra []string) func(http.Handler) http.Handler {
	origins := make([]string, 0, len(DefaultAllowedOrigins)+len(extra))
	origins = append(origins, DefaultAllowedOrigins...)
	for _, o := range extra {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", common.HeaderAuthorization, HeaderContentType},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
