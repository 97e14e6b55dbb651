package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/petswap/internal/common"
	"github.com/dmitrijs2005/petswap/internal/logging"
)

// AppHandler is a handler that reports failures by returning an error.
type AppHandler func(w http.ResponseWriter, r *http.Request) error

// MakeHandler adapts an AppHandler to http.HandlerFunc. Returned errors are
// translated into a status code and a {"error": message} body; causes of
// server-side failures are logged and never sent to the caller.
func MakeHandler(log logging.Logger, handler AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := handler(w, r)
		if err == nil {
			return
		}

		httpErr := toHTTPError(err)

		ctx := r.Context()
		attrs := []any{"code", httpErr.Code, "path", r.URL.Path, "method", r.Method}
		if httpErr.Code >= http.StatusInternalServerError {
			log.Error(ctx, "request failed", append(attrs, "error", err)...)
		} else {
			log.Debug(ctx, "client error response", append(attrs, "error", err)...)
		}

		RespondWithError(w, httpErr.Code, httpErr.Message)
	}
}

func toHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	var validation *common.ValidationError

	switch {
	case errors.As(err, &httpErr):
		return httpErr
	case errors.As(err, &validation):
		return NewHTTPErrorWrap(http.StatusBadRequest, validation.Message, err)
	case errors.Is(err, common.ErrInvalidCredentials):
		return NewHTTPErrorWrap(http.StatusUnauthorized, msgBadCredentials, err)
	case errors.Is(err, common.ErrUnauthenticated):
		return NewHTTPErrorWrap(http.StatusUnauthorized, msgInvalidToken, err)
	case errors.Is(err, common.ErrConflict):
		return NewHTTPErrorWrap(http.StatusBadRequest, msgEmailExists, err)
	case errors.Is(err, common.ErrNotFound):
		return NewHTTPErrorWrap(http.StatusNotFound, msgNotFound, err)
	case errors.Is(err, common.ErrForbidden):
		return NewHTTPErrorWrap(http.StatusForbidden, msgForbidden, err)
	default:
		return NewHTTPErrorWrap(http.StatusInternalServerError, msgInternalServer, err)
	}
}
