package transport

import (
	"net/http"

	"github.com/rpggio/rentledger/internal/invocation"
)

// InvocationMiddleware reads X-Invocation-Id, generating one when absent,
// stores it in context and echoes it on the response.
func InvocationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(invocation.Header)
		if id == "" {
			id = invocation.NewID()
		}
		w.Header().Set(invocation.Header, id)
		next.ServeHTTP(w, r.WithContext(invocation.WithID(r.Context(), id)))
	})
}
