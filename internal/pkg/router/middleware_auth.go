package router

import (
	"net/http"
	"strings"

	"github.com/comfinserv/taxdesk/internal/pkg/jwt"
)

func middlewareAuthentication(verifier jwt.JWT, publicEndpoints map[string]map[string]struct{}) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := matchedRoutePath(r)

			public := false
			if s, ok := publicEndpoints[r.Method]; ok {
				_, public = s[path]
			}

			p := strings.Fields(r.Header.Get("Authorization"))
			if len(p) != 2 || !strings.EqualFold(p[0], "Bearer") {
				if public {
					next.ServeHTTP(w, r)
					return
				}

				writeJSON(w, map[string]string{"message": "Authentication required"}, http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Verify(p[1])
			if err != nil {
				// Public endpoints accept tokens opportunistically, so a bad
				// token degrades to an anonymous request instead of a 401.
				if public {
					next.ServeHTTP(w, r)
					return
				}

				writeJSON(w, map[string]string{"message": "Invalid or expired token"}, http.StatusUnauthorized)
				return
			}

			ctx := jwt.SetAuth(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
