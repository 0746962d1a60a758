package middleware

import (
	"net/http"

	"github.com/2beens/gymdemos/internal/telemetry/tracing"
	"github.com/2beens/gymdemos/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

const AdminTokenHeader = "X-Admin-Token"

// AdminAuth lets a request through only if its admin token matches the
// bcrypt hash. An empty hash locks the protected routes completely.
func AdminAuth(adminTokenHash string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, span := tracing.GlobalTracer.Start(r.Context(), "middleware.adminAuth")
			defer span.End()

			if adminTokenHash == "" {
				log.Warnf("[admin auth] no admin token hash configured, denying %s %s", r.Method, r.URL.Path)
				http.Error(w, "no can do", http.StatusForbidden)
				span.SetStatus(codes.Error, "admin-disabled")
				return
			}

			authToken := r.Header.Get(AdminTokenHeader)
			if authToken == "" {
				log.Tracef("[missing token] [admin auth] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			if !pkg.CheckTokenHash(authToken, adminTokenHash) {
				reqIP, _ := pkg.ReadUserIP(r)
				log.Warnf("[invalid token] [admin auth] unauthorized %s %s from %s", r.Method, r.URL.Path, reqIP)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "invalid-auth-token")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r)
		})
	}
}
