package demos

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/2beens/gymdemos/internal/demos/assets"
	"github.com/2beens/gymdemos/internal/telemetry/tracing"
	"github.com/2beens/gymdemos/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	resolver *Resolver
	admin    *Admin
	refs     localRefs
}

func NewHandler(resolver *Resolver, admin *Admin, refs localRefs) *Handler {
	return &Handler{
		resolver: resolver,
		admin:    admin,
		refs:     refs,
	}
}

// SetupRoutes registers the demo routes; adminOnly guards the destructive ones.
// The router must use encoded paths, exercise names may contain a slash.
func (handler *Handler) SetupRoutes(mainRouter *mux.Router, adminOnly mux.MiddlewareFunc) {
	mainRouter.HandleFunc("/demos/{exercise}", handler.HandleResolve).Methods("GET").Name("resolve-demo")
	mainRouter.HandleFunc("/demos/{exercise}/cached", handler.HandleIsCached).Methods("GET").Name("demo-cached")
	mainRouter.HandleFunc("/media/{ref}", handler.HandleGetMedia).Methods("GET").Name("get-media")
	mainRouter.HandleFunc("/media/{ref}", handler.HandleReleaseMedia).Methods("DELETE").Name("release-media")
	mainRouter.HandleFunc("/cache/stats", handler.HandleStats).Methods("GET").Name("cache-stats")
	mainRouter.Handle("/cache", adminOnly(http.HandlerFunc(handler.HandleClearAll))).Methods("DELETE").Name("clear-cache")
}

func (handler *Handler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.demos.resolve")
	defer span.End()

	exercise, err := exerciseVar(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid exercise")
		return
	}
	if exercise == "" {
		writeJSONError(w, http.StatusBadRequest, "exercise empty")
		return
	}

	result, err := handler.resolver.Resolve(ctx, exercise)
	if err != nil {
		log.Warnf("resolve demo [%s]: %s", exercise, err)
		writeJSONError(w, http.StatusServiceUnavailable, "request cancelled")
		return
	}
	if result == nil {
		writeJSONError(w, http.StatusNotFound, "no demo")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (handler *Handler) HandleIsCached(w http.ResponseWriter, r *http.Request) {
	exercise, err := exerciseVar(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid exercise")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{
		"cached": handler.resolver.IsCached(r.Context(), exercise),
	})
}

func (handler *Handler) HandleGetMedia(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.demos.media")
	defer span.End()

	refID := mux.Vars(r)["ref"]
	asset, err := handler.refs.Open(ctx, refID)
	if err != nil {
		if errors.Is(err, assets.ErrRefNotFound) {
			log.Tracef("get media [%s]: %s", refID, err)
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		log.Errorf("get media [%s]: %s", refID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Length", strconv.Itoa(len(asset.Data)))
	w.Header().Set("Cache-Control", "private, max-age=3600")
	pkg.WriteResponseBytes(w, asset.ContentType, asset.Data)
}

func (handler *Handler) HandleReleaseMedia(w http.ResponseWriter, r *http.Request) {
	refID := mux.Vars(r)["ref"]
	if err := handler.refs.Release(refID); err != nil {
		if errors.Is(err, assets.ErrRefNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		log.Errorf("release media [%s]: %s", refID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (handler *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, handler.admin.Stats(r.Context()))
}

func (handler *Handler) HandleClearAll(w http.ResponseWriter, r *http.Request) {
	if err := handler.admin.ClearAll(r.Context()); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "clear partially failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func exerciseVar(r *http.Request) (string, error) {
	return url.PathUnescape(mux.Vars(r)["exercise"])
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	respBytes, err := json.Marshal(v)
	if err != nil {
		log.Errorf("marshal response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", pkg.ContentType.JSON)
	w.WriteHeader(status)
	pkg.WriteResponseBytes(w, "", respBytes)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
