package api

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"go.hackfix.me/hexo/store"
)

// Handler is the shard endpoint handler.
type Handler struct {
	store  store.Store
	logger *slog.Logger
	now    func() time.Time
}

// Router returns the router serving the shard wire protocol.
func Router(st store.Store, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))
	// Values travel in the query string, so this only bounds stray bodies.
	r.Use(middleware.RequestSize(1 << 20))

	h := Handler{store: st, logger: logger, now: time.Now}
	r.Get("/set", h.StoreSet)
	r.Get("/delete", h.StoreDelete)
	r.Get("/fetch", h.StoreFetch)
	r.Get("/fetchall", h.StoreFetchAll)
	r.Get("/latency", h.Latency)

	return r
}
