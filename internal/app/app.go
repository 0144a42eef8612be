package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"

	"github.com/gaqzi/star-reviews/internal/app/web"
	"github.com/gaqzi/star-reviews/internal/rating"
	ratingstorage "github.com/gaqzi/star-reviews/internal/rating/storage"
	"github.com/gaqzi/star-reviews/internal/reviewing"
	reviewstorage "github.com/gaqzi/star-reviews/internal/reviewing/storage"
)

type Server struct {
	Config  Config
	HTTP    *http.Server
	Reviews *reviewing.Service
	Rating  *rating.Service

	closeStore func() error
}

// Stop will shut down the server safely and then release the storage.
func (s *Server) Stop(ctx context.Context) error {
	return errors.Join(s.HTTP.Shutdown(ctx), s.closeStore())
}

// Start wires up the app and starts running it
func Start(ctx context.Context, cfg Config) (*Server, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage, err)
	}

	reviews := reviewing.NewService(reviewstorage.NewKVStore(store, cfg.ReviewsKey))
	reviews.Load(ctx)
	ratings := rating.NewService(ratingstorage.NewKVStore(store, cfg.RatingKey))
	ratings.Load(ctx)

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		_ = closeStore()
		return nil, fmt.Errorf("failed to listen to %q: %w", cfg.Addr, err)
	}
	cfg.Addr = ln.Addr().String() // In case cfg.Addr was random we'll update the config to point to what we ended up using

	logger := httplog.NewLogger("star-reviews", httplog.Options{
		LogLevel: cfg.LogLevel,
		JSON:     cfg.LogJSON,
		Concise:  true,
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(httplog.RequestLogger(logger))

	web.PublicAssets(r)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/reviews", http.StatusFound)
	})
	r.Route("/reviews", web.ReviewsHandler(reviews, loc))
	r.Route("/rating", web.RatingHandler(ratings))

	server := http.Server{Handler: r}
	server.BaseContext = func(_ net.Listener) context.Context { return ctx }

	go (func() {
		_ = server.Serve(ln)
	})()

	return &Server{
		Config:     cfg,
		HTTP:       &server,
		Reviews:    reviews,
		Rating:     ratings,
		closeStore: closeStore,
	}, nil
}
