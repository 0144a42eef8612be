package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/donseba/go-htmx"
	"github.com/donseba/go-partial"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/form/v4"

	"github.com/gaqzi/star-reviews/internal/platform/display"
	"github.com/gaqzi/star-reviews/internal/rating"
)

type ratingService interface {
	Current() rating.Aggregate
	CastVote(ctx context.Context, value int) (rating.Aggregate, error)
	Reset(ctx context.Context) (rating.Aggregate, error)
}

type ratingHandler struct {
	htmx    *htmx.HTMX
	decoder *form.Decoder
	service ratingService
	render  renderer
}

func RatingHandler(service ratingService) func(chi.Router) {
	app := ratingHandler{
		htmx:    htmx.New(),
		decoder: form.NewDecoder(),
		service: service,
		render:  newRenderer(),
	}

	return func(r chi.Router) {
		r.Get("/", app.Index)
		r.Post("/votes", app.Vote)
		r.Post("/reset", app.Reset)
	}
}

type VoteForm struct {
	Value int `form:"value"`
}

type ratingPage struct {
	Title  string
	Notice string
	Rating RatingView
}

func (a *ratingHandler) Index(w http.ResponseWriter, r *http.Request) {
	a.respond(w, r, http.StatusOK, a.service.Current(), "")
}

func (a *ratingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	h := a.htmx.NewHandler(w, r)

	if err := r.ParseForm(); err != nil {
		slog.Error("failed to parse form", "error", err)
		h.WriteHeader(http.StatusBadRequest)
		return
	}

	var input VoteForm
	if err := a.decoder.Decode(&input, r.Form); err != nil {
		slog.Info("failed to decode vote form", "error", err)
		h.WriteHeader(http.StatusBadRequest)
		h.JustWriteString(display.Escape(err.Error()))
		return
	}

	aggregate, err := a.service.CastVote(r.Context(), input.Value)

	var invalidErr *rating.InvalidVoteError
	var writeErr *rating.WriteError
	switch {
	case errors.As(err, &invalidErr):
		a.respond(w, r, http.StatusUnprocessableEntity, aggregate,
			fmt.Sprintf("Elige entre %d y %d estrellas.", rating.MinVote, rating.MaxVote))
	case errors.As(err, &writeErr):
		slog.Error("vote counted but not persisted", "error", err)
		a.respond(w, r, http.StatusOK, aggregate, writeFailedNotice)
	case err != nil:
		slog.Error("failed to cast vote", "error", err)
		h.WriteHeader(http.StatusInternalServerError)
		h.JustWriteString("failed to cast vote")
	default:
		a.respond(w, r, http.StatusOK, aggregate, "")
	}
}

func (a *ratingHandler) Reset(w http.ResponseWriter, r *http.Request) {
	aggregate, err := a.service.Reset(r.Context())
	if err != nil {
		slog.Error("failed to reset rating", "error", err)
		a.respond(w, r, http.StatusOK, aggregate, writeFailedNotice)
		return
	}

	a.respond(w, r, http.StatusOK, aggregate, "")
}

func (a *ratingHandler) respond(w http.ResponseWriter, r *http.Request, status int, aggregate rating.Aggregate, notice string) {
	h := a.htmx.NewHandler(w, r)
	view := toRatingView(aggregate)

	var err error
	switch {
	case h.IsHxRequest():
		widget := partial.NewID("rating-widget", withCommon("rating/_widget.html", "_rating.html")...).
			AddData("Notice", notice).
			AddData("Rating", view)
		err = a.render.fragment(w, r, widget)
	case r.Method != http.MethodGet && status == http.StatusOK && notice == "":
		http.Redirect(w, r, "/rating", http.StatusSeeOther)
		return
	default:
		err = a.render.page(w, status, "rating/index.html", ratingPage{Title: "Califica este lugar", Notice: notice, Rating: view})
	}

	if err != nil {
		slog.Error("failed to render page", "page", "rating/index", "hx", h.IsHxRequest(), "error", err)
		http.Error(w, "failed to render", http.StatusInternalServerError)
	}
}
