package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/donseba/go-htmx"
	"github.com/donseba/go-partial"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/form/v4"

	"github.com/gaqzi/star-reviews/internal/platform/display"
	"github.com/gaqzi/star-reviews/internal/reviewing"
)

// writeFailedNotice is shown when a change was made but couldn't be persisted.
const writeFailedNotice = "No se pudo guardar el cambio, seguirá visible solo mientras la página esté abierta."

type reviewingService interface {
	// Submit validates and adds a review, see reviewing.Service for the error kinds.
	Submit(ctx context.Context, submission reviewing.Submission) (reviewing.Review, error)
	Delete(ctx context.Context, id string) error
	ClearAll(ctx context.Context, confirmer reviewing.Confirmer) (bool, error)

	SetFilter(f reviewing.Filter)
	SetSort(sort reviewing.Sort)
	View() (reviewing.Filter, reviewing.Sort)
	Statistics() reviewing.Statistics
	Visible() []reviewing.Review
}

type reviewsHandler struct {
	htmx    *htmx.HTMX
	decoder *form.Decoder
	service reviewingService
	loc     *time.Location
	render  renderer
}

// ReviewsHandler serves the review widget. Dates are shown in loc.
func ReviewsHandler(service reviewingService, loc *time.Location) func(chi.Router) {
	if loc == nil {
		loc = time.Local
	}

	app := reviewsHandler{
		htmx:    htmx.New(),
		decoder: form.NewDecoder(),
		service: service,
		loc:     loc,
		render:  newRenderer(),
	}

	return func(r chi.Router) {
		r.Get("/", app.Index)
		r.Post("/", app.Create)
		r.Get("/list", app.List)
		r.Post("/clear", app.Clear)

		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", app.Delete)
			r.Post("/delete", app.Delete)
		})
	}
}

type ReviewForm struct {
	Name    string `form:"name"`
	Comment string `form:"comment"`
	Stars   int    `form:"stars"`
}

type ViewForm struct {
	Filter string `form:"filter"`
	Sort   string `form:"sort"`
}

type ClearForm struct {
	Confirmed bool `form:"confirmed"`
}

type reviewsPage struct {
	Title  string
	Notice string
	Form   FormView
	Stats  StatisticsView
	List   ReviewListView
}

// formConfirmer answers with what the browser already asked the user before posting.
type formConfirmer struct {
	confirmed bool
}

func (c formConfirmer) Confirm(_ context.Context, prompt string) bool {
	slog.Debug("clear all confirmation", "prompt", prompt, "confirmed", c.confirmed)
	return c.confirmed
}

func (a *reviewsHandler) Index(w http.ResponseWriter, r *http.Request) {
	a.respond(w, r, http.StatusOK, a.pageData(newFormView(), ""))
}

func (a *reviewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	h := a.htmx.NewHandler(w, r)

	var input ReviewForm
	if !a.decode(h, r, &input) {
		return
	}

	formView := newFormView()
	_, err := a.service.Submit(r.Context(), reviewing.Submission{
		Name:    input.Name,
		Comment: input.Comment,
		Stars:   input.Stars,
	})

	var validationErr *reviewing.ValidationError
	var writeErr *reviewing.WriteError
	switch {
	case errors.As(err, &validationErr):
		formView.Name = input.Name
		formView.Comment = input.Comment
		formView.Stars = display.Clamp(input.Stars, reviewing.MinStars, reviewing.MaxStars)
		formView.Error = validationErr.Message()
		a.respond(w, r, http.StatusUnprocessableEntity, a.pageData(formView, ""))
		return
	case errors.As(err, &writeErr):
		slog.Error("review added but not persisted", "error", err)
		a.respond(w, r, http.StatusOK, a.pageData(formView, writeFailedNotice))
		return
	case err != nil:
		slog.Error("failed to submit review", "error", err)
		h.WriteHeader(http.StatusInternalServerError)
		h.JustWriteString("failed to submit review")
		return
	}

	a.respond(w, r, http.StatusOK, a.pageData(formView, ""))
}

func (a *reviewsHandler) List(w http.ResponseWriter, r *http.Request) {
	h := a.htmx.NewHandler(w, r)

	var input ViewForm
	if !a.decode(h, r, &input) {
		return
	}

	filter, err := reviewing.ParseFilter(input.Filter)
	if err != nil {
		h.WriteHeader(http.StatusBadRequest)
		h.JustWriteString(display.Escape(err.Error()))
		return
	}
	sort, err := reviewing.ParseSort(input.Sort)
	if err != nil {
		h.WriteHeader(http.StatusBadRequest)
		h.JustWriteString(display.Escape(err.Error()))
		return
	}

	a.service.SetFilter(filter)
	a.service.SetSort(sort)

	if !h.IsHxRequest() {
		http.Redirect(w, r, "/reviews", http.StatusSeeOther)
		return
	}

	list := partial.NewID("reviews-list", withCommon("reviews/_list.html", "_reviews.html")...).
		AddData("List", a.listView())
	if err := a.render.fragment(w, r, list); err != nil {
		slog.Error("failed to render partial reviews/_list.html", "error", err)
		http.Error(w, "failed to render", http.StatusInternalServerError)
	}
}

func (a *reviewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	notice := ""
	if err := a.service.Delete(r.Context(), id); err != nil {
		slog.Error("review deleted but not persisted", "id", id, "error", err)
		notice = writeFailedNotice
	}

	a.respond(w, r, http.StatusOK, a.pageData(newFormView(), notice))
}

func (a *reviewsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h := a.htmx.NewHandler(w, r)

	var input ClearForm
	if !a.decode(h, r, &input) {
		return
	}

	notice := ""
	cleared, err := a.service.ClearAll(r.Context(), formConfirmer{confirmed: input.Confirmed})
	if err != nil {
		slog.Error("reviews cleared but not persisted", "error", err)
		notice = writeFailedNotice
	}
	slog.Info("clear all reviews", "cleared", cleared)

	a.respond(w, r, http.StatusOK, a.pageData(newFormView(), notice))
}

// decode parses the request form into dst and answers the request itself when that fails.
func (a *reviewsHandler) decode(h *htmx.Handler, r *http.Request, dst any) bool {
	if err := r.ParseForm(); err != nil {
		slog.Error("failed to parse form", "error", err)
		h.WriteHeader(http.StatusBadRequest)
		return false
	}

	if err := a.decoder.Decode(dst, r.Form); err != nil {
		slog.Info("failed to decode form", "error", err)
		h.WriteHeader(http.StatusBadRequest)
		h.JustWriteString(display.Escape(err.Error()))
		return false
	}

	return true
}

func (a *reviewsHandler) listView() ReviewListView {
	filter, sort := a.service.View()
	return toReviewListView(a.service.Visible(), filter, sort, a.loc)
}

func (a *reviewsHandler) pageData(formView FormView, notice string) reviewsPage {
	return reviewsPage{
		Title:  "Reseñas del hotel",
		Notice: notice,
		Form:   formView,
		Stats:  toStatisticsView(a.service.Statistics()),
		List:   a.listView(),
	}
}

// respond swaps the widget for htmx requests. Plain form posts are redirected back to the page
// unless there's something to tell the user.
func (a *reviewsHandler) respond(w http.ResponseWriter, r *http.Request, status int, data reviewsPage) {
	h := a.htmx.NewHandler(w, r)

	var err error
	switch {
	case h.IsHxRequest():
		// htmx doesn't swap error responses unless configured to, so the widget always comes back as a 200.
		err = a.render.fragment(w, r, data.widget())
	case r.Method != http.MethodGet && status == http.StatusOK && data.Notice == "":
		http.Redirect(w, r, "/reviews", http.StatusSeeOther)
		return
	default:
		err = a.render.page(w, status, "reviews/index.html", data)
	}

	if err != nil {
		slog.Error("failed to render page", "page", "reviews/index", "hx", h.IsHxRequest(), "error", err)
		http.Error(w, "failed to render", http.StatusInternalServerError)
	}
}

func (p reviewsPage) widget() *partial.Partial {
	return partial.NewID("reviews-widget", withCommon("reviews/_widget.html", "_reviews.html")...).
		AddData("Notice", p.Notice).
		AddData("Form", p.Form).
		AddData("Stats", p.Stats).
		AddData("List", p.List)
}
