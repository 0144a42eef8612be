package web

import (
	"time"

	"github.com/gaqzi/star-reviews/internal/platform/display"
	"github.com/gaqzi/star-reviews/internal/rating"
	"github.com/gaqzi/star-reviews/internal/reviewing"
)

// StarCount is one row of the breakdown.
type StarCount struct {
	Stars   int
	Count   int
	Percent int
}

type StatisticsView struct {
	AverageFormatted string
	Total            int
	// PerStar goes from five stars down to one.
	PerStar []StarCount
}

func toStatisticsView(stats reviewing.Statistics) StatisticsView {
	view := StatisticsView{
		AverageFormatted: display.OneDecimal(stats.Average),
		Total:            stats.Total,
		PerStar:          make([]StarCount, 0, reviewing.MaxStars),
	}

	for stars := reviewing.MaxStars; stars >= reviewing.MinStars; stars-- {
		count := stats.Count(stars)
		view.PerStar = append(view.PerStar, StarCount{
			Stars:   stars,
			Count:   count,
			Percent: display.Percent(count, stats.Total),
		})
	}

	return view
}

type ReviewItem struct {
	ID                 string
	Name               string
	Comment            string
	Stars              int
	CreatedAtFormatted string
	StarGlyphs         string
}

func toReviewItem(r reviewing.Review, loc *time.Location) ReviewItem {
	return ReviewItem{
		ID:                 r.ID,
		Name:               r.Name,
		Comment:            r.Comment,
		Stars:              r.Stars,
		CreatedAtFormatted: display.Date(r.CreatedAt, loc),
		StarGlyphs:         display.StarGlyphs(r.Stars),
	}
}

type ReviewListView struct {
	Items []ReviewItem
	Empty bool

	Filter        string
	FilterChoices []int
	Sort          string
	ClearPrompt   string
}

func toReviewListView(reviews []reviewing.Review, filter reviewing.Filter, sort reviewing.Sort, loc *time.Location) ReviewListView {
	items := make([]ReviewItem, 0, len(reviews))
	for _, r := range reviews {
		items = append(items, toReviewItem(r, loc))
	}

	return ReviewListView{
		Items:         items,
		Empty:         len(items) == 0,
		Filter:        filter.String(),
		FilterChoices: []int{5, 4, 3, 2, 1},
		Sort:          string(sort),
		ClearPrompt:   reviewing.ClearAllPrompt,
	}
}

// FormView is what the submission form shows, the star picker defaults to five.
type FormView struct {
	Name    string
	Comment string
	Stars   int
	Choices []int
	Error   string
}

func newFormView() FormView {
	return FormView{Stars: reviewing.MaxStars, Choices: []int{1, 2, 3, 4, 5}}
}

type RatingView struct {
	MyRating         int
	TotalVotes       int
	AverageFormatted string
	Choices          []int
}

func toRatingView(a rating.Aggregate) RatingView {
	return RatingView{
		MyRating:         a.MyRating,
		TotalVotes:       a.TotalVotes,
		AverageFormatted: a.AverageFormatted(),
		Choices:          []int{1, 2, 3, 4, 5},
	}
}
