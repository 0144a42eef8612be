package reviewing

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
)

// Filter selects reviews by their exact star value, FilterAll shows everything.
type Filter int

const FilterAll Filter = 0

// ParseFilter understands "all" (or blank) and "1" through "5".
func ParseFilter(s string) (Filter, error) {
	if s == "" || s == "all" {
		return FilterAll, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < MinStars || n > MaxStars {
		return FilterAll, fmt.Errorf("unknown star filter: %q", s)
	}

	return Filter(n), nil
}

func (f Filter) String() string {
	if f == FilterAll {
		return "all"
	}

	return strconv.Itoa(int(f))
}

type Sort string

const (
	SortNewest  Sort = "newest"
	SortHighest Sort = "highest"
)

func ParseSort(s string) (Sort, error) {
	switch Sort(s) {
	case "", SortNewest:
		return SortNewest, nil
	case SortHighest:
		return SortHighest, nil
	default:
		return SortNewest, fmt.Errorf("unknown sort: %q", s)
	}
}

type Statistics struct {
	Total   int
	Average float64
	// Counts holds the number of reviews per clamped star value, index 0 is one star.
	Counts [MaxStars]int
}

// Count returns how many reviews have the star value.
func (s Statistics) Count(stars int) int {
	if stars < MinStars || stars > MaxStars {
		return 0
	}

	return s.Counts[stars-1]
}

// Collection is the reviews aggregate, the most recently submitted review first.
// All changes return a new Collection and leave the receiver untouched.
type Collection struct {
	reviews []Review
}

func NewCollection(reviews []Review) Collection {
	return Collection{reviews: slices.Clone(reviews)}
}

// All returns the reviews in storage order, never nil so an empty collection is stored as an empty list.
func (c Collection) All() []Review {
	return append(make([]Review, 0, len(c.reviews)), c.reviews...)
}

func (c Collection) Len() int {
	return len(c.reviews)
}

// Add puts the review first.
func (c Collection) Add(r Review) Collection {
	c.reviews = append([]Review{r}, c.reviews...)

	return c
}

// Remove drops the review with the id, an unknown id leaves the collection as it was.
func (c Collection) Remove(id string) Collection {
	c.reviews = slices.DeleteFunc(slices.Clone(c.reviews), func(r Review) bool { return r.ID == id })

	return c
}

func (c Collection) Clear() Collection {
	c.reviews = nil

	return c
}

// Statistics aggregates over the clamped star values. The average is 0 when there are no reviews.
func (c Collection) Statistics() Statistics {
	stats := Statistics{Total: len(c.reviews)}

	var sum int
	for _, r := range c.reviews {
		stars := r.ClampedStars()
		sum += stars
		stats.Counts[stars-1]++
	}

	if stats.Total > 0 {
		stats.Average = float64(sum) / float64(stats.Total)
	}

	return stats
}

// Visible filters and sorts a copy of the reviews.
// The filter compares the raw star value, so a review stored with an out of range
// value only ever shows up under FilterAll even though Statistics counts it as clamped.
func (c Collection) Visible(filter Filter, sort Sort) []Review {
	list := slices.Clone(c.reviews)

	if filter != FilterAll {
		list = slices.DeleteFunc(list, func(r Review) bool { return r.Stars != int(filter) })
	}

	newestFirst := func(a, b Review) int { return b.CreatedAt.Compare(a.CreatedAt) }

	switch sort {
	case SortHighest:
		slices.SortStableFunc(list, func(a, b Review) int {
			return cmp.Or(cmp.Compare(b.Stars, a.Stars), newestFirst(a, b))
		})
	default:
		slices.SortStableFunc(list, newestFirst)
	}

	return list
}
