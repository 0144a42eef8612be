//go:build ruleguard
// +build ruleguard

package ruleguard

import (
	"github.com/quasilyte/go-ruleguard/dsl"
)

func domainObjectsInTemplates(m dsl.Matcher) {
	m.Import("github.com/gaqzi/star-reviews/internal/reviewing")
	m.Import("github.com/gaqzi/star-reviews/internal/rating")

	// Templates only get view-models so a rename in the domain shows up as a compile error
	// in viewmodels.go and not as a blank spot on the page.
	//
	// To work on this use ruleguard directly: ruleguard -rules ruleguard/rules-dont-pass-domain-objects-to-templates.go ./internal/app/web/...
	m.Match(`$r.page($w, $status, $name, $data)`, `$p.AddData($key, $data)`).
		Where(m["data"].Type.Is(`reviewing.Review`) ||
			m["data"].Type.Is(`[]reviewing.Review`) ||
			m["data"].Type.Is(`reviewing.Statistics`) ||
			m["data"].Type.Is(`rating.Aggregate`)).
		Report(`rendering a domain object directly, convert it in viewmodels.go first`)

	m.Match(`map[string]any{$*_, $key: $val, $*_}`).
		Where(m["val"].Type.Is(`reviewing.Review`) || m["val"].Type.Is(`rating.Aggregate`)).
		Report(`passing a domain object into template data. Use: toReviewItem($val) or toRatingView($val)`)
}
