package media

import (
	"fmt"
	"net/url"
	"strings"
)

type Category string

const (
	CategoryCalm     Category = "Calm"
	CategoryFocus    Category = "Focus"
	CategoryEnergize Category = "Energize"
	CategorySleep    Category = "Sleep"
	CategoryNature   Category = "Nature"
)

var Categories = []Category{CategoryCalm, CategoryFocus, CategoryEnergize, CategorySleep, CategoryNature}

func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown music category %q", s)
}

type Kind string

const (
	KindVideo    Kind = "video"
	KindPlaylist Kind = "playlist"
)

// Duration filter steps offered in the music hub.
const (
	FilterStep    = 15
	FilterMaximum = 120
)

type Item struct {
	ID       string
	Title    string
	Category Category
	Minutes  int
	Provider string
	Kind     Kind
}

func (i Item) EmbedURL() string { return EmbedURL(i.ID, i.Kind) }

var catalog = []Item{
	{ID: "5qap5aO4i9A", Title: "lofi hip hop radio - beats to relax/study to", Category: CategoryFocus, Minutes: 120, Provider: "YouTube", Kind: KindVideo},
	{ID: "DWcJFNfaw9c", Title: "Peaceful Piano for Calm", Category: CategoryCalm, Minutes: 90, Provider: "YouTube", Kind: KindVideo},
	{ID: "7NOSDKb0HlU", Title: "Nature Sounds - Rain & Thunder", Category: CategoryNature, Minutes: 120, Provider: "YouTube", Kind: KindVideo},
	{ID: "p50rHU2mF2E", Title: "Deep Sleep Music", Category: CategorySleep, Minutes: 180, Provider: "YouTube", Kind: KindVideo},
	{ID: "PLPqKQF2LzV74Yv1Yx8RJWb1x1oP8Wgx8C", Title: "Focus Flow - Instrumental", Category: CategoryFocus, Minutes: 60, Provider: "YouTube", Kind: KindPlaylist},
	{ID: "PLcIcQ3b8qG2p5C7yNfVqfXk0pX8c5r4f1", Title: "Uplift & Energize", Category: CategoryEnergize, Minutes: 45, Provider: "YouTube", Kind: KindPlaylist},
}

// Catalog returns a copy of the curated list.
func Catalog() []Item {
	out := make([]Item, len(catalog))
	copy(out, catalog)
	return out
}

// Filter returns the curated items in category that run at least
// minMinutes. A minMinutes of 0 or less matches any length.
func Filter(category Category, minMinutes int) []Item {
	var out []Item
	for _, it := range catalog {
		if it.Category != category {
			continue
		}
		if minMinutes > 0 && it.Minutes < minMinutes {
			continue
		}
		out = append(out, it)
	}
	return out
}

// EmbedURL builds the privacy-friendly embed reference for an item.
func EmbedURL(id string, kind Kind) string {
	if kind == KindPlaylist {
		return "https://www.youtube.com/embed/videoseries?list=" + url.QueryEscape(id)
	}
	return "https://www.youtube.com/embed/" + url.PathEscape(id) + "?rel=0"
}

// NextFilter steps the minimum duration filter by delta steps, wrapping
// inside 0..FilterMaximum.
func NextFilter(current, delta int) int {
	n := FilterMaximum/FilterStep + 1
	idx := (current/FilterStep + delta) % n
	if idx < 0 {
		idx += n
	}
	return idx * FilterStep
}
