// Package ingest turns news articles into bodies for a world.
package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/san-kum/newsorbit/internal/dynamo"
	"github.com/san-kum/newsorbit/internal/placement"
	"github.com/san-kum/newsorbit/internal/sim"
)

var ErrDecode = errors.New("ingest: cannot decode articles")

// Article is one news item as it arrives from a feed.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     *string   `json:"content,omitempty"`
	URL         string    `json:"url,omitempty"`
	Source      string    `json:"source,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
	// Tier is "close", "medium" or "far". Anything else is treated as medium.
	Tier string   `json:"tier,omitempty"`
	Mass *float64 `json:"mass,omitempty"`
}

type feed struct {
	Articles []Article `json:"articles"`
}

// Decode reads either a bare JSON array of articles or an object with an
// "articles" field. Articles without an id get a random one.
func Decode(r io.Reader) ([]Article, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	var articles []Article
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &articles)
	} else {
		var f feed
		err = json.Unmarshal(trimmed, &f)
		articles = f.Articles
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	for i := range articles {
		if strings.TrimSpace(articles[i].ID) == "" {
			articles[i].ID = uuid.NewString()
		}
	}
	return articles, nil
}

func LoadFile(path string) ([]Article, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// SizeHint is the rune count of the content, or of the title when there is
// no content.
func (a Article) SizeHint() int {
	if a.Content != nil {
		return utf8.RuneCountInString(*a.Content)
	}
	return utf8.RuneCountInString(a.Title)
}

func (a Article) Spec() placement.Spec {
	mass := float64(dynamo.DefaultBodyMass)
	if a.Mass != nil && *a.Mass > 0 {
		mass = *a.Mass
	}
	return placement.Spec{
		ID:       a.ID,
		Name:     a.Title,
		Tier:     dynamo.ParseTier(a.Tier),
		SizeHint: a.SizeHint(),
		Mass:     mass,
		Payload:  a,
	}
}

// Populate places every article around the world's anchor and adds it. An
// article that cannot be added is skipped; the failures are joined into the
// returned error. A world without an anchor gets nothing.
func Populate(w *sim.World, articles []Article, placer *placement.Placer) (int, error) {
	anchor := w.Anchor()
	if anchor == nil {
		return 0, dynamo.ErrNoAnchor
	}
	added := 0
	var errs []error
	for _, a := range articles {
		if err := w.Add(placer.Place(a.Spec(), anchor)); err != nil {
			errs = append(errs, fmt.Errorf("article %q: %w", a.ID, err))
			continue
		}
		added++
	}
	return added, errors.Join(errs...)
}
