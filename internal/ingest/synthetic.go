package ingest

import (
	"fmt"
	"strings"
)

// Rand is the random source for synthetic feeds. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

var (
	topics  = []string{"Markets", "Climate", "Elections", "Science", "Transit", "Health", "Energy", "Sports"}
	verbs   = []string{"rally", "stall", "surge", "shift", "slip", "rebound"}
	tiers   = []string{"close", "medium", "far"}
	sources = []string{"wire", "local", "blog"}
)

// Synthetic produces n placeholder articles with stable ids so runs without a
// feed file are still reproducible.
func Synthetic(n int, rng Rand) []Article {
	out := make([]Article, n)
	for i := range out {
		topic := topics[rng.Intn(len(topics))]
		body := strings.Repeat(topic+" ", 20+rng.Intn(400))
		out[i] = Article{
			ID:      fmt.Sprintf("syn-%03d", i),
			Title:   fmt.Sprintf("%s %s", topic, verbs[rng.Intn(len(verbs))]),
			Content: &body,
			Source:  sources[rng.Intn(len(sources))],
			Tier:    tiers[rng.Intn(len(tiers))],
		}
	}
	return out
}
