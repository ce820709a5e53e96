package state

import (
	"strings"
	"time"

	"github.com/atomicstack/popup-menu/internal/menu"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// TypeAheadTimeout is how long typed characters accumulate into one query.
const TypeAheadTimeout = time.Second

type typeAhead struct {
	query string
	at    time.Time
}

// TypeAhead appends r to the level's query and highlights the best match.
// The query restarts when the previous key is older than TypeAheadTimeout.
// It returns the query and whether the highlight moved.
func (l *Level) TypeAhead(r rune, now time.Time) (string, bool) {
	if l.typeAhead.at.IsZero() || now.Sub(l.typeAhead.at) > TypeAheadTimeout {
		l.typeAhead.query = ""
	}
	l.typeAhead.query += string(r)
	l.typeAhead.at = now

	idx := BestMatchIndex(l.Items, l.typeAhead.query)
	if idx < 0 {
		return l.typeAhead.query, false
	}
	return l.typeAhead.query, l.SetCursor(idx)
}

// ResetTypeAhead drops the pending query.
func (l *Level) ResetTypeAhead() {
	l.typeAhead = typeAhead{}
}

// BestMatchIndex returns the index of the selectable item that best matches
// query, or -1. Exact labels win over prefixes, prefixes over substrings,
// and substrings over fuzzy matches.
func BestMatchIndex(items []*menu.Item, query string) int {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return -1
	}
	lower := strings.ToLower(trimmed)

	candidates := make([]int, 0, len(items))
	labels := make([]string, 0, len(items))
	for i, it := range items {
		if it.Selectable() {
			candidates = append(candidates, i)
			labels = append(labels, it.Label())
		}
	}
	for n, label := range labels {
		if strings.EqualFold(label, trimmed) {
			return candidates[n]
		}
	}
	for n, label := range labels {
		if strings.HasPrefix(strings.ToLower(label), lower) {
			return candidates[n]
		}
	}
	for n, label := range labels {
		if strings.Contains(strings.ToLower(label), lower) {
			return candidates[n]
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return -1
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return candidates[best.OriginalIndex]
}
