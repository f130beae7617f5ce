package natives

import (
	"sort"
	"strings"
)

// Match ranks, best first.
const (
	rankExact = iota
	rankPrefix
	rankContains
	rankOldName
	rankComment
	noMatch
)

// Result is a single search hit.
type Result struct {
	Native *Native `json:"native"`
	Rank   int     `json:"rank"`
}

var rankNames = [...]string{"exact", "prefix", "contains", "old name", "comment"}

// Match names how the result matched, e.g. "prefix".
func (r Result) Match() string {
	if r.Rank < 0 || r.Rank >= len(rankNames) {
		return ""
	}
	return rankNames[r.Rank]
}

// SearchOptions controls Search.
type SearchOptions struct {
	// Limit caps the number of results. Zero or less means no limit.
	Limit int
	// Comments also matches the query against native comments.
	Comments bool
}

// Search finds natives whose hash, name or previous name matches query.
// Spaces in the query match underscores, so "get player ped" finds
// GET_PLAYER_PED. Results are ordered by rank, then namespace and name.
func (db *Database) Search(query string, opts SearchOptions) []Result {
	q := strings.ToUpper(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var results []Result
	if strings.HasPrefix(q, "0X") {
		for _, n := range db.All() {
			if strings.HasPrefix(strings.ToUpper(n.Hash), q) || strings.HasPrefix(strings.ToUpper(n.JHash), q) {
				rank := rankPrefix
				if strings.EqualFold(n.Hash, q) {
					rank = rankExact
				}
				results = append(results, Result{Native: n, Rank: rank})
			}
		}
	} else {
		q = strings.Join(strings.Fields(q), "_")
		for _, n := range db.All() {
			if rank := matchNative(n, q, opts.Comments); rank != noMatch {
				results = append(results, Result{Native: n, Rank: rank})
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Rank < results[j].Rank
	})

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results
}

func matchNative(n *Native, q string, comments bool) int {
	name := strings.ToUpper(n.DisplayName())
	switch {
	case name == q:
		return rankExact
	case strings.HasPrefix(name, q):
		return rankPrefix
	case strings.Contains(name, q):
		return rankContains
	}

	for _, old := range n.OldNames {
		if strings.Contains(strings.ToUpper(old), q) {
			return rankOldName
		}
	}

	if comments && n.Comment != "" {
		words := strings.ReplaceAll(q, "_", " ")
		if strings.Contains(strings.ToUpper(n.Comment), words) {
			return rankComment
		}
	}

	return noMatch
}
