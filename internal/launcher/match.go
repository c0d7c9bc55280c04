package launcher

import (
	"sort"

	"github.com/sahilm/fuzzy"
)

// ranked is a matched entry and its position in the ranking
type ranked struct {
	key  string
	data AppData
	rank int
}

// rankApps matches query against each entry's search string. An empty
// query keeps every entry in key order.
func rankApps(query string, apps map[string]AppData) []ranked {
	keys := make([]string, 0, len(apps))
	for k := range apps {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if query == "" {
		out := make([]ranked, len(keys))
		for i, k := range keys {
			out[i] = ranked{key: k, data: apps[k], rank: i}
		}
		return out
	}

	haystack := make([]string, len(keys))
	for i, k := range keys {
		s := apps[k].SearchString
		if s == "" {
			s = k
		}
		haystack[i] = s
	}

	matches := fuzzy.Find(query, haystack)
	out := make([]ranked, len(matches))
	for i, m := range matches {
		k := keys[m.Index]
		out[i] = ranked{key: k, data: apps[k], rank: i}
	}
	return out
}

// itemPriority keeps a launcher's items inside [base, base+1)
func itemPriority(base int, rank, total int) float64 {
	return float64(base) + float64(rank)/float64(total+1)
}
