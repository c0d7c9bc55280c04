package launcher

import (
	"context"
	"strings"

	"lookout/internal/domain"
)

// provider is one row of the dispatch table. A kind sets querySync,
// placeholder+resolve, or both.
type provider struct {
	querySync   func(l *Launcher, query string) ([]*domain.ResultItem, error)
	placeholder func(l *Launcher, query string) (*domain.ResultItem, error)
	resolve     func(ctx context.Context, l *Launcher, query string) (Resolution, error)
}

var providers = map[Kind]provider{
	KindApp: {
		querySync: queryApps,
	},
	KindCommand: {
		querySync: queryCommands,
	},
	KindCalc: {
		querySync: queryCalc,
	},
	KindWeb: {
		placeholder: webPlaceholder,
		resolve:     webResolve,
	},
	KindBulkText: {
		placeholder: bulkTextPlaceholder,
		resolve:     bulkTextResolve,
	},
}

// Kinds returns every supported launcher kind
func Kinds() []Kind {
	return []Kind{KindApp, KindCommand, KindWeb, KindCalc, KindBulkText}
}

func kindList() string {
	names := make([]string, 0, len(providers))
	for _, k := range Kinds() {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}
