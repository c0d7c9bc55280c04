package launcher

import (
	"lookout/internal/domain"
	lkerrors "lookout/internal/errors"
)

func queryApps(l *Launcher, query string) ([]*domain.ResultItem, error) {
	return queryEntries(l, query, string(KindApp))
}

func queryCommands(l *Launcher, query string) ([]*domain.ResultItem, error) {
	return queryEntries(l, query, string(KindCommand))
}

// queryEntries serves both app and command launchers; they differ only in
// the method attribute the executor dispatches on.
func queryEntries(l *Launcher, query, method string) ([]*domain.ResultItem, error) {
	if len(l.Apps) == 0 {
		return nil, lkerrors.ErrNoMatch
	}
	matches := rankApps(query, l.Apps)
	items := make([]*domain.ResultItem, 0, len(matches))
	for _, m := range matches {
		attrs := domain.NewAttributes(
			"method", method,
			"exec", m.data.Exec,
			"name", m.key,
		)
		items = append(items, l.newItem(
			itemPriority(l.Priority, m.rank, len(matches)),
			m.key, "", m.data.Icon, attrs,
		))
	}
	return items, nil
}
