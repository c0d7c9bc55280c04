package launcher

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"lookout/internal/domain"
)

var engines = map[string]string{
	"google":     "https://www.google.com/search?q={keyword}",
	"duckduckgo": "https://duckduckgo.com/?q={keyword}",
	"bing":       "https://www.bing.com/search?q={keyword}",
	"startpage":  "https://www.startpage.com/do/dsearch?query={keyword}",
	"wikipedia":  "https://en.wikipedia.org/w/index.php?search={keyword}",
}

// SearchURL builds the URL for engine, which is either a known engine name
// or a template containing {keyword}.
func SearchURL(engine, keyword string) string {
	tmpl, ok := engines[strings.ToLower(engine)]
	if !ok {
		tmpl = engine
	}
	return strings.ReplaceAll(tmpl, "{keyword}", url.QueryEscape(keyword))
}

func webPlaceholder(l *Launcher, query string) (*domain.ResultItem, error) {
	attrs := domain.NewAttributes(
		"method", string(KindWeb),
		"engine", l.Web.Engine,
	)
	return l.newItem(float64(l.Priority), l.Name, "Searching…", l.Web.Icon, attrs), nil
}

func webResolve(ctx context.Context, l *Launcher, query string) (Resolution, error) {
	if err := ctx.Err(); err != nil {
		return Resolution{}, err
	}
	body := fmt.Sprintf("Search %s", l.Name)
	if query != "" {
		body = fmt.Sprintf("Search %s for %q", l.Name, query)
	}
	return Resolution{
		Title: l.Name,
		Body:  body,
		Attributes: domain.NewAttributes(
			"url", SearchURL(l.Web.Engine, query),
			"keyword", query,
		),
	}, nil
}
