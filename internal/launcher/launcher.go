// Package launcher describes result sources.
//
// Every source is a Launcher value tagged with a Kind; the kind selects an
// entry in a shared dispatch table for synchronous queries, asynchronous
// placeholders and their deferred resolution.
package launcher

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"lookout/internal/domain"
	lkerrors "lookout/internal/errors"
)

// Kind discriminates launcher payloads
type Kind string

const (
	KindApp      Kind = "app_launcher"
	KindCommand  Kind = "command"
	KindWeb      Kind = "web_launcher"
	KindCalc     Kind = "calculation"
	KindBulkText Kind = "bulk_text"
)

// AppData is one entry of an app or command launcher
type AppData struct {
	Icon         string `yaml:"icon"`
	Exec         string `yaml:"exec"`
	SearchString string `yaml:"search_string"`
}

// WebData configures a web search launcher
type WebData struct {
	Engine string
	Icon   string
}

// BulkTextData configures a launcher that shows the output of a command
type BulkTextData struct {
	Icon string
	Exec string
	Args []string
}

// Launcher is a registered source of result candidates
type Launcher struct {
	ID       string
	Name     string
	Alias    string
	Kind     Kind
	Priority int

	Async    bool
	Home     bool // shown on the home screen
	OnlyHome bool // shown only on the home screen
	Shortcut bool // items take positional shortcut slots

	Apps     map[string]AppData
	Web      *WebData
	BulkText *BulkTextData

	// Runner executes bulk_text commands; nil uses os/exec
	Runner Runner
}

// Resolution is the final content of an async placeholder
type Resolution struct {
	Title      string
	Body       string
	Attributes *domain.Attributes
}

// Deferred is the pending half of an async query. Await must return
// promptly once ctx is cancelled.
type Deferred interface {
	Await(ctx context.Context) (Resolution, error)
}

// DeferredFunc adapts a function to Deferred
type DeferredFunc func(ctx context.Context) (Resolution, error)

// Await calls f(ctx)
func (f DeferredFunc) Await(ctx context.Context) (Resolution, error) {
	return f(ctx)
}

// ImageSource resolves icon references (see package icons)
type ImageSource interface {
	Load(ref string) (*domain.Image, bool, error)
}

// New validates a launcher and assigns its ID
func New(l Launcher) (*Launcher, error) {
	if l.Name == "" {
		return nil, lkerrors.Configuration("Missing Name", "launcher has no name", nil)
	}
	if _, ok := providers[l.Kind]; !ok {
		return nil, lkerrors.Configuration("Unknown Launcher Type",
			fmt.Sprintf("launcher %q has unsupported type %q (one of %s)", l.Name, l.Kind, kindList()), nil)
	}
	if l.Priority < 0 {
		return nil, lkerrors.Configuration("Invalid Priority",
			fmt.Sprintf("launcher %q has negative priority %d", l.Name, l.Priority), nil)
	}
	switch l.Kind {
	case KindWeb:
		if l.Web == nil || l.Web.Engine == "" {
			return nil, lkerrors.Configuration("Missing Engine",
				fmt.Sprintf("web launcher %q needs an engine", l.Name), nil)
		}
	case KindBulkText:
		if l.BulkText == nil || l.BulkText.Exec == "" {
			return nil, lkerrors.Configuration("Missing Exec",
				fmt.Sprintf("bulk_text launcher %q needs exec", l.Name), nil)
		}
		l.Async = true
	}
	if p := providers[l.Kind]; p.placeholder == nil {
		l.Async = false
	}
	if l.Priority == 0 && l.Alias == "" {
		return nil, lkerrors.Configuration("Unreachable Launcher",
			fmt.Sprintf("launcher %q has priority 0 and no alias", l.Name), nil)
	}
	l.ID = uuid.NewString()
	return &l, nil
}

// Eligible reports whether the launcher takes part in a cycle.
// In the "all" namespace only positive priorities count; in a named
// namespace only the launcher owning that alias does, whatever its priority.
func (l *Launcher) Eligible(mode string, isHome bool) bool {
	var modeOK bool
	if mode == domain.ModeAll {
		modeOK = l.Priority > 0
	} else {
		modeOK = l.Alias != "" && l.Alias == mode
	}
	if !modeOK {
		return false
	}
	return (isHome && l.Home) || (!isHome && !l.OnlyHome)
}

// QuerySync returns this launcher's items for the query
func (l *Launcher) QuerySync(query string) ([]*domain.ResultItem, error) {
	p := providers[l.Kind]
	if p.querySync != nil {
		return p.querySync(l, query)
	}
	// kinds that only know placeholder+resolve are resolved in place
	item, deferred, err := l.QueryAsync(query)
	if err != nil {
		return nil, err
	}
	res, err := deferred.Await(context.Background())
	if err != nil {
		return nil, err
	}
	Apply(item, res)
	return []*domain.ResultItem{item}, nil
}

// QueryAsync returns a placeholder item right away plus the deferred
// resolution that fills it in
func (l *Launcher) QueryAsync(query string) (*domain.ResultItem, Deferred, error) {
	p := providers[l.Kind]
	if p.placeholder == nil || p.resolve == nil {
		return nil, nil, lkerrors.Provider("Not Async",
			fmt.Sprintf("launcher %q cannot run asynchronously", l.Name), nil)
	}
	item, err := p.placeholder(l, query)
	if err != nil {
		return nil, nil, err
	}
	item.Pending = true
	deferred := DeferredFunc(func(ctx context.Context) (Resolution, error) {
		return p.resolve(ctx, l, query)
	})
	return item, deferred, nil
}

// ImageRef returns the reference FetchImage would load, or ""
func (l *Launcher) ImageRef() string {
	switch {
	case l.Web != nil:
		return l.Web.Icon
	case l.BulkText != nil:
		return l.BulkText.Icon
	}
	return ""
}

// FetchImage resolves the launcher's image through src
func (l *Launcher) FetchImage(ctx context.Context, src ImageSource) (*domain.Image, bool, error) {
	ref := l.ImageRef()
	if ref == "" || src == nil {
		return nil, false, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	return src.Load(ref)
}

// Apply writes a resolution into its placeholder
func Apply(item *domain.ResultItem, res Resolution) {
	if res.Title != "" {
		item.Title = res.Title
	}
	item.Body = res.Body
	if item.Attributes == nil {
		item.Attributes = &domain.Attributes{}
	}
	if res.Attributes != nil {
		item.Attributes.Merge(res.Attributes)
	}
	item.Pending = false
}

func (l *Launcher) newItem(priority float64, title, body, icon string, attrs *domain.Attributes) *domain.ResultItem {
	return &domain.ResultItem{
		ID:            uuid.NewString(),
		Launcher:      l.Name,
		Priority:      priority,
		Title:         title,
		Body:          body,
		Icon:          icon,
		Attributes:    attrs,
		WantsShortcut: l.Shortcut,
	}
}
