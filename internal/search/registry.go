package search

import (
	"fmt"
	"sort"
	"strings"

	"lookout/internal/domain"
	lkerrors "lookout/internal/errors"
	"lookout/internal/launcher"
)

// allLabel is shown while no named mode is active
const allLabel = "All"

// Registry maps alias tokens to namespaces and holds the active one
type Registry struct {
	modes  map[string]domain.Mode // token -> mode
	active domain.Mode
}

// NewRegistry creates a registry in AllMode
func NewRegistry() *Registry {
	return &Registry{
		modes:  make(map[string]domain.Mode),
		active: allMode(),
	}
}

func allMode() domain.Mode {
	return domain.Mode{Token: domain.ModeAll + " ", Alias: domain.ModeAll, Name: allLabel}
}

// Token turns an alias into the text a user types to enter its mode
func Token(alias string) string {
	return strings.TrimSpace(alias) + " "
}

// Register adds the launcher's alias as a mode. Launchers without an alias
// are accepted and add nothing.
func (r *Registry) Register(l *launcher.Launcher) error {
	if l.Alias == "" {
		return nil
	}
	alias := strings.TrimSpace(l.Alias)
	if alias == "" || strings.ContainsAny(alias, " \t") {
		return lkerrors.Configuration("Invalid Alias",
			fmt.Sprintf("launcher %q has alias %q", l.Name, l.Alias), nil)
	}
	if alias == domain.ModeAll {
		return lkerrors.Configuration("Reserved Alias",
			fmt.Sprintf("launcher %q cannot use alias %q", l.Name, alias), nil)
	}
	token := Token(alias)
	if existing, ok := r.modes[token]; ok {
		return lkerrors.Configuration("Duplicate Alias",
			fmt.Sprintf("alias %q of %q is already used by %q", alias, l.Name, existing.Name), nil)
	}
	r.modes[token] = domain.Mode{Token: token, Alias: alias, Name: l.Name}
	return nil
}

// Lookup reports whether text is exactly a registered mode token
func (r *Registry) Lookup(text string) (domain.Mode, bool) {
	m, ok := r.modes[text]
	return m, ok
}

// Switch enters the mode named by token (with or without its trailing
// space). Unknown tokens, "all" included, fall back to AllMode.
func (r *Registry) Switch(token string) (from, to domain.Mode) {
	from = r.active
	if m, ok := r.modes[Token(token)]; ok {
		r.active = m
	} else {
		r.active = allMode()
	}
	return from, r.active
}

// Active returns the active mode
func (r *Registry) Active() domain.Mode {
	return r.active
}

// IsAll reports whether no named mode is active
func (r *Registry) IsAll() bool {
	return r.active.Alias == domain.ModeAll
}

// Modes returns the registered modes sorted by token
func (r *Registry) Modes() []domain.Mode {
	out := make([]domain.Mode, 0, len(r.modes))
	for _, m := range r.modes {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Token < out[j].Token })
	return out
}
