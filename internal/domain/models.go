package domain

// ModeAll is the default namespace in which every launcher with a
// positive priority is eligible.
const ModeAll = "all"

// Attribute is a single key/value pair handed to the executor on activation
type Attribute struct {
	Key   string
	Value string
}

// Attributes is an insertion-ordered string map
type Attributes struct {
	pairs []Attribute
}

// NewAttributes builds an attribute map from alternating key/value strings.
// A trailing key without a value is ignored.
func NewAttributes(kv ...string) *Attributes {
	a := &Attributes{}
	for i := 0; i+1 < len(kv); i += 2 {
		a.Set(kv[i], kv[i+1])
	}
	return a
}

// Set inserts or replaces a value, keeping the original position on replace
func (a *Attributes) Set(key, value string) {
	for i := range a.pairs {
		if a.pairs[i].Key == key {
			a.pairs[i].Value = value
			return
		}
	}
	a.pairs = append(a.pairs, Attribute{Key: key, Value: value})
}

// Get returns the value for key
func (a *Attributes) Get(key string) (string, bool) {
	if a == nil {
		return "", false
	}
	for _, p := range a.pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Value returns the value for key or "" when missing
func (a *Attributes) Value(key string) string {
	v, _ := a.Get(key)
	return v
}

// Len returns the number of pairs
func (a *Attributes) Len() int {
	if a == nil {
		return 0
	}
	return len(a.pairs)
}

// Pairs returns a copy of the pairs in insertion order
func (a *Attributes) Pairs() []Attribute {
	if a == nil {
		return nil
	}
	out := make([]Attribute, len(a.pairs))
	copy(out, a.pairs)
	return out
}

// Clone returns a deep copy
func (a *Attributes) Clone() *Attributes {
	if a == nil {
		return &Attributes{}
	}
	return &Attributes{pairs: a.Pairs()}
}

// Merge copies every pair of other into a, in other's order
func (a *Attributes) Merge(other *Attributes) {
	for _, p := range other.Pairs() {
		a.Set(p.Key, p.Value)
	}
}

// Image is a resolved icon or cover handle
type Image struct {
	Ref  string // reference the image was requested with
	Path string // resolved file path, empty if the reference could not be found
}

// ResultItem is one ranked, renderable candidate produced by a launcher
type ResultItem struct {
	ID       string
	Launcher string // display name of the owning launcher
	Priority float64

	Title string
	Body  string
	Icon  string

	Attributes *Attributes

	// Shortcut is the positional slot (1-based) assigned by the builder, 0 if none
	Shortcut      int
	WantsShortcut bool

	// Pending is true for an async placeholder that has not resolved yet
	Pending bool

	Image      *Image
	FreshImage bool // image was not served from cache
	Animate    bool
}

// Mode is a namespace that restricts eligible launchers to one alias
type Mode struct {
	Token string // alias followed by a single space, e.g. "g "
	Alias string
	Name  string
}
