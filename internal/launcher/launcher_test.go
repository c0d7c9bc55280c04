package launcher

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lookout/internal/domain"
	lkerrors "lookout/internal/errors"
)

func newApps(t *testing.T, priority int) *Launcher {
	t.Helper()
	l, err := New(Launcher{
		Name:     "Apps",
		Kind:     KindApp,
		Priority: priority,
		Home:     true,
		Shortcut: true,
		Apps: map[string]AppData{
			"Files":    {Exec: "nautilus", Icon: "folder", SearchString: "files nautilus"},
			"Firefox":  {Exec: "firefox %u", Icon: "firefox", SearchString: "firefox browser web"},
			"Terminal": {Exec: "foot", Icon: "terminal", SearchString: "terminal shell"},
		},
	})
	require.NoError(t, err)
	return l
}

type fakeRunner struct {
	out  string
	err  error
	args []string
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.args = append([]string{name}, args...)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []byte(f.out), f.err
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   Launcher
		want string
	}{
		{"missing name", Launcher{Kind: KindApp, Priority: 1}, "Missing Name"},
		{"unknown kind", Launcher{Name: "x", Kind: "teleport", Priority: 1}, "Unknown Launcher Type"},
		{"negative priority", Launcher{Name: "x", Kind: KindApp, Priority: -1}, "Invalid Priority"},
		{"web without engine", Launcher{Name: "g", Kind: KindWeb, Priority: 1}, "Missing Engine"},
		{"bulk without exec", Launcher{Name: "b", Kind: KindBulkText, Priority: 1, BulkText: &BulkTextData{}}, "Missing Exec"},
		{"unreachable", Launcher{Name: "x", Kind: KindCalc}, "Unreachable Launcher"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.in)
			require.Error(t, err)
			var e *lkerrors.Error
			require.True(t, stderrors.As(err, &e))
			assert.Equal(t, lkerrors.KindConfiguration, e.Kind)
			assert.Equal(t, tt.want, e.Name)
		})
	}
}

func TestNew_AssignsIDAndNormalisesAsync(t *testing.T) {
	app, err := New(Launcher{Name: "a", Kind: KindApp, Priority: 1, Async: true})
	require.NoError(t, err)
	assert.NotEmpty(t, app.ID)
	assert.False(t, app.Async, "app launchers have no async provider")

	bulk, err := New(Launcher{Name: "b", Kind: KindBulkText, Priority: 1, BulkText: &BulkTextData{Exec: "echo"}})
	require.NoError(t, err)
	assert.True(t, bulk.Async)
}

func TestEligible(t *testing.T) {
	tests := []struct {
		name     string
		l        Launcher
		mode     string
		isHome   bool
		eligible bool
	}{
		{"all mode positive priority", Launcher{Priority: 1}, domain.ModeAll, false, true},
		{"all mode zero priority", Launcher{Priority: 0, Alias: "g"}, domain.ModeAll, false, false},
		{"named mode own alias priority zero", Launcher{Priority: 0, Alias: "g"}, "g", false, true},
		{"named mode own alias positive priority", Launcher{Priority: 1, Alias: "g"}, "g", false, true},
		{"named mode other alias", Launcher{Priority: 1, Alias: "d"}, "g", false, false},
		{"named mode no alias", Launcher{Priority: 1}, "g", false, false},
		{"home screen needs home flag", Launcher{Priority: 1}, domain.ModeAll, true, false},
		{"home screen with home flag", Launcher{Priority: 1, Home: true}, domain.ModeAll, true, true},
		{"only home hidden on query", Launcher{Priority: 1, Home: true, OnlyHome: true}, domain.ModeAll, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.eligible, tt.l.Eligible(tt.mode, tt.isHome))
		})
	}
}

func TestQuerySync_AppsEmptyQueryReturnsAllInKeyOrder(t *testing.T) {
	l := newApps(t, 2)

	items, err := l.QuerySync("")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Files", items[0].Title)
	assert.Equal(t, "Firefox", items[1].Title)
	assert.Equal(t, "Terminal", items[2].Title)
	for _, it := range items {
		assert.GreaterOrEqual(t, it.Priority, 2.0)
		assert.Less(t, it.Priority, 3.0)
		assert.True(t, it.WantsShortcut)
		assert.Equal(t, "app_launcher", it.Attributes.Value("method"))
	}
	assert.Less(t, items[0].Priority, items[1].Priority)
}

func TestQuerySync_AppsFuzzyMatch(t *testing.T) {
	l := newApps(t, 1)

	items, err := l.QuerySync("fire")
	require.NoError(t, err)
	require.NotEmpty(t, items)
	assert.Equal(t, "Firefox", items[0].Title)
	assert.Equal(t, "firefox %u", items[0].Attributes.Value("exec"))
	assert.Equal(t, "firefox", items[0].Icon)
}

func TestQuerySync_AppsNoMatch(t *testing.T) {
	l := newApps(t, 1)

	items, err := l.QuerySync("zzzz")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestQuerySync_CommandMethod(t *testing.T) {
	l, err := New(Launcher{Name: "System", Kind: KindCommand, Priority: 3,
		Apps: map[string]AppData{"Shutdown": {Exec: "systemctl poweroff"}}})
	require.NoError(t, err)

	items, err := l.QuerySync("shut")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "command", items[0].Attributes.Value("method"))
}

func TestNew_UnknownKindListsSupportedKinds(t *testing.T) {
	_, err := New(Launcher{Name: "x", Kind: "teleport", Priority: 1})
	require.Error(t, err)
	for _, k := range Kinds() {
		assert.Contains(t, err.Error(), string(k))
	}
}

func TestQuerySync_Calculator(t *testing.T) {
	l, err := New(Launcher{Name: "Calculator", Kind: KindCalc, Priority: 1})
	require.NoError(t, err)

	items, err := l.QuerySync("2 + 3 * 4")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "14", items[0].Title)
	assert.Equal(t, "14", items[0].Attributes.Value("result"))

	_, err = l.QuerySync("firefox")
	assert.ErrorIs(t, err, lkerrors.ErrNoMatch)

	_, err = l.QuerySync("1/0")
	assert.True(t, lkerrors.IsProvider(err))
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"1+2", 3},
		{"2*(3+4)", 14},
		{"-2^2", -4},
		{"2^3^2", 512},
		{"10/4", 2.5},
		{"1.5*2", 3},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Evaluate(tt.expr)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	for _, bad := range []string{"1+", "(1", "1)", "abc", "1/0", "len(\"ab\")+1"} {
		_, err := Evaluate(bad)
		assert.Error(t, err, bad)
	}
}

func TestIsArithmetic(t *testing.T) {
	assert.True(t, IsArithmetic("2 + 3"))
	assert.True(t, IsArithmetic("(1.5)*-2"))
	assert.False(t, IsArithmetic("42"), "no operator")
	assert.False(t, IsArithmetic("x-ray"))
	assert.False(t, IsArithmetic(""))
}

func TestWeb_AsyncPlaceholderAndResolve(t *testing.T) {
	l, err := New(Launcher{Name: "Google", Alias: "g", Kind: KindWeb, Priority: 1, Async: true,
		Web: &WebData{Engine: "google", Icon: "google"}})
	require.NoError(t, err)

	item, deferred, err := l.QueryAsync("go channels")
	require.NoError(t, err)
	assert.True(t, item.Pending)
	assert.Equal(t, "Google", item.Title)

	res, err := deferred.Await(context.Background())
	require.NoError(t, err)
	Apply(item, res)

	assert.False(t, item.Pending)
	assert.Equal(t, `Search Google for "go channels"`, item.Body)
	assert.Equal(t, "https://www.google.com/search?q=go+channels", item.Attributes.Value("url"))
	assert.Equal(t, "web_launcher", item.Attributes.Value("method"))
}

func TestWeb_ResolveHonoursCancellation(t *testing.T) {
	l, err := New(Launcher{Name: "Google", Alias: "g", Kind: KindWeb, Priority: 1, Async: true,
		Web: &WebData{Engine: "google"}})
	require.NoError(t, err)

	_, deferred, err := l.QueryAsync("x")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = deferred.Await(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWeb_SyncQueryResolvesInPlace(t *testing.T) {
	l, err := New(Launcher{Name: "DuckDuckGo", Alias: "d", Kind: KindWeb, Priority: 0,
		Web: &WebData{Engine: "duckduckgo"}})
	require.NoError(t, err)

	items, err := l.QuerySync("")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.False(t, items[0].Pending)
	assert.Equal(t, "Search DuckDuckGo", items[0].Body)
}

func TestSearchURL_Template(t *testing.T) {
	assert.Equal(t, "https://example.org/?s=a%26b", SearchURL("https://example.org/?s={keyword}", "a&b"))
}

func TestBulkText_Resolve(t *testing.T) {
	runner := &fakeRunner{out: "Sunny 21°C\nBerlin\nwind 3 m/s\n"}
	l, err := New(Launcher{Name: "Weather", Alias: "w", Kind: KindBulkText, Priority: 1,
		BulkText: &BulkTextData{Exec: "weather", Args: []string{"--city", "{keyword}"}}, Runner: runner})
	require.NoError(t, err)

	item, deferred, err := l.QueryAsync("berlin")
	require.NoError(t, err)
	assert.Equal(t, "Loading…", item.Body)

	res, err := deferred.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"weather", "--city", "berlin"}, runner.args)
	assert.Equal(t, "Sunny 21°C", res.Title)
	assert.Equal(t, "Berlin\nwind 3 m/s", res.Body)
	assert.Contains(t, res.Attributes.Value("next_content"), "Berlin")
}

func TestBulkText_EmptyQueryHasNoPlaceholder(t *testing.T) {
	l, err := New(Launcher{Name: "Weather", Alias: "w", Kind: KindBulkText, Priority: 1,
		BulkText: &BulkTextData{Exec: "weather"}, Runner: &fakeRunner{}})
	require.NoError(t, err)

	_, _, err = l.QueryAsync("  ")
	assert.ErrorIs(t, err, lkerrors.ErrNoMatch)
}

func TestBulkText_CommandFailureIsProviderError(t *testing.T) {
	l, err := New(Launcher{Name: "Weather", Alias: "w", Kind: KindBulkText, Priority: 1,
		BulkText: &BulkTextData{Exec: "weather"}, Runner: &fakeRunner{err: stderrors.New("exit 1")}})
	require.NoError(t, err)

	_, deferred, err := l.QueryAsync("x")
	require.NoError(t, err)
	_, err = deferred.Await(context.Background())
	assert.True(t, lkerrors.IsProvider(err))
}

type stubImages struct{ cached bool }

func (s stubImages) Load(ref string) (*domain.Image, bool, error) {
	return &domain.Image{Ref: ref, Path: "/icons/" + ref + ".png"}, s.cached, nil
}

func TestFetchImage(t *testing.T) {
	l, err := New(Launcher{Name: "Google", Alias: "g", Kind: KindWeb, Priority: 1,
		Web: &WebData{Engine: "google", Icon: "google"}})
	require.NoError(t, err)

	img, cached, err := l.FetchImage(context.Background(), stubImages{cached: true})
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, "/icons/google.png", img.Path)

	apps := newApps(t, 1)
	img, _, err = apps.FetchImage(context.Background(), stubImages{})
	require.NoError(t, err)
	assert.Nil(t, img)
}
