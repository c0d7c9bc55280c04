package ui

import (
	stderrors "errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lookout/internal/actions"
	"lookout/internal/config"
	"lookout/internal/domain"
	"lookout/internal/launcher"
	inputtypes "lookout/internal/ui/input/types"
)

func testLaunchers(t *testing.T) []*launcher.Launcher {
	t.Helper()
	defs := []launcher.Launcher{
		{Name: "Apps", Kind: launcher.KindApp, Priority: 1, Home: true, Shortcut: true,
			Apps: map[string]launcher.AppData{
				"Files":   {Exec: "nautilus", SearchString: "files"},
				"Firefox": {Exec: "firefox %u", SearchString: "firefox browser"},
			}},
		{Name: "Google", Alias: "g", Kind: launcher.KindWeb, Priority: 3, Async: true,
			Web: &launcher.WebData{Engine: "google"}},
		{Name: "Calculator", Kind: launcher.KindCalc, Priority: 2},
	}
	out := make([]*launcher.Launcher, 0, len(defs))
	for _, d := range defs {
		l, err := launcher.New(d)
		require.NoError(t, err)
		out = append(out, l)
	}
	return out
}

func newTestModel(t *testing.T, startupErrs ...error) (*Model, *actions.Recorder) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Behavior.Animate = false

	rec := &actions.Recorder{}
	m := NewModel(Options{
		Config:        cfg,
		Launchers:     testLaunchers(t),
		Executor:      actions.NewExecutor(rec),
		StartupErrors: startupErrs,
	})
	t.Cleanup(m.Close)
	return m, rec
}

// run executes cmd and feeds completion and activation messages back into
// the model. Commands that do not return quickly (cursor blink, spinner)
// are dropped. Other messages are returned.
func run(m *Model, cmd tea.Cmd) []tea.Msg {
	var out []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg, ok := call(c)
		if !ok {
			continue
		}
		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case completionMsg, activationMsg:
			_, next := m.Update(msg)
			queue = append(queue, next)
		default:
			out = append(out, msg)
		}
	}
	return out
}

func call(c tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- c() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(300 * time.Millisecond):
		return nil, false
	}
}

func press(m *Model, msg tea.KeyMsg) []tea.Msg {
	_, cmd := m.Update(msg)
	return run(m, cmd)
}

func typeText(m *Model, text string) {
	for _, r := range text {
		press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func titles(m *Model) []string {
	var out []string
	for _, it := range m.list.Items() {
		out = append(out, it.Title)
	}
	return out
}

func hasQuit(msgs []tea.Msg) bool {
	for _, msg := range msgs {
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

func TestModel_StartsOnHomeScreen(t *testing.T) {
	m, _ := newTestModel(t)
	run(m, m.Init())

	assert.Equal(t, []string{"Files", "Firefox"}, titles(m))
	assert.Equal(t, "Files", m.list.Selected().Title)
	assert.Contains(t, m.View(), "Firefox")
}

func TestModel_ModeTokenSwitchesAndResolves(t *testing.T) {
	m, _ := newTestModel(t)
	run(m, m.Init())

	typeText(m, "g ")
	assert.Equal(t, "", m.Query(), "token is cleared from the field")
	assert.False(t, m.InAllMode())
	assert.Equal(t, "Google", m.orch.Mode().Name)
	require.Equal(t, []string{"Google"}, titles(m))
	assert.False(t, m.list.Items()[0].Pending)

	typeText(m, "go")
	require.Len(t, m.list.Items(), 1)
	assert.Equal(t, `Search Google for "go"`, m.list.Items()[0].Body)
}

func TestModel_BackspaceOnEmptyQueryLeavesMode(t *testing.T) {
	m, _ := newTestModel(t)
	run(m, m.Init())
	typeText(m, "g ")

	press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.True(t, m.InAllMode())
	assert.Equal(t, []string{"Files", "Firefox"}, titles(m))
}

func TestModel_NavigationClamps(t *testing.T) {
	m, _ := newTestModel(t)
	run(m, m.Init())

	press(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "Files", m.list.Selected().Title)
	press(m, tea.KeyMsg{Type: tea.KeyDown})
	press(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "Firefox", m.list.Selected().Title)
}

func TestModel_PageKeysJumpAndClamp(t *testing.T) {
	m, _ := newTestModel(t)
	run(m, m.Init())

	press(m, tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, "Firefox", m.list.Selected().Title)
	press(m, tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Equal(t, "Files", m.list.Selected().Title)
}

func TestModel_EnterRunsSelectedApp(t *testing.T) {
	m, rec := newTestModel(t)
	run(m, m.Init())

	press(m, tea.KeyMsg{Type: tea.KeyDown})
	msgs := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, hasQuit(msgs))
	assert.Equal(t, [][]string{{"firefox"}}, rec.Calls())
}

func TestModel_ShortcutRunsSlotWithoutMovingSelection(t *testing.T) {
	m, rec := newTestModel(t)
	run(m, m.Init())

	msgs := press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2"), Alt: true})
	assert.True(t, hasQuit(msgs))
	assert.Equal(t, [][]string{{"firefox"}}, rec.Calls())
	assert.Equal(t, "Files", m.list.Selected().Title)
}

func TestModel_CalculatorResultIsPrinted(t *testing.T) {
	m, rec := newTestModel(t)
	run(m, m.Init())

	typeText(m, "6*7")
	require.NotEmpty(t, m.list.Items())
	assert.Equal(t, "42", m.list.Selected().Title)

	msgs := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, hasQuit(msgs))
	assert.Equal(t, "42", m.Output())
	assert.Empty(t, rec.Calls())
}

func TestModel_EraseAllClearsQuery(t *testing.T) {
	m, _ := newTestModel(t)
	run(m, m.Init())
	typeText(m, "fire")
	assert.Equal(t, []string{"Firefox", "Google"}, titles(m))

	press(m, tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.Equal(t, "", m.Query())
	assert.Equal(t, []string{"Files", "Firefox"}, titles(m))
}

func TestModel_StartupErrorsShownUntilKeyPress(t *testing.T) {
	m, _ := newTestModel(t, stderrors.New("launcher #3: Unknown Launcher Type"))
	run(m, m.Init())

	assert.Equal(t, inputtypes.ModeErrors, m.inputHandler.GetMode())
	assert.Contains(t, m.View(), "Unknown Launcher Type")

	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Equal(t, inputtypes.ModeQuery, m.inputHandler.GetMode())
	assert.Equal(t, "", m.Query())
	assert.NotContains(t, m.View(), "Unknown Launcher Type")
}

func TestModel_EscQuits(t *testing.T) {
	m, _ := newTestModel(t)
	run(m, m.Init())
	assert.True(t, hasQuit(press(m, tea.KeyMsg{Type: tea.KeyEsc})))
}

func TestModel_PendingItemsCannotBeActivated(t *testing.T) {
	m, rec := newTestModel(t)
	m.list.Clear()
	m.list.Append(&domain.ResultItem{Title: "Google", Pending: true,
		Attributes: domain.NewAttributes("method", actions.MethodWeb)})
	m.list.FocusFirst()

	msgs := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, hasQuit(msgs))
	assert.Empty(t, rec.Calls())
}
