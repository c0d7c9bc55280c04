package ui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"lookout/internal/actions"
	"lookout/internal/config"
	"lookout/internal/domain"
	"lookout/internal/eventbus"
	"lookout/internal/launcher"
	"lookout/internal/log"
	"lookout/internal/search"
	"lookout/internal/ui/input"
	"lookout/internal/ui/input/modes"
	inputtypes "lookout/internal/ui/input/types"
	"lookout/internal/ui/results"
	"lookout/internal/ui/views"
)

const revealInterval = 25 * time.Millisecond

// Options wires the model to the rest of the application
type Options struct {
	Config        *config.Config
	Launchers     []*launcher.Launcher
	Images        launcher.ImageSource
	Bus           eventbus.EventBus
	Executor      *actions.Executor
	StartupErrors []error
	InitialMode   string
}

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	logger *slog.Logger

	orch         *search.Orchestrator
	list         *results.List
	inputHandler *input.Handler
	renderer     *views.Renderer
	help         help.Model
	spinner      spinner.Model

	width  int
	height int

	errors   []error
	detail   string
	status   string
	output   string
	revealed int // -1 when the entry animation is done

	results     chan actions.Result
	unsubscribe func()
	ownBus      bool
	initCmds    []tea.Cmd
}

// NewModel creates the model and runs the first cycle
func NewModel(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	bus, ownBus := opts.Bus, false
	if bus == nil {
		bus, ownBus = eventbus.New(), true
	}

	m := &Model{
		bus:      bus,
		config:   cfg,
		logger:   log.WithComponent("ui"),
		list:     results.New(),
		renderer: views.NewRenderer(cfg.Appearance.ShowIcons, cfg.Binds.Modifier),
		help:     help.New(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		width:    cfg.Appearance.Width,
		height:   cfg.Appearance.Height,
		revealed: -1,
		results:  make(chan actions.Result, 1),
		ownBus:   ownBus,
	}
	m.list.SetHeight(views.RowsHeight(m.height))

	orch, errs := search.New(search.Deps{
		Launchers: opts.Launchers,
		Renderer:  m.list,
		Images:    opts.Images,
		Bus:       bus,
		Options: search.Options{
			ShortcutSlots: cfg.Behavior.ShortcutSlots,
			AsyncDelay:    cfg.Behavior.Delay(),
			Animate:       cfg.Behavior.Animate,
		},
	})
	m.orch = orch
	m.errors = append(append([]error{}, opts.StartupErrors...), errs...)

	keys := modes.NewKeyMap(cfg.Binds.Prev, cfg.Binds.Next, cfg.Binds.Modifier, cfg.Behavior.ShortcutSlots)
	m.inputHandler = input.New(keys)

	executor := opts.Executor
	if executor == nil {
		executor = actions.NewExecutor(nil)
	}
	m.unsubscribe = executor.Subscribe(bus, m.results)

	var first *search.Cycle
	if opts.InitialMode != "" {
		first = orch.SwitchMode(opts.InitialMode)
	} else {
		first = orch.Start()
	}
	m.initCmds = append(m.initCmds, m.startCycle(first))

	if len(m.errors) > 0 {
		for _, err := range m.errors {
			m.logger.Warn("startup error", slog.Any("error", err))
		}
		m.inputHandler.ChangeMode(inputtypes.ModeErrors)
	}
	return m
}

// Init returns the startup commands
func (m *Model) Init() tea.Cmd {
	cmds := append([]tea.Cmd{m.inputHandler.Init(), m.spinner.Tick}, m.initCmds...)
	m.initCmds = nil
	return tea.Batch(cmds...)
}

// Update handles messages on the event loop
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = min(msg.Width, m.config.Appearance.Width)
		m.height = min(msg.Height, m.config.Appearance.Height)
		m.help.Width = m.width
		m.list.SetHeight(views.RowsHeight(m.height))

	case tea.KeyMsg:
		acts, cmd := m.inputHandler.HandleKey(msg, m)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range acts {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	case completionMsg:
		m.orch.Apply(msg.completion)

	case activationMsg:
		return m, m.handleActivation(msg.result)

	case tickMsg:
		if m.revealed < 0 {
			return m, nil
		}
		m.revealed++
		if m.revealed >= m.list.Len() {
			m.revealed = -1
			return m, nil
		}
		return m, reveal()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	default:
		return m, m.inputHandler.Update(msg)
	}
	return m, nil
}

func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		switch a.Direction {
		case "up":
			m.list.FocusPrev()
		case "down":
			m.list.FocusNext()
		case "pageup":
			m.list.FocusPageUp()
		case "pagedown":
			m.list.FocusPageDown()
		}

	case inputtypes.FocusFirstAction:
		m.list.FocusFirst()

	case inputtypes.UpdateTextAction:
		return m.search(a.Text)

	case inputtypes.ClearQueryAction:
		m.inputHandler.SetValue("")
		return m.search("")

	case inputtypes.ResetNamespaceAction:
		return m.startCycle(m.orch.SwitchMode(domain.ModeAll))

	case inputtypes.ActivateAction:
		return m.activate(a.Slot)

	case inputtypes.DismissAction:
		m.errors = nil
		m.detail = ""

	case inputtypes.QuitAction:
		m.orch.Cancel()
		return tea.Quit
	}
	return nil
}

func (m *Model) search(text string) tea.Cmd {
	c := m.orch.Search(text)
	if c.SwitchedMode {
		m.inputHandler.SetValue("")
	}
	return m.startCycle(c)
}

// startCycle returns one command per async task of c. The commands only
// compute; Apply runs when their messages come back.
func (m *Model) startCycle(c *search.Cycle) tea.Cmd {
	m.status = ""
	var cmds []tea.Cmd
	for _, task := range c.Tasks() {
		task := task
		cmds = append(cmds, func() tea.Msg {
			return completionMsg{completion: task.Run()}
		})
	}
	if items := c.Items(); len(items) > 0 && items[0].Animate {
		m.revealed = 0
		cmds = append(cmds, reveal())
	} else {
		m.revealed = -1
	}
	return tea.Batch(cmds...)
}

func (m *Model) activate(slot int) tea.Cmd {
	item := m.list.Selected()
	if slot > 0 {
		item = m.list.AtShortcut(slot)
	}
	if item == nil || item.Pending {
		return nil
	}
	m.bus.Publish(domain.ItemActivatedEvent{
		ItemID:     item.ID,
		Launcher:   item.Launcher,
		Attributes: item.Attributes.Clone(),
	})
	return waitForActivation(m.results)
}

func (m *Model) handleActivation(res actions.Result) tea.Cmd {
	if res.Err != nil {
		m.status = res.Err.Error()
		return nil
	}
	if res.Outcome.Quit {
		m.output = res.Outcome.Output
		m.orch.Cancel()
		return tea.Quit
	}
	if res.Outcome.Output != "" {
		m.detail = res.Outcome.Output
		m.inputHandler.ChangeMode(inputtypes.ModeDetail)
	}
	return nil
}

func waitForActivation(ch <-chan actions.Result) tea.Cmd {
	return func() tea.Msg {
		return activationMsg{result: <-ch}
	}
}

func reveal() tea.Cmd {
	return tea.Tick(revealInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// View renders the model
func (m *Model) View() string {
	state := views.ViewState{
		Width:     m.width,
		Height:    m.height,
		ModeLabel: m.orch.Mode().Name,
		InAllMode: m.orch.Registry().IsAll(),
		Input:     m.inputHandler.GetTextInput().View(),
		Total:     m.list.Len(),
		Cursor:    m.list.Cursor(),
		Revealed:  m.revealed,
		Spinner:   m.spinner.View(),
		Status:    m.status,
		Help:      m.help.View(m.inputHandler.Keys()),
	}
	state.Rows, state.FirstIndex = m.list.Visible()

	switch m.inputHandler.GetMode() {
	case inputtypes.ModeErrors:
		state.OverlayTitle = "Configuration problems"
		state.Overlay = formatErrors(m.errors)
		state.OverlayFooter = "press any key to continue"
	case inputtypes.ModeDetail:
		state.Overlay = m.detail
		state.OverlayFooter = "press any key to go back"
	}

	return m.renderer.Render(state)
}

func formatErrors(errs []error) string {
	lines := make([]string, 0, len(errs))
	for _, err := range errs {
		lines = append(lines, fmt.Sprintf("• %s", err))
	}
	return strings.Join(lines, "\n")
}

// Query implements the input context
func (m *Model) Query() string {
	return m.inputHandler.Value()
}

// InAllMode implements the input context
func (m *Model) InAllMode() bool {
	return m.orch.Registry().IsAll()
}

// ShortcutSlots implements the input context
func (m *Model) ShortcutSlots() int {
	return m.config.Behavior.ShortcutSlots
}

// Output is what the activated item asked to print after exit
func (m *Model) Output() string {
	return m.output
}

// Close releases the executor subscription
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	if m.ownBus {
		m.bus.Close()
	}
}
