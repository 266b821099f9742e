// Package tui is the full-screen terminal front end of the wizard. It turns
// key presses into controller transitions, runs the fetches the controller
// asks for and renders the controller's views.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/medalytics/medalytics-cli/internal/logger"
	"github.com/medalytics/medalytics-cli/internal/resource"
	"github.com/medalytics/medalytics-cli/internal/ui"
	"github.com/medalytics/medalytics-cli/internal/validation"
	"github.com/medalytics/medalytics-cli/internal/wizard"
)

// Fetcher loads the series shown on the network optimization tab.
type Fetcher interface {
	Quant(ctx context.Context) ([]float64, error)
}

// Organization step fields.
const (
	nameField = iota
	roleField
	organizationFieldCount
)

// Metrics step fields.
const (
	icuBedsField = iota
	ppeStockField
	ventilatorField
	metricsFieldCount
)

// fetchResultMsg carries a finished fetch back into the event loop.
type fetchResultMsg struct {
	generation uint64
	values     []float64
	err        error
}

// Model is the bubbletea model wrapping a wizard.Controller. All controller
// access happens inside Update, on the program's event loop.
type Model struct {
	ctrl    *wizard.Controller
	fetcher Fetcher
	log     *zerolog.Logger
	ctx     context.Context
	// cancels holds one cancel func per fetch that has not reported back.
	cancels map[uint64]context.CancelFunc

	nameInput    textinput.Model
	metricInputs [metricsFieldCount]textinput.Model
	focus        int

	spinner spinner.Model
	help    help.Model
	keys    keyMap

	width    int
	notice   []string
	quitting bool
}

type Option func(*Model)

func WithLogger(log *zerolog.Logger) Option {
	return func(m *Model) {
		m.log = log
	}
}

// WithContext sets the parent of every fetch context.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		m.ctx = ctx
	}
}

func New(ctrl *wizard.Controller, fetcher Fetcher, opts ...Option) Model {
	m := Model{
		ctrl:    ctrl,
		fetcher: fetcher,
		log:     logger.NewDiscardLogger(),
		ctx:     context.Background(),
		cancels: make(map[uint64]context.CancelFunc),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(ui.AccentStyle)),
		help:    help.New(),
		keys:    newKeyMap(),
		width:   80,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.nameInput = newInput("Enter organization name")
	placeholders := [metricsFieldCount]string{
		icuBedsField:    "Enter number of ICU beds",
		ppeStockField:   "Enter PPE stock",
		ventilatorField: "Enter ventilator usage",
	}
	for i, p := range placeholders {
		m.metricInputs[i] = newInput(p)
	}
	m.loadInputs()
	m.applyFocus()
	m.keys.update(m.ctrl, m.focus)
	return m
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	ti.Width = 40
	ti.Prompt = "› "
	return ti
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Controller exposes the wrapped controller, mainly for tests and for
// reporting the final state after the program exits.
func (m Model) Controller() *wizard.Controller { return m.ctrl }

func (m Model) Quitting() bool { return m.quitting }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case fetchResultMsg:
		m.finishFetch(msg)
	case spinner.TickMsg:
		if m.ctrl.Chart().State() == resource.StateLoading {
			m.spinner, cmd = m.spinner.Update(msg)
		}
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	}
	m.keys.update(m.ctrl, m.focus)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		m.cancelAll()
		m.log.Info().Str("step", m.ctrl.Step().String()).Msg("Wizard closed")
		return tea.Quit
	}

	switch m.ctrl.Step() {
	case wizard.StepOrganization, wizard.StepMetrics:
		return m.handleFormKey(msg)
	case wizard.StepDashboard:
		return m.handleDashboardKey(msg)
	default:
		cmd, _ := m.navigate(msg)
		return cmd
	}
}

// navigate handles the keys shared by every step. ok is false when msg is not
// one of them.
func (m *Model) navigate(msg tea.KeyMsg) (cmd tea.Cmd, ok bool) {
	switch {
	case key.Matches(msg, m.keys.Restart) && m.ctrl.IsTerminal():
		if m.ctrl.Restart() {
			m.cancelStale()
			m.notice = nil
			m.loadInputs()
			m.focus = 0
			m.log.Info().Str("policy", m.ctrl.RestartPolicy().String()).Msg("Wizard restarted")
			return m.applyFocus(), true
		}
		return nil, true
	case key.Matches(msg, m.keys.Next):
		return m.advance(), true
	case key.Matches(msg, m.keys.Back):
		from := m.ctrl.Step()
		fetch := m.ctrl.Retreat()
		m.afterStepChange(from)
		return tea.Batch(m.startFetch(fetch), m.applyFocus()), true
	}
	return nil, false
}

func (m *Model) advance() tea.Cmd {
	from := m.ctrl.Step()
	fetch, err := m.ctrl.Advance()
	if err != nil {
		m.notice = noticeFor(err)
		m.log.Debug().Err(err).Msg("Metrics rejected")
		return nil
	}
	m.afterStepChange(from)
	return tea.Batch(m.startFetch(fetch), m.applyFocus())
}

func (m *Model) afterStepChange(from wizard.Step) {
	m.cancelStale()
	if m.ctrl.Step() == from {
		return
	}
	m.notice = nil
	m.focus = 0
	ev := m.log.Debug().
		Str("from", from.String()).
		Str("to", m.ctrl.Step().String())
	if m.ctrl.Step() == wizard.StepDashboard {
		ev = ev.Object("form", logger.FormWrapper{Form: m.ctrl.Form()})
	}
	ev.Msg("Step changed")
}

func (m *Model) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	if cmd, ok := m.navigate(msg); ok {
		return cmd
	}

	fields := m.fieldCount()
	switch {
	case key.Matches(msg, m.keys.FocusNext):
		m.focus = (m.focus + 1) % fields
		return m.applyFocus()
	case key.Matches(msg, m.keys.FocusPrev):
		m.focus = (m.focus + fields - 1) % fields
		return m.applyFocus()
	}

	if m.ctrl.Step() == wizard.StepOrganization && m.focus == roleField {
		switch {
		case key.Matches(msg, m.keys.PrevOption):
			m.cycleRole(-1)
		case key.Matches(msg, m.keys.NextOption):
			m.cycleRole(1)
		}
		return nil
	}

	input := m.focusedInput()
	if input == nil {
		return nil
	}
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	m.storeInputs()
	return cmd
}

func (m *Model) handleDashboardKey(msg tea.KeyMsg) tea.Cmd {
	if cmd, ok := m.navigate(msg); ok {
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Retry):
		fetch := m.ctrl.Retry()
		if fetch != nil {
			m.log.Info().Uint64("generation", fetch.Generation).Msg("Retrying chart fetch")
		}
		return m.startFetch(fetch)
	case key.Matches(msg, m.keys.Primary):
		return m.selectTab(wizard.TabPrimary)
	case key.Matches(msg, m.keys.Optimize):
		return m.selectTab(wizard.TabNetworkOptimization)
	case key.Matches(msg, m.keys.PrevTab), key.Matches(msg, m.keys.NextTab):
		next := wizard.TabNetworkOptimization
		if m.ctrl.Tab() == wizard.TabNetworkOptimization {
			next = wizard.TabPrimary
		}
		return m.selectTab(next)
	}
	return nil
}

func (m *Model) selectTab(tab wizard.Tab) tea.Cmd {
	fetch := m.ctrl.SelectTab(tab)
	m.cancelStale()
	return m.startFetch(fetch)
}

func (m *Model) cycleRole(delta int) {
	roles := wizard.Roles
	idx := 0
	for i, r := range roles {
		if r == m.ctrl.Form().Role {
			idx = i
		}
	}
	idx = (idx + delta + len(roles)) % len(roles)
	m.ctrl.SetRole(roles[idx])
}

// startFetch runs the fetch described by fetch, if any, on a goroutine owned
// by bubbletea.
func (m *Model) startFetch(fetch *wizard.FetchCommand) tea.Cmd {
	if fetch == nil {
		return nil
	}
	ctx, cancel := context.WithCancel(m.ctx)
	gen := fetch.Generation
	m.cancels[gen] = cancel
	m.log.Debug().Uint64("generation", gen).Msg("Fetching chart data")

	fetcher := m.fetcher
	run := func() tea.Msg {
		values, err := fetcher.Quant(ctx)
		return fetchResultMsg{generation: gen, values: values, err: err}
	}
	return tea.Batch(run, m.spinner.Tick)
}

func (m *Model) finishFetch(msg fetchResultMsg) {
	if cancel, ok := m.cancels[msg.generation]; ok {
		cancel()
		delete(m.cancels, msg.generation)
	}

	applied := m.ctrl.Complete(msg.generation, msg.values, msg.err)
	switch {
	case !applied:
		m.log.Debug().Uint64("generation", msg.generation).Msg("Discarded stale chart result")
	case msg.err != nil:
		chart := m.ctrl.Chart()
		m.log.Error().
			Err(chart.Cause()).
			Uint64("generation", msg.generation).
			Str("shown", chart.Message()).
			Msg("Chart fetch failed")
	default:
		m.log.Info().Object("series", logger.SeriesWrapper{Values: msg.values}).Msg("Chart loaded")
	}
}

// cancelStale cancels every fetch the controller no longer waits for.
func (m *Model) cancelStale() {
	pending, ok := m.ctrl.PendingFetch()
	for gen, cancel := range m.cancels {
		if ok && gen == pending {
			continue
		}
		cancel()
		delete(m.cancels, gen)
	}
}

func (m *Model) cancelAll() {
	for gen, cancel := range m.cancels {
		cancel()
		delete(m.cancels, gen)
	}
}

func (m *Model) fieldCount() int {
	if m.ctrl.Step() == wizard.StepMetrics {
		return metricsFieldCount
	}
	return organizationFieldCount
}

func (m *Model) focusedInput() *textinput.Model {
	switch m.ctrl.Step() {
	case wizard.StepOrganization:
		if m.focus == nameField {
			return &m.nameInput
		}
	case wizard.StepMetrics:
		return &m.metricInputs[m.focus]
	}
	return nil
}

// applyFocus focuses the input under the cursor and blurs the rest.
func (m *Model) applyFocus() tea.Cmd {
	m.nameInput.Blur()
	for i := range m.metricInputs {
		m.metricInputs[i].Blur()
	}
	if input := m.focusedInput(); input != nil {
		return input.Focus()
	}
	return nil
}

// loadInputs copies the form into the inputs.
func (m *Model) loadInputs() {
	form := m.ctrl.Form()
	m.nameInput.SetValue(form.OrganizationName)
	m.metricInputs[icuBedsField].SetValue(form.Metrics.ICUBeds)
	m.metricInputs[ppeStockField].SetValue(form.Metrics.PPEStock)
	m.metricInputs[ventilatorField].SetValue(form.Metrics.VentilatorUsage)
}

// storeInputs pushes the inputs of the current step into the form.
func (m *Model) storeInputs() {
	switch m.ctrl.Step() {
	case wizard.StepOrganization:
		m.ctrl.SetOrganizationName(m.nameInput.Value())
	case wizard.StepMetrics:
		m.ctrl.SetICUBeds(m.metricInputs[icuBedsField].Value())
		m.ctrl.SetPPEStock(m.metricInputs[ppeStockField].Value())
		m.ctrl.SetVentilatorUsage(m.metricInputs[ventilatorField].Value())
	}
}

func noticeFor(err error) []string {
	var verrs validation.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs.Details()
	}
	return []string{err.Error()}
}
