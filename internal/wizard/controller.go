package wizard

import (
	"errors"
	"fmt"

	"github.com/medalytics/medalytics-cli/internal/resource"
)

// ChartErrorMessage is shown in place of the chart whenever the fetch fails,
// whatever the underlying cause.
const ChartErrorMessage = "Error fetching chart data"

// ErrInvalidMetrics is returned by Advance when strict metric checking is on
// and the entered figures are rejected.
var ErrInvalidMetrics = errors.New("invalid resource metrics")

// FetchCommand asks the caller to start the network optimization fetch. The
// result must be handed back to Complete with the same Generation.
type FetchCommand struct {
	Generation uint64
}

// Controller is the wizard state machine. It owns the step, the form, the
// dashboard tab and the chart resource, and it is the only thing that
// mutates them. It is not safe for concurrent use: drive it from one loop.
type Controller struct {
	cfg   config
	step  Step
	form  Form
	tab   Tab
	chart resource.Resource[[]float64]
	// armed records whether the fetch trigger held after the last transition.
	armed bool
}

func New(opts ...Option) *Controller {
	cfg := config{
		layout:  LayoutFourStep,
		restart: RestartKeepForm,
	}
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	return &Controller{cfg: cfg}
}

func (c *Controller) Step() Step { return c.step }

func (c *Controller) Tab() Tab { return c.tab }

func (c *Controller) Form() Form { return c.form }

func (c *Controller) Layout() Layout { return c.cfg.layout }

func (c *Controller) RestartPolicy() RestartPolicy { return c.cfg.restart }

// Chart exposes the chart resource for inspection. Callers must not mutate it.
func (c *Controller) Chart() *resource.Resource[[]float64] { return &c.chart }

// PendingFetch is the generation of the fetch whose result is still wanted.
func (c *Controller) PendingFetch() (uint64, bool) {
	return c.chart.Pending()
}

func (c *Controller) IsTerminal() bool { return c.step == c.cfg.layout.Terminal() }

func (c *Controller) CanAdvance() bool { return c.step < c.cfg.layout.Terminal() }

// CanRetreat is false on the first step and on the completion screen, which
// can only be left through Restart.
func (c *Controller) CanRetreat() bool {
	return c.step > StepOrganization && c.step != StepComplete
}

// Advance moves to the next step. It is a no-op on the terminal step. With
// strict metrics on, leaving the metrics step with rejected figures returns
// an error wrapping ErrInvalidMetrics and the step does not change.
func (c *Controller) Advance() (*FetchCommand, error) {
	if !c.CanAdvance() {
		return nil, nil
	}
	if c.step == StepMetrics && c.cfg.validator != nil {
		m := c.form.Metrics
		if err := c.cfg.validator.ValidateMetrics(m.ICUBeds, m.PPEStock, m.VentilatorUsage); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidMetrics, err)
		}
	}
	c.step++
	return c.reconcile(), nil
}

// Retreat moves to the previous step. It is a no-op where CanRetreat is false.
func (c *Controller) Retreat() *FetchCommand {
	if !c.CanRetreat() {
		return nil
	}
	c.step--
	return c.reconcile()
}

// Restart returns to the first step. It only applies on the terminal step and
// reports whether it did anything. The form is kept or cleared according to
// the restart policy; the tab and the chart always start over.
func (c *Controller) Restart() bool {
	if !c.IsTerminal() {
		return false
	}
	c.step = StepOrganization
	c.tab = TabPrimary
	c.chart.Reset()
	c.armed = false
	if c.cfg.restart == RestartClearForm {
		c.form = Form{}
	}
	return true
}

// SelectTab switches the dashboard tab. Outside the dashboard it is ignored.
// Switching away from network optimization leaves the chart state alone.
func (c *Controller) SelectTab(tab Tab) *FetchCommand {
	if c.step != StepDashboard {
		return nil
	}
	c.tab = tab
	return c.reconcile()
}

// Retry starts a new fetch after a failed one, as long as the network
// optimization tab is still showing.
func (c *Controller) Retry() *FetchCommand {
	if !c.fetchWanted() || c.chart.State() != resource.StateError {
		return nil
	}
	return &FetchCommand{Generation: c.chart.Begin()}
}

// Complete delivers the outcome of the fetch started with gen. Results for
// any generation other than the pending one are discarded; the return value
// reports whether the result was applied.
func (c *Controller) Complete(gen uint64, values []float64, err error) bool {
	if err != nil {
		return c.chart.Fail(gen, ChartErrorMessage, err)
	}
	return c.chart.Resolve(gen, values)
}

func (c *Controller) fetchWanted() bool {
	return c.step == StepDashboard && c.tab == TabNetworkOptimization
}

// reconcile starts a fetch on the edge into the trigger state and orphans the
// pending one on the edge out of it.
func (c *Controller) reconcile() *FetchCommand {
	wanted := c.fetchWanted()
	was := c.armed
	c.armed = wanted

	switch {
	case wanted && !was:
		return &FetchCommand{Generation: c.chart.Begin()}
	case !wanted && was:
		c.chart.Invalidate()
	}
	return nil
}

// SetOrganizationName edits the organization name. Fields can only be edited
// on the step that shows them; the setters report whether the edit applied.
func (c *Controller) SetOrganizationName(name string) bool {
	if c.step != StepOrganization {
		return false
	}
	c.form.OrganizationName = name
	return true
}

func (c *Controller) SetRole(role Role) bool {
	if c.step != StepOrganization {
		return false
	}
	c.form.Role = role
	return true
}

func (c *Controller) SetICUBeds(v string) bool {
	if c.step != StepMetrics {
		return false
	}
	c.form.Metrics.ICUBeds = v
	return true
}

func (c *Controller) SetPPEStock(v string) bool {
	if c.step != StepMetrics {
		return false
	}
	c.form.Metrics.PPEStock = v
	return true
}

func (c *Controller) SetVentilatorUsage(v string) bool {
	if c.step != StepMetrics {
		return false
	}
	c.form.Metrics.VentilatorUsage = v
	return true
}

// View returns the data for the current screen.
func (c *Controller) View() View {
	switch c.step {
	case StepOrganization:
		return OrganizationView{
			OrganizationName: c.form.OrganizationName,
			Role:             c.form.Role,
		}
	case StepMetrics:
		return MetricsView{
			OrganizationName: c.form.OrganizationName,
			Role:             c.form.Role,
			Metrics:          c.form.Metrics,
		}
	case StepDashboard:
		return DashboardView{
			Tab:      c.tab,
			Metrics:  c.form.Metrics,
			Profile:  c.form.Profile(),
			Chart:    c.chart.Snapshot(),
			Terminal: c.IsTerminal(),
		}
	default:
		return CompleteView{
			OrganizationName: c.form.OrganizationName,
			Role:             c.form.Role,
		}
	}
}
