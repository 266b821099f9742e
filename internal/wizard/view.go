package wizard

import "github.com/medalytics/medalytics-cli/internal/resource"

// View is the data one screen needs. It is a closed set: OrganizationView,
// MetricsView, DashboardView and CompleteView are the only implementations,
// so renderers can switch over them exhaustively.
type View interface {
	Step() Step
	isView()
}

type OrganizationView struct {
	OrganizationName string
	Role             Role
}

type MetricsView struct {
	OrganizationName string
	Role             Role
	Metrics          Metrics
}

type DashboardView struct {
	Tab     Tab
	Metrics Metrics
	Profile string
	// Chart is the state of the network optimization series.
	Chart resource.Snapshot[[]float64]
	// Terminal is set when the dashboard is the last step of the layout.
	Terminal bool
}

type CompleteView struct {
	OrganizationName string
	Role             Role
}

func (OrganizationView) Step() Step { return StepOrganization }
func (MetricsView) Step() Step      { return StepMetrics }
func (DashboardView) Step() Step    { return StepDashboard }
func (CompleteView) Step() Step     { return StepComplete }

func (OrganizationView) isView() {}
func (MetricsView) isView()      {}
func (DashboardView) isView()    {}
func (CompleteView) isView()     {}
