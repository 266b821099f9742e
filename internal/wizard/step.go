package wizard

import (
	"fmt"
	"strings"
)

// Step is a screen of the wizard, ordered as the operator walks through it.
type Step int

const (
	StepOrganization Step = iota
	StepMetrics
	StepDashboard
	StepComplete
)

func (s Step) String() string {
	switch s {
	case StepOrganization:
		return "Organization"
	case StepMetrics:
		return "Resource Metrics"
	case StepDashboard:
		return "Dashboard"
	case StepComplete:
		return "Complete"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// Layout selects how many steps the flow has. The three-step layout ends on
// the dashboard and has no completion screen.
type Layout int

const (
	LayoutFourStep Layout = iota
	LayoutThreeStep
)

func (l Layout) StepCount() int {
	if l == LayoutThreeStep {
		return 3
	}
	return 4
}

// Terminal is the last step of the layout.
func (l Layout) Terminal() Step {
	return Step(l.StepCount() - 1)
}

// ParseLayout maps a step count to a Layout.
func ParseLayout(steps int) (Layout, error) {
	switch steps {
	case 3:
		return LayoutThreeStep, nil
	case 4:
		return LayoutFourStep, nil
	default:
		return LayoutFourStep, fmt.Errorf("unsupported step count %d: must be 3 or 4", steps)
	}
}

// Tab is a sub-view of the dashboard.
type Tab int

const (
	TabPrimary Tab = iota
	TabNetworkOptimization
)

// Tabs lists the dashboard tabs in display order.
var Tabs = []Tab{TabPrimary, TabNetworkOptimization}

func (t Tab) String() string {
	switch t {
	case TabPrimary:
		return "MedDash"
	case TabNetworkOptimization:
		return "Network Optimization"
	default:
		return fmt.Sprintf("Tab(%d)", int(t))
	}
}

// RestartPolicy decides what Restart does with the entered form.
type RestartPolicy int

const (
	// RestartKeepForm leaves the form as it was so it can be resubmitted.
	RestartKeepForm RestartPolicy = iota
	// RestartClearForm starts the next session from an empty form.
	RestartClearForm
)

func (p RestartPolicy) String() string {
	if p == RestartClearForm {
		return "clear"
	}
	return "keep"
}

func ParseRestartPolicy(s string) (RestartPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "keep":
		return RestartKeepForm, nil
	case "clear":
		return RestartClearForm, nil
	default:
		return RestartKeepForm, fmt.Errorf("unknown restart policy %q: must be keep or clear", s)
	}
}
