package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/medalytics/medalytics-cli/internal/chart"
	"github.com/medalytics/medalytics-cli/internal/resource"
	"github.com/medalytics/medalytics-cli/internal/ui"
	"github.com/medalytics/medalytics-cli/internal/wizard"
)

const appTitle = "Medalytics"

var (
	labelStyle   = lipgloss.NewStyle().Bold(true).MarginTop(1)
	contentStyle = lipgloss.NewStyle().Padding(1, 2)
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch v := m.ctrl.View().(type) {
	case wizard.OrganizationView:
		body = m.organizationView(v)
	case wizard.MetricsView:
		body = m.metricsView(v)
	case wizard.DashboardView:
		body = m.dashboardView(v)
	case wizard.CompleteView:
		body = completeView(v)
	}

	sections := []string{m.header(), body}
	if len(m.notice) > 0 {
		lines := make([]string, len(m.notice))
		for i, n := range m.notice {
			lines[i] = ui.RenderError("✗ " + n)
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	sections = append(sections, m.help.View(m.keys))
	return contentStyle.Render(strings.Join(sections, "\n\n"))
}

func (m Model) header() string {
	layout := m.ctrl.Layout()
	step := m.ctrl.Step()
	progress := ui.RenderDim(fmt.Sprintf("Step %d of %d · %s", int(step)+1, layout.StepCount(), step))
	return ui.RenderTitle(appTitle) + "  " + progress
}

func (m Model) organizationView(v wizard.OrganizationView) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Organization Name"))
	b.WriteString("\n")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Role"))
	b.WriteString("\n")

	options := make([]string, len(wizard.Roles))
	for i, r := range wizard.Roles {
		mark := "( )"
		if r == v.Role {
			mark = "(•)"
		}
		opt := mark + " " + r.String()
		if r == v.Role && m.focus == roleField {
			opt = ui.RenderAccent(opt)
		}
		options[i] = opt
	}
	b.WriteString(strings.Join(options, "   "))
	return b.String()
}

func (m Model) metricsView(v wizard.MetricsView) string {
	labels := [metricsFieldCount]string{
		icuBedsField:    "ICU Beds",
		ppeStockField:   "PPE Stock",
		ventilatorField: "Ventilator Usage",
	}

	var b strings.Builder
	b.WriteString(ui.BoxStyle.Render(v.Role.String()))
	b.WriteString("\n")
	b.WriteString("Organization: " + v.OrganizationName)
	for i, label := range labels {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(label))
		b.WriteString("\n")
		b.WriteString(m.metricInputs[i].View())
	}
	return b.String()
}

func (m Model) dashboardView(v wizard.DashboardView) string {
	tabLabels := make([]string, len(wizard.Tabs))
	active := 0
	for i, t := range wizard.Tabs {
		tabLabels[i] = t.String()
		if t == v.Tab {
			active = i
		}
	}

	var content string
	switch v.Tab {
	case wizard.TabPrimary:
		content = insightsView(v.Metrics)
	case wizard.TabNetworkOptimization:
		content = m.chartView(v.Chart)
	}

	sections := []string{
		ui.RenderBold("Dashboard"),
		ui.RenderTabs(tabLabels, active),
		content,
		ui.RenderDim(v.Profile),
	}
	if v.Terminal {
		sections = append(sections, ui.RenderDim("Press enter to start a new session."))
	}
	return strings.Join(sections, "\n\n")
}

func insightsView(metrics wizard.Metrics) string {
	return ui.BoxStyle.Render(strings.Join([]string{
		ui.RenderBold("MedDash Insights"),
		"ICU Beds Available: " + wizard.DisplayValue(metrics.ICUBeds),
		"PPE Stock: " + wizard.DisplayValue(metrics.PPEStock),
		"Ventilator Usage: " + wizard.DisplayValue(metrics.VentilatorUsage),
	}, "\n"))
}

func (m Model) chartView(snap resource.Snapshot[[]float64]) string {
	switch snap.State {
	case resource.StateLoading:
		return m.spinner.View() + " " + ui.RenderDim("Loading chart data…")
	case resource.StateError:
		return ui.RenderError(snap.Message) + "\n" + ui.RenderDim("Press r to retry.")
	case resource.StateSuccess:
		return chart.RenderLine(chart.NewSeries(chart.QuantLabelPrefix, snap.Value))
	default:
		return ""
	}
}

func completeView(v wizard.CompleteView) string {
	who := v.OrganizationName
	if who == "" {
		who = "your organization"
	}
	return ui.BoxStyle.Render(strings.Join([]string{
		ui.RenderSuccess("Thank you!"),
		fmt.Sprintf("The figures for %s have been recorded as %s.", who, v.Role),
		ui.RenderDim("Press enter to start a new session."),
	}, "\n"))
}
