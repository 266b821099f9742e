package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/medalytics/medalytics-cli/internal/resource"
	"github.com/medalytics/medalytics-cli/internal/wizard"
)

type keyMap struct {
	Next       key.Binding
	Back       key.Binding
	FocusNext  key.Binding
	FocusPrev  key.Binding
	PrevOption key.Binding
	NextOption key.Binding
	PrevTab    key.Binding
	NextTab    key.Binding
	Primary    key.Binding
	Optimize   key.Binding
	Retry      key.Binding
	Restart    key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("enter", "pgdown"),
			key.WithHelp("enter", "next"),
		),
		Back: key.NewBinding(
			key.WithKeys("pgup", "ctrl+b"),
			key.WithHelp("pgup", "back"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		FocusPrev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		PrevOption: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←/→", "change role"),
		),
		NextOption: key.NewBinding(
			key.WithKeys("right", " "),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/→", "switch tab"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("right", "l"),
		),
		Primary: key.NewBinding(
			key.WithKeys("1"),
		),
		Optimize: key.NewBinding(
			key.WithKeys("2"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Restart: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// update enables the bindings that do something on the current screen, so
// the help line only lists those.
func (k *keyMap) update(c *wizard.Controller, focus int) {
	step := c.Step()
	onForm := step == wizard.StepOrganization || step == wizard.StepMetrics
	onDashboard := step == wizard.StepDashboard

	k.Next.SetEnabled(c.CanAdvance())
	k.Back.SetEnabled(c.CanRetreat())
	k.FocusNext.SetEnabled(onForm)
	k.FocusPrev.SetEnabled(onForm)

	roleFocused := step == wizard.StepOrganization && focus == roleField
	k.PrevOption.SetEnabled(roleFocused)
	k.NextOption.SetEnabled(roleFocused)

	k.PrevTab.SetEnabled(onDashboard)
	k.NextTab.SetEnabled(onDashboard)
	k.Primary.SetEnabled(onDashboard)
	k.Optimize.SetEnabled(onDashboard)

	k.Retry.SetEnabled(onDashboard && c.Tab() == wizard.TabNetworkOptimization &&
		c.Chart().State() == resource.StateError)
	k.Restart.SetEnabled(c.IsTerminal())
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Restart, k.Back, k.FocusNext, k.PrevOption, k.PrevTab, k.Retry, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
