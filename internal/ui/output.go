package ui

import (
	"fmt"
	"strings"
)

// Output helpers for the one-shot commands. The TUI composes with the Render
// functions instead.

func Title(text string) {
	fmt.Println(TitleStyle.Render(text))
}

// Success prints a message with a checkmark.
func Success(text string) {
	fmt.Println(SuccessStyle.Render("✓ " + text))
}

// Error prints a message with a cross.
func Error(text string) {
	fmt.Println(ErrorStyle.Render("✗ " + text))
}

func Warning(text string) {
	fmt.Println(WarningStyle.Render("! " + text))
}

// Dim prints secondary text, indented.
func Dim(text string) {
	fmt.Println(DimStyle.Render("  " + text))
}

func Box(text string) {
	fmt.Println(BoxStyle.Render(text))
}

func Line() {
	fmt.Println()
}

func Print(text string) {
	fmt.Println(text)
}

// Indent returns text prefixed with two spaces per level.
func Indent(text string, level int) string {
	if level < 1 {
		return text
	}
	return strings.Repeat("  ", level) + text
}

func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

func RenderSuccess(text string) string {
	return SuccessStyle.Render(text)
}

func RenderError(text string) string {
	return ErrorStyle.Render(text)
}

func RenderWarning(text string) string {
	return WarningStyle.Render(text)
}

func RenderDim(text string) string {
	return DimStyle.Render(text)
}

func RenderBold(text string) string {
	return BoldStyle.Render(text)
}

func RenderAccent(text string) string {
	return AccentStyle.Render(text)
}

func RenderURL(text string) string {
	return URLStyle.Render(text)
}

// RenderTabs draws a tab bar with the active label highlighted.
func RenderTabs(labels []string, active int) string {
	rendered := make([]string, len(labels))
	for i, label := range labels {
		if i == active {
			rendered[i] = ActiveTabStyle.Render(label)
		} else {
			rendered[i] = InactiveTabStyle.Render(label)
		}
	}
	return strings.Join(rendered, " ")
}
