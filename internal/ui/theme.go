// Package ui provides the CrankHint preview application UI components.
//
// This file defines a custom compact Fyne theme so the canvas gets most of the window.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// PreviewTheme wraps the default Fyne theme with compact sizing overrides.
type PreviewTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	system  bool
}

// NewPreviewTheme creates a PreviewTheme that follows the system variant.
func NewPreviewTheme() *PreviewTheme {
	return &PreviewTheme{
		base:   theme.DefaultTheme(),
		system: true,
	}
}

// NewPreviewThemeFor creates a PreviewTheme from a config value:
// "light", "dark" or anything else for the system default.
func NewPreviewThemeFor(name string) *PreviewTheme {
	t := NewPreviewTheme()
	t.SetThemeName(name)
	return t
}

// SetThemeName updates the variant from a config value.
func (t *PreviewTheme) SetThemeName(name string) {
	switch name {
	case "light":
		t.variant, t.system = theme.VariantLight, false
	case "dark":
		t.variant, t.system = theme.VariantDark, false
	default:
		t.system = true
	}
}

// Color delegates to the base theme, forcing the stored variant unless
// the theme follows the system.
func (t *PreviewTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if !t.system {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

// Font delegates to the base theme.
func (t *PreviewTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *PreviewTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *PreviewTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}
