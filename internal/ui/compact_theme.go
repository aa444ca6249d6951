package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// CompactTheme shrinks padding and text so the results table fits the small
// default window
type CompactTheme struct{}

// NewCompactTheme creates a new compact theme
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{}
}

// Color returns theme colors
func (t *CompactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameSuccess:
		return color.RGBA{R: 46, G: 160, B: 67, A: 255} // Green for finished downloads
	case theme.ColorNameError:
		return color.RGBA{R: 183, G: 28, B: 28, A: 255} // Red for errors
	case theme.ColorNamePrimary:
		return color.RGBA{R: 0, G: 150, B: 136, A: 255} // Teal for download buttons
	case theme.ColorNameHeaderBackground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 38, G: 38, B: 38, A: 255} // Table header, dark
		}
		return color.RGBA{R: 232, G: 232, B: 232, A: 255} // Table header, light
	case theme.ColorNameBackground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 18, G: 18, B: 18, A: 255} // Dark gray
		}
		return color.RGBA{R: 250, G: 250, B: 250, A: 255} // Light gray
	}

	// Use default colors for everything else
	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	// Use default theme fonts
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	// Use default theme icons
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3 // Reduced from default 4
	case theme.SizeNameInnerPadding:
		return 6 // Reduced from default 8
	case theme.SizeNameLineSpacing:
		return 2 // Reduced from default 4
	case theme.SizeNameScrollBar:
		return 10 // Reduced from default 16
	case theme.SizeNameText:
		return 13 // Reduced from default 14
	case theme.SizeNameHeadingText:
		return 18 // Reduced from default 24
	case theme.SizeNameSubHeadingText:
		return 14 // Reduced from default 18
	case theme.SizeNameInputRadius:
		return 3 // Reduced from default 5
	}

	// Use default theme for everything else
	return theme.DefaultTheme().Size(name)
}
