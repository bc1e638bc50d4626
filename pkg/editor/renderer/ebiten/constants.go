// Package ebiten runs the interactive map editor in an Ebiten window.
package ebiten

import "kmap/pkg/engine/palette"

// UI colors outside the map itself, which takes its colors from the style
var (
	colorPanelBackground = palette.RGB{R: 30, G: 30, B: 50}    // Dark blue-gray
	colorPanelBorder     = palette.RGB{R: 120, G: 130, B: 180} // Soft blue-purple-gray
	colorStatusText      = palette.RGB{R: 200, G: 210, B: 245} // Soft off-white
	colorSubtle          = palette.RGB{R: 120, G: 130, B: 180}
	colorPending         = palette.RGB{R: 255, G: 220, B: 100} // Yellow while a group awaits confirmation
)

const (
	uiFontSize     = 14
	statusPadding  = 10
	statusLineGap  = 4
	helpPadding    = 16
	helpCornerSize = 8
	swatchSize     = 12
)
