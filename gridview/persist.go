package gridview

import (
	"image/color"

	"fyne.io/fyne/v2"
)

// Settings persistence covers the configuration surface only: size
// constraints, margins, row/column caps, the selectable and multi-selection
// flags and the background colors. Content and selection indexes are
// explicitly not persisted.

// SaveSettings writes the grid's configuration to the app preferences under
// the given key prefix.
func (g *Grid) SaveSettings(prefix string) {
	p := fyne.CurrentApp().Preferences()

	p.SetFloatList(prefix+minItemSizeKey, []float64{float64(g.minItemSize.Width), float64(g.minItemSize.Height)})
	p.SetFloatList(prefix+maxItemSizeKey, []float64{float64(g.maxItemSize.Width), float64(g.maxItemSize.Height)})
	p.SetFloat(prefix+verticalMarginKey, float64(g.verticalMargin))
	p.SetInt(prefix+maxRowsKey, g.maxRows)
	p.SetInt(prefix+maxColumnsKey, g.maxColumns)
	p.SetBool(prefix+selectableKey, g.sel.selectable)
	p.SetBool(prefix+multipleSelectionKey, g.allowsMultipleSelection)

	packed := make([]int, 0, len(g.backgroundColors))
	for _, c := range g.backgroundColors {
		packed = append(packed, packColor(c))
	}
	p.SetIntList(prefix+backgroundColorsKey, packed)
}

// LoadSettings restores a configuration previously written by SaveSettings.
// Missing keys keep the grid's current values.
func (g *Grid) LoadSettings(prefix string) {
	p := fyne.CurrentApp().Preferences()

	if v := p.FloatList(prefix + minItemSizeKey); len(v) == 2 && v[0] > 0 && v[1] > 0 {
		g.minItemSize = fyne.NewSize(float32(v[0]), float32(v[1]))
		g.minSeeded = true
	}
	if v := p.FloatList(prefix + maxItemSizeKey); len(v) == 2 && v[0] >= 0 && v[1] >= 0 {
		g.maxItemSize = fyne.NewSize(float32(v[0]), float32(v[1]))
	}
	if v := p.FloatWithFallback(prefix+verticalMarginKey, float64(g.verticalMargin)); v >= 0 {
		g.verticalMargin = float32(v)
	}
	if v := p.IntWithFallback(prefix+maxRowsKey, g.maxRows); v >= 0 {
		g.maxRows = v
	}
	if v := p.IntWithFallback(prefix+maxColumnsKey, g.maxColumns); v >= 0 {
		g.maxColumns = v
	}
	g.sel.selectable = p.BoolWithFallback(prefix+selectableKey, g.sel.selectable)
	g.allowsMultipleSelection = p.BoolWithFallback(prefix+multipleSelectionKey, g.allowsMultipleSelection)

	if packed := p.IntList(prefix + backgroundColorsKey); len(packed) > 0 {
		colors := make([]color.Color, 0, len(packed))
		for _, v := range packed {
			colors = append(colors, unpackColor(v))
		}
		g.backgroundColors = colors
	}

	g.relayout(true)
	g.Refresh()
}

func packColor(c color.Color) int {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return int(n.R)<<24 | int(n.G)<<16 | int(n.B)<<8 | int(n.A)
}

func unpackColor(v int) color.Color {
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}
}
