package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"physmap/internal/domain"
)

// Terminal colours
var (
	brand  = color.New(color.FgHiCyan, color.Bold)
	subtle = color.New(color.FgHiBlack)
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed)
	warn   = color.New(color.FgYellow)
)

// categoryColors approximates the canvas palette on a terminal
var categoryColors = map[domain.Category]*color.Color{
	domain.CategoryMechanics:        color.New(color.FgBlue),
	domain.CategoryElectromagnetism: color.New(color.FgYellow),
	domain.CategoryThermodynamics:   color.New(color.FgRed),
	domain.CategoryMath:             color.New(color.FgGreen),
	domain.CategoryDefault:          color.New(color.FgWhite),
}

func categoryColor(c domain.Category) *color.Color {
	if col, ok := categoryColors[c]; ok {
		return col
	}
	return categoryColors[domain.CategoryDefault]
}

// table prints a simple aligned table
func table(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	headerLine := "  "
	sepLine := "  "
	for i, h := range headers {
		headerLine += fmt.Sprintf("%-*s  ", widths[i], h)
		sepLine += strings.Repeat("─", widths[i]) + "  "
	}
	subtle.Fprintln(w, headerLine)
	subtle.Fprintln(w, sepLine)

	for _, row := range rows {
		line := "  "
		for i, cell := range row {
			if i < len(widths) {
				line += fmt.Sprintf("%-*s  ", widths[i], cell)
			}
		}
		fmt.Fprintln(w, line)
	}
}
