package core

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/josephlewis42/crush/core/config"
)

var (
	ColorBoldRed = color.New(color.FgRed, color.Bold)
)

// ColorPrinter decides whether output gets colorized.
type ColorPrinter struct {
	// Mode is one of config.ColorAlways, config.ColorAuto or
	// config.ColorNever.
	Mode string
	// IsTerminal reports whether the output is a terminal, it decides the
	// config.ColorAuto mode.
	IsTerminal bool
}

func (c *ColorPrinter) ShouldColor() bool {
	switch {
	case c.Mode == config.ColorNever:
		return false
	case c.Mode == config.ColorAlways:
		return true
	default:
		return c.IsTerminal
	}
}

func (c *ColorPrinter) Sprintf(attrs *color.Color, format string, a ...interface{}) string {
	if !c.ShouldColor() {
		return fmt.Sprintf(format, a...)
	}

	// The package level NoColor detection only looks at os.Stdout.
	forced := *attrs
	forced.EnableColor()
	return forced.Sprintf(format, a...)
}
