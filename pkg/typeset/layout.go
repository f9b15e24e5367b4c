package typeset

import (
	"math"
	"strings"
)

// Measurer returns the rendered width of text at the given font size.
type Measurer interface {
	MeasureString(text string, fontSize float64) float64
}

type Layout struct {
	FontSize float64
	Lines    []string
	// Number of shrink steps taken before the layout was accepted.
	Iterations int
}

// Height of the laid out text block.
func (l Layout) Height() float64 {
	return float64(len(l.Lines)) * l.FontSize
}

// Wrap greedily packs whitespace-delimited words into lines no wider than
// width. Words are never split, so a word wider than the box sits alone on
// its own line and overflows.
func Wrap(text string, width float64, fontSize float64, measurer Measurer) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	lines := []string{}
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if measurer.MeasureString(candidate, fontSize) > width {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	return append(lines, current)
}

// Fit starts from a font size proportional to the box height and shrinks it
// step by step, re-wrapping each time, until the block fits the box or the
// font size reaches the floor. Boxes too short for the floor start at it.
// At the floor the layout is returned even if it still overflows.
func Fit(text string, width float64, height float64, measurer Measurer, options Options) Layout {
	options = options.withDefaults()

	fontSize := math.Max(height*options.InitialFontRatio, options.MinFontSize)
	lines := Wrap(text, width, fontSize, measurer)
	iterations := 0
	for fontSize > options.MinFontSize && !fits(lines, width, height, fontSize, measurer) {
		fontSize = math.Max(fontSize-options.FontStep, options.MinFontSize)
		lines = Wrap(text, width, fontSize, measurer)
		iterations++
	}
	return Layout{FontSize: fontSize, Lines: lines, Iterations: iterations}
}

func fits(lines []string, width float64, height float64, fontSize float64, measurer Measurer) bool {
	if float64(len(lines))*fontSize > height {
		return false
	}
	for _, line := range lines {
		if measurer.MeasureString(line, fontSize) > width {
			return false
		}
	}
	return true
}
