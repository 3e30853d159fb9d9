// Package report renders rig summaries for the terminal.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/aemckenna/rig-calc/internal/catalog"
	"github.com/aemckenna/rig-calc/internal/rig"
	"github.com/aemckenna/rig-calc/internal/session"
)

// Band colours.
var (
	colorNormal  = lipgloss.Color("#00E676")
	colorWarning = lipgloss.Color("#FFD700")
	colorDanger  = lipgloss.Color("#FF5252")
	colorMuted   = lipgloss.Color("#8C8C8C")
)

// gridColumns is the number of channels per row in the text grid.
const gridColumns = 32

// Grid glyphs.
const (
	glyphEmpty   = "."
	glyphUsed    = "#"
	glyphOverlap = "X"
)

// Writer renders tables to an output stream. Colour is only emitted when the
// stream is a terminal.
type Writer struct {
	out      io.Writer
	renderer *lipgloss.Renderer
	title    lipgloss.Style
	header   lipgloss.Style
	muted    lipgloss.Style
	bands    map[rig.Band]lipgloss.Style
}

// New creates a Writer for out.
func New(out io.Writer) *Writer {
	r := lipgloss.NewRenderer(out)
	return &Writer{
		out:      out,
		renderer: r,
		title:    r.NewStyle().Bold(true),
		header:   r.NewStyle().Bold(true).Padding(0, 1),
		muted:    r.NewStyle().Foreground(colorMuted),
		bands: map[rig.Band]lipgloss.Style{
			rig.BandNormal:  r.NewStyle().Foreground(colorNormal),
			rig.BandWarning: r.NewStyle().Foreground(colorWarning).Bold(true),
			rig.BandOver:    r.NewStyle().Foreground(colorDanger).Bold(true),
		},
	}
}

func (w *Writer) newTable(headers ...string) *table.Table {
	cell := w.renderer.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(w.muted).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return w.header
			}
			return cell
		})
}

func (w *Writer) printf(format string, args ...any) error {
	_, err := fmt.Fprintf(w.out, format, args...)
	return err
}

// Summary writes the rig totals followed by universe and circuit tables.
func (w *Writer) Summary(s session.Summary) error {
	if err := w.printf("%s\n", w.title.Render(fmt.Sprintf(
		"Rig: %d lines, %d fixtures, %d channels, %s W at %s V",
		s.Lines, s.Fixtures, s.TotalChannels, formatNumber(s.TotalWatts), formatNumber(s.Voltage)))); err != nil {
		return err
	}
	if s.Lines == 0 {
		return w.printf("%s\n", w.muted.Render("The rig is empty."))
	}

	universes := w.newTable("Universe", "Lines", "Channels", "Free", "Used")
	for _, u := range s.Universes {
		free := max(rig.UniverseSize-u.Used, 0)
		status := fmt.Sprintf("%.0f%%", u.Percent*100)
		if u.Over {
			status = w.bands[rig.BandOver].Render("OVER CAPACITY")
		}
		universes.Row(strconv.Itoa(u.Universe), strconv.Itoa(u.Lines),
			fmt.Sprintf("%d / %d", u.Used, rig.UniverseSize), strconv.Itoa(free), status)
	}

	circuits := w.newTable("Circuit", "Lines", "Watts", "Amps", "Load")
	for _, c := range s.Circuits {
		circuits.Row(c.Circuit, strconv.Itoa(c.Lines), formatNumber(c.Watts),
			strconv.FormatFloat(c.DisplayAmps, 'f', 1, 64), w.band(c.Band))
	}

	return w.printf("\n%s\n\n%s\n", universes.Render(), circuits.Render())
}

func (w *Writer) band(b rig.Band) string {
	style, ok := w.bands[b]
	if !ok {
		return b.Description()
	}
	return style.Render(b.Description())
}

// Grid writes a universe map, gridColumns channels per row, and its legend.
// '.' is a free channel, '#' one occupant and 'X' an overlap.
func (w *Writer) Grid(g *rig.Grid) error {
	if err := w.printf("\n%s\n", w.title.Render(fmt.Sprintf(
		"Universe %d: %d channels occupied, %d overlapping", g.Universe, g.Occupied(), g.Overlapping))); err != nil {
		return err
	}

	var b strings.Builder
	for i, slot := range g.Slots {
		if i%gridColumns == 0 {
			if i > 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "%3d ", slot.Channel)
		}
		switch slot.State {
		case rig.SlotUsed:
			b.WriteString(glyphUsed)
		case rig.SlotOverlap:
			b.WriteString(w.bands[rig.BandOver].Render(glyphOverlap))
		default:
			b.WriteString(w.muted.Render(glyphEmpty))
		}
	}
	if err := w.printf("%s\n", b.String()); err != nil {
		return err
	}

	if len(g.Legend) == 0 {
		return nil
	}
	legend := w.newTable("Line", "Fixture", "Channels")
	for _, e := range g.Legend {
		swatch := w.renderer.NewStyle().Foreground(lipgloss.Color(e.Color)).Render("■")
		legend.Row(strconv.Itoa(e.LineID), swatch+" "+e.Label,
			fmt.Sprintf("%d-%d", e.StartAddress, e.EndAddress))
	}
	return w.printf("%s\n", legend.Render())
}

// Catalog writes one row per fixture mode.
func (w *Writer) Catalog(fixtures []catalog.FixtureType) error {
	t := w.newTable("ID", "Fixture", "Mode", "Channels", "Watts")
	for _, f := range fixtures {
		for _, m := range f.Modes {
			t.Row(f.ID, f.DisplayName(), m.Name, strconv.Itoa(m.Channels), formatNumber(m.PowerWatts))
		}
	}
	return w.printf("%s\n", t.Render())
}

// formatNumber prints whole numbers without a decimal part.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
