package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"source-irfitter/internal/match"
)

const percentageValue = 100

var confidenceColors = map[match.Confidence]color.Attribute{
	match.ConfidenceExact:         color.FgGreen,
	match.ConfidenceDisambiguated: color.FgGreen,
	match.ConfidenceHeuristic:     color.FgYellow,
	match.ConfidencePositional:    color.FgYellow,
	match.ConfidenceNone:          color.FgRed,
}

// RenderSummary writes the per-confidence table. Colors are used only when
// colored is set.
func RenderSummary(w io.Writer, s Summary, colored bool) error {
	paint := func(attr color.Attribute, text string) string {
		c := color.New(attr)
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}

		return c.Sprint(text)
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateColumns = false

	tbl.AppendHeader(table.Row{"confidence", "records", "share"})

	for _, c := range match.AllConfidences {
		n := s.ByConfidence[c.String()]
		tbl.AppendRow(table.Row{
			paint(confidenceColors[c], c.String()),
			humanize.Comma(int64(n)),
			share(n, s.Total),
		})
	}

	tbl.AppendFooter(table.Row{"total", humanize.Comma(int64(s.Total)), ""})

	if _, err := fmt.Fprintln(w, tbl.Render()); err != nil {
		return err
	}

	if s.Ambiguous > 0 {
		msg := fmt.Sprintf("%s records flagged ambiguous", humanize.Comma(int64(s.Ambiguous)))
		if _, err := fmt.Fprintln(w, paint(color.FgYellow, msg)); err != nil {
			return err
		}
	}

	if s.Failures > 0 {
		msg := fmt.Sprintf("%s units rejected", humanize.Comma(int64(s.Failures)))
		if _, err := fmt.Fprintln(w, paint(color.FgRed, msg)); err != nil {
			return err
		}
	}

	return nil
}

func share(n, total int) string {
	if total == 0 {
		return "-"
	}

	return humanize.FtoaWithDigits(float64(n)*percentageValue/float64(total), 1) + "%"
}
