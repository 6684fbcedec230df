package ui

import (
	"fmt"
	"strings"

	"github.com/vvka-141/jointables/pkg/jointables"
)

// maxListedSamples caps how many sample names the summary spells out.
const maxListedSamples = 8

// RenderSummary describes a finished join. When styled is false the text
// carries no escape sequences and is safe for logs and pipes.
func RenderSummary(s jointables.Summary, styled bool) string {
	headline := fmt.Sprintf("Joined %d sample(s) into %d feature row(s)", len(s.Samples), s.Features)
	rows := [][2]string{
		{"Output", fmt.Sprintf("%s (%s)", s.OutputPath, s.Format)},
		{"Samples", sampleList(s.Samples)},
		{"Filled", fmt.Sprintf("%d cell(s)", s.Filled)},
	}

	var b strings.Builder
	if styled {
		b.WriteString(successStyle.Render("✓ " + headline))
	} else {
		b.WriteString(headline)
	}
	b.WriteString("\n")

	for _, r := range rows {
		if styled {
			b.WriteString("  " + labelStyle.Render(r[0]) + valueStyle.Render(r[1]) + "\n")
		} else {
			fmt.Fprintf(&b, "  %-10s%s\n", r[0], r[1])
		}
	}
	return b.String()
}

// ReportSummary logs the rendered summary as an Info message.
func ReportSummary(logger jointables.Logger, s jointables.Summary, styled bool) {
	logger.Info("%s", strings.TrimSuffix(RenderSummary(s, styled), "\n"))
}

func sampleList(samples []string) string {
	if len(samples) <= maxListedSamples {
		return strings.Join(samples, ", ")
	}
	return fmt.Sprintf("%s, ... (%d more)", strings.Join(samples[:maxListedSamples], ", "), len(samples)-maxListedSamples)
}
