package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mipsdisasm/spimdisasm/pkg/context"
)

// reportContext prints a short summary of the built Context's global
// segment. When isTTY is false (output piped or redirected) the section
// dividers are plain ASCII dashes instead of box-drawing characters.
func reportContext(cmd *cobra.Command, ctx *context.Context, isTTY bool) {
	out := cmd.OutOrStdout()

	divider := "----"
	if isTTY {
		divider = "────"
	}

	symbols := ctx.GlobalSegment().Symbols()
	labels := ctx.GlobalSegment().Labels()

	fmt.Fprintf(out, "global segment: %d symbol(s), %d label(s)\n", len(symbols), len(labels))
	if len(symbols) > 0 {
		fmt.Fprintln(out, divider, "symbols", divider)
		for _, s := range symbols {
			fmt.Fprintf(out, "  %s  %s\n", s.Vram(), s.SymbolType())
		}
	}
	if len(labels) > 0 {
		fmt.Fprintln(out, divider, "labels", divider)
		for _, l := range labels {
			fmt.Fprintf(out, "  %s  %s (%d refs)\n", l.Vram(), l.LabelType(), l.ReferenceCounter())
		}
	}

	if got, ok := ctx.GlobalOffsetTable(); ok {
		fmt.Fprintf(out, "GOT at %s: %d local, %d global entries\n", got.Vram, len(got.Locals), len(got.Globals))
	}
}
