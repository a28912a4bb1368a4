// Command mipsdsm drives the builder pipeline against a raw ROM image:
// it opens the file, builds a Context over a single segment the caller
// describes on the command line, optionally runs a Lua annotation
// script against it, and reports the resulting symbol/label tables.
// ELF parsing, real MIPS decoding, and assembly text rendering are the
// external collaborators spec.md §1/§6 call out as out of scope. The
// command does not decode instructions or run the analyser or the
// preheater, so the reported tables hold only what the annotation
// script declared.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mipsdisasm/spimdisasm/pkg/addresses"
	"github.com/mipsdisasm/spimdisasm/pkg/annotate"
	"github.com/mipsdisasm/spimdisasm/pkg/config"
	"github.com/mipsdisasm/spimdisasm/pkg/context"
	"github.com/mipsdisasm/spimdisasm/pkg/endian"
	"github.com/mipsdisasm/spimdisasm/pkg/romfile"
)

var (
	romPath     string
	vramStart   string
	littleEndian bool
	annotatePath string
	picFlag     bool
	gpValue     string
)

var rootCmd = &cobra.Command{
	Use:   "mipsdsm",
	Short: "static analysis core for MIPS binaries",
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "load a ROM image and build a Context over it, reporting the resulting symbol and label tables",
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&romPath, "rom", "", "path to the ROM/ELF image (required)")
	buildCmd.Flags().StringVar(&vramStart, "vram-start", "0x80000000", "Vram address the file's first byte is loaded at")
	buildCmd.Flags().BoolVar(&littleEndian, "little-endian", false, "treat the image as little-endian (default big-endian)")
	buildCmd.Flags().StringVar(&annotatePath, "annotate", "", "path to a Lua annotation script")
	buildCmd.Flags().BoolVar(&picFlag, "pic", false, "treat the binary as Position Independent Code")
	buildCmd.Flags().StringVar(&gpValue, "gp", "0", "the $gp register's target, when --pic is set")
	buildCmd.MarkFlagRequired("rom")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	f, err := romfile.Open(romPath)
	if err != nil {
		return err
	}
	defer f.Close()

	bytes := f.Bytes()

	start, err := strconv.ParseUint(vramStart, 0, 32)
	if err != nil {
		return fmt.Errorf("--vram-start: %w", err)
	}

	romRange := addresses.MustAddressRange(addresses.Rom(0), addresses.Rom(uint32(len(bytes))))
	vramRange := addresses.MustAddressRange(addresses.Vram(start), addresses.Vram(start).AddSize(addresses.Size(len(bytes))))
	ranges, err := addresses.NewRomVramRange(romRange, vramRange)
	if err != nil {
		return err
	}

	e := endian.Big
	if littleEndian {
		e = endian.Little
	}
	cfg := config.NewGlobalConfig(e)

	if picFlag {
		gp, err := strconv.ParseUint(gpValue, 0, 32)
		if err != nil {
			return fmt.Errorf("--gp: %w", err)
		}
		cfg = cfg.WithGpConfig(config.NewGpConfig(addresses.Vram(gp), true))
	}

	gb := context.NewGlobalSegmentBuilder(cfg, ranges)

	if annotatePath != "" {
		script, err := os.ReadFile(annotatePath)
		if err != nil {
			return fmt.Errorf("--annotate: %w", err)
		}
		ev := annotate.NewEvaluator(gb)
		defer ev.Close()
		if err := ev.Run(string(script)); err != nil {
			return err
		}
	}

	ov := gb.FinishGlobalSegment()
	finder, err := ov.Process()
	if err != nil {
		return err
	}
	ctx := finder.Build()

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	reportContext(cmd, ctx, isTTY)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
