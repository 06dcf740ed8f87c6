package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/tanq16/scenefetch/internal/orchestrator"
	"golang.org/x/term"
)

func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // Default fallback width
	}
	return width
}

// PrintPlan shows what a run is about to do.
func PrintPlan(assets, scenes, splits []string, dryRun bool) {
	PrintHeader("Scene fetch")
	PrintHeader(strings.Repeat(StyleSymbols["hline"], min(getTerminalWidth(), 40)))
	if dryRun {
		PrintWarning(fmt.Sprintf("%s dry run: only checking that remote files exist", StyleSymbols["warning"]))
	}
	if len(assets) > 0 {
		PrintInfo(fmt.Sprintf("%s assets: %s", StyleSymbols["info"], strings.Join(assets, ", ")))
	}
	switch {
	case len(scenes) > 0:
		PrintInfo(fmt.Sprintf("%s scenes: %d", StyleSymbols["info"], len(scenes)))
	case len(splits) > 0:
		PrintInfo(fmt.Sprintf("%s splits: %s", StyleSymbols["info"], strings.Join(splits, ", ")))
	}
}

// PrintReport renders the end-of-run summary: every missing path, or a
// success line when there are none.
func PrintReport(report *orchestrator.Report) {
	if report == nil {
		return
	}
	fmt.Fprintln(Out)
	if report.Probed > 0 {
		PrintDetail(fmt.Sprintf("%s found %d remote files, skipped %d",
			StyleSymbols["bullet"], report.Probed, report.Skipped))
	} else {
		PrintDetail(fmt.Sprintf("%s fetched %d, skipped %d, extracted %d",
			StyleSymbols["bullet"], report.Fetched, report.Skipped, report.Extracted))
	}
	if report.SoftErrors != nil {
		for _, err := range report.SoftErrors.Errors {
			PrintWarning(fmt.Sprintf("%s %v", StyleSymbols["warning"], err))
		}
	}
	if report.Successful() {
		PrintSuccess(fmt.Sprintf("%s Download successful!", StyleSymbols["pass"]))
		return
	}
	PrintError(fmt.Sprintf("%s %d files missing:", StyleSymbols["fail"], len(report.Missing)))
	for _, p := range report.Missing {
		fmt.Fprintf(Out, "  %s %s\n", FDebug(StyleSymbols["arrow"]), p)
	}
}

// PrintCleaned lists the leftovers a clean pass removed, or would remove.
func PrintCleaned(paths []string, dryRun bool) {
	if len(paths) == 0 {
		PrintSuccess(fmt.Sprintf("%s nothing to clean", StyleSymbols["pass"]))
		return
	}
	verb := "removed"
	if dryRun {
		verb = "would remove"
	}
	PrintInfo(fmt.Sprintf("%s %s %d leftover files:", StyleSymbols["info"], verb, len(paths)))
	for _, p := range paths {
		fmt.Fprintf(Out, "  %s %s\n", FDebug(StyleSymbols["arrow"]), p)
	}
}
