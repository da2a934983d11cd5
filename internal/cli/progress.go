package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/mvp-joe/symextract/internal/scan"
)

// progressReporter draws a file progress bar on stderr during batch extraction.
type progressReporter struct {
	quiet bool
	out   io.Writer
	bar   *progressbar.ProgressBar
	done  int
}

func newProgressReporter(out io.Writer, quiet bool) *progressReporter {
	return &progressReporter{quiet: quiet, out: out}
}

// Func returns the callback handed to the scanner, or nil when quiet.
func (p *progressReporter) Func() scan.ProgressFunc {
	if p.quiet {
		return nil
	}
	return p.onFile
}

func (p *progressReporter) onFile(done, total int) {
	if p.bar == nil {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.out),
			progressbar.OptionSetDescription("Extracting symbols"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("files/s"),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(p.out)
			}),
		)
	}
	if delta := done - p.done; delta > 0 {
		p.bar.Add(delta)
		p.done = done
	}
}

// Finish completes the bar if one was started.
func (p *progressReporter) Finish() {
	if p.bar != nil {
		p.bar.Finish()
		p.bar = nil
		p.done = 0
	}
}
