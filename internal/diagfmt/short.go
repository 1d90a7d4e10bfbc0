package diagfmt

import (
	"fmt"
	"io"

	"busguard/internal/diag"
	"busguard/internal/source"
)

// Short prints one line per diagnostic, grep- and editor-friendly:
//
//	path:line:col: ERROR SEM3101: message
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode) {
	for _, d := range bag.Items() {
		if loc := location(fs, d.Primary, mode); loc != "" {
			fmt.Fprintf(w, "%s: %s %s: %s\n", loc, d.Severity, d.Code.ID(), d.Message)
			continue
		}
		fmt.Fprintf(w, "%s %s: %s\n", d.Severity, d.Code.ID(), d.Message)
	}
}
