package diag

import (
	"busguard/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// HasLocation reports whether the diagnostic points into a source file.
func (d Diagnostic) HasLocation() bool {
	return d.Primary.IsValid()
}
