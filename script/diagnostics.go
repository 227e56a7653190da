package script

import "fmt"

// Level is the severity of a Diagnostic.
type Level int

const (
	LevelWarn Level = iota
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Diagnostic is an advisory message produced while extracting pragmas or
// rewriting blocks. Diagnostics never halt the pipeline; the text is always
// processed to completion and malformed input is preserved verbatim.
type Diagnostic struct {
	Level   Level  `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Where   string `json:"where,omitempty"`
	Details string `json:"details,omitempty"`
}

func (d Diagnostic) String() string {
	if d.Where != "" {
		return fmt.Sprintf("[%s %s] %s (%s)", d.Level, d.Code, d.Message, d.Where)
	}
	return fmt.Sprintf("[%s %s] %s", d.Level, d.Code, d.Message)
}

// Diagnostics collects advisory messages across extraction and rewriting.
type Diagnostics struct {
	items []Diagnostic
}

func (ds *Diagnostics) Add(d Diagnostic) {
	ds.items = append(ds.items, d)
}

func (ds *Diagnostics) Warnf(code, where, format string, args ...any) {
	ds.items = append(ds.items, Diagnostic{
		Level:   LevelWarn,
		Code:    code,
		Where:   where,
		Message: fmt.Sprintf(format, args...),
	})
}

// Items returns the collected diagnostics in emission order.
func (ds *Diagnostics) Items() []Diagnostic {
	return ds.items
}
