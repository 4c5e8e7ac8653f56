package diagnostics

import (
	"fmt"

	"github.com/rs/zerolog"
)

type Severity int

const (
	NOTE Severity = iota
	WARNING
)

func (s Severity) String() string {
	switch s {
	case NOTE:
		return "note"
	case WARNING:
		return "warning"
	}
	return "unknown"
}

// Diag is a non-fatal diagnostic. Fatal problems are returned as errors.
type Diag struct {
	Severity Severity
	Message  string
	Loc      *Location
}

func (d Diag) String() string {
	if d.Loc == nil {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%d:%d: %s: %s", d.Loc.Line, d.Loc.Column, d.Severity, d.Message)
}

type Collector struct {
	Diags  []Diag
	logger zerolog.Logger
}

func New() *Collector {
	return NewWithLogger(zerolog.Nop())
}

func NewWithLogger(logger zerolog.Logger) *Collector {
	return &Collector{
		Diags:  nil,
		logger: logger,
	}
}

func (collector *Collector) ReportAndSave(diag Diag) {
	event := collector.logger.Warn()
	if diag.Severity == NOTE {
		event = collector.logger.Info()
	}
	if diag.Loc != nil {
		event = event.Int("line", diag.Loc.Line).Int("col", diag.Loc.Column)
	}
	event.Msg(diag.Message)

	collector.Diags = append(collector.Diags, diag)
}

func (collector *Collector) Warn(message string, loc *Location) {
	collector.ReportAndSave(Diag{Severity: WARNING, Message: message, Loc: loc})
}
