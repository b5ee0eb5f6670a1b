package diag

import "fmt"

// Pos marks a 1-based line/column location in a source file.
type Pos struct{ Line, Col int }

// Phase identifies which pass of the pipeline produced a Diagnostic.
type Phase string

const (
	PhaseLex      Phase = "lex"
	PhaseParse    Phase = "parse"
	PhaseSemantic Phase = "semantic"
	PhaseCodegen  Phase = "codegen"
)

// Severity distinguishes messages that halt the pipeline from advisory ones.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is a single compiler message anchored to a source position.
//
// Kind is the stable taxonomy name (e.g. "UnterminatedString",
// "UndefinedVariable") used to look the message up in the catalog; Msg is
// the fully rendered, position-free human text. ID/Title are the catalog
// entry for Kind, populated by Sink.Errorf/Warnf -- empty if the catalog
// has no entry for this (phase, kind) pair.
type Diagnostic struct {
	Phase    Phase
	Severity Severity
	Pos      Pos
	Kind     string
	Msg      string
	ID       string
	Title    string
}

// Error renders the diagnostic in the driver's mandated user-visible
// form: "<phase> error at line L:C: <kind>: <message>".
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s error at line %d:%d: %s: %s", d.Phase, d.Pos.Line, d.Pos.Col, d.Kind, d.Msg)
}

// domainFor maps a pipeline Phase to its codes.json top-level key.
func domainFor(phase Phase) string {
	switch phase {
	case PhaseLex:
		return "lexer"
	case PhaseParse:
		return "parser"
	case PhaseSemantic:
		return "semantic"
	case PhaseCodegen:
		return "codegen"
	default:
		return ""
	}
}

// Sink accumulates diagnostics across phases in emission order.
type Sink struct {
	items []Diagnostic
}

func NewSink() *Sink { return &Sink{} }

func (s *Sink) Add(d Diagnostic) { s.items = append(s.items, d) }

func (s *Sink) Errorf(phase Phase, pos Pos, kind, format string, a ...any) {
	ce, _ := Lookup(domainFor(phase), kind)
	s.Add(Diagnostic{
		Phase: phase, Severity: SeverityError, Pos: pos, Kind: kind,
		Msg: fmt.Sprintf(format, a...), ID: ce.ID, Title: ce.Title,
	})
}

func (s *Sink) Warnf(phase Phase, pos Pos, kind, format string, a ...any) {
	ce, _ := Lookup(domainFor(phase), kind)
	s.Add(Diagnostic{
		Phase: phase, Severity: SeverityWarning, Pos: pos, Kind: kind,
		Msg: fmt.Sprintf(format, a...), ID: ce.ID, Title: ce.Title,
	})
}

func (s *Sink) All() []Diagnostic { return s.items }

// HasErrors reports whether any accumulated diagnostic is error-severity.
// Phases stop the pipeline on errors but never on warnings alone.
func (s *Sink) HasErrors() bool {
	for _, d := range s.items {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// CountBy returns the number of diagnostics (errors and warnings) recorded
// for phase, for the pipeline's summary line.
func (s *Sink) CountBy(phase Phase) int {
	n := 0
	for _, d := range s.items {
		if d.Phase == phase {
			n++
		}
	}
	return n
}
