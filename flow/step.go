package flow

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidStep reports a trace entry that is neither a line number nor an object.
var ErrInvalidStep = errors.New("flow: step must be a number or an object")

// Step is one executed line.
//
// A bare step only carries Line. A detailed step (Detailed == true) may also
// carry notes and exception text, or be marked as skipped.
type Step struct {
	Line      int
	Detailed  bool
	Skipped   bool
	Exception string
	Notes     string
}

// Bare returns a step that only references a line.
func Bare(line int) Step { return Step{Line: line} }

// Detail returns a detailed, non-skipped step.
func Detail(line int, notes, exception string) Step {
	return Step{Line: line, Detailed: true, Notes: notes, Exception: exception}
}

// Skip returns a detailed step marked as skipped.
func Skip(line int) Step { return Step{Line: line, Detailed: true, Skipped: true} }

type detailedStep struct {
	Line      int     `json:"line"`
	Skipped   bool    `json:"skipped,omitempty"`
	Exception *string `json:"exception"`
	Notes     *string `json:"notes"`
}

func (s *Step) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrInvalidStep
	}
	switch data[0] {
	case '{':
		var d detailedStep
		if err := json.Unmarshal(data, &d); err != nil {
			return fmt.Errorf("decoding detailed step: %w", err)
		}
		*s = Step{Line: d.Line, Detailed: true, Skipped: d.Skipped}
		if d.Exception != nil {
			s.Exception = *d.Exception
		}
		if d.Notes != nil {
			s.Notes = *d.Notes
		}
		return nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var line int
		if err := json.Unmarshal(data, &line); err != nil {
			return fmt.Errorf("decoding line step: %w", err)
		}
		*s = Bare(line)
		return nil
	default:
		return ErrInvalidStep
	}
}

func (s Step) MarshalJSON() ([]byte, error) {
	if !s.Detailed {
		return json.Marshal(s.Line)
	}
	d := detailedStep{Line: s.Line, Skipped: s.Skipped}
	if s.Exception != "" {
		d.Exception = &s.Exception
	}
	if s.Notes != "" {
		d.Notes = &s.Notes
	}
	return json.Marshal(d)
}

// ParseSteps decodes a JSON array of steps.
func ParseSteps(data []byte) ([]Step, error) {
	var steps []Step
	if err := json.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("parsing steps: %w", err)
	}
	return steps, nil
}

// LoadSteps reads and decodes a JSON array of steps.
func LoadSteps(r io.Reader) ([]Step, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading steps: %w", err)
	}
	return ParseSteps(data)
}
