package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/flowedit/binding"
	"github.com/iw2rmb/flowedit/editor"
	"github.com/iw2rmb/flowedit/flow"
	"github.com/iw2rmb/flowedit/widget"
)

var (
	flowSource string
	flowJSON   bool
)

var flowCmd = &cobra.Command{
	Use:          "flow <trace.json>",
	Short:        "Print the jump arrows and annotations derived from an execution trace",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, err := loadTrace(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if flowSource != "" {
			src, err := os.ReadFile(flowSource)
			if err != nil {
				return fmt.Errorf("reading source: %w", err)
			}
			return printAnnotatedSource(out, string(src), steps)
		}
		plan := flow.Render(steps)
		if flowJSON {
			return printPlanJSON(out, plan)
		}
		printPlan(out, plan)
		return nil
	},
}

func init() {
	flowCmd.Flags().StringVar(&flowSource, "source", "", "Render the trace over this source file")
	flowCmd.Flags().BoolVar(&flowJSON, "json", false, "Print the plan as JSON")
}

func loadTrace(path string) ([]flow.Step, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace: %w", err)
	}
	defer f.Close()
	steps, err := flow.LoadSteps(f)
	if err != nil {
		return nil, fmt.Errorf("reading trace %s: %w", path, err)
	}
	return steps, nil
}

func printPlan(w io.Writer, plan flow.Plan) {
	if plan.IsEmpty() {
		fmt.Fprintln(w, "No jumps or annotations.")
		return
	}
	for _, a := range plan.Arrows {
		kind := "jump"
		if a.Exceptional {
			kind = "exception"
		}
		fmt.Fprintf(w, "%-9s L%d -> L%d\n", kind, a.FromLine+1, a.ToLine+1)
	}
	for _, line := range plan.Lines() {
		a := plan.Annotations[line]
		if a.HasNotes {
			fmt.Fprintf(w, "notes     L%d: %s\n", line+1, a.Notes)
		}
		if a.HasException {
			fmt.Fprintf(w, "raised    L%d: %s\n", line+1, a.Exception)
		}
	}
}

type planJSON struct {
	Arrows      []arrowJSON      `json:"arrows"`
	Annotations []annotationJSON `json:"annotations"`
}

type arrowJSON struct {
	From        int  `json:"from"`
	To          int  `json:"to"`
	Exceptional bool `json:"exceptional"`
}

type annotationJSON struct {
	Line      int     `json:"line"`
	Notes     *string `json:"notes"`
	Exception *string `json:"exception"`
}

func printPlanJSON(w io.Writer, plan flow.Plan) error {
	out := planJSON{Arrows: []arrowJSON{}, Annotations: []annotationJSON{}}
	for _, a := range plan.Arrows {
		out.Arrows = append(out.Arrows, arrowJSON{From: a.FromLine, To: a.ToLine, Exceptional: a.Exceptional})
	}
	for _, line := range plan.Lines() {
		a := plan.Annotations[line]
		entry := annotationJSON{Line: line}
		if a.HasNotes {
			entry.Notes = &a.Notes
		}
		if a.HasException {
			entry.Exception = &a.Exception
		}
		out.Annotations = append(out.Annotations, entry)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// printAnnotatedSource renders the trace over src with an offline binding
// and prints the result without styling.
func printAnnotatedSource(w io.Writer, src string, steps []flow.Step) error {
	surface := widget.NewSurface(editor.Config{ShowLineNums: true, StyleForKey: binding.StyleForKey})
	surface.Blur()

	b, _ := binding.New(surface, nil, binding.Props{
		InitialText:   src,
		InitialCached: true,
		ExecutionFlow: steps,
	}, binding.Handlers{}, binding.Options{})
	defer b.Destroy()

	surface.SetSize(renderWidth(src, flow.Render(steps)), surface.Editor().Buffer().LineCount())
	for _, line := range strings.Split(b.View(), "\n") {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// renderWidth is wide enough that no source line or annotation gets clipped.
func renderWidth(src string, plan flow.Plan) int {
	widest := 0
	for _, line := range strings.Split(src, "\n") {
		widest = max(widest, len(line))
	}
	note := 0
	for _, a := range plan.Annotations {
		note = max(note, len(a.Notes)+len(a.Exception))
	}
	// Tabs expand and the gutter takes a few cells.
	return widest*4 + note + 32
}
