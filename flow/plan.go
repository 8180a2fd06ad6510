package flow

import "sort"

// Plan is the full set of decorations for one trace.
type Plan struct {
	Arrows      []JumpArrow
	Annotations map[int]LineAnnotation
}

// Render computes arrows and annotations for steps.
func Render(steps []Step) Plan {
	return Plan{
		Arrows:      Arrows(steps),
		Annotations: Annotations(steps),
	}
}

// IsEmpty reports whether p draws nothing.
func (p Plan) IsEmpty() bool { return len(p.Arrows) == 0 && len(p.Annotations) == 0 }

// Lines returns annotated lines in ascending order.
func (p Plan) Lines() []int {
	lines := make([]int, 0, len(p.Annotations))
	for line := range p.Annotations {
		lines = append(lines, line)
	}
	sort.Ints(lines)
	return lines
}
