package flow

// DocumentMode selects the shape of the upload stage.
type DocumentMode string

const (
	// ModeSingle collects one document before the passport step.
	ModeSingle DocumentMode = "single"
	// ModeTriple collects diploma, reference and certificate in sequence.
	ModeTriple DocumentMode = "triple"
)

// Spec describes one node of the navigation graph. Back is the fixed
// predecessor used for back navigation; it never depends on how the user
// actually arrived at the step.
type Spec struct {
	ID      Step
	Accepts InputKind
	Back    Step
	Role    DocRole
}

// Graph is the closed set of applicant steps with their declared edges.
type Graph struct {
	mode  DocumentMode
	order []Step
	specs map[Step]Spec
}

// NewApplicantGraph builds the graph for the configured document mode.
func NewApplicantGraph(mode DocumentMode) *Graph {
	if mode != ModeSingle {
		mode = ModeTriple
	}

	specs := []Spec{
		{ID: StepSelectDistrict, Accepts: InputMenu},
		{ID: StepSelectJob, Accepts: InputMenu, Back: StepSelectDistrict},
		{ID: StepEnterName, Accepts: InputText, Back: StepSelectJob},
		{ID: StepEnterPhone, Accepts: InputTextOrContact, Back: StepEnterName},
		{ID: StepSubmitDiploma, Accepts: InputDocument, Back: StepEnterPhone, Role: RoleDiploma},
	}
	lastDoc := StepSubmitDiploma
	if mode == ModeTriple {
		specs = append(specs,
			Spec{ID: StepSubmitRef, Accepts: InputDocument, Back: StepSubmitDiploma, Role: RoleReference},
			Spec{ID: StepSubmitCert, Accepts: InputDocument, Back: StepSubmitRef, Role: RoleCertificate},
		)
		lastDoc = StepSubmitCert
	}
	specs = append(specs, Spec{ID: StepEnterPassport, Accepts: InputText, Back: lastDoc})

	g := &Graph{
		mode:  mode,
		specs: make(map[Step]Spec, len(specs)),
	}
	for _, s := range specs {
		g.order = append(g.order, s.ID)
		g.specs[s.ID] = s
	}
	return g
}

// Mode returns the document mode the graph was built for.
func (g *Graph) Mode() DocumentMode { return g.mode }

// Spec returns the node description for a step.
func (g *Graph) Spec(step Step) (Spec, bool) {
	s, ok := g.specs[step]
	return s, ok
}

// Next returns the step following the given one in forward order.
func (g *Graph) Next(step Step) (Step, bool) {
	for i, id := range g.order {
		if id == step && i+1 < len(g.order) {
			return g.order[i+1], true
		}
	}
	return "", false
}

// ValidEdge reports whether moving from one step back to another is a
// declared edge. Unknown tokens and fabricated origins are rejected here,
// not pattern-matched downstream.
func (g *Graph) ValidEdge(from, to Step) bool {
	spec, ok := g.specs[from]
	if !ok {
		return false
	}
	return spec.Back != "" && spec.Back == to
}

// DocumentSteps lists the upload steps in forward order.
func (g *Graph) DocumentSteps() []Step {
	var out []Step
	for _, id := range g.order {
		if g.specs[id].Accepts == InputDocument {
			out = append(out, id)
		}
	}
	return out
}

// atOrAfter reports whether step a comes at or after step b in forward order.
func (g *Graph) atOrAfter(a, b Step) bool {
	ai, bi := -1, -1
	for i, id := range g.order {
		if id == a {
			ai = i
		}
		if id == b {
			bi = i
		}
	}
	return ai >= 0 && bi >= 0 && ai >= bi
}
