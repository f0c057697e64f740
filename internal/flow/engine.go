package flow

import (
	"errors"
	"strings"
)

var (
	// ErrNoSession is returned for step input arriving without an active session.
	ErrNoSession = errors.New("flow: no active session")
	// ErrIncomplete signals missing fields at finalization; the session is
	// aborted to idle when this is returned.
	ErrIncomplete = errors.New("flow: session incomplete at finalization")
)

// RejectKind explains why an input was rejected. The session state is
// unchanged for every rejection; the same step is prompted again.
type RejectKind string

const (
	RejectNone        RejectKind = ""
	RejectNoOpenings  RejectKind = "no_openings"
	RejectUnknownJob  RejectKind = "unknown_job"
	RejectEmptyName   RejectKind = "empty_name"
	RejectNoPhone     RejectKind = "no_phone"
	RejectBadDocument RejectKind = "bad_document"
	RejectUnexpected  RejectKind = "unexpected_input"
)

// Prompt tells the bot layer what to render next. Menu carries district or
// job options for menu steps. Application is set only when Step is
// StepFinalize.
type Prompt struct {
	Step     Step
	Back     Step
	Role     DocRole
	District string
	Job      string
	Menu     []string

	Rejected bool
	Reject   RejectKind

	Application *Application
}

// Input is one inbound applicant event, already stripped of transport detail.
type Input struct {
	Text     string
	Contact  string
	Document *Document
	MIME     string
}

// Openings is the catalog view the applicant flow needs.
type Openings interface {
	Jobs(district string) []string
	DistrictsWithOpenings() []string
}

// Engine drives applicant sessions over the navigation graph.
type Engine struct {
	graph    *Graph
	openings Openings
	sessions *SessionStore
}

// NewEngine wires the graph, catalog view and session store together.
func NewEngine(graph *Graph, openings Openings, sessions *SessionStore) *Engine {
	return &Engine{graph: graph, openings: openings, sessions: sessions}
}

// Graph exposes the navigation graph for rendering decisions.
func (e *Engine) Graph() *Graph { return e.graph }

// Sessions exposes the underlying session store.
func (e *Engine) Sessions() *SessionStore { return e.sessions }

// InProgress reports whether the chat has a session mid-flow.
func (e *Engine) InProgress(chatID int64) bool {
	sess, ok := e.sessions.Get(chatID)
	return ok && sess.Step != ""
}

// Restart drops any session state and returns the district menu prompt.
func (e *Engine) Restart(chatID int64) Prompt {
	e.sessions.Delete(chatID)
	return e.DistrictMenu()
}

// DistrictMenu renders the entry step: districts holding open listings.
func (e *Engine) DistrictMenu() Prompt {
	return Prompt{
		Step: StepSelectDistrict,
		Menu: e.openings.DistrictsWithOpenings(),
	}
}

// SelectDistrict handles a district menu choice. A district without
// listings (stale button) re-renders the district menu.
func (e *Engine) SelectDistrict(chatID int64, district string) Prompt {
	jobs := e.openings.Jobs(district)
	if len(jobs) == 0 {
		p := e.DistrictMenu()
		p.Rejected = true
		p.Reject = RejectNoOpenings
		return p
	}

	sess := e.sessions.GetOrCreate(chatID)
	sess.DraftDistrict = district
	e.sessions.Touch(chatID)

	return Prompt{
		Step:     StepSelectJob,
		Back:     StepSelectDistrict,
		District: district,
		Menu:     jobs,
	}
}

// SelectJob handles a job menu choice and opens the session proper.
// A job no longer present under the district re-renders the job menu.
func (e *Engine) SelectJob(chatID int64, district, job string) Prompt {
	jobs := e.openings.Jobs(district)
	if len(jobs) == 0 {
		p := e.DistrictMenu()
		p.Rejected = true
		p.Reject = RejectNoOpenings
		return p
	}
	found := false
	for _, j := range jobs {
		if j == job {
			found = true
			break
		}
	}
	if !found {
		return Prompt{
			Step:     StepSelectJob,
			Back:     StepSelectDistrict,
			District: district,
			Menu:     jobs,
			Rejected: true,
			Reject:   RejectUnknownJob,
		}
	}

	sess := e.sessions.GetOrCreate(chatID)
	e.resetFrom(sess, StepSelectDistrict)
	sess.District = district
	sess.Job = job
	sess.DraftDistrict = district
	sess.Step = StepEnterName
	e.sessions.Touch(chatID)

	return e.promptFor(sess, StepEnterName)
}

// HandleInput feeds one text/contact/document event into the chat's session.
func (e *Engine) HandleInput(chatID int64, in Input) (Prompt, error) {
	sess, ok := e.sessions.Get(chatID)
	if !ok || sess.Step == "" {
		return Prompt{}, ErrNoSession
	}
	e.sessions.Touch(chatID)

	spec, ok := e.graph.Spec(sess.Step)
	if !ok {
		return Prompt{}, ErrNoSession
	}

	switch spec.Accepts {
	case InputText:
		if sess.Step == StepEnterPassport {
			return e.finalize(chatID, sess, in.Text)
		}
		name := strings.TrimSpace(in.Text)
		if name == "" {
			return e.reject(sess, RejectEmptyName), nil
		}
		sess.FullName = name
		return e.advance(sess)

	case InputTextOrContact:
		phone := strings.TrimSpace(in.Contact)
		if phone == "" {
			phone = strings.TrimSpace(in.Text)
		}
		if phone == "" {
			return e.reject(sess, RejectNoPhone), nil
		}
		sess.Phone = phone
		return e.advance(sess)

	case InputDocument:
		if in.Document == nil || !AllowedDocument(in.MIME) {
			return e.reject(sess, RejectBadDocument), nil
		}
		doc := *in.Document
		doc.Role = spec.Role
		sess.Documents = append(sess.Documents, doc)
		return e.advance(sess)
	}

	return e.reject(sess, RejectUnexpected), nil
}

// Back performs a declared back-navigation edge. Tokens naming an
// undeclared edge are rejected with ErrNoSession semantics left to the
// caller; the session is untouched.
func (e *Engine) Back(chatID int64, from, to Step) (Prompt, error) {
	if !e.graph.ValidEdge(from, to) {
		return Prompt{}, errors.New("flow: undeclared navigation edge " + string(from) + " -> " + string(to))
	}
	sess, ok := e.sessions.Get(chatID)
	if !ok {
		return Prompt{}, ErrNoSession
	}
	e.sessions.Touch(chatID)

	e.resetFrom(sess, to)
	sess.Step = to

	if to == StepSelectJob || to == StepSelectDistrict {
		// Menu steps re-render from live catalog state
		if to == StepSelectDistrict {
			sess.Step = ""
			return e.DistrictMenu(), nil
		}
		return e.SelectDistrict(chatID, sess.DraftDistrict), nil
	}
	return e.promptFor(sess, to), nil
}

func (e *Engine) advance(sess *Session) (Prompt, error) {
	next, ok := e.graph.Next(sess.Step)
	if !ok {
		return Prompt{}, ErrIncomplete
	}
	sess.Step = next
	return e.promptFor(sess, next), nil
}

func (e *Engine) reject(sess *Session, kind RejectKind) Prompt {
	p := e.promptFor(sess, sess.Step)
	p.Rejected = true
	p.Reject = kind
	return p
}

func (e *Engine) promptFor(sess *Session, step Step) Prompt {
	spec, _ := e.graph.Spec(step)
	p := Prompt{
		Step:     step,
		Back:     spec.Back,
		Role:     spec.Role,
		District: sess.District,
		Job:      sess.Job,
	}
	if step == StepSelectJob {
		// Menu steps always carry live catalog state
		p.District = sess.DraftDistrict
		p.Menu = e.openings.Jobs(sess.DraftDistrict)
	}
	return p
}

func (e *Engine) finalize(chatID int64, sess *Session, passport string) (Prompt, error) {
	sess.Passport = strings.TrimSpace(passport)

	wantDocs := len(e.graph.DocumentSteps())
	if sess.District == "" || sess.Job == "" || sess.FullName == "" ||
		sess.Phone == "" || len(sess.Documents) < wantDocs {
		e.sessions.Delete(chatID)
		return Prompt{}, ErrIncomplete
	}

	app := &Application{
		District:  sess.District,
		Job:       sess.Job,
		FullName:  sess.FullName,
		Phone:     sess.Phone,
		Documents: append([]Document(nil), sess.Documents...),
		Passport:  sess.Passport,
	}

	// Cleared regardless of whether outbound delivery later succeeds
	e.sessions.Delete(chatID)

	return Prompt{Step: StepFinalize, Application: app}, nil
}

// resetFrom zeroes every field belonging to the target step or any step
// after it, restoring the "not yet reached" invariant for back and restart
// navigation.
func (e *Engine) resetFrom(sess *Session, target Step) {
	for _, id := range e.graph.order {
		if !e.graph.atOrAfter(id, target) {
			continue
		}
		spec := e.graph.specs[id]
		switch {
		case id == StepSelectDistrict:
			sess.District = ""
			sess.Job = ""
		case id == StepSelectJob:
			sess.Job = ""
		case id == StepEnterName:
			sess.FullName = ""
		case id == StepEnterPhone:
			sess.Phone = ""
		case id == StepEnterPassport:
			sess.Passport = ""
		case spec.Accepts == InputDocument:
			kept := sess.Documents[:0]
			for _, d := range sess.Documents {
				if d.Role != spec.Role {
					kept = append(kept, d)
				}
			}
			sess.Documents = kept
		}
	}
	if len(sess.Documents) == 0 {
		sess.Documents = nil
	}
}
