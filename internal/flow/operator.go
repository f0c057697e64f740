package flow

import (
	"errors"
	"strings"
	"sync"

	"github.com/sardorasatov93-code/Vakansiya-bot/internal/catalog"
)

// DraftMode tags what the operator draft is staged for.
type DraftMode string

const (
	DraftAdd   DraftMode = "add"
	DraftClear DraftMode = "clear"
)

// Draft is the single-slot operator editing state: at most one district is
// being edited or staged for clearing at a time.
type Draft struct {
	Mode     DraftMode
	District string
}

// ErrNoDraft is returned when a mutation arrives without a staged district.
var ErrNoDraft = errors.New("flow: no operator draft in progress")

// OperatorFlow drives catalog mutation for the single privileged identity.
// Unlike the applicant engine it talks to the full store, since it is the
// only writer.
type OperatorFlow struct {
	store catalog.Store

	mu     sync.Mutex
	drafts map[int64]*Draft
}

// NewOperatorFlow wires the operator flow to its catalog store.
func NewOperatorFlow(store catalog.Store) *OperatorFlow {
	return &OperatorFlow{
		store:  store,
		drafts: make(map[int64]*Draft),
	}
}

// Store exposes the backing catalog store.
func (o *OperatorFlow) Store() catalog.Store { return o.store }

// Draft returns the chat's current draft, if any.
func (o *OperatorFlow) Draft(chatID int64) (Draft, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	d, ok := o.drafts[chatID]
	if !ok {
		return Draft{}, false
	}
	return *d, true
}

// InProgress reports whether the operator is mid-edit in this chat.
func (o *OperatorFlow) InProgress(chatID int64) bool {
	_, ok := o.Draft(chatID)
	return ok
}

// Reset drops any staged draft, returning the flow to idle.
func (o *OperatorFlow) Reset(chatID int64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.drafts, chatID)
}

// StageAdd stages a district for repeated job-name entry.
func (o *OperatorFlow) StageAdd(chatID int64, district string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.drafts[chatID] = &Draft{Mode: DraftAdd, District: district}
}

// AddJob appends one free-text job title to the staged district.
// A duplicate title reports false and the draft stays open; the operator
// leaves this state only via an explicit done action.
func (o *OperatorFlow) AddJob(chatID int64, title string) (string, bool, error) {
	o.mu.Lock()
	d, ok := o.drafts[chatID]
	o.mu.Unlock()
	if !ok || d.Mode != DraftAdd {
		return "", false, ErrNoDraft
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return d.District, false, nil
	}

	added, err := o.store.Append(d.District, title)
	if err != nil {
		return d.District, false, err
	}
	return d.District, added, nil
}

// StageClear stages a district for clearing. The destructive operation
// happens only on a matching ConfirmClear.
func (o *OperatorFlow) StageClear(chatID int64, district string) int {
	o.mu.Lock()
	o.drafts[chatID] = &Draft{Mode: DraftClear, District: district}
	o.mu.Unlock()
	return len(o.store.Jobs(district))
}

// ConfirmClear performs the staged clear and reports the removed count.
// The confirmation token must name the staged district; anything else is
// rejected without touching the catalog.
func (o *OperatorFlow) ConfirmClear(chatID int64, district string) (int, error) {
	o.mu.Lock()
	d, ok := o.drafts[chatID]
	if ok {
		delete(o.drafts, chatID)
	}
	o.mu.Unlock()

	if !ok || d.Mode != DraftClear || d.District != district {
		return 0, ErrNoDraft
	}
	return o.store.Clear(district)
}

// Listing reloads the catalog from durable storage and returns it with
// the canonical district order, so external edits show up.
func (o *OperatorFlow) Listing() (catalog.Catalog, []string) {
	c := o.store.Reload()
	return c, catalog.CanonicalDistricts
}
