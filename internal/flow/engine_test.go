package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOpenings is an in-memory catalog view for engine tests.
type fakeOpenings map[string][]string

func (f fakeOpenings) Jobs(district string) []string { return f[district] }

func (f fakeOpenings) DistrictsWithOpenings() []string {
	var out []string
	for d, jobs := range f {
		if len(jobs) > 0 {
			out = append(out, d)
		}
	}
	return out
}

func newTestEngine(mode DocumentMode, openings fakeOpenings) *Engine {
	return NewEngine(NewApplicantGraph(mode), openings, NewSessionStore())
}

func pdfDoc(name string) Input {
	return Input{
		Document: &Document{FileID: "file-" + name, FileName: name},
		MIME:     "application/pdf",
	}
}

const chatID = int64(100)

func TestSingleDocumentEndToEnd(t *testing.T) {
	e := newTestEngine(ModeSingle, fakeOpenings{"Zomin": {"2-DMTT"}})

	menu := e.DistrictMenu()
	require.Equal(t, []string{"Zomin"}, menu.Menu)

	p := e.SelectDistrict(chatID, "Zomin")
	require.False(t, p.Rejected)
	assert.Equal(t, StepSelectJob, p.Step)
	assert.Equal(t, []string{"2-DMTT"}, p.Menu)

	p = e.SelectJob(chatID, "Zomin", "2-DMTT")
	require.False(t, p.Rejected)
	assert.Equal(t, StepEnterName, p.Step)
	assert.True(t, e.InProgress(chatID))

	p, err := e.HandleInput(chatID, Input{Text: "Ali Valiyev"})
	require.NoError(t, err)
	assert.Equal(t, StepEnterPhone, p.Step)

	p, err = e.HandleInput(chatID, Input{Contact: "+998901234567"})
	require.NoError(t, err)
	assert.Equal(t, StepSubmitDiploma, p.Step)

	p, err = e.HandleInput(chatID, pdfDoc("diplom.pdf"))
	require.NoError(t, err)
	assert.Equal(t, StepEnterPassport, p.Step)

	p, err = e.HandleInput(chatID, Input{Text: "IIB 123456 2030-01-01"})
	require.NoError(t, err)
	require.Equal(t, StepFinalize, p.Step)
	require.NotNil(t, p.Application)

	app := p.Application
	assert.Equal(t, "Zomin", app.District)
	assert.Equal(t, "2-DMTT", app.Job)
	assert.Equal(t, "Ali Valiyev", app.FullName)
	assert.Equal(t, "+998901234567", app.Phone)
	assert.Equal(t, "IIB 123456 2030-01-01", app.Passport)
	require.Len(t, app.Documents, 1)
	assert.Equal(t, "diplom.pdf", app.Documents[0].FileName)

	// Session is gone after finalization
	assert.False(t, e.InProgress(chatID))
}

func TestTripleDocumentSequenceWithRoles(t *testing.T) {
	e := newTestEngine(ModeTriple, fakeOpenings{"Zomin": {"2-DMTT"}})

	e.SelectDistrict(chatID, "Zomin")
	e.SelectJob(chatID, "Zomin", "2-DMTT")
	_, err := e.HandleInput(chatID, Input{Text: "Ali Valiyev"})
	require.NoError(t, err)
	_, err = e.HandleInput(chatID, Input{Text: "+998901234567"})
	require.NoError(t, err)

	p, err := e.HandleInput(chatID, pdfDoc("diplom.pdf"))
	require.NoError(t, err)
	assert.Equal(t, StepSubmitRef, p.Step)

	p, err = e.HandleInput(chatID, pdfDoc("malumotnoma.zip"))
	require.NoError(t, err)
	assert.Equal(t, StepSubmitCert, p.Step)

	p, err = e.HandleInput(chatID, pdfDoc("sertifikat.pdf"))
	require.NoError(t, err)
	assert.Equal(t, StepEnterPassport, p.Step)

	p, err = e.HandleInput(chatID, Input{Text: "AB 1234567"})
	require.NoError(t, err)
	require.NotNil(t, p.Application)
	require.Len(t, p.Application.Documents, 3)
	assert.Equal(t, RoleDiploma, p.Application.Documents[0].Role)
	assert.Equal(t, RoleReference, p.Application.Documents[1].Role)
	assert.Equal(t, RoleCertificate, p.Application.Documents[2].Role)
}

func TestBadDocumentDoesNotAdvance(t *testing.T) {
	e := newTestEngine(ModeSingle, fakeOpenings{"Zomin": {"2-DMTT"}})
	e.SelectDistrict(chatID, "Zomin")
	e.SelectJob(chatID, "Zomin", "2-DMTT")
	_, err := e.HandleInput(chatID, Input{Text: "Ali Valiyev"})
	require.NoError(t, err)
	_, err = e.HandleInput(chatID, Input{Text: "+998901234567"})
	require.NoError(t, err)

	p, err := e.HandleInput(chatID, Input{
		Document: &Document{FileID: "f", FileName: "rasm.jpg"},
		MIME:     "image/jpeg",
	})
	require.NoError(t, err)
	assert.True(t, p.Rejected)
	assert.Equal(t, RejectBadDocument, p.Reject)
	assert.Equal(t, StepSubmitDiploma, p.Step)

	// Plain text on a document step is rejected the same way
	p, err = e.HandleInput(chatID, Input{Text: "mana hujjat"})
	require.NoError(t, err)
	assert.True(t, p.Rejected)

	sess, ok := e.Sessions().Get(chatID)
	require.True(t, ok)
	assert.Equal(t, StepSubmitDiploma, sess.Step)
	assert.Empty(t, sess.Documents)
}

func TestEmptyNameRejected(t *testing.T) {
	e := newTestEngine(ModeSingle, fakeOpenings{"Zomin": {"2-DMTT"}})
	e.SelectDistrict(chatID, "Zomin")
	e.SelectJob(chatID, "Zomin", "2-DMTT")

	p, err := e.HandleInput(chatID, Input{Text: "   "})
	require.NoError(t, err)
	assert.True(t, p.Rejected)
	assert.Equal(t, RejectEmptyName, p.Reject)
	assert.Equal(t, StepEnterName, p.Step)
}

func TestRestartClearsEverything(t *testing.T) {
	e := newTestEngine(ModeSingle, fakeOpenings{"Zomin": {"2-DMTT"}})
	e.SelectDistrict(chatID, "Zomin")
	e.SelectJob(chatID, "Zomin", "2-DMTT")
	_, err := e.HandleInput(chatID, Input{Text: "Ali Valiyev"})
	require.NoError(t, err)

	p := e.Restart(chatID)
	assert.Equal(t, StepSelectDistrict, p.Step)
	assert.False(t, e.InProgress(chatID))

	// Text after restart has no session to land in
	_, err = e.HandleInput(chatID, Input{Text: "Ali Valiyev"})
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestBackEdgesAreClosedEnumeration(t *testing.T) {
	e := newTestEngine(ModeTriple, fakeOpenings{"Zomin": {"2-DMTT"}})
	e.SelectDistrict(chatID, "Zomin")
	e.SelectJob(chatID, "Zomin", "2-DMTT")
	_, err := e.HandleInput(chatID, Input{Text: "Ali Valiyev"})
	require.NoError(t, err)

	// Declared edge: phone -> name
	p, err := e.Back(chatID, StepEnterPhone, StepEnterName)
	require.NoError(t, err)
	assert.Equal(t, StepEnterName, p.Step)

	sess, ok := e.Sessions().Get(chatID)
	require.True(t, ok)
	assert.Empty(t, sess.FullName, "name cleared when stepping back to it")
	assert.Equal(t, "Zomin", sess.District)

	// Fabricated edge: passport -> name is not declared
	_, err = e.Back(chatID, StepEnterPassport, StepEnterName)
	assert.Error(t, err)

	// Unknown origin
	_, err = e.Back(chatID, Step("bogus"), StepEnterName)
	assert.Error(t, err)
}

func TestBackToJobMenuRendersLiveCatalog(t *testing.T) {
	openings := fakeOpenings{"Zomin": {"2-DMTT"}}
	e := newTestEngine(ModeSingle, openings)
	e.SelectDistrict(chatID, "Zomin")
	e.SelectJob(chatID, "Zomin", "2-DMTT")

	openings["Zomin"] = []string{"2-DMTT", "5-DMTT"}

	p, err := e.Back(chatID, StepEnterName, StepSelectJob)
	require.NoError(t, err)
	assert.Equal(t, StepSelectJob, p.Step)
	assert.Equal(t, []string{"2-DMTT", "5-DMTT"}, p.Menu)
}

func TestUnexpectedTextOnJobMenuKeepsButtons(t *testing.T) {
	e := newTestEngine(ModeSingle, fakeOpenings{"Zomin": {"2-DMTT", "5-DMTT"}})
	e.SelectDistrict(chatID, "Zomin")
	e.SelectJob(chatID, "Zomin", "2-DMTT")

	_, err := e.Back(chatID, StepEnterName, StepSelectJob)
	require.NoError(t, err)

	// Free text while the job menu is open re-prompts with the menu intact
	p, err := e.HandleInput(chatID, Input{Text: "qaysi biri yaxshi?"})
	require.NoError(t, err)
	assert.True(t, p.Rejected)
	assert.Equal(t, RejectUnexpected, p.Reject)
	assert.Equal(t, StepSelectJob, p.Step)
	assert.Equal(t, "Zomin", p.District)
	assert.Equal(t, []string{"2-DMTT", "5-DMTT"}, p.Menu)
}

func TestStaleDistrictButtonReRendersMenu(t *testing.T) {
	e := newTestEngine(ModeSingle, fakeOpenings{"Zomin": {"2-DMTT"}})

	p := e.SelectDistrict(chatID, "Paxtakor")
	assert.True(t, p.Rejected)
	assert.Equal(t, RejectNoOpenings, p.Reject)
	assert.Equal(t, StepSelectDistrict, p.Step)
	assert.Equal(t, []string{"Zomin"}, p.Menu)

	p = e.SelectJob(chatID, "Zomin", "5-DMTT")
	assert.True(t, p.Rejected)
	assert.Equal(t, RejectUnknownJob, p.Reject)
	assert.Equal(t, []string{"2-DMTT"}, p.Menu)
}

func TestPhoneDerivableFromTextOrContact(t *testing.T) {
	e := newTestEngine(ModeSingle, fakeOpenings{"Zomin": {"2-DMTT"}})
	e.SelectDistrict(chatID, "Zomin")
	e.SelectJob(chatID, "Zomin", "2-DMTT")
	_, err := e.HandleInput(chatID, Input{Text: "Ali Valiyev"})
	require.NoError(t, err)

	p, err := e.HandleInput(chatID, Input{})
	require.NoError(t, err)
	assert.True(t, p.Rejected)
	assert.Equal(t, RejectNoPhone, p.Reject)

	p, err = e.HandleInput(chatID, Input{Text: "90 123 45 67"})
	require.NoError(t, err)
	assert.False(t, p.Rejected)
	assert.Equal(t, StepSubmitDiploma, p.Step)

	sess, ok := e.Sessions().Get(chatID)
	require.True(t, ok)
	assert.Equal(t, "90 123 45 67", sess.Phone)
}
