package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sardorasatov93-code/Vakansiya-bot/internal/flow"

	tele "gopkg.in/telebot.v4"
)

func sampleApplication() *flow.Application {
	return &flow.Application{
		District: "Zomin",
		Job:      "2-DMTT",
		FullName: "Ali Valiyev",
		Phone:    "+998901234567",
		Passport: "IIB 123456 2030-01-01",
		Documents: []flow.Document{
			{Role: flow.RoleDiploma, FileID: "f1", FileName: "diplom.pdf"},
		},
	}
}

func TestSummaryCaptionContainsEveryField(t *testing.T) {
	caption := BuildSummaryCaption(sampleApplication())

	for _, want := range []string{"Zomin", "2-DMTT", "Ali Valiyev", "+998901234567", "IIB 123456 2030-01-01"} {
		assert.Contains(t, caption, want)
	}
	// Single document: no trailing attachment-count line
	assert.NotContains(t, caption, "hujjati ketma-ket")
}

func TestAlbumCaptionOnFirstItemOnly(t *testing.T) {
	app := sampleApplication()
	app.Documents = append(app.Documents,
		flow.Document{Role: flow.RoleReference, FileID: "f2", FileName: "malumotnoma.pdf"},
		flow.Document{Role: flow.RoleCertificate, FileID: "f3", FileName: "sertifikat.pdf"},
	)

	album := BuildAlbum(app)
	require.Len(t, album, 3)

	first, ok := album[0].(*tele.Document)
	require.True(t, ok)
	assert.Equal(t, BuildSummaryCaption(app), first.Caption)
	assert.Contains(t, first.Caption, "3 ta hujjati")

	second, ok := album[1].(*tele.Document)
	require.True(t, ok)
	assert.Contains(t, second.Caption, "Ma'lumotnoma")
	assert.Contains(t, second.Caption, "malumotnoma.pdf")

	third, ok := album[2].(*tele.Document)
	require.True(t, ok)
	assert.Contains(t, third.Caption, "Sertifikati")
}

func TestAlbumSingleDocument(t *testing.T) {
	album := BuildAlbum(sampleApplication())
	require.Len(t, album, 1)

	doc, ok := album[0].(*tele.Document)
	require.True(t, ok)
	assert.Equal(t, "f1", doc.File.FileID)
	assert.Contains(t, doc.Caption, "Yangi Ariza")
}
