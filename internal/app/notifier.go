package app

import (
	"fmt"

	"github.com/sardorasatov93-code/Vakansiya-bot/internal/flow"

	tele "gopkg.in/telebot.v4"
)

// BuildSummaryCaption renders the human-readable application summary that
// travels on the first attachment of the outbound group.
func BuildSummaryCaption(app *flow.Application) string {
	caption := fmt.Sprintf(
		"🔔 **Yangi Ariza!**\n\n"+
			"🏢 **Tuman:** %s\n"+
			"💼 **Ish joyi:** %s\n"+
			"👤 **F.I.Sh.:** %s\n"+
			"📞 **Telefon:** `%s`\n"+
			"📃 **Pasport:** %s",
		app.District, app.Job, app.FullName, app.Phone, app.Passport,
	)
	if n := len(app.Documents); n > 1 {
		caption += fmt.Sprintf("\n\n**Yuqorida arizachining %d ta hujjati ketma-ket biriktirilgan.**", n)
	}
	return caption
}

func documentLabel(d flow.Document, idx int) string {
	switch d.Role {
	case flow.RoleDiploma:
		return fmt.Sprintf("📄 **%d. Diplom Nusxasi:** `%s`", idx+1, d.FileName)
	case flow.RoleReference:
		return fmt.Sprintf("📃 **%d. Ma'lumotnoma:** `%s`", idx+1, d.FileName)
	case flow.RoleCertificate:
		return fmt.Sprintf("🏆 **%d. Menejerlik Sertifikati:** `%s`", idx+1, d.FileName)
	}
	return fmt.Sprintf("📄 **%d. Hujjat:** `%s`", idx+1, d.FileName)
}

// BuildAlbum assembles the grouped send: every uploaded file as a document
// attachment, summary caption on the first item, short labels on the rest.
func BuildAlbum(app *flow.Application) tele.Album {
	album := make(tele.Album, 0, len(app.Documents))
	for i, d := range app.Documents {
		doc := &tele.Document{
			File:     tele.File{FileID: d.FileID},
			FileName: d.FileName,
			Caption:  documentLabel(d, i),
		}
		if i == 0 {
			doc.Caption = BuildSummaryCaption(app)
		}
		album = append(album, doc)
	}
	return album
}

// SendApplication delivers the finalized bundle to the operator as one
// grouped message. Delivery is synchronous: the caller surfaces any error
// to the applicant and does not retry.
func SendApplication(c tele.Context, operatorID int64, app *flow.Application) error {
	album := BuildAlbum(app)
	if len(album) == 0 {
		return fmt.Errorf("application for %s has no documents", app.FullName)
	}
	_, err := c.Bot().SendAlbum(&tele.User{ID: operatorID}, album, tele.ModeMarkdown)
	return err
}
