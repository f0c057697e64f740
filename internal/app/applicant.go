package app

import (
	"errors"

	"github.com/sardorasatov93-code/Vakansiya-bot/core/logger"
	"github.com/sardorasatov93-code/Vakansiya-bot/core/telegram/callbacks"
	"github.com/sardorasatov93-code/Vakansiya-bot/core/telegram/helpers"
	"github.com/sardorasatov93-code/Vakansiya-bot/core/telegram/keyboard"
	"github.com/sardorasatov93-code/Vakansiya-bot/core/telegram/sender"
	"github.com/sardorasatov93-code/Vakansiya-bot/internal/flow"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// cmdStart greets the applicant, clears any open session and renders the
// district menu. The admin gets a pointer to /admin instead.
func (a *App) cmdStart(c tele.Context) error {
	chat := c.Chat()
	if chat == nil {
		return nil
	}
	if a.isAdmin(c) {
		a.operator.Reset(chat.ID)
		return helpers.SendText(c, textAdminGreeting)
	}

	p := a.engine.Restart(chat.ID)
	if err := helpers.SendMD(c, textStartGreeting, keyboard.RemoveKeyboard()); err != nil {
		return err
	}
	return a.renderPrompt(c, p, false)
}

// ManagerHandler implements router.FSM for text, contact, document and
// photo updates belonging to an open conversation.
func (a *App) ManagerHandler(c tele.Context) error {
	chat := c.Chat()
	if chat == nil {
		return nil
	}

	if a.isAdmin(c) && a.operator.InProgress(chat.ID) {
		return a.adminManagerHandler(c)
	}

	// Commands escape the flow at any step
	switch c.Text() {
	case "/start":
		return a.cmdStart(c)
	case "/admin":
		if a.isAdmin(c) {
			return a.cmdAdmin(c)
		}
	}

	in := flow.Input{Text: c.Text()}
	if msg := c.Message(); msg != nil {
		if msg.Contact != nil {
			in.Contact = msg.Contact.PhoneNumber
		}
		if msg.Document != nil {
			in.Document = &flow.Document{
				FileID:   msg.Document.FileID,
				FileName: msg.Document.FileName,
			}
			in.MIME = msg.Document.MIME
		}
	}

	p, err := a.engine.HandleInput(chat.ID, in)
	switch {
	case errors.Is(err, flow.ErrNoSession):
		return a.cmdStart(c)
	case errors.Is(err, flow.ErrIncomplete):
		logger.Error(helpers.BuildContext(c), "flow", "session.incomplete",
			slog.Int64("chat_id", chat.ID),
		)
		return helpers.SendText(c, textStaleAction)
	case err != nil:
		return err
	}

	if p.Step == flow.StepFinalize {
		return a.finalize(c, p.Application)
	}
	return a.renderPrompt(c, p, false)
}

func (a *App) finalize(c tele.Context, application *flow.Application) error {
	ctx := helpers.BuildContext(c)

	if err := SendApplication(c, a.cfg.Telegram.AdminID, application); err != nil {
		logger.Error(ctx, "flow", "submit.failed",
			slog.String("district", application.District),
			slog.String("job", application.Job),
			slog.String("err", sender.SanitizeErrorMessage(err)),
		)
		return helpers.SendText(c, textSubmitFailed(sender.SanitizeErrorMessage(err)))
	}

	logger.Info(ctx, "flow", "submit.ok",
		slog.String("district", application.District),
		slog.String("job", application.Job),
		slog.Int("documents", len(application.Documents)),
	)
	return helpers.SendMD(c, textSubmitted, keyboard.ReplyButtons([]string{textBtnStart}))
}

// cbGoHome handles the "Bosh sahifa" button from any step.
func (a *App) cbGoHome(c tele.Context) error {
	_ = c.Delete()
	return a.cmdStart(c)
}

// cbDistrictMenu returns to district selection, dropping session progress.
func (a *App) cbDistrictMenu(c tele.Context) error {
	chat := c.Chat()
	if chat == nil {
		return nil
	}
	return a.renderPrompt(c, a.engine.Restart(chat.ID), true)
}

func (a *App) cbDistrictSelected(c tele.Context) error {
	chat := c.Chat()
	if chat == nil {
		return nil
	}
	district := callbacks.PayloadString(c)

	p := a.engine.SelectDistrict(chat.ID, district)
	if p.Rejected {
		if err := helpers.SendText(c, textDistrictEmpty); err != nil {
			return err
		}
	}
	return a.renderPrompt(c, p, true)
}

func (a *App) cbJobSelected(c tele.Context) error {
	chat := c.Chat()
	if chat == nil {
		return nil
	}
	district, job, err := callbacks.PayloadPair(c, "|")
	if err != nil {
		return helpers.SendText(c, textStaleAction)
	}

	p := a.engine.SelectJob(chat.ID, district, job)
	if p.Rejected {
		return a.renderPrompt(c, p, true)
	}
	markup := keyboard.InlineButtonsRows(a.navButtons(p.Step, p.Back))
	return helpers.EditOrSendMD(c, textJobChosen(district, job), markup)
}

// cbNavBack performs a back-navigation edge carried as "from|to" payload.
func (a *App) cbNavBack(c tele.Context) error {
	chat := c.Chat()
	if chat == nil {
		return nil
	}
	from, to, err := callbacks.PayloadPair(c, "|")
	if err != nil {
		return helpers.SendText(c, textStaleAction)
	}

	p, err := a.engine.Back(chat.ID, flow.Step(from), flow.Step(to))
	if err != nil {
		logger.Warn(helpers.BuildContext(c), "flow", "nav.rejected",
			slog.String("payload", from+"|"+to),
			slog.String("err", err.Error()),
		)
		return helpers.SendText(c, textStaleAction)
	}
	return a.renderPrompt(c, p, true)
}

// navButtons builds the back/home row attached to step prompts. The back
// button encodes its graph edge; the home button is the global restart.
func (a *App) navButtons(from, to flow.Step) []keyboard.InlineBtn {
	var btns []keyboard.InlineBtn
	if to != "" {
		btns = append(btns, keyboard.InlineBtn{
			Text:   textBtnBack,
			Unique: cbNav,
			Data:   string(from) + "|" + string(to),
		})
	}
	btns = append(btns, keyboard.InlineBtn{Text: textBtnHome, Unique: cbHome})
	return btns
}

func districtButtons(districts []string, unique string) []keyboard.InlineBtn {
	btns := make([]keyboard.InlineBtn, 0, len(districts))
	for _, d := range districts {
		btns = append(btns, keyboard.InlineBtn{Text: d, Unique: unique, Data: d})
	}
	return btns
}

// renderPrompt maps an engine prompt to a concrete message. Menu steps are
// edited in place where possible; input steps that need a reply keyboard
// always send a fresh message.
func (a *App) renderPrompt(c tele.Context, p flow.Prompt, edit bool) error {
	out := helpers.SendMD
	if edit {
		out = helpers.EditOrSendMD
	}

	switch p.Step {
	case flow.StepSelectDistrict:
		if len(p.Menu) == 0 {
			return out(c, textNoOpenings)
		}
		markup := keyboard.InlineButtonsNPerRow(districtButtons(p.Menu, cbDistrict), 2)
		return out(c, textChooseDistrict, markup)

	case flow.StepSelectJob:
		var rows [][]keyboard.InlineBtn
		for _, job := range p.Menu {
			rows = append(rows, []keyboard.InlineBtn{{
				Text:   job,
				Unique: cbJob,
				Data:   p.District + "|" + job,
			}})
		}
		rows = append(rows, a.navButtons(p.Step, p.Back))
		return out(c, textChooseJob(p.District), keyboard.InlineButtonsRows(rows...))

	case flow.StepEnterName:
		markup := keyboard.InlineButtonsRows(a.navButtons(p.Step, p.Back))
		return out(c, textAskName, markup)

	case flow.StepEnterPhone:
		text := textAskPhone
		if p.Rejected {
			text = textBadPhone
		}
		// Contact request needs a reply keyboard, so this is always a send
		return helpers.SendMD(c, text, keyboard.ContactKeyboard(textBtnContact, textBtnStart))

	case flow.StepEnterPassport:
		markup := keyboard.InlineButtonsRows(a.navButtons(p.Step, p.Back))
		return out(c, textAskPassport, markup)

	default:
		// Document upload steps
		text := textAskDocument(p.Role, a.singleDocument())
		if p.Rejected {
			text = textBadDocument()
		}
		markup := keyboard.InlineButtonsRows(a.navButtons(p.Step, p.Back))
		return out(c, text, markup)
	}
}
