package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sardorasatov93-code/Vakansiya-bot/core/logger"
	"github.com/sardorasatov93-code/Vakansiya-bot/core/telegram/callbacks"
	"github.com/sardorasatov93-code/Vakansiya-bot/core/telegram/helpers"
	"github.com/sardorasatov93-code/Vakansiya-bot/core/telegram/keyboard"
	"github.com/sardorasatov93-code/Vakansiya-bot/internal/catalog"
	"github.com/sardorasatov93-code/Vakansiya-bot/internal/flow"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

func adminHomeRow() []keyboard.InlineBtn {
	return []keyboard.InlineBtn{{Text: textBtnAdminHome, Unique: cbAdminHome}}
}

func (a *App) requireAdmin(c tele.Context) bool {
	if a.isAdmin(c) {
		return true
	}
	_ = helpers.SendText(c, textNotAdmin)
	return false
}

// cmdAdmin shows the operator panel and drops any staged draft.
func (a *App) cmdAdmin(c tele.Context) error {
	if !a.requireAdmin(c) {
		return nil
	}
	a.operator.Reset(c.Chat().ID)
	return a.sendAdminPanel(c, false)
}

func (a *App) sendAdminPanel(c tele.Context, edit bool) error {
	markup := keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{{Text: "➕ Ish joy qo'shish", Unique: cbAdminAdd}},
		[]keyboard.InlineBtn{{Text: "📜 Mavjud ish joylari ro'yxati", Unique: cbAdminList}},
		[]keyboard.InlineBtn{{Text: "🗑️ Tuman ish joylarini tozalash", Unique: cbAdminClear}},
	)
	if edit {
		return helpers.EditOrSendMD(c, textAdminPanel, markup)
	}
	return helpers.SendMD(c, textAdminPanel, markup)
}

func (a *App) cbAdminPanel(c tele.Context) error {
	if !a.requireAdmin(c) {
		return nil
	}
	a.operator.Reset(c.Chat().ID)
	return a.sendAdminPanel(c, true)
}

// cbAdminAddMenu offers every canonical district for job entry, openings
// or not, since adding is how a district gets its first listing.
func (a *App) cbAdminAddMenu(c tele.Context) error {
	if !a.requireAdmin(c) {
		return nil
	}
	a.operator.Reset(c.Chat().ID)

	markup := keyboard.InlineButtonsNPerRow(districtButtons(catalog.CanonicalDistricts, cbAdminDistrict), 2)
	markup = keyboard.AppendRow(markup, adminHomeRow()...)
	return helpers.EditOrSendMD(c, textAdminPickAdd, markup)
}

func (a *App) cbAdminDistrictSelected(c tele.Context) error {
	if !a.requireAdmin(c) {
		return nil
	}
	district := callbacks.PayloadString(c)
	if district == "" {
		return helpers.SendText(c, textStaleAction)
	}
	a.operator.StageAdd(c.Chat().ID, district)

	markup := keyboard.InlineButtonsRows([]keyboard.InlineBtn{
		{Text: "⬅️ Tuman tanlash", Unique: cbAdminAdd},
	})
	return helpers.EditOrSendMD(c, textAdminAskJobs(district), markup)
}

// adminManagerHandler consumes free-text job titles while an add draft is
// open. Each accepted line is appended and persisted immediately; the
// draft stays open until /admin.
func (a *App) adminManagerHandler(c tele.Context) error {
	text := strings.TrimSpace(c.Text())
	switch text {
	case "/admin":
		return a.cmdAdmin(c)
	case "/start":
		return a.cmdStart(c)
	}
	if text == "" {
		return helpers.SendText(c, textAdminEmptyJob)
	}

	district, added, err := a.operator.AddJob(c.Chat().ID, text)
	switch {
	case errors.Is(err, flow.ErrNoDraft):
		return a.cmdAdmin(c)
	case err != nil:
		logger.Error(helpers.BuildContext(c), "catalog", "append.failed",
			slog.String("district", district),
			slog.String("err", err.Error()),
		)
		return helpers.SendText(c, textStaleAction)
	}

	if !added {
		return helpers.SendMD(c, textAdminJobDuplicate(district, text))
	}
	return helpers.SendMD(c, textAdminJobAdded(district, text))
}

// cbAdminListing is a stateless read: the catalog is reloaded from durable
// storage first so edits made outside this process show up.
func (a *App) cbAdminListing(c tele.Context) error {
	if !a.requireAdmin(c) {
		return nil
	}

	cat, order := a.operator.Listing()
	markup := keyboard.InlineButtonsRows(adminHomeRow())

	empty := true
	for _, jobs := range cat {
		if len(jobs) > 0 {
			empty = false
			break
		}
	}
	if empty {
		return helpers.EditOrSendMD(c, "Hozircha hech qaysi tumanda ish joylari mavjud emas.", markup)
	}

	var b strings.Builder
	b.WriteString("Tumanlar va mavjud ish joylari ro'yxati:\n\n")
	for _, district := range order {
		jobs := cat.SortedJobs(district)
		if len(jobs) == 0 {
			fmt.Fprintf(&b, "**%s**: _Ish joyi yo'q._\n", district)
			continue
		}
		fmt.Fprintf(&b, "**%s** (%d ta):", district, len(jobs))
		for _, job := range jobs {
			b.WriteString("\n * " + job)
		}
		b.WriteString("\n")
	}
	return helpers.EditOrSendMD(c, b.String(), markup)
}

func (a *App) cbAdminClearMenu(c tele.Context) error {
	if !a.requireAdmin(c) {
		return nil
	}
	a.operator.Reset(c.Chat().ID)

	districts := a.store.DistrictsWithOpenings()
	if len(districts) == 0 {
		return helpers.EditOrSendMD(c, textAdminNoData, keyboard.InlineButtonsRows(adminHomeRow()))
	}

	btns := make([]keyboard.InlineBtn, 0, len(districts))
	for _, d := range districts {
		btns = append(btns, keyboard.InlineBtn{Text: "🗑️ " + d, Unique: cbConfirmClear, Data: d})
	}
	markup := keyboard.InlineButtonsNPerRow(btns, 2)
	markup = keyboard.AppendRow(markup, adminHomeRow()...)
	return helpers.EditOrSendMD(c, textAdminPickClear, markup)
}

// cbAdminConfirmClear stages a district for clearing; nothing is deleted
// until the second, explicit confirmation.
func (a *App) cbAdminConfirmClear(c tele.Context) error {
	if !a.requireAdmin(c) {
		return nil
	}
	district := callbacks.PayloadString(c)
	if district == "" {
		return helpers.SendText(c, textStaleAction)
	}

	staged := a.operator.StageClear(c.Chat().ID, district)
	markup := keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{{Text: "✅ Ha, tozalash", Unique: cbDoClear, Data: district}},
		[]keyboard.InlineBtn{{Text: "❌ Yo'q, qaytish", Unique: cbAdminClear}},
	)
	return helpers.EditOrSendMD(c, textAdminConfirmClear(district, staged), markup)
}

func (a *App) cbAdminDoClear(c tele.Context) error {
	if !a.requireAdmin(c) {
		return nil
	}
	district := callbacks.PayloadString(c)
	markup := keyboard.InlineButtonsRows(adminHomeRow())

	removed, err := a.operator.ConfirmClear(c.Chat().ID, district)
	switch {
	case errors.Is(err, flow.ErrNoDraft):
		return helpers.EditOrSendMD(c, textStaleAction, markup)
	case err != nil:
		logger.Error(helpers.BuildContext(c), "catalog", "clear.failed",
			slog.String("district", district),
			slog.String("err", err.Error()),
		)
		return helpers.SendText(c, textStaleAction)
	}

	if removed == 0 {
		return helpers.EditOrSendMD(c, textAdminNothingToClear(district), markup)
	}
	return helpers.EditOrSendMD(c, textAdminCleared(district, removed), markup)
}
