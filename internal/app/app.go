// Package app wires the intake and operator flows onto the Telegram bot.
package app

import (
	coreconfig "github.com/sardorasatov93-code/Vakansiya-bot/core/config"
	tg "github.com/sardorasatov93-code/Vakansiya-bot/core/telegram"
	"github.com/sardorasatov93-code/Vakansiya-bot/core/telegram/commands"
	"github.com/sardorasatov93-code/Vakansiya-bot/core/telegram/helpers"
	"github.com/sardorasatov93-code/Vakansiya-bot/core/telegram/middleware"
	"github.com/sardorasatov93-code/Vakansiya-bot/core/telegram/router"
	"github.com/sardorasatov93-code/Vakansiya-bot/internal/catalog"
	"github.com/sardorasatov93-code/Vakansiya-bot/internal/flow"

	tele "gopkg.in/telebot.v4"
)

// Callback keys. Every inline button routes through one of these; back
// navigation carries its graph edge in the payload and is validated by the
// flow engine.
const (
	cbHome      = "home"
	cbDistricts = "districts"
	cbDistrict  = "district"
	cbJob       = "job"
	cbNav       = "nav"

	cbAdminHome     = "admin_home"
	cbAdminAdd      = "admin_add"
	cbAdminDistrict = "admin_district"
	cbAdminList     = "admin_list"
	cbAdminClear    = "admin_clear"
	cbConfirmClear  = "confirm_clear"
	cbDoClear       = "do_clear"
)

// App owns the applicant engine and the operator flow and exposes them as
// bot handlers.
type App struct {
	cfg      *coreconfig.Config
	store    catalog.Store
	engine   *flow.Engine
	operator *flow.OperatorFlow
}

// New builds the application around a catalog store.
func New(cfg *coreconfig.Config, store catalog.Store) *App {
	graph := flow.NewApplicantGraph(flow.DocumentMode(cfg.Bot.DocumentMode))
	return &App{
		cfg:      cfg,
		store:    store,
		engine:   flow.NewEngine(graph, store, flow.NewSessionStore()),
		operator: flow.NewOperatorFlow(store),
	}
}

// Engine exposes the applicant flow engine.
func (a *App) Engine() *flow.Engine { return a.engine }

// Sessions exposes the session store, for lifecycle wiring.
func (a *App) Sessions() *flow.SessionStore { return a.engine.Sessions() }

func (a *App) isAdmin(c tele.Context) bool {
	return middleware.IsAdmin(c, a.cfg.Telegram.AdminID)
}

func (a *App) singleDocument() bool {
	return a.engine.Graph().Mode() == flow.ModeSingle
}

// InProgress implements router.FSM: an update belongs to a conversation if
// either an applicant session or an operator draft is open for the chat.
func (a *App) InProgress(chatID int64) bool {
	return a.engine.InProgress(chatID) || a.operator.InProgress(chatID)
}

// Register binds commands and callbacks into the registry.
func (a *App) Register(reg *tg.Registry) error {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.cmdStart,
		Description: "Boshlash",
	})
	reg.RegisterCommand("/admin", commands.Command{
		Handler:     a.cmdAdmin,
		Description: "Admin panel",
		AdminOnly:   true,
		Hidden:      true,
	})

	cbs := []struct {
		key string
		h   tele.HandlerFunc
	}{
		{cbHome, a.cbGoHome},
		{cbDistricts, a.cbDistrictMenu},
		{cbDistrict, a.cbDistrictSelected},
		{cbJob, a.cbJobSelected},
		{cbNav, a.cbNavBack},
		{cbAdminHome, a.cbAdminPanel},
		{cbAdminAdd, a.cbAdminAddMenu},
		{cbAdminDistrict, a.cbAdminDistrictSelected},
		{cbAdminList, a.cbAdminListing},
		{cbAdminClear, a.cbAdminClearMenu},
		{cbConfirmClear, a.cbAdminConfirmClear},
		{cbDoClear, a.cbAdminDoClear},
	}
	for _, cb := range cbs {
		if err := reg.RegisterCallback(cb.key, cb.h); err != nil {
			return err
		}
	}
	return nil
}

// Routes builds the full route set: commands, the callback dispatcher and
// the message routes feeding the conversation manager.
func (a *App) Routes(reg *tg.Registry) []tg.Route {
	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: a.cfg.Telegram.AdminID,
		OnAdminReject: func(c tele.Context) error {
			return helpers.SendText(c, textNotAdmin)
		},
	})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, router.MessageRoutes(a, reg, router.MessageOptions{})...)
	return routes
}
