package bot

import (
	"context"
	"fmt"
	"time"

	coreconfig "contratobot/core/config"
	coretelegram "contratobot/core/telegram"
	"contratobot/core/telegram/commands"
	"contratobot/core/telegram/router"
	"contratobot/internal/auth"
	"contratobot/internal/gemini"
	"contratobot/internal/history"
	"contratobot/internal/sheets"

	"github.com/jmoiron/sqlx"
	tele "gopkg.in/telebot.v4"
)

// App wires the conversation flow into the Telegram runtime.
type App struct {
	cfg       *coreconfig.Config
	flow      *Flow
	tracker   *history.Tracker
	generator *gemini.Generator
	startedAt time.Time
}

// New builds the application: authorization store, spreadsheet fetcher,
// answer generator, and the conversation flow on top of them. db may be nil
// unless the Postgres store is configured.
func New(ctx context.Context, cfg *coreconfig.Config, db *sqlx.DB) (*App, error) {
	var store auth.Store
	switch cfg.Auth.Store {
	case coreconfig.StorePostgres:
		if db == nil {
			return nil, fmt.Errorf("bot: postgres store selected but no database connection")
		}
		store = auth.NewPostgresStore(db)
	default:
		store = auth.NewMemoryStore()
	}

	fetcher, err := sheets.NewFetcher(ctx, sheets.Options{
		ClientSecretFile: cfg.Sheets.ClientSecretFile,
		TokenFile:        cfg.Sheets.TokenFile,
		SpreadsheetID:    cfg.Sheets.SpreadsheetID,
		ReadRange:        cfg.Sheets.ReadRange,
	})
	if err != nil {
		return nil, err
	}

	generator, err := gemini.NewGenerator(ctx, gemini.Options{
		APIKey: cfg.Gemini.APIKey,
		Model:  cfg.Gemini.Model,
	})
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:       cfg,
		flow:      NewFlow(store, cfg.Auth.AllowedNames, fetcher, generator),
		tracker:   history.NewTracker(),
		generator: generator,
		startedAt: time.Now(),
	}, nil
}

// TelegramRunOptions assembles registry, routes, and middlewares for the
// Telegram runtime.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()
	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Reiniciar a conversa e pedir identificação",
	})
	reg.RegisterCommand("/status", commands.Command{
		Handler:     a.handleStatus,
		Description: "Estado do bot",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.SetTextFallback(a.handleText)

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: a.cfg.Telegram.AdminID,
	})
	routes = append(routes, router.TextRoutes(reg, router.TextOptions{})...)

	onLimited := func(c tele.Context) error {
		return c.Send(MsgSlowDown)
	}
	mws := coretelegram.DefaultMiddlewares(a.cfg, a.tracker.Record, onLimited)

	return coretelegram.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: mws,
		Routes:      routes,
		OnStop: func(context.Context, coretelegram.Runtime) error {
			return a.generator.Close()
		},
	}, nil
}
