package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"contratobot/core/bootstrap"
	corecmd "contratobot/core/cmd"
	coreconfig "contratobot/core/config"
	"contratobot/internal/bot"
)

type configCarrier struct {
	cfg *coreconfig.Config
}

func (c *configCarrier) CoreConfig() *coreconfig.Config { return c.cfg }

func main() {
	// Local development keeps secrets in .env; missing file is fine.
	_ = godotenv.Load()

	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "configs/config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			cfg, err := coreconfig.Load(path)
			if err != nil {
				return nil, err
			}
			return &configCarrier{cfg: cfg}, nil
		},
		Bootstrap: func(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			cfg := carrier.CoreConfig()
			res, err := bootstrap.Run(bootstrap.Options{Config: cfg})
			if err != nil {
				return nil, err
			}
			app, err := bot.New(context.Background(), cfg, res.DB)
			if err != nil {
				return nil, err
			}
			return app, nil
		},
	})
	if err != nil {
		log.Fatal(err)
	}
}
