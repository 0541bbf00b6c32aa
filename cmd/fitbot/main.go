package main

import (
	"fmt"
	"log"

	"fitbot/core/cmd"
	coreconfig "fitbot/core/config"
	"fitbot/core/logger"
	"fitbot/internal/bot"
)

func main() {
	err := cmd.Run(cmd.Options{
		DefaultConfigPath: "config.yaml",
		DotenvPath:        ".env",
		LoadConfig: func(path string) (cmd.ConfigCarrier, error) {
			cfg, err := coreconfig.Load(path)
			if err != nil {
				return nil, err
			}
			if err := logger.InitLogger(cfg); err != nil {
				return nil, fmt.Errorf("logger init: %w", err)
			}
			return cfg, nil
		},
		Bootstrap: func(carrier cmd.ConfigCarrier) (cmd.TelegramApp, error) {
			return bot.New(carrier.CoreConfig()), nil
		},
	})
	if err != nil {
		log.Fatalf("fitbot: %v", err)
	}
}
