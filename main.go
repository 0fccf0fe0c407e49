package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bitwise74/minus-bot/api"
	"bitwise74/minus-bot/bot"
	"bitwise74/minus-bot/config"
	"bitwise74/minus-bot/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	err := config.Setup()
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := bot.New()
	if err != nil {
		panic(err)
	}

	sweeper := service.NewSweeper(
		viper.GetString("audio.tmp_dir"),
		viper.GetDuration("audio.retention"),
		viper.GetDuration("audio.sweep_interval"),
		viper.GetDuration("audio.sweep_delay"),
	)
	go sweeper.Run(ctx)

	a := api.NewRouter(b.DB)
	go func() {
		if err := a.Router.Run(fmt.Sprintf(":%d", viper.GetInt("host.port"))); err != nil {
			zap.L().Error("Ops server stopped", zap.Error(err))
		}
	}()

	zap.L().Info("Bot starting")

	if err := b.Run(ctx); err != nil {
		panic(err)
	}
}
