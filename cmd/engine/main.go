package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muhammadchandra19/securities-exchange/internal/app/engine"
	"github.com/muhammadchandra19/securities-exchange/internal/usecase/depth-cache"
	"github.com/muhammadchandra19/securities-exchange/internal/usecase/exchange"
	"github.com/muhammadchandra19/securities-exchange/internal/usecase/trade-publisher"
	"github.com/muhammadchandra19/securities-exchange/internal/usecase/trade-recorder"
	"github.com/muhammadchandra19/securities-exchange/pkg/config"
	"github.com/muhammadchandra19/securities-exchange/pkg/logger"
	"github.com/muhammadchandra19/securities-exchange/pkg/questdb"
	"github.com/muhammadchandra19/securities-exchange/pkg/redis"
	"go.uber.org/zap/zapcore"
)

func main() {
	var cfg config.Config
	config.MustLoad(&cfg)

	log, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient := redis.NewClient(log, &cfg.Redis)
	if err := redisClient.Connect(ctx); err != nil {
		log.GetZap().Fatal("Failed to connect to Redis", zapcore.Field{
			Key:       "error",
			Type:      zapcore.ErrorType,
			Interface: err,
		})
	}
	defer redisClient.Disconnect(context.Background())

	questdbClient, err := questdb.NewClient(ctx, cfg.QuestDB)
	if err != nil {
		log.GetZap().Fatal("Failed to connect to QuestDB", zapcore.Field{
			Key:       "error",
			Type:      zapcore.ErrorType,
			Interface: err,
		})
	}
	defer questdbClient.Close()

	publisher := tradepublisher.NewPublisher(cfg.Kafka, log)
	defer publisher.Close()

	recorder := traderecorder.NewRecorder(questdbClient, log)
	cache := depthcache.NewCache(redisClient, log)

	ex := exchange.New(log, exchange.Options{
		AutoCreateInstruments: cfg.AutoCreateInstruments,
	})
	for _, instrumentID := range cfg.Instruments {
		if err := ex.RegisterInstrument(instrumentID); err != nil {
			log.GetZap().Fatal("Failed to register instrument", zapcore.Field{
				Key:       "error",
				Type:      zapcore.ErrorType,
				Interface: err,
			})
		}
	}

	app := engine.NewEngine(ex, publisher, recorder, cache, log, &engine.Options{
		DepthInterval:   cfg.DepthInterval,
		TradeBufferSize: cfg.TradeBufferSize,
	})

	if err := app.Start(ctx); err != nil {
		log.GetZap().Fatal("Failed to start engine", zapcore.Field{
			Key:       "error",
			Type:      zapcore.ErrorType,
			Interface: err,
		})
	}

	<-ctx.Done()
	log.Info("shutdown signal received")

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error(err)
	}
}
