package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bookorg/bookstore-service/config"
	"github.com/bookorg/bookstore-service/internal/handler"
	"github.com/bookorg/bookstore-service/internal/repository"
	"github.com/bookorg/bookstore-service/internal/server"
	authSvc "github.com/bookorg/bookstore-service/internal/service/auth"
	bookSvc "github.com/bookorg/bookstore-service/internal/service/book"
	inventorySvc "github.com/bookorg/bookstore-service/internal/service/inventory"
	"github.com/bookorg/bookstore-service/migrations"
	"github.com/bookorg/bookstore-service/pkg/auth"
	"github.com/bookorg/bookstore-service/pkg/cache"
	"github.com/bookorg/bookstore-service/pkg/kafka"
	"github.com/bookorg/bookstore-service/pkg/logger"
	"github.com/bookorg/bookstore-service/pkg/postgres"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "bookstore")

	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}

	books := repository.NewBookRepository(db, log)
	inventories := repository.NewInventoryRepository(db, log)
	users := repository.NewUserRepository(db, log)

	tokens, err := auth.NewTokenManager(cfg.JWT)
	if err != nil {
		log.Fatal("token manager", zap.Error(err))
	}

	var pub inventorySvc.Publisher
	if len(cfg.Kafka.Addrs) > 0 {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewProducer", zap.Error(err))
		}
		pub = kafka.NewPublisher(producer)
	}

	inventorySvcImpl := inventorySvc.NewService(books, inventories, cache.New(cfg.Cache.Size, cfg.Cache.TTL), pub, log)
	bookSvcImpl := bookSvc.NewService(books, inventorySvcImpl, log)
	authSvcImpl := authSvc.NewService(users, tokens, log)

	h := handler.New(bookSvcImpl, inventorySvcImpl, authSvcImpl, tokens, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}
