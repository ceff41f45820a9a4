package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"

	"exampocket-backend/internal/config"
	"exampocket-backend/internal/repo/kafka"
	"exampocket-backend/internal/usecase/service"
)

const defaultGroupID = "exampocket-event-listener"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info(".env файл не обнаружен")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer stop()

	brokers := config.SplitList(os.Getenv("KAFKA_BROKERS"))
	if len(brokers) == 0 {
		log.Fatal("KAFKA_BROKERS переменная окружения обязательна")
	}
	groupID := os.Getenv("EVENT_LISTENER_GROUP")
	if groupID == "" {
		groupID = defaultGroupID
	}

	eventRepo, err := kafka.NewMaterialEventKafkaRepository(ctx, brokers)
	if err != nil {
		log.Fatalf("Ошибка при создании Kafka репозитория: %v", err)
	}
	defer func() {
		if err := eventRepo.Close(); err != nil {
			log.Errorf("Ошибка при закрытии Kafka репозитория: %v", err)
		}
	}()

	listener := service.NewMaterialEventListener(eventRepo, groupID, time.Minute)
	if err := listener.Start(ctx); err != nil {
		log.Fatalf("Слушатель событий завершился с ошибкой: %v", err)
	}
}
