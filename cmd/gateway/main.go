package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"exampocket-backend/internal/config"
	delivery "exampocket-backend/internal/delivery/http"
	"exampocket-backend/internal/delivery/http/utils"
	"exampocket-backend/internal/repo"
	"exampocket-backend/internal/repo/cockroach"
	"exampocket-backend/internal/repo/kafka"
	"exampocket-backend/internal/repo/objectstore"
	"exampocket-backend/internal/usecase/service"
	"exampocket-backend/migrations"
	"exampocket-backend/pkg/connector"
	"exampocket-backend/pkg/goosehelper"
)

const uploadPath = "/api/admin/upload"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer stop()

	// cockroach
	DBConn, err := connector.GetCockroachConnector(cfg.DBConnectDSN)
	if err != nil {
		log.Fatalf("Ошибка при подключении к базе данных: %v", err)
	}
	defer func() {
		if err := DBConn.Close(); err != nil {
			log.Errorf("Ошибка при закрытии соединения с базой данных: %v", err)
		}
	}()
	if cfg.MigrationsEnabled {
		if err := goosehelper.MigrateUp(DBConn.DB, migrations.FS, "."); err != nil {
			log.Fatalf("Ошибка при применении миграций: %v", err)
		}
	}

	// minio
	minioClient, err := connector.GetMinioConnector(connector.MinioConfig{
		Endpoint:  cfg.Minio.Endpoint,
		AccessKey: cfg.Minio.AccessKey,
		SecretKey: cfg.Minio.SecretKey,
		UseSSL:    cfg.Minio.UseSSL,
	})
	if err != nil {
		log.Fatalf("Ошибка при подключении к MinIO: %v", err)
	}

	// репозитории
	materialRepo := cockroach.NewMaterial(DBConn)
	materialStorage, err := objectstore.NewMaterialStorage(ctx, minioClient, cfg.Minio.Bucket, cfg.Minio.PublicURL)
	if err != nil {
		log.Fatalf("Ошибка при подготовке хранилища материалов: %v", err)
	}
	var materialEvents repo.MaterialEvent = repo.NopMaterialEvent{}
	if len(cfg.KafkaBrokers) > 0 {
		materialEvents, err = kafka.NewMaterialEventKafkaRepository(ctx, cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("Ошибка при подключении к Kafka: %v", err)
		}
	} else {
		log.Info("KAFKA_BROKERS не задан, события материалов не публикуются")
	}
	defer func() {
		if err := materialEvents.Close(); err != nil {
			log.Errorf("Ошибка при закрытии публикатора событий: %v", err)
		}
	}()

	// usecase
	materialUseCase := service.NewMaterial(materialRepo, materialStorage, materialEvents)
	catalogUseCase := service.NewCatalog(materialRepo)
	uploadUseCase := service.NewUpload(materialRepo, materialStorage, materialEvents)
	viewerUseCase := service.NewViewer(materialUseCase, materialStorage)
	adminUseCase := service.NewAdmin(cfg.Admin.Password, cfg.Admin.PasswordHash)

	// delivery
	cookieManager := utils.NewCookieManager(cfg.Admin.SecureCookies)
	authManager := utils.NewAuthManager(cfg.Admin.CookieSecret, adminUseCase)
	catalogDelivery := delivery.NewCatalog(catalogUseCase)
	materialDelivery := delivery.NewMaterial(materialUseCase)
	viewerDelivery := delivery.NewViewer(viewerUseCase)
	adminDelivery := delivery.NewAdmin(materialUseCase, authManager, cookieManager)
	uploadDelivery := delivery.NewUpload(uploadUseCase)

	echoServer := newServer(cfg.CORSOrigin)

	api := echoServer.Group("/api")
	catalogDelivery.Configure(api)
	materialDelivery.Configure(api.Group("/materials"))
	viewerDelivery.Configure(api.Group("/view"))
	admin := api.Group("/admin")
	protected := admin.Group("", authManager.RequireAdmin())
	adminDelivery.Configure(admin, protected)
	// 50 МБ файл плюс поля формы
	uploadDelivery.Configure(protected, middleware.BodyLimit("55M"))

	go func(server *echo.Echo) {
		if err := server.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			server.Logger.Fatalf("Сервер завершил свою работу по причине: %v\n", err)
		}
	}(echoServer)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := echoServer.Shutdown(shutdownCtx); err != nil {
		echoServer.Logger.Errorf("Во время выключения сервера возникла ошибка: %s\n", err)
	}
}

func newServer(corsOrigin string) *echo.Echo {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.Logger.SetLevel(log.INFO)

	echoServer.Use(middleware.Recover())
	echoServer.Use(middleware.RequestID())
	echoServer.Use(middleware.Logger())
	// Не более 1 МБ, кроме загрузки материалов
	echoServer.Use(middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
		Limit: "1M",
		Skipper: func(c echo.Context) bool {
			return c.Path() == uploadPath
		},
	}))
	echoServer.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
	echoServer.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{corsOrigin},
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderAccept,
			echo.HeaderContentType,
			echo.HeaderCookie,
		},
		AllowCredentials: true,
		MaxAge:           86400,
	}))
	return echoServer
}
