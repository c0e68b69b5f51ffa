package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"smart-fridge/config"
	"smart-fridge/internal/api/kiosk"
	"smart-fridge/internal/api/telegram"
	"smart-fridge/internal/container"
	"smart-fridge/internal/infrastructure/camera"
	"smart-fridge/internal/infrastructure/events"
	"smart-fridge/internal/infrastructure/fridgeapi"
	"smart-fridge/internal/infrastructure/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	if err := run(cfg); err != nil {
		slog.Error("kiosk stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := fridgeapi.NewClient(cfg.FridgeAPIURL, cfg.HTTPTimeout)
	device := camera.NewDevice(cameraOpener(cfg.Camera), cfg.Camera.JPEGQuality)

	// Собираем сервисы приложения
	appContainer := container.New(device, client, client, client)

	if cfg.MQTT.Broker != "" {
		emitter, mqttClient, err := events.Connect(ctx, cfg.MQTT.Broker, cfg.MQTT.ClientID, cfg.MQTT.TopicPrefix)
		if err != nil {
			slog.Warn("mqtt events disabled", "error", err)
		} else {
			defer mqttClient.Disconnect(250)
			appContainer.Notifications.Attach(emitter)
			appContainer.Inventory.Attach(emitter)
		}
	}

	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, appContainer.Workflow, appContainer.Recipes, storage.NewMemorySubscriberRepository())
		if err != nil {
			return fmt.Errorf("create telegram bot: %w", err)
		}
		appContainer.Notifications.Attach(bot)

		go func() {
			if err := bot.Run(ctx); err != nil {
				slog.Error("telegram bot stopped", "error", err)
			}
		}()
	}

	// Камера освобождается на любом пути выхода.
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := appContainer.Workflow.Stop(shutdownCtx); err != nil {
			slog.Warn("camera release failed", "error", err)
		}
	}()

	if err := appContainer.Workflow.Start(ctx); err != nil {
		slog.Warn("kiosk started in degraded mode", "error", err)
	}

	handler := &kiosk.Handler{
		Workflow: appContainer.Workflow,
		Recipes:  appContainer.Recipes,
		Bound:    device.Bound,
	}
	srv := &http.Server{
		Addr:              cfg.KioskAddr,
		Handler:           kiosk.NewRouter(handler),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("kiosk is running", "addr", cfg.KioskAddr, "fridge_api", cfg.FridgeAPIURL, "camera", cfg.Camera.Device)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("kiosk server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// cameraOpener выбирает источник кадров: file:путь для стенда без камеры, иначе OpenCV
func cameraOpener(cfg config.CameraConfig) camera.Opener {
	if path, ok := strings.CutPrefix(cfg.Device, "file:"); ok {
		return camera.OpenImageFile(path)
	}
	return camera.OpenGoCV(cfg.Device, cfg.Width, cfg.Height)
}
