package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"wisefido-tremor/internal/config"
	"wisefido-tremor/internal/logger"
	"wisefido-tremor/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化Logger
	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format, "wisefido-tremor")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting wisefido-tremor service",
		zap.String("version", "1.0.0"),
		zap.String("device_id", cfg.Tremor.DeviceID),
		zap.String("mqtt_broker", cfg.MQTT.Broker),
	)

	// 创建服务
	tremorService, err := service.NewTremorService(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to create tremor service", zap.Error(err))
	}

	// 启动服务
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := tremorService.Start(ctx); err != nil {
		zapLogger.Fatal("Failed to start tremor service", zap.Error(err))
	}

	// 等待中断信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	zapLogger.Info("Received signal, shutting down", zap.String("signal", sig.String()))

	// 优雅关闭
	cancel()
	if err := tremorService.Stop(ctx); err != nil {
		zapLogger.Error("Error during shutdown", zap.Error(err))
	}

	zapLogger.Info("Service stopped")
}
