package service

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wisefido-tremor/internal/analysis"
	"wisefido-tremor/internal/config"
	"wisefido-tremor/internal/consumer"
	"wisefido-tremor/internal/database"
	"wisefido-tremor/internal/models"
	"wisefido-tremor/internal/monitor"
	mqttcommon "wisefido-tremor/internal/mqtt"
	"wisefido-tremor/internal/notifier"
	"wisefido-tremor/internal/publisher"
	rediscommon "wisefido-tremor/internal/redis"
	"wisefido-tremor/internal/repository"
	"wisefido-tremor/internal/report"
	"wisefido-tremor/internal/simulator"
)

// 报告导出保留的最近快照条数（与历史缓冲容量一致）
const snapshotRetention = 50

// TremorService 震颤监测服务
//
// 按固定周期（默认 100ms）驱动监测会话：生成样本 → 窗口分析 →
// 发布实时快照（Redis 缓存 + Stream、MQTT 原始样本），可选地
// 持久化到 PostgreSQL、触发严重震颤 Webhook 告警、导出会话报告。
type TremorService struct {
	config      *config.Config
	logger      *zap.Logger
	db          *sql.DB
	redis       *rediscommon.Client
	mqttClient  *mqttcommon.Client
	session     *monitor.Session
	cache       *publisher.CacheManager
	mqttPub     *publisher.MQTTPublisher
	cmdConsumer *consumer.CommandConsumer
	tsRepo      *repository.TremorTimeSeriesRepository
	webhook     *notifier.WebhookNotifier

	mu              sync.Mutex
	lastSeverity    models.Severity
	recentSnapshots []*models.RealtimeSnapshot

	stopTicker chan struct{}
	wg         sync.WaitGroup
}

// NewTremorService 创建震颤监测服务
func NewTremorService(cfg *config.Config, logger *zap.Logger) (*TremorService, error) {
	// 初始化Redis
	redisClient := rediscommon.NewClient(&cfg.Redis)
	if err := rediscommon.Ping(context.Background(), redisClient); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	// 初始化MQTT
	mqttClient, err := mqttcommon.NewClient(&cfg.MQTT, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MQTT: %w", err)
	}

	// 初始化数据库（仅持久化开启时）
	var db *sql.DB
	var tsRepo *repository.TremorTimeSeriesRepository
	if cfg.Storage.Enabled {
		db, err = database.NewPostgresDB(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		tsRepo = repository.NewTremorTimeSeriesRepository(db, logger)
	}

	// 创建监测会话
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	generator := simulator.NewGenerator(rng)
	analyzer := analysis.NewAnalyzer(rng)
	session := monitor.NewSession(cfg.Tremor.DeviceID, uuid.New().String(), generator, analyzer)

	s := &TremorService{
		config:       cfg,
		logger:       logger,
		db:           db,
		redis:        redisClient,
		mqttClient:   mqttClient,
		session:      session,
		cache:        publisher.NewCacheManager(cfg, redisClient, logger),
		mqttPub:      publisher.NewMQTTPublisher(cfg, mqttClient, logger),
		tsRepo:       tsRepo,
		lastSeverity: models.SeverityNormal,
		stopTicker:   make(chan struct{}),
	}

	// 命令消费者（展示层通过 MQTT 下发录制开关）
	s.cmdConsumer = consumer.NewCommandConsumer(cfg, mqttClient, session, logger)
	s.cmdConsumer.SetOnStop(s.exportSessionReport)

	// 严重震颤 Webhook 告警（可选）
	if cfg.Webhook.Enabled {
		s.webhook = notifier.NewWebhookNotifier(cfg.Webhook.URL, cfg.Webhook.Timeout, logger)
	}

	return s, nil
}

// Start 启动服务
func (s *TremorService) Start(ctx context.Context) error {
	s.logger.Info("Starting tremor service components",
		zap.String("device_id", s.config.Tremor.DeviceID),
		zap.String("session_id", s.session.SessionID()),
		zap.Duration("tick_interval", s.config.Tremor.TickInterval),
	)

	if err := s.cmdConsumer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start command consumer: %w", err)
	}

	if s.config.Tremor.AutoStart {
		s.session.SetRecording(true)
	}

	s.wg.Add(1)
	go s.runTickLoop(ctx)

	s.logger.Info("Tremor service started successfully")
	return nil
}

// runTickLoop 定时循环：单写者，tick 之间不重叠
func (s *TremorService) runTickLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Tremor.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopTicker:
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick 处理一个采样周期
func (s *TremorService) tick(ctx context.Context) {
	snapshot := s.session.Tick(time.Now().UnixMilli())
	if snapshot == nil {
		// 录制关闭
		return
	}

	s.retainSnapshot(snapshot)

	// 原始样本发布到设备数据主题
	if err := s.mqttPub.PublishSample(snapshot.Sample); err != nil {
		s.logger.Error("Failed to publish sample to MQTT", zap.Error(err))
	}

	// 实时快照写入 Redis 缓存 + Stream
	if err := s.cache.PublishSnapshot(ctx, snapshot); err != nil {
		s.logger.Error("Failed to publish snapshot to cache", zap.Error(err))
	}

	// 持久化（可选）
	if s.tsRepo != nil {
		if err := s.tsRepo.InsertSnapshot(snapshot); err != nil {
			s.logger.Error("Failed to persist snapshot", zap.Error(err))
		}
	}

	s.checkSevereTransition(snapshot)
}

// retainSnapshot 保留最近快照（报告导出用）
func (s *TremorService) retainSnapshot(snapshot *models.RealtimeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recentSnapshots = append(s.recentSnapshots, snapshot)
	if len(s.recentSnapshots) > snapshotRetention {
		s.recentSnapshots = s.recentSnapshots[1:]
	}
}

// checkSevereTransition 检测严重程度进入 Severe 的转换并触发告警
func (s *TremorService) checkSevereTransition(snapshot *models.RealtimeSnapshot) {
	s.mu.Lock()
	prev := s.lastSeverity
	s.lastSeverity = snapshot.Tremor.Severity
	s.mu.Unlock()

	if s.webhook == nil {
		return
	}
	if snapshot.Tremor.Severity != models.SeveritySevere || prev == models.SeveritySevere {
		return
	}

	// 投递不能阻塞采样循环
	go func() {
		if err := s.webhook.NotifySevereTremor(snapshot); err != nil {
			s.logger.Error("Failed to send severe tremor alert", zap.Error(err))
		}
	}()
}

// exportSessionReport 导出会话报告（录制停止时触发，可选）
func (s *TremorService) exportSessionReport() {
	if !s.config.Report.Enabled {
		return
	}

	s.mu.Lock()
	snapshots := make([]*models.RealtimeSnapshot, len(s.recentSnapshots))
	copy(snapshots, s.recentSnapshots)
	s.mu.Unlock()

	data, err := report.GenerateSessionReport(s.session.SessionID(), snapshots)
	if err != nil {
		s.logger.Error("Failed to generate session report", zap.Error(err))
		return
	}

	if err := os.MkdirAll(s.config.Report.Dir, 0o755); err != nil {
		s.logger.Error("Failed to create report directory", zap.Error(err))
		return
	}

	filename := fmt.Sprintf("tremor_session_%s_%d.xlsx", s.session.SessionID(), time.Now().Unix())
	path := filepath.Join(s.config.Report.Dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Error("Failed to write session report", zap.Error(err))
		return
	}

	s.logger.Info("Session report exported",
		zap.String("path", path),
		zap.Int("snapshots", len(snapshots)),
	)
}

// Stop 停止服务
func (s *TremorService) Stop(ctx context.Context) error {
	s.logger.Info("Stopping tremor service")

	close(s.stopTicker)
	s.wg.Wait()

	if s.cmdConsumer != nil {
		if err := s.cmdConsumer.Stop(ctx); err != nil {
			s.logger.Error("Error stopping command consumer", zap.Error(err))
		}
	}

	if s.mqttClient != nil {
		s.mqttClient.Disconnect()
	}

	if s.redis != nil {
		rediscommon.Close(s.redis)
	}

	if s.db != nil {
		database.Close(s.db)
	}

	s.logger.Info("Tremor service stopped")
	return nil
}
