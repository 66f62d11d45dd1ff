package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// DSN 获取数据库连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// RedisConfig Redis配置
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MQTTConfig MQTT配置
type MQTTConfig struct {
	Broker   string
	ClientID string
	Username string
	Password string
	QoS      byte
}

// Config 震颤监测服务配置
type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	MQTT     MQTTConfig

	// 震颤监测服务特定配置
	Tremor struct {
		DeviceID     string        // 模拟设备 ID
		TickInterval time.Duration // 采样周期（默认 100ms / 10Hz）
		AutoStart    bool          // 启动后立即开始录制

		Topics struct {
			Data    string // 原始样本发布主题，如 "tremor/{device}/data"
			Command string // 命令主题，如 "tremor/{device}/command"
		}

		Cache struct {
			RealtimeKeyPrefix string // 实时数据键前缀
			RealtimeSuffix    string // 实时数据键后缀
			RealtimeTTL       time.Duration
			Stream            string // 下游消费的 Stream 名
		}
	}

	// 时序数据持久化（可选）
	Storage struct {
		Enabled bool
	}

	// 严重震颤告警 Webhook（可选）
	Webhook struct {
		Enabled bool
		URL     string
		Timeout time.Duration
	}

	// 会话报告导出（可选）
	Report struct {
		Enabled bool
		Dir     string // 报告输出目录
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load 加载配置（环境变量，带默认值）
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnvInt("DB_PORT", 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "tremor")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = getEnvInt("DB_MAX_CONNS", 10)
	cfg.Database.MaxIdle = getEnvInt("DB_MAX_IDLE", 5)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)

	cfg.MQTT.Broker = getEnv("MQTT_BROKER", "tcp://localhost:1883")
	cfg.MQTT.ClientID = getEnv("MQTT_CLIENT_ID", "wisefido-tremor")
	cfg.MQTT.Username = getEnv("MQTT_USERNAME", "")
	cfg.MQTT.Password = getEnv("MQTT_PASSWORD", "")
	cfg.MQTT.QoS = 1

	cfg.Tremor.DeviceID = getEnv("TREMOR_DEVICE_ID", "tremor-demo-01")
	cfg.Tremor.TickInterval = getEnvDuration("TREMOR_TICK_INTERVAL", 100*time.Millisecond)
	cfg.Tremor.AutoStart = getEnvBool("TREMOR_AUTO_START", true)
	cfg.Tremor.Topics.Data = getEnv("TREMOR_TOPIC_DATA", "tremor/"+cfg.Tremor.DeviceID+"/data")
	cfg.Tremor.Topics.Command = getEnv("TREMOR_TOPIC_COMMAND", "tremor/"+cfg.Tremor.DeviceID+"/command")
	cfg.Tremor.Cache.RealtimeKeyPrefix = getEnv("TREMOR_CACHE_REALTIME_PREFIX", "vital-focus:monitor:")
	cfg.Tremor.Cache.RealtimeSuffix = getEnv("TREMOR_CACHE_REALTIME_SUFFIX", ":realtime")
	cfg.Tremor.Cache.RealtimeTTL = getEnvDuration("TREMOR_CACHE_REALTIME_TTL", 30*time.Second)
	cfg.Tremor.Cache.Stream = getEnv("TREMOR_CACHE_STREAM", "tremor:data:stream")

	cfg.Storage.Enabled = getEnvBool("STORAGE_ENABLED", false)

	cfg.Webhook.Enabled = getEnvBool("WEBHOOK_ENABLED", false)
	cfg.Webhook.URL = getEnv("WEBHOOK_URL", "")
	cfg.Webhook.Timeout = getEnvDuration("WEBHOOK_TIMEOUT", 10*time.Second)
	if cfg.Webhook.Enabled && cfg.Webhook.URL == "" {
		return nil, fmt.Errorf("WEBHOOK_URL is required when WEBHOOK_ENABLED is true")
	}

	cfg.Report.Enabled = getEnvBool("REPORT_ENABLED", false)
	cfg.Report.Dir = getEnv("REPORT_DIR", "./reports")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
