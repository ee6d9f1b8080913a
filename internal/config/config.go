package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config 服务端配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Redis    RedisConfig    `yaml:"redis"`
	Game     GameConfig     `yaml:"game"`
	Narrator NarratorConfig `yaml:"narrator"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	MaxConnections int    `yaml:"max_connections"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GameConfig 游戏配置
type GameConfig struct {
	DefaultMaxPlayers int `yaml:"default_max_players"` // 房间默认容量
	HistoryLimit      int `yaml:"history_limit"`       // 聊天上下文窗口条数
	RoomIdleTimeout   int `yaml:"room_idle_timeout"`   // 空房间回收超时（分钟）
	ChatPerMinute     int `yaml:"chat_per_minute"`     // 每玩家每分钟行动上限
}

// NarratorConfig DM 后端（Groq）配置
type NarratorConfig struct {
	BaseURL          string  `yaml:"base_url"`
	Model            string  `yaml:"model"`
	IntroTemperature float64 `yaml:"intro_temperature"` // 开场叙事温度
	ChatTemperature  float64 `yaml:"chat_temperature"`  // 行动回复温度
	Timeout          int     `yaml:"timeout"`           // 单次请求超时（秒）
}

// Secrets 进程环境中的敏感配置
type Secrets struct {
	GroqAPIKey string `env:"GROQ_API_KEY"`
}

// RoomIdleTimeoutDuration 返回空房间回收超时时长
func (c *GameConfig) RoomIdleTimeoutDuration() time.Duration {
	return time.Duration(c.RoomIdleTimeout) * time.Minute
}

// TimeoutDuration 返回后端请求超时时长
func (c *NarratorConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// LoadSecrets 从环境变量加载敏感配置
func LoadSecrets() (*Secrets, error) {
	var s Secrets
	if err := env.Parse(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// applyDefaults 设置默认值
func (cfg *Config) applyDefaults() {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.MaxConnections == 0 {
		cfg.Server.MaxConnections = 1024
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Game.DefaultMaxPlayers == 0 {
		cfg.Game.DefaultMaxPlayers = 4
	}
	if cfg.Game.HistoryLimit == 0 {
		cfg.Game.HistoryLimit = 15
	}
	if cfg.Game.RoomIdleTimeout == 0 {
		cfg.Game.RoomIdleTimeout = 30
	}
	if cfg.Game.ChatPerMinute == 0 {
		cfg.Game.ChatPerMinute = 20
	}
	if cfg.Narrator.BaseURL == "" {
		cfg.Narrator.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.Narrator.Model == "" {
		cfg.Narrator.Model = "llama-3.3-70b-versatile"
	}
	if cfg.Narrator.IntroTemperature == 0 {
		cfg.Narrator.IntroTemperature = 0.7
	}
	if cfg.Narrator.ChatTemperature == 0 {
		cfg.Narrator.ChatTemperature = 0.6
	}
	if cfg.Narrator.Timeout == 0 {
		cfg.Narrator.Timeout = 60
	}
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}
