// Package config 加载与保存服务器配置
// 配置文件为 JSON，缺失时落盘默认值；环境变量可覆盖网络段
// （部署时配合 .env 文件，由入口经 godotenv 载入）
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
)

// Graphics 渲染相关配置（由客户端消费，服务器只负责透传保存）
type Graphics struct {
	ScreenWidth  int  `json:"screen_width"`
	ScreenHeight int  `json:"screen_height"`
	FPS          int  `json:"fps"`
	VSync        bool `json:"vsync"`
}

// Gameplay 玩法平衡配置
type Gameplay struct {
	MaxPlayers       int     `json:"max_players"`
	DamageMultiplier float64 `json:"damage_multiplier"`
	BossHealthScale  float64 `json:"boss_health_scale"`
}

// Network 监听地址与超时配置
type Network struct {
	ServerHost string `json:"server_host"`
	ServerPort int    `json:"server_port"`
	Timeout    int    `json:"timeout"`
}

// Config 完整配置
type Config struct {
	Graphics Graphics `json:"graphics"`
	Gameplay Gameplay `json:"gameplay"`
	Network  Network  `json:"network"`
}

// Default 内置默认配置
func Default() Config {
	return Config{
		Graphics: Graphics{ScreenWidth: 1920, ScreenHeight: 1080, FPS: 60, VSync: true},
		Gameplay: Gameplay{MaxPlayers: 4, DamageMultiplier: 1.0, BossHealthScale: 1.5},
		Network:  Network{ServerHost: "localhost", ServerPort: 8080, Timeout: 30},
	}
}

// Load 读取配置文件并与默认值合并
// 文件不存在时写出默认配置（首跑生成模板），其他读取错误原样返回
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if werr := Save(path, cfg); werr != nil {
				return cfg, werr
			}
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	// 反序列化到默认值之上即得到“用户值覆盖默认值”的合并语义
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save 将配置落盘（缩进 JSON，便于手工编辑）
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv 用环境变量覆盖网络与容量配置
// BOSSARENA_HOST / BOSSARENA_PORT / BOSSARENA_MAX_PLAYERS
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("BOSSARENA_HOST"); v != "" {
		cfg.Network.ServerHost = v
	}
	if v := os.Getenv("BOSSARENA_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.Network.ServerPort = port
		}
	}
	if v := os.Getenv("BOSSARENA_MAX_PLAYERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Gameplay.MaxPlayers = n
		}
	}
}
