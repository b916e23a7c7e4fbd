package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"bossarena/game"
)

// 终端配色（fatih/color），与 Boss 血量/玩家存活状态对应
var (
	bossColor   = color.New(color.FgRed, color.Bold)
	warnColor   = color.New(color.FgYellow)
	aliveColor  = color.New(color.FgGreen)
	deadColor   = color.New(color.FgHiBlack)
	headerColor = color.New(color.FgCyan, color.Bold)
)

// RenderState 将一帧状态 JSON 渲染为多行终端文本
// 解析失败时原样输出载荷（便于观察协议问题）
func RenderState(payload []byte) string {
	var state game.GameState
	if err := json.Unmarshal(payload, &state); err != nil {
		return string(payload)
	}

	var b strings.Builder
	headerColor.Fprintln(&b, "=== Boss Raid ===")
	if state.Boss != nil {
		c := bossColor
		if !state.Boss.Alive {
			c = deadColor
		} else if float64(state.Boss.Health)/float64(state.Boss.MaxHealth) < 0.5 {
			c = warnColor
		}
		c.Fprintf(&b, "BOSS %s  phase %d  %s\n",
			state.Boss.BossType, state.Boss.Phase,
			healthBar(state.Boss.Health, state.Boss.MaxHealth))
	}
	for _, p := range state.Players {
		c := aliveColor
		status := ""
		if !p.Alive {
			c = deadColor
			status = " (down)"
		}
		c.Fprintf(&b, "%-10s lv%-2d %s  (%.0f, %.0f)%s\n",
			p.PlayerID, p.Level, healthBar(p.Health, p.MaxHealth),
			p.Position.X, p.Position.Y, status)
	}
	return b.String()
}

// healthBar 定宽血条，如 [########--] 1600/2000
func healthBar(health, maxHealth int) string {
	const width = 10
	filled := 0
	if maxHealth > 0 {
		filled = health * width / maxHealth
	}
	return fmt.Sprintf("[%s%s] %d/%d",
		strings.Repeat("#", filled), strings.Repeat("-", width-filled),
		health, maxHealth)
}
