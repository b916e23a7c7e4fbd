package game

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

const (
	damageNumberLifetime = 2.0
	damageNumberGravity  = 200.0
	maxDamageNumbers     = 100
)

// damageColors 按玩家序号取色，超出范围用白色
var damageColors = map[int]string{
	1: "#FF6B6B",
	2: "#4ECDC4",
	3: "#45B7D1",
	4: "#96CEB4",
}

// DamageNumber 一条飘动的伤害数字
type DamageNumber struct {
	value    int
	pos      Vec2
	vel      Vec2
	playerID string
	critical bool
	lifetime float64
}

// Update 推进位置（带重力），返回是否仍然存活
func (d *DamageNumber) Update(dt float64) bool {
	d.pos.X += d.vel.X * dt
	d.pos.Y += d.vel.Y * dt
	d.vel.Y += damageNumberGravity * dt
	d.lifetime -= dt
	return d.lifetime > 0
}

// DamageText 供客户端渲染的伤害数字视图
type DamageText struct {
	Text  string  `json:"text"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color"`
	Size  int     `json:"size"`
	Alpha float64 `json:"alpha"`
}

func (d *DamageNumber) renderData() DamageText {
	size := 32
	if d.critical {
		size = 48
	}
	alpha := d.lifetime / damageNumberLifetime
	if alpha < 0 {
		alpha = 0
	}
	return DamageText{
		Text:  formatDamage(d.value),
		X:     d.pos.X,
		Y:     d.pos.Y,
		Color: colorFor(d.playerID),
		Size:  size,
		Alpha: alpha,
	}
}

// formatDamage 大数缩写：1234 → 1.2K，2500000 → 2.5M
func formatDamage(v int) string {
	switch {
	case v >= 1000000:
		return fmt.Sprintf("%.1fM", float64(v)/1000000)
	case v >= 1000:
		return fmt.Sprintf("%.1fK", float64(v)/1000)
	default:
		return strconv.Itoa(v)
	}
}

// colorFor 从连接 id（player_N）推出玩家序号对应的颜色
func colorFor(playerID string) string {
	n, err := strconv.Atoi(strings.TrimPrefix(playerID, "player_"))
	if err == nil {
		if c, ok := damageColors[n]; ok {
			return c
		}
	}
	return "#FFFFFF"
}

// DamageFeed 伤害数字池，超出上限时淘汰最旧的
type DamageFeed struct {
	numbers []*DamageNumber
	max     int
}

// NewDamageFeed 创建容量为 maxDamageNumbers 的伤害数字池
func NewDamageFeed() *DamageFeed {
	return &DamageFeed{max: maxDamageNumbers}
}

// Add 追加一条伤害数字，暴击用更快的上飘初速
func (f *DamageFeed) Add(value int, pos Vec2, playerID string, critical bool) {
	vy := -80.0
	if critical {
		vy = -120.0
	}
	f.numbers = append(f.numbers, &DamageNumber{
		value:    value,
		pos:      pos,
		vel:      Vec2{X: -30 + 60*rand.Float64(), Y: vy},
		playerID: playerID,
		critical: critical,
		lifetime: damageNumberLifetime,
	})
	if len(f.numbers) > f.max {
		f.numbers = f.numbers[1:]
	}
}

// Update 推进所有伤害数字并剔除过期项
func (f *DamageFeed) Update(dt float64) {
	active := f.numbers[:0]
	for _, d := range f.numbers {
		if d.Update(dt) {
			active = append(active, d)
		}
	}
	f.numbers = active
}

// RenderData 当前存活伤害数字的渲染视图
func (f *DamageFeed) RenderData() []DamageText {
	out := make([]DamageText, 0, len(f.numbers))
	for _, d := range f.numbers {
		out = append(out, d.renderData())
	}
	return out
}
