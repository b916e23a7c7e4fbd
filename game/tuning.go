package game

import "sync"

// Tuning 运行期可热更新的平衡参数
// 经 /admin/config 在 Tick 之外被改写，因此带自己的读写锁
type Tuning struct {
	mu               sync.RWMutex
	damageMultiplier float64
	bossHealthScale  float64
}

// NewTuning 默认参数（与配置文件 gameplay 段的默认值一致）
func NewTuning() *Tuning {
	return &Tuning{damageMultiplier: 1.0, bossHealthScale: 1.5}
}

// DamageMultiplier 玩家输出倍率
func (t *Tuning) DamageMultiplier() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.damageMultiplier
}

// BossHealthScale Boss 血量倍率（仅在生成 Boss 时取用）
func (t *Tuning) BossHealthScale() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.bossHealthScale
}

// Snapshot 当前参数表的副本
func (t *Tuning) Snapshot() map[string]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return map[string]float64{
		"damage_multiplier": t.damageMultiplier,
		"boss_health_scale": t.bossHealthScale,
	}
}

// Apply 部分更新：只认识的键生效，未知键忽略
func (t *Tuning) Apply(values map[string]float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if v, ok := values["damage_multiplier"]; ok && v > 0 {
		t.damageMultiplier = v
	}
	if v, ok := values["boss_health_scale"]; ok && v > 0 {
		t.bossHealthScale = v
	}
}
