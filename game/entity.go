package game

import (
	"github.com/google/uuid"
)

// Vec2 平面坐标/速度，线格式 {"x":...,"y":...}
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// StatusEffect 挂在活体实体上的限时状态（燃烧、减速等）
type StatusEffect interface {
	Update(dt float64)
	Active() bool
	OnRemove(target *LivingEntity)
}

// LivingEntity 玩家与 Boss 共享的活体实体核心
// 伤害结算公式：实际伤害 = max(1, 伤害 - 防御)；存活标志至多翻转一次
type LivingEntity struct {
	id        string
	pos       Vec2
	vel       Vec2
	maxHealth int
	health    int
	defense   int
	alive     bool
	effects   []StatusEffect

	// onDeath 由嵌入方设置，在存活标志翻转的那一次调用
	onDeath func(killerID string)
}

func newLivingEntity(pos Vec2, health int) LivingEntity {
	return LivingEntity{
		id:        uuid.NewString(),
		pos:       pos,
		maxHealth: health,
		health:    health,
		alive:     true,
	}
}

// ID 实体唯一标识（uuid，与连接 id 无关）
func (e *LivingEntity) ID() string { return e.id }

// Position 当前位置的值拷贝
func (e *LivingEntity) Position() Vec2 { return e.pos }

// SetVelocity 设置速度（由移动意图驱动，下个 Tick 生效）
func (e *LivingEntity) SetVelocity(v Vec2) { e.vel = v }

func (e *LivingEntity) Health() int    { return e.health }
func (e *LivingEntity) MaxHealth() int { return e.maxHealth }
func (e *LivingEntity) Alive() bool    { return e.alive }

// HealthPercent 剩余血量比例 [0,1]
func (e *LivingEntity) HealthPercent() float64 {
	return float64(e.health) / float64(e.maxHealth)
}

// TakeDamage 结算一次伤害，返回实际扣减值
// 致死的那次调用触发 onDeath；已死亡实体不再结算
func (e *LivingEntity) TakeDamage(damage int, attackerID string) int {
	if !e.alive {
		return 0
	}
	actual := damage - e.defense
	if actual < 1 {
		actual = 1
	}
	e.health -= actual
	if e.health <= 0 {
		e.health = 0
		e.alive = false
		if e.onDeath != nil {
			e.onDeath(attackerID)
		}
	}
	return actual
}

// Heal 回复血量，不超过上限
func (e *LivingEntity) Heal(amount int) {
	e.health += amount
	if e.health > e.maxHealth {
		e.health = e.maxHealth
	}
}

// Move 按当前速度推进位置
func (e *LivingEntity) Move(dt float64) {
	e.pos.X += e.vel.X * dt
	e.pos.Y += e.vel.Y * dt
}

// AddStatusEffect 挂载一个状态效果
func (e *LivingEntity) AddStatusEffect(fx StatusEffect) {
	e.effects = append(e.effects, fx)
}

// updateStatusEffects 推进并剔除已失效的状态
func (e *LivingEntity) updateStatusEffects(dt float64) {
	active := e.effects[:0]
	for _, fx := range e.effects {
		fx.Update(dt)
		if fx.Active() {
			active = append(active, fx)
		} else {
			fx.OnRemove(e)
		}
	}
	e.effects = active
}
