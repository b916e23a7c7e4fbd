package game

import (
	"math/rand"
)

// Skill 玩家技能
// Tick 推进冷却；Execute 在就绪时结算并进入冷却，返回(效果量, 是否生效)
type Skill interface {
	Name() string
	Ready() bool
	Tick(dt float64)
	Execute(caster *Player, target *LivingEntity) (int, bool)
}

// baseSkill 名称与冷却的公共实现
type baseSkill struct {
	name      string
	cooldown  float64
	remaining float64
}

func (s *baseSkill) Name() string { return s.name }
func (s *baseSkill) Ready() bool  { return s.remaining <= 0 }

func (s *baseSkill) Tick(dt float64) {
	if s.remaining > 0 {
		s.remaining -= dt
	}
}

func (s *baseSkill) trigger() { s.remaining = s.cooldown }

// damageSkill 伤害技能公共结算：命中扣血、进入冷却、生成视觉特效
type damageSkill struct {
	baseSkill
	damage     int
	damageType string
	tun        *Tuning

	// rollDamage 为 nil 时按基础伤害结算
	rollDamage func(base int) int
	visual     func(from, to Vec2)
}

func (s *damageSkill) Execute(caster *Player, target *LivingEntity) (int, bool) {
	if !s.Ready() || target == nil {
		return 0, false
	}
	dmg := s.damage
	if s.rollDamage != nil {
		dmg = s.rollDamage(s.damage)
	}
	dmg = int(float64(dmg) * s.tun.DamageMultiplier())
	actual := target.TakeDamage(dmg, caster.ID())
	s.trigger()
	if s.visual != nil {
		s.visual(caster.Position(), target.Position())
	}
	return actual, true
}

// healSkill 治疗技能公共结算：目标为空时治疗施法者自身
type healSkill struct {
	baseSkill
	healAmount int
	visual     func(pos Vec2)
}

func (s *healSkill) Execute(caster *Player, target *LivingEntity) (int, bool) {
	if !s.Ready() {
		return 0, false
	}
	if target == nil {
		target = &caster.LivingEntity
	}
	target.Heal(s.healAmount)
	s.trigger()
	if s.visual != nil {
		s.visual(target.Position())
	}
	return s.healAmount, true
}

// NewFireball 火球术：2s 冷却，150 基础伤害 ±20%，命中带爆炸特效
func NewFireball(fx *EffectManager, tun *Tuning) Skill {
	const explosionRadius = 50
	return &damageSkill{
		baseSkill:  baseSkill{name: "Fireball", cooldown: 2.0},
		damage:     150,
		damageType: "fire",
		tun:        tun,
		rollDamage: func(base int) int {
			return int(float64(base) * (0.8 + 0.4*rand.Float64()))
		},
		visual: func(from, to Vec2) {
			fx.CreateProjectile("fireball", from, to)
			fx.CreateExplosion("fire", to, explosionRadius)
		},
	}
}

// NewIceSpear 冰矛：3s 冷却，200 固定伤害
func NewIceSpear(fx *EffectManager, tun *Tuning) Skill {
	return &damageSkill{
		baseSkill:  baseSkill{name: "Ice Spear", cooldown: 3.0},
		damage:     200,
		damageType: "ice",
		tun:        tun,
		visual: func(from, to Vec2) {
			fx.CreateProjectile("ice_spear", from, to)
		},
	}
}

// NewQuickHeal 快速治疗：5s 冷却，回复 80
func NewQuickHeal(fx *EffectManager) Skill {
	return &healSkill{
		baseSkill:  baseSkill{name: "Quick Heal", cooldown: 5.0},
		healAmount: 80,
		visual: func(pos Vec2) {
			fx.CreateAreaEffect("heal_single", pos, 20)
		},
	}
}

// NewGroupHeal 群体治疗：10s 冷却，回复 100，大范围光环
func NewGroupHeal(fx *EffectManager) Skill {
	return &healSkill{
		baseSkill:  baseSkill{name: "Group Heal", cooldown: 10.0},
		healAmount: 100,
		visual: func(pos Vec2) {
			fx.CreateAreaEffect("healing_circle", pos, 100)
		},
	}
}
