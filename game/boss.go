package game

const (
	bossBaseHealth = 50000

	// 阶段转换阈值与各阶段技能冷却
	phase2Threshold   = 0.5
	berserkThreshold  = 0.2
	phase1Cooldown    = 3.0
	phase2Cooldown    = 2.0
	berserkCooldown   = 1.0
	berserkDefenseGap = 50

	bossBasicDamage   = 50
	bossAoeDamage     = 30
	bossBerserkDamage = 100
)

// BossState 广播给客户端的 Boss 视图
type BossState struct {
	ID        string `json:"id"`
	BossType  string `json:"boss_type"`
	Position  Vec2   `json:"position"`
	Health    int    `json:"health"`
	MaxHealth int    `json:"max_health"`
	Phase     int    `json:"phase"`
	Alive     bool   `json:"is_alive"`
}

// AttackResult Boss 一次技能的结算结果
type AttackResult struct {
	Type    string   // basic / aoe / berserk
	Damage  int
	Targets []string // 被命中玩家的连接 id
}

// Boss 三阶段 Boss：血量过半进入二阶段，低于两成进入狂暴
type Boss struct {
	LivingEntity
	BossType string

	phase           int
	abilityCooldown float64
	lastAbilityTime float64 // 距上次技能的秒数
	defeated        bool
}

// NewBoss 创建 Boss，health 已含难度缩放
func NewBoss(bossType string, pos Vec2, health int) *Boss {
	b := &Boss{
		LivingEntity:    newLivingEntity(pos, health),
		BossType:        bossType,
		phase:           1,
		abilityCooldown: phase1Cooldown,
	}
	b.onDeath = func(killerID string) {
		b.defeated = true
	}
	return b
}

// Update 推进一个 Tick：移动、状态、阶段检查、技能计时
func (b *Boss) Update(dt float64) {
	if !b.Alive() {
		return
	}
	b.Move(dt)
	b.updateStatusEffects(dt)
	b.checkPhaseChange()
	b.lastAbilityTime += dt
}

// checkPhaseChange 按剩余血量比例单向推进阶段
func (b *Boss) checkPhaseChange() {
	hp := b.HealthPercent()
	switch {
	case hp < berserkThreshold && b.phase == 2:
		b.phase = 3
		b.defense += berserkDefenseGap
		b.abilityCooldown = berserkCooldown
	case hp < phase2Threshold && b.phase == 1:
		b.phase = 2
		b.abilityCooldown = phase2Cooldown
	}
}

// Phase 当前阶段（1/2/3）
func (b *Boss) Phase() int { return b.phase }

// Defeated Boss 是否已被击败
func (b *Boss) Defeated() bool { return b.defeated }

// CanUseAbility 技能是否已过冷却
func (b *Boss) CanUseAbility() bool {
	return b.lastAbilityTime >= b.abilityCooldown
}

// UseAbility 按当前阶段选择攻击方式结算
// 冷却未到或无目标返回 nil；结算后重置技能计时
func (b *Boss) UseAbility(targets []*Player) *AttackResult {
	if !b.CanUseAbility() || len(targets) == 0 {
		return nil
	}
	b.lastAbilityTime = 0
	switch b.phase {
	case 1:
		targets[0].TakeDamage(bossBasicDamage, b.id)
		return &AttackResult{Type: "basic", Damage: bossBasicDamage, Targets: []string{targets[0].PlayerID}}
	case 2:
		hit := make([]string, 0, len(targets))
		for _, t := range targets {
			t.TakeDamage(bossAoeDamage, b.id)
			hit = append(hit, t.PlayerID)
		}
		return &AttackResult{Type: "aoe", Damage: bossAoeDamage, Targets: hit}
	default:
		targets[0].TakeDamage(bossBerserkDamage, b.id)
		return &AttackResult{Type: "berserk", Damage: bossBerserkDamage, Targets: []string{targets[0].PlayerID}}
	}
}

// State 当前 Tick 的可序列化视图（值拷贝）
func (b *Boss) State() BossState {
	return BossState{
		ID:        b.id,
		BossType:  b.BossType,
		Position:  b.pos,
		Health:    b.health,
		MaxHealth: b.maxHealth,
		Phase:     b.phase,
		Alive:     b.alive,
	}
}
