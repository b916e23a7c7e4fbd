package game

const (
	playerMaxHealth  = 200
	playerMoveSpeed  = 120.0 // 单位/秒
	respawnDelay     = 10.0  // 秒
	levelHealthBonus = 20
)

// PlayerState 广播给客户端的玩家视图
type PlayerState struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	PlayerID  string `json:"player_id"`
	Position  Vec2   `json:"position"`
	Health    int    `json:"health"`
	MaxHealth int    `json:"max_health"`
	Level     int    `json:"level"`
	Alive     bool   `json:"is_alive"`
}

// Player 服务端权威的玩家实体
type Player struct {
	LivingEntity
	Name     string
	PlayerID string // 连接 id（player_N），与实体 uuid 区分

	level        int
	experience   int
	skills       []Skill
	respawnTimer float64
	spawnPos     Vec2
	joinSeq      int // 加入顺序，用于稳定的快照排序
}

// NewPlayer 创建满血玩家
func NewPlayer(playerID, name string, pos Vec2) *Player {
	p := &Player{
		LivingEntity: newLivingEntity(pos, playerMaxHealth),
		Name:         name,
		PlayerID:     playerID,
		level:        1,
		spawnPos:     pos,
	}
	p.onDeath = func(killerID string) {
		p.respawnTimer = respawnDelay
	}
	return p
}

// Update 推进一个 Tick：死亡时倒计时复活，存活时移动并推进状态与冷却
func (p *Player) Update(dt float64) {
	if !p.Alive() {
		p.respawnTimer -= dt
		if p.respawnTimer <= 0 {
			p.respawn()
		}
		return
	}
	p.Move(dt)
	p.updateStatusEffects(dt)
	for _, s := range p.skills {
		s.Tick(dt)
	}
}

// respawn 回到出生点满血复活
func (p *Player) respawn() {
	p.pos = p.spawnPos
	p.vel = Vec2{}
	p.health = p.maxHealth
	p.alive = true
}

// GainExperience 获得经验，满足门槛时逐级升级
func (p *Player) GainExperience(amount int) {
	p.experience += amount
	for p.experience >= p.levelRequirement() {
		p.experience -= p.levelRequirement()
		p.level++
		p.maxHealth += levelHealthBonus
		p.health = p.maxHealth
	}
}

func (p *Player) levelRequirement() int { return p.level * 100 }

// Level 当前等级
func (p *Player) Level() int { return p.level }

// AddSkill 追加一个技能到技能栏
func (p *Player) AddSkill(s Skill) { p.skills = append(p.skills, s) }

// Skills 技能栏（只读用途）
func (p *Player) Skills() []Skill { return p.skills }

// UseSkill 使用第 index 个技能
// 越界、冷却中或自身死亡都返回 ok=false，不产生任何效果
func (p *Player) UseSkill(index int, target *LivingEntity) (int, bool) {
	if !p.Alive() || index < 0 || index >= len(p.skills) {
		return 0, false
	}
	return p.skills[index].Execute(p, target)
}

// State 当前 Tick 的可序列化视图（值拷贝）
func (p *Player) State() PlayerState {
	return PlayerState{
		ID:        p.id,
		Name:      p.Name,
		PlayerID:  p.PlayerID,
		Position:  p.pos,
		Health:    p.health,
		MaxHealth: p.maxHealth,
		Level:     p.level,
		Alive:     p.alive,
	}
}
