package game

import (
	"encoding/json"
	"math"
	"sort"

	"go.uber.org/zap"
)

// GameState 每个 Tick 广播给客户端的完整视图
type GameState struct {
	Players []PlayerState `json:"players"`
	Boss    *BossState    `json:"boss"`
}

// GameResult 终局判定
type GameResult struct {
	Result string `json:"result"` // victory / defeat
}

// Manager 游戏管理器：服务器的游戏逻辑协作方
// 实现 server.Simulation / server.GameLogic / server.Tunable；
// 除 Tuning 外不持有自己的锁——所有方法都由服务器在共享状态锁内
// 同步调用，方法内不做任何 I/O
type Manager struct {
	log     *zap.SugaredLogger
	players map[string]*Player // key 连接 id
	boss    *Boss
	fx      *EffectManager
	damage  *DamageFeed
	tun     *Tuning
	joinSeq int
}

// NewManager 创建空世界
func NewManager(log *zap.SugaredLogger) *Manager {
	return &Manager{
		log:     log,
		players: make(map[string]*Player),
		fx:      NewEffectManager(),
		damage:  NewDamageFeed(),
		tun:     NewTuning(),
	}
}

// SpawnBoss 生成 Boss，血量按当前难度倍率缩放
func (m *Manager) SpawnBoss(bossType string, pos Vec2) *Boss {
	health := int(float64(bossBaseHealth) * m.tun.BossHealthScale())
	m.boss = NewBoss(bossType, pos, health)
	m.log.Infof("boss %s spawned with %d hp", bossType, health)
	return m.boss
}

// Boss 当前 Boss（可能为 nil）
func (m *Manager) Boss() *Boss { return m.boss }

// Player 按连接 id 查找玩家
func (m *Manager) Player(id string) *Player { return m.players[id] }

// PlayerCount 当前玩家数
func (m *Manager) PlayerCount() int { return len(m.players) }

// Effects 特效池（只读用途）
func (m *Manager) Effects() *EffectManager { return m.fx }

// DamageFeed 伤害数字池（只读用途）
func (m *Manager) DamageFeed() *DamageFeed { return m.damage }

// OnPlayerJoin 连接注册后创建玩家实体并发放默认技能栏
func (m *Manager) OnPlayerJoin(playerID string) {
	m.joinSeq++
	pos := Vec2{X: 100 + 50*float64(m.joinSeq%8), Y: 100}
	p := NewPlayer(playerID, playerID, pos)
	p.joinSeq = m.joinSeq
	p.AddSkill(NewFireball(m.fx, m.tun))
	p.AddSkill(NewIceSpear(m.fx, m.tun))
	p.AddSkill(NewQuickHeal(m.fx))
	p.AddSkill(NewGroupHeal(m.fx))
	m.players[playerID] = p
	m.log.Infof("player %s joined the raid", playerID)
}

// OnPlayerLeave 连接注销时移除玩家实体
func (m *Manager) OnPlayerLeave(playerID string) {
	delete(m.players, playerID)
}

// moveIntent player_action "move" 的数据体
type moveIntent struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// HandlePlayerAction 处理 player_action 消息
// 未知 action 只记一条调试日志：行为与未知消息类型一致，不惩罚发送方
func (m *Manager) HandlePlayerAction(playerID, action string, data json.RawMessage) {
	p, ok := m.players[playerID]
	if !ok || !p.Alive() {
		return
	}
	switch action {
	case "move":
		var mv moveIntent
		if err := json.Unmarshal(data, &mv); err != nil {
			m.log.Debugf("bad move data from %s: %v", playerID, err)
			return
		}
		// 归一化为意图方向，速度由服务端权威决定
		mag := math.Hypot(mv.DX, mv.DY)
		if mag == 0 {
			p.SetVelocity(Vec2{})
			return
		}
		p.SetVelocity(Vec2{
			X: mv.DX / mag * playerMoveSpeed,
			Y: mv.DY / mag * playerMoveSpeed,
		})
	case "stop":
		p.SetVelocity(Vec2{})
	default:
		m.log.Debugf("unhandled action %q from %s", action, playerID)
	}
}

// HandleSkillUse 处理 skill_use 消息
// targetID 为空串（线上的 null）时默认以 Boss 为目标；对 Boss 的有效
// 伤害会产生伤害数字并按伤害量折算经验
func (m *Manager) HandleSkillUse(playerID string, skillIndex int, targetID string) {
	p, ok := m.players[playerID]
	if !ok {
		return
	}
	target := m.resolveTarget(targetID)
	if target == nil {
		return
	}
	amount, used := p.UseSkill(skillIndex, target)
	if !used {
		return
	}
	if m.boss != nil && target == &m.boss.LivingEntity && amount > 0 {
		m.damage.Add(amount, m.boss.Position(), playerID, amount > 150)
		p.GainExperience(amount / 10)
		if m.boss.Defeated() {
			m.log.Infof("boss defeated by %s", playerID)
		}
	}
}

// resolveTarget 解析 target_id：空串/Boss id → Boss；否则按玩家查找
// （连接 id 或实体 uuid 均可，便于治疗队友）
func (m *Manager) resolveTarget(targetID string) *LivingEntity {
	if targetID == "" {
		if m.boss == nil {
			return nil
		}
		return &m.boss.LivingEntity
	}
	if m.boss != nil && targetID == m.boss.ID() {
		return &m.boss.LivingEntity
	}
	if p, ok := m.players[targetID]; ok {
		return &p.LivingEntity
	}
	for _, p := range m.players {
		if p.ID() == targetID {
			return &p.LivingEntity
		}
	}
	return nil
}

// Advance 推进一个 Tick：玩家、Boss 与 Boss AI、特效、伤害数字
func (m *Manager) Advance(dt float64) {
	for _, p := range m.players {
		p.Update(dt)
	}
	if m.boss != nil && m.boss.Alive() {
		m.boss.Update(dt)
		if m.boss.CanUseAbility() {
			targets := m.alivePlayers()
			if result := m.boss.UseAbility(targets); result != nil {
				m.log.Debugf("boss %s attack hit %d player(s) for %d",
					result.Type, len(result.Targets), result.Damage)
			}
		}
	}
	m.fx.Update(dt)
	m.damage.Update(dt)
}

// alivePlayers 按加入顺序返回存活玩家（顺序稳定，Boss 行为可复验）
func (m *Manager) alivePlayers() []*Player {
	out := make([]*Player, 0, len(m.players))
	for _, p := range m.players {
		if p.Alive() {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].joinSeq < out[j].joinSeq })
	return out
}

// Snapshot 当前 Tick 的深拷贝视图，序列化在锁外进行
func (m *Manager) Snapshot() any {
	players := make([]PlayerState, 0, len(m.players))
	for _, p := range m.players {
		players = append(players, p.State())
	}
	sort.Slice(players, func(i, j int) bool {
		return m.players[players[i].PlayerID].joinSeq < m.players[players[j].PlayerID].joinSeq
	})
	state := GameState{Players: players}
	if m.boss != nil {
		bs := m.boss.State()
		state.Boss = &bs
	}
	return state
}

// IsGameOver 终局判定：Boss 倒下即胜利，全员覆灭即失败
func (m *Manager) IsGameOver() *GameResult {
	if m.boss != nil && !m.boss.Alive() {
		return &GameResult{Result: "victory"}
	}
	if len(m.players) > 0 && len(m.alivePlayers()) == 0 {
		return &GameResult{Result: "defeat"}
	}
	return nil
}

// TuningSnapshot 实现 server.Tunable
func (m *Manager) TuningSnapshot() map[string]float64 { return m.tun.Snapshot() }

// ApplyTuning 实现 server.Tunable
func (m *Manager) ApplyTuning(values map[string]float64) { m.tun.Apply(values) }
