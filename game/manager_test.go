package game

import (
	"encoding/json"
	"testing"

	"go.uber.org/zap"
)

func newTestManager() *Manager {
	return NewManager(zap.NewNop().Sugar())
}

func TestManagerJoinLeave(t *testing.T) {
	m := newTestManager()
	m.OnPlayerJoin("player_1")
	m.OnPlayerJoin("player_2")
	if m.PlayerCount() != 2 {
		t.Fatalf("count = %d, want 2", m.PlayerCount())
	}
	if p := m.Player("player_1"); p == nil || len(p.Skills()) != 4 {
		t.Fatal("joined player must exist with a default loadout")
	}
	m.OnPlayerLeave("player_1")
	m.OnPlayerLeave("player_1") // 重复离开无害
	if m.PlayerCount() != 1 {
		t.Fatalf("count = %d after leave, want 1", m.PlayerCount())
	}
}

func TestManagerMoveAction(t *testing.T) {
	m := newTestManager()
	m.OnPlayerJoin("player_1")
	p := m.Player("player_1")
	start := p.Position()

	m.HandlePlayerAction("player_1", "move", json.RawMessage(`{"dx":1,"dy":0}`))
	m.Advance(0.5)
	if pos := p.Position(); pos.X <= start.X {
		t.Fatalf("player did not move: %+v -> %+v", start, pos)
	}

	m.HandlePlayerAction("player_1", "stop", nil)
	stopped := p.Position()
	m.Advance(0.5)
	if pos := p.Position(); pos != stopped {
		t.Fatalf("player kept moving after stop: %+v -> %+v", stopped, pos)
	}

	// 坏数据与未知 action 都只被忽略
	m.HandlePlayerAction("player_1", "move", json.RawMessage(`{{`))
	m.HandlePlayerAction("player_1", "teleport", nil)
}

func TestManagerSkillUseDefaultsToBoss(t *testing.T) {
	m := newTestManager()
	boss := m.SpawnBoss("Dragon", Vec2{X: 500, Y: 300})
	m.OnPlayerJoin("player_1")

	m.HandleSkillUse("player_1", 1, "") // 冰矛，null 目标 → Boss
	if boss.Health() >= boss.MaxHealth() {
		t.Fatal("boss must take damage from a default-target skill")
	}
	// 伤害数字与经验都已产生
	if len(m.DamageFeed().RenderData()) == 0 {
		t.Fatal("a boss hit must spawn a damage number")
	}
}

func TestManagerHealTargetsAlly(t *testing.T) {
	m := newTestManager()
	m.SpawnBoss("Dragon", Vec2{})
	m.OnPlayerJoin("player_1")
	m.OnPlayerJoin("player_2")

	ally := m.Player("player_2")
	ally.TakeDamage(100, "boss")
	m.HandleSkillUse("player_1", 2, "player_2") // 快速治疗指向队友
	if ally.Health() != playerMaxHealth-100+80 {
		t.Fatalf("ally health = %d", ally.Health())
	}
}

func TestManagerSkillUseWithoutBossIsSafe(t *testing.T) {
	m := newTestManager()
	m.OnPlayerJoin("player_1")
	m.HandleSkillUse("player_1", 0, "")          // 无 Boss，安全忽略
	m.HandleSkillUse("player_9", 0, "")          // 不存在的玩家
	m.HandleSkillUse("player_1", 0, "no_such")   // 不存在的目标
	m.HandleSkillUse("player_1", 99, "player_1") // 越界技能
}

func TestManagerBossAIAttacksOnCooldown(t *testing.T) {
	m := newTestManager()
	m.SpawnBoss("Dragon", Vec2{})
	m.OnPlayerJoin("player_1")
	p := m.Player("player_1")

	// 推进超过一阶段冷却，Boss 应至少出手一次
	for i := 0; i < 40; i++ {
		m.Advance(0.1)
	}
	if p.Health() == p.MaxHealth() {
		t.Fatal("boss AI never attacked")
	}
}

func TestManagerSnapshotShape(t *testing.T) {
	m := newTestManager()
	m.SpawnBoss("Dragon", Vec2{X: 500, Y: 300})
	m.OnPlayerJoin("player_1")
	m.OnPlayerJoin("player_2")

	data, err := json.Marshal(m.Snapshot())
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	var state GameState
	if err := json.Unmarshal(data, &state); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if len(state.Players) != 2 {
		t.Fatalf("players = %d, want 2", len(state.Players))
	}
	// 快照按加入顺序稳定排序
	if state.Players[0].PlayerID != "player_1" || state.Players[1].PlayerID != "player_2" {
		t.Fatalf("snapshot order: %s, %s", state.Players[0].PlayerID, state.Players[1].PlayerID)
	}
	if state.Boss == nil || state.Boss.BossType != "Dragon" {
		t.Fatalf("boss = %+v", state.Boss)
	}
}

func TestManagerSnapshotWithoutBossHasNullBoss(t *testing.T) {
	m := newTestManager()
	m.OnPlayerJoin("player_1")
	data, err := json.Marshal(m.Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(raw["boss"]) != "null" {
		t.Fatalf("boss = %s, want null", raw["boss"])
	}
}

func TestManagerGameOver(t *testing.T) {
	m := newTestManager()
	if m.IsGameOver() != nil {
		t.Fatal("empty world is not over")
	}
	boss := m.SpawnBoss("Dragon", Vec2{})
	m.OnPlayerJoin("player_1")

	boss.TakeDamage(boss.MaxHealth()*2, "player_1")
	result := m.IsGameOver()
	if result == nil || result.Result != "victory" {
		t.Fatalf("result = %+v, want victory", result)
	}

	m2 := newTestManager()
	m2.SpawnBoss("Dragon", Vec2{})
	m2.OnPlayerJoin("player_1")
	m2.Player("player_1").TakeDamage(9999, "boss")
	result = m2.IsGameOver()
	if result == nil || result.Result != "defeat" {
		t.Fatalf("result = %+v, want defeat", result)
	}
}

func TestManagerTuningRoundTrip(t *testing.T) {
	m := newTestManager()
	m.ApplyTuning(map[string]float64{
		"damage_multiplier": 2.5,
		"boss_health_scale": 1.0,
		"bogus_key":         42, // 未知键忽略
	})
	snap := m.TuningSnapshot()
	if snap["damage_multiplier"] != 2.5 || snap["boss_health_scale"] != 1.0 {
		t.Fatalf("tuning = %v", snap)
	}
	boss := m.SpawnBoss("Dragon", Vec2{})
	if boss.MaxHealth() != bossBaseHealth {
		t.Fatalf("boss health = %d with 1.0 scale, want %d", boss.MaxHealth(), bossBaseHealth)
	}
}
