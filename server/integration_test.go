package server

import (
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/zap"

	"bossarena/game"
	"bossarena/protocol"
)

// 整链路冒烟：真实的游戏管理器 + TCP 客户端，从技能消息到广播可见的掉血
func TestEndToEndSkillUseLowersBossHealth(t *testing.T) {
	mgr := game.NewManager(zap.NewNop().Sugar())
	mgr.SpawnBoss("Dragon", game.Vec2{X: 500, Y: 300})

	s := New(mgr, mgr, 4)
	if err := s.Start("127.0.0.1", 0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	conn := dialTest(t, s)
	waitFor(t, "registration", func() bool { return s.Registry().Size() == 1 })

	// 零号技能（火球）打 Boss，target_id 为 null 即默认目标
	if err := protocol.WriteFrame(conn, []byte(`{"type":"skill_use","skill_index":0,"target_id":null}`)); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		payload, err := protocol.ReadFrame(conn)
		if err != nil {
			t.Fatalf("read broadcast: %v", err)
		}
		var state game.GameState
		if err := json.Unmarshal(payload, &state); err != nil {
			t.Fatalf("broadcast is not a state snapshot: %v", err)
		}
		if len(state.Players) != 1 || state.Players[0].PlayerID != "player_1" {
			t.Fatalf("players = %+v", state.Players)
		}
		if state.Boss == nil {
			t.Fatal("boss missing from snapshot")
		}
		if state.Boss.Health < state.Boss.MaxHealth {
			return // 伤害已经过路由器结算并进入广播
		}
	}
	t.Fatal("boss health never dropped")
}
