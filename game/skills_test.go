package game

import "testing"

func TestDamageSkillCooldownCycle(t *testing.T) {
	fx := NewEffectManager()
	tun := NewTuning()
	spear := NewIceSpear(fx, tun) // 固定 200 伤害，断言不受随机影响
	caster := NewPlayer("player_1", "player_1", Vec2{})
	target := NewBoss("Dragon", Vec2{}, 10000)

	dmg, ok := spear.Execute(caster, &target.LivingEntity)
	if !ok || dmg != 200 {
		t.Fatalf("execute = (%d, %v), want (200, true)", dmg, ok)
	}
	if spear.Ready() {
		t.Fatal("skill must enter cooldown after use")
	}
	if _, ok := spear.Execute(caster, &target.LivingEntity); ok {
		t.Fatal("skill on cooldown must not fire")
	}

	spear.Tick(3.0)
	if !spear.Ready() {
		t.Fatal("cooldown must expire after its duration")
	}
	if _, ok := spear.Execute(caster, &target.LivingEntity); !ok {
		t.Fatal("skill must fire again after cooldown")
	}
	if target.Health() != 10000-400 {
		t.Fatalf("boss health = %d, want 9600", target.Health())
	}
}

func TestDamageSkillAppliesMultiplier(t *testing.T) {
	fx := NewEffectManager()
	tun := NewTuning()
	tun.Apply(map[string]float64{"damage_multiplier": 2.0})
	spear := NewIceSpear(fx, tun)
	caster := NewPlayer("player_1", "player_1", Vec2{})
	target := NewBoss("Dragon", Vec2{}, 10000)

	if dmg, _ := spear.Execute(caster, &target.LivingEntity); dmg != 400 {
		t.Fatalf("damage = %d with 2x multiplier, want 400", dmg)
	}
}

func TestFireballDamageRange(t *testing.T) {
	fx := NewEffectManager()
	fireball := NewFireball(fx, NewTuning())
	caster := NewPlayer("player_1", "player_1", Vec2{})

	for i := 0; i < 50; i++ {
		target := NewBoss("Dragon", Vec2{}, 100000)
		dmg, ok := fireball.Execute(caster, &target.LivingEntity)
		if !ok {
			t.Fatal("execute failed")
		}
		// 150 基础伤害 ±20%
		if dmg < 120 || dmg > 180 {
			t.Fatalf("fireball damage %d outside [120,180]", dmg)
		}
		fireball.Tick(10)
	}
	// 命中产生弹道 + 爆炸两条特效
	if kinds := fx.Snapshot(); len(kinds) != 100 {
		t.Fatalf("effects = %d, want 100", len(kinds))
	}
}

func TestHealSkillDefaultsToCaster(t *testing.T) {
	fx := NewEffectManager()
	heal := NewQuickHeal(fx)
	caster := NewPlayer("player_1", "player_1", Vec2{})
	caster.TakeDamage(100, "boss")

	amount, ok := heal.Execute(caster, nil)
	if !ok || amount != 80 {
		t.Fatalf("heal = (%d, %v), want (80, true)", amount, ok)
	}
	if caster.Health() != 180 {
		t.Fatalf("health = %d, want 180", caster.Health())
	}
}

func TestDeadPlayerCannotUseSkills(t *testing.T) {
	fx := NewEffectManager()
	p := NewPlayer("player_1", "player_1", Vec2{})
	p.AddSkill(NewIceSpear(fx, NewTuning()))
	p.TakeDamage(9999, "boss")

	target := NewBoss("Dragon", Vec2{}, 1000)
	if _, ok := p.UseSkill(0, &target.LivingEntity); ok {
		t.Fatal("dead player must not cast")
	}
	// 越界下标同样无效
	if _, ok := p.UseSkill(5, &target.LivingEntity); ok {
		t.Fatal("out of range skill index must not cast")
	}
}

func TestPlayerLevelUp(t *testing.T) {
	p := NewPlayer("player_1", "player_1", Vec2{})
	p.GainExperience(100) // 一级需要 100
	if p.Level() != 2 {
		t.Fatalf("level = %d, want 2", p.Level())
	}
	if p.MaxHealth() != playerMaxHealth+levelHealthBonus {
		t.Fatalf("max health = %d", p.MaxHealth())
	}
	if p.Health() != p.MaxHealth() {
		t.Fatal("level up must fully heal")
	}
	// 连续升级：二级需要 200
	p.GainExperience(250)
	if p.Level() != 3 {
		t.Fatalf("level = %d, want 3", p.Level())
	}
}

func TestPlayerRespawnAfterDelay(t *testing.T) {
	p := NewPlayer("player_1", "player_1", Vec2{X: 100, Y: 100})
	p.SetVelocity(Vec2{X: 50, Y: 0})
	p.Update(1.0)
	p.TakeDamage(9999, "boss")

	p.Update(respawnDelay - 0.1)
	if p.Alive() {
		t.Fatal("player must stay down before the delay elapses")
	}
	p.Update(0.2)
	if !p.Alive() {
		t.Fatal("player must respawn after the delay")
	}
	if p.Health() != p.MaxHealth() {
		t.Fatal("respawn must restore full health")
	}
	if pos := p.Position(); pos.X != 100 || pos.Y != 100 {
		t.Fatalf("respawn must return to spawn point, got %+v", pos)
	}
}
