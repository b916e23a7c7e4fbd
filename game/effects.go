package game

// EffectManager 限时视觉特效池（弹道、爆炸、范围光环）
// 显式实例而非进程级单例，随 Manager 一起构造；所有调用都发生在
// 共享状态锁内，因此不需要自己的锁
type EffectManager struct {
	effects []Effect
}

// Effect 一条待渲染的特效记录
type Effect struct {
	Kind       string  `json:"type"` // projectile / explosion / area
	EffectType string  `json:"effect_type"`
	From       Vec2    `json:"from,omitempty"`
	To         Vec2    `json:"to,omitempty"`
	Position   Vec2    `json:"position,omitempty"`
	Radius     float64 `json:"radius,omitempty"`
	Lifetime   float64 `json:"lifetime"`
}

// NewEffectManager 创建空特效池
func NewEffectManager() *EffectManager {
	return &EffectManager{}
}

// CreateProjectile 弹道特效（1s 生命周期）
func (em *EffectManager) CreateProjectile(effectType string, from, to Vec2) {
	em.effects = append(em.effects, Effect{
		Kind: "projectile", EffectType: effectType,
		From: from, To: to, Lifetime: 1.0,
	})
}

// CreateExplosion 爆炸特效（0.5s 生命周期）
func (em *EffectManager) CreateExplosion(effectType string, pos Vec2, radius float64) {
	em.effects = append(em.effects, Effect{
		Kind: "explosion", EffectType: effectType,
		Position: pos, Radius: radius, Lifetime: 0.5,
	})
}

// CreateAreaEffect 范围特效（2s 生命周期）
func (em *EffectManager) CreateAreaEffect(effectType string, pos Vec2, radius float64) {
	em.effects = append(em.effects, Effect{
		Kind: "area", EffectType: effectType,
		Position: pos, Radius: radius, Lifetime: 2.0,
	})
}

// Update 推进生命周期并剔除过期特效
func (em *EffectManager) Update(dt float64) {
	active := em.effects[:0]
	for _, e := range em.effects {
		e.Lifetime -= dt
		if e.Lifetime > 0 {
			active = append(active, e)
		}
	}
	em.effects = active
}

// Snapshot 当前存活特效的防御性副本
func (em *EffectManager) Snapshot() []Effect {
	out := make([]Effect, len(em.effects))
	copy(out, em.effects)
	return out
}
