package server

import (
	"encoding/json"
)

// Broadcaster 将每个 Tick 的状态快照扇出给所有注册连接
// 快照每 Tick 只序列化一次，同一份字节复用给所有接收方
type Broadcaster struct {
	reg *Registry
	// onRemove 连接因发送失败被清理时回调（用于与游戏逻辑同步注销）
	onRemove func(id string)
}

// NewBroadcaster 创建广播器
func NewBroadcaster(reg *Registry, onRemove func(id string)) *Broadcaster {
	return &Broadcaster{reg: reg, onRemove: onRemove}
}

// Broadcast 序列化快照并入队到每个注册连接的写协程
// 发送失败（写协程已判死）的连接在扇出结束后统一移除并关闭
func (b *Broadcaster) Broadcast(snapshot any) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		Log.Errorf("marshal snapshot: %v", err)
		return
	}

	var dead []*ClientConn
	conns := b.reg.SnapshotAll()
	for _, c := range conns {
		if !c.Enqueue(data) {
			dead = append(dead, c)
		}
	}
	broadcastFanout.Observe(float64(len(conns)))

	for _, c := range dead {
		// Remove 幂等：收包循环可能已先一步清理了同一连接
		if b.reg.Remove(c.ID) != nil {
			disconnectsTotal.Inc()
			connectedPlayers.Dec()
			Log.Infof("player %s dropped during broadcast", c.ID)
			if b.onRemove != nil {
				b.onRemove(c.ID)
			}
		}
		c.Close()
	}
}
