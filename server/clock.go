package server

import (
	"sync"
	"time"
)

const (
	// TicksPerSecond 世界推进频率（60 TPS）
	TicksPerSecond = 60
)

var tickInterval = time.Second / TicksPerSecond

// Simulation 由模拟时钟在状态锁内推进的共享世界状态
type Simulation interface {
	// Advance 按墙钟间隔推进所有实体，dt 单位为秒
	Advance(dt float64)
	// Snapshot 返回可序列化的状态视图；实现方须在锁内完成深拷贝，
	// 序列化本身发生在锁外
	Snapshot() any
}

// SimulationClock 固定频率推进模拟并在每个 Tick 触发一次广播
// 状态机 Stopped → Running → Stopped；每个 Tick 只用紧邻的墙钟差做
// deltaTime，慢 Tick 不会被后续更短的 sleep 补偿（无硬实时要求）
type SimulationClock struct {
	sim     Simulation
	stateMu *sync.Mutex
	bc      *Broadcaster
	stop    chan struct{}
	done    chan struct{}
}

// NewSimulationClock 创建时钟；stateMu 是与路由器共享的状态锁
func NewSimulationClock(sim Simulation, stateMu *sync.Mutex, bc *Broadcaster) *SimulationClock {
	return &SimulationClock{
		sim:     sim,
		stateMu: stateMu,
		bc:      bc,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Run Tick 循环：推进世界 → 取快照 → 广播 → 补足剩余帧时间
// 状态锁只覆盖推进与快照拷贝两个短临界区，绝不跨 I/O 持有
func (sc *SimulationClock) Run() {
	defer close(sc.done)
	last := time.Now()
	for {
		select {
		case <-sc.stop:
			return
		default:
		}

		start := time.Now()
		dt := start.Sub(last).Seconds()
		last = start

		sc.stateMu.Lock()
		sc.sim.Advance(dt)
		snapshot := sc.sim.Snapshot()
		sc.stateMu.Unlock()

		sc.bc.Broadcast(snapshot)

		elapsed := time.Since(start)
		tickDuration.Observe(elapsed.Seconds())
		if remain := tickInterval - elapsed; remain > 0 {
			time.Sleep(remain)
		}
	}
}

// Stop 通知 Tick 循环退出并等待其结束（时钟不可重启）
func (sc *SimulationClock) Stop() {
	close(sc.stop)
	<-sc.done
}
