package server

import (
	"encoding/json"
	"errors"
	"sync"

	"bossarena/protocol"
)

// GameLogic 路由器分发的游戏逻辑协作方
// 所有方法都在共享状态锁内被同步调用，实现方不得在其中做 I/O
type GameLogic interface {
	// OnPlayerJoin / OnPlayerLeave 连接注册与注销时各触发恰好一次
	OnPlayerJoin(playerID string)
	OnPlayerLeave(playerID string)
	HandlePlayerAction(playerID, action string, data json.RawMessage)
	// targetID 为空串表示消息中的 null（由实现方选择默认目标）
	HandleSkillUse(playerID string, skillIndex int, targetID string)
}

// InboundMessage 收包循环产出、路由器消费的入站消息
// 多生产者单消费者；同一连接的消息保持接收顺序，跨连接顺序不保证
type InboundMessage struct {
	ConnID  string
	Payload []byte
}

// Router 消费入站队列，按消息类型分发给游戏逻辑
// 自身不持有任何游戏领域知识，只认识两种消息模式
type Router struct {
	inbox   <-chan InboundMessage
	logic   GameLogic
	stateMu *sync.Mutex
	stop    chan struct{}
	done    chan struct{}
}

// NewRouter 创建路由器；stateMu 是与模拟时钟共享的状态锁
func NewRouter(inbox <-chan InboundMessage, logic GameLogic, stateMu *sync.Mutex) *Router {
	return &Router{
		inbox:   inbox,
		logic:   logic,
		stateMu: stateMu,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Run 消费循环：出队并分发，直到 Stop 被调用
func (rt *Router) Run() {
	defer close(rt.done)
	for {
		select {
		case msg := <-rt.inbox:
			rt.Dispatch(msg.ConnID, msg.Payload)
		case <-rt.stop:
			return
		}
	}
}

// Stop 通知消费循环退出并等待其结束
func (rt *Router) Stop() {
	close(rt.stop)
	<-rt.done
}

// Dispatch 解析一条原始载荷并分发
// 畸形消息只丢弃并记录，连接保持打开（一条坏消息不毁掉整个会话）
func (rt *Router) Dispatch(connID string, raw []byte) {
	msg, err := protocol.DecodeClientMessage(raw)
	if err != nil {
		if errors.Is(err, protocol.ErrProtocol) {
			protocolErrors.Inc()
			Log.Warnf("invalid message from %s: %v", connID, err)
			return
		}
		Log.Errorf("decode message from %s: %v", connID, err)
		return
	}

	switch msg.Kind {
	case protocol.KindPlayerAction:
		inboundMessages.WithLabelValues("player_action").Inc()
		rt.stateMu.Lock()
		rt.logic.HandlePlayerAction(connID, msg.Action.Action, msg.Action.Data)
		rt.stateMu.Unlock()
	case protocol.KindSkillUse:
		inboundMessages.WithLabelValues("skill_use").Inc()
		rt.stateMu.Lock()
		rt.logic.HandleSkillUse(connID, msg.Skill.SkillIndex, msg.Skill.TargetID)
		rt.stateMu.Unlock()
	case protocol.KindUnknown:
		// 向前兼容：未知类型静默丢弃，绝不让发送方掉线
		inboundMessages.WithLabelValues("unknown").Inc()
		Log.Debugf("unknown message type from %s, dropped", connID)
	}
}
