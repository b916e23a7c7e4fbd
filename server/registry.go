package server

import (
	"fmt"
	"sort"
	"sync"
)

// Registry 线程安全的连接注册表，"谁在线上"的唯一事实来源
// 接受循环、各收包循环与广播清理路径并发改动它，所有变更只通过
// TryAdd / Remove 进行；容量上限为 maxPlayers，注册数永不超过它
type Registry struct {
	mu         sync.Mutex
	conns      map[string]*ClientConn
	maxPlayers int
	nextID     uint64 // 单调递增，移除后的 id 绝不复用
}

// NewRegistry 创建容量为 maxPlayers 的注册表
func NewRegistry(maxPlayers int) *Registry {
	return &Registry{
		conns:      make(map[string]*ClientConn),
		maxPlayers: maxPlayers,
	}
}

// TryAdd 在单个锁内检查容量并注册连接
// 已满时不做任何改动返回 false；否则分配下一个顺序 id（player_N）并插入
func (r *Registry) TryAdd(c *ClientConn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.conns) >= r.maxPlayers {
		return false
	}
	r.nextID++
	c.seq = r.nextID
	c.ID = fmt.Sprintf("player_%d", r.nextID)
	r.conns[c.ID] = c
	return true
}

// Remove 按 id 移除并返回连接；id 不存在时为无害的空操作（返回 nil）
// 幂等是刻意的：收包路径与广播清理路径可能并发上报同一次断连
func (r *Registry) Remove(id string) *ClientConn {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conns[id]
	if !ok {
		return nil
	}
	delete(r.conns, id)
	return c
}

// SnapshotAll 返回当前连接的防御性副本（按注册顺序）
// 供调用方在锁外迭代，避免慢速 send 期间占住注册表锁
func (r *Registry) SnapshotAll() []*ClientConn {
	r.mu.Lock()
	out := make([]*ClientConn, 0, len(r.conns))
	for _, c := range r.conns {
		out = append(out, c)
	}
	r.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

// Size 当前注册连接数
func (r *Registry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns)
}
