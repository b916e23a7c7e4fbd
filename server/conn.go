package server

import (
	"net"
	"sync"
	"sync/atomic"

	"bossarena/protocol"
)

// Transport 抽象一条可靠的逐消息通道（TCP 帧流或 WebSocket）
// ReadMessage/WriteMessage 均为阻塞调用，Close 可与二者并发
type Transport interface {
	ReadMessage() ([]byte, error)
	WriteMessage(payload []byte) error
	// WriteRaw 绕过封帧直接写裸字节，仅用于容量拒绝提示
	WriteRaw(b []byte) error
	Close() error
	RemoteAddr() string
}

// tcpTransport 基于 net.Conn 的长度前缀帧通道
type tcpTransport struct {
	conn net.Conn
}

// NewTCPTransport 将一条已接受的 TCP 连接包装为帧通道
func NewTCPTransport(conn net.Conn) Transport {
	return &tcpTransport{conn: conn}
}

func (t *tcpTransport) ReadMessage() ([]byte, error) {
	return protocol.ReadFrame(t.conn)
}

func (t *tcpTransport) WriteMessage(payload []byte) error {
	return protocol.WriteFrame(t.conn, payload)
}

func (t *tcpTransport) WriteRaw(b []byte) error {
	_, err := t.conn.Write(b)
	return err
}

func (t *tcpTransport) Close() error { return t.conn.Close() }

func (t *tcpTransport) RemoteAddr() string { return t.conn.RemoteAddr().String() }

// ClientConn 代表一名已注册玩家的连接
// 出站走带缓冲队列 + 独立写协程（广播只入队，永不阻塞在对端 socket 上）；
// 存活标志 connected 在整个生命周期内恰好翻转一次 true → false，
// 是其他组件判断“该连接是否还能用”的权威信号
type ClientConn struct {
	ID  string // 形如 player_N，由 Registry 在注册时分配
	seq uint64 // 注册序号，用于稳定排序

	tr        Transport
	out       chan []byte
	connected atomic.Bool
	wmu       sync.Mutex // 串行化底层写，防止直接回复与写协程交错
	closeOnce sync.Once
	done      chan struct{}
}

// NewClientConn 包装一条底层通道；ID 由 Registry.TryAdd 分配
func NewClientConn(tr Transport) *ClientConn {
	c := &ClientConn{
		tr:   tr,
		out:  make(chan []byte, 64),
		done: make(chan struct{}),
	}
	c.connected.Store(true)
	return c
}

// Connected 返回存活标志当前值
func (c *ClientConn) Connected() bool { return c.connected.Load() }

// MarkDead 翻转存活标志，返回是否由本次调用完成翻转（至多一次）
func (c *ClientConn) MarkDead() bool {
	return c.connected.CompareAndSwap(true, false)
}

// RemoteAddr 对端地址（仅用于日志）
func (c *ClientConn) RemoteAddr() string { return c.tr.RemoteAddr() }

// ReceiveOne 阻塞接收恰好一条完整消息
// 任何 I/O 错误或截断帧都视为连接已关闭，由调用方走断连路径
func (c *ClientConn) ReceiveOne() ([]byte, error) {
	return c.tr.ReadMessage()
}

// SendOne 在写锁内封帧并同步写出一条消息
// 失败翻转存活标志但不关闭 socket（由调用方关闭）
func (c *ClientConn) SendOne(payload []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	if err := c.tr.WriteMessage(payload); err != nil {
		c.MarkDead()
		return err
	}
	return nil
}

// Enqueue 将出站消息压入队列，由写协程异步发出
// 非阻塞：连接已死返回 false；队列满则丢弃本条以保证 Tick 准时
func (c *ClientConn) Enqueue(payload []byte) bool {
	if !c.connected.Load() {
		return false
	}
	select {
	case c.out <- payload:
		return true
	case <-c.done:
		return false
	default:
		// 为了实时性，慢消费者丢帧而不是拖慢广播
		broadcastDropped.Inc()
		return true
	}
}

// StartWriter 启动独立写协程，注册成功后调用一次
func (c *ClientConn) StartWriter() {
	go c.writePump()
}

// writePump 独立协程，从出站队列写到底层通道，首次写失败即退出
func (c *ClientConn) writePump() {
	for {
		select {
		case payload := <-c.out:
			if err := c.SendOne(payload); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// Close 翻转存活标志并关闭底层通道（幂等）
// 关闭会让阻塞中的收发自然观察到失败并沿断连路径退出
func (c *ClientConn) Close() {
	c.closeOnce.Do(func() {
		c.MarkDead()
		close(c.done)
		_ = c.tr.Close()
	})
}
