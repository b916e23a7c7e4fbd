package server

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"bossarena/protocol"
)

// ErrServerStopped Start 在已停止的服务器上被再次调用
var ErrServerStopped = errors.New("server already stopped")

// Server 编排接受循环、各连接收包循环、路由器与模拟时钟的生命周期
// 状态机 Created → Started → Stopped，停止后不可重启
type Server struct {
	reg   *Registry
	inbox chan InboundMessage

	// stateMu 保护共享模拟状态：只在单个 Tick 的推进、单条消息的
	// 分发与加入/离开回调内持有，绝不跨 I/O
	stateMu sync.Mutex
	sim     Simulation
	logic   GameLogic

	router *Router
	clock  *SimulationClock
	bc     *Broadcaster

	listener net.Listener
	running  atomic.Bool
	stopped  atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// New 创建服务器；sim 与 logic 通常由同一个游戏管理器实现
func New(sim Simulation, logic GameLogic, maxPlayers int) *Server {
	s := &Server{
		reg:    NewRegistry(maxPlayers),
		inbox:  make(chan InboundMessage, 256),
		sim:    sim,
		logic:  logic,
		stopCh: make(chan struct{}),
	}
	s.bc = NewBroadcaster(s.reg, s.onLeave)
	s.router = NewRouter(s.inbox, logic, &s.stateMu)
	s.clock = NewSimulationClock(sim, &s.stateMu, s.bc)
	return s
}

// Start 绑定监听地址并启动接受循环、路由器与模拟时钟
// 绑定失败是致命的：返回错误且不启动任何后台活动
func (s *Server) Start(host string, port int) error {
	if s.stopped.Load() {
		return ErrServerStopped
	}
	ln, err := net.Listen("tcp", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		return fmt.Errorf("bind %s:%d: %w", host, port, err)
	}
	s.listener = ln
	s.running.Store(true)
	Log.Infof("server started on %s (max players %d)", ln.Addr(), s.reg.maxPlayers)

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		s.acceptLoop()
	}()
	go func() {
		defer s.wg.Done()
		s.router.Run()
	}()
	go s.clock.Run()
	return nil
}

// Addr 实际监听地址（端口 0 时由内核分配）
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Registry 暴露注册表供网关与测试观察
func (s *Server) Registry() *Registry { return s.reg }

// acceptLoop 接受新连接并交给 HandleTransport
func (s *Server) acceptLoop() {
	for s.running.Load() {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			if s.running.Load() {
				Log.Errorf("accept: %v", err)
			}
			continue
		}
		s.HandleTransport(NewTCPTransport(conn))
	}
}

// HandleTransport 将一条新通道纳入注册表并启动其收发协程
// 容量已满时发送未封帧的拒绝提示并立即关闭，绝不进入注册表；
// TCP 接受循环与 WebSocket 网关都经由此路径
func (s *Server) HandleTransport(tr Transport) {
	c := NewClientConn(tr)
	if !s.reg.TryAdd(c) {
		rejectionsTotal.Inc()
		Log.Infof("connection from %s rejected: server full", tr.RemoteAddr())
		_ = tr.WriteRaw([]byte(protocol.RejectionNotice))
		_ = tr.Close()
		return
	}
	connectionsTotal.Inc()
	connectedPlayers.Inc()
	Log.Infof("player %s connected from %s", c.ID, tr.RemoteAddr())

	s.stateMu.Lock()
	s.logic.OnPlayerJoin(c.ID)
	s.stateMu.Unlock()

	c.StartWriter()
	// 每连接一个轻量协程，由运行时调度，不借用固定工作池槽位
	go s.receiveLoop(c)
}

// receiveLoop 单连接收包循环：收一条入队一条，失败即走断连路径
func (s *Server) receiveLoop(c *ClientConn) {
	defer s.dropConn(c)
	for s.running.Load() && c.Connected() {
		payload, err := c.ReceiveOne()
		if err != nil {
			if s.running.Load() && !errors.Is(err, protocol.ErrTruncatedFrame) {
				Log.Debugf("receive from %s: %v", c.ID, err)
			}
			return
		}
		select {
		case s.inbox <- InboundMessage{ConnID: c.ID, Payload: payload}:
		case <-s.stopCh:
			return
		}
	}
}

// dropConn 统一断连路径：移除、关闭、通知游戏逻辑
// Registry.Remove 幂等，与广播清理并发上报同一断连也只注销一次
func (s *Server) dropConn(c *ClientConn) {
	removed := s.reg.Remove(c.ID)
	c.Close()
	if removed != nil {
		disconnectsTotal.Inc()
		connectedPlayers.Dec()
		Log.Infof("player %s disconnected", c.ID)
		s.onLeave(c.ID)
	}
}

// onLeave 在状态锁内通知游戏逻辑玩家离开
func (s *Server) onLeave(id string) {
	s.stateMu.Lock()
	s.logic.OnPlayerLeave(id)
	s.stateMu.Unlock()
}

// Stop 停止服务器（幂等，不可重启）
// 关闭监听与各连接 socket，让阻塞中的收发自然观察到失败退出；
// 不强行打断正在进行的写
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		s.running.Store(false)
		s.stopped.Store(true)
		close(s.stopCh)
		if s.listener == nil {
			// Start 从未成功，没有后台活动可等
			return
		}
		_ = s.listener.Close()
		s.clock.Stop()
		s.router.Stop()
		for _, c := range s.reg.SnapshotAll() {
			s.reg.Remove(c.ID)
			c.Close()
		}
		s.wg.Wait()
		Log.Info("server stopped")
	})
}
