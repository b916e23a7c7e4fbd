// Package client 提供命令行测试客户端的网络层
// 与服务器交换 4 字节大端长度前缀的 JSON 帧，收发各一条独立协程
package client

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"bossarena/protocol"
)

// Client 游戏客户端网络管理
type Client struct {
	conn      net.Conn
	connected atomic.Bool
	rejected  atomic.Bool
	gotFrame  atomic.Bool

	incoming chan []byte
	outgoing chan []byte
	done     chan struct{}
	once     sync.Once
}

// New 创建未连接的客户端
func New() *Client {
	return &Client{
		incoming: make(chan []byte, 64),
		outgoing: make(chan []byte, 64),
		done:     make(chan struct{}),
	}
}

// Connect 建立 TCP 连接并启动收发协程
func (c *Client) Connect(host string, port int) error {
	conn, err := net.DialTimeout("tcp", fmt.Sprintf("%s:%d", host, port), 5*time.Second)
	if err != nil {
		return fmt.Errorf("connect %s:%d: %w", host, port, err)
	}
	c.conn = conn
	c.connected.Store(true)
	go c.receiveLoop()
	go c.sendLoop()
	return nil
}

// Connected 连接是否仍然可用
func (c *Client) Connected() bool { return c.connected.Load() }

// Rejected 是否在收到任何完整帧之前就被服务器挂断
// 协议约定：新建连接上无法按帧解析的响应即为容量拒绝
func (c *Client) Rejected() bool { return c.rejected.Load() }

// receiveLoop 逐帧接收，失败即标记断开
func (c *Client) receiveLoop() {
	defer c.Disconnect()
	for c.connected.Load() {
		payload, err := protocol.ReadFrame(c.conn)
		if err != nil {
			// 首帧就无法解析（超大“长度”或截断）说明收到的是
			// 裸字节拒绝提示，而不是协议消息
			if !c.gotFrame.Load() &&
				(errors.Is(err, protocol.ErrFrameTooLarge) || errors.Is(err, protocol.ErrTruncatedFrame)) {
				c.rejected.Store(true)
			}
			return
		}
		c.gotFrame.Store(true)
		select {
		case c.incoming <- payload:
		default:
			// 渲染跟不上就丢旧帧，只保最新状态
			select {
			case <-c.incoming:
			default:
			}
			select {
			case c.incoming <- payload:
			default:
			}
		}
	}
}

// sendLoop 将出站队列逐帧写出
func (c *Client) sendLoop() {
	for {
		select {
		case payload := <-c.outgoing:
			if err := protocol.WriteFrame(c.conn, payload); err != nil {
				c.Disconnect()
				return
			}
		case <-c.done:
			return
		}
	}
}

// enqueue 非阻塞入队一条出站消息
func (c *Client) enqueue(payload []byte) error {
	if !c.connected.Load() {
		return errors.New("not connected")
	}
	select {
	case c.outgoing <- payload:
		return nil
	default:
		return errors.New("send queue full")
	}
}

// SendPlayerAction 发送 player_action 消息
func (c *Client) SendPlayerAction(action string, data any) error {
	payload, err := protocol.EncodePlayerAction(action, data)
	if err != nil {
		return err
	}
	return c.enqueue(payload)
}

// SendSkillUse 发送 skill_use 消息，target 为空串时编码为 null
func (c *Client) SendSkillUse(skillIndex int, target string) error {
	payload, err := protocol.EncodeSkillUse(skillIndex, target)
	if err != nil {
		return err
	}
	return c.enqueue(payload)
}

// Messages 入站状态帧通道（最多缓存最近若干帧）
func (c *Client) Messages() <-chan []byte { return c.incoming }

// Disconnect 关闭连接（幂等）
func (c *Client) Disconnect() {
	c.once.Do(func() {
		c.connected.Store(false)
		close(c.done)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}
