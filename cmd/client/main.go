package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"bossarena/client"
)

// 命令行测试客户端：连接服务器、定期渲染广播状态、读键盘指令
//
//	move <dx> <dy>   设置移动意图
//	stop             停止移动
//	skill <i> [目标] 使用第 i 个技能（默认目标 Boss）
//	quit             退出
func main() {
	var host string
	var port int
	flag.StringVar(&host, "host", "localhost", "server host")
	flag.IntVar(&port, "port", 8080, "server port")
	flag.Parse()

	c := client.New()
	if err := c.Connect(host, port); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer c.Disconnect()

	// 状态渲染协程：60Hz 的广播全打出来会刷屏，每秒渲染一次最新帧
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		var latest []byte
		for {
			select {
			case msg, ok := <-c.Messages():
				if !ok {
					return
				}
				latest = msg
			case <-ticker.C:
				if latest != nil {
					fmt.Print(client.RenderState(latest))
					latest = nil
				}
				if !c.Connected() {
					if c.Rejected() {
						fmt.Println("server full, rejected")
					} else {
						fmt.Println("disconnected")
					}
					os.Exit(0)
				}
			}
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "move":
			if len(fields) != 3 {
				fmt.Println("usage: move <dx> <dy>")
				continue
			}
			dx, err1 := strconv.ParseFloat(fields[1], 64)
			dy, err2 := strconv.ParseFloat(fields[2], 64)
			if err1 != nil || err2 != nil {
				fmt.Println("usage: move <dx> <dy>")
				continue
			}
			_ = c.SendPlayerAction("move", map[string]float64{"dx": dx, "dy": dy})
		case "stop":
			_ = c.SendPlayerAction("stop", nil)
		case "skill":
			if len(fields) < 2 {
				fmt.Println("usage: skill <index> [target]")
				continue
			}
			idx, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Println("usage: skill <index> [target]")
				continue
			}
			target := ""
			if len(fields) > 2 {
				target = fields[2]
			}
			_ = c.SendSkillUse(idx, target)
		case "quit":
			return
		default:
			fmt.Println("commands: move <dx> <dy> | stop | skill <i> [target] | quit")
		}
	}
}
