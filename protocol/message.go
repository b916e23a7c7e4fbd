package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// RejectionNotice 容量已满时在帧协议之外直接发送的裸字节提示
// 刚建立的连接上收到无法按帧解析的数据即应视为被拒绝
const RejectionNotice = "Server full"

// ErrProtocol 载荷不是合法 JSON 或缺少其声明类型的必填字段
// 该消息被丢弃并记录，连接本身保持可用
var ErrProtocol = errors.New("protocol error")

// MessageKind 入站消息的判别类型（显式标签联合，未知类型有自己的变体）
type MessageKind int

const (
	KindUnknown MessageKind = iota
	KindPlayerAction
	KindSkillUse
)

// PlayerAction 玩家行动消息体：{"type":"player_action","action":...,"data":...}
type PlayerAction struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

// SkillUse 技能使用消息体：{"type":"skill_use","skill_index":...,"target_id":...}
// TargetID 为空串表示线上的 null（由调用方解释为默认目标）
type SkillUse struct {
	SkillIndex int    `json:"skill_index"`
	TargetID   string `json:"target_id"`
}

// ClientMessage 解码后的入站消息，按 Kind 判别取用对应字段
type ClientMessage struct {
	Kind   MessageKind
	Action PlayerAction
	Skill  SkillUse
}

// envelope 一次性解出类型标签与所有候选字段，指针区分“缺失”与“零值”
type envelope struct {
	Type       string          `json:"type"`
	Action     *string         `json:"action"`
	Data       json.RawMessage `json:"data"`
	SkillIndex *int            `json:"skill_index"`
	TargetID   *string         `json:"target_id"`
}

// DecodeClientMessage 解析一条入站消息
// 非法 JSON 或必填字段缺失返回 ErrProtocol；无法识别的 type 返回
// KindUnknown 变体而不是错误（向前兼容：未知消息永不断开发送方）
func DecodeClientMessage(raw []byte) (ClientMessage, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return ClientMessage{}, fmt.Errorf("%w: %v", ErrProtocol, err)
	}
	switch env.Type {
	case "player_action":
		if env.Action == nil {
			return ClientMessage{}, fmt.Errorf("%w: player_action missing action", ErrProtocol)
		}
		return ClientMessage{
			Kind:   KindPlayerAction,
			Action: PlayerAction{Action: *env.Action, Data: env.Data},
		}, nil
	case "skill_use":
		if env.SkillIndex == nil {
			return ClientMessage{}, fmt.Errorf("%w: skill_use missing skill_index", ErrProtocol)
		}
		var target string
		if env.TargetID != nil {
			target = *env.TargetID
		}
		return ClientMessage{
			Kind:  KindSkillUse,
			Skill: SkillUse{SkillIndex: *env.SkillIndex, TargetID: target},
		}, nil
	default:
		return ClientMessage{Kind: KindUnknown}, nil
	}
}

// EncodePlayerAction 构造 player_action 消息（客户端侧使用）
func EncodePlayerAction(action string, data any) ([]byte, error) {
	return json.Marshal(map[string]any{
		"type":   "player_action",
		"action": action,
		"data":   data,
	})
}

// EncodeSkillUse 构造 skill_use 消息，target 为空串时编码为 null
func EncodeSkillUse(skillIndex int, target string) ([]byte, error) {
	var targetID any
	if target != "" {
		targetID = target
	}
	return json.Marshal(map[string]any{
		"type":        "skill_use",
		"skill_index": skillIndex,
		"target_id":   targetID,
	})
}
