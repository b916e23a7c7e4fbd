package protocol

import (
	"errors"
	"testing"
)

func TestDecodePlayerAction(t *testing.T) {
	raw := []byte(`{"type":"player_action","action":"move","data":{"dx":1,"dy":-1}}`)
	msg, err := DecodeClientMessage(raw)
	if err != nil {
		t.Fatalf("DecodeClientMessage: %v", err)
	}
	if msg.Kind != KindPlayerAction {
		t.Fatalf("kind = %v, want KindPlayerAction", msg.Kind)
	}
	if msg.Action.Action != "move" {
		t.Fatalf("action = %q", msg.Action.Action)
	}
	if len(msg.Action.Data) == 0 {
		t.Fatal("data not carried through")
	}
}

func TestDecodeSkillUse(t *testing.T) {
	cases := []struct {
		name       string
		raw        string
		wantIndex  int
		wantTarget string
	}{
		{"with target", `{"type":"skill_use","skill_index":2,"target_id":"player_1"}`, 2, "player_1"},
		{"null target", `{"type":"skill_use","skill_index":0,"target_id":null}`, 0, ""},
		{"missing target", `{"type":"skill_use","skill_index":1}`, 1, ""},
	}
	for _, tc := range cases {
		msg, err := DecodeClientMessage([]byte(tc.raw))
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if msg.Kind != KindSkillUse {
			t.Fatalf("%s: kind = %v", tc.name, msg.Kind)
		}
		if msg.Skill.SkillIndex != tc.wantIndex || msg.Skill.TargetID != tc.wantTarget {
			t.Fatalf("%s: got (%d, %q), want (%d, %q)", tc.name,
				msg.Skill.SkillIndex, msg.Skill.TargetID, tc.wantIndex, tc.wantTarget)
		}
	}
}

func TestDecodeUnknownKindIsNotAnError(t *testing.T) {
	// 向前兼容：未知 type 返回显式的 KindUnknown 变体而不是错误
	msg, err := DecodeClientMessage([]byte(`{"type":"unknown_kind"}`))
	if err != nil {
		t.Fatalf("unknown kind must not error: %v", err)
	}
	if msg.Kind != KindUnknown {
		t.Fatalf("kind = %v, want KindUnknown", msg.Kind)
	}
}

func TestDecodeProtocolErrors(t *testing.T) {
	cases := map[string]string{
		"not json":            `{{{`,
		"action missing":      `{"type":"player_action","data":{}}`,
		"skill_index missing": `{"type":"skill_use","target_id":"x"}`,
	}
	for name, raw := range cases {
		if _, err := DecodeClientMessage([]byte(raw)); !errors.Is(err, ErrProtocol) {
			t.Errorf("%s: err = %v, want ErrProtocol", name, err)
		}
	}
}

func TestEncodeSkillUseNullTarget(t *testing.T) {
	payload, err := EncodeSkillUse(0, "")
	if err != nil {
		t.Fatalf("EncodeSkillUse: %v", err)
	}
	msg, err := DecodeClientMessage(payload)
	if err != nil {
		t.Fatalf("decode own encoding: %v", err)
	}
	if msg.Skill.TargetID != "" {
		t.Fatalf("target = %q, want empty", msg.Skill.TargetID)
	}
}
