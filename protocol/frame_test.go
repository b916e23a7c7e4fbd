package protocol

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	payloads := [][]byte{
		{},
		[]byte("x"),
		[]byte(`{"type":"player_action","action":"move","data":{"dx":1,"dy":0}}`),
		bytes.Repeat([]byte("嗯"), 1000),
		bytes.Repeat([]byte{0x00, 0xff}, 4096),
	}
	for _, payload := range payloads {
		frame := EncodeFrame(payload)
		if got := binary.BigEndian.Uint32(frame[:4]); got != uint32(len(payload)) {
			t.Fatalf("length prefix = %d, want %d", got, len(payload))
		}
		decoded, err := ReadFrame(bytes.NewReader(frame))
		if err != nil {
			t.Fatalf("ReadFrame: %v", err)
		}
		if !bytes.Equal(decoded, payload) {
			t.Fatalf("round trip mismatch: %d bytes in, %d bytes out", len(payload), len(decoded))
		}
	}
}

func TestReadFrameConsumesExactlyOneFrame(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(EncodeFrame([]byte("first")))
	buf.Write(EncodeFrame([]byte("second")))

	for _, want := range []string{"first", "second"} {
		got, err := ReadFrame(&buf)
		if err != nil {
			t.Fatalf("ReadFrame: %v", err)
		}
		if string(got) != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	}
}

func TestReadFrameTruncated(t *testing.T) {
	cases := map[string][]byte{
		"empty stream":    {},
		"partial header":  {0x00, 0x00},
		"header only":     {0x00, 0x00, 0x00, 0x05},
		"partial payload": append([]byte{0x00, 0x00, 0x00, 0x05}, 'a', 'b', 'c'),
	}
	for name, raw := range cases {
		if _, err := ReadFrame(bytes.NewReader(raw)); !errors.Is(err, ErrTruncatedFrame) {
			t.Errorf("%s: err = %v, want ErrTruncatedFrame", name, err)
		}
	}
}

func TestReadFrameRejectsOversizedLength(t *testing.T) {
	// 声明超大长度必须在分配载荷之前被拒绝
	var head [4]byte
	binary.BigEndian.PutUint32(head[:], MaxFrameSize+1)
	if _, err := ReadFrame(bytes.NewReader(head[:])); !errors.Is(err, ErrFrameTooLarge) {
		t.Fatalf("err = %v, want ErrFrameTooLarge", err)
	}
}

func TestWriteFrame(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, []byte("hello")); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	got, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("got %q", got)
	}
}
