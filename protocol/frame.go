package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// MaxFrameSize 单帧载荷上限（1MB）
// 长度头先于载荷到达，恶意声明超大长度会在分配前被拒绝
const MaxFrameSize = 1 << 20

var (
	// ErrTruncatedFrame 流在帧读满之前关闭，调用方必须视连接已断开
	ErrTruncatedFrame = errors.New("truncated frame")
	// ErrFrameTooLarge 声明长度超过 MaxFrameSize，同样按断连处理
	ErrFrameTooLarge = errors.New("frame too large")
)

// EncodeFrame 将载荷编码为线格式：[4字节大端长度N][N字节UTF-8载荷]
func EncodeFrame(payload []byte) []byte {
	frame := make([]byte, 4+len(payload))
	binary.BigEndian.PutUint32(frame, uint32(len(payload)))
	copy(frame[4:], payload)
	return frame
}

// ReadFrame 从流中阻塞读取恰好一帧并返回其载荷
// 长度头不足 4 字节或载荷未读满即遇到流关闭时返回 ErrTruncatedFrame，
// 两种情况下调用方都不应重试，而是走统一的断连路径
func ReadFrame(r io.Reader) ([]byte, error) {
	var head [4]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrTruncatedFrame
		}
		return nil, fmt.Errorf("read frame header: %w", err)
	}
	size := binary.BigEndian.Uint32(head[:])
	if size > MaxFrameSize {
		return nil, fmt.Errorf("%w: declared %d bytes", ErrFrameTooLarge, size)
	}
	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrTruncatedFrame
		}
		return nil, fmt.Errorf("read frame payload: %w", err)
	}
	return payload, nil
}

// WriteFrame 将一帧完整写入流（单次 Write，避免长度头与载荷之间被交错）
func WriteFrame(w io.Writer, payload []byte) error {
	if len(payload) > MaxFrameSize {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(payload))
	}
	if _, err := w.Write(EncodeFrame(payload)); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}
