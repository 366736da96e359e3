// Package sexpr implements a compact self-describing binary encoding of
// nested lists of fixed-width numbers.
//
// Every node starts with a one-byte kind tag:
//
//	list  0x01  u32 LE body length, then the concatenated child nodes
//	u32   0x02  4 bytes LE
//	u64   0x03  8 bytes LE
//	f32   0x04  4 bytes LE IEEE-754
//
// A list's body length makes every node skippable without understanding
// its contents. Parsing never panics; malformed input yields an error.
package sexpr

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Kind identifies the type of a node.
type Kind byte

const (
	KindList Kind = 0x01
	KindU32  Kind = 0x02
	KindU64  Kind = 0x03
	KindF32  Kind = 0x04
)

func (kind Kind) String() string {
	switch kind {
	case KindList:
		return "list"
	case KindU32:
		return "u32"
	case KindU64:
		return "u64"
	case KindF32:
		return "f32"
	}
	return fmt.Sprintf("kind(0x%02x)", byte(kind))
}

const (
	tagSize        = 1
	listHeaderSize = tagSize + 4
)

var (
	// ErrTruncated indicates input shorter than a node's declared size.
	ErrTruncated = errors.New("sexpr: truncated node")
	// ErrKind indicates an unknown tag or a node of an unexpected kind.
	ErrKind = errors.New("sexpr: unexpected kind")
	// ErrTrailing indicates bytes after the top-level node.
	ErrTrailing = errors.New("sexpr: trailing data")
	// ErrUnbalanced indicates a Builder list left open or closed twice.
	ErrUnbalanced = errors.New("sexpr: unbalanced list")
)

func payloadSize(kind Kind) (int, bool) {
	switch kind {
	case KindU32, KindF32:
		return 4, true
	case KindU64:
		return 8, true
	}
	return 0, false
}

// Node is a parsed node. Its payload aliases the input buffer.
type Node struct {
	kind    Kind
	payload []byte
}

// Parse parses exactly one node spanning all of data.
func Parse(data []byte) (Node, error) {
	node, rest, err := next(data)
	if err != nil {
		return Node{}, err
	}
	if len(rest) != 0 {
		return Node{}, fmt.Errorf("%w: %d bytes", ErrTrailing, len(rest))
	}
	return node, nil
}

func next(data []byte) (Node, []byte, error) {
	if len(data) < tagSize {
		return Node{}, nil, ErrTruncated
	}
	kind := Kind(data[0])
	if kind == KindList {
		if len(data) < listHeaderSize {
			return Node{}, nil, ErrTruncated
		}
		length := binary.LittleEndian.Uint32(data[tagSize:listHeaderSize])
		body := data[listHeaderSize:]
		if uint64(length) > uint64(len(body)) {
			return Node{}, nil, ErrTruncated
		}
		return Node{kind: kind, payload: body[:length]}, body[length:], nil
	}

	size, ok := payloadSize(kind)
	if !ok {
		return Node{}, nil, fmt.Errorf("%w: tag 0x%02x", ErrKind, byte(kind))
	}
	body := data[tagSize:]
	if len(body) < size {
		return Node{}, nil, ErrTruncated
	}
	return Node{kind: kind, payload: body[:size]}, body[size:], nil
}

// Kind returns the node's kind.
func (node Node) Kind() Kind {
	return node.kind
}

// Items parses the children of a list node.
func (node Node) Items() ([]Node, error) {
	if node.kind != KindList {
		return nil, fmt.Errorf("%w: want list, got %s", ErrKind, node.kind)
	}
	var items []Node
	rest := node.payload
	for len(rest) > 0 {
		item, remaining, err := next(rest)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		rest = remaining
	}
	return items, nil
}

// U32 returns the value of a u32 node.
func (node Node) U32() (uint32, error) {
	if node.kind != KindU32 {
		return 0, fmt.Errorf("%w: want u32, got %s", ErrKind, node.kind)
	}
	return binary.LittleEndian.Uint32(node.payload), nil
}

// U64 returns the value of a u64 node.
func (node Node) U64() (uint64, error) {
	if node.kind != KindU64 {
		return 0, fmt.Errorf("%w: want u64, got %s", ErrKind, node.kind)
	}
	return binary.LittleEndian.Uint64(node.payload), nil
}

// F32 returns the value of an f32 node.
func (node Node) F32() (float32, error) {
	if node.kind != KindF32 {
		return 0, fmt.Errorf("%w: want f32, got %s", ErrKind, node.kind)
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(node.payload)), nil
}
