package blocks

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Block is one independently addressable unit of a page body. ID is stable
// for the block's lifetime and is the only key edits use.
type Block struct {
	ID    uuid.UUID
	Props Props
}

// New builds a block of kind with its zero payload and the given id.
func New(id uuid.UUID, kind Kind) (Block, error) {
	props, err := Zero(kind)
	if err != nil {
		return Block{}, err
	}
	return Block{ID: id, Props: props}, nil
}

// Kind returns the block's tag, or "" when it carries no payload.
func (b Block) Kind() Kind {
	if b.Props == nil {
		return ""
	}
	return b.Props.Kind()
}

// Clone deep-copies the payload.
func (b Block) Clone() Block {
	if b.Props == nil {
		return b
	}
	return Block{ID: b.ID, Props: b.Props.cloneProps()}
}

type envelope struct {
	ID    uuid.UUID       `json:"_id"`
	Type  string          `json:"type"`
	Props json.RawMessage `json:"props"`
}

// MarshalJSON encodes the block as {"_id", "type", "props"}.
func (b Block) MarshalJSON() ([]byte, error) {
	env := envelope{ID: b.ID, Type: string(b.Kind())}
	switch props := b.Props.(type) {
	case nil:
		env.Props = json.RawMessage("{}")
	case UnknownProps:
		env.Type = props.Type
		env.Props = props.Raw
		if len(bytes.TrimSpace(env.Props)) == 0 {
			env.Props = json.RawMessage("{}")
		}
	default:
		raw, err := json.Marshal(props)
		if err != nil {
			return nil, fmt.Errorf("blocks: encode %s: %w", env.Type, err)
		}
		env.Props = raw
	}
	return json.Marshal(env)
}

// UnmarshalJSON decodes stored blocks. Unknown tags become UnknownProps so
// the caller decides whether to reject or skip them.
func (b *Block) UnmarshalJSON(data []byte) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	props, err := decodeProps(env.Type, env.Props)
	if err != nil {
		return fmt.Errorf("blocks: decode %s: %w", env.Type, err)
	}
	b.ID = env.ID
	b.Props = props
	return nil
}

// List is an ordered page body. Order is significant.
type List []Block

// Clone deep-copies every block.
func (l List) Clone() List {
	if l == nil {
		return nil
	}
	out := make(List, len(l))
	for i, block := range l {
		out[i] = block.Clone()
	}
	return out
}

// IndexOf returns the position of id, or -1.
func (l List) IndexOf(id uuid.UUID) int {
	for i, block := range l {
		if block.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the block with id.
func (l List) Find(id uuid.UUID) (Block, bool) {
	if idx := l.IndexOf(id); idx >= 0 {
		return l[idx], true
	}
	return Block{}, false
}

// IDs lists block ids in order.
func (l List) IDs() []uuid.UUID {
	out := make([]uuid.UUID, len(l))
	for i, block := range l {
		out[i] = block.ID
	}
	return out
}

// CheckIDs reports the first nil or duplicated block id.
func (l List) CheckIDs() error {
	seen := make(map[uuid.UUID]struct{}, len(l))
	for i, block := range l {
		if block.ID == uuid.Nil {
			return fmt.Errorf("%w: block at position %d has no id", ErrInvalidProps, i)
		}
		if _, dup := seen[block.ID]; dup {
			return fmt.Errorf("%w: duplicate block id %s", ErrInvalidProps, block.ID)
		}
		seen[block.ID] = struct{}{}
	}
	return nil
}

// MarshalJSON always emits an array, never null.
func (l List) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Block(l))
}

// Value stores the list as a JSON document.
func (l List) Value() (driver.Value, error) {
	raw, err := l.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan loads a JSON document written by Value.
func (l *List) Scan(src any) error {
	var raw []byte
	switch value := src.(type) {
	case nil:
		*l = List{}
		return nil
	case []byte:
		raw = value
	case string:
		raw = []byte(value)
	default:
		return fmt.Errorf("blocks: cannot scan %T into List", src)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		*l = List{}
		return nil
	}
	var out []Block
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	if out == nil {
		out = []Block{}
	}
	*l = List(out)
	return nil
}
