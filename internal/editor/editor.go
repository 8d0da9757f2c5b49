package editor

import (
	"github.com/goliatone/go-solutions/internal/blocks"
	"github.com/goliatone/go-solutions/internal/logging"
	"github.com/goliatone/go-solutions/internal/solutions"
	"github.com/goliatone/go-solutions/pkg/interfaces"
	"github.com/google/uuid"
)

const defaultHistoryLimit = 50

// Editor mutates the block list of one in-memory draft. It performs no I/O;
// persisting the draft is a separate solutions.Service.Save call.
//
// Every successful mutation installs a new blocks.List on the draft instead
// of writing into the current one, so a list obtained from Blocks stays
// valid after later edits. Undo restores the previous list.
//
// An Editor is owned by a single caller and is not safe for concurrent use.
type Editor struct {
	draft   *solutions.Solution
	history []blocks.List
	limit   int
	newID   func() uuid.UUID
	logger  interfaces.Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithIDGenerator overrides block id generation.
func WithIDGenerator(generator func() uuid.UUID) Option {
	return func(e *Editor) {
		if generator != nil {
			e.newID = generator
		}
	}
}

// WithLogger overrides the editor logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithHistoryLimit caps how many undo snapshots are retained. Zero disables
// undo.
func WithHistoryLimit(limit int) Option {
	return func(e *Editor) {
		if limit < 0 {
			limit = 0
		}
		e.limit = limit
	}
}

// New opens an editing session over draft. A nil draft starts a new, empty
// Solution.
func New(draft *solutions.Solution, opts ...Option) *Editor {
	if draft == nil {
		draft = &solutions.Solution{}
	}
	if draft.Blocks == nil {
		draft.Blocks = blocks.List{}
	}
	e := &Editor{
		draft:  draft,
		limit:  defaultHistoryLimit,
		newID:  uuid.New,
		logger: logging.EditorLogger(nil),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Draft returns the solution being edited.
func (e *Editor) Draft() *solutions.Solution {
	return e.draft
}

// Blocks returns the current block list. Treat it as read-only; the editor
// never writes into a list it has handed out.
func (e *Editor) Blocks() blocks.List {
	return e.draft.Blocks
}

// AddBlock appends a new block of kind with a fresh id and the kind's zero
// payload.
func (e *Editor) AddBlock(kind blocks.Kind) (blocks.Block, error) {
	block, err := blocks.New(e.newID(), kind)
	if err != nil {
		return blocks.Block{}, err
	}

	current := e.draft.Blocks
	next := make(blocks.List, len(current), len(current)+1)
	copy(next, current)
	next = append(next, block)
	e.install(next)

	e.blockLogger(block).Debug("editor.block.added", "position", len(next)-1)
	return block.Clone(), nil
}

// UpdateBlock replaces the payload of block id. The new payload must carry
// the stored block's kind.
func (e *Editor) UpdateBlock(id uuid.UUID, props blocks.Props) error {
	if props == nil {
		return blocks.ErrPropsRequired
	}
	if !props.Kind().Known() {
		return &blocks.UnknownVariantError{Kind: props.Kind()}
	}
	if _, unknown := props.(blocks.UnknownProps); unknown {
		return &blocks.UnknownVariantError{Kind: props.Kind()}
	}

	index, err := e.indexOf(id)
	if err != nil {
		return err
	}
	stored := e.draft.Blocks[index]
	if stored.Kind() != props.Kind() {
		return &blocks.TagMismatchError{BlockID: id, Stored: stored.Kind(), Provided: props.Kind()}
	}

	e.replace(index, blocks.Block{ID: id, Props: props}.Clone())
	e.blockLogger(stored).Debug("editor.block.updated")
	return nil
}

// RemoveBlock deletes block id. Remaining blocks keep their ids and order.
func (e *Editor) RemoveBlock(id uuid.UUID) error {
	index, err := e.indexOf(id)
	if err != nil {
		return err
	}
	removed := e.draft.Blocks[index]

	current := e.draft.Blocks
	next := make(blocks.List, 0, len(current)-1)
	next = append(next, current[:index]...)
	next = append(next, current[index+1:]...)
	e.install(next)

	e.blockLogger(removed).Debug("editor.block.removed", "position", index)
	return nil
}

// MoveBlockUp swaps the block at index with the one before it. Moving the
// first block up, or an index outside the list, does nothing.
func (e *Editor) MoveBlockUp(index int) {
	e.swap(index, index-1)
}

// MoveBlockDown swaps the block at index with the one after it. Moving the
// last block down, or an index outside the list, does nothing.
func (e *Editor) MoveBlockDown(index int) {
	e.swap(index, index+1)
}

// Undo restores the block list as it was before the last successful
// mutation. It reports false when there is nothing to undo.
func (e *Editor) Undo() bool {
	if len(e.history) == 0 {
		return false
	}
	last := len(e.history) - 1
	e.draft.Blocks = e.history[last]
	e.history[last] = nil
	e.history = e.history[:last]
	return true
}

// CanUndo reports whether Undo has a snapshot to restore.
func (e *Editor) CanUndo() bool {
	return len(e.history) > 0
}

func (e *Editor) swap(from, to int) {
	current := e.draft.Blocks
	if from < 0 || from >= len(current) || to < 0 || to >= len(current) {
		return
	}
	next := make(blocks.List, len(current))
	copy(next, current)
	next[from], next[to] = next[to], next[from]
	e.install(next)

	e.blockLogger(current[from]).Debug("editor.block.moved", "from", from, "to", to)
}

func (e *Editor) replace(index int, block blocks.Block) {
	current := e.draft.Blocks
	next := make(blocks.List, len(current))
	copy(next, current)
	next[index] = block
	e.install(next)
}

func (e *Editor) install(next blocks.List) {
	if e.limit > 0 {
		e.history = append(e.history, e.draft.Blocks)
		if over := len(e.history) - e.limit; over > 0 {
			e.history = append(e.history[:0:0], e.history[over:]...)
		}
	}
	e.draft.Blocks = next
}

func (e *Editor) indexOf(id uuid.UUID) (int, error) {
	index := e.draft.Blocks.IndexOf(id)
	if index < 0 {
		return -1, &blocks.NotFoundError{BlockID: id}
	}
	return index, nil
}

func (e *Editor) blockLogger(block blocks.Block) interfaces.Logger {
	return logging.WithBlock(e.logger, e.draft.ID, block.ID, string(block.Kind()))
}
