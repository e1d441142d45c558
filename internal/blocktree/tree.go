// Package blocktree provides the host block-tree capability: an
// in-memory nested block store addressed by generated ids. The extension
// mirrors created blocks into the host document from the API response.
package blocktree

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/starford/laguz/internal/apperr"
)

// BlockInfo is the public view of one block.
type BlockInfo struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Order int    `json:"order"`
	Open  bool   `json:"open"`
}

type block struct {
	id       string
	parent   string
	text     string
	order    int
	open     bool
	children []string
}

// Store is a concurrency-safe in-memory block tree.
type Store struct {
	mu     sync.RWMutex
	blocks map[string]*block
}

// NewStore creates an empty block store.
func NewStore() *Store {
	return &Store{blocks: make(map[string]*block)}
}

// Put registers (or updates) a root-level block under an external id,
// typically the host document's id for the source block.
func (s *Store) Put(id, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.blocks[id]; ok {
		b.text = text
		return
	}
	s.blocks[id] = &block{id: id, text: text, open: true}
}

// CreateChildBlock creates a new block under parentID and returns its id.
// order -1 appends last. An unknown parent is registered on the fly so
// callers can materialize under host-document ids the store has not seen.
func (s *Store) CreateChildBlock(parentID, text string, order int, open bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	parent, ok := s.blocks[parentID]
	if !ok {
		parent = &block{id: parentID, open: true}
		s.blocks[parentID] = parent
	}

	id := uuid.NewString()
	if order < 0 || order > len(parent.children) {
		order = len(parent.children)
	}
	b := &block{id: id, parent: parentID, text: strings.TrimSpace(text), order: order, open: open}
	s.blocks[id] = b
	parent.children = append(parent.children, "")
	copy(parent.children[order+1:], parent.children[order:])
	parent.children[order] = id
	s.reorderLocked(parent)
	return id, nil
}

// GetBlockText returns the text of a block.
func (s *Store) GetBlockText(id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blocks[id]
	if !ok {
		return "", apperr.ErrNotFound
	}
	return b.text, nil
}

// QueryChildren returns the ordered children of a block.
func (s *Store) QueryChildren(parentID string) ([]BlockInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	parent, ok := s.blocks[parentID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	out := make([]BlockInfo, 0, len(parent.children))
	for _, cid := range parent.children {
		c := s.blocks[cid]
		out = append(out, BlockInfo{ID: c.id, Text: c.text, Order: c.order, Open: c.open})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

// RenderSubtree flattens a block's descendants into the host's copied
// representation: tab-indented lines prefixed with "- ". The block itself
// is included as the first line.
func (s *Store) RenderSubtree(id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	root, ok := s.blocks[id]
	if !ok {
		return "", apperr.ErrNotFound
	}

	var b strings.Builder
	var walk func(blk *block, depth int)
	walk = func(blk *block, depth int) {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Repeat("\t", depth))
		b.WriteString("- ")
		b.WriteString(blk.text)
		for _, cid := range blk.children {
			walk(s.blocks[cid], depth+1)
		}
	}
	walk(root, 0)
	return b.String(), nil
}

func (s *Store) reorderLocked(parent *block) {
	for i, cid := range parent.children {
		s.blocks[cid].order = i
	}
}
