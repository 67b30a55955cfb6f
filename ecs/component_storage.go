package ecs

import (
	"iter"
	"reflect"
)

// componentStorage is a type-erased column of components for one archetype.
type componentStorage interface {
	Append(item any) int
	Delete(index int) bool
	Get(index int) any
	Has(index int) bool
	Len() int
	Reset()
	Iter() iter.Seq[int]
}

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent worlds to coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentStorage),
	}
}

// RegisterComponent registers a new component type with the given registry.
// This must be called for each component type before it can be used.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() componentStorage {
		return &blockStorage[T]{}
	}
}

// Registered reports whether T has been registered.
func Registered[T any](r *ComponentRegistry) bool {
	_, ok := r.factories[reflect.TypeFor[T]()]
	return ok
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() componentStorage {
	return r.factories[t]
}

const blockSize = 64

type block[T any] struct {
	items  [blockSize]T
	filled [blockSize]bool
}

// blockStorage stores components of type T in fixed-size heap blocks.
// Blocks are never moved once allocated, so a pointer returned by Get stays
// valid until the slot is deleted or the storage is reset.
type blockStorage[T any] struct {
	blocks    []*block[T]
	freeSlots []int
	nextIndex int
	live      int
}

// Append adds a component to storage and returns its index.
func (cs *blockStorage[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
		if index/blockSize >= len(cs.blocks) {
			cs.blocks = append(cs.blocks, &block[T]{})
		}
	}

	b := cs.blocks[index/blockSize]
	b.items[index%blockSize] = value
	b.filled[index%blockSize] = true
	cs.live++
	return index
}

func (cs *blockStorage[T]) slot(index int) (*block[T], int) {
	if index < 0 || index >= cs.nextIndex {
		return nil, 0
	}
	return cs.blocks[index/blockSize], index % blockSize
}

// Get returns a pointer to the component at the given index.
func (cs *blockStorage[T]) Get(index int) any {
	b, i := cs.slot(index)
	if b == nil || !b.filled[i] {
		return nil
	}
	return &b.items[i]
}

// Delete marks a component slot as empty and reports whether it was filled.
func (cs *blockStorage[T]) Delete(index int) bool {
	b, i := cs.slot(index)
	if b == nil || !b.filled[i] {
		return false
	}

	var zero T
	b.items[i] = zero
	b.filled[i] = false
	cs.freeSlots = append(cs.freeSlots, index)
	cs.live--
	return true
}

// Has checks if a component exists at the given index.
func (cs *blockStorage[T]) Has(index int) bool {
	b, i := cs.slot(index)
	return b != nil && b.filled[i]
}

// Len returns the number of live components.
func (cs *blockStorage[T]) Len() int {
	return cs.live
}

// Reset drops every component but keeps the first block for reuse.
func (cs *blockStorage[T]) Reset() {
	if len(cs.blocks) > 0 {
		first := cs.blocks[0]
		*first = block[T]{}
		cs.blocks = cs.blocks[:1]
		cs.blocks[0] = first
	}
	cs.freeSlots = cs.freeSlots[:0]
	cs.nextIndex = 0
	cs.live = 0
}

// Iter yields filled indices in ascending order. With no deletes this is
// insertion order.
func (cs *blockStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			if !cs.blocks[i/blockSize].filled[i%blockSize] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
