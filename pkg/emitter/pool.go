// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package emitter

import "sync"

// Scratch is the reusable working memory of an Emitter: its context stack,
// pending tags and the bytes of the operation being laid out.
type Scratch struct {
	frames   []frame
	tags     []string
	chars    []byte
	borrowed bool
}

func (s *Scratch) clear() {
	s.frames = append(s.frames[:0], frame{ctx: None})
	s.tags = s.tags[:0]
	s.chars = s.chars[:0]
}

// ScratchPool hands out Scratch values to emitters. It is safe for concurrent
// use; each Scratch has at most one borrower at a time.
type ScratchPool struct {
	pool sync.Pool
}

func NewScratchPool() *ScratchPool {
	p := &ScratchPool{}
	p.pool.New = func() interface{} {
		return &Scratch{
			frames: make([]frame, 0, 16),
			chars:  make([]byte, 0, 256),
		}
	}
	return p
}

var defaultPool = NewScratchPool()

// Acquire returns a cleared Scratch.
func (p *ScratchPool) Acquire() *Scratch {
	s := p.pool.Get().(*Scratch)
	if s.borrowed {
		panic("yaml emitter: scratch acquired while still borrowed")
	}
	s.borrowed = true
	s.clear()
	return s
}

// Release returns s to the pool. Releasing a Scratch that is not borrowed
// panics.
func (p *ScratchPool) Release(s *Scratch) {
	if !s.borrowed {
		panic("yaml emitter: scratch released without being acquired")
	}
	s.borrowed = false
	s.clear()
	p.pool.Put(s)
}
