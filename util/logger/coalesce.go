/*
 * pdp8 - Repeat-suppressing slog.Handler wrapper
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package logger

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// Coalescer wraps a slog.Handler and suppresses an identical record
// (same level, message and attributes) repeated back to back, instead
// emitting one line with a "repeated Nx" attribute once a different
// record arrives or Flush is called. A CPU running off into invalid
// IOTs in a tight loop logs one invalid-instruction line per repeat
// without this; this is the sink's property, not cpu-package logic, so
// any caller of Log gets the same coalescing for free.
type Coalescer struct {
	next slog.Handler
	mu   sync.Mutex

	have  bool
	sig   string
	rec   slog.Record
	count int
}

// NewCoalescer wraps next.
func NewCoalescer(next slog.Handler) *Coalescer {
	return &Coalescer{next: next}
}

func (c *Coalescer) Enabled(ctx context.Context, level slog.Level) bool {
	return c.next.Enabled(ctx, level)
}

func (c *Coalescer) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Coalescer{next: c.next.WithAttrs(attrs)}
}

func (c *Coalescer) WithGroup(name string) slog.Handler {
	return &Coalescer{next: c.next.WithGroup(name)}
}

func signature(r slog.Record) string {
	var b strings.Builder
	b.WriteString(r.Level.String())
	b.WriteByte(':')
	b.WriteString(r.Message)
	r.Attrs(func(a slog.Attr) bool {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteByte('=')
		b.WriteString(a.Value.String())
		return true
	})
	return b.String()
}

func (c *Coalescer) Handle(ctx context.Context, r slog.Record) error {
	sig := signature(r)

	c.mu.Lock()
	if c.have && sig == c.sig {
		c.count++
		c.mu.Unlock()
		return nil
	}
	pending, pendingCount := c.rec, c.count
	hadPending := c.have
	c.rec = r.Clone()
	c.sig = sig
	c.count = 1
	c.have = true
	c.mu.Unlock()

	if hadPending {
		if err := c.emit(ctx, pending, pendingCount); err != nil {
			return err
		}
	}
	return nil
}

// Flush emits any pending coalesced record. Call it at shutdown so the
// last run of repeats is never silently dropped.
func (c *Coalescer) Flush(ctx context.Context) error {
	c.mu.Lock()
	if !c.have {
		c.mu.Unlock()
		return nil
	}
	pending, pendingCount := c.rec, c.count
	c.have = false
	c.mu.Unlock()
	return c.emit(ctx, pending, pendingCount)
}

func (c *Coalescer) emit(ctx context.Context, r slog.Record, count int) error {
	if count > 1 {
		r.Add(slog.Int("repeated", count))
	}
	return c.next.Handle(ctx, r)
}
