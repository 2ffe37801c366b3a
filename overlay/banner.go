// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package overlay draws the UI layer on top of colorized frames: highlight
// stipple, stat labels, the status panel and transient banners.
package overlay

import "time"

// DefaultBannerTTL is how long a banner stays up when no explicit duration
// is given.
const DefaultBannerTTL = 2 * time.Second

type banner struct {
	text    string
	expires time.Time
}

// BannerQueue holds transient messages in arrival order. Expiry is by
// absolute deadline; expired entries are dropped lazily on the next read.
// Not safe for concurrent use; the tick loop owns it.
type BannerQueue struct {
	ttl  time.Duration
	now  func() time.Time
	msgs []banner
}

// NewBannerQueue returns a queue with the given default TTL. Zero or
// negative means DefaultBannerTTL.
func NewBannerQueue(ttl time.Duration) *BannerQueue {
	if ttl <= 0 {
		ttl = DefaultBannerTTL
	}
	return &BannerQueue{ttl: ttl, now: time.Now}
}

// Push enqueues text with the default TTL. Empty text is ignored.
func (q *BannerQueue) Push(text string) {
	q.PushFor(text, q.ttl)
}

// PushFor enqueues text with an explicit TTL.
func (q *BannerQueue) PushFor(text string, ttl time.Duration) {
	if text == "" {
		return
	}
	q.msgs = append(q.msgs, banner{text: text, expires: q.now().Add(ttl)})
}

// Active drops expired entries and returns the remaining texts, oldest
// first.
func (q *BannerQueue) Active() []string {
	now := q.now()
	keep := q.msgs[:0]
	for _, m := range q.msgs {
		if m.expires.After(now) {
			keep = append(keep, m)
		}
	}
	q.msgs = keep
	out := make([]string, len(q.msgs))
	for i, m := range q.msgs {
		out[i] = m.text
	}
	return out
}
