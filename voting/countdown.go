// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Remaining is a floor-truncated breakdown of the time left.
type Remaining struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

func (r Remaining) String() string {
	return fmt.Sprintf("%dd %02dh %02dm %02ds", r.Days, r.Hours, r.Minutes, r.Seconds)
}

// Until splits deadline-now into days, hours, minutes and seconds.
// ok is false once the deadline has been reached.
func Until(deadline, now time.Time) (r Remaining, ok bool) {
	diff := deadline.Sub(now)
	if diff <= 0 {
		return Remaining{}, false
	}
	secs := int64(diff / time.Second)
	return Remaining{
		Days:    int(secs / 86400),
		Hours:   int(secs / 3600 % 24),
		Minutes: int(secs / 60 % 60),
		Seconds: int(secs % 60),
	}, true
}

// Countdown tracks the time left until Deadline. After the deadline the last
// value computed before it stays frozen.
type Countdown struct {
	Deadline time.Time
	Interval time.Duration
	Now      func() time.Time

	mu   sync.Mutex
	last Remaining
	done bool
}

func NewCountdown(deadline time.Time) *Countdown {
	return &Countdown{Deadline: deadline, Interval: time.Second, Now: time.Now}
}

// Tick recomputes the remaining time and returns it.
func (c *Countdown) Tick() Remaining {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if r, ok := Until(c.Deadline, now()); ok {
		c.last = r
	} else {
		c.done = true
	}
	return c.last
}

// Current returns the last computed value without recomputing.
func (c *Countdown) Current() Remaining {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Expired reports whether a tick has observed the deadline.
func (c *Countdown) Expired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// Run ticks once immediately and then every Interval until ctx is cancelled,
// passing each value to onTick. The ticker is released on return.
func (c *Countdown) Run(ctx context.Context, onTick func(Remaining)) {
	interval := c.Interval
	if interval <= 0 {
		interval = time.Second
	}

	emit := func() {
		r := c.Tick()
		if onTick != nil {
			onTick(r)
		}
	}

	emit()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			emit()
		}
	}
}
