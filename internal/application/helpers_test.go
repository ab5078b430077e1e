package application

import (
	"sync"
	"time"

	"github.com/bnema/secrecy-farm-cli/internal/domain"
	"github.com/bnema/secrecy-farm-cli/internal/ports"
	"github.com/ethereum/go-ethereum/common"
)

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	due := make([]*fakeTimer, 0, len(c.timers))
	pending := c.timers[:0]
	for _, timer := range c.timers {
		if !timer.stopped && !c.now.Before(timer.at) {
			due = append(due, timer)
			continue
		}
		pending = append(pending, timer)
	}
	c.timers = pending
	c.mu.Unlock()

	for _, timer := range due {
		timer.fn()
	}
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) ports.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	timer := &fakeTimer{at: c.now.Add(d), fn: f}
	c.timers = append(c.timers, timer)
	return timer
}

func (c *fakeClock) pendingTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, timer := range c.timers {
		if !timer.stopped {
			count++
		}
	}
	return count
}

type fakeTimer struct {
	at      time.Time
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

type staticHandle struct {
	status ports.SubmissionStatus
	done   chan struct{}
}

func settledHandle(status ports.SubmissionStatus) *staticHandle {
	done := make(chan struct{})
	close(done)
	return &staticHandle{status: status, done: done}
}

func pendingHandle() *staticHandle {
	return &staticHandle{status: ports.SubmissionStatus{Pending: true}, done: make(chan struct{})}
}

func (h *staticHandle) Status() ports.SubmissionStatus { return h.status }
func (h *staticHandle) Done() <-chan struct{}          { return h.done }

func confirmedStatus(stakeID domain.StakeID) ports.SubmissionStatus {
	return ports.SubmissionStatus{
		Confirmed: true,
		TxHash:    common.HexToHash("0x01"),
		StakeID:   stakeID,
	}
}

var testWallet = common.HexToAddress("0x00000000000000000000000000000000000000aa")

func testPools() []domain.Pool {
	return domain.DefaultPools()
}

// rejectedStatus is a final status for a submission that never produced a
// transaction hash.
func rejectedStatus(err error) ports.SubmissionStatus {
	return ports.SubmissionStatus{Err: err}
}

func revertedStatus(err error) ports.SubmissionStatus {
	return ports.SubmissionStatus{
		TxHash: common.HexToHash("0x02"),
		Err:    err,
	}
}
