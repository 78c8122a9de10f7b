package keypool

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"
)

// Free-tier limits per credential.
const (
	rpmLimit = 15
	rpdLimit = 1500
	tpmLimit = 1_000_000
)

// DefaultMaxWait bounds WaitForAvailableKey.
const DefaultMaxWait = 65 * time.Second

const maxBackoff = 10 * time.Second

type tokenUse struct {
	at    time.Time
	count int
}

// keyUsage is the per-credential bookkeeping. Reads and writes happen only
// under the pool lock.
type keyUsage struct {
	requests      []time.Time
	tokens        []tokenUse
	requestsToday int
	lastReset     time.Time
	exhausted     bool
}

// Pool shares a fixed list of API credentials across concurrent requests
// while enforcing per-minute request, per-minute token and per-day request
// quotas for each one. The quota check and the usage recording for a chosen
// credential happen atomically under one lock.
type Pool struct {
	mu    sync.Mutex
	keys  []string
	usage map[string]*keyUsage

	// injectable for tests
	now   func() time.Time
	sleep func(time.Duration)
}

func New(keys []string) *Pool {
	p := &Pool{
		keys:  keys,
		usage: make(map[string]*keyUsage),
		now:   time.Now,
		sleep: time.Sleep,
	}
	log.Printf("keypool: initialized with %d keys", len(keys))
	return p
}

// Empty reports whether the pool holds no credentials at all, which puts the
// parser into text-only mode.
func (p *Pool) Empty() bool {
	return len(p.keys) == 0
}

func (p *Pool) Size() int {
	return len(p.keys)
}

// EstimateTokens approximates the token count of a prompt as word count
// times 1.3. A heuristic, not exact.
func EstimateTokens(text string) int {
	return int(float64(len(strings.Fields(text))) * 1.3)
}

// usageFor lazily creates the usage record for a key. Caller holds p.mu.
func (p *Pool) usageFor(key string) *keyUsage {
	u, ok := p.usage[key]
	if !ok {
		u = &keyUsage{lastReset: p.now()}
		p.usage[key] = u
	}
	return u
}

// cleanOldUsage purges window entries older than a minute and handles the
// daily rollover. Caller holds p.mu.
func (p *Pool) cleanOldUsage(key string, u *keyUsage) {
	now := p.now()
	cutoff := now.Add(-time.Minute)

	kept := u.requests[:0]
	for _, t := range u.requests {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	u.requests = kept

	keptTokens := u.tokens[:0]
	for _, t := range u.tokens {
		if t.at.After(cutoff) {
			keptTokens = append(keptTokens, t)
		}
	}
	u.tokens = keptTokens

	if !sameDate(u.lastReset, now) {
		u.requestsToday = 0
		u.lastReset = now
		u.exhausted = false
		log.Printf("keypool: reset daily counter for key %s", keySuffix(key))
	}
}

// GetAvailableKey scans credentials in fixed order and returns the first one
// with headroom for the estimated tokens, recording the usage immediately so
// a concurrent caller cannot double-book the same headroom. Returns false
// without blocking when every credential is at a limit.
func (p *Pool) GetAvailableKey(estimatedTokens int) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, key := range p.keys {
		u := p.usageFor(key)
		p.cleanOldUsage(key, u)

		if u.exhausted {
			continue
		}
		if len(u.requests) >= rpmLimit {
			continue
		}
		if u.requestsToday >= rpdLimit {
			u.exhausted = true
			log.Printf("keypool: key %s exhausted for today (%d/%d)", keySuffix(key), u.requestsToday, rpdLimit)
			continue
		}

		windowTokens := 0
		for _, t := range u.tokens {
			windowTokens += t.count
		}
		if windowTokens+estimatedTokens > tpmLimit {
			continue
		}

		now := p.now()
		u.requests = append(u.requests, now)
		u.requestsToday++
		u.tokens = append(u.tokens, tokenUse{at: now, count: estimatedTokens})
		return key, true
	}

	return "", false
}

// WaitForAvailableKey polls GetAvailableKey with exponential backoff,
// starting at one second and capped at ten per attempt, until a credential
// frees up, maxWait elapses or the context is cancelled.
func (p *Pool) WaitForAvailableKey(ctx context.Context, estimatedTokens int, maxWait time.Duration) (string, bool) {
	if p.Empty() {
		return "", false
	}

	deadline := p.now().Add(maxWait)
	wait := time.Second

	for p.now().Before(deadline) {
		if key, ok := p.GetAvailableKey(estimatedTokens); ok {
			return key, true
		}
		if ctx.Err() != nil {
			return "", false
		}

		log.Printf("keypool: all keys at capacity, waiting %s", wait)
		p.sleep(wait)

		wait *= 2
		if wait > maxBackoff {
			wait = maxBackoff
		}
	}

	log.Printf("keypool: no key available after %s", maxWait)
	return "", false
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// keySuffix identifies a credential in logs without leaking it.
func keySuffix(key string) string {
	if len(key) <= 4 {
		return "..." + key
	}
	return "..." + key[len(key)-4:]
}
