package main

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/Mshel/snakeduel/internal/metrics"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type ipLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// connectionLimiter caps concurrent sessions per IP and throttles how fast one IP
// may open new ones.
type connectionLimiter struct {
	maxPerIP int
	rate     rate.Limit
	burst    int

	mu       sync.Mutex
	active   map[string]int
	limiters map[string]*ipLimiterEntry
	now      func() time.Time
}

func newConnectionLimiter(maxPerIP int, perSecond float64, burst int) *connectionLimiter {
	return &connectionLimiter{
		maxPerIP: maxPerIP,
		rate:     rate.Limit(perSecond),
		burst:    burst,
		active:   make(map[string]int),
		limiters: make(map[string]*ipLimiterEntry),
		now:      time.Now,
	}
}

// acquire reserves a slot for ip. The returned reason is empty on success.
func (l *connectionLimiter) acquire(ip string) (reason string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.cleanup(now)

	entry, ok := l.limiters[ip]
	if !ok {
		entry = &ipLimiterEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = now

	if !entry.limiter.AllowN(now, 1) {
		return "rate"
	}
	if l.active[ip] >= l.maxPerIP {
		return "per_ip"
	}
	l.active[ip]++
	return ""
}

func (l *connectionLimiter) release(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.active[ip]--
	if l.active[ip] <= 0 {
		delete(l.active, ip)
	}
}

func (l *connectionLimiter) count(ip string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active[ip]
}

// cleanup drops idle rate limiters. Caller holds mu.
func (l *connectionLimiter) cleanup(now time.Time) {
	for ip, entry := range l.limiters {
		if l.active[ip] == 0 && now.Sub(entry.lastSeen) > limiterIdleTTL {
			delete(l.limiters, ip)
		}
	}
}

func (l *connectionLimiter) rejectionMessage(reason string) string {
	if reason == "rate" {
		return "You are connecting too fast. Please wait a moment and try again.\r\n"
	}
	return fmt.Sprintf("Too many active connections from your IP (limit %d). Please try again later.\r\n", l.maxPerIP)
}

func getIP(s ssh.Session) string {
	if addr, ok := s.RemoteAddr().(*net.TCPAddr); ok {
		return addr.IP.String()
	}
	return s.RemoteAddr().String()
}

func (l *connectionLimiter) middleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		ip := getIP(s)

		if reason := l.acquire(ip); reason != "" {
			metrics.ConnectionRejected(reason)
			log.Warn("Connection denied", "ip", ip, "reason", reason, "current_count", l.count(ip), "limit", l.maxPerIP)
			s.Write([]byte(l.rejectionMessage(reason)))
			s.Close()
			return
		}

		metrics.SessionOpened()
		log.Info("Connection accepted", "ip", ip, "current_count", l.count(ip), "limit", l.maxPerIP)
		defer func() {
			l.release(ip)
			metrics.SessionClosed()
			log.Info("Connection closed", "ip", ip, "count_after", l.count(ip))
		}()
		next(s)
	}
}
