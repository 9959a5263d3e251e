package main

import (
	"strings"
	"testing"
	"time"
)

func TestConnectionLimiterPerIPCap(t *testing.T) {
	l := newConnectionLimiter(2, 100, 100)

	if r := l.acquire("10.0.0.1"); r != "" {
		t.Fatalf("first connection rejected: %s", r)
	}
	if r := l.acquire("10.0.0.1"); r != "" {
		t.Fatalf("second connection rejected: %s", r)
	}
	if r := l.acquire("10.0.0.1"); r != "per_ip" {
		t.Fatalf("expected per_ip rejection, got %q", r)
	}
	if r := l.acquire("10.0.0.2"); r != "" {
		t.Fatalf("other IP should not be affected: %s", r)
	}

	l.release("10.0.0.1")
	if got := l.count("10.0.0.1"); got != 1 {
		t.Fatalf("expected 1 active, got %d", got)
	}
	if r := l.acquire("10.0.0.1"); r != "" {
		t.Fatalf("released slot should be reusable: %s", r)
	}
}

func TestConnectionLimiterRate(t *testing.T) {
	now := time.Unix(1000, 0)
	l := newConnectionLimiter(10, 1, 2)
	l.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		if r := l.acquire("10.0.0.1"); r != "" {
			t.Fatalf("burst connection %d rejected: %s", i, r)
		}
		l.release("10.0.0.1")
	}
	if r := l.acquire("10.0.0.1"); r != "rate" {
		t.Fatalf("expected rate rejection, got %q", r)
	}

	now = now.Add(time.Second)
	if r := l.acquire("10.0.0.1"); r != "" {
		t.Fatalf("token should refill after a second: %s", r)
	}
}

func TestConnectionLimiterDropsIdleLimiters(t *testing.T) {
	now := time.Unix(1000, 0)
	l := newConnectionLimiter(2, 1, 1)
	l.now = func() time.Time { return now }

	l.acquire("10.0.0.1")
	l.release("10.0.0.1")

	now = now.Add(limiterIdleTTL + time.Second)
	l.acquire("10.0.0.2")
	if _, ok := l.limiters["10.0.0.1"]; ok {
		t.Error("idle limiter should be dropped")
	}
}

func TestConnectionLimiterRejectionMessages(t *testing.T) {
	l := newConnectionLimiter(2, 1, 1)

	perIP := l.rejectionMessage("per_ip")
	if !strings.Contains(perIP, "limit 2") {
		t.Errorf("per-IP message should name the limit, got %q", perIP)
	}
	rate := l.rejectionMessage("rate")
	if strings.Contains(rate, "active connections") {
		t.Errorf("rate message should not blame concurrent sessions, got %q", rate)
	}
	if rate == perIP {
		t.Error("rate and per-IP rejections need distinct messages")
	}
}
