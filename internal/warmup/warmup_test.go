package warmup

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakePinger struct {
	provider    string
	model       string
	err         error
	calls       int
	hadDeadline bool
}

func (f *fakePinger) Ping(ctx context.Context) error {
	f.calls++
	_, f.hadDeadline = ctx.Deadline()
	return f.err
}

func (f *fakePinger) Describe() (provider, model string) {
	return f.provider, f.model
}

func TestRunOncePingsAllModels(t *testing.T) {
	a := &fakePinger{provider: "huggingface", model: "distilbert"}
	b := &fakePinger{provider: "huggingface", model: "distilgpt2"}

	RunOnce([]Pinger{a, b}, time.Minute)

	if a.calls != 1 || b.calls != 1 {
		t.Fatalf("expected one ping each, got %d and %d", a.calls, b.calls)
	}
	if !a.hadDeadline || !b.hadDeadline {
		t.Fatalf("expected ping contexts to carry a deadline")
	}
}

func TestRunOnceContinuesPastFailures(t *testing.T) {
	failing := &fakePinger{provider: "huggingface", model: "distilbert", err: errors.New("model load failed")}
	healthy := &fakePinger{provider: "huggingface", model: "distilgpt2"}

	RunOnce([]Pinger{failing, healthy}, time.Minute)

	if failing.calls != 1 {
		t.Fatalf("expected failing pinger to be called once, got %d", failing.calls)
	}
	if healthy.calls != 1 {
		t.Fatalf("expected healthy pinger to still be called, got %d", healthy.calls)
	}
}

func TestStartReturnsWithoutScheduling(t *testing.T) {
	p := &fakePinger{provider: "huggingface", model: "distilbert"}

	// Disabled paths must return immediately and never ping.
	Start("", []Pinger{p}, time.Minute)
	Start("   ", []Pinger{p}, time.Minute)
	Start("not a cron line", []Pinger{p}, time.Minute)
	Start("0 7 * * *", nil, time.Minute)

	if p.calls != 0 {
		t.Fatalf("expected no pings from disabled scheduler, got %d", p.calls)
	}
}

func TestStartWithValidScheduleDoesNotBlock(t *testing.T) {
	p := &fakePinger{provider: "huggingface", model: "distilbert"}

	done := make(chan struct{})
	go func() {
		Start("0 7 * * *", []Pinger{p}, time.Minute)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Start blocked instead of scheduling in the background")
	}
}
