// Package warmup keeps hosted inference models loaded by pinging them on a
// cron schedule. Requests never wait for the schedule; they warm lazily on
// first use, and the scheduler just keeps cold starts off the hot path.
package warmup

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Pinger is a model resource that can be warmed with a minimal inference.
type Pinger interface {
	Ping(ctx context.Context) error
	Describe() (provider, model string)
}

// Start launches the warmup scheduler. The schedule is a standard 5-field
// cron expression (minute hour day-of-month month day-of-week).
// Examples: "*/30 * * * *" (every 30 min), "0 7-19 * * 1-5" (hourly on
// weekday working hours). An empty schedule disables warmup.
func Start(schedule string, pingers []Pinger, timeout time.Duration) {
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		log.Println("Warmup disabled (warmup_schedule not set)")
		return
	}
	if len(pingers) == 0 {
		log.Println("Warmup disabled: no hosted models to keep warm")
		return
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		log.Printf("Invalid warmup_schedule '%s': %v; warmup disabled", schedule, err)
		return
	}

	var models []string
	for _, p := range pingers {
		provider, model := p.Describe()
		models = append(models, provider+"/"+model)
	}
	log.Printf("Warmup scheduled (cron: %s) for %s", schedule, strings.Join(models, " + "))

	go func() {
		for {
			now := time.Now()
			next := sched.Next(now)
			wait := next.Sub(now)
			log.Printf("Next warmup at %s (in %s)", next.Format("Mon Jan 2 15:04"), wait.Round(time.Minute))

			time.Sleep(wait)
			RunOnce(pingers, timeout)
		}
	}()
}

// RunOnce pings every model once, logging outcomes. A failed ping does not
// stop the remaining pings.
func RunOnce(pingers []Pinger, timeout time.Duration) {
	for _, p := range pingers {
		provider, model := p.Describe()
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		start := time.Now()
		if err := p.Ping(ctx); err != nil {
			log.Printf("warmup ping failed provider=%s model=%s: %v", provider, model, err)
		} else {
			log.Printf("warmup ping ok provider=%s model=%s elapsed=%s", provider, model, time.Since(start).Round(time.Millisecond))
		}
		cancel()
	}
}
