package retention

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// DefaultInterval is how often idle records are swept.
const DefaultInterval = time.Hour

// Pruner deletes idle records and reports how many went.
type Pruner interface {
	Prune(ctx context.Context, now time.Time) (int, error)
}

// Sweeper runs a Pruner on a fixed interval.
type Sweeper struct {
	scheduler *gocron.Scheduler
	pruner    Pruner
	interval  time.Duration
	log       logrus.FieldLogger
	now       func() time.Time
}

func New(p Pruner, interval time.Duration, log logrus.FieldLogger) *Sweeper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Sweeper{
		scheduler: s,
		pruner:    p,
		interval:  interval,
		log:       log,
		now:       time.Now,
	}
}

// Start schedules the sweep and returns without blocking.
func (s *Sweeper) Start() error {
	if _, err := s.scheduler.Every(s.interval).Do(s.sweep); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	s.log.WithField("interval", s.interval.String()).Info("retention sweeper started")
	return nil
}

func (s *Sweeper) Stop() {
	s.scheduler.Stop()
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()
	if _, err := s.RunOnce(ctx); err != nil {
		s.log.WithError(err).Error("retention sweep failed")
	}
}

// RunOnce prunes immediately.
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	return s.pruner.Prune(ctx, s.now())
}
