// Package jobs runs the scheduled background work of the service.
package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type SubscriptionExpirer interface {
	ExpireEnded() (int64, error)
}

// ExpirySweeper marks subscriptions whose paid period ended as expired on a
// cron schedule.
type ExpirySweeper struct {
	expirer  SubscriptionExpirer
	logger   logrus.FieldLogger
	schedule string
	location *time.Location

	mu        sync.Mutex
	scheduler *cron.Cron
}

func NewExpirySweeper(expirer SubscriptionExpirer, schedule string, location *time.Location, logger logrus.FieldLogger) *ExpirySweeper {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ExpirySweeper{
		expirer:  expirer,
		logger:   logger.WithField("job", "subscription_expiry"),
		schedule: schedule,
		location: location,
	}
}

// Start runs one sweep immediately, then follows the schedule until ctx is
// done or Stop is called.
func (sweeper *ExpirySweeper) Start(ctx context.Context) error {
	sweeper.mu.Lock()
	defer sweeper.mu.Unlock()

	if sweeper.scheduler != nil {
		return fmt.Errorf("expiry sweeper already started")
	}

	scheduler := cron.New(cron.WithLocation(sweeper.location))
	if _, err := scheduler.AddFunc(sweeper.schedule, sweeper.RunOnce); err != nil {
		return fmt.Errorf("parse expiry schedule %q: %w", sweeper.schedule, err)
	}
	sweeper.scheduler = scheduler

	sweeper.RunOnce()
	scheduler.Start()

	go func() {
		<-ctx.Done()
		sweeper.Stop()
	}()
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (sweeper *ExpirySweeper) Stop() {
	sweeper.mu.Lock()
	scheduler := sweeper.scheduler
	sweeper.scheduler = nil
	sweeper.mu.Unlock()

	if scheduler == nil {
		return
	}
	<-scheduler.Stop().Done()
}

func (sweeper *ExpirySweeper) RunOnce() {
	expired, err := sweeper.expirer.ExpireEnded()
	if err != nil {
		sweeper.logger.WithError(err).Error("expire subscriptions failed")
		return
	}
	if expired > 0 {
		sweeper.logger.WithField("expired", expired).Info("subscriptions expired")
	}
}
