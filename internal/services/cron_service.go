package services

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// CronService manages scheduled background jobs
type CronService struct {
	cron      *cron.Cron
	repairSvc *RepairService
	schedule  string
	logger    *logrus.Logger
}

// NewCronService creates a new CronService. The schedule uses cron syntax
// with a seconds field.
func NewCronService(repairSvc *RepairService, schedule string, logger *logrus.Logger) *CronService {
	return &CronService{
		cron:      cron.New(cron.WithSeconds()),
		repairSvc: repairSvc,
		schedule:  schedule,
		logger:    logger,
	}
}

// Start schedules and starts all cron jobs
func (s *CronService) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.sweepJob)
	if err != nil {
		return fmt.Errorf("failed to schedule sold count sweep: %w", err)
	}
	s.logger.WithField("schedule", s.schedule).Info("Scheduled sold count reconciliation sweep")

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for any running job to finish
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Cron service stopped")
}

// RunSweepNow runs the reconciliation sweep immediately
func (s *CronService) RunSweepNow() {
	s.sweepJob()
}

func (s *CronService) sweepJob() {
	startTime := time.Now()

	repaired, err := s.repairSvc.SweepAll()
	if err != nil {
		s.logger.WithError(err).Error("Sold count sweep failed")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"repaired": repaired,
		"duration": time.Since(startTime).String(),
	}).Info("Sold count sweep finished")
}
