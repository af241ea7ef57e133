package archive

import (
	"context"
	"imgstore/internal/archive/interfaces"
	"imgstore/internal/providers"
	"imgstore/internal/structures"
	"imgstore/internal/viewlog"
	"sync"
	"time"

	"github.com/roylee0704/gron"
)

// Scheduler archives yesterday's partition once it is complete.
type Scheduler struct {
	config   *structures.Config
	logger   providers.Logger
	viewLog  viewlog.ViewLogInterface
	archiver *Archiver
	cron     *gron.Cron
	opsMu    sync.Mutex
	now      func() time.Time
}

func (s *Scheduler) Init() {
	if !s.viewLog.Enabled() {
		s.logger.Infof(providers.TypeApp, "View log disabled, archiving skipped")
		return
	}
	interval := s.config.Archive.Interval
	if interval <= 0 || s.config.Archive.Dir == "" {
		s.logger.Infof(providers.TypeApp, "Archiving not configured")
		return
	}

	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(interval), func() {
		if err := s.RunOnce(context.Background()); err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while archiving views: %s", err)
		}
	})
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// RunOnce archives yesterday unless its archive already exists.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	if !s.viewLog.Enabled() {
		return nil
	}
	day := viewlog.PartitionKey(s.now().UTC().AddDate(0, 0, -1))
	if s.archiver.Exists(day) {
		s.logger.Debugf(providers.TypeApp, "Partition %s already archived", day)
		return nil
	}
	_, err := s.archiver.ArchiveDay(ctx, day)
	return err
}

func NewScheduler(config *structures.Config, logger providers.Logger, viewLog viewlog.ViewLogInterface, archiver *Archiver) interfaces.SchedulerInterface {
	return &Scheduler{
		config:   config,
		logger:   logger,
		viewLog:  viewLog,
		archiver: archiver,
		now:      time.Now,
	}
}
