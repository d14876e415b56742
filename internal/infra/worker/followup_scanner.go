package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/barsaude-crm/internal/infra/http/middleware"
	"github.com/xavierca1/barsaude-crm/internal/usecase"
)

// FollowUpRunner is one tick of the follow-up automation.
type FollowUpRunner interface {
	Scan(ctx context.Context) (usecase.ScanReport, error)
}

// FollowUpScanner runs the automation on a cron schedule. It owns its cron
// engine: Start begins ticking, Stop cancels the schedule and waits for a
// running tick to finish.
type FollowUpScanner struct {
	cronEngine *cron.Cron
	runner     FollowUpRunner
	spec       string
	runTimeout time.Duration
}

func NewFollowUpScanner(runner FollowUpRunner, spec string) *FollowUpScanner {
	if spec == "" {
		spec = "@every 60s"
	}
	return &FollowUpScanner{
		cronEngine: cron.New(),
		runner:     runner,
		spec:       spec,
		runTimeout: 5 * time.Minute,
	}
}

func (s *FollowUpScanner) Start() error {
	_, err := s.cronEngine.AddFunc(s.spec, s.runOnce)
	if err != nil {
		return err
	}

	s.cronEngine.Start()
	logrus.WithField("spec", s.spec).Info("follow-up scanner started")
	return nil
}

// Stop halts the schedule and blocks until an in-flight scan completes.
func (s *FollowUpScanner) Stop() {
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	logrus.Info("follow-up scanner stopped")
}

func (s *FollowUpScanner) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
	defer cancel()

	report, err := s.runner.Scan(ctx)
	if err != nil {
		logrus.WithError(err).Error("follow-up scan failed")
		return
	}

	for i := 0; i < report.Dispatched; i++ {
		middleware.RecordReminder("email", "success")
	}
	for i := 0; i < report.Prepared; i++ {
		middleware.RecordReminder("whatsapp", "prepared")
	}
	for i := 0; i < report.Failed; i++ {
		middleware.RecordReminder("any", "failed")
	}

	if report.Dispatched > 0 || report.Prepared > 0 || report.Failed > 0 {
		logrus.WithFields(logrus.Fields{
			"evaluated":  report.Evaluated,
			"dispatched": report.Dispatched,
			"prepared":   report.Prepared,
			"failed":     report.Failed,
		}).Info("follow-up scan finished")
	}
}
