package sales

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cineops/internal/notifications"
	"cineops/internal/shared/config"
	"cineops/pkg/logger"

	"github.com/go-co-op/gocron/v2"
)

const reportDayLayout = "2006-01-02"

// Reporter publishes the previous day's sales stats once a day.
type Reporter struct {
	service   Service
	publisher notifications.Publisher
	scheduler gocron.Scheduler
	location  *time.Location
	hour      uint
	minute    uint
	log       *logger.Logger
}

func NewReporter(service Service, publisher notifications.Publisher, cfg config.SchedulerConfig) (*Reporter, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid sales report timezone %q: %w", cfg.Timezone, err)
	}
	hour, minute, err := ParseClock(cfg.SalesReportAt)
	if err != nil {
		return nil, err
	}

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Reporter{
		service:   service,
		publisher: publisher,
		scheduler: scheduler,
		location:  loc,
		hour:      hour,
		minute:    minute,
		log:       logger.GetDefault(),
	}, nil
}

// ParseClock reads an HH:MM time of day.
func ParseClock(value string) (hour, minute uint, err error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("sales report time %q must be HH:MM", value)
	}
	h, errH := strconv.ParseUint(parts[0], 10, 8)
	m, errM := strconv.ParseUint(parts[1], 10, 8)
	if errH != nil || errM != nil || h > 23 || m > 59 {
		return 0, 0, fmt.Errorf("sales report time %q must be HH:MM", value)
	}
	return uint(h), uint(m), nil
}

func (r *Reporter) Start() error {
	_, err := r.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(r.hour, r.minute, 0))),
		gocron.NewTask(func() {
			if _, err := r.RunOnce(context.Background(), time.Now()); err != nil {
				r.log.ErrorWithContext(context.Background(), "daily sales report failed", err, nil)
			}
		}),
		gocron.WithName("sales-daily-report"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule sales report: %w", err)
	}

	r.scheduler.Start()
	r.log.Info("Sales report scheduled", "at", fmt.Sprintf("%02d:%02d", r.hour, r.minute), "timezone", r.location.String())
	return nil
}

func (r *Reporter) Stop() error {
	return r.scheduler.Shutdown()
}

// PreviousDay returns the calendar day before now in loc as [from, to).
func PreviousDay(now time.Time, loc *time.Location) (from, to time.Time) {
	local := now.In(loc)
	to = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	from = to.AddDate(0, 0, -1)
	return from, to
}

// RunOnce computes the report for the day before now and publishes it.
func (r *Reporter) RunOnce(ctx context.Context, now time.Time) (*DailyReport, error) {
	from, to := PreviousDay(now, r.location)

	stats, err := r.service.GetSalesStatsBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	report := &DailyReport{Day: from.Format(reportDayLayout), Stats: *stats}
	notifications.PublishAfterCommit(ctx, r.publisher, notifications.NewEvent(
		notifications.EventSalesDailyReport, report.Day, map[string]interface{}{
			"day":                      report.Day,
			"total_sales":              stats.TotalSales,
			"total_revenue":            stats.TotalRevenue.StringFixed(2),
			"average_tickets_per_sale": stats.AverageTicketsPerSale,
		}))
	return report, nil
}
