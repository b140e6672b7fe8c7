package alerts

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"guardian/internal/models"
	"guardian/internal/store"
	"guardian/pkg/logger"
)

// Telemetry thresholds. A reading past its threshold raises one alert
// per resource and condition; recovery clears the latch so the
// condition can fire again later.
const (
	LowBatteryPct  = 20.0
	LowFuelPct     = 20.0
	OverTempC      = 40.0
	StaleSignalAge = 24 * time.Hour
)

// Monitor periodically scans resource telemetry and raises system
// alerts for degraded readings.
type Monitor struct {
	resources store.ResourceStore
	alerts    *Service
	cron      *cron.Cron

	mu     sync.Mutex
	raised map[string]struct{}

	now func() time.Time
}

func NewMonitor(resources store.ResourceStore, alerts *Service) *Monitor {
	return &Monitor{
		resources: resources,
		alerts:    alerts,
		raised:    make(map[string]struct{}),
		now:       time.Now,
	}
}

// Start schedules periodic scans with the given cron expression.
func (m *Monitor) Start(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		m.Scan(ctx)
	}); err != nil {
		return err
	}
	c.Start()
	m.cron = c
	logger.L().Info("telemetry monitor started", zap.String("schedule", spec))
	return nil
}

// Stop halts the schedule and waits for a running scan to finish.
func (m *Monitor) Stop() {
	if m.cron != nil {
		<-m.cron.Stop().Done()
	}
}

type condition struct {
	kind     string
	title    string
	describe func(r models.Resource) string
	severity models.Severity
	active   func(m *Monitor, t *models.Telemetry) bool
}

var conditions = []condition{
	{
		kind:  "battery",
		title: "Niski poziom baterii",
		describe: func(r models.Resource) string {
			return fmt.Sprintf("Poziom baterii zasobu %s spadł poniżej %.0f%%.", r.Name, LowBatteryPct)
		},
		severity: models.SeverityWarning,
		active: func(_ *Monitor, t *models.Telemetry) bool {
			return t.Battery != nil && *t.Battery < LowBatteryPct
		},
	},
	{
		kind:  "fuel",
		title: "Niski poziom paliwa",
		describe: func(r models.Resource) string {
			return fmt.Sprintf("Poziom paliwa zasobu %s spadł poniżej %.0f%%.", r.Name, LowFuelPct)
		},
		severity: models.SeverityWarning,
		active: func(_ *Monitor, t *models.Telemetry) bool {
			return t.Fuel != nil && *t.Fuel < LowFuelPct
		},
	},
	{
		kind:  "temperature",
		title: "Przekroczona temperatura pracy",
		describe: func(r models.Resource) string {
			return fmt.Sprintf("Temperatura zasobu %s przekroczyła %.0f°C.", r.Name, OverTempC)
		},
		severity: models.SeverityCritical,
		active: func(_ *Monitor, t *models.Telemetry) bool {
			return t.Temperature != nil && *t.Temperature > OverTempC
		},
	},
	{
		kind:  "signal",
		title: "Brak sygnału z urządzenia",
		describe: func(r models.Resource) string {
			return fmt.Sprintf("Zasób %s nie nadał sygnału od ponad %d godzin.", r.Name, int(StaleSignalAge.Hours()))
		},
		severity: models.SeverityCritical,
		active: func(m *Monitor, t *models.Telemetry) bool {
			return t.LastSignal != nil && m.now().Sub(*t.LastSignal) > StaleSignalAge
		},
	},
}

// Scan walks the fleet once. Each degraded reading raises at most one
// alert until the reading recovers.
func (m *Monitor) Scan(ctx context.Context) {
	resources, err := m.resources.List(ctx)
	if err != nil {
		logger.L().Warn("telemetry scan skipped", zap.Error(err))
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range resources {
		if r.Telemetry == nil {
			continue
		}
		for _, c := range conditions {
			key := r.ID + ":" + c.kind
			if !c.active(m, r.Telemetry) {
				delete(m.raised, key)
				continue
			}
			if _, done := m.raised[key]; done {
				continue
			}
			alert := &models.SystemAlert{
				Title:       c.title,
				Description: c.describe(r),
				Severity:    c.severity,
				Category:    r.Category,
				ResourceID:  r.ID,
				ActionLink:  "/resources/" + r.ID,
				ActionText:  "Zobacz szczegóły",
			}
			if err := m.alerts.Create(ctx, alert); err != nil {
				logger.L().Warn("telemetry alert not created",
					zap.String("resource", r.ID), zap.String("condition", c.kind), zap.Error(err))
				continue
			}
			m.raised[key] = struct{}{}
		}
	}
}
