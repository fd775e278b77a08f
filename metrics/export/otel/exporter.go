package otel

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/metric"

	localauth "github.com/futuremakers/localauth"
)

var (
	ErrNilMeter  = errors.New("nil meter")
	ErrNilSource = errors.New("nil metrics source")
)

type counterDef struct {
	id   localauth.MetricID
	name string
	help string
}

var counterDefs = []counterDef{
	{localauth.MetricRegisterSuccess, "localauth_register_success_total", "Successful registrations."},
	{localauth.MetricRegisterFailure, "localauth_register_failure_total", "Registrations rejected by validation."},
	{localauth.MetricRegisterDuplicate, "localauth_register_duplicate_total", "Registrations rejected for an already-registered email."},
	{localauth.MetricLoginSuccess, "localauth_login_success_total", "Successful logins."},
	{localauth.MetricLoginFailure, "localauth_login_failure_total", "Failed logins, validation and credential failures combined."},
	{localauth.MetricLogout, "localauth_logout_total", "Logout operations."},
	{localauth.MetricSessionEstablished, "localauth_session_established_total", "Sessions written, from login and registration."},
	{localauth.MetricWelcomeConsumed, "localauth_welcome_consumed_total", "One-shot welcome flags consumed."},
	{localauth.MetricStorageFailure, "localauth_storage_failure_total", "Operations aborted by storage unavailability."},
}

type metricsSource interface {
	MetricsSnapshot() localauth.MetricsSnapshot
	AuditDropped() uint64
}

type observedCounter struct {
	id         localauth.MetricID
	instrument metric.Int64ObservableCounter
}

type OTelExporter struct {
	source       metricsSource
	registration metric.Registration
	counters     []observedCounter
	auditDropped metric.Int64ObservableCounter
}

// NewOTelExporter registers the engine's counters on meter.
func NewOTelExporter(meter metric.Meter, engine *localauth.Engine) (*OTelExporter, error) {
	return NewOTelExporterFromSource(meter, engine)
}

// NewOTelExporterFromSource is the testable seam behind [NewOTelExporter].
func NewOTelExporterFromSource(meter metric.Meter, source metricsSource) (*OTelExporter, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}
	if source == nil {
		return nil, ErrNilSource
	}

	exporter := &OTelExporter{
		source:   source,
		counters: make([]observedCounter, 0, len(counterDefs)),
	}

	observables := make([]metric.Observable, 0, len(counterDefs)+1)

	for _, def := range counterDefs {
		ins, err := meter.Int64ObservableCounter(def.name, metric.WithDescription(def.help))
		if err != nil {
			return nil, fmt.Errorf("create observable counter %s: %w", def.name, err)
		}
		exporter.counters = append(exporter.counters, observedCounter{id: def.id, instrument: ins})
		observables = append(observables, ins)
	}

	auditDropped, err := meter.Int64ObservableCounter(
		"localauth_audit_dropped_total",
		metric.WithDescription("Dropped audit events due to dispatcher backpressure."),
	)
	if err != nil {
		return nil, fmt.Errorf("create audit dropped counter: %w", err)
	}
	exporter.auditDropped = auditDropped
	observables = append(observables, auditDropped)

	registration, err := meter.RegisterCallback(func(_ context.Context, observer metric.Observer) error {
		snapshot := exporter.source.MetricsSnapshot()
		for _, c := range exporter.counters {
			observer.ObserveInt64(c.instrument, int64(snapshot.Counters[c.id]))
		}
		observer.ObserveInt64(exporter.auditDropped, int64(exporter.source.AuditDropped()))
		return nil
	}, observables...)
	if err != nil {
		return nil, fmt.Errorf("register callback: %w", err)
	}

	exporter.registration = registration
	return exporter, nil
}

func (e *OTelExporter) Close() error {
	if e == nil || e.registration == nil {
		return nil
	}
	return e.registration.Unregister()
}
