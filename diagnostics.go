package aieps

import (
	"errors"

	"go.uber.org/zap"
)

// Alert is a diagnostic message together with the identifiers of the elements that caused it.
type Alert struct {
	Message string
	Err     error    // first recorded error with this message
	IDs     []string // unique, in order of occurrence
}

// Diagnostics collects alerts during transcoding, deduplicated by message.
type Diagnostics struct {
	alerts []*Alert
	index  map[string]*Alert
	log    *zap.Logger
}

// NewDiagnostics returns an empty collection.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{
		index: map[string]*Alert{},
		log:   zap.NewNop(),
	}
}

// Add records err for the element with the given identifier, which may be empty.
func (d *Diagnostics) Add(err error, id string) {
	msg := err.Error()
	d.log.Debug("alert", zap.String("alert", msg), zap.String("id", id))

	alert, ok := d.index[msg]
	if !ok {
		alert = &Alert{Message: msg, Err: err}
		d.index[msg] = alert
		d.alerts = append(d.alerts, alert)
	}
	if id == "" {
		return
	}
	for _, prev := range alert.IDs {
		if prev == id {
			return
		}
	}
	alert.IDs = append(alert.IDs, id)
}

// Alerts returns the alerts in order of first occurrence.
func (d *Diagnostics) Alerts() []Alert {
	alerts := make([]Alert, len(d.alerts))
	for i, alert := range d.alerts {
		alerts[i] = *alert
		alerts[i].IDs = append([]string{}, alert.IDs...)
	}
	return alerts
}

// Messages returns the alert messages in order of first occurrence.
func (d *Diagnostics) Messages() []string {
	msgs := make([]string, len(d.alerts))
	for i, alert := range d.alerts {
		msgs[i] = alert.Message
	}
	return msgs
}

// Len returns the number of distinct alerts.
func (d *Diagnostics) Len() int {
	return len(d.alerts)
}

// Has returns true if any recorded error matches target as reported by errors.Is.
func (d *Diagnostics) Has(target error) bool {
	for _, alert := range d.alerts {
		if errors.Is(alert.Err, target) {
			return true
		}
	}
	return false
}

func (d *Diagnostics) setLogger(log *zap.Logger) {
	if log != nil {
		d.log = log
	}
}
