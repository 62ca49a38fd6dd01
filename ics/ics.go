// Package ics renders event series as iCalendar data, the interchange
// surface consumed by external calendar clients.
package ics

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"

	"github.com/librecal/librecal/recur"
)

const productID = "-//librecal//librecal//EN"

// Exporter renders events through an engine, which supplies the horizon
// bound for never-ending rules and the clock for DTSTAMP.
type Exporter struct {
	engine *recur.Engine
	clock  func() time.Time
}

// NewExporter creates an exporter backed by the given engine.
func NewExporter(engine *recur.Engine) *Exporter {
	return &Exporter{engine: engine, clock: time.Now}
}

// ExportInstances renders materialized instances as one VEVENT each.
// Instances that belong to a series reference it via RELATED-TO, so a
// client can still group them.
func (x *Exporter) ExportInstances(events []recur.Event) (*ical.Calendar, error) {
	cal := newCalendar()
	for i := range events {
		comp, err := x.eventComponent(&events[i])
		if err != nil {
			return nil, err
		}
		cal.Children = append(cal.Children, comp)
	}
	return cal, nil
}

// ExportSeries renders a whole series as a single VEVENT carrying an RRULE
// property, leaving expansion to the consuming client. The rule's skip
// semantics survive the translation: RFC 5545 monthly and yearly recurrence
// omits non-existent dates rather than clamping them.
func (x *Exporter) ExportSeries(template recur.Event, rule recur.Rule) (*ical.Calendar, error) {
	rruleStr, err := x.engine.RRuleString(template.Date, rule)
	if err != nil {
		return nil, fmt.Errorf("translate rule: %w", err)
	}

	comp, err := x.eventComponent(&template)
	if err != nil {
		return nil, err
	}
	comp.Props.SetText(ical.PropRecurrenceRule, rruleStr)

	cal := newCalendar()
	cal.Children = append(cal.Children, comp)
	return cal, nil
}

// Encode serializes a calendar to its wire form.
func Encode(cal *ical.Calendar) ([]byte, error) {
	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}

func newCalendar() *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	return cal
}

func (x *Exporter) eventComponent(ev *recur.Event) (*ical.Component, error) {
	if ev == nil {
		return nil, recur.ErrNilEvent
	}

	event := ical.NewEvent()
	uid := ev.ID
	if uid == "" {
		uid = "librecal-event"
	}
	event.Props.SetText(ical.PropUID, uid)
	event.Props.SetDateTime(ical.PropDateTimeStamp, x.clock().UTC())
	event.Props.SetDateTime(ical.PropDateTimeStart, ev.Date)
	event.Props.SetText(ical.PropSummary, ev.Title)
	if ev.Description != "" {
		event.Props.SetText(ical.PropDescription, ev.Description)
	}
	if ev.Location != "" {
		event.Props.SetText(ical.PropLocation, ev.Location)
	}
	if ev.Category != "" {
		event.Props.SetText(ical.PropCategories, ev.Category)
	}
	if ev.SeriesID != "" {
		event.Props.SetText(ical.PropRelatedTo, ev.SeriesID)
	}
	return event.Component, nil
}
