package formserializerservice

import (
	"time"

	osvmodels "github.com/RobsonDevCode/osvdesk/internal/clients/models/osv"
	eventtypes "github.com/RobsonDevCode/osvdesk/internal/constants/eventTypes"
	"github.com/samber/lo"
)

// TimestampLayout is the layout records are emitted with (UTC, milliseconds).
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// InputLayout is the precision of the form's datetime inputs.
const InputLayout = "2006-01-02T15:04"

var localLayouts = []string{InputLayout, "2006-01-02T15:04:05", "2006-01-02T15:04:05.000"}

// Serialize builds an advisory record from a form snapshot. Empty values are
// left out instead of being emitted as empty strings or lists.
func Serialize(form FormSnapshot, now time.Time) osvmodels.Vulnerability {
	record := osvmodels.Vulnerability{
		ID:      form.ID,
		Summary: form.Summary,
		Details: form.Details,
	}

	if published, ok := ParseTimestamp(form.Published); ok {
		record.Published = FormatTimestamp(published)
	}

	modified, ok := ParseTimestamp(form.Modified)
	if !ok {
		modified = now
	}
	record.Modified = FormatTimestamp(modified)

	record.Affected = lo.FilterMap(form.Packages, func(pkg PackageFields, _ int) (osvmodels.Affected, bool) {
		return serializePackage(pkg)
	})

	record.Severity = lo.FilterMap(form.Severities, func(s SeverityFields, _ int) (osvmodels.Severity, bool) {
		return osvmodels.Severity{Type: s.Type, Score: s.Score}, s.Score != ""
	})

	record.References = lo.FilterMap(form.References, func(r ReferenceFields, _ int) (osvmodels.Reference, bool) {
		return osvmodels.Reference{Type: r.Type, Url: r.Url}, r.Url != ""
	})

	record.Credits = lo.FilterMap(form.Credits, func(c CreditFields, _ int) (osvmodels.Credit, bool) {
		return osvmodels.Credit{Name: c.Name, Type: c.Type}, c.Name != ""
	})

	return compact(record)
}

func serializePackage(pkg PackageFields) (osvmodels.Affected, bool) {
	var affected osvmodels.Affected

	if pkg.Name != "" || pkg.Ecosystem != "" || pkg.Purl != "" {
		affected.Package = &osvmodels.Package{
			Ecosystem: pkg.Ecosystem,
			Name:      pkg.Name,
			Purl:      pkg.Purl,
		}
	}

	affected.Ranges = lo.FilterMap(pkg.Ranges, func(r RangeFields, _ int) (osvmodels.Range, bool) {
		events := lo.FilterMap(r.Events, func(e EventFields, _ int) (osvmodels.Event, bool) {
			return serializeEvent(e)
		})

		return osvmodels.Range{Type: r.Type, Repo: r.Repo, Events: events}, len(events) > 0
	})

	if len(affected.Ranges) == 0 {
		affected.Ranges = nil
	}

	return affected, affected.Package != nil || len(affected.Ranges) > 0
}

// serializeEvent keeps events with a value and a known kind. A missing kind
// is the builder's default, introduced.
func serializeEvent(e EventFields) (osvmodels.Event, bool) {
	kind := e.Type
	if kind == "" {
		kind = eventtypes.Introduced
	}
	return osvmodels.Event{Kind: kind, Value: e.Value}, e.Value != "" && lo.Contains(eventtypes.EventTypes, kind)
}

// compact turns empty lists into nil so that no empty container is ever
// present on the record, whatever encoder it is handed to.
func compact(record osvmodels.Vulnerability) osvmodels.Vulnerability {
	if len(record.Affected) == 0 {
		record.Affected = nil
	}
	if len(record.Severity) == 0 {
		record.Severity = nil
	}
	if len(record.References) == 0 {
		record.References = nil
	}
	if len(record.Credits) == 0 {
		record.Credits = nil
	}
	return record
}

// ParseTimestamp reads a datetime input value (interpreted as UTC) or an
// RFC 3339 timestamp.
func ParseTimestamp(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, true
		}
	}

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), true
	}

	return time.Time{}, false
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
