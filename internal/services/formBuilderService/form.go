package formbuilderservice

import (
	"time"

	osvmodels "github.com/RobsonDevCode/osvdesk/internal/clients/models/osv"
	credittypes "github.com/RobsonDevCode/osvdesk/internal/constants/creditTypes"
	formserializerservice "github.com/RobsonDevCode/osvdesk/internal/services/formSerializerService"
	validatorservice "github.com/RobsonDevCode/osvdesk/internal/services/validatorService"
	"github.com/samber/lo"
)

// Update is what listeners receive after every change to the form.
type Update struct {
	Record   osvmodels.Vulnerability
	Messages []string
}

type subscription struct {
	notify func(Update)
}

// Form is the editable state of the record builder. It is not safe for
// concurrent use.
type Form struct {
	id        string
	summary   string
	details   string
	published string
	modified  string

	packages   list[*PackageItem]
	severities list[*SeverityItem]
	references list[*ReferenceItem]
	credits    list[*CreditItem]

	listeners []*subscription
	suspended bool
	now       func() time.Time
}

type Option func(*Form)

func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		f.now = now
	}
}

// NewForm returns a form in the builder's initial state: one empty package
// and both timestamps set to the current minute.
func NewForm(opts ...Option) *Form {
	f := &Form{now: time.Now}
	for _, opt := range opts {
		opt(f)
	}

	f.suspended = true
	f.AddPackage()
	stamp := f.now().UTC().Format(formserializerservice.InputLayout)
	f.published = stamp
	f.modified = stamp
	f.suspended = false

	return f
}

// OnChange registers a listener and returns a function that unregisters it.
func (f *Form) OnChange(notify func(Update)) func() {
	s := &subscription{notify: notify}
	f.listeners = append(f.listeners, s)

	return func() {
		f.listeners = lo.Without(f.listeners, s)
	}
}

func (f *Form) ID() string        { return f.id }
func (f *Form) Summary() string   { return f.summary }
func (f *Form) Details() string   { return f.details }
func (f *Form) Published() string { return f.published }
func (f *Form) Modified() string  { return f.modified }

func (f *Form) SetID(id string) {
	f.id = id
	f.changed()
}

func (f *Form) SetSummary(summary string) {
	f.summary = summary
	f.changed()
}

func (f *Form) SetDetails(details string) {
	f.details = details
	f.changed()
}

func (f *Form) SetPublished(published string) {
	f.published = published
	f.changed()
}

func (f *Form) SetModified(modified string) {
	f.modified = modified
	f.changed()
}

func (f *Form) AddPackage() *PackageItem {
	return attach(f, &f.packages, newPackageItem)
}

func (f *Form) AddSeverity() *SeverityItem {
	return attach(f, &f.severities, newSeverityItem)
}

func (f *Form) AddReference() *ReferenceItem {
	return attach(f, &f.references, newReferenceItem)
}

func (f *Form) AddCredit() *CreditItem {
	return attach(f, &f.credits, newCreditItem)
}

func (f *Form) Packages() []*PackageItem     { return f.packages.values() }
func (f *Form) Severities() []*SeverityItem  { return f.severities.values() }
func (f *Form) References() []*ReferenceItem { return f.references.values() }
func (f *Form) Credits() []*CreditItem       { return f.credits.values() }

// Snapshot reads the current field values.
func (f *Form) Snapshot() formserializerservice.FormSnapshot {
	return formserializerservice.FormSnapshot{
		ID:        f.id,
		Summary:   f.summary,
		Details:   f.details,
		Published: f.published,
		Modified:  f.modified,
		Packages: lo.Map(f.packages.values(), func(p *PackageItem, _ int) formserializerservice.PackageFields {
			return p.fields()
		}),
		Severities: lo.Map(f.severities.values(), func(s *SeverityItem, _ int) formserializerservice.SeverityFields {
			return formserializerservice.SeverityFields{Type: s.severityType, Score: s.score}
		}),
		References: lo.Map(f.references.values(), func(r *ReferenceItem, _ int) formserializerservice.ReferenceFields {
			return formserializerservice.ReferenceFields{Type: r.referenceType, Url: r.url}
		}),
		Credits: lo.Map(f.credits.values(), func(c *CreditItem, _ int) formserializerservice.CreditFields {
			return formserializerservice.CreditFields{Name: c.name, Type: c.creditType}
		}),
	}
}

// Record serializes the form as it is right now.
func (f *Form) Record() osvmodels.Vulnerability {
	return formserializerservice.Serialize(f.Snapshot(), f.now())
}

// Fill replaces the whole form with a record, clearing every dynamic list
// first. Listeners see a single update once the form is rebuilt.
func (f *Form) Fill(record osvmodels.Vulnerability) {
	f.suspended = true

	f.packages.clear()
	f.severities.clear()
	f.references.clear()
	f.credits.clear()

	f.id = record.ID
	f.summary = record.Summary
	f.details = record.Details
	if record.Published != "" {
		f.published = toInputPrecision(record.Published)
	}
	if record.Modified != "" {
		f.modified = toInputPrecision(record.Modified)
	}

	for _, affected := range record.Affected {
		pkg := f.AddPackage()
		if affected.Package != nil {
			pkg.ecosystem = affected.Package.Ecosystem
			pkg.name = affected.Package.Name
			pkg.purl = affected.Package.Purl
		}

		for _, r := range affected.Ranges {
			rangeItem := pkg.AddRange()
			rangeItem.rangeType = r.Type
			rangeItem.repo = r.Repo

			for _, e := range r.Events {
				event := rangeItem.AddEvent()
				event.kind = e.Kind
				event.value = e.Value
			}
		}
	}

	for _, s := range record.Severity {
		item := f.AddSeverity()
		item.severityType = s.Type
		item.score = s.Score
	}

	for _, r := range record.References {
		item := f.AddReference()
		item.referenceType = r.Type
		item.url = r.Url
	}

	for _, c := range record.Credits {
		item := f.AddCredit()
		item.name = c.Name
		item.creditType = c.Type
		if item.creditType == "" {
			item.creditType = credittypes.Finder
		}
	}

	f.suspended = false
	f.changed()
}

func (f *Form) changed() {
	if f.suspended {
		return
	}

	record := f.Record()
	update := Update{
		Record:   record,
		Messages: validatorservice.Validate(record),
	}

	for _, s := range f.listeners {
		s.notify(update)
	}
}

// toInputPrecision cuts a timestamp down to what a datetime input holds.
func toInputPrecision(timestamp string) string {
	if len(timestamp) <= len(formserializerservice.InputLayout) {
		return timestamp
	}
	return timestamp[:len(formserializerservice.InputLayout)]
}
