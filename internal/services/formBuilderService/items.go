package formbuilderservice

import (
	credittypes "github.com/RobsonDevCode/osvdesk/internal/constants/creditTypes"
	eventtypes "github.com/RobsonDevCode/osvdesk/internal/constants/eventTypes"
	rangetypes "github.com/RobsonDevCode/osvdesk/internal/constants/rangeTypes"
	referencetypes "github.com/RobsonDevCode/osvdesk/internal/constants/referenceTypes"
	severitytypes "github.com/RobsonDevCode/osvdesk/internal/constants/severityTypes"
	formserializerservice "github.com/RobsonDevCode/osvdesk/internal/services/formSerializerService"
	"github.com/samber/lo"
)

type PackageItem struct {
	handle
	ecosystem string
	name      string
	purl      string
	ranges    list[*RangeItem]
}

func newPackageItem(h handle) *PackageItem {
	return &PackageItem{handle: h}
}

func (p *PackageItem) Ecosystem() string { return p.ecosystem }
func (p *PackageItem) Name() string      { return p.name }
func (p *PackageItem) Purl() string      { return p.purl }

func (p *PackageItem) SetEcosystem(ecosystem string) {
	p.ecosystem = ecosystem
	p.form.changed()
}

func (p *PackageItem) SetName(name string) {
	p.name = name
	p.form.changed()
}

func (p *PackageItem) SetPurl(purl string) {
	p.purl = purl
	p.form.changed()
}

func (p *PackageItem) AddRange() *RangeItem {
	return attach(p.form, &p.ranges, newRangeItem)
}

func (p *PackageItem) Ranges() []*RangeItem {
	return p.ranges.values()
}

func (p *PackageItem) fields() formserializerservice.PackageFields {
	return formserializerservice.PackageFields{
		Ecosystem: p.ecosystem,
		Name:      p.name,
		Purl:      p.purl,
		Ranges: lo.Map(p.ranges.values(), func(r *RangeItem, _ int) formserializerservice.RangeFields {
			return r.fields()
		}),
	}
}

type RangeItem struct {
	handle
	rangeType string
	repo      string
	events    list[*EventItem]
}

func newRangeItem(h handle) *RangeItem {
	return &RangeItem{handle: h, rangeType: rangetypes.Semver}
}

func (r *RangeItem) Type() string { return r.rangeType }
func (r *RangeItem) Repo() string { return r.repo }

func (r *RangeItem) SetType(rangeType string) {
	r.rangeType = rangeType
	r.form.changed()
}

func (r *RangeItem) SetRepo(repo string) {
	r.repo = repo
	r.form.changed()
}

func (r *RangeItem) AddEvent() *EventItem {
	return attach(r.form, &r.events, newEventItem)
}

func (r *RangeItem) Events() []*EventItem {
	return r.events.values()
}

func (r *RangeItem) fields() formserializerservice.RangeFields {
	return formserializerservice.RangeFields{
		Type: r.rangeType,
		Repo: r.repo,
		Events: lo.Map(r.events.values(), func(e *EventItem, _ int) formserializerservice.EventFields {
			return formserializerservice.EventFields{Type: e.kind, Value: e.value}
		}),
	}
}

type EventItem struct {
	handle
	kind  string
	value string
}

func newEventItem(h handle) *EventItem {
	return &EventItem{handle: h, kind: eventtypes.Introduced}
}

func (e *EventItem) Type() string  { return e.kind }
func (e *EventItem) Value() string { return e.value }

func (e *EventItem) SetType(kind string) {
	e.kind = kind
	e.form.changed()
}

func (e *EventItem) SetValue(value string) {
	e.value = value
	e.form.changed()
}

type SeverityItem struct {
	handle
	severityType string
	score        string
}

func newSeverityItem(h handle) *SeverityItem {
	return &SeverityItem{handle: h, severityType: severitytypes.CvssV3}
}

func (s *SeverityItem) Type() string  { return s.severityType }
func (s *SeverityItem) Score() string { return s.score }

func (s *SeverityItem) SetType(severityType string) {
	s.severityType = severityType
	s.form.changed()
}

func (s *SeverityItem) SetScore(score string) {
	s.score = score
	s.form.changed()
}

type ReferenceItem struct {
	handle
	referenceType string
	url           string
}

func newReferenceItem(h handle) *ReferenceItem {
	return &ReferenceItem{handle: h, referenceType: referencetypes.Web}
}

func (r *ReferenceItem) Type() string { return r.referenceType }
func (r *ReferenceItem) Url() string  { return r.url }

func (r *ReferenceItem) SetType(referenceType string) {
	r.referenceType = referenceType
	r.form.changed()
}

func (r *ReferenceItem) SetUrl(url string) {
	r.url = url
	r.form.changed()
}

type CreditItem struct {
	handle
	name       string
	creditType string
}

func newCreditItem(h handle) *CreditItem {
	return &CreditItem{handle: h, creditType: credittypes.Finder}
}

func (c *CreditItem) Name() string { return c.name }
func (c *CreditItem) Type() string { return c.creditType }

func (c *CreditItem) SetName(name string) {
	c.name = name
	c.form.changed()
}

func (c *CreditItem) SetType(creditType string) {
	c.creditType = creditType
	c.form.changed()
}
