package formserializerservice

import (
	"net/url"
	"regexp"
	"slices"
	"strconv"

	"github.com/samber/lo"
)

// Matches list keys such as "affected[0].name", "affected[0].ranges[1].repo"
// or "affected[0].ranges[1].events[2].value".
var listKeyPattern = regexp.MustCompile(`^([a-z]+)\[(\d+)\](?:\.ranges\[(\d+)\](?:\.events\[(\d+)\])?)?\.([a-z_]+)$`)

type indexed[T any] map[int]*T

func (m indexed[T]) at(i int) *T {
	if v, ok := m[i]; ok {
		return v
	}
	v := new(T)
	m[i] = v
	return v
}

func (m indexed[T]) ordered() []*T {
	keys := lo.Keys(map[int]*T(m))
	slices.Sort(keys)
	return lo.Map(keys, func(k int, _ int) *T {
		return m[k]
	})
}

type packageDraft struct {
	fields PackageFields
	ranges indexed[rangeDraft]
}

type rangeDraft struct {
	fields RangeFields
	events indexed[EventFields]
}

// ParseFormValues reads a posted builder form. Items are ordered by their
// index; gaps left by removed items are fine and unknown keys are ignored.
func ParseFormValues(values url.Values) FormSnapshot {
	form := FormSnapshot{
		ID:        values.Get("id"),
		Summary:   values.Get("summary"),
		Details:   values.Get("details"),
		Published: values.Get("published"),
		Modified:  values.Get("modified"),
	}

	packages := indexed[packageDraft]{}
	severities := indexed[SeverityFields]{}
	references := indexed[ReferenceFields]{}
	credits := indexed[CreditFields]{}

	for key := range values {
		match := listKeyPattern.FindStringSubmatch(key)
		if match == nil {
			continue
		}

		list, field, value := match[1], match[5], values.Get(key)
		index, err := strconv.Atoi(match[2])
		if err != nil {
			continue
		}

		switch {
		case list == "affected" && match[3] == "":
			setPackageField(packages.at(index), field, value)

		case list == "affected" && match[4] == "":
			rangeIndex, _ := strconv.Atoi(match[3])
			pkg := packages.at(index)
			if pkg.ranges == nil {
				pkg.ranges = indexed[rangeDraft]{}
			}
			setRangeField(pkg.ranges.at(rangeIndex), field, value)

		case list == "affected":
			rangeIndex, _ := strconv.Atoi(match[3])
			eventIndex, _ := strconv.Atoi(match[4])
			pkg := packages.at(index)
			if pkg.ranges == nil {
				pkg.ranges = indexed[rangeDraft]{}
			}
			r := pkg.ranges.at(rangeIndex)
			if r.events == nil {
				r.events = indexed[EventFields]{}
			}
			setEventField(r.events.at(eventIndex), field, value)

		case list == "severity" && match[3] == "":
			severity := severities.at(index)
			switch field {
			case "type":
				severity.Type = value
			case "score":
				severity.Score = value
			}

		case list == "references" && match[3] == "":
			reference := references.at(index)
			switch field {
			case "type":
				reference.Type = value
			case "url":
				reference.Url = value
			}

		case list == "credits" && match[3] == "":
			credit := credits.at(index)
			switch field {
			case "name":
				credit.Name = value
			case "type":
				credit.Type = value
			}
		}
	}

	for _, pkg := range packages.ordered() {
		for _, r := range pkg.ranges.ordered() {
			for _, e := range r.events.ordered() {
				r.fields.Events = append(r.fields.Events, *e)
			}
			pkg.fields.Ranges = append(pkg.fields.Ranges, r.fields)
		}
		form.Packages = append(form.Packages, pkg.fields)
	}

	form.Severities = deref(severities.ordered())
	form.References = deref(references.ordered())
	form.Credits = deref(credits.ordered())

	return form
}

func setPackageField(pkg *packageDraft, field, value string) {
	switch field {
	case "ecosystem":
		pkg.fields.Ecosystem = value
	case "name":
		pkg.fields.Name = value
	case "purl":
		pkg.fields.Purl = value
	}
}

func setRangeField(r *rangeDraft, field, value string) {
	switch field {
	case "type":
		r.fields.Type = value
	case "repo":
		r.fields.Repo = value
	}
}

func setEventField(e *EventFields, field, value string) {
	switch field {
	case "type":
		e.Type = value
	case "value":
		e.Value = value
	}
}

func deref[T any](items []*T) []T {
	return lo.Map(items, func(item *T, _ int) T {
		return *item
	})
}
