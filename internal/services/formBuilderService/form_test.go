package formbuilderservice_test

import (
	"testing"
	"time"

	osvmodels "github.com/RobsonDevCode/osvdesk/internal/clients/models/osv"
	formbuilderservice "github.com/RobsonDevCode/osvdesk/internal/services/formBuilderService"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2026, 10, 17, 9, 30, 12, 0, time.UTC)
}

func TestNewForm_InitialState(t *testing.T) {
	form := formbuilderservice.NewForm(formbuilderservice.WithClock(fixedClock))

	assert.Len(t, form.Packages(), 1)
	assert.Equal(t, "2026-10-17T09:30", form.Published())
	assert.Equal(t, "2026-10-17T09:30", form.Modified())

	record := form.Record()
	assert.Equal(t, "2026-10-17T09:30:00.000Z", record.Published)
	assert.Nil(t, record.Affected)
}

func TestForm_EveryChangeReserializes(t *testing.T) {
	form := formbuilderservice.NewForm(formbuilderservice.WithClock(fixedClock))

	var updates []formbuilderservice.Update
	form.OnChange(func(u formbuilderservice.Update) {
		updates = append(updates, u)
	})

	pkg := form.Packages()[0]
	pkg.SetName("lodash")
	pkg.SetEcosystem("npm")
	rangeItem := pkg.AddRange()
	event := rangeItem.AddEvent()
	event.SetValue("0")
	fixed := rangeItem.AddEvent()
	fixed.SetType("fixed")
	fixed.SetValue("4.17.21")

	require.Len(t, updates, 8)

	last := updates[len(updates)-1].Record
	require.Len(t, last.Affected, 1)
	assert.Equal(t, &osvmodels.Package{Ecosystem: "npm", Name: "lodash"}, last.Affected[0].Package)
	assert.Equal(t, []osvmodels.Range{
		{
			Type: "SEMVER",
			Events: []osvmodels.Event{
				{Kind: "introduced", Value: "0"},
				{Kind: "fixed", Value: "4.17.21"},
			},
		},
	}, last.Affected[0].Ranges)
	assert.Equal(t, []string{"Summary is recommended."}, updates[len(updates)-1].Messages)

	fixed.Remove()
	require.Len(t, updates, 9)
	assert.Len(t, updates[8].Record.Affected[0].Ranges[0].Events, 1)

	// removing twice does not emit a second update
	fixed.Remove()
	assert.Len(t, updates, 9)

	rangeItem.Remove()
	pkg.Remove()
	require.Len(t, updates, 11)
	assert.Nil(t, updates[10].Record.Affected)
	assert.Empty(t, form.Packages())
}

func TestForm_OnChangeUnsubscribe(t *testing.T) {
	form := formbuilderservice.NewForm(formbuilderservice.WithClock(fixedClock))

	calls := 0
	unsubscribe := form.OnChange(func(formbuilderservice.Update) {
		calls++
	})

	form.SetSummary("first")
	unsubscribe()
	form.SetSummary("second")

	assert.Equal(t, 1, calls)
}

func TestForm_ListDefaults(t *testing.T) {
	form := formbuilderservice.NewForm(formbuilderservice.WithClock(fixedClock))

	severity := form.AddSeverity()
	reference := form.AddReference()
	credit := form.AddCredit()
	rangeItem := form.Packages()[0].AddRange()
	event := rangeItem.AddEvent()

	assert.Equal(t, "CVSS_V3", severity.Type())
	assert.Equal(t, "WEB", reference.Type())
	assert.Equal(t, "FINDER", credit.Type())
	assert.Equal(t, "SEMVER", rangeItem.Type())
	assert.Equal(t, "introduced", event.Type())

	// nothing has a value yet, so nothing is emitted
	record := form.Record()
	assert.Nil(t, record.Severity)
	assert.Nil(t, record.References)
	assert.Nil(t, record.Credits)
	assert.Nil(t, record.Affected)
}

func TestForm_Fill(t *testing.T) {
	form := formbuilderservice.NewForm(formbuilderservice.WithClock(fixedClock))
	form.AddSeverity().SetScore("stale")
	form.Packages()[0].SetName("stale")

	updates := 0
	form.OnChange(func(formbuilderservice.Update) {
		updates++
	})

	form.Fill(osvmodels.Vulnerability{
		ID:        "GHSA-jfh8-c2jp-5v3q",
		Summary:   "Remote code injection in Log4j",
		Published: "2021-12-10T00:40:56Z",
		Modified:  "2025-01-14T11:57:12.123Z",
		Credits:   []osvmodels.Credit{{Name: "Chen Zhaojun"}},
	})

	assert.Equal(t, 1, updates)
	assert.Equal(t, "GHSA-jfh8-c2jp-5v3q", form.ID())
	assert.Equal(t, "2021-12-10T00:40", form.Published())
	assert.Equal(t, "2025-01-14T11:57", form.Modified())
	assert.Empty(t, form.Packages())
	assert.Empty(t, form.Severities())
	require.Len(t, form.Credits(), 1)
	assert.Equal(t, "FINDER", form.Credits()[0].Type())
}

func TestForm_FillRoundTrip(t *testing.T) {
	loaded := osvmodels.Vulnerability{
		ID:        "GHSA-jfh8-c2jp-5v3q",
		Summary:   "Remote code injection in Log4j",
		Details:   "Logging untrusted data with log4j versions 2.0-beta9 through 2.14.1 can result in RCE.",
		Published: "2021-12-10T00:40:56Z",
		Modified:  "2025-01-14T11:57:12Z",
		Affected: []osvmodels.Affected{
			{
				Package: &osvmodels.Package{
					Ecosystem: "Maven",
					Name:      "org.apache.logging.log4j:log4j-core",
					Purl:      "pkg:maven/org.apache.logging.log4j/log4j-core",
				},
				Ranges: []osvmodels.Range{
					{
						Type: "ECOSYSTEM",
						Events: []osvmodels.Event{
							{Kind: "introduced", Value: "2.13.0"},
							{Kind: "fixed", Value: "2.15.0"},
						},
					},
					{
						Type: "GIT",
						Repo: "https://github.com/apache/logging-log4j2",
						Events: []osvmodels.Event{
							{Kind: "introduced", Value: "0"},
							{Kind: "last_affected", Value: "44569090f1cf1e92c711fb96dfd18cd7dccc72ea"},
							{Kind: "limit", Value: "c77b3cb39312b83b053d23a2158b99ac7de44dd3"},
						},
					},
				},
			},
		},
		Severity: []osvmodels.Severity{
			{Type: "CVSS_V3", Score: "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:C/C:H/I:H/A:H"},
		},
		References: []osvmodels.Reference{
			{Type: "ADVISORY", Url: "https://nvd.nist.gov/vuln/detail/CVE-2021-44228"},
			{Type: "FIX", Url: "https://github.com/apache/logging-log4j2/pull/608"},
		},
		Credits: []osvmodels.Credit{
			{Name: "Chen Zhaojun", Type: "FINDER"},
		},
	}

	form := formbuilderservice.NewForm(formbuilderservice.WithClock(fixedClock))
	form.Fill(loaded)
	got := form.Record()

	ignoreTimestamps := cmpopts.IgnoreFields(osvmodels.Vulnerability{}, "Published", "Modified")
	if diff := cmp.Diff(loaded, got, ignoreTimestamps); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
