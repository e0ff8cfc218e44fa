package formpromptservice

import (
	credittypes "github.com/RobsonDevCode/osvdesk/internal/constants/creditTypes"
	eventtypes "github.com/RobsonDevCode/osvdesk/internal/constants/eventTypes"
	rangetypes "github.com/RobsonDevCode/osvdesk/internal/constants/rangeTypes"
	referencetypes "github.com/RobsonDevCode/osvdesk/internal/constants/referenceTypes"
	severitytypes "github.com/RobsonDevCode/osvdesk/internal/constants/severityTypes"
	formbuilderservice "github.com/RobsonDevCode/osvdesk/internal/services/formBuilderService"
)

type FormPromptService interface {
	Build(form *formbuilderservice.Form) error
}

// FormPrompt walks the user through the builder form. Every answer goes
// through the form's setters so listeners see each change.
type FormPrompt struct {
	prompter Prompter
}

func NewFormPrompt(prompter Prompter) *FormPrompt {
	return &FormPrompt{prompter: prompter}
}

func (f *FormPrompt) Build(form *formbuilderservice.Form) error {
	if err := f.general(form); err != nil {
		return err
	}

	// a fresh form starts with one blank package; fill it in before offering more
	for _, pkg := range form.Packages() {
		if pkg.Ecosystem() != "" || pkg.Name() != "" || pkg.Purl() != "" || len(pkg.Ranges()) > 0 {
			continue
		}
		if err := f.affected(pkg); err != nil {
			return err
		}
	}

	if err := f.repeat("Add another affected package?", func() error {
		return f.affected(form.AddPackage())
	}); err != nil {
		return err
	}

	if err := f.repeat("Add a severity?", func() error {
		item := form.AddSeverity()
		kind, err := f.prompter.Select("Severity type", severitytypes.SeverityTypes, item.Type())
		if err != nil {
			return err
		}
		item.SetType(kind)

		score, err := f.prompter.Input("Score (vector string)", "")
		if err != nil {
			return err
		}
		item.SetScore(score)
		return nil
	}); err != nil {
		return err
	}

	if err := f.repeat("Add a reference?", func() error {
		item := form.AddReference()
		kind, err := f.prompter.Select("Reference type", referencetypes.ReferenceTypes, item.Type())
		if err != nil {
			return err
		}
		item.SetType(kind)

		url, err := f.prompter.Input("URL", "")
		if err != nil {
			return err
		}
		item.SetUrl(url)
		return nil
	}); err != nil {
		return err
	}

	return f.repeat("Add a credit?", func() error {
		item := form.AddCredit()
		name, err := f.prompter.Input("Name", "")
		if err != nil {
			return err
		}
		item.SetName(name)

		kind, err := f.prompter.Select("Credit type", credittypes.CreditTypes, item.Type())
		if err != nil {
			return err
		}
		item.SetType(kind)
		return nil
	})
}

func (f *FormPrompt) general(form *formbuilderservice.Form) error {
	fields := []struct {
		message string
		current string
		set     func(string)
	}{
		{"ID", form.ID(), form.SetID},
		{"Summary", form.Summary(), form.SetSummary},
	}
	for _, field := range fields {
		answer, err := f.prompter.Input(field.message, field.current)
		if err != nil {
			return err
		}
		field.set(answer)
	}

	details, err := f.prompter.Multiline("Details (markdown)", form.Details())
	if err != nil {
		return err
	}
	form.SetDetails(details)

	published, err := f.prompter.Input("Published (YYYY-MM-DDTHH:MM, UTC)", form.Published())
	if err != nil {
		return err
	}
	form.SetPublished(published)

	modified, err := f.prompter.Input("Modified (YYYY-MM-DDTHH:MM, UTC)", form.Modified())
	if err != nil {
		return err
	}
	form.SetModified(modified)

	return nil
}

// affected fills one package. A package left completely blank is removed.
func (f *FormPrompt) affected(pkg *formbuilderservice.PackageItem) error {
	ecosystem, err := f.prompter.Input("Package ecosystem", pkg.Ecosystem())
	if err != nil {
		return err
	}
	pkg.SetEcosystem(ecosystem)

	name, err := f.prompter.Input("Package name", pkg.Name())
	if err != nil {
		return err
	}
	pkg.SetName(name)

	purl, err := f.prompter.Input("Package URL (purl)", pkg.Purl())
	if err != nil {
		return err
	}
	pkg.SetPurl(purl)

	if err := f.repeat("Add a version range?", func() error {
		return f.versionRange(pkg.AddRange())
	}); err != nil {
		return err
	}

	if ecosystem == "" && name == "" && purl == "" && len(pkg.Ranges()) == 0 {
		pkg.Remove()
	}
	return nil
}

func (f *FormPrompt) versionRange(r *formbuilderservice.RangeItem) error {
	kind, err := f.prompter.Select("Range type", rangetypes.RangeTypes, r.Type())
	if err != nil {
		return err
	}
	r.SetType(kind)

	if kind == rangetypes.Git {
		repo, err := f.prompter.Input("Repository URL", r.Repo())
		if err != nil {
			return err
		}
		r.SetRepo(repo)
	}

	for {
		event := r.AddEvent()
		eventType, err := f.prompter.Select("Event", eventtypes.EventTypes, event.Type())
		if err != nil {
			return err
		}
		event.SetType(eventType)

		value, err := f.prompter.Input("Version or commit", "")
		if err != nil {
			return err
		}
		event.SetValue(value)

		more, err := f.prompter.Confirm("Add another event?", false)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

func (f *FormPrompt) repeat(message string, add func() error) error {
	for {
		more, err := f.prompter.Confirm(message, false)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		if err := add(); err != nil {
			return err
		}
	}
}
