package formpromptservice

import (
	"github.com/AlecAivazis/survey/v2"
	"golang.org/x/xerrors"
)

// Prompter asks the user for one value at a time.
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Multiline(message string, defaultValue string) (string, error)
	Select(message string, options []string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
}

// SurveyPrompter asks on the terminal.
type SurveyPrompter struct{}

func (SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	var answer string
	if err := survey.AskOne(&survey.Input{Message: message, Default: defaultValue}, &answer); err != nil {
		return "", xerrors.Errorf("selection error: %w", err)
	}
	return answer, nil
}

func (SurveyPrompter) Multiline(message string, defaultValue string) (string, error) {
	var answer string
	if err := survey.AskOne(&survey.Multiline{Message: message, Default: defaultValue}, &answer); err != nil {
		return "", xerrors.Errorf("selection error: %w", err)
	}
	return answer, nil
}

func (SurveyPrompter) Select(message string, options []string, defaultValue string) (string, error) {
	prompt := &survey.Select{
		Message: message,
		Options: options,
	}
	if defaultValue != "" {
		prompt.Default = defaultValue
	}

	var answer string
	if err := survey.AskOne(prompt, &answer); err != nil {
		return "", xerrors.Errorf("selection error: %w", err)
	}
	return answer, nil
}

func (SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	var answer bool
	if err := survey.AskOne(&survey.Confirm{Message: message, Default: defaultValue}, &answer); err != nil {
		return false, xerrors.Errorf("selection error: %w", err)
	}
	return answer, nil
}
