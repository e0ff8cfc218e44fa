package cmd

import (
	formbuilderservice "github.com/RobsonDevCode/osvdesk/internal/services/formBuilderService"
	formpromptservice "github.com/RobsonDevCode/osvdesk/internal/services/formPromptService"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "build an OSV record interactively",
	Long: `generate walks through every field of an OSV record, prints the JSON with
validation suggestions and offers to save, copy or preview it.

Use --from to start from a record already published on osv.dev.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

const FromFlag = "from"

func runGenerate(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString(FromFlag)

	form := formbuilderservice.NewForm()
	form.OnChange(func(update formbuilderservice.Update) {
		deps.Logger.Debug("record updated",
			zap.String("id", update.Record.ID),
			zap.Int("suggestions", len(update.Messages)))
	})

	if from != "" {
		if err := deps.RemoteLoader.Load(cmd.Context(), from, form); err != nil {
			return alertError(err)
		}
	}

	prompter := formpromptservice.SurveyPrompter{}
	if err := formpromptservice.NewFormPrompt(prompter).Build(form); err != nil {
		return err
	}

	record := form.Record()
	if err := printRecord(cmd.OutOrStdout(), record); err != nil {
		return err
	}

	return recordActions(cmd, prompter, record)
}

func init() {
	generateCmd.Flags().StringP(FromFlag, "f", "", "Vulnerability id to load from osv.dev before editing")

	rootCmd.AddCommand(generateCmd)
}
