package validatorservice

import (
	"fmt"
	"html"
	"strings"

	osvmodels "github.com/RobsonDevCode/osvdesk/internal/clients/models/osv"
)

// Validate returns suggestions for a record. They are advisory only: a record
// with suggestions can still be exported or previewed.
func Validate(record osvmodels.Vulnerability) []string {
	var messages []string

	if record.Summary == "" {
		messages = append(messages, "Summary is recommended.")
	}

	if len(record.Affected) == 0 {
		messages = append(messages, "At least one affected package/repo is recommended.")
	}

	for i, affected := range record.Affected {
		hasPackageName := affected.Package != nil && affected.Package.Name != ""
		if !hasPackageName && len(affected.Ranges) == 0 {
			messages = append(messages, fmt.Sprintf("Affected Item %d: Package Name or Range is required.", i+1))
		}

		for j, r := range affected.Ranges {
			if len(r.Events) == 0 {
				messages = append(messages, fmt.Sprintf("Affected Item %d, Range %d: At least one event is required.", i+1, j+1))
			}
		}
	}

	return messages
}

// RenderHTML renders suggestions as the block shown above the JSON output.
// No messages renders nothing.
func RenderHTML(messages []string) string {
	if len(messages) == 0 {
		return ""
	}

	var builder strings.Builder
	builder.WriteString("<strong>Validation Suggestions:</strong><ul>")
	for _, message := range messages {
		builder.WriteString("<li>")
		builder.WriteString(html.EscapeString(message))
		builder.WriteString("</li>")
	}
	builder.WriteString("</ul>")

	return builder.String()
}
