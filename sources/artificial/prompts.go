package artificial

import (
	"fmt"
	"strings"
)

const (
	DefaultSystemPrompt = `You are an assistant that answers questions about the annual report loaded in the page.
Answer in the language of the question. Rely only on the report excerpts below; when they do not
contain the answer, say so plainly instead of guessing. Quote figures exactly as written in the report.`

	ReportBlockTemplate = `

⸻

📄 Report

%s`

	PageBlockTemplate = `

⸻

📍 Page

The user is currently reading: %s`

	RateLimitedNoticeTemplate = "Too many requests, please wait %s before asking again."

	DegradedNotice = "The assistant is temporarily degraded, please try again in a moment."
)

func buildSystemPrompt(base string, report string, page string) string {
	var sb strings.Builder
	sb.WriteString(base)

	if report = strings.TrimSpace(report); report != "" {
		sb.WriteString(fmt.Sprintf(ReportBlockTemplate, report))
	}
	if page = strings.TrimSpace(page); page != "" {
		sb.WriteString(fmt.Sprintf(PageBlockTemplate, page))
	}

	return sb.String()
}
