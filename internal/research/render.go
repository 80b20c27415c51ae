package research

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	maxAchievements  = 3
	defaultActivity  = 5
	productionReady  = "Production Ready"
	timestampLayout  = "2006-01-02 15:04 UTC"
	activityDateForm = "2006-01-02"
)

var projectEmoji = map[string]string{
	"Active Development": "🚧",
	"Research Phase":     "🔬",
	"Implementation":     "⚙️",
	"Complete":           "✅",
}

var activityType = map[string]string{
	"Active Development": "Enhancement",
	"Research Phase":     "Research",
	"Implementation":     "Implementation",
	"Complete":           "Release",
}

var publicationStage = map[string]string{
	"Peer Review":    "🔄 Under Review",
	"Under Review":   "🔄 Under Review",
	"Draft Complete": "✍️ In Progress",
	"In Progress":    "✍️ In Progress",
	"Planned":        "📖 Planned",
	"Published":      "✅ Published",
}

// RenderStatus renders the research status section. heading is the section
// heading the result starts with; the update time is appended to it.
func RenderStatus(heading string, d *Data, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (Updated: %s)\n", heading, now.UTC().Format(timestampLayout))

	b.WriteString("\n#### 📋 Active Projects\n")
	for _, p := range d.ActiveProjects {
		emoji, ok := projectEmoji[p.Status]
		if !ok {
			emoji = "📋"
		}
		fmt.Fprintf(&b, "- **%s %s** - %s (%s)\n", emoji, p.Title, p.Progress, p.Status)
	}

	b.WriteString("\n#### 🏆 Recent Breakthroughs\n")
	for i, a := range d.RecentAchievements {
		if i == maxAchievements {
			break
		}
		fmt.Fprintf(&b, "- **✨ %s** (%s) - %s\n", a.Title, a.Date, a.Impact)
	}

	b.WriteString("\n#### ⚡ Technical Innovations\n")
	for _, in := range d.Innovations {
		emoji := "🟡"
		if in.Status == productionReady {
			emoji = "🟢"
		}
		fmt.Fprintf(&b, "- %s **%s**: %s\n", emoji, in.Name, in.Improvement)
	}

	b.WriteString("\n#### 📚 Publications Pipeline\n")
	for _, p := range d.Publications {
		stage, ok := publicationStage[p.Status]
		if !ok {
			stage = "📝 " + p.Status
		}
		fmt.Fprintf(&b, "- **%s**: %s\n", stage, p.Title)
	}
	return b.String()
}

// RenderActivity renders up to limit activity lines, one per active project.
// The i-th entry is dated i+1 days before now. A non-positive limit means 5.
func RenderActivity(d *Data, org string, limit int, now time.Time) string {
	if limit <= 0 {
		limit = defaultActivity
	}
	lower := cases.Lower(language.Und)
	lines := make([]string, 0, limit)
	for i, p := range d.ActiveProjects {
		if i == limit {
			break
		}
		kind, ok := activityType[p.Status]
		if !ok {
			kind = "Update"
		}
		repo := org + "/" + strings.ReplaceAll(lower.String(p.Title), " ", "-")
		date := now.UTC().AddDate(0, 0, -(i + 1)).Format(activityDateForm)
		lines = append(lines, fmt.Sprintf("- **%s** in [%s](https://github.com/%s) - %s", kind, repo, repo, date))
	}
	return strings.Join(lines, "\n")
}
