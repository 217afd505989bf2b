package webapp

import (
	"fmt"
	"html/template"
	"time"

	"searchlight/internal/core/models"
)

type tab struct {
	Key         string
	Label       string
	Heading     string
	Placeholder string
}

// Hanya tab "videos" yang sudah berfungsi.
var tabs = []tab{
	{
		Key:         "weekly",
		Label:       "Weekly Report",
		Heading:     "Weekly YouTube trend summary",
		Placeholder: "The most important trends from last week will be summarised here.",
	},
	{
		Key:         "opportunities",
		Label:       "Opportunity Discovery",
		Heading:     "New content ideas and keywords",
		Placeholder: "Search trend and rising keyword analysis will be shown here.",
	},
	{
		Key:     "videos",
		Label:   "Video Analysis",
		Heading: "Video performance (ranked by VPH)",
	},
	{
		Key:         "channels",
		Label:       "Channel Analysis",
		Heading:     "Channel growth and ranking",
		Placeholder: "Channel rankings based on weekly subscriber growth will be shown here.",
	},
}

const defaultTab = "weekly"

func findTab(key string) tab {
	for _, t := range tabs {
		if t.Key == key {
			return t
		}
	}
	return tabs[0]
}

type loginPage struct {
	Error string
}

type dashboardPage struct {
	Tabs     []tab
	Active   tab
	Rankings []models.VideoRanking
}

type detailPage struct {
	Detail *models.VideoDetail
	Error  string
}

var templateFuncs = template.FuncMap{
	"fmtTime":     fmtTime,
	"fmtDuration": fmtDuration,
	"deref":       deref,
}

func fmtTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04 UTC")
}

func fmtDuration(sec int) string {
	if sec <= 0 {
		return "-"
	}
	h, m, s := sec/3600, (sec%3600)/60, sec%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
