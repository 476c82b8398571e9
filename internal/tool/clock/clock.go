// Package clock reports the current date and time formatted for a locale.
package clock

import (
	"context"
	"time"

	"golang.org/x/text/language"
)

// DefaultLocale is used when no locale is requested or none matches.
const DefaultLocale = "en-US"

// layout is how one locale writes times and dates.
type layout struct {
	tag  language.Tag
	time string
	date string
}

// layouts is ordered; the first entry is the matcher's fallback.
var layouts = []layout{
	{language.AmericanEnglish, "3:04:05 PM", "1/2/2006"},
	{language.BritishEnglish, "15:04:05", "02/01/2006"},
	{language.German, "15:04:05", "2.1.2006"},
	{language.French, "15:04:05", "02/01/2006"},
	{language.Spanish, "15:04:05", "2/1/2006"},
	{language.Italian, "15:04:05", "2/1/2006"},
	{language.BrazilianPortuguese, "15:04:05", "02/01/2006"},
	{language.Dutch, "15:04:05", "2-1-2006"},
	{language.Russian, "15:04:05", "02.01.2006"},
	{language.Japanese, "15:04:05", "2006/1/2"},
	{language.SimplifiedChinese, "15:04:05", "2006/1/2"},
}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, len(layouts))
	for i, l := range layouts {
		tags[i] = l.tag
	}
	return language.NewMatcher(tags)
}()

// ClockRequest selects the output locale.
type ClockRequest struct {
	Format string `json:"format,omitempty" jsonschema:"default=en-US" jsonschema_description:"BCP 47 locale tag for formatting, e.g. en-US or de-DE"`
}

// ClockResponse holds the formatted current time.
type ClockResponse struct {
	Time     string `json:"time"`
	Date     string `json:"date"`
	Locale   string `json:"locale"`
	Timezone string `json:"timezone"`
}

// ClockTool formats the current time.
type ClockTool struct {
	now func() time.Time
}

// NewClockTool creates a ClockTool. A nil now uses time.Now.
func NewClockTool(now func() time.Time) *ClockTool {
	if now == nil {
		now = time.Now
	}
	return &ClockTool{now: now}
}

// Run formats the current time for the requested locale. Unknown or
// malformed tags fall back to the closest supported locale, then en-US.
func (t *ClockTool) Run(ctx context.Context, req *ClockRequest) (*ClockResponse, error) {
	l := resolve(req.Format)
	now := t.now()
	zone, _ := now.Zone()

	return &ClockResponse{
		Time:     now.Format(l.time),
		Date:     now.Format(l.date),
		Locale:   l.tag.String(),
		Timezone: zone,
	}, nil
}

func resolve(format string) layout {
	if format == "" {
		return layouts[0]
	}
	tag, err := language.Parse(format)
	if err != nil {
		return layouts[0]
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return layouts[0]
	}
	return layouts[index]
}
