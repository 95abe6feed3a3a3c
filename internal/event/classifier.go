package event

import (
	"regexp"
	"strings"
)

// The classifier maps free text to an event type via ordered first-match-wins
// pattern groups. The ordering is a frozen contract: keyword sets overlap
// (e.g. "lunch exam review" is a meal because the meal group precedes the
// exam group), and the UI and burnout model both depend on the existing
// behavior. Do not reorder.
var classifierRules = []struct {
	eventType string
	pattern   *regexp.Regexp
}{
	{TypeMeeting, regexp.MustCompile(`\b(meeting|1:1|1 on 1|one[- ]on[- ]one|sync|stand[- ]?up|check[- ]?in|retro(spective)?|office hours)\b|\bmeet(ing)? with [a-z]+`)},
	{TypeMeal, regexp.MustCompile(`\b(lunch|dinner|breakfast|meal|eating|food|coffee|brunch)\b`)},
	{TypeExam, regexp.MustCompile(`\b(exam|test|quiz|midterm|final|assessment)\b`)},
	{TypeAssignment, regexp.MustCompile(`\b(assignment|homework|due|submit|project|paper|essay|lab report)\b`)},
	{TypeNap, regexp.MustCompile(`\b(nap|rest|power nap|sleep)\b`)},
	{TypeExercise, regexp.MustCompile(`\b(workout|gym|exercise|yoga|run|fitness|sport|swim|bike|hike)\b`)},
	{TypeSocial, regexp.MustCompile(`\b(party|hangout|social|friend|gathering|event)\b|\bcelebrat`)},
	{TypeClass, regexp.MustCompile(`\b[a-z]{2,4} ?\d{2,3}[a-z]?\b|\b(lecture|class|section|seminar|lab|recitation|course)\b`)},
}

// Classify maps an event's title and description to one of the fixed event
// types. Matching runs over the lower-cased concatenation of both fields;
// the first matching group wins and unmatched text falls through to the
// default "event" type.
func Classify(title, description string) string {
	text := strings.ToLower(strings.TrimSpace(title + " " + description))
	if text == "" {
		return TypeEvent
	}

	for _, rule := range classifierRules {
		if rule.pattern.MatchString(text) {
			return rule.eventType
		}
	}
	return TypeEvent
}
