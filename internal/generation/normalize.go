package generation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// FlexString decodes any JSON scalar as a string. Models regularly answer
// "sets": 3 where "3" was asked for, or send a list of muscle groups.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	case len(data) > 0 && data[0] == '[':
		var parts []FlexString
		if err := json.Unmarshal(data, &parts); err != nil {
			return err
		}
		ss := make([]string, 0, len(parts))
		for _, p := range parts {
			if p != "" {
				ss = append(ss, string(p))
			}
		}
		*f = FlexString(strings.Join(ss, ", "))
		return nil
	case len(data) > 0 && data[0] == '{':
		return fmt.Errorf("cannot decode object into string")
	}
	*f = FlexString(data)
	return nil
}

func (f FlexString) String() string { return strings.TrimSpace(string(f)) }

// ExerciseResult is one exercise as returned by the model.
type ExerciseResult struct {
	Name              FlexString `json:"name"`
	Sets              FlexString `json:"sets"`
	Reps              FlexString `json:"reps"`
	RecommendedWeight FlexString `json:"recommended_weight"`
	Description       FlexString `json:"description"`
}

// WorkoutResult is one day of a generated plan.
type WorkoutResult struct {
	Name                    FlexString       `json:"name"`
	Goal                    FlexString       `json:"goal"`
	MuscleGroup             FlexString       `json:"muscle group"`
	Location                FlexString       `json:"location"`
	Date                    FlexString       `json:"date"`
	Exercises               []ExerciseResult `json:"exercises"`
	WarmUp                  FlexString       `json:"warm_up"`
	CoolDown                FlexString       `json:"cool_down"`
	ImportantConsiderations FlexString       `json:"important_considerations"`
	Explanation             FlexString       `json:"explanation"`
}

// NormalizeWorkouts repairs raw model output and decodes it into workouts.
func NormalizeWorkouts(raw string) ([]WorkoutResult, error) {
	return normalize[WorkoutResult](raw)
}

// NormalizeExercises does the same for a replacement-exercise response.
func NormalizeExercises(raw string) ([]ExerciseResult, error) {
	return normalize[ExerciseResult](raw)
}

func normalize[T any](raw string) ([]T, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, malformed(raw, errors.New("empty response"))
	}

	repaired := repair(text)

	items, err := decodeList[T](repaired)
	if err != nil {
		return nil, malformed(text, err)
	}
	if len(items) == 0 {
		return nil, malformed(text, errors.New("no items in response"))
	}
	return items, nil
}

// repair applies the text fixes in order. Each step is skipped when it does
// not apply.
func repair(text string) string {
	text = stripFence(text)
	if !json.Valid([]byte(text)) {
		text = strings.ReplaceAll(text, "{{", "{")
		text = strings.ReplaceAll(text, "}}", "}")
	}
	if !json.Valid([]byte(text)) {
		text = quoteBareValues(text)
	}
	return text
}

// stripFence removes a ``` fence, with or without a language tag, and the
// bare "json" prefix some models emit instead.
func stripFence(text string) string {
	if start := strings.Index(text, "```"); start != -1 {
		body := text[start+3:]
		if nl := strings.IndexByte(body, '\n'); nl != -1 && isLangTag(body[:nl]) {
			body = body[nl+1:]
		}
		if end := strings.LastIndex(body, "```"); end != -1 {
			body = body[:end]
		}
		text = strings.TrimSpace(strings.Trim(body, "`"))
	}
	return stripJSONTag(text)
}

// stripJSONTag drops a leading "json" when a JSON value follows it, with or
// without whitespace in between.
func stripJSONTag(text string) string {
	if len(text) < 4 || !strings.EqualFold(text[:4], "json") {
		return text
	}
	rest := strings.TrimSpace(text[4:])
	if strings.HasPrefix(rest, "[") || strings.HasPrefix(rest, "{") {
		return rest
	}
	return text
}

func isLangTag(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_') {
			return false
		}
	}
	return true
}

// bareValuePattern matches an unquoted value after one of the keys models
// like to answer with ranges or units ("reps": 8-12, "weight": 10 kg).
var bareValuePattern = regexp.MustCompile(`("(?:sets|reps|recommended_weight|weight|duration)"\s*:\s*)([^"\s\[{][^",}\]\n]*?)(\s*[,}\]\n])`)

func quoteBareValues(text string) string {
	return bareValuePattern.ReplaceAllStringFunc(text, func(m string) string {
		parts := bareValuePattern.FindStringSubmatch(m)
		value := parts[2]
		if value == "null" || value == "true" || value == "false" {
			return m
		}
		quoted, _ := json.Marshal(value)
		return parts[1] + string(quoted) + parts[3]
	})
}

// decodeList accepts a JSON array or a single object.
func decodeList[T any](text string) ([]T, error) {
	if strings.HasPrefix(text, "{") {
		var one T
		if err := json.Unmarshal([]byte(text), &one); err != nil {
			return nil, err
		}
		return []T{one}, nil
	}

	var items []T
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, err
	}
	return items, nil
}

var workoutDateLayouts = []string{
	DateLayout,
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
	"2 January 2006",
	"January 2, 2006",
	time.RFC3339,
}

// ParseWorkoutDate reads the date of a generated workout. ISO and
// day-month-year forms are accepted.
func ParseWorkoutDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("missing date")
	}
	for _, layout := range workoutDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}
