package profile

import (
	"strconv"
	"strings"
)

var fieldAliases = map[string]string{
	"age":           "age",
	"gender":        "gender",
	"sex":           "gender",
	"height":        "height",
	"weight":        "weight",
	"target_weight": "target_weight",
	"target":        "target_weight",
	"diet_type":     "diet_type",
	"diet":          "diet_type",
	"fitness_level": "fitness_level",
	"fitness":       "fitness_level",
	"goals":         "goals",
	"goal":          "goals",
}

// ParseRegistration reads "key: value" lines (":" or "=" separated). Lines
// starting with "/" are treated as the command itself and skipped.
func ParseRegistration(text string) (Profile, []string, error) {
	fields := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "/") {
			continue
		}
		idx := strings.IndexAny(line, ":=")
		if idx <= 0 {
			return Profile{}, nil, invalid("line", "expected \"key: value\", got %q", line)
		}
		fields[line[:idx]] = line[idx+1:]
	}
	return ProfileFromFields(fields)
}

// ProfileFromFields converts loosely named string fields into a Profile and a
// goal list. Goals are comma separated.
func ProfileFromFields(raw map[string]string) (Profile, []string, error) {
	fields := make(map[string]string, len(raw))
	for key, value := range raw {
		name, ok := fieldAliases[normalizeKey(key)]
		if !ok {
			return Profile{}, nil, invalid(key, "unknown field")
		}
		fields[name] = strings.TrimSpace(value)
	}

	var p Profile
	var err error
	if p.Age, err = requireInt(fields, "age"); err != nil {
		return Profile{}, nil, err
	}
	if p.Height, err = requireFloat(fields, "height"); err != nil {
		return Profile{}, nil, err
	}
	if p.Weight, err = requireFloat(fields, "weight"); err != nil {
		return Profile{}, nil, err
	}
	if p.TargetWeight, err = requireFloat(fields, "target_weight"); err != nil {
		return Profile{}, nil, err
	}
	p.Gender = fields["gender"]
	p.DietType = fields["diet_type"]
	p.FitnessLevel = fields["fitness_level"]

	var goals []string
	for _, goal := range strings.Split(fields["goals"], ",") {
		if goal = strings.TrimSpace(goal); goal != "" {
			goals = append(goals, goal)
		}
	}

	if err := p.Validate(); err != nil {
		return Profile{}, nil, err
	}
	return p, goals, nil
}

func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(key)
}

func requireInt(fields map[string]string, name string) (int, error) {
	value, ok := fields[name]
	if !ok || value == "" {
		return 0, invalid(name, "is required")
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, invalid(name, "not an integer: %q", value)
	}
	return n, nil
}

func requireFloat(fields map[string]string, name string) (float64, error) {
	value, ok := fields[name]
	if !ok || value == "" {
		return 0, invalid(name, "is required")
	}
	f, err := strconv.ParseFloat(strings.Replace(value, ",", ".", 1), 64)
	if err != nil {
		return 0, invalid(name, "not a number: %q", value)
	}
	return f, nil
}
