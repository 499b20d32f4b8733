package assistant

import "regexp"

// Entity slot names used by the classifier's extraction pass.
const (
	EntityFrom      = "from"
	EntityTo        = "to"
	EntityTrainName = "trainName"
)

// Station and train references are single whitespace-delimited tokens;
// multi-word station names are not supported.
var (
	fromPattern  = regexp.MustCompile(`(?i)from\s+(\w+)`)
	toPattern    = regexp.MustCompile(`(?i)to\s+(\w+)`)
	trainPattern = regexp.MustCompile(`(?i)train\s+(\w+)`)
)

// ExtractStations pulls origin and destination from "from <word>" and
// "to <word>" phrases, first match only. Either value may be empty.
func ExtractStations(message string) (from, to string) {
	if m := fromPattern.FindStringSubmatch(message); m != nil {
		from = m[1]
	}
	if m := toPattern.FindStringSubmatch(message); m != nil {
		to = m[1]
	}
	return from, to
}

// ExtractTrainName pulls a train reference from a "train <word>" phrase.
func ExtractTrainName(message string) string {
	if m := trainPattern.FindStringSubmatch(message); m != nil {
		return m[1]
	}
	return ""
}

func extractStationEntities(message string) map[string]string {
	from, to := ExtractStations(message)
	if from == "" && to == "" {
		return nil
	}
	entities := make(map[string]string, 2)
	if from != "" {
		entities[EntityFrom] = from
	}
	if to != "" {
		entities[EntityTo] = to
	}
	return entities
}

func extractTrainEntities(message string) map[string]string {
	name := ExtractTrainName(message)
	if name == "" {
		return nil
	}
	return map[string]string{EntityTrainName: name}
}
