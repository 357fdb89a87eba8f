package schema

import "strings"

// PlantNameToCode maps known plant names to their plant codes.
var PlantNameToCode = map[string]string{
	"maratha":  "NE03",
	"sindri":   "N205",
	"nalagarh": "N225",
	"rajpura":  "NT45",
	"panvel":   "NE25",
}

// PlantCodeToName is the reverse lookup, keyed by lowercased code.
var PlantCodeToName = func() map[string]string {
	m := make(map[string]string, len(PlantNameToCode))
	for name, code := range PlantNameToCode {
		m[strings.ToLower(code)] = name
	}
	return m
}()

// FindPlantMention scans an utterance for a known plant name or code and
// returns the canonical (code, name) pair, or ("", "") if none is found.
func FindPlantMention(utterance string) (code, name string) {
	q := strings.ToLower(utterance)
	for plantName, plantCode := range PlantNameToCode {
		if strings.Contains(q, plantName) {
			return plantCode, plantName
		}
	}
	for plantCode, plantName := range PlantCodeToName {
		if strings.Contains(q, plantCode) {
			return strings.ToUpper(plantCode), plantName
		}
	}
	return "", ""
}
