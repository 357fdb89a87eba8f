// Package nlu handles the lightweight language understanding that runs
// before generation: entity extraction with pronoun resolution, relative
// date rewriting, and utterance classification.
package nlu

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/plantops/tripchat-engine/pkg/session"
)

// vehiclePattern recognizes Indian vehicle registrations, e.g. MH12AB1234
// or MP04HE4034. Uppercase only; a lowercase mention is not treated as a
// subject change.
var vehiclePattern = regexp.MustCompile(`\b[A-Z]{2}\d{2}[A-Z]{0,2}\d{4}\b`)

// pronounPattern matches the contextual references resolved against the
// last tracked entity.
var pronounPattern = regexp.MustCompile(`(?i)\b(that|it|its)\b`)

type entityPattern struct {
	key string
	re  *regexp.Regexp
}

func pat(key, expr string) entityPattern {
	return entityPattern{key: key, re: regexp.MustCompile(`(?i)` + expr)}
}

// entityPatterns is the static extraction catalog, one pattern per
// trackable column. All patterns are tried on every utterance; iteration
// order is the declaration order and is part of the contract, since the
// last matching pattern decides which entity a later pronoun resolves to.
var entityPatterns = []entityPattern{
	pat("tripId", `trip\s*(?:id|identifier|number)?\s*(?:is|:)?\s*([\w\-]+)`),
	pat("plantCode", `plant\s*code\s*(?:is|:)?\s*([\w\-]+)`),
	pat("plant_name", `plant\s*name\s*(?:is|:)?\s*([\w\-]+)`),
	pat("movementCode", `movement\s*code\s*(?:is|:)?\s*([\w\-]+)`),
	pat("TokenNumber", `token\s*number\s*(?:is|:)?\s*([\w\-]+)`),
	pat("materialType", `material\s*type\s*(?:is|:)?\s*([\w\-]+)`),
	pat("material_code", `material\s*code\s*(?:is|:)?\s*([\w\-]+)`),
	pat("vehicleNumber", `vehicle\s*number\s*(?:is|:)?\s*([\w\-]+)`),
	pat("chassis_number", `chassis\s*number\s*(?:is|:)?\s*([\w\-]+)`),
	pat("vehicle_capacity_min", `vehicle\s*capacity\s*min\s*(?:is|:)?\s*([\d.]+)`),
	pat("vehicle_capacity_max", `vehicle\s*capacity\s*max\s*(?:is|:)?\s*([\d.]+)`),
	pat("vehicle_type", `vehicle\s*type\s*(?:is|:)?\s*([\w\-]+)`),
	pat("transporter_name", `transporter\s*name\s*(?:is|:)?\s*([\w\-]+)`),
	pat("country_code", `country\s*code\s*(?:is|:)?\s*([\w\-]+)`),
	pat("mapPlantStageLocation", `stage\s*location\s*(?:is|:)?\s*([\w\-]+)`),
	pat("yardIn", `yard\s*in\s*(?:time)?\s*(?:is|:)?\s*([\w\-:]+)`),
	pat("gateIn", `gate\s*in\s*(?:time)?\s*(?:is|:)?\s*([\w\-:]+)`),
	pat("gateOut", `gate\s*out\s*(?:time)?\s*(?:is|:)?\s*([\w\-:]+)`),
	pat("tareWeight", `tare\s*weight\s*(?:time)?\s*(?:is|:)?\s*([\w\-:\s]+)`),
	pat("grossWeight", `gross\s*weight\s*(?:time)?\s*(?:is|:)?\s*([\w\-:\s]+)`),
	pat("packingIn", `packing\s*in\s*(?:time)?\s*(?:is|:)?\s*([\w\-:]+)`),
	pat("packingOut", `packing\s*out\s*(?:time)?\s*(?:is|:)?\s*([\w\-:]+)`),
	pat("unloadingIn", `unloading\s*in\s*(?:time)?\s*(?:is|:)?\s*([\w\-:]+)`),
	pat("unloadingOut", `unloading\s*out\s*(?:time)?\s*(?:is|:)?\s*([\w\-:]+)`),
	pat("yardOut", `yard\s*out\s*(?:time)?\s*(?:is|:)?\s*([\w\-:]+)`),
	pat("abortedTime", `aborted\s*time\s*(?:is|:)?\s*([\w\-:]+)`),
	pat("weightType", `weight\s*type\s*(?:is|:)?\s*([\w\-]+)`),
	pat("weighmentDate", `weighment\s*date\s*(?:is|:)?\s*([\w\-:]+)`),
	pat("weight", `(?:measured\s*)?weight\s*(?:is|:)?\s*([\d.]+)`),
	pat("isToleranceFailed", `tolerance\s*(?:failed|status)?\s*(?:is|:)?\s*(true|false)`),
	pat("weighbridgeCode", `weighbridge\s*code\s*(?:is|:)?\s*([\w\-]+)`),
	pat("tolWeightLower", `lower\s*tolerance\s*(?:weight)?\s*(?:is|:)?\s*([\d.]+)`),
	pat("tolWeightUpper", `upper\s*tolerance\s*(?:weight)?\s*(?:is|:)?\s*([\d.]+)`),
	pat("tolerance_Type", `tolerance\s*type\s*(?:is|:)?\s*([\w\-]+)`),
	pat("minimum_alert", `minimum\s*alert\s*(?:is|:)?\s*([\w\-]+)`),
	pat("maximum_alert", `maximum\s*alert\s*(?:is|:)?\s*([\w\-]+)`),
	pat("tolerance_validation", `tolerance\s*validation\s*(?:is|:)?\s*([\w\-]+)`),
	pat("sealNumber", `seal\s*number\s*(?:is|:)?\s*([\w\-]+)`),
	pat("tw", `tare\s*weight\s*(?:is|:)?\s*([\d.]+)`),
	pat("gw", `gross\s*weight\s*(?:is|:)?\s*([\d.]+)`),
	pat("igpNumber", `igp\s*number\s*(?:is|:)?\s*([\w\-]+)`),
	pat("driverId", `driver\s*id\s*(?:is|:)?\s*([\w\-]+)`),
	pat("abortedRemarks", `aborted\s*remarks\s*(?:is|:)?\s*([\w\s\-]+)`),
	pat("abortedBy", `aborted\s*by\s*(?:is|:)?\s*([\w\-]+)`),
	pat("status", `status\s*(?:is|:)?\s*([\w\-]+)`),
	pat("dinumber", `di\s*number\s*(?:is|:)?\s*([\w\-]+)`),
	pat("diqty", `di\s*quantity\s*(?:is|:)?\s*([\d.]+)`),
	pat("ponumber", `po\s*number\s*(?:is|:)?\s*([\w\-]+)`),
	pat("po_qty", `po\s*quantity\s*(?:is|:)?\s*([\d.]+)`),
	pat("consignmentDate", `consignment\s*date\s*(?:is|:)?\s*([\w\-]+)`),
	pat("cityName", `city\s*name\s*(?:is|:)?\s*([\w\s\-]+)`),
}

// Extractor scans utterances against the pattern catalog and maintains
// the session's entity map.
type Extractor struct {
	logger *zap.Logger
}

func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logger.Named("nlu")}
}

// Process updates the session context from one utterance and returns the
// utterance with contextual references resolved.
//
// A recognized vehicle number that differs from the tracked one is a
// subject change: the whole entity map is discarded and replaced with the
// new vehicle number. Then every catalog pattern is applied; all matches
// are recorded, the last one winning lastEntity. Pronouns are substituted
// only when no catalog pattern matched at all.
func (e *Extractor) Process(ctx *session.Context, utterance string) string {
	if v := vehiclePattern.FindString(utterance); v != "" && ctx.Entities["vehicleNumber"] != v {
		ctx.Entities = map[string]string{"vehicleNumber": v}
		ctx.LastEntity = "vehicleNumber"
		e.logger.Debug("context switch", zap.String("vehicle_number", v))
	}

	matched := false
	for _, p := range entityPatterns {
		m := p.re.FindStringSubmatch(utterance)
		if m == nil {
			continue
		}
		ctx.Entities[p.key] = strings.TrimSpace(m[1])
		ctx.LastEntity = p.key
		matched = true
	}

	if !matched && ctx.LastEntity != "" {
		if v := ctx.Entities[ctx.LastEntity]; v != "" {
			resolved := pronounPattern.ReplaceAllString(utterance, v)
			if resolved != utterance {
				e.logger.Debug("resolved contextual reference",
					zap.String("entity", ctx.LastEntity))
			}
			return resolved
		}
	}
	return utterance
}
