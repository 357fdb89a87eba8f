package schema

import (
	"fmt"
	"strings"
)

type aliasEntry struct {
	Term   string
	Column string
}

// aliasTable maps colloquial terms to canonical column names. Iteration
// order is the declaration order; it is rendered verbatim into the
// generation request so the order is part of the prompt contract.
var aliasTable = []aliasEntry{
	{"vehicle", "vehicleNumber"},
	{"vehicle number", "vehicleNumber"},
	{"vehicles", "vehicleNumber"},
	{"truck", "vehicleNumber"},
	{"truck number", "vehicleNumber"},
	{"truck no", "vehicleNumber"},
	{"lorry", "vehicleNumber"},
	{"lorry number", "vehicleNumber"},
	{"registration number", "vehicleNumber"},
	{"reg number", "vehicleNumber"},
	{"reg no", "vehicleNumber"},
	{"plate number", "vehicleNumber"},
	{"tare weight", "tw"},
	{"gross weight", "gw"},
	{"tareweight time", "tareWeight"},
	{"grossweight time", "grossWeight"},
	{"time of tareweight", "tareWeight"},
	{"time of grossweight", "grossWeight"},
	{"plant", "plant_name"},
	{"plant name", "plant_name"},
	{"facility", "plant_name"},
	{"site", "plant_name"},
	{"plant code", "plantCode"},
	{"plant id", "plantCode"},
	{"facility code", "plantCode"},
	{"site code", "plantCode"},
	{"is tolerance failed", "isToleranceFailed"},
	{"tolerance failed", "isToleranceFailed"},
	{"tolerance", "tolerance_validation"},
	{"DI", "dinumber"},
	{"delivery instruction", "dinumber"},
	{"di number", "dinumber"},
	{"PO", "ponumber"},
	{"purchase order", "ponumber"},
	{"po number", "ponumber"},
	{"order number", "ponumber"},
	{"igp", "igpNumber"},
	{"igp number", "igpNumber"},
	{"inward gate pass", "igpNumber"},
	{"gate pass", "igpNumber"},
	{"material", "materialType"},
	{"material type", "materialType"},
	{"material code", "material_code"},
	{"material id", "material_code"},
	{"transporter", "transporter_name"},
	{"transport company", "transporter_name"},
	{"carrier", "transporter_name"},
	{"stage", "mapPlantStageLocation"},
	{"current stage", "mapPlantStageLocation"},
	{"position", "mapPlantStageLocation"},
	{"weight", "weight"},
	{"measured weight", "weight"},
	{"driver", "driverId"},
	{"driver id", "driverId"},
	{"token", "TokenNumber"},
	{"token number", "TokenNumber"},
	{"entry token", "TokenNumber"},
	{"trip", "tripId"},
	{"trip id", "tripId"},
	{"trip number", "tripId"},
}

// AliasContext renders the alias table as the declarative block included
// in every SQL-generation request.
func AliasContext() string {
	var b strings.Builder
	for _, a := range aliasTable {
		fmt.Fprintf(&b, "- %q refers to %q\n", a.Term, a.Column)
	}
	return b.String()
}

// AliasTargets returns the set of canonical columns referenced by the
// alias table. Used by tests to keep the table in sync with the catalog.
func AliasTargets() []string {
	seen := make(map[string]bool)
	var targets []string
	for _, a := range aliasTable {
		if !seen[a.Column] {
			seen[a.Column] = true
			targets = append(targets, a.Column)
		}
	}
	return targets
}
