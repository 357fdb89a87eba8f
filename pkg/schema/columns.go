// Package schema holds the static catalogs describing the trip-record
// schema: per-column semantic metadata, colloquial alias mappings, the
// plant name/code map, and the schema description sent to the model.
// Everything here is read-only and loaded once at startup.
package schema

// Table is the fully qualified trip-info view all queries run against.
const Table = "transactionalplms.vw_trip_info"

// ColumnType is the semantic type of a column, driving response formatting.
type ColumnType string

const (
	TypeString   ColumnType = "string"
	TypeInt      ColumnType = "int"
	TypeFloat    ColumnType = "float"
	TypeBoolean  ColumnType = "boolean"
	TypeDatetime ColumnType = "datetime"
)

// Column carries the human-readable label and semantic type of a column.
type Column struct {
	Label string
	Type  ColumnType
}

// Columns maps every column of vw_trip_info to its metadata.
var Columns = map[string]Column{
	"id":                    {Label: "ID", Type: TypeInt},
	"tripId":                {Label: "Trip ID", Type: TypeString},
	"plantCode":             {Label: "Plant code", Type: TypeString},
	"plant_name":            {Label: "Plant name", Type: TypeString},
	"movementCode":          {Label: "Movement code", Type: TypeString},
	"TokenNumber":           {Label: "Token number", Type: TypeString},
	"materialType":          {Label: "Material type", Type: TypeString},
	"material_code":         {Label: "Material code", Type: TypeString},
	"vehicleNumber":         {Label: "Vehicle number", Type: TypeString},
	"chassis_number":        {Label: "Chassis number", Type: TypeString},
	"vehicle_capacity_min":  {Label: "Vehicle capacity (min)", Type: TypeFloat},
	"vehicle_capacity_max":  {Label: "Vehicle capacity (max)", Type: TypeFloat},
	"vehicle_type":          {Label: "Vehicle type", Type: TypeString},
	"transporter_name":      {Label: "Transporter name", Type: TypeString},
	"country_code":          {Label: "Country code", Type: TypeString},
	"mapPlantStageLocation": {Label: "Plant stage location", Type: TypeString},
	"weightType":            {Label: "Weight type", Type: TypeString},
	"weighmentDate":         {Label: "Weighment date", Type: TypeDatetime},
	"weight":                {Label: "Weight", Type: TypeFloat},
	"isToleranceFailed":     {Label: "Tolerance failed", Type: TypeBoolean},
	"weighbridgeCode":       {Label: "Weighbridge code", Type: TypeString},
	"tolWeightLower":        {Label: "Lower weight tolerance", Type: TypeFloat},
	"tolWeightUpper":        {Label: "Upper weight tolerance", Type: TypeFloat},
	"tolerance_Type":        {Label: "Tolerance type", Type: TypeString},
	"minimum_alert":         {Label: "Minimum alert", Type: TypeString},
	"maximum_alert":         {Label: "Maximum alert", Type: TypeString},
	"tolerance_validation":  {Label: "Tolerance validation", Type: TypeString},
	"yardIn":                {Label: "Yard-in time", Type: TypeDatetime},
	"gateIn":                {Label: "Gate-in time", Type: TypeDatetime},
	"gateOut":               {Label: "Gate-out time", Type: TypeDatetime},
	"tareWeight":            {Label: "Tare weight time", Type: TypeDatetime},
	"grossWeight":           {Label: "Gross weight time", Type: TypeDatetime},
	"packingIn":             {Label: "Packing-in time", Type: TypeDatetime},
	"packingOut":            {Label: "Packing-out time", Type: TypeDatetime},
	"unloadingIn":           {Label: "Unloading-in time", Type: TypeDatetime},
	"unloadingOut":          {Label: "Unloading-out time", Type: TypeDatetime},
	"yardOut":               {Label: "Yard-out time", Type: TypeDatetime},
	"abortedTime":           {Label: "Aborted time", Type: TypeDatetime},
	"sealNumber":            {Label: "Seal number", Type: TypeString},
	"tw":                    {Label: "Tare weight", Type: TypeFloat},
	"gw":                    {Label: "Gross weight", Type: TypeFloat},
	"igpNumber":             {Label: "IGP number", Type: TypeString},
	"driverId":              {Label: "Driver ID", Type: TypeString},
	"abortedRemarks":        {Label: "Aborted remarks", Type: TypeString},
	"abortedBy":             {Label: "Aborted by", Type: TypeString},
	"status":                {Label: "Status", Type: TypeString},
	"dinumber":              {Label: "DI number", Type: TypeString},
	"diqty":                 {Label: "DI quantity", Type: TypeFloat},
	"ponumber":              {Label: "PO number", Type: TypeString},
	"po_qty":                {Label: "PO quantity", Type: TypeFloat},
	"consignmentDate":       {Label: "Consignment date", Type: TypeDatetime},
	"cityName":              {Label: "City name", Type: TypeString},
}

// StageTimestamps lists the plant-stage timestamp columns, in process
// order. Exactly two of these in an utterance imply a TAT calculation.
var StageTimestamps = []string{
	"yardIn", "gateIn", "tareWeight", "packingIn", "packingOut",
	"unloadingIn", "unloadingOut", "grossWeight", "gateOut", "yardOut",
	"abortedTime",
}

// StatusLabels maps the single-character status column to readable values.
var StatusLabels = map[string]string{
	"A": "Active",
	"C": "Completed",
}

// Label returns the human-readable label for a column, falling back to the
// raw column name for anything outside the catalog.
func Label(column string) string {
	if c, ok := Columns[column]; ok {
		return c.Label
	}
	return column
}

// TypeOf returns the semantic type of a column, defaulting to string.
func TypeOf(column string) ColumnType {
	if c, ok := Columns[column]; ok {
		return c.Type
	}
	return TypeString
}
