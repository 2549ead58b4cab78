package mcp

import "encoding/json"

// Tool names exposed over tools/list and accepted by tools/call.
const (
	ToolTriage           = "triage_v1"
	ToolSearchFacilities = "search_facilities_v1"
	ToolGetAvailability  = "get_availability_v1"
	ToolBookAppointment  = "book_appointment_v1"
)

// Tool describes a callable tool and its JSON schema.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

var tools = []Tool{
	{
		Name:        ToolTriage,
		Description: "Suggest care venue (ER/urgent/primary/virtual) & urgency based on symptoms and age.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"required": ["symptoms", "age"],
			"properties": {
				"symptoms": {"type": "string"},
				"age": {"type": "integer", "minimum": 0, "maximum": 120},
				"pregnancyStatus": {"type": "string", "enum": ["unknown", "pregnant", "not_pregnant"], "default": "unknown"},
				"durationHours": {"type": "integer", "minimum": 0, "maximum": 10000}
			}
		}`),
	},
	{
		Name:        ToolSearchFacilities,
		Description: "Find care options near a location with filters.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"required": ["venue"],
			"properties": {
				"lat": {"type": "number"},
				"lon": {"type": "number"},
				"zip": {"type": "string"},
				"radiusMiles": {"type": "number", "default": 40},
				"venue": {"type": "string", "enum": ["urgent_care", "er", "primary_care", "virtual"]},
				"acceptsInsurancePlanId": {"type": "string"},
				"acceptsInsurancePlanName": {"type": "string"},
				"openNow": {"type": "boolean"},
				"pediatricFriendly": {"type": "boolean"}
			}
		}`),
	},
	{
		Name:        ToolGetAvailability,
		Description: "Fetch next available appointment slots for a facility/service.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"required": ["facilityId"],
			"properties": {
				"facilityId": {"type": "string"},
				"serviceCode": {"type": "string", "default": "urgent-care"},
				"days": {"type": "integer", "minimum": 1, "maximum": 14, "default": 7}
			}
		}`),
	},
	{
		Name:        ToolBookAppointment,
		Description: "Generate a deep link into the scheduling portal booking flow.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"required": ["facilityId", "slotId", "patientContextToken"],
			"properties": {
				"facilityId": {"type": "string"},
				"slotId": {"type": "string"},
				"patientContextToken": {"type": "string"}
			}
		}`),
	},
}
