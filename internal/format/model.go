package format

import (
	"recruitflow-go/internal/platform/errors"
)

// Kind selects which reshaping table applies to a record.
type Kind string

const (
	KindCandidate Kind = "candidate"
	KindProcess   Kind = "process"
)

// field mappings between the snake_case wire shape and the camelCase
// application shape. Fields not listed pass through unchanged; read-only
// server fields are dropped on the way back out.
var wireToModel = map[Kind]map[string]string{
	KindCandidate: {
		"first_name":             "firstName",
		"last_name":              "lastName",
		"current_position":       "currentPosition",
		"current_company":        "currentCompany",
		"years_of_experience":    "yearsOfExperience",
		"education_level":        "educationLevel",
		"salary_expectation_min": "salaryExpectationMin",
		"salary_expectation_max": "salaryExpectationMax",
		"salary_currency":        "salaryCurrency",
		"assigned_to":            "assignedTo",
		"linkedin_url":           "linkedinUrl",
		"created_at":             "createdAt",
		"updated_at":             "updatedAt",
	},
	KindProcess: {
		"position_title":       "positionTitle",
		"position_description": "positionDescription",
		"location_city":        "locationCity",
		"location_state":       "locationState",
		"is_remote":            "isRemote",
		"is_hybrid":            "isHybrid",
		"salary_min":           "salaryMin",
		"salary_max":           "salaryMax",
		"salary_currency":      "salaryCurrency",
		"salary_period":        "salaryPeriod",
		"education_level":      "educationLevel",
		"years_experience":     "yearsExperience",
		"technical_skills":     "technicalSkills",
		"soft_skills":          "softSkills",
		"assigned_to":          "assignedTo",
		"created_at":           "createdAt",
		"updated_at":           "updatedAt",
	},
}

// server-owned fields, never sent back on create/update
var readOnlyModelFields = map[string]bool{
	"id":        true,
	"createdAt": true,
	"updatedAt": true,
	"createdBy": true,
}

func unsupported(op string, kind Kind) error {
	return errors.New(errors.KindValidation, op, "unsupported record kind: "+string(kind))
}

// FromWire reshapes a backend record into the application shape: mapped
// snake_case keys become camelCase, everything else passes through. The
// input map is not mutated.
func FromWire(record map[string]any, kind Kind) (map[string]any, error) {
	mapping, ok := wireToModel[kind]
	if !ok {
		return nil, unsupported("from_wire", kind)
	}

	out := make(map[string]any, len(record))
	for key, value := range record {
		if mapped, found := mapping[key]; found {
			out[mapped] = value
			continue
		}
		out[key] = value
	}
	return out, nil
}

// ToWire reshapes an application record back into the wire shape and
// strips the server-owned fields. Round-tripping through FromWire and
// ToWire preserves every writable field but not the read-only ones.
func ToWire(record map[string]any, kind Kind) (map[string]any, error) {
	mapping, ok := wireToModel[kind]
	if !ok {
		return nil, unsupported("to_wire", kind)
	}

	modelToWire := make(map[string]string, len(mapping))
	for wire, model := range mapping {
		modelToWire[model] = wire
	}

	out := make(map[string]any, len(record))
	for key, value := range record {
		if readOnlyModelFields[key] {
			continue
		}
		if mapped, found := modelToWire[key]; found {
			out[mapped] = value
			continue
		}
		out[key] = value
	}
	return out, nil
}
