package planstore

import (
	"encoding/json"
	"fmt"

	"outreach-route-service/internal/domain"
)

func encodePlan(plan domain.Plan) ([]byte, error) {
	b, err := json.Marshal(plan)
	if err != nil {
		return nil, fmt.Errorf("encode plan %s: %w", plan.ID, err)
	}
	return b, nil
}

func decodePlan(id string, b []byte) (domain.Plan, error) {
	var plan domain.Plan
	if err := json.Unmarshal(b, &plan); err != nil {
		return domain.Plan{}, fmt.Errorf("decode plan %s: %w", id, err)
	}
	return plan, nil
}
