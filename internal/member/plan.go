package member

import (
	"sort"

	"github.com/alvimrfg/sistema-socio-40graus/internal/apperror"
)

// Plan is a usage plan with the stay-days it grants.
type Plan struct {
	Name          string `json:"name" example:"Misto"`
	AllowanceDays int    `json:"allowance_days" example:"8"`
}

// PlanTable maps a usage plan name to the stay-days it grants per membership period.
type PlanTable map[string]int

func (p PlanTable) AllowanceFor(plan string) (int, error) {
	days, ok := p[plan]
	if !ok {
		return 0, apperror.Validation("unknown usage plan %q", plan)
	}
	return days, nil
}

// Plans returns the plan names in a stable order.
func (p PlanTable) Plans() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p PlanTable) List() []Plan {
	names := p.Plans()
	plans := make([]Plan, 0, len(names))
	for _, name := range names {
		plans = append(plans, Plan{Name: name, AllowanceDays: p[name]})
	}
	return plans
}
