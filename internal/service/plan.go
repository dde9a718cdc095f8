package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/comandahq/comanda/internal/model"
)

var (
	ErrRestaurantNotFound = errors.New("restaurante não encontrado")
	ErrOrderNotFound      = errors.New("pedido não encontrado")
	ErrInvalidStatus      = errors.New("status inválido")
	ErrUnauthorized       = errors.New("unauthorized")
)

// PlanDeniedError is returned when a restaurant's subscription does not
// cover a feature. It always names the upgrade path, never fails silently.
type PlanDeniedError struct {
	CurrentPlan string
	UpgradeTo   string
}

func (e *PlanDeniedError) Error() string {
	return fmt.Sprintf("plano %s não dá acesso a este recurso, faça upgrade para %s", e.CurrentPlan, e.UpgradeTo)
}

var crmPlans = map[string]bool{
	model.PlanPro:       true,
	model.PlanAdvanced:  true,
	model.PlanExecutive: true,
	model.PlanCustom:    true,
}

var resultsPlans = map[string]bool{
	model.PlanAdvanced:  true,
	model.PlanExecutive: true,
	model.PlanCustom:    true,
}

// CanUseCRM reports whether the plan covers the CRM view.
func CanUseCRM(plan string) bool {
	return crmPlans[strings.ToLower(strings.TrimSpace(plan))]
}

// CanUseResults reports whether the plan covers the metrics report.
func CanUseResults(plan string) bool {
	return resultsPlans[strings.ToLower(strings.TrimSpace(plan))]
}
