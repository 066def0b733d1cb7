package validate

import (
	"fmt"

	"github.com/driftguard/driftguard/internal/domain"
)

// ValidEditors enumerates editors the feature configuration may declare.
var ValidEditors = map[string]bool{
	"vscode":    true,
	"cursor":    true,
	"jetbrains": true,
	"neovim":    true,
	"emacs":     true,
}

// CheckFeatures validates the feature-toggle configuration, including the
// cross-field safety constraints: autonomous operation requires a password
// gate on destructive actions, and update deployment requires trust phase
// three or later.
func CheckFeatures(doc map[string]any) *domain.ValidationResult {
	result := &domain.ValidationResult{Validator: "features"}

	editors, err := stringListField(doc, "supported_editors")
	if err != nil {
		result.AddError(err.Error())
	}
	for _, editor := range editors {
		if !ValidEditors[editor] {
			result.AddError(fmt.Sprintf("unsupported editor %q in supported_editors", editor))
		}
	}

	level := ""
	if autonomy, ok := mapField(doc, "autonomy"); ok {
		level, _ = stringField(autonomy, "level")
		if level != "" && level != "supervised" && level != "autonomous" {
			result.AddError(fmt.Sprintf("autonomy.level must be supervised or autonomous, got %q", level))
		}
	}

	// A privileged capability flag requires its accompanying safety flag.
	if level == "autonomous" && !requirePasswordSet(doc) {
		result.AddError(
			"autonomy.level is autonomous but destructive_actions.require_password is not true")
	}

	checkDeployPhase(result, doc)

	return result
}

func requirePasswordSet(doc map[string]any) bool {
	destructive, ok := mapField(doc, "destructive_actions")
	if !ok {
		return false
	}
	v, ok := destructive["require_password"].(bool)
	return ok && v
}

// checkDeployPhase: can_deploy_updates is only legal from phase 3 on.
func checkDeployPhase(result *domain.ValidationResult, doc map[string]any) {
	rollout, ok := mapField(doc, "rollout")
	if !ok {
		return
	}

	canDeploy, _ := rollout["can_deploy_updates"].(bool)
	if !canDeploy {
		return
	}

	phase, err := asIntValue(rollout["current_phase"])
	if err != nil {
		result.AddError("rollout.current_phase must be an integer")
		return
	}
	if phase < 3 {
		result.AddError(fmt.Sprintf(
			"rollout.can_deploy_updates requires current_phase >= 3, got %d", phase))
	}
}

func asIntValue(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("not an integer: %T", v)
	}
}
