package gate

import "github.com/wahlandcase/mergegate/internal/models"

// ChecksSatisfied reports whether a commit's combined status passes the
// required-context rule. With no required contexts the commit's aggregate
// verdict decides. With required contexts, every named context must be
// present and successful; unlisted contexts are ignored, and a missing
// context counts as not-yet-succeeded rather than a failure.
func ChecksSatisfied(status models.CombinedStatus, required []string) bool {
	if len(required) == 0 {
		return status.Overall == models.CheckSuccess
	}

	byContext := make(map[string]models.CheckState, len(status.Checks))
	for _, c := range status.Checks {
		byContext[c.Context] = c.State
	}
	for _, name := range required {
		if byContext[name] != models.CheckSuccess {
			return false
		}
	}
	return true
}
