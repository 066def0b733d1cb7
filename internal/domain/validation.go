package domain

// FindingLevel classifies validator findings. Only errors affect pass/fail;
// warnings and tips are advisory unless a strict run elevates warnings first.
type FindingLevel string

const (
	LevelError   FindingLevel = "error"
	LevelWarning FindingLevel = "warning"
	LevelTip     FindingLevel = "tip"
)

// ValidatorFinding is one message emitted by a validator.
type ValidatorFinding struct {
	Level   FindingLevel `json:"level"`
	Message string       `json:"message"`
	File    string       `json:"file,omitempty"`
}

// ValidationResult is the immutable output of one validator invocation.
// Results are aggregated into a RunSummary but never merged into one another.
type ValidationResult struct {
	Validator string             `json:"validator"`
	Findings  []ValidatorFinding `json:"findings"`
	Skipped   bool               `json:"skipped,omitempty"`
	Payload   map[string]any     `json:"payload,omitempty"`
}

// AddError appends an error-level finding.
func (r *ValidationResult) AddError(msg string) {
	r.Findings = append(r.Findings, ValidatorFinding{Level: LevelError, Message: msg})
}

// AddWarning appends a warning-level finding.
func (r *ValidationResult) AddWarning(msg string) {
	r.Findings = append(r.Findings, ValidatorFinding{Level: LevelWarning, Message: msg})
}

// AddTip appends a tip-level finding.
func (r *ValidationResult) AddTip(msg string) {
	r.Findings = append(r.Findings, ValidatorFinding{Level: LevelTip, Message: msg})
}

// ElevateWarnings rewrites warning findings as errors, for strict runs.
// Must run before Passed is consulted.
func (r *ValidationResult) ElevateWarnings() {
	for i := range r.Findings {
		if r.Findings[i].Level == LevelWarning {
			r.Findings[i].Level = LevelError
		}
	}
}

// Passed reports whether no finding carries error severity.
func (r *ValidationResult) Passed() bool {
	for _, f := range r.Findings {
		if f.Level == LevelError {
			return false
		}
	}
	return true
}

// Errors returns only the error-level findings.
func (r *ValidationResult) Errors() []ValidatorFinding {
	var out []ValidatorFinding
	for _, f := range r.Findings {
		if f.Level == LevelError {
			out = append(out, f)
		}
	}
	return out
}

// RunSummary aggregates the results of one orchestrator run.
type RunSummary struct {
	Target   string              `json:"target"`
	Results  []*ValidationResult `json:"results"`
	Stopped  bool                `json:"stopped_early,omitempty"`
	Warnings []string            `json:"warnings,omitempty"`
}

// Passed reports whether every executed validator passed.
func (s *RunSummary) Passed() bool {
	for _, r := range s.Results {
		if !r.Passed() {
			return false
		}
	}
	return true
}

// FailedValidators lists the names of failing validators, in run order.
func (s *RunSummary) FailedValidators() []string {
	var names []string
	for _, r := range s.Results {
		if !r.Passed() {
			names = append(names, r.Validator)
		}
	}
	return names
}
