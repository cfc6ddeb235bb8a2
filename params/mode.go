package params

import "fmt"

// Mode selects which structure-prediction backend the pipeline runs.
type Mode string

const (
	// ModeAlphafold2 runs the AlphaFold2 backend.
	ModeAlphafold2 Mode = "alphafold2"
	// ModeColabfold runs the ColabFold backend.
	ModeColabfold Mode = "colabfold"
	// ModeEsmfold runs the ESMFold backend.
	ModeEsmfold Mode = "esmfold"
)

// String returns the wire name forwarded to the pipeline runner.
func (m Mode) String() string {
	return string(m)
}

// ParseMode parses a wire name into a Mode.
// The round trip ParseMode(m.String()) == m holds for all valid modes.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAlphafold2, ModeColabfold, ModeEsmfold:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("invalid mode %q (must be alphafold2, colabfold, or esmfold)", s)
	}
}
