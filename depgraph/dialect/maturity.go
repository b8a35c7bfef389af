package dialect

// MaturityLevel describes how complete the analysis support for a dialect is.
type MaturityLevel int

const (
	// MaturityUntested means require extraction works in principle but has no
	// coverage of its own.
	MaturityUntested MaturityLevel = iota
	// MaturityBasicTests means the common require forms are covered.
	MaturityBasicTests
	// MaturityActivelyTested means edge cases of the dialect are covered too.
	MaturityActivelyTested
	// MaturityStable means the dialect is relied on in real trees.
	MaturityStable
)

type maturityPresentation struct {
	name   string
	symbol string
}

var maturityPresentations = [...]maturityPresentation{
	MaturityUntested:       {name: "Untested", symbol: "○"},
	MaturityBasicTests:     {name: "Basic Tests", symbol: "◐"},
	MaturityActivelyTested: {name: "Actively Tested", symbol: "●"},
	MaturityStable:         {name: "Stable", symbol: "✓"},
}

func (level MaturityLevel) presentation() (maturityPresentation, bool) {
	if level < 0 || int(level) >= len(maturityPresentations) {
		return maturityPresentation{}, false
	}
	return maturityPresentations[level], true
}

// DisplayName returns the human readable name of the level, or "Unknown".
func (level MaturityLevel) DisplayName() string {
	if p, ok := level.presentation(); ok {
		return p.name
	}
	return "Unknown"
}

// Symbol returns the one-character marker used in dialect listings, or "?".
func (level MaturityLevel) Symbol() string {
	if p, ok := level.presentation(); ok {
		return p.symbol
	}
	return "?"
}
