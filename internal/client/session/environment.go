package session

// Environment tells state-mutating code whether it runs on behalf of an
// interactive session or on a pre-render/server path.
type Environment string

const (
	Interactive Environment = "interactive"
	Prerender   Environment = "prerender"
)

// IsInteractive reports whether auth state side effects should be applied.
func (e Environment) IsInteractive() bool {
	return e == Interactive
}
