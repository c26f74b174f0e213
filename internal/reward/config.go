package reward

// Default sizes matching the bundled study content. Callers with different
// content supply their own values.
const (
	DefaultDeckSize       = 45
	DefaultTotalScenarios = 20
)

// Config carries the content-derived knobs the engine needs. The category
// list is the closed set used for the "all categories reviewed" check; it is
// supplied at construction rather than compiled in, so it can track whatever
// content is actually loaded.
type Config struct {
	Categories     []string
	DeckSize       int
	TotalScenarios int
}

func (c Config) withDefaults() Config {
	if c.DeckSize <= 0 {
		c.DeckSize = DefaultDeckSize
	}
	if c.TotalScenarios <= 0 {
		c.TotalScenarios = DefaultTotalScenarios
	}
	return c
}
