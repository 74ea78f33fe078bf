package catalog

// MaterialOption lists every way a material can be sourced
type MaterialOption struct {
	Ticker  string
	Recipes []string
	Planets []string
}

// HasChoice reports whether the material has more than one possible source
func (o MaterialOption) HasChoice() bool {
	return len(o.Recipes)+len(o.Planets) > 1
}

// MaterialOptions enumerates sourcing options per material in ticker order.
// When all is false only materials with a real choice are returned; this is
// the list a user needs to fill in a selection file.
func (c *Catalog) MaterialOptions(all bool) []MaterialOption {
	options := make([]MaterialOption, 0, len(c.materials))
	for _, ticker := range c.MaterialTickers() {
		m := c.materials[ticker]
		opt := MaterialOption{Ticker: ticker, Recipes: m.Recipes, Planets: m.Planets}
		if !all && !opt.HasChoice() {
			continue
		}
		options = append(options, opt)
	}
	return options
}
