package classify

// DefaultBin is the receptacle used for labels with no explicit mapping.
const DefaultBin = "general waste"

// BinMap maps trash-type labels to receptacle names. It is a pure lookup
// table populated from configuration, not code.
type BinMap struct {
	bins       map[string]string
	defaultBin string
}

// NewBinMap builds a BinMap from a label -> receptacle table. An empty
// defaultBin falls back to DefaultBin. The input map is copied.
func NewBinMap(bins map[string]string, defaultBin string) *BinMap {
	if defaultBin == "" {
		defaultBin = DefaultBin
	}
	m := &BinMap{
		bins:       make(map[string]string, len(bins)),
		defaultBin: defaultBin,
	}
	for label, bin := range bins {
		if label != "" && bin != "" {
			m.bins[label] = bin
		}
	}
	return m
}

// Lookup returns the receptacle for a label, falling back to the default
// receptacle for unmapped labels.
func (m *BinMap) Lookup(label string) string {
	if bin, ok := m.bins[label]; ok {
		return bin
	}
	return m.defaultBin
}

// Len returns the number of explicit label mappings.
func (m *BinMap) Len() int {
	return len(m.bins)
}
