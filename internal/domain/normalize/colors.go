package normalize

// teamColors maps franchise abbreviations to their primary color.
var teamColors = map[string]string{
	"ATL": "#E03A3E",
	"BOS": "#007A33",
	"BKN": "#000000",
	"CHA": "#1D1160",
	"CHI": "#CE1141",
	"CLE": "#860038",
	"DAL": "#00538C",
	"DEN": "#0E2240",
	"DET": "#C8102E",
	"GSW": "#1D428A",
	"HOU": "#CE1141",
	"IND": "#002D62",
	"LAC": "#C8102E",
	"LAL": "#552583",
	"MEM": "#5D76A9",
	"MIA": "#98002E",
	"MIL": "#00471B",
	"MIN": "#0C2340",
	"NOP": "#0C2340",
	"NYK": "#006BB6",
	"OKC": "#007AC1",
	"ORL": "#0077C0",
	"PHI": "#006BB6",
	"PHX": "#1D1160",
	"POR": "#E03A3E",
	"SAC": "#5A2D81",
	"SAS": "#C4CED4",
	"TOR": "#CE1141",
	"UTA": "#002B5C",
	"WAS": "#002B5C",
}

var defaultPalette = []string{
	"#1F77B4",
	"#FF7F0E",
	"#2CA02C",
	"#D62728",
	"#9467BD",
	"#8C564B",
	"#E377C2",
	"#7F7F7F",
	"#BCBD22",
	"#17BECF",
}

// colorFor returns the franchise color for abbr, or a palette entry chosen by
// position so that every entity gets a color.
func (n *Normalizer) colorFor(abbr string, index int) string {
	if c, ok := teamColors[abbr]; ok {
		return c
	}
	if index < 0 {
		index = -index
	}
	return n.palette[index%len(n.palette)]
}
