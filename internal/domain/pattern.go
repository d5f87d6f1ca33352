package domain

import "fmt"

// PatternGrid marks the cells that must be satisfied to win. The center cell
// is always treated as satisfied.
type PatternGrid [Columns][Columns]bool

// ModalityCustom is the modality name used when the host draws an ad-hoc grid.
const ModalityCustom = "Personalizado"

// GamePattern is a named, reusable pattern.
type GamePattern struct {
	ID          uint        `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Grid        PatternGrid `json:"grid"`
	Predefined  bool        `json:"predefined"`
}

// IsValidPattern reports whether rows is exactly 5x5 with at least one true
// cell outside the center.
func IsValidPattern(rows [][]bool) bool {
	if len(rows) != Columns {
		return false
	}
	for _, row := range rows {
		if len(row) != Columns {
			return false
		}
	}

	for r := 0; r < Columns; r++ {
		for c := 0; c < Columns; c++ {
			if rows[r][c] && !IsFree(r, c) {
				return true
			}
		}
	}

	return false
}

// PatternFromRows converts a decoded grid into a PatternGrid.
func PatternFromRows(rows [][]bool) (PatternGrid, error) {
	var grid PatternGrid
	if !IsValidPattern(rows) {
		return grid, ErrInvalidPattern
	}
	for r := 0; r < Columns; r++ {
		copy(grid[r][:], rows[r])
	}

	return grid, nil
}

// Valid reports whether at least one non-center cell is required.
func (g PatternGrid) Valid() bool {
	return IsValidPattern(g.Rows())
}

func (g PatternGrid) Rows() [][]bool {
	rows := make([][]bool, Columns)
	for r := range g {
		rows[r] = append([]bool(nil), g[r][:]...)
	}

	return rows
}

// Required counts the cells a card must satisfy, excluding the free cell.
func (g PatternGrid) Required() int {
	n := 0
	for r := 0; r < Columns; r++ {
		for c := 0; c < Columns; c++ {
			if g[r][c] && !IsFree(r, c) {
				n++
			}
		}
	}

	return n
}

func rowGrid(rows ...string) PatternGrid {
	var g PatternGrid
	for r, line := range rows {
		for c, ch := range line {
			g[r][c] = ch == 'x'
		}
	}

	return g
}

var predefinedPatterns = []GamePattern{
	{
		Name:        "Línea Horizontal",
		Description: "Complete una línea horizontal completa",
		Grid:        rowGrid("xxxxx", ".....", ".....", ".....", "....."),
	},
	{
		Name:        "Línea Vertical",
		Description: "Complete una línea vertical completa",
		Grid:        rowGrid("x....", "x....", "x....", "x....", "x...."),
	},
	{
		Name:        "Cruz",
		Description: "Complete una cruz en el centro del cartón",
		Grid:        rowGrid("..x..", "..x..", "xxxxx", "..x..", "..x.."),
	},
	{
		Name:        "Diagonal",
		Description: "Complete una diagonal completa",
		Grid:        rowGrid("x....", ".x...", "..x..", "...x.", "....x"),
	},
	{
		Name:        "X",
		Description: "Complete una X completa",
		Grid:        rowGrid("x...x", ".x.x.", "..x..", ".x.x.", "x...x"),
	},
	{
		Name:        "Esquinas",
		Description: "Complete las cuatro esquinas",
		Grid:        rowGrid("x...x", ".....", ".....", ".....", "x...x"),
	},
	{
		Name:        "Marco",
		Description: "Complete todo el borde del cartón",
		Grid:        rowGrid("xxxxx", "x...x", "x...x", "x...x", "xxxxx"),
	},
	{
		Name:        "Cartón Lleno",
		Description: "Complete todo el cartón",
		Grid:        rowGrid("xxxxx", "xxxxx", "xxxxx", "xxxxx", "xxxxx"),
	},
}

// PredefinedPatterns returns a copy of the built-in patterns.
func PredefinedPatterns() []GamePattern {
	out := make([]GamePattern, len(predefinedPatterns))
	for i, p := range predefinedPatterns {
		p.Predefined = true
		out[i] = p
	}

	return out
}

// LookupPredefined finds a built-in pattern by its modality name.
func LookupPredefined(name string) (GamePattern, bool) {
	for _, p := range PredefinedPatterns() {
		if p.Name == name {
			return p, true
		}
	}

	return GamePattern{}, false
}

// ResolveModality returns the grid for a session modality. A custom grid wins
// when supplied; otherwise the name must be a predefined pattern.
func ResolveModality(name string, custom [][]bool) (PatternGrid, error) {
	if custom != nil {
		grid, err := PatternFromRows(custom)
		if err != nil {
			return PatternGrid{}, err
		}
		return grid, nil
	}

	p, ok := LookupPredefined(name)
	if !ok {
		return PatternGrid{}, fmt.Errorf("%w: %q", ErrUnknownModality, name)
	}

	return p.Grid, nil
}
