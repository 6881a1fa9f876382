package areagen

import "tilestream/internal/core"

// mergeSpills folds the stamps each cell staged for its neighbors into the
// neighbors' surfaces. Staged stamps only land on tiles that are still empty,
// and sources are applied in block order so the result is deterministic.
func mergeSpills(cells *[9]GridCell, builds *[9]*surfaceBuild) {
	for target := range cells {
		base := cells[target].Surface
		var override []core.Tile
		for _, src := range builds {
			staged := src.spill[target]
			if len(staged) == 0 {
				continue
			}
			if override == nil {
				override = make([]core.Tile, len(base))
			}
			for idx, t := range staged {
				if base[idx].Empty() && override[idx].Empty() {
					override[idx] = t
				}
			}
		}
		if override != nil {
			cells[target].Surface = core.MergeTiles(base, override)
		}
	}
}
