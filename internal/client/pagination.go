package client

// PageWindow décrit les contrôles de pagination à afficher autour de la page
// courante.
type PageWindow struct {
	Pages     []int
	Current   int
	ShowFirst bool
	ShowLast  bool
}

// BuildPageWindow calcule la fenêtre de pages courante ± 2, bornée aux pages
// existantes. Les raccourcis première/dernière page n'apparaissent que
// lorsqu'on n'y est pas déjà.
func BuildPageWindow(current, totalPages int) PageWindow {
	if totalPages < 1 {
		totalPages = 1
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	start := current - 2
	if start < 1 {
		start = 1
	}
	end := current + 2
	if end > totalPages {
		end = totalPages
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}

	return PageWindow{
		Pages:     pages,
		Current:   current,
		ShowFirst: current > 1,
		ShowLast:  current < totalPages,
	}
}
