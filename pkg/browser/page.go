package browser

// Page is a pagination window over a listing. A Limit of zero or less
// means no limit.
type Page struct {
	Skip  int
	Limit int
}

// PageOf returns the window of the 1-based page number of size limit
func PageOf(number, limit int) Page {
	if number < 1 {
		number = 1
	}
	if limit < 0 {
		limit = 0
	}
	return Page{Skip: (number - 1) * limit, Limit: limit}
}

func paginate[T any](items []T, p Page) []T {
	skip := max(p.Skip, 0)
	if skip >= len(items) {
		return []T{}
	}
	items = items[skip:]
	if p.Limit > 0 && p.Limit < len(items) {
		items = items[:p.Limit]
	}
	return items
}
