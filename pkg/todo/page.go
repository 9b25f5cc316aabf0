package todo

const (
	MinPerPage     = 5
	DefaultPerPage = 14
	// the upper bound for items per page is never lower than this
	perPageCeiling = 50
)

type Page struct {
	Items      Collection
	Number     int
	Start      int
	End        int
	TotalPages int
}

func (p Page) HasNext() bool { return p.Number < p.TotalPages }
func (p Page) HasPrev() bool { return p.Number > 1 }

// Paginate returns page number page (1-based) of size items from projected.
func Paginate(projected Collection, page, size int) Page {
	size = max(size, 1)
	total := TotalPages(len(projected), size)
	start := (page - 1) * size
	end := start + size
	p := Page{Number: page, Start: start, End: end, TotalPages: total, Items: Collection{}}
	if page < 1 || start >= len(projected) {
		return p
	}
	p.Items = projected[start:min(end, len(projected))].Clone()
	return p
}

func TotalPages(n, size int) int {
	size = max(size, 1)
	return (n + size - 1) / size
}

// Pager keeps the current page of a paginated view consistent with its inputs.
type Pager struct {
	Page    int
	PerPage int

	collectionLen int
	synced        bool
	totalPages    int
}

func NewPager(perPage int) *Pager {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return &Pager{Page: 1, PerPage: perPage}
}

// Sync must be called whenever the projection or the collection changes.
// A change in the size of the full collection jumps back to the first page so
// that newly added todos are visible, then the page is clamped to the last one.
func (p *Pager) Sync(projectedLen, collectionLen int) {
	if p.synced && collectionLen != p.collectionLen {
		p.Page = 1
	}
	p.synced = true
	p.collectionLen = collectionLen
	p.totalPages = TotalPages(projectedLen, p.PerPage)
	p.Page = clamp(p.Page, 1, max(p.totalPages, 1))
}

// SetPerPage bounds n to [5, max(collectionLen, 50)] and goes back to the first page.
func (p *Pager) SetPerPage(n, collectionLen int) {
	p.PerPage = clamp(n, MinPerPage, max(collectionLen, perPageCeiling))
	p.Page = 1
}

func (p *Pager) TotalPages() int {
	return p.totalPages
}

func (p *Pager) GoTo(page int) bool {
	if page < 1 || page > p.totalPages {
		return false
	}
	p.Page = page
	return true
}

func (p *Pager) Next() bool  { return p.GoTo(p.Page + 1) }
func (p *Pager) Prev() bool  { return p.GoTo(p.Page - 1) }
func (p *Pager) First() bool { return p.GoTo(1) }
func (p *Pager) Last() bool  { return p.GoTo(p.totalPages) }

// Of returns the current page of projected.
func (p *Pager) Of(projected Collection) Page {
	return Paginate(projected, p.Page, p.PerPage)
}

// MapPageReorder writes a new ordering of one page back into the full projected sequence.
// It refuses with ErrReorderLocked while a filter is active, because the projection
// would then not be the whole collection and the todos hidden by the filter would lose
// their place.
func MapPageReorder(projected Collection, f Filter, page, size int, reordered Collection) (Collection, error) {
	if !f.DragEnabled() {
		return nil, ErrReorderLocked
	}
	current := Paginate(projected, page, size)
	if !reordered.isPermutationOf(current.Items) {
		return nil, ErrNotPermutation
	}
	out := projected.Clone()
	for i, t := range reordered {
		if at := current.Start + i; at < len(out) {
			out[at] = t
		}
	}
	return out, nil
}

// Move returns a copy of page with the item at from moved to index to.
func Move(page Collection, from, to int) Collection {
	out := page.Clone()
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}
	t := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append(Collection{t}, out[to:]...)...)
	return out
}

func clamp(v, low, high int) int {
	return min(high, max(low, v))
}
