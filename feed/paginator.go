package feed

import "strconv"

// Paginator splits Count items into pages of PerPage. There is always at least one (maybe empty) page
type Paginator struct {
	PerPage int
	Count   int64
}

func (p Paginator) NumPages() int {
	if p.Count <= 0 || p.PerPage <= 0 {
		return 1
	}
	return int((p.Count + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// Clamp maps a requested page number to a valid one. Anything out of range means the last page
func (p Paginator) Clamp(number int) int {
	last := p.NumPages()
	if number < 1 || number > last {
		return last
	}
	return number
}

// Offset of the first item on a (valid) page
func (p Paginator) Offset(number int) int {
	return (number - 1) * p.PerPage
}

// ParsePageNumber reads the ?page= value. Missing or garbage input is page 1
func ParsePageNumber(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return n
}
