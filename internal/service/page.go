package service

// Page is one page of a listed collection together with the unfiltered-total
// for the active filters. Handlers serialize it into the list envelope.
type Page[T any] struct {
	Items []*T
	Total int
}
