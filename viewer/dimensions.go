package viewer

// Dimensions is the size of the viewport in terminal cells.
type Dimensions struct {
	Width  int
	Height int
}
