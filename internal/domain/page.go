package domain

const (
	DefaultPageSize int32 = 20
	MaxPageSize     int32 = 100
)

// Page is a 1-based pagination window.
type Page struct {
	Number int32
	Size   int32
}

// NewPage clamps page and size into the supported range.
func NewPage(number, size int32) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

func (p Page) Offset() int32 {
	return (p.Number - 1) * p.Size
}
