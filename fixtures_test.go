package promised

const (
	keptValue   = "Set by promise keeper"
	linkedValue = "Set by linked update"

	lengthInit = 2
	lengthA    = 5
)

// Line, Square and Box model nested objects: a Square's sides follow its
// Line, and a Box's volume follows both its side Line and its base Square.

type Line struct {
	Object
}

func NewLine(length int) *Line {
	l := &Line{}
	lineLength.Store(l, length)
	return l
}

type Square struct {
	Object
}

func NewSquare() *Square {
	return &Square{}
}

func NewSquareWithSide(width int) *Square {
	s := &Square{}
	squareSide.Store(s, NewLine(width))
	return s
}

type Box struct {
	Object
}

var (
	lineLength = Linked("length", func(*Line) (int, error) {
		return lengthA, nil
	})

	squareSide = Linked("side", func(*Square) (*Line, error) {
		return NewLine(lengthInit), nil
	})
	squareWidth = Linked("width", func(s *Square) (int, error) {
		return sideLength(s)
	})
	squareHeight = Linked("height", func(s *Square) (int, error) {
		return sideLength(s)
	})
	squareArea = Linked("area", func(s *Square) (int, error) {
		w, err := squareWidth.Get(s)
		if err != nil {
			return 0, err
		}
		h, err := squareHeight.Get(s)
		if err != nil {
			return 0, err
		}
		return w * h, nil
	})

	boxSide = Linked("side", func(*Box) (*Line, error) {
		return NewLine(lengthInit), nil
	})
	boxBase = Linked("base", func(*Box) (*Square, error) {
		return NewSquare(), nil
	})
	boxVolume = Linked("volume", func(b *Box) (int, error) {
		base, err := boxBase.Get(b)
		if err != nil {
			return 0, err
		}
		area, err := squareArea.Get(base)
		if err != nil {
			return 0, err
		}
		side, err := boxSide.Get(b)
		if err != nil {
			return 0, err
		}
		depth, err := lineLength.Get(side)
		if err != nil {
			return 0, err
		}
		return area * depth, nil
	})
)

func init() {
	squareSide.Chain(lineLength, squareWidth, squareHeight)
	squareWidth.Links(squareArea)
	squareHeight.Links(squareArea)

	boxSide.Chain(lineLength, boxVolume)
	boxBase.Chain(squareArea, boxVolume)
}

func sideLength(s *Square) (int, error) {
	side, err := squareSide.Get(s)
	if err != nil {
		return 0, err
	}
	return lineLength.Get(side)
}

// pair mirrors two properties linked to each other in a cycle, where one
// of them writes without linking, and a plain property downstream of both.
type pair struct {
	Object

	linkKeeps      int
	attributeKeeps int
}

var (
	pairLinkedLink = Linked("linked_link",
		func(*pair) (string, error) {
			return keptValue, nil
		},
		WithoutLinkOnSet[*pair, string](),
	)
	pairLink = Linked("link", func(p *pair) (string, error) {
		p.linkKeeps++
		return keptValue, nil
	})
	pairAttribute = New("attribute",
		func(p *pair) (string, error) {
			p.attributeKeeps++
			return pairLink.Get(p)
		},
		WithSetter(func(_ *pair, v string) (string, error) {
			return v, nil
		}),
		WithDeleter(func(*pair, string) error {
			return nil
		}),
	)
)

func init() {
	pairLinkedLink.Links(pairLink)
	pairLink.Links(pairLinkedLink, pairAttribute)
}
