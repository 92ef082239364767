package kinds

type Kind int

const (
	Unknown Kind = iota
	Int
	String
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case String:
		return "string"
	default:
		return "<unknown>"
	}
}

func (k Kind) IsComparable() bool {
	return k == Int
}
