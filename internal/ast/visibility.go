package ast

// Visibility описывает доступность элемента (private/public).
type Visibility uint8

const (
	VisPublic Visibility = iota
	VisPrivate
)

func (v Visibility) String() string {
	switch v {
	case VisPrivate:
		return "private"
	default:
		return "public"
	}
}
