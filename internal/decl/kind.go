package decl

// Kind classifies a declaration element.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindClass
	KindInterface
	KindEnum
	KindRecord
	KindAnnotationType
	KindMethod
	KindConstructor
	KindField
	KindParameter
)

var kindNames = [...]string{
	KindInvalid:        "invalid",
	KindClass:          "class",
	KindInterface:      "interface",
	KindEnum:           "enum",
	KindRecord:         "record",
	KindAnnotationType: "annotation",
	KindMethod:         "method",
	KindConstructor:    "constructor",
	KindField:          "field",
	KindParameter:      "parameter",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// IsType reports whether k is one of the type declaration kinds.
func (k Kind) IsType() bool {
	switch k {
	case KindClass, KindInterface, KindEnum, KindRecord, KindAnnotationType:
		return true
	default:
		return false
	}
}

// IsExecutable reports whether k declares a method or constructor.
func (k Kind) IsExecutable() bool {
	return k == KindMethod || k == KindConstructor
}
