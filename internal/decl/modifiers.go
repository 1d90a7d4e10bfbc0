package decl

import "strings"

// Modifiers is a bit set of declaration modifiers.
type Modifiers uint16

const (
	ModPublic Modifiers = 1 << iota
	ModProtected
	ModPrivate
	ModStatic
	ModFinal
	ModAbstract
	ModSynchronized
	ModNative
	ModTransient
	ModVolatile
	ModStrictfp
	ModDefault
	ModSealed
	ModNonSealed
)

// порядок совпадает с каноническим порядком модификаторов
var modifierOrder = []struct {
	mod  Modifiers
	word string
}{
	{ModPublic, "public"},
	{ModProtected, "protected"},
	{ModPrivate, "private"},
	{ModAbstract, "abstract"},
	{ModStatic, "static"},
	{ModFinal, "final"},
	{ModSealed, "sealed"},
	{ModNonSealed, "non-sealed"},
	{ModTransient, "transient"},
	{ModVolatile, "volatile"},
	{ModSynchronized, "synchronized"},
	{ModNative, "native"},
	{ModStrictfp, "strictfp"},
	{ModDefault, "default"},
}

var modifierByWord = func() map[string]Modifiers {
	m := make(map[string]Modifiers, len(modifierOrder))
	for _, e := range modifierOrder {
		m[e.word] = e.mod
	}
	return m
}()

// ModifierByKeyword maps a modifier keyword to its bit.
func ModifierByKeyword(word string) (Modifiers, bool) {
	m, ok := modifierByWord[word]
	return m, ok
}

// Has reports whether every bit of x is set in m.
func (m Modifiers) Has(x Modifiers) bool {
	return m&x == x
}

func (m Modifiers) String() string {
	if m == 0 {
		return ""
	}
	parts := make([]string, 0, 4)
	for _, e := range modifierOrder {
		if m&e.mod != 0 {
			parts = append(parts, e.word)
		}
	}
	return strings.Join(parts, " ")
}

// Words returns the modifier keywords in canonical order.
func (m Modifiers) Words() []string {
	if m == 0 {
		return nil
	}
	return strings.Fields(m.String())
}
