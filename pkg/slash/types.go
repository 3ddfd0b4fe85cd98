// Package slash is a declarative slash-command layer on top of discordgo:
// commands declare typed parameters, the package derives the wire-level
// option schema Discord needs, resolves incoming interaction payloads back
// into typed values, and keeps a registration tree (global vs per-guild)
// in sync with Discord's command catalog.
package slash

// TypeKind identifies a parameter type category. Each kind is claimed by an
// option parser; custom kinds are matched by name through parsers registered
// with Manager.RegisterOptionParser.
type TypeKind int

const (
	KindInt TypeKind = iota
	KindNumber
	KindBool
	KindString
	KindUser
	KindMember
	KindRole
	KindChannel
	KindMentionable
	KindAttachment
	KindEnum
	KindOptional
	KindSlice
	KindCustom
)

// TypeInfo is a recursive parameter type descriptor, built once at
// declaration time. Optional and slice types wrap an element type; enum
// types carry their constant names in declaration order.
type TypeInfo struct {
	Kind TypeKind
	Elem *TypeInfo // element type, KindOptional and KindSlice only
	Name string    // type name, KindEnum and KindCustom only
	Enum []string  // constant names in declaration order, KindEnum only
}

// Convenience descriptors for the scalar kinds.
var (
	TypeInt         = TypeInfo{Kind: KindInt}
	TypeNumber      = TypeInfo{Kind: KindNumber}
	TypeBool        = TypeInfo{Kind: KindBool}
	TypeString      = TypeInfo{Kind: KindString}
	TypeUser        = TypeInfo{Kind: KindUser}
	TypeMember      = TypeInfo{Kind: KindMember}
	TypeRole        = TypeInfo{Kind: KindRole}
	TypeChannel     = TypeInfo{Kind: KindChannel}
	TypeMentionable = TypeInfo{Kind: KindMentionable}
	TypeAttachment  = TypeInfo{Kind: KindAttachment}
)

// OptionalOf wraps a type so that an absent value parses to an empty
// Optional instead of marking the wire option required.
func OptionalOf(elem TypeInfo) TypeInfo {
	return TypeInfo{Kind: KindOptional, Elem: &elem}
}

// SliceOf declares a repetition type. The owning Param's MinCount/MaxCount
// control how many numbered wire options the parameter fans out into.
func SliceOf(elem TypeInfo) TypeInfo {
	return TypeInfo{Kind: KindSlice, Elem: &elem}
}

// EnumOf declares an enumeration with the given constants in declaration
// order. The first constant doubles as the fallback when no default is named.
func EnumOf(name string, constants ...string) TypeInfo {
	return TypeInfo{Kind: KindEnum, Name: name, Enum: constants}
}

// CustomOf declares a type handled by a caller-registered option parser.
func CustomOf(name string) TypeInfo {
	return TypeInfo{Kind: KindCustom, Name: name}
}

// Optional is the parse result for OptionalOf types: Present reports whether
// a raw value was supplied, Value holds whatever the element parser produced.
type Optional struct {
	Value   any
	Present bool
}

// Get returns the wrapped value and whether it is present.
func (o Optional) Get() (any, bool) { return o.Value, o.Present }
