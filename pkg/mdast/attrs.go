package mdast

// ReferenceType indicates how a reference names its definition.
type ReferenceType uint8

const (
	// ReferenceNone is used by nodes that are not references.
	ReferenceNone ReferenceType = iota

	// ReferenceShortcut represents [label] or ![label].
	ReferenceShortcut

	// ReferenceCollapsed represents [label][] or ![label][].
	ReferenceCollapsed

	// ReferenceFull represents [text][label] or ![alt][label].
	ReferenceFull
)

// String returns the mdast name of the reference type.
func (r ReferenceType) String() string {
	switch r {
	case ReferenceShortcut:
		return "shortcut"
	case ReferenceCollapsed:
		return "collapsed"
	case ReferenceFull:
		return "full"
	default:
		return ""
	}
}

// ParseReferenceType is the inverse of ReferenceType.String.
func ParseReferenceType(name string) ReferenceType {
	switch name {
	case "shortcut":
		return ReferenceShortcut
	case "collapsed":
		return ReferenceCollapsed
	case "full":
		return ReferenceFull
	default:
		return ReferenceNone
	}
}
