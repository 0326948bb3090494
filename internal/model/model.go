// Package model holds the closed set of enums shared by every pass of the
// pipeline: lifting, collection, binding, block-graph construction and
// centrality. None of these types carry behavior beyond stringification;
// they exist so that every later package agrees on the same vocabulary
// without importing each other.
package model

// HirKind classifies a lifted syntax node into the language-independent
// shape used by collection and binding. Every Language implementation maps
// its own grammar's node kinds onto this set.
type HirKind uint8

const (
	HirUnknown HirKind = iota
	HirRoot
	HirModule
	HirFunction
	HirMethod
	HirTypeDecl // struct, class, record
	HirEnum
	HirInterfaceDecl // interface, trait, protocol
	HirImplDecl
	HirField
	HirParameter
	HirReturnType
	HirCallExpr
	HirConstDecl
	HirVarDecl
	HirBlockStmt
	HirPathExpr
	HirIdent
)

func (k HirKind) String() string {
	switch k {
	case HirRoot:
		return "root"
	case HirModule:
		return "module"
	case HirFunction:
		return "function"
	case HirMethod:
		return "method"
	case HirTypeDecl:
		return "type"
	case HirEnum:
		return "enum"
	case HirInterfaceDecl:
		return "interface"
	case HirImplDecl:
		return "impl"
	case HirField:
		return "field"
	case HirParameter:
		return "parameter"
	case HirReturnType:
		return "return"
	case HirCallExpr:
		return "call"
	case HirConstDecl:
		return "const"
	case HirVarDecl:
		return "var"
	case HirBlockStmt:
		return "stmt"
	case HirPathExpr:
		return "path"
	case HirIdent:
		return "ident"
	default:
		return "unknown"
	}
}

// IdentifierCategory tags an HirIdent node with the role the identifier
// plays at the site it occurs, driving which pass (collection vs binding)
// consumes it and how.
type IdentifierCategory uint8

const (
	IdentNone IdentifierCategory = iota
	IdentDef                     // introduces a new symbol
	IdentUse                     // references a value
	IdentTypeUse                 // references a type
	IdentFieldAccess
	IdentMethodCall
	IdentPathSegment
)

// SymbolKind is the resolved kind of a declared symbol, assigned during
// collection and never changed afterward.
type SymbolKind uint8

const (
	SymUndefined SymbolKind = iota // placeholder awaiting project-link resolution
	SymFunction
	SymMethod
	SymField
	SymVariable
	SymConst
	SymParameter
	SymType // struct/class/record
	SymEnum
	SymInterface // interface/trait
	SymImpl
	SymModule
	SymPrimitive
	SymOverloadSet
)

func (k SymbolKind) String() string {
	switch k {
	case SymFunction:
		return "function"
	case SymMethod:
		return "method"
	case SymField:
		return "field"
	case SymVariable:
		return "variable"
	case SymConst:
		return "const"
	case SymParameter:
		return "parameter"
	case SymType:
		return "type"
	case SymEnum:
		return "enum"
	case SymInterface:
		return "interface"
	case SymImpl:
		return "impl"
	case SymModule:
		return "module"
	case SymPrimitive:
		return "primitive"
	case SymOverloadSet:
		return "overload_set"
	default:
		return "undefined"
	}
}

// BlockKind classifies a node in the architectural block graph.
type BlockKind uint8

const (
	BlockRoot BlockKind = iota
	BlockModule
	BlockFunction
	BlockMethod
	BlockType
	BlockEnum
	BlockInterface
	BlockImpl
	BlockField
	BlockParameters
	BlockReturn
	BlockCall
	BlockConst
	BlockStmt
)

func (k BlockKind) String() string {
	switch k {
	case BlockModule:
		return "module"
	case BlockFunction:
		return "function"
	case BlockMethod:
		return "method"
	case BlockType:
		return "type"
	case BlockEnum:
		return "enum"
	case BlockInterface:
		return "interface"
	case BlockImpl:
		return "impl"
	case BlockField:
		return "field"
	case BlockParameters:
		return "parameters"
	case BlockReturn:
		return "return"
	case BlockCall:
		return "call"
	case BlockConst:
		return "const"
	case BlockStmt:
		return "stmt"
	default:
		return "root"
	}
}

// BlockRelation labels a directed edge between two blocks in the graph.
type BlockRelation uint8

const (
	RelContains BlockRelation = iota
	RelContainedBy
	RelHasParameters
	RelHasReturn
	RelCalls
	RelCalledBy
	RelHasField
	RelFieldOf
	RelHasMethod
	RelMethodOf
	RelImplFor
	RelHasImpl
	RelImplements
	RelImplementedBy
	RelUses
	RelUsedBy
)

func (r BlockRelation) String() string {
	switch r {
	case RelContains:
		return "contains"
	case RelContainedBy:
		return "contained_by"
	case RelHasParameters:
		return "has_parameters"
	case RelHasReturn:
		return "has_return"
	case RelCalls:
		return "calls"
	case RelCalledBy:
		return "called_by"
	case RelHasField:
		return "has_field"
	case RelFieldOf:
		return "field_of"
	case RelHasMethod:
		return "has_method"
	case RelMethodOf:
		return "method_of"
	case RelImplFor:
		return "impl_for"
	case RelHasImpl:
		return "has_impl"
	case RelImplements:
		return "implements"
	case RelImplementedBy:
		return "implemented_by"
	case RelUses:
		return "uses"
	case RelUsedBy:
		return "used_by"
	default:
		return "unknown"
	}
}

// Inverse returns the relation stored on the other endpoint of an edge, and
// false for the two relations that carry no symmetric counterpart
// (HasParameters/HasReturn point at synthetic grouping blocks that are never
// themselves the subject of a reverse traversal).
func (r BlockRelation) Inverse() (BlockRelation, bool) {
	switch r {
	case RelContains:
		return RelContainedBy, true
	case RelContainedBy:
		return RelContains, true
	case RelCalls:
		return RelCalledBy, true
	case RelCalledBy:
		return RelCalls, true
	case RelHasField:
		return RelFieldOf, true
	case RelFieldOf:
		return RelHasField, true
	case RelHasMethod:
		return RelMethodOf, true
	case RelMethodOf:
		return RelHasMethod, true
	case RelImplFor:
		return RelHasImpl, true
	case RelHasImpl:
		return RelImplFor, true
	case RelImplements:
		return RelImplementedBy, true
	case RelImplementedBy:
		return RelImplements, true
	case RelUses:
		return RelUsedBy, true
	case RelUsedBy:
		return RelUses, true
	default:
		return 0, false
	}
}

// Weight is the edge weight used by the PageRank pass. Calls dominate,
// then uses, then plain containment; structural relations with no
// semantic pull (parameters/return groupings) carry zero weight.
func (r BlockRelation) Weight() float64 {
	switch r {
	case RelCalls, RelCalledBy:
		return 3.0
	case RelUses, RelUsedBy:
		return 2.0
	case RelImplements, RelImplementedBy, RelImplFor, RelHasImpl:
		return 2.0
	case RelHasMethod, RelMethodOf, RelHasField, RelFieldOf:
		return 1.5
	case RelContains, RelContainedBy:
		return 1.0
	default:
		return 0.0
	}
}

// Visibility records whether a symbol is reachable from outside its
// declaring module, gating global-index publication.
type Visibility uint8

const (
	VisPrivate Visibility = iota
	VisPublic
)

// Span is a half-open source range in line/column coordinates, both
// zero-based to match tree-sitter's own convention.
type Span struct {
	StartLine, StartCol int
	EndLine, EndCol     int
}

// Location pairs a Span with the file it was taken from.
type Location struct {
	File string
	Span Span
}
