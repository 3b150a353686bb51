package entity

// Op is the operator of a predicate node.
type Op int

const (
	OpEq Op = iota + 1
	OpNeq
	OpContains
	OpAnd
	OpOr
)

// Predicate is a boolean expression over entity fields. Leaves compare a
// field with a value; And/Or combine children. Field names are store column
// names; a dotted name ("Category.name") addresses a joined relation.
//
// Repositories translate a predicate into a single store query.
type Predicate struct {
	Op       Op
	Field    string
	Value    interface{}
	Children []Predicate
}

// Eq matches records whose field equals value exactly.
func Eq(field string, value interface{}) Predicate {
	return Predicate{Op: OpEq, Field: field, Value: value}
}

// Neq matches records whose field differs from value.
func Neq(field string, value interface{}) Predicate {
	return Predicate{Op: OpNeq, Field: field, Value: value}
}

// Contains matches records whose field contains term as a case-sensitive substring.
func Contains(field, term string) Predicate {
	return Predicate{Op: OpContains, Field: field, Value: term}
}

func And(ps ...Predicate) Predicate {
	return Predicate{Op: OpAnd, Children: ps}
}

func Or(ps ...Predicate) Predicate {
	return Predicate{Op: OpOr, Children: ps}
}
