package deck

// Specification of list rendering for a marker range.
// ENUM(unordered, ordered)
type ListType int

// Specification of vertical offset for a run of text.
// ENUM(none, superscript, subscript)
type BaselineOffset int
