package metadata

// OverlayCategoryName identifies a group of mutually-exclusive overlay
// segments (spec.md §3). Go strings are already cheap, immutable,
// shared values, so unlike the original's Arc<str> interning this needs
// no extra indirection to avoid cloning on the many reference-addition
// calls per analysis.
type OverlayCategoryName string
