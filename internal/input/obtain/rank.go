package obtain

// RepeatArg is the repeat argument accompanying a binding command. A
// literal argument carries its value directly; a doubling-style
// argument carries the accumulated magnitude (4, 16, 64, ...).
type RepeatArg struct {
	// Literal marks an explicitly typed numeric argument.
	Literal bool

	// Value is the argument's magnitude.
	Value int
}

// Rank derives the strategy-chain rank from a repeat argument: no
// argument selects rank 0, a literal n selects rank n, and a
// doubling-style magnitude 4^k selects rank k. Any other magnitude
// falls back to rank 0.
func Rank(arg *RepeatArg) int {
	if arg == nil {
		return 0
	}
	if arg.Literal {
		return arg.Value
	}
	v := arg.Value
	if v < 1 {
		return 0
	}
	k := 0
	for v > 1 {
		if v%4 != 0 {
			return 0
		}
		v /= 4
		k++
	}
	return k
}
