package dom

import "fmt"

// Ops counts mutations issued against a document. Reads never count;
// every mutating call counts whether or not it changed anything, so a
// patcher that wants to be minimal has to compare before writing.
type Ops struct {
	AttrWrites   int
	AttrRemovals int
	TextWrites   int
	PropWrites   int
	Inserts      int
	Removals     int
	Replacements int
}

// Total returns the sum of all counters.
func (o *Ops) Total() int {
	return o.AttrWrites + o.AttrRemovals + o.TextWrites + o.PropWrites +
		o.Inserts + o.Removals + o.Replacements
}

// Reset zeroes all counters.
func (o *Ops) Reset() {
	*o = Ops{}
}

// String returns a compact summary, useful in test failure messages.
func (o *Ops) String() string {
	return fmt.Sprintf("attrW=%d attrR=%d text=%d prop=%d ins=%d rem=%d repl=%d",
		o.AttrWrites, o.AttrRemovals, o.TextWrites, o.PropWrites,
		o.Inserts, o.Removals, o.Replacements)
}
