// Package pins turns pin-control buffers into output pin state.
//
// A board supplies a fixed table of logical pin slots (Pool). The first
// command that references a slot claims its Line for good and configures it
// as an output at the requested level. Later commands for that index only
// change the level. Nothing is ever released, so the pool only narrows over
// the process lifetime.
//
// Wire format: consecutive (index, level) byte pairs; level > 0 is high and a
// trailing unpaired byte is ignored.
package pins
