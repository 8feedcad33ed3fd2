package main

import (
	"math/rand"
	"time"
)

// newRand builds the RNG used by generate/minimize: the given seed when
// one was set on the command line, otherwise a time-seeded one.
func newRand(flags *globalFlags) *rand.Rand {
	seed := flags.seed
	if !flags.hasSeed {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
