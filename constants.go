package server

import "time"

const (
	tickRate     = 20 // ticks per second
	tickInterval = time.Second / tickRate
	moveSpeed    = 5.0 // world units per second

	// inputEpsilon is the magnitude below which stored input counts as
	// idle and produces no displacement for that tick.
	inputEpsilon = 0.01

	// spawnRange bounds the random x/z starting position handed out on
	// join; y is always 0.
	spawnRange = 5.0

	playerIDPrefix = "UID"
)
