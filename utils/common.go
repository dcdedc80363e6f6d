package utils

const (
	// EPSILON is the default alignment threshold and the shortest length a direction may have
	EPSILON = 1.e-9
)
