// Package utils provides common utility functions for twii-miner.
// It includes strict conversion helpers for the loosely typed values produced by
// document decoders (TOML tables, XML attributes) and shared number formatting.
package utils
