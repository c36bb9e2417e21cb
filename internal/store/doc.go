// Package store keeps a bounded set of resident models loaded from the
// registry and moves them in and out of byte form through the picklable
// adapters.
//
// Residency is an LRU keyed by model id; an evicted or unloaded model is
// closed. All public operations are serialised by a single mutex.
package store
