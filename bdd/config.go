// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

// config holds the tunable parameters of an Engine, set through the
// functional options passed to New.
type config struct {
	nodesize        int // initial number of slots in the node table
	cachesize       int // initial number of slots in the operation cache
	cacheratio      int // cache growth, in slots per 100 table slots (0: fixed size)
	maxnodesize     int // hard cap on the node table (0: unbounded)
	maxnodeincrease int // cap on the growth of a single resize (0: unbounded)
	minfreenodes    int // free-node percentage that must remain after a GC before we resize
}

const (
	defaultCachesize       = 10000
	defaultMinfreenodes    = 20
	defaultMaxnodeincrease = 1 << 20
)

// Option configures an Engine created by New.
type Option func(*config)

// Nodesize sets the initial size of the node table. The table grows on
// demand, but a table sized close to the expected working set avoids early
// resizes.
func Nodesize(size int) Option {
	return func(c *config) {
		if size > 0 {
			c.nodesize = size
		}
	}
}

// Cachesize sets the initial number of entries in the operation cache.
func Cachesize(size int) Option {
	return func(c *config) {
		if size > 0 {
			c.cachesize = size
		}
	}
}

// Cacheratio sets the number of cache slots added for every 100 slots added
// to the node table on a resize. The default, 0, keeps the cache a fixed
// size.
func Cacheratio(ratio int) Option {
	return func(c *config) {
		c.cacheratio = ratio
	}
}

// Maxnodesize caps the total number of node-table slots. An allocation that
// would grow past this limit fails with ErrResource instead of growing
// further. The default, 0, means no limit.
func Maxnodesize(size int) Option {
	return func(c *config) {
		c.maxnodesize = size
	}
}

// Maxnodeincrease caps the number of slots added in a single resize.
func Maxnodeincrease(size int) Option {
	return func(c *config) {
		c.maxnodeincrease = size
	}
}

// Minfreenodes sets the percentage of free slots that must remain after a
// garbage collection before we skip resizing the table.
func Minfreenodes(ratio int) Option {
	return func(c *config) {
		c.minfreenodes = ratio
	}
}
