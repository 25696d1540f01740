// Package query is the storage layer every repository writes through.
//
// New wraps the mongo driver, NewMemory keeps the tables in process and
// understands the subset of selectors the repositories issue. Both run
// RunWithTransaction as one unit: every write made with the ctx handed to
// run commits or rolls back together.
package query

import (
	"errors"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
)

var (
	ErrNotFound     = errors.New("document not found")
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrCollScan is returned for unindexed queries when index checking is on
	ErrCollScan = errors.New("COLLSCAN is not allowed")
)

type patchOp struct {
	patchMany bool
}

type PatchOp func(*patchOp)

// WithPatchMany patches every matched document instead of the first
func WithPatchMany(patchMany bool) PatchOp {
	return func(o *patchOp) {
		o.patchMany = patchMany
	}
}

func initPatchOp(ops ...PatchOp) *patchOp {
	o := &patchOp{}
	for _, op := range ops {
		op(o)
	}
	return o
}

// Mongo is a table store with mongo selector semantics. Sort fields
// prefixed with "-" are descending, a limit of 0 returns everything.
type Mongo interface {
	Insert(context ctx.Ctx, table domain.Table, insert interface{}) error
	// FindOne returns ErrNotFound when nothing matches
	FindOne(context ctx.Ctx, table domain.Table, query, result interface{}) error
	Count(context ctx.Ctx, table domain.Table, selector interface{}) (n int, err error)
	// Upsert replaces the matched document or inserts update
	Upsert(context ctx.Ctx, table domain.Table, selector, update interface{}) error
	Search(context ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error
	// SearchNSorts sorts by every field in order, keep it aligned with a compound index
	SearchNSorts(context ctx.Ctx, table domain.Table, offset, limit int, sortFields []string, query, results interface{}) error
	// Remove deletes one document, ErrNotFound when nothing matches
	Remove(context ctx.Ctx, table domain.Table, selector interface{}) error
	RemoveAll(context ctx.Ctx, table domain.Table, selector interface{}) (removedCnt int64, err error)
	// Patch sets the fields of update on the matched document, ErrNotFound when nothing matches
	Patch(context ctx.Ctx, table domain.Table, selector, update interface{}, ops ...PatchOp) error
	// Increment adds inc to field and decodes the updated document, the document is created when missing
	Increment(context ctx.Ctx, table domain.Table, selector, result interface{}, field string, inc interface{}) error
	RunWithTransaction(context ctx.Ctx, run func(ctx.Ctx) error) error
}
