package query

import (
	"bytes"
	"context"
	"reflect"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"golang.org/x/xerrors"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
)

type memoryTxKey struct{}

type memory struct {
	mu     sync.RWMutex
	txMu   sync.Mutex
	tables map[domain.Table][]bson.Raw
}

// NewMemory returns a process local Mongo. Selectors support field equality
// and the $in, $ne, $gt, $gte, $lt, $lte operators. Transactions are
// serialized and roll back by restoring a snapshot.
func NewMemory() Mongo {
	return &memory{tables: map[domain.Table][]bson.Raw{}}
}

func (m *memory) Insert(c ctx.Ctx, table domain.Table, insert interface{}) error {
	doc, err := bson.Marshal(insert)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[table] = append(m.tables[table], doc)
	return nil
}

func (m *memory) FindOne(c ctx.Ctx, table domain.Table, query, result interface{}) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	idx, err := m.find(table, query)
	if err != nil {
		return err
	}
	if len(idx) == 0 {
		return ErrNotFound
	}
	return bson.Unmarshal(m.tables[table][idx[0]], result)
}

func (m *memory) Count(c ctx.Ctx, table domain.Table, selector interface{}) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	idx, err := m.find(table, selector)
	if err != nil {
		return 0, err
	}
	return len(idx), nil
}

func (m *memory) Upsert(c ctx.Ctx, table domain.Table, selector, update interface{}) error {
	doc, err := bson.Marshal(update)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	idx, err := m.find(table, selector)
	if err != nil {
		return err
	}
	if len(idx) == 0 {
		m.tables[table] = append(m.tables[table], doc)
		return nil
	}
	m.tables[table][idx[0]] = doc
	return nil
}

func (m *memory) Search(c ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error {
	return m.SearchNSorts(c, table, offset, limit, []string{sort}, query, results)
}

func (m *memory) SearchNSorts(c ctx.Ctx, table domain.Table, offset, limit int, sortFields []string, query, results interface{}) error {
	rv := reflect.ValueOf(results)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Slice {
		return xerrors.Errorf("results must be a pointer to a slice, got %T", results)
	}

	m.mu.RLock()
	idx, err := m.find(table, query)
	if err != nil {
		m.mu.RUnlock()
		return err
	}
	docs := make([]bson.Raw, 0, len(idx))
	for _, i := range idx {
		docs = append(docs, m.tables[table][i])
	}
	m.mu.RUnlock()

	if sortOpt := getSortOption(sortFields...); len(sortOpt) > 0 {
		sort.SliceStable(docs, func(i, j int) bool {
			for _, e := range sortOpt {
				a, _ := lookup(docs[i], e.Key)
				b, _ := lookup(docs[j], e.Key)
				cmp, _ := compareValues(a, b)
				if cmp == 0 {
					continue
				}
				return cmp*e.Value.(int) < 0
			}
			return false
		})
	}

	if offset > len(docs) {
		offset = len(docs)
	}
	docs = docs[offset:]
	if limit > 0 && limit < len(docs) {
		docs = docs[:limit]
	}

	slice := rv.Elem()
	out := reflect.MakeSlice(slice.Type(), 0, len(docs))
	for _, d := range docs {
		elem := reflect.New(slice.Type().Elem())
		if err := bson.Unmarshal(d, elem.Interface()); err != nil {
			return err
		}
		out = reflect.Append(out, elem.Elem())
	}
	slice.Set(out)
	return nil
}

func (m *memory) Remove(c ctx.Ctx, table domain.Table, selector interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx, err := m.find(table, selector)
	if err != nil {
		return err
	}
	if len(idx) == 0 {
		return ErrNotFound
	}
	m.removeAt(table, idx[:1])
	return nil
}

func (m *memory) RemoveAll(c ctx.Ctx, table domain.Table, selector interface{}) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx, err := m.find(table, selector)
	if err != nil {
		return 0, err
	}
	m.removeAt(table, idx)
	return int64(len(idx)), nil
}

func (m *memory) Patch(c ctx.Ctx, table domain.Table, selector, update interface{}, ops ...PatchOp) error {
	o := initPatchOp(ops...)
	set, err := bson.Marshal(update)
	if err != nil {
		return err
	}
	elems, err := bson.Raw(set).Elements()
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	idx, err := m.find(table, selector)
	if err != nil {
		return err
	}
	if len(idx) == 0 {
		return ErrNotFound
	}
	if !o.patchMany {
		idx = idx[:1]
	}
	for _, i := range idx {
		doc := m.tables[table][i]
		for _, e := range elems {
			if doc, err = setField(doc, e.Key(), e.Value()); err != nil {
				return err
			}
		}
		m.tables[table][i] = doc
	}
	return nil
}

func (m *memory) Increment(c ctx.Ctx, table domain.Table, selector, result interface{}, field string, inc interface{}) error {
	incType, incRaw, err := bson.MarshalValue(inc)
	if err != nil {
		return err
	}
	delta, ok := toInt64(bson.RawValue{Type: incType, Value: incRaw})
	if !ok {
		return xerrors.Errorf("increment must be an integer, got %T", inc)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	idx, err := m.find(table, selector)
	if err != nil {
		return err
	}

	var doc bson.Raw
	if len(idx) == 0 {
		// seed the new document with the equality fields of the selector
		seed := bson.D{}
		sel, err := bson.Marshal(selector)
		if err != nil {
			return err
		}
		selElems, err := bson.Raw(sel).Elements()
		if err != nil {
			return err
		}
		for _, e := range selElems {
			if isOperatorDoc(e.Value()) {
				continue
			}
			seed = append(seed, bson.E{Key: e.Key(), Value: e.Value()})
		}
		if doc, err = bson.Marshal(seed); err != nil {
			return err
		}
		m.tables[table] = append(m.tables[table], doc)
		idx = []int{len(m.tables[table]) - 1}
	} else {
		doc = m.tables[table][idx[0]]
	}

	current := int64(0)
	if v, found := lookup(doc, field); found {
		if current, ok = toInt64(v); !ok {
			return xerrors.Errorf("field %s is not an integer", field)
		}
	}
	t, raw, err := bson.MarshalValue(current + delta)
	if err != nil {
		return err
	}
	if doc, err = setField(doc, field, bson.RawValue{Type: t, Value: raw}); err != nil {
		return err
	}
	m.tables[table][idx[0]] = doc
	return bson.Unmarshal(doc, result)
}

func (m *memory) RunWithTransaction(c ctx.Ctx, run func(ctx.Ctx) error) error {
	if c.Value(memoryTxKey{}) != nil {
		return run(c)
	}

	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.RLock()
	snapshot := make(map[domain.Table][]bson.Raw, len(m.tables))
	for t, docs := range m.tables {
		snapshot[t] = append([]bson.Raw(nil), docs...)
	}
	m.mu.RUnlock()

	err := run(ctx.WithContext(c, context.WithValue(c.Context, memoryTxKey{}, true)))
	if err != nil {
		m.mu.Lock()
		m.tables = snapshot
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *memory) removeAt(table domain.Table, idx []int) {
	drop := make(map[int]bool, len(idx))
	for _, i := range idx {
		drop[i] = true
	}
	kept := make([]bson.Raw, 0, len(m.tables[table]))
	for i, d := range m.tables[table] {
		if !drop[i] {
			kept = append(kept, d)
		}
	}
	m.tables[table] = kept
}

// find returns the indexes of matching documents in insertion order.
func (m *memory) find(table domain.Table, query interface{}) ([]int, error) {
	var sel bson.Raw
	if query != nil {
		raw, err := bson.Marshal(query)
		if err != nil {
			return nil, err
		}
		sel = raw
	}
	res := []int{}
	for i, doc := range m.tables[table] {
		ok, err := matches(doc, sel)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, i)
		}
	}
	return res, nil
}

func matches(doc, sel bson.Raw) (bool, error) {
	if sel == nil {
		return true, nil
	}
	elems, err := sel.Elements()
	if err != nil {
		return false, err
	}
	for _, e := range elems {
		v, found := lookup(doc, e.Key())
		cond := e.Value()
		if !isOperatorDoc(cond) {
			if !found || !equalValues(v, cond) {
				return false, nil
			}
			continue
		}
		ops, _ := cond.Document().Elements()
		for _, op := range ops {
			ok, err := applyOperator(op.Key(), v, found, op.Value())
			if err != nil || !ok {
				return false, err
			}
		}
	}
	return true, nil
}

func applyOperator(op string, v bson.RawValue, found bool, arg bson.RawValue) (bool, error) {
	switch op {
	case "$in":
		vals, err := arg.Array().Values()
		if err != nil {
			return false, err
		}
		for _, a := range vals {
			if found && equalValues(v, a) {
				return true, nil
			}
		}
		return false, nil
	case "$ne":
		return !found || !equalValues(v, arg), nil
	case "$gt", "$gte", "$lt", "$lte":
		if !found {
			return false, nil
		}
		cmp, ok := compareValues(v, arg)
		if !ok {
			return false, nil
		}
		switch op {
		case "$gt":
			return cmp > 0, nil
		case "$gte":
			return cmp >= 0, nil
		case "$lt":
			return cmp < 0, nil
		default:
			return cmp <= 0, nil
		}
	}
	return false, xerrors.Errorf("unsupported operator %s", op)
}

func isOperatorDoc(v bson.RawValue) bool {
	if v.Type != bsontype.EmbeddedDocument {
		return false
	}
	elems, err := v.Document().Elements()
	if err != nil || len(elems) == 0 {
		return false
	}
	return strings.HasPrefix(elems[0].Key(), "$")
}

func lookup(doc bson.Raw, key string) (bson.RawValue, bool) {
	v, err := doc.LookupErr(strings.Split(key, ".")...)
	if err != nil {
		return bson.RawValue{}, false
	}
	return v, true
}

func equalValues(a, b bson.RawValue) bool {
	if cmp, ok := compareValues(a, b); ok {
		return cmp == 0
	}
	return a.Type == b.Type && bytes.Equal(a.Value, b.Value)
}

// compareValues orders numbers, strings, booleans and datetimes. ok is false for other types.
func compareValues(a, b bson.RawValue) (int, bool) {
	if ai, ok := toInt64(a); ok {
		if bi, ok := toInt64(b); ok {
			switch {
			case ai < bi:
				return -1, true
			case ai > bi:
				return 1, true
			}
			return 0, true
		}
	}
	if af, ok := toFloat64(a); ok {
		if bf, ok := toFloat64(b); ok {
			switch {
			case af < bf:
				return -1, true
			case af > bf:
				return 1, true
			}
			return 0, true
		}
	}
	if a.Type != b.Type {
		return 0, false
	}
	switch a.Type {
	case bsontype.String:
		return strings.Compare(a.StringValue(), b.StringValue()), true
	case bsontype.Boolean:
		ab, bb := a.Boolean(), b.Boolean()
		switch {
		case ab == bb:
			return 0, true
		case !ab:
			return -1, true
		}
		return 1, true
	case bsontype.DateTime:
		at, bt := a.Time(), b.Time()
		switch {
		case at.Before(bt):
			return -1, true
		case at.After(bt):
			return 1, true
		}
		return 0, true
	case bsontype.Null:
		return 0, true
	}
	return 0, false
}

func toInt64(v bson.RawValue) (int64, bool) {
	switch v.Type {
	case bsontype.Int32:
		return int64(v.Int32()), true
	case bsontype.Int64:
		return v.Int64(), true
	}
	return 0, false
}

func toFloat64(v bson.RawValue) (float64, bool) {
	switch v.Type {
	case bsontype.Int32:
		return float64(v.Int32()), true
	case bsontype.Int64:
		return float64(v.Int64()), true
	case bsontype.Double:
		return v.Double(), true
	}
	return 0, false
}

// setField replaces or appends a top level field.
func setField(doc bson.Raw, key string, val bson.RawValue) (bson.Raw, error) {
	d := bson.D{}
	if err := bson.Unmarshal(doc, &d); err != nil {
		return nil, err
	}
	replaced := false
	for i := range d {
		if d[i].Key == key {
			d[i].Value = val
			replaced = true
		}
	}
	if !replaced {
		d = append(d, bson.E{Key: key, Value: val})
	}
	return bson.Marshal(d)
}
