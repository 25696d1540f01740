package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
)

var (
	mockCTX = ctx.Background()
)

const (
	mockTable = domain.TableOfferings
)

type dummy struct {
	Dummy  string `bson:"dummy"`
	Update string `bson:"updatekey"`
	Rank   int64  `bson:"rank"`
}

type memorySuite struct {
	suite.Suite
	im Mongo
}

func TestMemorySuite(t *testing.T) {
	suite.Run(t, new(memorySuite))
}

func (q *memorySuite) SetupTest() {
	q.im = NewMemory()
}

func (q *memorySuite) TestFindOne() {
	err := q.im.Upsert(mockCTX, mockTable, bson.M{"dummy": "test-value11155"}, bson.M{"dummy": "test-value11155", "updatekey": "test-value222255"})
	q.NoError(err)

	result := &dummy{}
	q.Require().NoError(q.im.FindOne(mockCTX, mockTable, bson.M{"dummy": "test-value11155"}, result))
	q.Equal(dummy{Dummy: "test-value11155", Update: "test-value222255"}, *result)

	err = q.im.FindOne(mockCTX, mockTable, bson.M{"dummy": "test-value11166"}, result)
	q.Equal(ErrNotFound, err)
}

func (q *memorySuite) TestUpsertReplaces() {
	q.NoError(q.im.Upsert(mockCTX, mockTable, bson.M{"dummy": "a"}, dummy{Dummy: "a", Update: "1"}))
	q.NoError(q.im.Upsert(mockCTX, mockTable, bson.M{"dummy": "a"}, dummy{Dummy: "a", Update: "2"}))

	n, err := q.im.Count(mockCTX, mockTable, bson.M{"dummy": "a"})
	q.NoError(err)
	q.Equal(1, n)

	result := dummy{}
	q.NoError(q.im.FindOne(mockCTX, mockTable, bson.M{"dummy": "a"}, &result))
	q.Equal("2", result.Update)
}

func (q *memorySuite) TestSearch() {
	for i, name := range []string{"c", "a", "b", "d"} {
		q.NoError(q.im.Insert(mockCTX, mockTable, dummy{Dummy: name, Update: "x", Rank: int64(i)}))
	}
	q.NoError(q.im.Insert(mockCTX, mockTable, dummy{Dummy: "z", Update: "y"}))

	res := []dummy{}
	q.NoError(q.im.Search(mockCTX, mockTable, 0, 0, "dummy", bson.M{"updatekey": "x"}, &res))
	q.Equal([]string{"a", "b", "c", "d"}, names(res))

	res = []dummy{}
	q.NoError(q.im.Search(mockCTX, mockTable, 1, 2, "-dummy", bson.M{"updatekey": "x"}, &res))
	q.Equal([]string{"c", "b"}, names(res))

	ptrs := []*dummy{}
	q.NoError(q.im.SearchNSorts(mockCTX, mockTable, 0, 10, []string{"updatekey", "-rank"}, bson.M{}, &ptrs))
	q.Len(ptrs, 5)
	q.Equal("d", ptrs[0].Dummy)
	q.Equal("z", ptrs[4].Dummy)

	res = []dummy{}
	q.NoError(q.im.Search(mockCTX, mockTable, 0, 0, "", bson.M{"rank": bson.M{"$gte": 1, "$lt": 3}}, &res))
	q.Equal([]string{"a", "b"}, names(res))

	res = []dummy{}
	q.NoError(q.im.Search(mockCTX, mockTable, 0, 0, "dummy", bson.M{"dummy": bson.M{"$in": bson.A{"d", "z", "q"}}}, &res))
	q.Equal([]string{"d", "z"}, names(res))

	q.Error(q.im.Search(mockCTX, mockTable, 0, 0, "", bson.M{}, res))
}

func (q *memorySuite) TestRemove() {
	q.NoError(q.im.Insert(mockCTX, mockTable, dummy{Dummy: "a"}))
	q.NoError(q.im.Insert(mockCTX, mockTable, dummy{Dummy: "a"}))
	q.NoError(q.im.Insert(mockCTX, mockTable, dummy{Dummy: "b"}))

	q.NoError(q.im.Remove(mockCTX, mockTable, bson.M{"dummy": "b"}))
	q.Equal(ErrNotFound, q.im.Remove(mockCTX, mockTable, bson.M{"dummy": "b"}))

	n, err := q.im.RemoveAll(mockCTX, mockTable, bson.M{"dummy": "a"})
	q.NoError(err)
	q.Equal(int64(2), n)

	cnt, err := q.im.Count(mockCTX, mockTable, bson.M{})
	q.NoError(err)
	q.Equal(0, cnt)
}

func (q *memorySuite) TestPatch() {
	q.NoError(q.im.Insert(mockCTX, mockTable, dummy{Dummy: "a", Update: "old"}))
	q.NoError(q.im.Insert(mockCTX, mockTable, dummy{Dummy: "a", Update: "old"}))

	q.NoError(q.im.Patch(mockCTX, mockTable, bson.M{"dummy": "a"}, bson.M{"updatekey": "new"}))
	n, _ := q.im.Count(mockCTX, mockTable, bson.M{"updatekey": "new"})
	q.Equal(1, n)

	q.NoError(q.im.Patch(mockCTX, mockTable, bson.M{"dummy": "a"}, bson.M{"updatekey": "all", "rank": 9}, WithPatchMany(true)))
	n, _ = q.im.Count(mockCTX, mockTable, bson.M{"updatekey": "all", "rank": 9})
	q.Equal(2, n)

	q.Equal(ErrNotFound, q.im.Patch(mockCTX, mockTable, bson.M{"dummy": "none"}, bson.M{"updatekey": "x"}))
}

func (q *memorySuite) TestIncrement() {
	type counter struct {
		Key   string `bson:"key"`
		Count int64  `bson:"count"`
	}

	res := counter{}
	q.NoError(q.im.Increment(mockCTX, mockTable, bson.M{"key": "offerings"}, &res, "count", 1))
	q.Equal(counter{Key: "offerings", Count: 1}, res)

	q.NoError(q.im.Increment(mockCTX, mockTable, bson.M{"key": "offerings"}, &res, "count", int64(2)))
	q.Equal(int64(3), res.Count)

	n, _ := q.im.Count(mockCTX, mockTable, bson.M{"key": "offerings"})
	q.Equal(1, n)
}

func (q *memorySuite) TestRunWithTransaction() {
	q.NoError(q.im.Insert(mockCTX, mockTable, dummy{Dummy: "kept"}))

	errAbort := errors.New("abort")
	err := q.im.RunWithTransaction(mockCTX, func(c ctx.Ctx) error {
		q.NoError(q.im.Insert(c, mockTable, dummy{Dummy: "dropped"}))
		q.NoError(q.im.Remove(c, mockTable, bson.M{"dummy": "kept"}))
		return errAbort
	})
	q.Equal(errAbort, err)

	n, _ := q.im.Count(mockCTX, mockTable, bson.M{"dummy": "kept"})
	q.Equal(1, n)
	n, _ = q.im.Count(mockCTX, mockTable, bson.M{"dummy": "dropped"})
	q.Equal(0, n)

	err = q.im.RunWithTransaction(mockCTX, func(c ctx.Ctx) error {
		// nested calls join the outer transaction
		return q.im.RunWithTransaction(c, func(c ctx.Ctx) error {
			return q.im.Insert(c, mockTable, dummy{Dummy: "committed"})
		})
	})
	q.NoError(err)
	n, _ = q.im.Count(mockCTX, mockTable, bson.M{"dummy": "committed"})
	q.Equal(1, n)
}

func names(ds []dummy) []string {
	res := []string{}
	for _, d := range ds {
		res = append(res, d.Dummy)
	}
	return res
}
