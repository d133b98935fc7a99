package listing

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"carmarket/internal/model/listing"
	"carmarket/internal/pkg/mongodb"
)

const ns = "used_car_marketplace.used_car_listings"

func TestListingRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("find missing listing", func(mt *mtest.T) {
		repo := NewListingRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		Convey("不存在时返回 ErrNotFound", mt.T, func() {
			_, err := repo.FindByID(ctx, "missing")
			So(err, ShouldEqual, mongodb.ErrNotFound)
		})
	})

	mt.Run("find listing", func(mt *mtest.T) {
		repo := NewListingRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "l-1"},
			{Key: "make", Value: "Toyota"},
			{Key: "model", Value: "Camry"},
			{Key: "year", Value: 2020},
			{Key: "views", Value: int64(7)},
		}))

		Convey("解码车源文档", mt.T, func() {
			l, err := repo.FindByID(ctx, "l-1")
			So(err, ShouldBeNil)
			So(l.Make, ShouldEqual, "Toyota")
			So(l.Year, ShouldEqual, 2020)
			So(l.Views, ShouldEqual, 7)
		})
	})

	mt.Run("increment unmatched", func(mt *mtest.T) {
		repo := NewListingRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		Convey("未匹配任何车源返回 ErrNotFound", mt.T, func() {
			So(repo.Increment(ctx, "missing", listing.CounterViews), ShouldEqual, mongodb.ErrNotFound)
		})
	})

	mt.Run("increment", func(mt *mtest.T) {
		repo := NewListingRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		Convey("匹配后成功", mt.T, func() {
			So(repo.Increment(ctx, "l-1", listing.CounterShortlists), ShouldBeNil)
		})
	})

	mt.Run("delete unmatched", func(mt *mtest.T) {
		repo := NewListingRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		Convey("删除不存在的车源返回 ErrNotFound", mt.T, func() {
			So(repo.Delete(ctx, "missing"), ShouldEqual, mongodb.ErrNotFound)
		})
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		repo := NewListingRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key error"}))

		Convey("主键冲突返回 ErrDuplicate", mt.T, func() {
			err := repo.Create(ctx, &listing.Listing{ID: "l-1", Make: "Toyota", Model: "Camry", Year: 2020, Price: 1})
			So(err, ShouldEqual, mongodb.ErrDuplicate)
		})
	})

	mt.Run("search text within ids", func(mt *mtest.T) {
		repo := NewListingRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "l-1"},
			{Key: "make", Value: "Toyota"},
			{Key: "year", Value: 2015},
		}))

		Convey("限定ID集合后按品牌、型号、年份文本做转义正则匹配", mt.T, func() {
			got, err := repo.Search(ctx, listing.Query{Text: "01.", IDs: []string{"l-1", "l-2"}})
			So(err, ShouldBeNil)
			So(len(got), ShouldEqual, 1)

			filter := mt.GetStartedEvent().Command.Lookup("filter").Document()
			So(filter.Lookup("_id", "$in", "1").StringValue(), ShouldEqual, "l-2")
			So(filter.Lookup("$or", "0", "make", "$regex").StringValue(), ShouldEqual, `01\.`)
			So(filter.Lookup("$or", "0", "make", "$options").StringValue(), ShouldEqual, "i")
			So(filter.Lookup("$or", "1", "model", "$options").StringValue(), ShouldEqual, "i")
			year := filter.Lookup("$or", "2", "$expr", "$regexMatch").Document()
			So(year.Lookup("input", "$toString").StringValue(), ShouldEqual, "$year")
			So(year.Lookup("regex").StringValue(), ShouldEqual, `01\.`)
		})
	})

	mt.Run("search empty id set", func(mt *mtest.T) {
		repo := NewListingRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		Convey("空ID集合仍然下发 $in 而不是放开过滤", mt.T, func() {
			got, err := repo.Search(ctx, listing.Query{IDs: []string{}})
			So(err, ShouldBeNil)
			So(len(got), ShouldEqual, 0)

			filter := mt.GetStartedEvent().Command.Lookup("filter").Document()
			_, err = filter.LookupErr("_id", "$in")
			So(err, ShouldBeNil)
			_, err = filter.LookupErr("$or")
			So(err, ShouldNotBeNil)
		})
	})
}
