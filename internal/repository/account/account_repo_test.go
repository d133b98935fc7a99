package account

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"carmarket/internal/model/account"
	"carmarket/internal/pkg/mongodb"
)

const (
	usersNS    = "used_car_marketplace.users"
	profilesNS = "used_car_marketplace.profiles"
)

func TestUserRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("find by filter", func(mt *mtest.T) {
		repo := NewUserRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "u-1"},
			{Key: "username", Value: "Al.ce"},
			{Key: "role", Value: "buyer"},
		}))

		Convey("用户名按转义后的正则不区分大小写匹配", mt.T, func() {
			suspended := false
			users, err := repo.Find(ctx, account.UserFilter{Username: "al.CE", Role: "buyer", Suspended: &suspended})
			So(err, ShouldBeNil)
			So(len(users), ShouldEqual, 1)
			So(users[0].Username, ShouldEqual, "Al.ce")

			filter := mt.GetStartedEvent().Command.Lookup("filter").Document()
			So(filter.Lookup("username", "$regex").StringValue(), ShouldEqual, `al\.CE`)
			So(filter.Lookup("username", "$options").StringValue(), ShouldEqual, "i")
			So(filter.Lookup("role").StringValue(), ShouldEqual, "buyer")
			So(filter.Lookup("suspended").Boolean(), ShouldBeFalse)
			_, err = filter.LookupErr("email")
			So(err, ShouldNotBeNil)
		})
	})

	mt.Run("find nothing", func(mt *mtest.T) {
		repo := NewUserRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch))

		Convey("没有匹配时返回空切片", mt.T, func() {
			users, err := repo.Find(ctx, account.UserFilter{Email: "nobody"})
			So(err, ShouldBeNil)
			So(users, ShouldNotBeNil)
			So(len(users), ShouldEqual, 0)
		})
	})

	mt.Run("find by username missing", func(mt *mtest.T) {
		repo := NewUserRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch))

		Convey("不存在时返回 ErrNotFound", mt.T, func() {
			_, err := repo.FindByUsername(ctx, "ghost")
			So(err, ShouldEqual, mongodb.ErrNotFound)
		})
	})

	mt.Run("suspend by role", func(mt *mtest.T) {
		repo := NewUserRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}, bson.E{Key: "nModified", Value: 3}))

		Convey("批量更新只命中状态不同的同角色用户", mt.T, func() {
			n, err := repo.SetSuspendedByRole(ctx, "seller", true)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 3)

			evt := mt.GetStartedEvent()
			So(evt.CommandName, ShouldEqual, "update")
			So(evt.Command.Lookup("update").StringValue(), ShouldEqual, "users")

			stmt := evt.Command.Lookup("updates", "0").Document()
			So(stmt.Lookup("multi").Boolean(), ShouldBeTrue)
			So(stmt.Lookup("q", "role").StringValue(), ShouldEqual, "seller")
			So(stmt.Lookup("q", "suspended", "$ne").Boolean(), ShouldBeTrue)
			So(stmt.Lookup("u", "$set", "suspended").Boolean(), ShouldBeTrue)
		})
	})

	mt.Run("suspend by role none", func(mt *mtest.T) {
		repo := NewUserRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		Convey("没有需要变更的用户时返回 0 且不报错", mt.T, func() {
			n, err := repo.SetSuspendedByRole(ctx, "seller", false)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 0)
		})
	})

	mt.Run("update unmatched", func(mt *mtest.T) {
		repo := NewUserRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		Convey("更新不存在的用户返回 ErrNotFound", mt.T, func() {
			So(repo.SetSuspended(ctx, "ghost", true), ShouldEqual, mongodb.ErrNotFound)
		})
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		repo := NewUserRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key error"}))

		Convey("用户名重复返回 ErrDuplicate", mt.T, func() {
			err := repo.Create(ctx, &account.User{ID: "u-2", Username: "alice"})
			So(err, ShouldEqual, mongodb.ErrDuplicate)
		})
	})
}

func TestProfileRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("search", func(mt *mtest.T) {
		repo := NewProfileRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, profilesNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "p-1"},
			{Key: "role", Value: "seller"},
			{Key: "rights", Value: bson.A{"create_listing"}},
		}))

		Convey("角色名与权限都按不区分大小写的正则匹配", mt.T, func() {
			profiles, err := repo.Search(ctx, "^SELL")
			So(err, ShouldBeNil)
			So(len(profiles), ShouldEqual, 1)
			So(profiles[0].Role, ShouldEqual, "seller")

			filter := mt.GetStartedEvent().Command.Lookup("filter").Document()
			So(filter.Lookup("$or", "0", "role", "$regex").StringValue(), ShouldEqual, "^SELL")
			So(filter.Lookup("$or", "0", "role", "$options").StringValue(), ShouldEqual, "i")
			So(filter.Lookup("$or", "1", "rights", "$regex").StringValue(), ShouldEqual, "^SELL")
			So(filter.Lookup("$or", "1", "rights", "$options").StringValue(), ShouldEqual, "i")
		})
	})

	mt.Run("suspend missing", func(mt *mtest.T) {
		repo := NewProfileRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		Convey("档案不存在返回 ErrNotFound", mt.T, func() {
			So(repo.SetSuspended(ctx, "pilot", true), ShouldEqual, mongodb.ErrNotFound)
		})
	})
}
