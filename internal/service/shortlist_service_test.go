package service

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"carmarket/internal/model/account"
	"carmarket/internal/model/listing"
	"carmarket/internal/pkg/apperr"
	"carmarket/internal/pkg/id"
)

type shortlistFixture struct {
	svc        ShortlistService
	listings   *memListings
	shortlists *memShortlists
	users      *memUsers
	names      *memNameCache
	buyerID    string
	agent      *account.User
	seller     *account.User
}

func newShortlistFixture() *shortlistFixture {
	f := &shortlistFixture{
		listings:   newMemListings(),
		shortlists: newMemShortlists(),
		users:      newMemUsers(),
		names:      newMemNameCache(),
		buyerID:    id.New(),
	}
	f.agent = seedUser(f.users, id.New(), "agent007", account.RoleAgent)
	f.seller = seedUser(f.users, id.New(), "sally", account.RoleSeller)
	f.svc = NewShortlistService(f.shortlists, f.listings, f.users, WithNameCache(f.names))
	return f
}

func (f *shortlistFixture) create(mk, model string, year int, agentID, sellerID string) *listing.Listing {
	l := &listing.Listing{ID: id.New(), Make: mk, Model: model, Year: year, Price: 10000, AgentID: agentID, SellerID: sellerID}
	So(f.listings.Create(context.Background(), l), ShouldBeNil)
	return l
}

func TestShortlistService_SaveListing(t *testing.T) {
	Convey("收藏车源", t, func() {
		ctx := context.Background()
		f := newShortlistFixture()
		l := f.create("Toyota", "Camry", 2020, f.agent.ID, f.seller.ID)

		Convey("重复收藏只保留一份，收藏单不改动计数", func() {
			res, err := f.svc.SaveListing(ctx, f.buyerID, l.ID)
			So(err, ShouldBeNil)
			So(res.Added, ShouldBeTrue)

			res, err = f.svc.SaveListing(ctx, f.buyerID, l.ID)
			So(err, ShouldBeNil)
			So(res.Added, ShouldBeFalse)

			sl, _ := f.shortlists.FindByUser(ctx, f.buyerID)
			So(sl.Listings, ShouldResemble, []string{l.ID})

			got, _ := f.listings.FindByID(ctx, l.ID)
			So(got.Shortlists, ShouldEqual, 0)
		})

		Convey("先计数再收藏，一次收藏只计一次", func() {
			listings := NewListingService(f.listings, f.shortlists, nil)
			So(listings.TrackShortlist(ctx, l.ID), ShouldBeNil)
			_, err := f.svc.SaveListing(ctx, f.buyerID, l.ID)
			So(err, ShouldBeNil)

			m, err := listings.GetMetrics(ctx, l.ID)
			So(err, ShouldBeNil)
			So(m.Shortlists, ShouldEqual, 1)
		})

		Convey("车源不存在返回 NotFound", func() {
			_, err := f.svc.SaveListing(ctx, f.buyerID, id.New())
			So(apperr.KindOf(err), ShouldEqual, apperr.KindNotFound)
			_, err = f.svc.SaveListing(ctx, f.buyerID, "nope")
			So(apperr.KindOf(err), ShouldEqual, apperr.KindNotFound)
		})
	})
}

func TestShortlistService_GetShortlist(t *testing.T) {
	Convey("查看收藏单", t, func() {
		ctx := context.Background()
		f := newShortlistFixture()

		Convey("尚未收藏时返回空列表", func() {
			items, err := f.svc.GetShortlist(ctx, f.buyerID)
			So(err, ShouldBeNil)
			So(items, ShouldNotBeNil)
			So(items, ShouldBeEmpty)
		})

		Convey("展开经纪人与卖家的显示名", func() {
			l := f.create("Toyota", "Camry", 2020, f.agent.ID, f.seller.ID)
			_, err := f.svc.SaveListing(ctx, f.buyerID, l.ID)
			So(err, ShouldBeNil)

			items, err := f.svc.GetShortlist(ctx, f.buyerID)
			So(err, ShouldBeNil)
			So(len(items), ShouldEqual, 1)
			So(items[0].ID, ShouldEqual, l.ID)
			So(items[0].AgentName, ShouldEqual, "agent007")
			So(items[0].SellerName, ShouldEqual, "sally")

			name, ok := f.names.GetName(ctx, f.agent.ID)
			So(ok, ShouldBeTrue)
			So(name, ShouldEqual, "agent007")
		})

		Convey("无法解析的用户显示占位名", func() {
			l := f.create("Honda", "Civic", 2019, id.New(), "legacy-seller")
			_, err := f.svc.SaveListing(ctx, f.buyerID, l.ID)
			So(err, ShouldBeNil)

			items, err := f.svc.GetShortlist(ctx, f.buyerID)
			So(err, ShouldBeNil)
			So(items[0].AgentName, ShouldEqual, DefaultUnavailableName)
			So(items[0].SellerName, ShouldEqual, DefaultUnavailableName)
		})

		Convey("用户存储故障同样退化为占位名", func() {
			l := f.create("Ford", "Focus", 2018, "", f.seller.ID)
			_, err := f.svc.SaveListing(ctx, f.buyerID, l.ID)
			So(err, ShouldBeNil)
			f.users.failFindByID = errors.New("timeout")

			svc := NewShortlistService(f.shortlists, f.listings, f.users, WithUnavailableName("N/A"))
			items, err := svc.GetShortlist(ctx, f.buyerID)
			So(err, ShouldBeNil)
			So(items[0].AgentName, ShouldEqual, "")
			So(items[0].SellerName, ShouldEqual, "N/A")
		})

		Convey("缓存命中时不再查询用户", func() {
			l := f.create("Mazda", "3", 2021, f.agent.ID, f.seller.ID)
			_, err := f.svc.SaveListing(ctx, f.buyerID, l.ID)
			So(err, ShouldBeNil)
			f.names.SetName(ctx, f.seller.ID, "cached-sally")
			f.names.SetName(ctx, f.agent.ID, "cached-agent")
			f.users.failFindByID = errors.New("must not be called")

			items, err := f.svc.GetShortlist(ctx, f.buyerID)
			So(err, ShouldBeNil)
			So(items[0].SellerName, ShouldEqual, "cached-sally")
			So(items[0].AgentName, ShouldEqual, "cached-agent")
		})

		Convey("已删除的车源被跳过", func() {
			keep := f.create("Toyota", "Camry", 2020, f.agent.ID, f.seller.ID)
			gone := f.create("Honda", "Civic", 2019, f.agent.ID, f.seller.ID)
			_, _ = f.svc.SaveListing(ctx, f.buyerID, keep.ID)
			_, _ = f.svc.SaveListing(ctx, f.buyerID, gone.ID)
			So(f.listings.Delete(ctx, gone.ID), ShouldBeNil)

			items, err := f.svc.GetShortlist(ctx, f.buyerID)
			So(err, ShouldBeNil)
			So(len(items), ShouldEqual, 1)
			So(items[0].ID, ShouldEqual, keep.ID)
		})
	})
}

func TestShortlistService_RemoveAndSearch(t *testing.T) {
	Convey("取消收藏与搜索", t, func() {
		ctx := context.Background()
		f := newShortlistFixture()
		camry := f.create("Toyota", "Camry", 2020, f.agent.ID, f.seller.ID)
		civic := f.create("Honda", "Civic", 2019, f.agent.ID, f.seller.ID)
		other := f.create("Toyota", "Corolla", 2018, f.agent.ID, f.seller.ID)
		_, _ = f.svc.SaveListing(ctx, f.buyerID, camry.ID)
		_, _ = f.svc.SaveListing(ctx, f.buyerID, civic.ID)

		Convey("第二次取消返回 NotFound", func() {
			So(f.svc.RemoveFromShortlist(ctx, f.buyerID, camry.ID), ShouldBeNil)
			So(apperr.KindOf(f.svc.RemoveFromShortlist(ctx, f.buyerID, camry.ID)), ShouldEqual, apperr.KindNotFound)
		})

		Convey("文本搜索限定在自己的收藏单内", func() {
			items, err := f.svc.SearchShortlist(ctx, f.buyerID, &SearchShortlistRequest{Query: "toyota"})
			So(err, ShouldBeNil)
			So(len(items), ShouldEqual, 1)
			So(items[0].ID, ShouldEqual, camry.ID)
		})

		Convey("按车源ID精确查找", func() {
			items, err := f.svc.SearchShortlist(ctx, f.buyerID, &SearchShortlistRequest{ListingID: civic.ID})
			So(err, ShouldBeNil)
			So(len(items), ShouldEqual, 1)

			items, err = f.svc.SearchShortlist(ctx, f.buyerID, &SearchShortlistRequest{ListingID: other.ID})
			So(err, ShouldBeNil)
			So(items, ShouldBeEmpty)
		})

		Convey("查询条件必须且只能有一个", func() {
			_, err := f.svc.SearchShortlist(ctx, f.buyerID, &SearchShortlistRequest{})
			So(apperr.KindOf(err), ShouldEqual, apperr.KindBadRequest)

			_, err = f.svc.SearchShortlist(ctx, f.buyerID, &SearchShortlistRequest{Query: "x", ListingID: civic.ID})
			So(apperr.KindOf(err), ShouldEqual, apperr.KindBadRequest)
		})
	})
}
