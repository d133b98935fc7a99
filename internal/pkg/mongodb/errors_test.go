package mongodb

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestTranslate(t *testing.T) {
	Convey("驱动错误转换", t, func() {
		So(Translate(nil), ShouldBeNil)
		So(Translate(mongo.ErrNoDocuments), ShouldEqual, ErrNotFound)

		dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}}}
		So(Translate(dup), ShouldEqual, ErrDuplicate)

		other := errors.New("connection refused")
		So(Translate(other), ShouldEqual, other)
	})
}
