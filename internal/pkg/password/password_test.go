package password

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPassword(t *testing.T) {
	Convey("凭据哈希与校验", t, func() {
		hashed, err := Hash("s3cret")
		So(err, ShouldBeNil)
		So(hashed, ShouldNotEqual, "s3cret")

		So(Verify("s3cret", hashed), ShouldBeTrue)
		So(Verify("wrong", hashed), ShouldBeFalse)

		Convey("超过 72 字节的密码拒绝哈希", func() {
			_, err := Hash(strings.Repeat("p", MaxLength+1))
			So(err, ShouldEqual, ErrTooLong)

			_, err = Hash(strings.Repeat("p", MaxLength))
			So(err, ShouldBeNil)
		})

		Convey("遗留明文凭据", func() {
			So(Verify("plain", "plain"), ShouldBeTrue)
			So(Verify("plain", "other"), ShouldBeFalse)
		})
	})
}
