package jwt

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestJWT(t *testing.T) {
	Convey("访问令牌签发与校验", t, func() {
		j := NewJWT("secret", time.Hour)

		Convey("签发后可以解析出身份", func() {
			token, err := j.GenerateToken("u-1", "alice", "buyer")
			So(err, ShouldBeNil)

			claims, err := j.ValidateToken(token)
			So(err, ShouldBeNil)
			So(claims.UserID, ShouldEqual, "u-1")
			So(claims.Username, ShouldEqual, "alice")
			So(claims.Role, ShouldEqual, "buyer")
			So(claims.Subject, ShouldEqual, "u-1")
		})

		Convey("密钥不同的令牌无效", func() {
			token, _ := NewJWT("other", time.Hour).GenerateToken("u-1", "alice", "buyer")
			_, err := j.ValidateToken(token)
			So(err, ShouldEqual, ErrInvalidToken)
		})

		Convey("过期令牌返回 ErrExpiredToken", func() {
			j.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
			token, err := j.GenerateToken("u-1", "alice", "buyer")
			So(err, ShouldBeNil)

			_, err = NewJWT("secret", time.Hour).ValidateToken(token)
			So(err, ShouldEqual, ErrExpiredToken)
		})

		Convey("格式错误", func() {
			_, err := j.ValidateToken("not.a.token")
			So(err, ShouldEqual, ErrInvalidToken)
		})
	})
}
