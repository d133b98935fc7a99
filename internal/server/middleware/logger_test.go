package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	. "github.com/smartystreets/goconvey/convey"

	"carmarket/internal/pkg/apperr"
	"carmarket/internal/pkg/ctxutil"
	httputil "carmarket/internal/pkg/http"
)

func newAccessLogEngine(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.Use(AccessLog(zerolog.New(buf)))
	r.GET("/listings/:id", func(c *gin.Context) {
		ctx := ctxutil.WithIdentity(c.Request.Context(), ctxutil.Identity{UserID: "u-9", Role: "seller"})
		c.Request = c.Request.WithContext(ctx)
		if c.Param("id") == "broken" {
			httputil.WriteError(c, apperr.Internal(errors.New("socket closed"), "failed to load listing"))
			return
		}
		c.Status(http.StatusNoContent)
	})
	r.POST("/listings", func(c *gin.Context) {
		var body struct {
			Make string `json:"make" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			httputil.WriteBindError(c, err)
			return
		}
		c.Status(http.StatusCreated)
	})
	return r
}

func lastEntry(buf *bytes.Buffer) map[string]any {
	entry := map[string]any{}
	So(json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry), ShouldBeNil)
	return entry
}

func TestAccessLog(t *testing.T) {
	Convey("访问日志", t, func() {
		var buf bytes.Buffer
		r := newAccessLogEngine(&buf)

		Convey("记录路由模板与调用方角色", func() {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/listings/l-1", nil))
			So(w.Code, ShouldEqual, http.StatusNoContent)

			entry := lastEntry(&buf)
			So(entry["level"], ShouldEqual, "info")
			So(entry["route"], ShouldEqual, "/listings/:id")
			So(entry["path"], ShouldEqual, "/listings/l-1")
			So(entry["user_id"], ShouldEqual, "u-9")
			So(entry["role"], ShouldEqual, "seller")
			So(entry["request_id"], ShouldEqual, w.Header().Get(RequestIDHeader))
			So(entry, ShouldNotContainKey, "error_kind")
		})

		Convey("内部错误输出类别与底层原因，响应只给对外消息", func() {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/listings/broken", nil))
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(w.Body.String(), ShouldNotContainSubstring, "socket closed")

			entry := lastEntry(&buf)
			So(entry["level"], ShouldEqual, "error")
			So(entry["error_kind"], ShouldEqual, "InternalError")
			So(entry["errors"], ShouldContainSubstring, "socket closed")
		})

		Convey("参数绑定失败记为 BadRequest", func() {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/listings", bytes.NewBufferString(`{}`)))
			So(w.Code, ShouldEqual, http.StatusBadRequest)

			entry := lastEntry(&buf)
			So(entry["level"], ShouldEqual, "warn")
			So(entry["error_kind"], ShouldEqual, "BadRequest")
			So(entry, ShouldNotContainKey, "user_id")
		})

		Convey("未匹配的路由", func() {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(lastEntry(&buf)["route"], ShouldEqual, "unmatched")
		})
	})
}
