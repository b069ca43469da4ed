package api

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestErrorHelpers(t *testing.T) {
	Convey("Given the error helpers", t, func() {
		cause := errors.New("unexpected EOF")

		Convey("WrapKind matches both the kind and the cause", func() {
			err := WrapKind("api.post_score", ErrBadRequest, cause)
			So(errors.Is(err, ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.post_score: bad request: unexpected EOF")
		})

		Convey("NewKind carries only the kind", func() {
			err := NewKind("api.stats", ErrMethod)
			So(errors.Is(err, ErrMethod), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.stats: method not allowed")
		})

		Convey("Wrap keeps nil as nil", func() {
			So(Wrap("api.x", nil), ShouldBeNil)
			err := Wrap("api.x", cause)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.x: unexpected EOF")
		})

		Convey("Error types map to stable codes", func() {
			So(getErrorType(500), ShouldEqual, "server_error")
			So(getErrorType(413), ShouldEqual, "too_large")
			So(getErrorType(415), ShouldEqual, "unsupported_media_type")
			So(getErrorType(404), ShouldEqual, "not_found")
			So(getErrorType(400), ShouldEqual, "client_error")
			So(getErrorSeverity(503), ShouldEqual, "high")
			So(getErrorSeverity(400), ShouldEqual, "medium")
		})
	})
}
