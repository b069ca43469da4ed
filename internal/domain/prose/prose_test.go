package prose_test

import (
	"testing"

	"github.com/okian/resumeguide/internal/domain/prose"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPolish(t *testing.T) {
	Convey("Given project text", t, func() {
		Convey("When it is empty", func() {
			So(prose.Polish(""), ShouldEqual, "")
		})

		Convey("When it has several sloppy sentences", func() {
			got := prose.Polish("built a REST api in go.  deployed it to AWS!wrote tests? ")

			Convey("Then each sentence should be trimmed and capitalized", func() {
				So(got, ShouldEqual, "Built a rest api in go. Deployed it to aws. Wrote tests")
			})
		})

		Convey("When it contains only punctuation and spaces", func() {
			So(prose.Polish(" . ! ? "), ShouldEqual, "")
		})

		Convey("When a sentence starts with a non-ASCII letter", func() {
			So(prose.Polish("élan vital"), ShouldEqual, "Élan vital")
		})
	})
}
