package catalog_test

import (
	"errors"
	"testing"

	"github.com/okian/resumeguide/internal/domain/catalog"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCatalog_Lookup(t *testing.T) {
	Convey("Given the default catalog", t, func() {
		c := catalog.Default()

		Convey("Then it should offer the four fixed roles in display order", func() {
			So(c.Len(), ShouldEqual, 4)
			So(c.Roles(), ShouldResemble, []string{"software engineer", "data scientist", "web developer", "ai engineer"})
		})

		Convey("When looking up a role with mixed case and padding", func() {
			skills, err := c.Lookup("  Software Engineer ")

			Convey("Then it should return the ordered skills", func() {
				So(err, ShouldBeNil)
				So(skills, ShouldResemble, []string{"Python", "Java", "DSA", "OOPs", "Git", "SQL"})
			})
		})

		Convey("When the caller mutates a returned slice", func() {
			skills, err := c.Lookup("web developer")
			So(err, ShouldBeNil)
			skills[0] = "COBOL"

			Convey("Then the catalog should be unchanged", func() {
				again, _ := c.Lookup("web developer")
				So(again[0], ShouldEqual, "HTML")
			})
		})

		Convey("When looking up an unknown role", func() {
			_, err := c.Lookup("astronaut")

			Convey("Then it should return an UnknownRoleError", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, catalog.ErrUnknownRole), ShouldBeTrue)
				var roleErr *catalog.UnknownRoleError
				So(errors.As(err, &roleErr), ShouldBeTrue)
				So(roleErr.Role, ShouldEqual, "astronaut")
				So(c.Has("astronaut"), ShouldBeFalse)
			})
		})

		Convey("When taking entries", func() {
			entries := c.Entries()

			Convey("Then they should mirror the lookups", func() {
				So(len(entries), ShouldEqual, 4)
				So(entries[3].Role, ShouldEqual, "ai engineer")
				So(entries[3].Skills, ShouldResemble, []string{"Python", "Deep Learning", "NLP", "TensorFlow", "PyTorch"})
			})
		})
	})
}

func TestCatalog_New(t *testing.T) {
	Convey("Given catalog entries", t, func() {
		Convey("When an entry has no skills", func() {
			_, err := catalog.New([]catalog.Entry{{Role: "chef"}})
			So(errors.Is(err, catalog.ErrInvalidCatalog), ShouldBeTrue)
		})

		Convey("When two roles normalize to the same key", func() {
			_, err := catalog.New([]catalog.Entry{
				{Role: "Chef", Skills: []string{"Knives"}},
				{Role: " chef", Skills: []string{"Sauces"}},
			})
			So(errors.Is(err, catalog.ErrInvalidCatalog), ShouldBeTrue)
		})

		Convey("When a role repeats a skill in another case", func() {
			_, err := catalog.New([]catalog.Entry{{Role: "chef", Skills: []string{"Knives", "knives"}}})
			So(errors.Is(err, catalog.ErrInvalidCatalog), ShouldBeTrue)
		})

		Convey("When a role name is blank", func() {
			_, err := catalog.New([]catalog.Entry{{Role: "  ", Skills: []string{"Knives"}}})
			So(errors.Is(err, catalog.ErrInvalidCatalog), ShouldBeTrue)
		})

		Convey("When built from a map", func() {
			c, err := catalog.FromMap(map[string][]string{
				"Web Developer": {"HTML"},
				"chef":          {"Knives", " Sauces "},
			})

			Convey("Then roles should be sorted and skills trimmed", func() {
				So(err, ShouldBeNil)
				So(c.Roles(), ShouldResemble, []string{"chef", "web developer"})
				skills, _ := c.Lookup("CHEF")
				So(skills, ShouldResemble, []string{"Knives", "Sauces"})
			})
		})
	})
}

func TestNormalize(t *testing.T) {
	Convey("Given role names outside ASCII", t, func() {
		Convey("When a Greek role ends in capital sigma", func() {
			Convey("Then it folds to the final form, like free text does", func() {
				So(catalog.Normalize("  ΟΔΟΣ "), ShouldEqual, "οδος")
			})
		})

		Convey("When a catalog is keyed by such a role", func() {
			c, err := catalog.New([]catalog.Entry{{Role: "ΜΗΧΑΝΙΚΟΣ", Skills: []string{"Go"}}})
			So(err, ShouldBeNil)

			Convey("Then lowercase lookups with the final sigma find it", func() {
				skills, err := c.Lookup("μηχανικος")
				So(err, ShouldBeNil)
				So(skills, ShouldResemble, []string{"Go"})
				So(c.Roles(), ShouldResemble, []string{"μηχανικος"})
			})
		})
	})
}
