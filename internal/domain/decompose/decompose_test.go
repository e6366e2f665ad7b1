package decompose_test

import (
	"testing"

	"github.com/okian/nameprep/internal/domain/decompose"
	"github.com/smartystreets/goconvey/convey"
)

func TestDecompose(t *testing.T) {
	convey.Convey("Given the name decomposer", t, func() {
		convey.Convey("When the given name is empty", func() {
			d := decompose.Decompose("")

			convey.Convey("Then every part is empty", func() {
				convey.So(d, convey.ShouldResemble, decompose.Decomposition{})
			})
		})

		convey.Convey("When the given name has a single word", func() {
			d := decompose.Decompose("chris")

			convey.Convey("Then only the first word is set", func() {
				convey.So(d.FirstWord, convey.ShouldEqual, "chris")
				convey.So(d.FinalWord, convey.ShouldBeEmpty)
				convey.So(d.AllButFirst, convey.ShouldBeEmpty)
				convey.So(d.AllButFinal, convey.ShouldBeEmpty)
				convey.So(d.MiddleInitial, convey.ShouldBeEmpty)
				convey.So(d.FinalInitial, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When the given name has two words", func() {
			d := decompose.Decompose("mary jane")

			convey.So(d.FirstWord, convey.ShouldEqual, "mary")
			convey.So(d.FinalWord, convey.ShouldEqual, "jane")
			convey.So(d.AllButFirst, convey.ShouldEqual, "jane")
			convey.So(d.AllButFinal, convey.ShouldEqual, "mary")
			convey.So(d.MiddleInitial, convey.ShouldEqual, "j")
			convey.So(d.FinalInitial, convey.ShouldEqual, "j")
		})

		convey.Convey("When the given name has three words", func() {
			d := decompose.Decompose("john jacob schmidt")

			convey.Convey("Then multi-word parts concatenate without separators", func() {
				convey.So(d.FirstWord, convey.ShouldEqual, "john")
				convey.So(d.FinalWord, convey.ShouldEqual, "schmidt")
				convey.So(d.AllButFirst, convey.ShouldEqual, "jacobschmidt")
				convey.So(d.AllButFinal, convey.ShouldEqual, "johnjacob")
				convey.So(d.MiddleInitial, convey.ShouldEqual, "j")
				convey.So(d.FinalInitial, convey.ShouldEqual, "s")
			})
		})
	})
}
