package tokenstore_test

import (
	"path/filepath"
	"testing"

	"github.com/sunugal/releves/internal/adapters/tokenstore"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStore(t *testing.T) {
	Convey("Given a store on a fresh path", t, func() {
		path := filepath.Join(t.TempDir(), "nested", "token")
		store := tokenstore.New(path)

		Convey("Then loading before any save yields no token and no error", func() {
			tok, err := store.Load()
			So(err, ShouldBeNil)
			So(tok, ShouldEqual, "")
		})

		Convey("When a token is saved", func() {
			So(store.Save("tok-abc"), ShouldBeNil)

			Convey("Then it loads back verbatim", func() {
				tok, err := store.Load()
				So(err, ShouldBeNil)
				So(tok, ShouldEqual, "tok-abc")
			})

			Convey("Then saving again overwrites it", func() {
				So(store.Save("tok-def"), ShouldBeNil)
				tok, _ := store.Load()
				So(tok, ShouldEqual, "tok-def")
			})

			Convey("Then clearing removes it", func() {
				So(store.Clear(), ShouldBeNil)
				tok, err := store.Load()
				So(err, ShouldBeNil)
				So(tok, ShouldEqual, "")
			})
		})

		Convey("When clearing an absent token", func() {
			Convey("Then it is not an error", func() {
				So(store.Clear(), ShouldBeNil)
			})
		})
	})
}
