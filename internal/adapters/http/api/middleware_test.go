package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KrishalDhungana/NBABrain/internal/adapters/repository"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStatusRecorder(t *testing.T) {
	Convey("Given a recorder in front of a handler", t, func() {
		rec := &statusRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}

		Convey("Store errors keep the code the handler chose", func() {
			writeStoreError(rec, repository.ErrNoSnapshot)
			So(rec.status, ShouldEqual, http.StatusServiceUnavailable)
			So(rec.errorCode(), ShouldEqual, "no_snapshot")
		})

		Convey("Validation errors are tagged bad_request", func() {
			writeError(rec, http.StatusBadRequest, "bad_request", errors.New("limit"))
			So(rec.errorCode(), ShouldEqual, "bad_request")
		})

		Convey("Responses written outside writeError fall back to the status", func() {
			http.NotFound(rec, httptest.NewRequest(http.MethodPost, "/teams", nil))
			So(rec.errorCode(), ShouldEqual, "not_found")

			other := &statusRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}
			other.WriteHeader(http.StatusBadGateway)
			So(other.errorCode(), ShouldEqual, "internal_error")
		})

		Convey("A plain writer is left untouched", func() {
			w := httptest.NewRecorder()
			writeError(w, http.StatusNotFound, "not_found", nil)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}
