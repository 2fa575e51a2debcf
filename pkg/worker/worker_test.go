package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/KrishalDhungana/NBABrain/pkg/worker"
	"github.com/KrishalDhungana/NBABrain/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPool(t *testing.T) {
	Convey("Given a pool of four workers", t, func() {
		pool := worker.NewPool(4, worker.WithName("test-pool"), worker.WithLogger(logger.Nop()))
		So(pool.Size(), ShouldEqual, 4)

		Convey("When mapping over items that finish out of order", func() {
			items := []int{5, 1, 4, 2, 3, 0, 6, 7}
			out, err := worker.Map(context.Background(), pool, items, func(_ context.Context, n int) (int, error) {
				time.Sleep(time.Duration(n) * time.Millisecond)
				return n * n, nil
			})

			Convey("Then results keep input order", func() {
				So(err, ShouldBeNil)
				So(out, ShouldResemble, []int{25, 1, 16, 4, 9, 0, 36, 49})
			})
		})

		Convey("When no items are given", func() {
			out, err := worker.Map(context.Background(), pool, []string(nil), func(context.Context, string) (int, error) {
				return 0, nil
			})
			So(err, ShouldBeNil)
			So(out, ShouldBeEmpty)
		})

		Convey("When a task fails", func() {
			boom := errors.New("boom")
			var ran atomic.Int32
			items := make([]int, 100)
			for i := range items {
				items[i] = i
			}
			out, err := worker.Map(context.Background(), pool, items, func(ctx context.Context, n int) (int, error) {
				ran.Add(1)
				if n == 3 {
					return 0, boom
				}
				return n, nil
			})

			Convey("Then the error is returned and no partial result leaks", func() {
				So(errors.Is(err, boom), ShouldBeTrue)
				So(out, ShouldBeNil)
				So(ran.Load(), ShouldBeLessThanOrEqualTo, 100)
			})
		})

		Convey("When the caller's context is already canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := worker.Map(ctx, pool, []int{1, 2, 3}, func(context.Context, int) (int, error) {
				return 1, nil
			})
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})

	Convey("A non-positive size falls back to the CPU count", t, func() {
		So(worker.NewPool(0).Size(), ShouldBeGreaterThan, 0)
	})
}
