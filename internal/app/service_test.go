package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Adelson021/rfv/internal/adapters/ingest"
	"github.com/Adelson021/rfv/internal/adapters/repository"
	service "github.com/Adelson021/rfv/internal/app"
	"github.com/Adelson021/rfv/internal/domain/actions"
	"github.com/Adelson021/rfv/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

// sampleCSV spreads four customers across the quartile buckets: customer 1
// grades AAA, 2 BBB, 3 CCC, and 4 DDD.
const sampleCSV = `ID_cliente,DiaCompra,CodigoCompra,ValorTotal
1,2026-06-30,ord-1a,100
1,2026-06-28,ord-1b,100
1,2026-06-26,ord-1c,100
1,2026-06-24,ord-1d,100
2,2026-06-20,ord-2a,100
2,2026-06-15,ord-2b,100
2,2026-06-10,ord-2c,100
3,2026-06-10,ord-3a,100
3,2026-06-05,ord-3b,100
4,2026-05-31,ord-4a,100
`

func newStartedService(opts ...service.Option) *service.Service {
	_ = logger.Init()
	svc := service.New(opts...)
	So(svc.Start(context.Background()), ShouldBeNil)
	return svc
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		_ = logger.Init()
		svc := service.New()

		Convey("When starting it", func() {
			err := svc.Start(context.Background())

			Convey("Then it should start cleanly", func() {
				So(err, ShouldBeNil)
			})

			Convey("And starting again should be a no-op", func() {
				So(svc.Start(context.Background()), ShouldBeNil)
			})

			Convey("And stats should report the started state", func() {
				stats := svc.GetStats()
				So(stats.Started, ShouldBeTrue)
				So(stats.Uploads, ShouldEqual, 0)
				So(stats.Datasets, ShouldEqual, 0)
			})

			svc.Stop()
		})

		Convey("When stopping it twice", func() {
			So(svc.Start(context.Background()), ShouldBeNil)

			Convey("Then the second stop should be harmless", func() {
				svc.Stop()
				So(svc.Stop, ShouldNotPanic)
			})
		})
	})
}

func TestServiceUpload(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := newStartedService()
		defer svc.Stop()

		Convey("When uploading a well-formed CSV", func() {
			summary, err := svc.Upload(ctx, strings.NewReader(sampleCSV), "vendas.csv", time.Time{})

			Convey("Then the summary should describe the scored dataset", func() {
				So(err, ShouldBeNil)
				So(summary.ID, ShouldNotBeEmpty)
				So(summary.Filename, ShouldEqual, "vendas.csv")
				So(summary.Rows, ShouldEqual, 10)
				So(summary.Customers, ShouldEqual, 4)
				So(summary.ReferenceDate, ShouldEqual, "2026-06-30")
				So(summary.Duplicate, ShouldBeFalse)
			})

			Convey("Then the quartile cuts should reflect the dataset", func() {
				So(summary.Cuts.Recency.Q25, ShouldEqual, 7.5)
				So(summary.Cuts.Recency.Q50, ShouldEqual, 15)
				So(summary.Cuts.Recency.Q75, ShouldEqual, 22.5)
			})

			Convey("And uploading the identical bytes again", func() {
				again, err := svc.Upload(ctx, strings.NewReader(sampleCSV), "vendas_copy.csv", time.Time{})

				Convey("Then it should answer from the recall cache", func() {
					So(err, ShouldBeNil)
					So(again.ID, ShouldEqual, summary.ID)
					So(again.Duplicate, ShouldBeTrue)
					So(svc.Datasets(ctx), ShouldHaveLength, 1)
				})
			})

			Convey("And deleting the dataset", func() {
				So(svc.DeleteDataset(ctx, summary.ID), ShouldBeNil)

				Convey("Then it should be gone", func() {
					_, err := svc.Dataset(ctx, summary.ID)
					So(err, ShouldEqual, repository.ErrNotFound)
				})

				Convey("Then re-uploading the same bytes creates a fresh dataset", func() {
					fresh, err := svc.Upload(ctx, strings.NewReader(sampleCSV), "vendas.csv", time.Time{})
					So(err, ShouldBeNil)
					So(fresh.Duplicate, ShouldBeFalse)
					So(fresh.ID, ShouldNotEqual, summary.ID)
				})
			})
		})

		Convey("When uploading with an explicit reference date", func() {
			reference := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
			summary, err := svc.Upload(ctx, strings.NewReader(sampleCSV), "vendas.csv", reference)

			Convey("Then recency should be counted from that date", func() {
				So(err, ShouldBeNil)
				So(summary.ReferenceDate, ShouldEqual, "2026-07-10")

				rows, _, err := svc.Segments(ctx, summary.ID, "", 1, 0)
				So(err, ShouldBeNil)
				So(rows[0].RecencyDays, ShouldEqual, 10)
			})
		})

		Convey("When uploading an empty body", func() {
			_, err := svc.Upload(ctx, strings.NewReader(""), "vendas.csv", time.Time{})

			Convey("Then it should return ErrEmptyUpload", func() {
				So(err, ShouldEqual, service.ErrEmptyUpload)
			})
		})

		Convey("When the upload exceeds the size cap", func() {
			small := newStartedService(service.WithMaxUploadBytes(16))
			defer small.Stop()

			_, err := small.Upload(ctx, strings.NewReader(sampleCSV), "vendas.csv", time.Time{})

			Convey("Then it should return ErrUploadTooLarge", func() {
				So(err, ShouldWrap, service.ErrUploadTooLarge)
			})
		})

		Convey("When the file format is unsupported", func() {
			_, err := svc.Upload(ctx, strings.NewReader(sampleCSV), "vendas.txt", time.Time{})

			Convey("Then the ingest error should surface", func() {
				So(err, ShouldWrap, ingest.ErrUnsupportedFormat)
			})
		})

		Convey("When the file is missing required columns", func() {
			_, err := svc.Upload(ctx, strings.NewReader("a,b\n1,2\n"), "vendas.csv", time.Time{})

			Convey("Then the ingest error should surface", func() {
				So(err, ShouldWrap, ingest.ErrMissingColumns)
			})
		})
	})
}

func TestServiceQueries(t *testing.T) {
	Convey("Given a service with one scored dataset", t, func() {
		ctx := context.Background()
		svc := newStartedService()
		defer svc.Stop()

		summary, err := svc.Upload(ctx, strings.NewReader(sampleCSV), "vendas.csv", time.Time{})
		So(err, ShouldBeNil)

		Convey("When listing datasets", func() {
			list := svc.Datasets(ctx)

			Convey("Then the uploaded dataset should be listed", func() {
				So(list, ShouldHaveLength, 1)
				So(list[0].ID, ShouldEqual, summary.ID)
			})
		})

		Convey("When previewing raw transactions", func() {
			Convey("Then the default preview returns five rows", func() {
				rows, err := svc.Preview(ctx, summary.ID, 0)
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 5)
				So(rows[0].CustomerID, ShouldEqual, "1")
				So(rows[0].PurchaseDate, ShouldEqual, "2026-06-30")
			})

			Convey("Then an explicit row count is honored", func() {
				rows, err := svc.Preview(ctx, summary.ID, 2)
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 2)
			})

			Convey("Then asking for more rows than exist returns them all", func() {
				rows, err := svc.Preview(ctx, summary.ID, 100)
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 10)
			})
		})

		Convey("When fetching the segmented table", func() {
			Convey("Then all rows come back ordered by customer id", func() {
				rows, total, err := svc.Segments(ctx, summary.ID, "", 0, 0)
				So(err, ShouldBeNil)
				So(total, ShouldEqual, 4)
				So(rows, ShouldHaveLength, 4)
				So(rows[0].Score, ShouldEqual, "AAA")
				So(rows[3].Score, ShouldEqual, "DDD")
			})

			Convey("Then a score filter is case-insensitive", func() {
				rows, total, err := svc.Segments(ctx, summary.ID, "aaa", 0, 0)
				So(err, ShouldBeNil)
				So(total, ShouldEqual, 1)
				So(rows[0].CustomerID, ShouldEqual, "1")
			})

			Convey("Then pagination slices without changing the total", func() {
				rows, total, err := svc.Segments(ctx, summary.ID, "", 2, 1)
				So(err, ShouldBeNil)
				So(total, ShouldEqual, 4)
				So(rows, ShouldHaveLength, 2)
				So(rows[0].CustomerID, ShouldEqual, "2")
			})

			Convey("Then an offset past the end returns no rows", func() {
				rows, total, err := svc.Segments(ctx, summary.ID, "", 0, 100)
				So(err, ShouldBeNil)
				So(total, ShouldEqual, 4)
				So(rows, ShouldBeEmpty)
			})
		})

		Convey("When fetching the score distribution", func() {
			dist, err := svc.Distribution(ctx, summary.ID)

			Convey("Then every score appears with its action", func() {
				So(err, ShouldBeNil)
				So(dist, ShouldHaveLength, 4)
				for _, sc := range dist {
					So(sc.Count, ShouldEqual, 1)
					So(sc.Action, ShouldNotBeEmpty)
				}

				Convey("And ties break by score ascending", func() {
					So(dist[0].Score, ShouldEqual, "AAA")
					So(dist[3].Score, ShouldEqual, "DDD")
				})
			})
		})

		Convey("When fetching the top customers", func() {
			top, err := svc.Top(ctx, summary.ID, 10)

			Convey("Then only AAA customers are returned", func() {
				So(err, ShouldBeNil)
				So(top, ShouldHaveLength, 1)
				So(top[0].CustomerID, ShouldEqual, "1")
				So(top[0].Score, ShouldEqual, "AAA")
			})
		})

		Convey("When querying an unknown dataset id", func() {
			Convey("Then every accessor returns ErrNotFound", func() {
				_, err := svc.Dataset(ctx, "missing")
				So(err, ShouldEqual, repository.ErrNotFound)

				_, err = svc.Preview(ctx, "missing", 0)
				So(err, ShouldEqual, repository.ErrNotFound)

				_, _, err = svc.Segments(ctx, "missing", "", 0, 0)
				So(err, ShouldEqual, repository.ErrNotFound)

				_, err = svc.Distribution(ctx, "missing")
				So(err, ShouldEqual, repository.ErrNotFound)

				_, err = svc.Top(ctx, "missing", 10)
				So(err, ShouldEqual, repository.ErrNotFound)

				So(svc.DeleteDataset(ctx, "missing"), ShouldEqual, repository.ErrNotFound)
			})
		})

		Convey("When fetching the action catalog", func() {
			all, fallback := svc.Actions(ctx)

			Convey("Then the built-in catalog is exposed", func() {
				So(all, ShouldContainKey, "AAA")
				So(fallback, ShouldEqual, actions.DefaultAction)
			})
		})
	})

	Convey("Given a service with action overrides", t, func() {
		ctx := context.Background()
		svc := newStartedService(
			service.WithActions(map[string]string{"DDD": "reconquista agressiva"}),
			service.WithDefaultAction("sem ação"),
		)
		defer svc.Stop()

		summary, err := svc.Upload(ctx, strings.NewReader(sampleCSV), "vendas.csv", time.Time{})
		So(err, ShouldBeNil)

		Convey("When reading the scored rows", func() {
			rows, _, err := svc.Segments(ctx, summary.ID, "", 0, 0)
			So(err, ShouldBeNil)

			Convey("Then overridden and fallback actions apply", func() {
				So(rows[3].Action, ShouldEqual, "reconquista agressiva") // DDD
				So(rows[1].Action, ShouldEqual, "sem ação")              // BBB is unmapped
			})
		})
	})
}
