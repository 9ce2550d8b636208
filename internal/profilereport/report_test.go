package profilereport

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/stylematch/pkg/logger"
)

func page(ids ...int64) Page {
	p := Page{Total: len(ids)}
	for i, id := range ids {
		p.Products = append(p.Products, Product{
			ID:           id,
			Brand:        "Brand",
			Name:         "Product",
			MatchScore:   float64(90 - i*10),
			MatchQuality: []string{"excellent", "good", "fair", "poor"}[min(i, 3)],
		})
	}
	return p
}

func TestOverlaps(t *testing.T) {
	Convey("Given three ranked pages", t, func() {
		results := []ProfileResult{
			{Profile: Profile{Name: "A"}, Page: page(1, 2, 3, 4)},
			{Profile: Profile{Name: "B"}, Page: page(3, 4, 5, 6)},
			{Profile: Profile{Name: "C"}, Page: page(7)},
		}

		Convey("When overlaps use a window of 2", func() {
			out := Overlaps(results, 2)

			Convey("Then every pair is compared within the window", func() {
				So(out, ShouldHaveLength, 3)
				So(out[0], ShouldResemble, Overlap{A: "A", B: "B", Shared: 0, Window: 2})
				So(out[1].Shared, ShouldEqual, 0)
			})
		})

		Convey("When overlaps use a window of 4", func() {
			out := Overlaps(results, 4)

			Convey("Then shared ids are counted", func() {
				So(out[0].Shared, ShouldEqual, 2)
				So(out[0].Percent(), ShouldEqual, 50.0)
			})
		})
	})
}

func TestWriteReport(t *testing.T) {
	Convey("Given a result with more than five products", t, func() {
		r := ProfileResult{
			Profile: Profile{Name: "Minimal Maven", Aesthetic: "minimalist"},
			Page:    page(1, 2, 3, 4, 5, 6, 7),
		}
		r.Page.Products[0].AITags = &Tags{Aesthetics: []string{"minimalist"}, Palette: "neutral"}
		r.Page.AverageScore = 61.24

		var buf bytes.Buffer
		So(WriteReport(&buf, []ProfileResult{r}, 20), ShouldBeNil)
		out := buf.String()

		Convey("Then the summary, top and bottom sections are printed", func() {
			So(out, ShouldContainSubstring, "Minimal Maven")
			So(out, ShouldContainSubstring, "Total matches: 7")
			So(out, ShouldContainSubstring, "Good+ matches on page: 2")
			So(out, ShouldContainSubstring, "Average score: 61.2")
			So(out, ShouldContainSubstring, "palette=neutral")
			So(out, ShouldContainSubstring, "Lowest qualifying")
			So(out, ShouldContainSubstring, "CROSS-PROFILE OVERLAP (top 20)")
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a service answering previews", t, func() {
		So(logger.Init(), ShouldBeNil)

		var previews atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/healthz":
				_, _ = io.WriteString(w, `{"status":"ok"}`)
			case "/preview/matches":
				previews.Add(1)
				var p Profile
				if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.Limit != 50 {
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				resp := page(1, 2)
				if p.Aesthetic == "streetwear" {
					resp = page(3)
				}
				_ = json.NewEncoder(w).Encode(resp)
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer srv.Close()

		cfg := &Config{BaseURL: srv.URL, Limit: 50, TopN: 20, Workers: 2, Timeout: time.Second}

		Convey("When the sample profiles are run", func() {
			var buf bytes.Buffer
			err := Run(context.Background(), cfg, SampleProfiles(), &buf)

			Convey("Then every profile is previewed and compared", func() {
				So(err, ShouldBeNil)
				So(previews.Load(), ShouldEqual, 5)
				out := buf.String()
				for _, p := range SampleProfiles() {
					So(out, ShouldContainSubstring, p.Name)
				}
				So(out, ShouldContainSubstring, "Minimal Maven vs Streetwear Steve: 0/20 overlap (0%)")
				So(out, ShouldContainSubstring, "Minimal Maven vs Classic Claire: 2/20 overlap (10%)")
				So(strings.Count(out, " vs "), ShouldEqual, 10)
			})
		})

		Convey("When the service rejects a preview", func() {
			cfg.Limit = 7
			err := Run(context.Background(), cfg, SampleProfiles(), io.Discard)

			Convey("Then the run fails", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "status 400")
			})
		})

		Convey("When the service is down", func() {
			cfg.BaseURL = "http://127.0.0.1:1"
			err := Run(context.Background(), cfg, SampleProfiles(), io.Discard)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "health check")
		})
	})
}
