package matching

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/okian/stylematch/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// rankedSource serves items with preset final scores.
type rankedSource struct {
	users  map[int64]model.UserProfile
	items  []model.Item
	scores map[int64]float64
}

func (s *rankedSource) add(id int64, category model.Category, brand string, score float64) {
	if s.scores == nil {
		s.scores = map[int64]float64{}
	}
	s.items = append(s.items, model.Item{
		ID:    id,
		Brand: brand,
		Classification: &model.Classification{
			Category:  category,
			PriceTier: model.PriceTierMidRange,
		},
	})
	s.scores[id] = score
}

// score replaces the real scorer so tests can pin exact totals.
func (s *rankedSource) score(u model.UserProfile, it model.Item, cfg Config, rej model.RejectionSet) ScoreBreakdown {
	b := Score(u, it, cfg, rej)
	b.Total = s.scores[it.ID]
	return b
}

func (s *rankedSource) LoadUser(_ context.Context, id int64) (model.UserProfile, error) {
	u, ok := s.users[id]
	if !ok {
		return model.UserProfile{}, model.ErrUserNotFound
	}
	return u, nil
}

func (s *rankedSource) LoadRejectedItemIDs(context.Context, int64) (model.RejectionSet, error) {
	return nil, nil
}

func (s *rankedSource) QueryCandidateItems(context.Context, model.CandidateQuery) ([]model.Item, error) {
	return s.items, nil
}

func (s *rankedSource) LoadItem(context.Context, int64) (model.Item, error) {
	return model.Item{}, model.ErrItemNotFound
}

func newTestCurator(src *rankedSource, cfg Config, opts ...Option) *Curator {
	c, err := NewCurator(src, cfg, opts...)
	So(err, ShouldBeNil)
	c.score = src.score
	return c
}

func testUser() model.UserProfile {
	return model.UserProfile{ID: 7, Aesthetic: model.AestheticMinimalist}
}

var fixedTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestCurator_Curate(t *testing.T) {
	ctx := context.Background()

	Convey("Given 20 tops scoring 90 down to 71 and 5 bottoms scoring 70 down to 66", t, func() {
		src := &rankedSource{users: map[int64]model.UserProfile{7: testUser()}}
		for i := 0; i < 20; i++ {
			src.add(int64(i+1), model.CategoryTops, fmt.Sprintf("brand-%d", i), 90-float64(i))
		}
		for i := 0; i < 5; i++ {
			src.add(int64(i+21), model.CategoryBottoms, fmt.Sprintf("brand-b%d", i), 70-float64(i))
		}
		cfg := DefaultConfig()
		cfg.Curation.MaxCategoryFraction = 0.3
		c := newTestCurator(src, cfg,
			WithClock(func() time.Time { return fixedTime }),
			WithIDGenerator(func() string { return "zine-1" }),
		)

		Convey("When curating ten items", func() {
			coll, err := c.Curate(ctx, StoredUser{ID: 7}, 10)
			So(err, ShouldBeNil)

			Convey("Then the collection reaches the target by relaxing caps", func() {
				So(len(coll.Items), ShouldEqual, 10)
				So(coll.Relaxed, ShouldBeTrue)
				ids := map[int64]bool{}
				for _, it := range coll.Items {
					ids[it.Item.ID] = true
				}
				So(ids[1] && ids[2] && ids[3], ShouldBeTrue)
				So(ids[21] && ids[22] && ids[23], ShouldBeTrue)
			})

			Convey("And the hero is the best item with categories alternating after it", func() {
				So(coll.Items[0].Item.ID, ShouldEqual, 1)
				So(coll.Items[1].Item.CategoryKey(), ShouldEqual, "bottoms")
				So(coll.Items[2].Item.CategoryKey(), ShouldEqual, "tops")
				So(coll.Items[3].Item.CategoryKey(), ShouldEqual, "bottoms")
			})

			Convey("And the metadata summarizes the selection", func() {
				So(coll.ID, ShouldEqual, "zine-1")
				So(coll.UserID, ShouldEqual, 7)
				So(coll.CreatedAt, ShouldEqual, fixedTime)
				So(coll.Stats.TotalItems, ShouldEqual, 10)
				So(coll.Stats.Categories, ShouldResemble, map[string]int{"tops": 7, "bottoms": 3})
				So(coll.Stats.PriceTiers, ShouldResemble, map[string]int{"mid-range": 10})
				So(coll.Stats.MaxScore, ShouldEqual, 90)
				So(coll.Stats.MinScore, ShouldEqual, 68)
				So(len(coll.Stats.Brands), ShouldEqual, 10)
			})
		})

		Convey("When no size is requested", func() {
			coll, err := c.Curate(ctx, StoredUser{ID: 7}, 0)
			So(err, ShouldBeNil)
			So(len(coll.Items), ShouldEqual, 12)
		})
	})

	Convey("Given a catalog diverse enough to respect every cap", t, func() {
		src := &rankedSource{users: map[int64]model.UserProfile{7: testUser()}}
		cats := []model.Category{model.CategoryTops, model.CategoryBottoms, model.CategoryShoes, model.CategoryBags}
		for i := 0; i < 16; i++ {
			src.add(int64(i+1), cats[i%4], fmt.Sprintf("brand-%d", i%5), 95-float64(i))
		}
		c := newTestCurator(src, DefaultConfig())

		coll, err := c.Curate(ctx, StoredUser{ID: 7}, 5)
		So(err, ShouldBeNil)

		Convey("Then no category or brand exceeds its cap", func() {
			So(len(coll.Items), ShouldEqual, 5)
			So(coll.Relaxed, ShouldBeFalse)
			for _, n := range coll.Stats.Categories {
				So(n, ShouldBeLessThanOrEqualTo, 2)
			}
			for _, n := range coll.Stats.Brands {
				So(n, ShouldBeLessThanOrEqualTo, 2)
			}
		})

		Convey("Then no two neighbours share a category", func() {
			for i := 1; i < len(coll.Items); i++ {
				So(coll.Items[i].Item.CategoryKey(), ShouldNotEqual, coll.Items[i-1].Item.CategoryKey())
			}
		})
	})

	Convey("Given a pool smaller than the minimum collection size", t, func() {
		src := &rankedSource{users: map[int64]model.UserProfile{7: testUser()}}
		src.add(1, model.CategoryTops, "a", 80)
		src.add(2, model.CategoryTops, "a", 70)
		c := newTestCurator(src, DefaultConfig())

		coll, err := c.Curate(ctx, StoredUser{ID: 7}, 10)

		Convey("Then the pool is returned without error", func() {
			So(err, ShouldBeNil)
			So(len(coll.Items), ShouldEqual, 2)
			So(coll.Relaxed, ShouldBeFalse)
			So(coll.Stats.AverageScore, ShouldEqual, 75)
		})
	})

	Convey("Given an empty catalog", t, func() {
		src := &rankedSource{users: map[int64]model.UserProfile{7: testUser()}}
		c := newTestCurator(src, DefaultConfig())
		coll, err := c.Curate(ctx, TransientUser{Profile: testUser()}, 0)
		So(err, ShouldBeNil)
		So(coll.Items, ShouldBeEmpty)
		So(coll.Stats.AverageScore, ShouldEqual, 0)
		So(coll.UserID, ShouldEqual, 0)
	})

	Convey("Given a larger pool than the oversample limit", t, func() {
		src := &rankedSource{users: map[int64]model.UserProfile{7: testUser()}}
		for i := 0; i < 30; i++ {
			src.add(int64(i+1), model.CategoryTops, "solo", 90-float64(i))
		}
		cfg := DefaultConfig()
		cfg.Curation.OversampleFactor = 1
		c := newTestCurator(src, cfg)

		coll, err := c.Curate(ctx, StoredUser{ID: 7}, 4)
		So(err, ShouldBeNil)

		Convey("Then only the top of the pool is considered", func() {
			So(len(coll.Items), ShouldEqual, 4)
			for _, it := range coll.Items {
				So(it.Item.ID, ShouldBeLessThanOrEqualTo, 4)
			}
		})
	})
}

func TestSelectDiverse_RelaxationOrder(t *testing.T) {
	Convey("Given deferred items from categories of different representation", t, func() {
		src := &rankedSource{}
		src.add(1, model.CategoryTops, "x", 95)
		src.add(2, model.CategoryTops, "y", 94)
		src.add(3, model.CategoryBottoms, "x", 90)
		src.add(4, model.CategoryBottoms, "x", 80)
		pool := make([]RankedResult, 0, len(src.items))
		for _, it := range src.items {
			pool = append(pool, RankedResult{Item: it, Score: ScoreBreakdown{Total: src.scores[it.ID]}})
		}
		rules := CurationRules{MaxCategoryFraction: 0.25, MaxBrandFraction: 0.25}

		Convey("When filling three slots with caps of one", func() {
			selected, relaxed := selectDiverse(pool, 3, rules)

			Convey("Then the less represented category fills first, using counts frozen before the fill", func() {
				So(relaxed, ShouldBeTrue)
				So(len(selected), ShouldEqual, 3)
				So(selected[0].Item.ID, ShouldEqual, 1)
				So(selected[1].Item.ID, ShouldEqual, 3)
				So(selected[2].Item.ID, ShouldEqual, 4)
			})
		})

		Convey("When the greedy pass already reaches the target", func() {
			selected, relaxed := selectDiverse(pool, 1, rules)
			So(relaxed, ShouldBeFalse)
			So(len(selected), ShouldEqual, 1)
		})
	})

	Convey("Given caps computed from small targets", t, func() {
		So(capFor(1, 0.4), ShouldEqual, 1)
		So(capFor(12, 0.4), ShouldEqual, 4)
		So(capFor(12, 0.5), ShouldEqual, 6)
		So(capFor(10, 0.3), ShouldEqual, 3)
	})
}

func TestArrange(t *testing.T) {
	mk := func(id int64, cat model.Category, score float64) RankedResult {
		return RankedResult{
			Item:  model.Item{ID: id, Classification: &model.Classification{Category: cat}},
			Score: ScoreBreakdown{Total: score},
		}
	}

	Convey("Given two or fewer items", t, func() {
		in := []RankedResult{mk(1, model.CategoryTops, 10), mk(2, model.CategoryTops, 20)}
		out := arrange(in)
		So(out[0].Item.ID, ShouldEqual, 1)
		So(out[1].Item.ID, ShouldEqual, 2)
	})

	Convey("Given a selection whose best item is not first", t, func() {
		in := []RankedResult{
			mk(1, model.CategoryTops, 80),
			mk(2, model.CategoryTops, 78),
			mk(3, model.CategoryShoes, 90),
			mk(4, model.CategoryShoes, 70),
			mk(5, model.CategoryBags, 60),
		}
		out := arrange(in)

		Convey("Then the hero leads and categories alternate while possible", func() {
			ids := make([]int64, len(out))
			for i, r := range out {
				ids[i] = r.Item.ID
			}
			So(ids, ShouldResemble, []int64{3, 1, 4, 2, 5})
		})

		Convey("Then the input slice is left untouched", func() {
			So(in[0].Item.ID, ShouldEqual, 1)
			So(in[2].Item.ID, ShouldEqual, 3)
		})
	})

	Convey("Given only one category", t, func() {
		in := []RankedResult{mk(1, model.CategoryTops, 50), mk(2, model.CategoryTops, 60), mk(3, model.CategoryTops, 40)}
		out := arrange(in)
		So(out[0].Item.ID, ShouldEqual, 2)
		So(out[1].Item.ID, ShouldEqual, 1)
		So(out[2].Item.ID, ShouldEqual, 3)
	})
}
