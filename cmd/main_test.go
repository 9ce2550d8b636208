package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/stylematch/internal/adapters/cache"
	"github.com/okian/stylematch/internal/adapters/repository"
	service "github.com/okian/stylematch/internal/app"
	"github.com/okian/stylematch/internal/config"
	"github.com/okian/stylematch/pkg/logger"
)

const fixturePath = "../internal/adapters/repository/testdata/catalog.yaml"

func TestOpenStore(t *testing.T) {
	convey.Convey("Given the default configuration", t, func() {
		ctx := context.Background()
		cfg := config.New()
		log := logger.NewNop()

		convey.Convey("When a fixture is configured", func() {
			cfg.Store.FixturePath = fixturePath
			store, err := openStore(ctx, cfg, log)

			convey.Convey("Then a seeded memory store is returned", func() {
				convey.So(err, convey.ShouldBeNil)
				mem, ok := store.(*repository.MemoryStore)
				convey.So(ok, convey.ShouldBeTrue)
				users, items := mem.Counts()
				convey.So(users, convey.ShouldEqual, 2)
				convey.So(items, convey.ShouldEqual, 6)
			})
		})

		convey.Convey("When the fixture is missing", func() {
			cfg.Store.FixturePath = "does-not-exist.yaml"
			_, err := openStore(ctx, cfg, log)
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("When the driver is unknown", func() {
			cfg.Store.Driver = "sqlite"
			_, err := openStore(ctx, cfg, log)
			convey.So(errors.Is(err, repository.ErrUnsupportedDriver), convey.ShouldBeTrue)
		})

		convey.Convey("When Redis is configured", func() {
			mr := miniredis.RunT(t)
			cfg.Store.FixturePath = fixturePath
			cfg.Redis.Addr = mr.Addr()

			store, err := openStore(ctx, cfg, log)
			convey.So(err, convey.ShouldBeNil)
			defer func() { _ = store.Close() }()

			convey.Convey("Then profiles are read through the cache", func() {
				_, ok := store.(*cache.ProfileStore)
				convey.So(ok, convey.ShouldBeTrue)

				u, err := store.LoadUser(ctx, 1)
				convey.So(err, convey.ShouldBeNil)
				convey.So(u.ID, convey.ShouldEqual, int64(1))
				convey.So(mr.Exists("stylematch:user:1"), convey.ShouldBeTrue)
			})
		})
	})
}

func TestNewHandler(t *testing.T) {
	convey.Convey("Given a started service over the sample catalog", t, func() {
		ctx := context.Background()
		cfg := config.New()
		cfg.Store.FixturePath = fixturePath

		store, err := openStore(ctx, cfg, logger.NewNop())
		convey.So(err, convey.ShouldBeNil)
		svc := service.New(
			service.WithLogger(logger.NewNop()),
			service.WithStore(store),
			service.WithMatchingConfig(cfg.Matching),
		)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		h := newHandler(ctx, svc, cfg)

		for _, target := range []string{"/", "/healthz", "/stats", "/api-docs", "/openapi.yaml", "/users/1/matches", "/users/1/zine"} {
			convey.Convey("Then GET "+target+" succeeds", func() {
				w := httptest.NewRecorder()
				h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, http.NoBody))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			})
		}

		convey.Convey("Then an unknown user is not found", func() {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/99/matches", http.NoBody))
			convey.So(w.Code, convey.ShouldEqual, http.StatusNotFound)
		})
	})
}
