package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/greenbin/bunrigo/internal/adapters/http/api"
	"github.com/greenbin/bunrigo/internal/adapters/http/docs"
	"github.com/greenbin/bunrigo/internal/adapters/http/site"
	repository "github.com/greenbin/bunrigo/internal/adapters/repository"
	service "github.com/greenbin/bunrigo/internal/app"
	"github.com/greenbin/bunrigo/internal/config"
	"github.com/greenbin/bunrigo/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			t.Setenv("BUNRIGO_ADDR", ":8080")
			t.Setenv("BUNRIGO_AWARD_POINTS", "25")
			t.Setenv("BUNRIGO_LEADERBOARD_SIZE", "5")

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.AwardPoints, convey.ShouldEqual, 25)
				convey.So(cfg.LeaderboardSize, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := service.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := service.New(
					service.WithStore(repository.NewMemStore()),
					service.WithAward(25),
					service.WithLeaderboardSize(5),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			svc := service.New()
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then HTTP server should be creatable", func() {
				server := api.NewServer(svc, svc, 100)
				convey.So(server, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then metrics manager should be creatable", func() {
				registry := prometheus.NewRegistry()
				manager := metrics.NewManager(metrics.WithPrometheusRegistry(registry))
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing system metrics updater", func() {
			convey.Convey("Then it should stop when the context ends", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startSystemMetricsUpdater(ctx)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing service metrics updater", func() {
			svc := service.New(service.WithStore(repository.NewMemStore()))
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then it should stop when the context ends", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startServiceMetricsUpdater(ctx, svc)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing system metrics update", func() {
			convey.Convey("Then it should update metrics without panicking", func() {
				convey.So(func() {
					updateSystemMetrics()
				}, convey.ShouldNotPanic)
			})
		})
	})
}

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given main application integration", t, func() {
		convey.Convey("When testing full application setup", func() {
			t.Setenv("BUNRIGO_ADDR", ":8080")
			t.Setenv("BUNRIGO_DATA_FILE", t.TempDir()+"/data.json")

			convey.Convey("Then all components should work together", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				// Load configuration
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)

				// Create service (without starting to avoid logger dependency)
				svc := service.New(
					service.WithStore(repository.NewMemStore()),
					service.WithAward(cfg.AwardPoints),
					service.WithLeaderboardSize(cfg.LeaderboardSize),
				)
				convey.So(svc, convey.ShouldNotBeNil)

				// Create HTTP server
				server := api.NewServer(svc, svc, cfg.MaxLeaderboardLimit)
				convey.So(server, convey.ShouldNotBeNil)

				// Create HTTP mux
				mux := http.NewServeMux()
				convey.So(mux, convey.ShouldNotBeNil)

				// Register routes
				server.Register(ctx, mux)
				docs.Register(ctx, mux)
				site.Register(ctx, mux)

				// Stop service
				svc.Stop()
			})
		})
	})
}

func TestMainApplicationErrorHandling(t *testing.T) {
	convey.Convey("Given main application error handling", t, func() {
		convey.Convey("When testing invalid configuration", func() {
			t.Setenv("BUNRIGO_ADDR", "")

			convey.Convey("Then configuration loading should fail", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When testing service creation with invalid options", func() {
			convey.Convey("Then service should handle invalid options gracefully", func() {
				svc := service.New(
					service.WithAward(0),
					service.WithLeaderboardSize(0),
					service.WithTokenCacheSize(0),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})
	})
}
