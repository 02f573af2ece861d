package simulate

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/greenbin/bunrigo/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	_ = logger.Init(logger.WithWriter(io.Discard))
	os.Exit(m.Run())
}

func TestGenerateStudents(t *testing.T) {
	Convey("Given a simulation config", t, func() {
		config := &Config{Students: 200}

		Convey("When generating students", func() {
			students := generateStudents(context.Background(), config)

			Convey("Then every id is a unique 5-digit string", func() {
				So(len(students), ShouldEqual, 200)
				seen := make(map[string]bool)
				for _, s := range students {
					So(len(s.ID), ShouldEqual, 5)
					So(strings.Trim(s.ID, "0123456789"), ShouldBeEmpty)
					So(seen[s.ID], ShouldBeFalse)
					seen[s.ID] = true
					So(s.ExpectedScore, ShouldEqual, 0)
				}
			})
		})
	})
}

func TestFakeImage(t *testing.T) {
	Convey("Given the fake image helper", t, func() {
		img := fakeImage()

		Convey("Then it produces a jpeg data URL", func() {
			So(img, ShouldStartWith, "data:image/jpeg;base64,")
		})
	})
}

func TestRunSingleRound(t *testing.T) {
	Convey("Given a service that accepts the full flow", t, func() {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req map[string]string
			_ = json.NewDecoder(r.Body).Decode(&req)
			w.Header().Set("Content-Type", "application/json")
			switch req["stage"] {
			case "identify":
				_ = json.NewEncoder(w).Encode(captureResponse{
					Success:    true,
					Stage:      "identify",
					Label:      "plastic",
					Bin:        "plastic recycling",
					AwardToken: "tok-1",
				})
			case "confirm":
				_ = json.NewEncoder(w).Encode(captureResponse{
					Success:      true,
					Stage:        "confirm",
					ScoreAwarded: 10,
					NewScore:     10,
				})
			}
		}))
		defer ts.Close()

		Convey("When running one round", func() {
			client := newHTTPClient(time.Second)
			points, retries, err := runSingleRound(context.Background(), client, ts.URL, "12345")

			Convey("Then the awarded points come back", func() {
				So(err, ShouldBeNil)
				So(points, ShouldEqual, 10)
				So(retries, ShouldEqual, 0)
			})
		})
	})

	Convey("Given a service that always asks for a recapture", t, func() {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(captureResponse{
				Success: false,
				Stage:   "identify",
				Reason:  "could not identify the trash",
			})
		}))
		defer ts.Close()

		Convey("When running one round", func() {
			client := newHTTPClient(time.Second)
			points, retries, err := runSingleRound(context.Background(), client, ts.URL, "12345")

			Convey("Then the round gives up after the recapture budget", func() {
				So(err, ShouldNotBeNil)
				So(points, ShouldEqual, 0)
				So(retries, ShouldEqual, maxRecaptures+1)
			})
		})
	})
}

func TestVerifyLeaderboardConsistency(t *testing.T) {
	Convey("Given retrieved ranks", t, func() {
		ranks := []Entry{
			{Rank: 2, StudentID: "11111", Score: 10},
			{Rank: 1, StudentID: "22222", Score: 30},
			{Rank: 3, StudentID: "33333", Score: 0},
		}

		Convey("When the leaderboard matches", func() {
			leaderboard := []Entry{
				{Rank: 1, StudentID: "22222", Score: 30},
				{Rank: 2, StudentID: "11111", Score: 10},
				{Rank: 3, StudentID: "33333", Score: 0},
			}
			So(verifyLeaderboardConsistency(ranks, leaderboard), ShouldBeNil)
		})

		Convey("When the leaderboard is out of order", func() {
			leaderboard := []Entry{
				{Rank: 1, StudentID: "11111", Score: 10},
				{Rank: 2, StudentID: "22222", Score: 30},
			}
			So(verifyLeaderboardConsistency(ranks, leaderboard), ShouldNotBeNil)
		})

		Convey("When the leaderboard is empty", func() {
			So(verifyLeaderboardConsistency(ranks, nil), ShouldNotBeNil)
		})
	})
}

func TestVerifyResults(t *testing.T) {
	Convey("Given students with expected scores", t, func() {
		ctx := context.Background()
		config := &Config{}
		students := []Student{
			{ID: "11111", ExpectedScore: 10},
			{ID: "22222", ExpectedScore: 30},
		}
		stats := &Stats{}

		Convey("When the service agrees", func() {
			ranks := []Entry{
				{Rank: 2, StudentID: "11111", Score: 10},
				{Rank: 1, StudentID: "22222", Score: 30},
			}
			err := verifyResults(ctx, config, students, ranks, nil, stats)
			So(err, ShouldBeNil)
		})

		Convey("When a score diverges", func() {
			ranks := []Entry{
				{Rank: 1, StudentID: "11111", Score: 999},
			}
			err := verifyResults(ctx, config, students, ranks, nil, stats)
			So(err, ShouldNotBeNil)
		})

		Convey("When there are no ranks at all", func() {
			err := verifyResults(ctx, config, students, nil, nil, stats)
			So(err, ShouldNotBeNil)
		})
	})
}
