package service_test

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	repository "github.com/greenbin/bunrigo/internal/adapters/repository"
	service "github.com/greenbin/bunrigo/internal/app"
	classify "github.com/greenbin/bunrigo/internal/domain/classify"
	. "github.com/smartystreets/goconvey/convey"
)

func testImage() string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte{0xff, 0xd8, 0xff, 0xe0})
}

func fastStub(opts ...classify.Option) *classify.StubClassifier {
	opts = append(opts, classify.WithLatencyRange(time.Millisecond, 2*time.Millisecond))
	return classify.NewStubClassifier(opts...)
}

func TestCaptureIdentify(t *testing.T) {
	Convey("Given a student in the capture flow", t, func() {
		ctx := context.Background()
		svc, _ := newTestService(t, service.WithClassifier(fastStub()))
		_, err := svc.IdentifyOrCreate(ctx, "12345")
		So(err, ShouldBeNil)

		Convey("When submitting the identify stage", func() {
			res, err := svc.Capture(ctx, service.CaptureRequest{
				StudentID: "12345",
				Stage:     classify.StageIdentify,
				Image:     testImage(),
			})

			Convey("Then the label, bin and a fresh award token come back", func() {
				So(err, ShouldBeNil)
				So(res.Retry, ShouldBeFalse)
				So(res.Label, ShouldEqual, "plastic")
				So(res.Bin, ShouldEqual, "general waste") // default bin map in tests
				So(res.AwardToken, ShouldNotBeEmpty)
			})

			Convey("And a second identify mints a different token", func() {
				res2, err := svc.Capture(ctx, service.CaptureRequest{
					StudentID: "12345",
					Stage:     classify.StageIdentify,
					Image:     testImage(),
				})
				So(err, ShouldBeNil)
				So(res2.AwardToken, ShouldNotEqual, res.AwardToken)
			})
		})

		Convey("When the classifier cannot identify the trash", func() {
			svc, _ := newTestService(t, service.WithClassifier(
				fastStub(classify.WithFixedResult(classify.LabelUnknown, 0.1)),
			))
			_, err := svc.IdentifyOrCreate(ctx, "12345")
			So(err, ShouldBeNil)

			res, err := svc.Capture(ctx, service.CaptureRequest{
				StudentID: "12345",
				Stage:     classify.StageIdentify,
				Image:     testImage(),
			})

			Convey("Then the student is told to recapture, not errored", func() {
				So(err, ShouldBeNil)
				So(res.Retry, ShouldBeTrue)
				So(res.Reason, ShouldNotBeEmpty)
				So(res.AwardToken, ShouldBeEmpty)
			})
		})

		Convey("When the student was never identified", func() {
			_, err := svc.Capture(ctx, service.CaptureRequest{
				StudentID: "99999",
				Stage:     classify.StageIdentify,
				Image:     testImage(),
			})
			So(err, ShouldEqual, service.ErrNotFound)
		})

		Convey("When the image payload is garbage", func() {
			_, err := svc.Capture(ctx, service.CaptureRequest{
				StudentID: "12345",
				Stage:     classify.StageIdentify,
				Image:     "data:image/jpeg;base64,@@@",
			})
			So(err, ShouldWrap, classify.ErrBadImage)
		})
	})
}

func TestCaptureConfirm(t *testing.T) {
	Convey("Given a student who completed the identify stage", t, func() {
		ctx := context.Background()
		svc, _ := newTestService(t, service.WithClassifier(fastStub()))
		_, err := svc.IdentifyOrCreate(ctx, "12345")
		So(err, ShouldBeNil)

		identify, err := svc.Capture(ctx, service.CaptureRequest{
			StudentID: "12345",
			Stage:     classify.StageIdentify,
			Image:     testImage(),
		})
		So(err, ShouldBeNil)

		confirmReq := service.CaptureRequest{
			StudentID:  "12345",
			Stage:      classify.StageConfirm,
			Image:      testImage(),
			Label:      identify.Label,
			AwardToken: identify.AwardToken,
		}

		Convey("When confirming a correct deposit", func() {
			res, err := svc.Capture(ctx, confirmReq)

			Convey("Then points are awarded and the new total returned", func() {
				So(err, ShouldBeNil)
				So(res.Retry, ShouldBeFalse)
				So(res.Awarded, ShouldEqual, 10)
				So(res.Score, ShouldEqual, 10)
			})

			Convey("And replaying the same token never awards twice", func() {
				res2, err := svc.Capture(ctx, confirmReq)
				So(err, ShouldBeNil)
				So(res2.Duplicate, ShouldBeTrue)
				So(res2.Awarded, ShouldEqual, 0)
				So(res2.Score, ShouldEqual, 10)

				entry, err := svc.RankOf(ctx, "12345")
				So(err, ShouldBeNil)
				So(entry.Score, ShouldEqual, 10)
			})
		})

		Convey("When the deposit went into the wrong bin", func() {
			svc, _ := newTestService(t, service.WithClassifier(
				fastStub(classify.WithVerdict(false)),
			))
			_, err := svc.IdentifyOrCreate(ctx, "12345")
			So(err, ShouldBeNil)

			res, err := svc.Capture(ctx, service.CaptureRequest{
				StudentID:  "12345",
				Stage:      classify.StageConfirm,
				Image:      testImage(),
				Label:      "plastic",
				AwardToken: "tok-1",
			})

			Convey("Then it is a retryable negative and nothing was awarded", func() {
				So(err, ShouldBeNil)
				So(res.Retry, ShouldBeTrue)
				So(res.Reason, ShouldNotBeEmpty)

				entry, err := svc.RankOf(ctx, "12345")
				So(err, ShouldBeNil)
				So(entry.Score, ShouldEqual, 0)
			})
		})

		Convey("When the confirm request is missing pieces", func() {
			missingLabel := confirmReq
			missingLabel.Label = ""
			_, err := svc.Capture(ctx, missingLabel)
			So(err, ShouldEqual, service.ErrMissingLabel)

			missingToken := confirmReq
			missingToken.AwardToken = ""
			_, err = svc.Capture(ctx, missingToken)
			So(err, ShouldEqual, service.ErrMissingToken)
		})

		Convey("When the store fails during the award", func() {
			store := repository.NewMemStore()
			svc := service.New(
				service.WithStore(store),
				service.WithClassifier(fastStub()),
			)
			So(svc.Start(ctx), ShouldBeNil)
			_, err := svc.IdentifyOrCreate(ctx, "12345")
			So(err, ShouldBeNil)

			store.SaveErr = repository.ErrSave
			_, err = svc.Capture(ctx, service.CaptureRequest{
				StudentID:  "12345",
				Stage:      classify.StageConfirm,
				Image:      testImage(),
				Label:      "plastic",
				AwardToken: "tok-rollback",
			})
			So(err, ShouldWrap, repository.ErrSave)

			Convey("Then the token was rolled back and the retry succeeds", func() {
				store.SaveErr = nil
				res, err := svc.Capture(ctx, service.CaptureRequest{
					StudentID:  "12345",
					Stage:      classify.StageConfirm,
					Image:      testImage(),
					Label:      "plastic",
					AwardToken: "tok-rollback",
				})
				So(err, ShouldBeNil)
				So(res.Duplicate, ShouldBeFalse)
				So(res.Awarded, ShouldEqual, 10)
			})
		})
	})
}

func TestCaptureWithConfiguredBins(t *testing.T) {
	Convey("Given a service with a configured bin map", t, func() {
		ctx := context.Background()
		bins := classify.NewBinMap(map[string]string{"plastic": "plastic recycling"}, "landfill")
		svc, _ := newTestService(t,
			service.WithClassifier(fastStub()),
			service.WithBinMap(bins),
		)
		_, err := svc.IdentifyOrCreate(ctx, "12345")
		So(err, ShouldBeNil)

		Convey("When identifying a mapped label", func() {
			res, err := svc.Capture(ctx, service.CaptureRequest{
				StudentID: "12345",
				Stage:     classify.StageIdentify,
				Image:     testImage(),
			})
			So(err, ShouldBeNil)
			So(res.Bin, ShouldEqual, "plastic recycling")
		})
	})
}
