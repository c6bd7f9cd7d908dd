package sheet

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRender_Idempotent(t *testing.T) {
	sink := NewMemorySink()
	r := NewRenderer(sink, Layout{Sheet: "Sheet1", PageSize: 50}, nil)
	snap, sum := testSnapshot(50), testSummary()

	require.NoError(t, r.Render(context.Background(), snap, sum))
	once := sink.Cells()

	require.NoError(t, r.Render(context.Background(), snap, sum))
	require.Equal(t, once, sink.Cells())
	require.Equal(t, 4, sink.Writes())
}

func TestRender_ShorterSnapshotClearsStaleRows(t *testing.T) {
	sink := NewMemorySink()
	r := NewRenderer(sink, Layout{Sheet: "Sheet1", PageSize: 50}, nil)

	require.NoError(t, r.Render(context.Background(), testSnapshot(50), testSummary()))
	require.NotNil(t, sink.Cell("Sheet1", 50, 1))

	require.NoError(t, r.Render(context.Background(), testSnapshot(10), testSummary()))
	require.Equal(t, "Coin 10", sink.Cell("Sheet1", 10, 1))
	require.Nil(t, sink.Cell("Sheet1", 11, 1))
	require.Nil(t, sink.Cell("Sheet1", 50, 7))
	require.Equal(t, "Top 5 Cryptocurrencies by Market Cap:", sink.Cell("Sheet1", 52, 1))
}

func TestRender_SnapshotFailureIsReturned(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := NewMockSink(ctrl)

	// Assert: summary is never attempted once the snapshot write fails.
	sink.EXPECT().
		WriteBlock(gomock.Any(), gomock.Any()).
		Return(NewTransient("write", errors.New("rate limited"))).
		Times(1)

	err := NewRenderer(sink, Layout{PageSize: 50}, nil).Render(context.Background(), testSnapshot(1), testSummary())
	require.Error(t, err)
	require.True(t, IsSinkError(err))
	require.False(t, IsFatal(err))
}

func TestRender_TransientSummaryFailureIsTolerated(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := NewMockSink(ctrl)
	layout := Layout{PageSize: 50}

	gomock.InOrder(
		sink.EXPECT().
			WriteBlock(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b Block) error {
				require.Equal(t, layout.SnapshotRegion(), b.Region)
				return nil
			}),
		sink.EXPECT().
			WriteBlock(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b Block) error {
				require.Equal(t, layout.SummaryRegion(), b.Region)
				return NewTransient("write", errors.New("quota exceeded"))
			}),
	)

	require.NoError(t, NewRenderer(sink, layout, nil).Render(context.Background(), testSnapshot(1), testSummary()))
}

func TestRender_FatalSummaryFailureIsReturned(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := NewMockSink(ctrl)

	gomock.InOrder(
		sink.EXPECT().WriteBlock(gomock.Any(), gomock.Any()).Return(nil),
		sink.EXPECT().WriteBlock(gomock.Any(), gomock.Any()).Return(NewFatal("write", errors.New("permission denied"))),
	)

	err := NewRenderer(sink, Layout{PageSize: 50}, nil).Render(context.Background(), testSnapshot(1), testSummary())
	require.True(t, IsFatal(err))
}

func TestRenderer_Check(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := NewMockSink(ctrl)
	sink.EXPECT().Check(gomock.Any()).Return(NewFatal("check", errors.New("invalid_grant")))

	err := NewRenderer(sink, Layout{PageSize: 50}, nil).Check(context.Background())
	require.True(t, IsFatal(err))
}

func TestMemorySink_RejectsMisshapenBlock(t *testing.T) {
	sink := NewMemorySink()
	err := sink.WriteBlock(context.Background(), Block{
		Region: Region{Row: 1, Col: 1, Rows: 2, Cols: 2},
		Values: [][]any{{"a", "b"}},
	})
	require.True(t, IsFatal(err))
	require.Zero(t, sink.Writes())
}

func TestSinkErrorKinds(t *testing.T) {
	require.Equal(t, "transient", Transient.String())
	require.Equal(t, "fatal", Fatal.String())
	require.Equal(t, "sink write (fatal): boom", NewFatal("write", errors.New("boom")).Error())
	require.False(t, IsSinkError(errors.New("plain")))
}
