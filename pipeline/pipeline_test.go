// Copyright 2025 Geodetic Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	goetrf "github.com/geodetic-io/goetrf"
	"github.com/geodetic-io/goetrf/helmert"
)

func testCoordinate(i int) goetrf.Coordinate {
	return goetrf.Coordinate{
		Position: helmert.Vector3{
			3370658.542 + float64(i),
			711877.138 + float64(i),
			5349786.952 + float64(i),
		},
		Frame: "ITRF2008",
		Epoch: 2000.0 + float64(i)*0.1,
	}
}

func TestPipelineOrderedResults(t *testing.T) {
	defer goleak.VerifyNone(t)

	const numPoints = 100
	p := NewPointPipeline(
		WithTargetFrame("ETRF2000"),
		WithTransformWorkers(4),
		WithBufferSize(numPoints),
	)
	require.NoError(t, p.Start(context.Background()))

	for i := 0; i < numPoints; i++ {
		require.NoError(t, p.Submit(context.Background(), testCoordinate(i)))
	}

	converter := goetrf.New()
	for i := 0; i < numPoints; i++ {
		item := <-p.Results()
		require.Equal(t, uint64(i), item.SequenceNumber())
		require.NoError(t, item.TransformError())
		require.True(t, item.Emitted())
		require.Equal(t, "ETRF2000", item.Output().Frame)
		want, err := converter.Convert(testCoordinate(i), "ETRF2000")
		require.NoError(t, err)
		require.Equal(t, want.Position, item.OutputPosition())
	}

	require.NoError(t, p.Stop())

	stats := p.Stats()
	require.Equal(t, uint64(numPoints), stats.PointsSubmitted)
	require.Equal(t, uint64(numPoints), stats.PointsTransformed)
	require.Equal(t, uint64(numPoints), stats.PointsEmitted)
	require.Equal(t, uint64(0), stats.TransformErrors)
}

func TestPipelineNotStarted(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := NewPointPipeline(WithTargetFrame("ETRF2000"))
	err := p.Submit(context.Background(), testCoordinate(0))
	require.ErrorIs(t, err, ErrPipelineNotStarted)

	// Errors yields the not-started error once, then closes
	errChan := p.Errors()
	err, ok := <-errChan
	require.True(t, ok)
	require.ErrorIs(t, err, ErrPipelineNotStarted)
	_, ok = <-errChan
	require.False(t, ok)

	// Results is closed rather than nil so receivers do not block forever
	_, ok = <-p.Results()
	require.False(t, ok)
}

func TestPipelineMissingTargetFrame(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := NewPointPipeline()
	err := p.Start(context.Background())
	require.ErrorIs(t, err, ErrMissingTargetFrame)
}

func TestPipelineTransformError(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := NewPointPipeline(
		WithTargetFrame("ETRF2000"),
		WithTransformWorkers(2),
		WithBufferSize(16),
	)
	require.NoError(t, p.Start(context.Background()))

	bad := testCoordinate(1)
	bad.Frame = "GDA94"
	require.NoError(t, p.Submit(context.Background(), testCoordinate(0)))
	require.NoError(t, p.Submit(context.Background(), bad))
	require.NoError(t, p.Submit(context.Background(), testCoordinate(2)))

	// Failed conversions still flow through in sequence order so the
	// output keeps the shape of the input
	items := make([]*PointItem, 3)
	for i := range items {
		items[i] = <-p.Results()
		require.Equal(t, uint64(i), items[i].SequenceNumber())
	}
	require.NoError(t, items[0].TransformError())
	require.ErrorIs(t, items[1].TransformError(), goetrf.ErrUnknownFrame)
	require.False(t, items[1].Emitted())
	require.NoError(t, items[2].TransformError())

	require.ErrorIs(t, <-p.Errors(), goetrf.ErrUnknownFrame)

	require.NoError(t, p.Stop())

	stats := p.Stats()
	require.Equal(t, uint64(3), stats.PointsSubmitted)
	require.Equal(t, uint64(2), stats.PointsTransformed)
	require.Equal(t, uint64(2), stats.PointsEmitted)
	require.Equal(t, uint64(1), stats.TransformErrors)
}

func TestPipelineResultFunc(t *testing.T) {
	defer goleak.VerifyNone(t)

	errBadPoint := errors.New("rejected point")

	var mu sync.Mutex
	var order []uint64
	resultFunc := func(item *PointItem) error {
		mu.Lock()
		defer mu.Unlock()
		order = append(order, item.SequenceNumber())
		if item.SequenceNumber() == 7 {
			return errBadPoint
		}
		return nil
	}

	const numPoints = 50
	p := NewPointPipeline(
		WithTargetFrame("ETRF2000"),
		WithTransformWorkers(4),
		WithBufferSize(numPoints),
		WithResultFunc(resultFunc),
	)
	require.NoError(t, p.Start(context.Background()))

	for i := 0; i < numPoints; i++ {
		require.NoError(t, p.Submit(context.Background(), testCoordinate(i)))
	}

	var rejected *PointItem
	for i := 0; i < numPoints; i++ {
		item := <-p.Results()
		if item.SequenceNumber() == 7 {
			rejected = item
		}
	}
	require.NoError(t, p.Stop())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, order, numPoints)
	for i, seq := range order {
		require.Equal(t, uint64(i), seq, "result function called out of order")
	}
	require.NotNil(t, rejected)
	require.False(t, rejected.Emitted())
	require.ErrorIs(t, rejected.EmitError(), errBadPoint)

	stats := p.Stats()
	require.Equal(t, uint64(numPoints-1), stats.PointsEmitted)
	require.Equal(t, uint64(1), stats.EmitErrors)
}

func TestPipelineStopIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := NewPointPipeline(WithTargetFrame("ETRF2000"))
	require.NoError(t, p.Start(context.Background()))
	require.NoError(t, p.Stop())
	require.NoError(t, p.Stop())

	err := p.Submit(context.Background(), testCoordinate(0))
	require.ErrorIs(t, err, ErrPipelineStopped)
	require.ErrorIs(t, p.Start(context.Background()), ErrPipelineStopped)
}

func TestPipelineWaitForDrain(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := NewPointPipeline(WithTargetFrame("ETRS89"))
	require.NoError(t, p.Start(context.Background()))

	const numPoints = 10
	for i := 0; i < numPoints; i++ {
		require.NoError(t, p.Submit(context.Background(), testCoordinate(i)))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, p.WaitForDrain(ctx))

	var results []*PointItem
	require.Eventually(t, func() bool {
		results = append(results, p.DrainResults()...)
		return len(results) == numPoints
	}, 5*time.Second, 10*time.Millisecond)
	require.Equal(t, 0, p.PendingCount())
	require.Empty(t, p.DrainErrors())

	require.NoError(t, p.Stop())
}

func TestPipelineWaitForDrainNotStarted(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := NewPointPipeline(WithTargetFrame("ETRF2000"))
	err := p.WaitForDrain(context.Background())
	require.ErrorIs(t, err, ErrPipelineNotStarted)
}

func BenchmarkPipeline(b *testing.B) {
	p := NewPointPipeline(
		WithTargetFrame("ETRF2000"),
		WithTransformWorkers(4),
		WithBufferSize(1024),
	)
	if err := p.Start(context.Background()); err != nil {
		b.Fatal(err)
	}
	defer p.Stop() //nolint:errcheck

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < b.N; i++ {
			<-p.Results()
		}
	}()

	coordinate := testCoordinate(0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := p.Submit(context.Background(), coordinate); err != nil {
			b.Fatal(err)
		}
	}
	<-done
}
