package router

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearledgr/clearledgr-ap/internal/logging"
	"github.com/clearledgr/clearledgr-ap/internal/models"
	"github.com/clearledgr/clearledgr-ap/internal/parsererror"
)

type stubTasks struct {
	err    error
	called bool
}

func (s *stubTasks) EnsureExceptionTask(context.Context, *models.ExtractedFinancialData, *models.MatchResult) error {
	s.called = true
	return s.err
}

func TestRouteMatched(t *testing.T) {
	tasks := &stubTasks{}
	r := New(tasks, true, logging.NewMockLogger())

	status, err := r.Route(context.Background(), &models.ExtractedFinancialData{}, &models.MatchResult{Found: true})

	require.NoError(t, err)
	assert.Equal(t, StatusMatched, status)
	assert.False(t, tasks.called)
}

func TestRouteManualReviewWhenAutoRouteOff(t *testing.T) {
	tasks := &stubTasks{}
	r := New(tasks, false, logging.NewMockLogger())

	status, err := r.Route(context.Background(), &models.ExtractedFinancialData{}, &models.MatchResult{Found: false})

	require.NoError(t, err)
	assert.Equal(t, StatusRequiresManualReview, status)
	assert.False(t, tasks.called)
}

func TestRouteAutoRoute(t *testing.T) {
	tasks := &stubTasks{}
	r := New(tasks, true, logging.NewMockLogger())

	status, err := r.Route(context.Background(), &models.ExtractedFinancialData{}, &models.MatchResult{Found: false})

	require.NoError(t, err)
	assert.Equal(t, StatusAutoRoute, status)
	assert.True(t, tasks.called)
}

func TestRouteFailureSurfaces(t *testing.T) {
	tasks := &stubTasks{err: errors.New("backend down")}
	r := New(tasks, true, logging.NewMockLogger())

	_, err := r.Route(context.Background(), &models.ExtractedFinancialData{}, &models.MatchResult{Found: false})

	var routingErr *parsererror.RoutingError
	require.ErrorAs(t, err, &routingErr)
}
