package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/opsre/cloudinv/internal/cache"
	"github.com/opsre/cloudinv/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	regions   []string
	instances map[string][]*model.Instance

	listErr    error
	regionsErr error

	listCalls   int
	regionCalls int
}

func (f *fakeProvider) GetName() string { return "fake" }

func (f *fakeProvider) Initialize(config map[string]any) error { return nil }

func (f *fakeProvider) ListInstances(ctx context.Context, region string) ([]*model.Instance, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.instances[region], nil
}

func (f *fakeProvider) ListRegions(ctx context.Context) ([]string, error) {
	f.regionCalls++
	if f.regionsErr != nil {
		return nil, f.regionsErr
	}
	return f.regions, nil
}

func (f *fakeProvider) HealthCheck(ctx context.Context) error { return nil }

func newTestService(p *fakeProvider, regionTTL time.Duration) *Service {
	return NewService(p, cache.NewMemoryStore(200*time.Second, 1000), regionTTL)
}

func twoInstances() []*model.Instance {
	return []*model.Instance{
		{Name: "MySecondInstance", ID: "i-2", PublicIP: "N/A", PrivateIPs: []string{"10.0.0.2"}},
		{Name: "MyFirstInstance", ID: "i-1", PublicIP: "N/A", PrivateIPs: []string{"10.0.0.1"}},
	}
}

func TestService_QueryReturnsInstances(t *testing.T) {
	p := &fakeProvider{
		regions:   []string{"eu-west-1", "us-east-1"},
		instances: map[string][]*model.Instance{"eu-west-1": twoInstances()},
	}
	s := newTestService(p, 0)

	got, err := s.Query(context.Background(), "eu-west-1", "", 1, 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "MySecondInstance", got[0].Name, "no sort keeps source order")
	assert.Equal(t, "MyFirstInstance", got[1].Name)
}

func TestService_QueryEmptyRegionResult(t *testing.T) {
	p := &fakeProvider{regions: []string{"eu-west-1"}}
	s := newTestService(p, 0)

	got, err := s.Query(context.Background(), "eu-west-1", "", 1, 5)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestService_SecondQueryHitsCache(t *testing.T) {
	p := &fakeProvider{
		regions:   []string{"eu-west-1"},
		instances: map[string][]*model.Instance{"eu-west-1": twoInstances()},
	}
	s := newTestService(p, 0)

	_, err := s.Query(context.Background(), "eu-west-1", "Name", 1, 5)
	require.NoError(t, err)
	_, err = s.Query(context.Background(), "eu-west-1", "Name", 2, 5)
	require.NoError(t, err)

	assert.Equal(t, 1, p.listCalls, "second query should not reach the provider")
}

func TestService_SortKeysCachedIndependently(t *testing.T) {
	p := &fakeProvider{
		regions:   []string{"eu-west-1"},
		instances: map[string][]*model.Instance{"eu-west-1": twoInstances()},
	}
	s := newTestService(p, 0)

	byName, err := s.Query(context.Background(), "eu-west-1", "Name", 1, 5)
	require.NoError(t, err)
	unsorted, err := s.Query(context.Background(), "eu-west-1", "", 1, 5)
	require.NoError(t, err)

	assert.Equal(t, 2, p.listCalls, "each sort key loads its own snapshot")
	assert.Equal(t, "MyFirstInstance", byName[0].Name)
	assert.Equal(t, "MySecondInstance", unsorted[0].Name)
}

func TestService_QueryPaginatesAfterSort(t *testing.T) {
	p := &fakeProvider{
		regions:   []string{"eu-west-1"},
		instances: map[string][]*model.Instance{"eu-west-1": twoInstances()},
	}
	s := newTestService(p, 0)

	first, err := s.Query(context.Background(), "eu-west-1", "Name", 1, 1)
	require.NoError(t, err)
	second, err := s.Query(context.Background(), "eu-west-1", "Name", 2, 1)
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, "MyFirstInstance", first[0].Name)
	assert.Equal(t, "MySecondInstance", second[0].Name)
}

func TestService_ValidationOrderRegionFirst(t *testing.T) {
	p := &fakeProvider{regions: []string{"eu-west-1"}}
	s := newTestService(p, 0)

	// 区域和排序字段同时非法时只报区域错误
	_, err := s.Query(context.Background(), "no-such-region", "bogus", 1, 0)
	assert.ErrorIs(t, err, ErrInvalidRegion)

	_, err = s.Query(context.Background(), "eu-west-1", "bogus", 1, 0)
	assert.ErrorIs(t, err, ErrInvalidSortBy)

	_, err = s.Query(context.Background(), "eu-west-1", "Name", 1, 0)
	assert.ErrorIs(t, err, ErrInvalidPageSize)
}

func TestService_EmptyRegionSkipsUpstreamCall(t *testing.T) {
	p := &fakeProvider{regions: []string{"eu-west-1"}}
	s := newTestService(p, 0)

	_, err := s.Query(context.Background(), "", "", 1, 5)
	assert.ErrorIs(t, err, ErrInvalidRegion)
	assert.Equal(t, 0, p.regionCalls)
}

func TestService_UpstreamListFailureIsNotClientError(t *testing.T) {
	upstream := errors.New("connection reset")
	p := &fakeProvider{
		regions: []string{"eu-west-1"},
		listErr: upstream,
	}
	s := newTestService(p, 0)

	_, err := s.Query(context.Background(), "eu-west-1", "", 1, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, upstream)
	assert.False(t, IsClientError(err))
}

func TestService_RegionLookupFailureIsNotClientError(t *testing.T) {
	upstream := errors.New("throttled")
	p := &fakeProvider{regionsErr: upstream}
	s := newTestService(p, 0)

	_, err := s.Query(context.Background(), "eu-west-1", "", 1, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, upstream)
	assert.False(t, IsClientError(err))
}

func TestService_RegionSetLiveByDefault(t *testing.T) {
	p := &fakeProvider{
		regions:   []string{"eu-west-1"},
		instances: map[string][]*model.Instance{"eu-west-1": twoInstances()},
	}
	s := newTestService(p, 0)

	_, err := s.Query(context.Background(), "eu-west-1", "", 1, 5)
	require.NoError(t, err)
	_, err = s.Query(context.Background(), "eu-west-1", "", 1, 5)
	require.NoError(t, err)

	assert.Equal(t, 2, p.regionCalls, "every request re-validates against the provider")
}

func TestService_RegionSetCachedWithinTTL(t *testing.T) {
	p := &fakeProvider{
		regions:   []string{"eu-west-1"},
		instances: map[string][]*model.Instance{"eu-west-1": twoInstances()},
	}
	s := newTestService(p, time.Minute)

	_, err := s.Query(context.Background(), "eu-west-1", "", 1, 5)
	require.NoError(t, err)
	_, err = s.Query(context.Background(), "eu-west-1", "", 1, 5)
	require.NoError(t, err)

	assert.Equal(t, 1, p.regionCalls)
}

func TestService_RegionSetExpiresAfterTTL(t *testing.T) {
	p := &fakeProvider{
		regions:   []string{"eu-west-1"},
		instances: map[string][]*model.Instance{"eu-west-1": twoInstances()},
	}
	s := newTestService(p, time.Minute)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	_, err := s.Query(context.Background(), "eu-west-1", "", 1, 5)
	require.NoError(t, err)

	now = now.Add(time.Minute)
	err = s.ValidateRegion(context.Background(), "eu-west-1")
	require.NoError(t, err)

	assert.Equal(t, 2, p.regionCalls)
}
