package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"brainpin/domain/links"
	apperrors "brainpin/pkg/errors"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) ListLinks(ctx context.Context) ([]links.Link, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]links.Link), args.Error(1)
}

func (m *mockAPI) CreateLink(ctx context.Context, payload links.LinkPayload) (links.Link, error) {
	args := m.Called(ctx, payload)
	return args.Get(0).(links.Link), args.Error(1)
}

func (m *mockAPI) UpdateLink(ctx context.Context, id string, patch links.LinkPatch) (links.Link, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(links.Link), args.Error(1)
}

func (m *mockAPI) DeleteLink(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAPI) ListCategories(ctx context.Context) ([]links.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]links.Category), args.Error(1)
}

func (m *mockAPI) CreateCategory(ctx context.Context, payload links.CategoryPayload) (links.Category, error) {
	args := m.Called(ctx, payload)
	return args.Get(0).(links.Category), args.Error(1)
}

func (m *mockAPI) UpdateCategory(ctx context.Context, id string, patch links.CategoryPatch) (links.Category, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(links.Category), args.Error(1)
}

func (m *mockAPI) DeleteCategory(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAPI) CreateSublink(ctx context.Context, linkID string, payload links.SublinkPayload) (links.Link, error) {
	args := m.Called(ctx, linkID, payload)
	return args.Get(0).(links.Link), args.Error(1)
}

func (m *mockAPI) UpdateSublink(ctx context.Context, linkID, sublinkID string, patch links.SublinkPatch) (links.Link, error) {
	args := m.Called(ctx, linkID, sublinkID, patch)
	return args.Get(0).(links.Link), args.Error(1)
}

func (m *mockAPI) DeleteSublink(ctx context.Context, linkID, sublinkID string) (links.Link, error) {
	args := m.Called(ctx, linkID, sublinkID)
	return args.Get(0).(links.Link), args.Error(1)
}

// loadedStore returns a store preloaded with the given server state.
func loadedStore(t *testing.T, categories []links.Category, lks []links.Link) (*Store, *mockAPI) {
	t.Helper()

	api := new(mockAPI)
	api.On("ListLinks", mock.Anything).Return(lks, nil).Once()
	api.On("ListCategories", mock.Anything).Return(categories, nil).Once()

	s := New(api)
	s.Load(context.Background(), false)

	state := s.Snapshot()
	require.True(t, state.HasLoaded)
	require.Empty(t, state.Err)
	return s, api
}

func TestLoad_PrefixesSentinelCategory(t *testing.T) {
	s, _ := loadedStore(t,
		[]links.Category{{ID: "cat-1", Name: "Work"}},
		[]links.Link{{ID: "lnk-1", Name: "News", URL: "https://example.com", CategoryIDs: []string{"cat-1"}}},
	)

	state := s.Snapshot()
	require.Len(t, state.Categories, 2)
	assert.Equal(t, links.SentinelCategoryID, state.Categories[0].ID)
	assert.Equal(t, "cat-1", state.Categories[1].ID)
	require.Len(t, state.Links, 1)
	assert.NotNil(t, state.Links[0].Sublinks)
}

func TestLoad_SecondCallWithoutForceIsNoOp(t *testing.T) {
	s, api := loadedStore(t, nil, nil)

	s.Load(context.Background(), false)
	api.AssertNumberOfCalls(t, "ListLinks", 1)
	api.AssertNumberOfCalls(t, "ListCategories", 1)

	api.On("ListLinks", mock.Anything).Return([]links.Link{}, nil).Once()
	api.On("ListCategories", mock.Anything).Return([]links.Category{}, nil).Once()
	s.Load(context.Background(), true)
	api.AssertNumberOfCalls(t, "ListLinks", 2)
}

func TestLoad_ConcurrentCallsShareOneRoundTrip(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	api := new(mockAPI)
	api.On("ListLinks", mock.Anything).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return([]links.Link{}, nil).Once()
	api.On("ListCategories", mock.Anything).Return([]links.Category{}, nil).Once()

	s := New(api)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Load(context.Background(), false)
	}()

	<-started
	// The first load is still in flight; this call must bail out without
	// touching the network.
	s.Load(context.Background(), false)

	close(release)
	wg.Wait()

	api.AssertNumberOfCalls(t, "ListLinks", 1)
	api.AssertNumberOfCalls(t, "ListCategories", 1)
	assert.True(t, s.Snapshot().HasLoaded)
}

func TestLoad_FailureKeepsPreviousData(t *testing.T) {
	s, api := loadedStore(t, nil, []links.Link{
		{ID: "lnk-1", Name: "News", URL: "https://example.com", CategoryIDs: []string{"cat-1"}},
	})

	api.On("ListLinks", mock.Anything).Return(nil, apperrors.NewAPIError(502, "")).Once()
	api.On("ListCategories", mock.Anything).Return([]links.Category{}, nil).Once()

	s.Load(context.Background(), true)

	state := s.Snapshot()
	assert.False(t, state.HasLoaded, "forced reload failure resets hasLoaded")
	assert.Equal(t, "request failed with status 502", state.Err)
	require.Len(t, state.Links, 1, "stale data stays visible")
	assert.False(t, state.IsLoading)
}

func TestLoad_ResetsFilterForVanishedCategory(t *testing.T) {
	s, api := loadedStore(t, []links.Category{{ID: "cat-1", Name: "Work"}}, nil)
	s.SetFilter(links.ByCategory("cat-1"))

	api.On("ListLinks", mock.Anything).Return([]links.Link{}, nil).Once()
	api.On("ListCategories", mock.Anything).Return([]links.Category{}, nil).Once()
	s.Load(context.Background(), true)

	assert.True(t, s.Filter().IsAll())
}

func TestAddLink_ValidationFailureMakesNoNetworkCall(t *testing.T) {
	s, api := loadedStore(t, nil, nil)

	_, err := s.AddLink(context.Background(), links.LinkPayload{
		Name: "News",
		URL:  "https://example.com",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	api.AssertNotCalled(t, "CreateLink", mock.Anything, mock.Anything)
	assert.Empty(t, s.Snapshot().Err, "local validation failures stay local")
}

func TestAddLink_AppendsAuthoritativeServerCopy(t *testing.T) {
	s, api := loadedStore(t, []links.Category{{ID: "cat-1", Name: "Work"}}, nil)

	created := links.Link{ID: "lnk-9", Name: "News", URL: "https://example.com", CategoryIDs: []string{"cat-1"}}
	api.On("CreateLink", mock.Anything, mock.MatchedBy(func(p links.LinkPayload) bool {
		return p.Name == "News" && len(p.CategoryIDs) == 1
	})).Return(created, nil).Once()

	got, err := s.AddLink(context.Background(), links.LinkPayload{
		Name:        "  News  ",
		URL:         "https://example.com",
		CategoryIDs: []string{"cat-1", "cat-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "lnk-9", got.ID)

	state := s.Snapshot()
	require.Len(t, state.Links, 1)
	assert.NotNil(t, state.Links[0].Sublinks)
	api.AssertExpectations(t)
}

func TestUpdateLink_EmptyPatchIsNoOp(t *testing.T) {
	s, api := loadedStore(t, nil, []links.Link{
		{ID: "lnk-1", Name: "News", URL: "https://example.com", CategoryIDs: []string{"cat-1"}},
	})

	got, err := s.UpdateLink(context.Background(), "lnk-1", links.LinkPatch{})
	require.NoError(t, err)
	assert.Equal(t, "lnk-1", got.ID)
	api.AssertNotCalled(t, "UpdateLink", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateLink_UnchangedFieldsDroppedFromPatch(t *testing.T) {
	s, api := loadedStore(t, nil, []links.Link{
		{ID: "lnk-1", Name: "News", URL: "https://example.com", CategoryIDs: []string{"cat-1"}},
	})

	// Name matches current state; only the url survives the diff.
	name := "News"
	newURL := "https://example.org"
	api.On("UpdateLink", mock.Anything, "lnk-1", mock.MatchedBy(func(p links.LinkPatch) bool {
		return p.Name == nil && p.URL != nil && *p.URL == newURL
	})).Return(links.Link{ID: "lnk-1", Name: "News", URL: newURL, CategoryIDs: []string{"cat-1"}}, nil).Once()

	got, err := s.UpdateLink(context.Background(), "lnk-1", links.LinkPatch{Name: &name, URL: &newURL})
	require.NoError(t, err)
	assert.Equal(t, newURL, got.URL)
	api.AssertExpectations(t)
}

func TestDeleteLink_NotFoundRecordsServerMessage(t *testing.T) {
	s, api := loadedStore(t, nil, []links.Link{
		{ID: "lnk-1", Name: "News", URL: "https://example.com", CategoryIDs: []string{"cat-1"}},
	})

	api.On("DeleteLink", mock.Anything, "lnk-1").
		Return(apperrors.NewAPIError(404, "Link not found")).Once()

	err := s.DeleteLink(context.Background(), "lnk-1")
	require.Error(t, err)

	state := s.Snapshot()
	assert.Equal(t, "Link not found", state.Err)
	require.Len(t, state.Links, 1, "failed delete leaves the link in place")
}

func TestDeleteCategory_SentinelIsNoOp(t *testing.T) {
	s, api := loadedStore(t, []links.Category{{ID: "cat-1", Name: "Work"}}, nil)

	require.NoError(t, s.DeleteCategory(context.Background(), links.SentinelCategoryID))
	api.AssertNotCalled(t, "DeleteCategory", mock.Anything, mock.Anything)
	assert.Len(t, s.Snapshot().Categories, 2)
}

func TestDeleteCategory_ResetsMatchingFilter(t *testing.T) {
	s, api := loadedStore(t, []links.Category{{ID: "cat-1", Name: "Work"}}, nil)
	s.SetFilter(links.ByCategory("cat-1"))

	api.On("DeleteCategory", mock.Anything, "cat-1").Return(nil).Once()
	require.NoError(t, s.DeleteCategory(context.Background(), "cat-1"))

	assert.True(t, s.Filter().IsAll())
	assert.Len(t, s.Snapshot().Categories, 1, "only the sentinel remains")
}

func TestAddCategory_ValidatesName(t *testing.T) {
	s, api := loadedStore(t, nil, nil)

	_, err := s.AddCategory(context.Background(), "this name is far too long")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	api.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything)
}

func TestSublinkMutationReplacesParentWholesale(t *testing.T) {
	s, api := loadedStore(t, nil, []links.Link{
		{ID: "lnk-1", Name: "News", URL: "https://example.com", CategoryIDs: []string{"cat-1"},
			Sublinks: []links.Sublink{{ID: "sln-1", Name: "Docs", URL: "https://example.com/docs"}}},
	})

	parent := links.Link{ID: "lnk-1", Name: "News", URL: "https://example.com",
		CategoryIDs: []string{"cat-1"},
		Sublinks: []links.Sublink{
			{ID: "sln-1", Name: "Docs", URL: "https://example.com/docs"},
			{ID: "sln-2", Name: "Blog", URL: "https://example.com/blog"},
		}}
	api.On("CreateSublink", mock.Anything, "lnk-1", mock.Anything).Return(parent, nil).Once()

	got, err := s.AddSublink(context.Background(), "lnk-1", links.SublinkPayload{
		Name: "Blog",
		URL:  "https://example.com/blog",
	})
	require.NoError(t, err)
	assert.Len(t, got.Sublinks, 2)

	state := s.Snapshot()
	require.Len(t, state.Links, 1)
	assert.Len(t, state.Links[0].Sublinks, 2, "the server copy replaces the stored link")
}

func TestAddSublink_SecondTelephoneRejected(t *testing.T) {
	s, api := loadedStore(t, nil, []links.Link{
		{ID: "lnk-1", Name: "News", URL: "https://example.com", CategoryIDs: []string{"cat-1"},
			Sublinks: []links.Sublink{{ID: "sln-1", Name: "Phone", URL: "tel:+49151234"}}},
	})

	_, err := s.AddSublink(context.Background(), "lnk-1", links.SublinkPayload{
		Name: "Mobile",
		URL:  "tel:0151 999 888",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	api.AssertNotCalled(t, "CreateSublink", mock.Anything, mock.Anything, mock.Anything)
}

func TestFilteredLinks(t *testing.T) {
	s, _ := loadedStore(t,
		[]links.Category{{ID: "cat-1", Name: "Work"}, {ID: "cat-2", Name: "Home"}},
		[]links.Link{
			{ID: "lnk-1", Name: "News", URL: "https://example.com", CategoryIDs: []string{"cat-1"}},
			{ID: "lnk-2", Name: "Blog", URL: "https://example.org", CategoryIDs: []string{"cat-2"}},
		},
	)

	assert.Len(t, s.FilteredLinks(), 2)

	s.SetFilter(links.ByCategory("cat-2"))
	filtered := s.FilteredLinks()
	require.Len(t, filtered, 1)
	assert.Equal(t, "lnk-2", filtered[0].ID)

	// Mutating the returned copy must not leak into the store.
	filtered[0].Name = "changed"
	assert.Equal(t, "Blog", s.Snapshot().Links[1].Name)
}
