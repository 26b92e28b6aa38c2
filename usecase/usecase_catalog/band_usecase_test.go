package usecase_catalog

import (
	"context"
	"testing"
	"time"

	"github.com/metalvault/metalvault/broadcast"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
	"github.com/metalvault/metalvault/domain/domain_util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newBandUsecase(h *harness) *BandUsecase {
	return NewBandUsecase(h.deps, NewAlbumUsecase(h.deps))
}

func storedBand(status catalog_models.BandStatus) *catalog_models.Band {
	band := &catalog_models.Band{Discography: []catalog_models.DiscographyEntry{}}
	band.ID = 67
	band.Name = "Mayhem"
	band.Status = status
	return band
}

func albumWithID(id int64) interface{} {
	return mock.MatchedBy(func(a *catalog_models.Album) bool { return a.ID == id })
}

// liveContext 只匹配尚未取消的 context
func liveContext() interface{} {
	return mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil })
}

func TestGetBand_StaleServesCachedAndRefreshesInBackground(t *testing.T) {
	h := newHarness(t)
	uc := newBandUsecase(h)

	cached := storedBand(catalog_models.BandStatusActive)
	cached.UpdatedAt = h.daysAgo(20)
	h.bands.On("FindResolvedByID", mock.Anything, int64(67)).Return(cached, nil)

	release := make(chan struct{})
	h.fail(h.endpoints.BandURL(67)).Run(func(mock.Arguments) { <-release })

	info := uc.GetBand(context.Background(), 67)

	require.NoError(t, info.Err)
	assert.True(t, info.Cached)
	assert.Same(t, cached, info.Data)
	assert.Equal(t, 1, h.deps.Scheduler.pending())

	close(release)
	h.deps.Scheduler.Wait()

	h.fetcher.AssertCalled(t, "Fetch", mock.Anything, h.endpoints.BandURL(67))
	h.bands.AssertNotCalled(t, "UpsertByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetBand_FreshServesWithoutIO(t *testing.T) {
	h := newHarness(t)
	uc := newBandUsecase(h)

	cached := storedBand(catalog_models.BandStatusActive)
	cached.UpdatedAt = h.daysAgo(5)
	h.bands.On("FindResolvedByID", mock.Anything, int64(67)).Return(cached, nil)

	info := uc.GetBand(context.Background(), 67)

	require.NoError(t, info.Err)
	assert.Same(t, cached, info.Data)
	assert.Zero(t, h.deps.Scheduler.pending())
	h.deps.Scheduler.Wait()
	h.fetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestGetBand_StaleButResolvedStatusIsNotRefreshed(t *testing.T) {
	h := newHarness(t)
	uc := newBandUsecase(h)

	cached := storedBand(catalog_models.BandStatusSplitUp)
	cached.UpdatedAt = h.daysAgo(300)
	h.bands.On("FindResolvedByID", mock.Anything, int64(67)).Return(cached, nil)

	info := uc.GetBand(context.Background(), 67)

	assert.True(t, info.Cached)
	h.deps.Scheduler.Wait()
	h.fetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestGetBand_MissFetchesAndInserts(t *testing.T) {
	h := newHarness(t)
	uc := newBandUsecase(h)

	h.bands.On("FindResolvedByID", mock.Anything, int64(67)).Return(nil, nil)
	h.serve(h.endpoints.BandURL(67), bandPage(67, "Mayhem", "Active"))
	h.serve(h.endpoints.BandLinksURL(67), linksPage)
	h.serve(h.endpoints.BandDescriptionURL(67), `Founded in <a href="https://www.metal-archives.com/bands/Thorns/45">Oslo</a>.`)
	h.serve(h.endpoints.DiscographyURL(67), discographyPage())

	ref := primitive.NewObjectID()
	h.bands.On("Insert", mock.Anything, mock.AnythingOfType("*catalog_models.BandDocument")).Return(ref, nil)

	info := uc.GetBand(context.Background(), 67)

	require.NoError(t, info.Err)
	assert.False(t, info.Cached)
	assert.Equal(t, h.endpoints.BandURL(67), info.URL)
	require.NotNil(t, info.Data)
	assert.Equal(t, ref, info.Data.ObjectID)
	assert.Equal(t, "Norway", info.Data.Country)
	assert.Equal(t, catalog_models.BandStatusActive, info.Data.Status)
	assert.Len(t, info.Data.Links, 1)
	assert.Contains(t, info.Data.Description, `href="/bands/Thorns/45"`)
	assert.Empty(t, info.Data.Discography)

	events := h.drain()
	require.Len(t, events, 2)
	assert.Equal(t, broadcast.EventBandLinks, events[0].Type)
	assert.Equal(t, broadcast.EventAlbumNumber, events[1].Type)
	assert.Equal(t, "Added 0 albums", events[1].Message)
}

func TestGetBand_MissWithFetchErrorStoresNothing(t *testing.T) {
	h := newHarness(t)
	uc := newBandUsecase(h)

	h.bands.On("FindResolvedByID", mock.Anything, int64(67)).Return(nil, nil)
	h.fail(h.endpoints.BandURL(67))

	info := uc.GetBand(context.Background(), 67)

	assert.False(t, info.Success())
	assert.True(t, catalog_models.IsFetchError(info.Err))
	assert.Nil(t, info.Data)
	h.bands.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestGetBand_MissWithUnextractablePageStoresNothing(t *testing.T) {
	h := newHarness(t)
	uc := newBandUsecase(h)

	h.bands.On("FindResolvedByID", mock.Anything, int64(67)).Return(nil, nil)
	h.serve(h.endpoints.BandURL(67), `<html><body>Maintenance</body></html>`)

	info := uc.GetBand(context.Background(), 67)

	assert.ErrorIs(t, info.Err, ErrRecordUnavailable)
	assert.ErrorContains(t, info.Err, "band.name")
	h.bands.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestRefreshBand_ReusesStoredAlbums(t *testing.T) {
	h := newHarness(t)
	uc := newBandUsecase(h)

	h.serve(h.endpoints.BandURL(67), bandPage(67, "Mayhem", "Active"))
	h.serve(h.endpoints.BandLinksURL(67), linksPage)
	h.fail(h.endpoints.BandDescriptionURL(67))
	h.serve(h.endpoints.DiscographyURL(67), discographyPage(
		discogRow{1, "Deathcrush", "1987"},
		discogRow{2, "De Mysteriis", "1994"},
	))

	existing := primitive.NewObjectID()
	created := primitive.NewObjectID()
	h.albums.On("FindRefByID", mock.Anything, int64(1)).Return(existing, true, nil)
	h.albums.On("FindRefByID", mock.Anything, int64(2)).Return(primitive.NilObjectID, false, nil)
	h.serve(h.endpoints.AlbumURL(2), albumPage(2, "De Mysteriis"))
	h.albums.On("Insert", mock.Anything, albumWithID(2)).Return(created, nil)

	bandRef := primitive.NewObjectID()
	h.bands.On("UpsertByID", mock.Anything, int64(67), mock.AnythingOfType("*catalog_models.BandDocument")).Return(bandRef, nil)

	info := uc.RefreshBand(context.Background(), 67)

	require.NoError(t, info.Err)
	h.fetcher.AssertNotCalled(t, "Fetch", mock.Anything, h.endpoints.AlbumURL(1))

	doc := h.bands.Calls[len(h.bands.Calls)-1].Arguments.Get(2).(*catalog_models.BandDocument)
	assert.Equal(t, []primitive.ObjectID{created, existing}, doc.Discography)
	assert.Empty(t, doc.Description)

	require.Len(t, info.Data.Discography, 2)
	assert.Equal(t, int64(2), info.Data.Discography[0].ID)
	assert.Equal(t, "/images/2.jpg", info.Data.Discography[0].CoverURL)
	assert.Equal(t, int64(1), info.Data.Discography[1].ID)
}

func TestRefreshBand_SkipsFailingAlbum(t *testing.T) {
	h := newHarness(t)
	uc := newBandUsecase(h)

	h.serve(h.endpoints.BandURL(67), bandPage(67, "Mayhem", "Active"))
	h.serve(h.endpoints.BandLinksURL(67), linksPage)
	h.serve(h.endpoints.BandDescriptionURL(67), "")
	h.serve(h.endpoints.DiscographyURL(67), discographyPage(
		discogRow{1, "Deathcrush", "1987"},
		discogRow{2, "De Mysteriis", "1994"},
		discogRow{3, "Live in Leipzig", "1990"},
	))

	h.albums.On("FindRefByID", mock.Anything, mock.Anything).Return(primitive.NilObjectID, false, nil)
	h.serve(h.endpoints.AlbumURL(1), albumPage(1, "Deathcrush"))
	h.serve(h.endpoints.AlbumURL(2), albumPage(2, "De Mysteriis"))
	h.fail(h.endpoints.AlbumURL(3))

	ref1, ref2 := primitive.NewObjectID(), primitive.NewObjectID()
	h.albums.On("Insert", mock.Anything, albumWithID(1)).Return(ref1, nil)
	h.albums.On("Insert", mock.Anything, albumWithID(2)).Return(ref2, nil)
	h.bands.On("UpsertByID", mock.Anything, int64(67), mock.AnythingOfType("*catalog_models.BandDocument")).
		Return(primitive.NewObjectID(), nil)

	info := uc.RefreshBand(context.Background(), 67)

	require.NoError(t, info.Err)
	doc := h.bands.Calls[len(h.bands.Calls)-1].Arguments.Get(2).(*catalog_models.BandDocument)
	// 1994, 1990 (失败), 1987
	assert.Equal(t, []primitive.ObjectID{ref2, ref1}, doc.Discography)

	events := h.drain()
	var types []broadcast.EventType
	for _, e := range events {
		types = append(types, e.Type)
	}
	assert.Equal(t, []broadcast.EventType{
		broadcast.EventBandLinks,
		broadcast.EventNewAlbum,
		broadcast.EventNewAlbum,
		broadcast.EventAlbumNumber,
	}, types)
	assert.Equal(t, "Added new album Mayhem - De Mysteriis (1994)", events[1].Message)
	assert.Equal(t, domain_util.ProgressSnapshot{Total: 3, Stored: 2, Created: 2, Failed: 1}, events[3].Data)
}

func TestGetBand_MissStoresResolvedAlbumsWhenDeadlineExpires(t *testing.T) {
	h := newHarness(t)
	h.deps.Timeout = 50 * time.Millisecond
	uc := newBandUsecase(h)

	h.bands.On("FindResolvedByID", mock.Anything, int64(67)).Return(nil, nil)
	h.serve(h.endpoints.BandURL(67), bandPage(67, "Mayhem", "Active"))
	h.serve(h.endpoints.BandLinksURL(67), linksPage)
	h.serve(h.endpoints.BandDescriptionURL(67), "")
	h.serve(h.endpoints.DiscographyURL(67), discographyPage(
		discogRow{1, "De Mysteriis", "1994"},
		discogRow{2, "Live in Leipzig", "1990"},
		discogRow{3, "Deathcrush", "1987"},
	))

	h.albums.On("FindRefByID", mock.Anything, mock.Anything).Return(primitive.NilObjectID, false, nil)
	h.serve(h.endpoints.AlbumURL(1), albumPage(1, "De Mysteriis")).After(150 * time.Millisecond)
	ref1 := primitive.NewObjectID()
	h.albums.On("Insert", mock.Anything, albumWithID(1)).Return(ref1, nil)

	bandRef := primitive.NewObjectID()
	h.bands.On("Insert", liveContext(), mock.AnythingOfType("*catalog_models.BandDocument")).Return(bandRef, nil)

	info := uc.GetBand(context.Background(), 67)

	require.NoError(t, info.Err)
	assert.Equal(t, bandRef, info.Data.ObjectID)
	require.Len(t, info.Data.Discography, 1)
	assert.Equal(t, int64(1), info.Data.Discography[0].ID)

	doc := h.bands.Calls[len(h.bands.Calls)-1].Arguments.Get(1).(*catalog_models.BandDocument)
	assert.Equal(t, []primitive.ObjectID{ref1}, doc.Discography)
	h.fetcher.AssertNotCalled(t, "Fetch", mock.Anything, h.endpoints.AlbumURL(2))
	h.fetcher.AssertNotCalled(t, "Fetch", mock.Anything, h.endpoints.AlbumURL(3))

	events := h.drain()
	last := events[len(events)-1]
	assert.Equal(t, broadcast.EventAlbumNumber, last.Type)
	assert.Equal(t, domain_util.ProgressSnapshot{Total: 3, Stored: 1, Created: 1, Failed: 2}, last.Data)
}

func TestRefreshBand_CancelledCallerStillWritesBand(t *testing.T) {
	h := newHarness(t)
	uc := newBandUsecase(h)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h.serve(h.endpoints.BandURL(67), bandPage(67, "Mayhem", "Active"))
	h.serve(h.endpoints.BandLinksURL(67), linksPage)
	h.serve(h.endpoints.BandDescriptionURL(67), "")
	h.serve(h.endpoints.DiscographyURL(67), discographyPage(
		discogRow{1, "De Mysteriis", "1994"},
		discogRow{2, "Deathcrush", "1987"},
	))

	existing := primitive.NewObjectID()
	h.albums.On("FindRefByID", mock.Anything, int64(1)).
		Run(func(mock.Arguments) { cancel() }).
		Return(existing, true, nil)
	h.bands.On("UpsertByID", liveContext(), int64(67), mock.AnythingOfType("*catalog_models.BandDocument")).
		Return(primitive.NewObjectID(), nil)

	info := uc.RefreshBand(ctx, 67)

	require.NoError(t, info.Err)
	doc := h.bands.Calls[len(h.bands.Calls)-1].Arguments.Get(2).(*catalog_models.BandDocument)
	assert.Equal(t, []primitive.ObjectID{existing}, doc.Discography)
	h.albums.AssertNotCalled(t, "FindRefByID", mock.Anything, int64(2))
	h.fetcher.AssertNotCalled(t, "Fetch", mock.Anything, h.endpoints.AlbumURL(2))
}

func TestRefreshBand_DiscographyFailureKeepsStoredCopy(t *testing.T) {
	h := newHarness(t)
	uc := newBandUsecase(h)

	h.serve(h.endpoints.BandURL(67), bandPage(67, "Mayhem", "Active"))
	h.serve(h.endpoints.BandLinksURL(67), linksPage)
	h.serve(h.endpoints.BandDescriptionURL(67), "")
	h.fail(h.endpoints.DiscographyURL(67))

	info := uc.RefreshBand(context.Background(), 67)

	assert.True(t, catalog_models.IsFetchError(info.Err))
	h.bands.AssertNotCalled(t, "UpsertByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestRandomBand_ReturnsEnrichedBandAndPersistsInBackground(t *testing.T) {
	h := newHarness(t)
	uc := newBandUsecase(h)

	h.serve(h.endpoints.RandomBandURL(), bandPage(99, "Darkthrone", "Active"))
	h.bands.On("FindResolvedByID", mock.Anything, int64(99)).Return(nil, nil)
	h.serve(h.endpoints.BandLinksURL(99), linksPage)
	h.serve(h.endpoints.BandDescriptionURL(99), "Formed in Kolbotn.")
	h.serve(h.endpoints.DiscographyURL(99), discographyPage(discogRow{5, "Transilvanian Hunger", "1994"}))

	h.albums.On("FindRefByID", mock.Anything, int64(5)).Return(primitive.NilObjectID, false, nil)
	h.serve(h.endpoints.AlbumURL(5), albumPage(5, "Transilvanian Hunger"))
	albumRef := primitive.NewObjectID()
	h.albums.On("Insert", mock.Anything, albumWithID(5)).Return(albumRef, nil)
	h.bands.On("Insert", mock.Anything, mock.AnythingOfType("*catalog_models.BandDocument")).Return(primitive.NewObjectID(), nil)

	info := uc.RandomBand(context.Background())

	require.NoError(t, info.Err)
	assert.Equal(t, "Darkthrone", info.Data.Name)
	assert.Equal(t, h.endpoints.BandURL(99), info.URL)
	assert.Len(t, info.Data.Links, 1)
	assert.Equal(t, "Formed in Kolbotn.", info.Data.Description)
	require.Len(t, info.Data.Discography, 1)
	assert.Equal(t, "Transilvanian Hunger", info.Data.Discography[0].Title)

	h.deps.Scheduler.Wait()
	h.bands.AssertCalled(t, "Insert", mock.Anything, mock.AnythingOfType("*catalog_models.BandDocument"))
	doc := h.bands.Calls[len(h.bands.Calls)-1].Arguments.Get(1).(*catalog_models.BandDocument)
	assert.Equal(t, []primitive.ObjectID{albumRef}, doc.Discography)
	// 返回给调用方的记录不受后台写入影响
	assert.True(t, info.Data.ObjectID.IsZero())
	assert.Empty(t, info.Data.Discography[0].CoverURL)

	events := h.drain()
	require.NotEmpty(t, events)
	assert.Equal(t, broadcast.EventStartRandom, events[0].Type)
	assert.Equal(t, broadcast.EventBandLinks, events[1].Type)
}

func TestSearchBands_CachesCleanResults(t *testing.T) {
	h := newHarness(t)
	uc := newBandUsecase(h)

	url := h.endpoints.BandSearchURL("mayhem")
	h.serve(url, `{"error":"","iTotalRecords":1,"aaData":[["<a href=\"https://www.metal-archives.com/bands/Mayhem/67\">Mayhem</a>","Black Metal","Norway"]]}`).Once()

	first := uc.SearchBands(context.Background(), "mayhem")
	second := uc.SearchBands(context.Background(), "  mayhem ")

	require.NoError(t, first.Err)
	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Data, second.Data)
	h.fetcher.AssertNumberOfCalls(t, "Fetch", 1)

	empty := uc.SearchBands(context.Background(), "   ")
	assert.ErrorIs(t, empty.Err, ErrEmptyQuery)
}
