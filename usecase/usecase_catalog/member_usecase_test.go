package usecase_catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func memberPage(id int64, name string) string {
	return fmt.Sprintf(`<html><head><link rel="canonical" href="%s/artists/%s/%d" /></head><body>
<h1 class="band_member_name">%s</h1>
<div id="member_info"><dl><dt>Place of birth:</dt><dd>Norway</dd></dl></div>
</body></html>`, testOrigin, name, id, name)
}

func TestGetMember_MissFetchesLinksAndInserts(t *testing.T) {
	h := newHarness(t)
	uc := NewMemberUsecase(h.deps)

	h.members.On("FindByID", mock.Anything, int64(1032)).Return(nil, nil)
	h.serve(h.endpoints.MemberURL(1032), memberPage(1032, "Hellhammer"))
	h.serve(h.endpoints.MemberLinksURL(1032), linksPage)
	ref := primitive.NewObjectID()
	h.members.On("Insert", mock.Anything, mock.AnythingOfType("*catalog_models.Member")).Return(ref, nil)

	info := uc.GetMember(context.Background(), 1032)

	require.NoError(t, info.Err)
	assert.Equal(t, int64(1032), info.Data.ID)
	assert.Equal(t, "Hellhammer", info.Data.Fullname)
	assert.Equal(t, "Norway", info.Data.PlaceOfBirth)
	assert.Len(t, info.Data.Links, 1)
	assert.Equal(t, ref, info.Data.ObjectID)
}

func TestGetMember_LinksFailureStillStores(t *testing.T) {
	h := newHarness(t)
	uc := NewMemberUsecase(h.deps)

	h.members.On("FindByID", mock.Anything, int64(1032)).Return(nil, nil)
	h.serve(h.endpoints.MemberURL(1032), memberPage(1032, "Hellhammer"))
	h.fail(h.endpoints.MemberLinksURL(1032))
	h.members.On("Insert", mock.Anything, mock.AnythingOfType("*catalog_models.Member")).Return(primitive.NewObjectID(), nil)

	info := uc.GetMember(context.Background(), 1032)

	require.NoError(t, info.Err)
	assert.Empty(t, info.Data.Links)
}

func TestGetMember_StaleRefreshReplacesStoredCopy(t *testing.T) {
	h := newHarness(t)
	uc := NewMemberUsecase(h.deps)

	cached := &catalog_models.Member{ID: 1032, Fullname: "Hellhammer", UpdatedAt: h.daysAgo(16)}
	h.members.On("FindByID", mock.Anything, int64(1032)).Return(cached, nil)
	h.serve(h.endpoints.MemberURL(1032), memberPage(1032, "Hellhammer"))
	h.serve(h.endpoints.MemberLinksURL(1032), linksPage)
	h.members.On("UpsertByID", mock.Anything, int64(1032), mock.AnythingOfType("*catalog_models.Member")).
		Return(primitive.NewObjectID(), nil)

	info := uc.GetMember(context.Background(), 1032)
	assert.Same(t, cached, info.Data)

	h.deps.Scheduler.Wait()
	h.members.AssertCalled(t, "UpsertByID", mock.Anything, int64(1032), mock.AnythingOfType("*catalog_models.Member"))
	h.members.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}
