package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrina/internal/domain/entity"
	"vitrina/pkg/errors"
)

func newListingFixture() (*ListingUseCase, *fakeListingRepo, *fakeLikeRepo, *fakeMedia) {
	listingRepo := newFakeListingRepo()
	likeRepo := newFakeLikeRepo()
	media := &fakeMedia{}
	uc := NewListingUseCase(listingRepo, likeRepo, media, "listings")
	return uc, listingRepo, likeRepo, media
}

func imageFile() *MediaFile {
	return &MediaFile{Reader: strings.NewReader("img"), ContentType: "image/jpeg"}
}

func TestCreateListingRequiresPrimaryMedia(t *testing.T) {
	uc, _, _, _ := newListingFixture()

	_, err := uc.CreateListing(context.Background(), ListingInput{Name: "Mia"}, ListingMedia{})

	assert.True(t, errors.Is(err, "MISSING_PRIMARY_MEDIA"))
}

func TestCreateListingRequiresName(t *testing.T) {
	uc, _, _, _ := newListingFixture()

	_, err := uc.CreateListing(context.Background(), ListingInput{Name: "   "}, ListingMedia{Primary: imageFile()})

	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestCreateListingWithoutGallery(t *testing.T) {
	uc, _, _, _ := newListingFixture()

	listing, err := uc.CreateListing(context.Background(), ListingInput{Name: "Mia"}, ListingMedia{Primary: imageFile()})
	require.NoError(t, err)

	// The images list always contains the primary URL, even with no gallery.
	require.Len(t, listing.Images, 1)
	assert.Equal(t, listing.Image, listing.Images[0])
	assert.Empty(t, listing.Videos)
	assert.Zero(t, listing.LikesCount)
	assert.Zero(t, listing.Views)
}

func TestCreateListingCoercesNumericFields(t *testing.T) {
	uc, _, _, _ := newListingFixture()

	input := ListingInput{
		Name:         "Mia",
		Age:          "not a number",
		Price:        "150.5",
		LocationsRaw: " Centro , , Norte ",
		Waist:        "60",
		Height:       "abc",
	}

	listing, err := uc.CreateListing(context.Background(), input, ListingMedia{Primary: imageFile()})
	require.NoError(t, err)

	assert.Equal(t, 0, listing.Age)
	assert.Equal(t, 150.5, listing.Price)
	assert.Equal(t, []string{"Centro", "Norte"}, listing.Locations)
	assert.Equal(t, 60.0, listing.Measurements.Waist)
	assert.Equal(t, 0.0, listing.Measurements.Height)
}

func TestCreateListingAbortsOnUploadFailure(t *testing.T) {
	uc, listingRepo, _, media := newListingFixture()
	media.fail = true

	_, err := uc.CreateListing(context.Background(), ListingInput{Name: "Mia"}, ListingMedia{Primary: imageFile()})

	assert.True(t, errors.Is(err, "UPLOAD_FAILED"))
	assert.Empty(t, listingRepo.listings)
}

func TestUpdateListingReconcilesMedia(t *testing.T) {
	uc, listingRepo, _, _ := newListingFixture()

	listing, err := uc.CreateListing(context.Background(), ListingInput{Name: "Mia"}, ListingMedia{
		Primary: imageFile(),
		Gallery: []MediaFile{
			{Reader: strings.NewReader("b"), ContentType: "image/png"},
			{Reader: strings.NewReader("c"), ContentType: "image/png"},
		},
	})
	require.NoError(t, err)
	require.Len(t, listing.Images, 3)

	removed := listing.Images[1]

	updated, err := uc.UpdateListing(context.Background(), listing.ID, ListingInput{Name: "Mia"}, ListingMedia{}, MediaRemovals{
		Images: map[string]bool{removed: true},
	})
	require.NoError(t, err)

	assert.NotContains(t, updated.Images, removed)
	assert.Equal(t, listing.Image, updated.Images[0])
	require.Len(t, updated.Images, 2)

	stored, err := listingRepo.GetByID(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Images, stored.Images)
}

func TestUpdateListingPrimarySurvivesRemoval(t *testing.T) {
	uc, _, _, _ := newListingFixture()

	listing, err := uc.CreateListing(context.Background(), ListingInput{Name: "Mia"}, ListingMedia{Primary: imageFile()})
	require.NoError(t, err)

	// Removing the primary URL from the gallery does not dislodge it while it
	// is still the primary.
	updated, err := uc.UpdateListing(context.Background(), listing.ID, ListingInput{Name: "Mia"}, ListingMedia{}, MediaRemovals{
		Images: map[string]bool{listing.Image: true},
	})
	require.NoError(t, err)

	assert.Contains(t, updated.Images, listing.Image)
}

func TestToggleLikeRequiresAuth(t *testing.T) {
	uc, _, _, _ := newListingFixture()

	_, err := uc.ToggleLike(context.Background(), "", "lst-1")

	assert.True(t, errors.Is(err, "NOT_AUTHENTICATED"))
}

func TestToggleLikePairsRecordAndCounter(t *testing.T) {
	uc, listingRepo, likeRepo, _ := newListingFixture()

	listing, err := uc.CreateListing(context.Background(), ListingInput{Name: "Mia"}, ListingMedia{Primary: imageFile()})
	require.NoError(t, err)

	other, err := uc.CreateListing(context.Background(), ListingInput{Name: "Eva"}, ListingMedia{Primary: imageFile()})
	require.NoError(t, err)

	liked, err := uc.ToggleLike(context.Background(), "u1", listing.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	exists, _ := likeRepo.Exists(context.Background(), "u1", listing.ID)
	assert.True(t, exists)
	assert.Equal(t, []int{1}, listingRepo.likeDeltas[listing.ID])

	liked, err = uc.ToggleLike(context.Background(), "u1", listing.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	exists, _ = likeRepo.Exists(context.Background(), "u1", listing.ID)
	assert.False(t, exists)
	assert.Equal(t, []int{1, -1}, listingRepo.likeDeltas[listing.ID])

	stored, _ := listingRepo.GetByID(context.Background(), listing.ID)
	assert.Zero(t, stored.LikesCount)

	// Only the targeted listing's counter was ever touched.
	assert.Empty(t, listingRepo.likeDeltas[other.ID])
}

func TestToggleLikeSwallowsCounterFailure(t *testing.T) {
	uc, listingRepo, likeRepo, _ := newListingFixture()

	listing, err := uc.CreateListing(context.Background(), ListingInput{Name: "Mia"}, ListingMedia{Primary: imageFile()})
	require.NoError(t, err)

	listingRepo.failIncrementLikes = true

	// The like record is authoritative; the counter write failing is not an
	// operation failure.
	liked, err := uc.ToggleLike(context.Background(), "u1", listing.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	exists, _ := likeRepo.Exists(context.Background(), "u1", listing.ID)
	assert.True(t, exists)
}

func TestListListingsAnnotatesAndPaginates(t *testing.T) {
	uc, _, _, _ := newListingFixture()

	var ids []string
	for _, name := range []string{"A", "B", "C"} {
		listing, err := uc.CreateListing(context.Background(), ListingInput{Name: name}, ListingMedia{Primary: imageFile()})
		require.NoError(t, err)
		ids = append(ids, listing.ID)
	}

	_, err := uc.ToggleLike(context.Background(), "u1", ids[0])
	require.NoError(t, err)

	items, total, err := uc.ListListings(context.Background(), "u1", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 2)

	// Newest first: C, B.
	assert.Equal(t, "C", items[0].Name)
	assert.False(t, items[0].Liked)

	items, _, err = uc.ListListings(context.Background(), "u1", 2, 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "A", items[0].Name)
	assert.True(t, items[0].Liked)

	items, _, err = uc.ListListings(context.Background(), "u1", 5, 2)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestReconcileMedia(t *testing.T) {
	got := reconcileMedia("a", []string{"a", "c"}, []string{"d", "c", ""})

	assert.Equal(t, []string{"a", "c", "d"}, got)
}

func TestAnnotateLiked(t *testing.T) {
	listings := []*entity.Listing{{ID: "x"}, {ID: "y"}}

	items := AnnotateLiked(listings, map[string]struct{}{"y": {}})

	require.Len(t, items, 2)
	assert.False(t, items[0].Liked)
	assert.True(t, items[1].Liked)
}
