package usecase

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"vitrina/internal/domain/entity"
	"vitrina/internal/domain/repository"
	"vitrina/internal/domain/service"
	"vitrina/pkg/errors"
	"vitrina/pkg/logger"
)

type ListingUseCase struct {
	listingRepo repository.ListingRepository
	likeRepo    repository.LikeRepository
	media       service.MediaUploadService
	mediaFolder string
}

func NewListingUseCase(
	listingRepo repository.ListingRepository,
	likeRepo repository.LikeRepository,
	media service.MediaUploadService,
	mediaFolder string,
) *ListingUseCase {
	return &ListingUseCase{
		listingRepo: listingRepo,
		likeRepo:    likeRepo,
		media:       media,
		mediaFolder: mediaFolder,
	}
}

// MediaFile is a pending upload taken from a multipart form.
type MediaFile struct {
	Reader      io.Reader
	ContentType string
}

// ListingMedia is the set of pending files for one create or edit.
type ListingMedia struct {
	Primary *MediaFile
	Gallery []MediaFile
	Videos  []MediaFile
}

// MediaRemovals marks existing URLs the editor chose to drop. A URL not
// marked is kept.
type MediaRemovals struct {
	Images map[string]bool
	Videos map[string]bool
}

// ListingInput carries the raw form fields. Numeric fields arrive as strings
// and are coerced to 0 when unparsable.
type ListingInput struct {
	Name         string
	Age          string
	Price        string
	Description  string
	LocationsRaw string

	Waist  string
	Height string
	Hips   string
	Bust   string

	Phone    string
	Whatsapp string
	Telegram string
}

// CreateListing uploads all pending media and then writes one new document.
// Any upload failure aborts before the document write, so a listing never
// appears with media fields it does not actually have.
func (uc *ListingUseCase) CreateListing(ctx context.Context, input ListingInput, media ListingMedia) (*entity.Listing, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.BadRequest("Name is required", nil)
	}
	if media.Primary == nil {
		return nil, errors.MissingPrimaryMedia()
	}

	primaryURL, err := uc.upload(ctx, *media.Primary, service.MediaKindImage)
	if err != nil {
		return nil, err
	}

	galleryURLs, videoURLs, err := uc.uploadBatch(ctx, media.Gallery, media.Videos)
	if err != nil {
		return nil, err
	}

	listing := &entity.Listing{
		Name:          name,
		Age:           coerceInt(input.Age),
		Price:         coerceFloat(input.Price),
		Description:   strings.TrimSpace(input.Description),
		Locations:     splitLocations(input.LocationsRaw),
		Image:         primaryURL,
		Images:        reconcileMedia(primaryURL, nil, galleryURLs),
		Videos:        dedupe(videoURLs),
		Measurements:  measurementsFrom(input),
		Contact:       contactFrom(input),
		LikesCount:    0,
		CommentsCount: 0,
		Views:         0,
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		// Already-uploaded media stays orphaned in the bucket; there is no
		// compensating delete.
		return nil, err
	}

	return listing, nil
}

// UpdateListing reconciles the listing's media against the editor's keep and
// remove selections, uploads any new files, and updates the document in
// place. Creation timestamp and counters are untouched.
func (uc *ListingUseCase) UpdateListing(ctx context.Context, id string, input ListingInput, media ListingMedia, removals MediaRemovals) (*entity.Listing, error) {
	existing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.BadRequest("Name is required", nil)
	}

	primaryURL := existing.Image
	if media.Primary != nil {
		primaryURL, err = uc.upload(ctx, *media.Primary, service.MediaKindImage)
		if err != nil {
			return nil, err
		}
	}
	if primaryURL == "" {
		return nil, errors.MissingPrimaryMedia()
	}

	galleryURLs, videoURLs, err := uc.uploadBatch(ctx, media.Gallery, media.Videos)
	if err != nil {
		return nil, err
	}

	keptImages := keepExisting(existing.Images, removals.Images)
	keptVideos := keepExisting(existing.Videos, removals.Videos)

	existing.Name = name
	existing.Age = coerceInt(input.Age)
	existing.Price = coerceFloat(input.Price)
	existing.Description = strings.TrimSpace(input.Description)
	existing.Locations = splitLocations(input.LocationsRaw)
	existing.Image = primaryURL
	existing.Images = reconcileMedia(primaryURL, keptImages, galleryURLs)
	existing.Videos = dedupe(append(keptVideos, videoURLs...))
	existing.Measurements = measurementsFrom(input)
	existing.Contact = contactFrom(input)

	if err := uc.listingRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

func (uc *ListingUseCase) GetListing(ctx context.Context, id, viewerID string) (*entity.LikedListing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Increment view counter (async, best-effort)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = uc.listingRepo.IncrementViews(ctx, id)
	}()

	liked := false
	if viewerID != "" {
		liked, err = uc.likeRepo.Exists(ctx, viewerID, id)
		if err != nil {
			return nil, err
		}
	}

	return &entity.LikedListing{Listing: *listing, Liked: liked}, nil
}

func (uc *ListingUseCase) ListListings(ctx context.Context, viewerID string, page, pageSize int) ([]entity.LikedListing, int64, error) {
	listings, err := uc.listingRepo.List(ctx)
	if err != nil {
		return nil, 0, err
	}

	likedIDs := map[string]struct{}{}
	if viewerID != "" {
		likedIDs, err = uc.likeRepo.ListIDs(ctx, viewerID)
		if err != nil {
			return nil, 0, err
		}
	}

	items := AnnotateLiked(listings, likedIDs)
	total := int64(len(items))

	start := (page - 1) * pageSize
	if start >= len(items) {
		return []entity.LikedListing{}, total, nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	return items[start:end], total, nil
}

func (uc *ListingUseCase) DeleteListing(ctx context.Context, id string) error {
	return uc.listingRepo.Delete(ctx, id)
}

// ToggleLike flips the caller's like record and nudges the listing's counter
// in the same direction. The two writes are independent: the like record is
// authoritative and a failed counter update is swallowed, so likesCount may
// drift from the true record count.
func (uc *ListingUseCase) ToggleLike(ctx context.Context, userID, listingID string) (bool, error) {
	if userID == "" {
		return false, errors.NotAuthenticated(nil)
	}

	liked, err := uc.likeRepo.Exists(ctx, userID, listingID)
	if err != nil {
		return false, err
	}

	if liked {
		if err := uc.likeRepo.Delete(ctx, userID, listingID); err != nil {
			return true, err
		}
		if err := uc.listingRepo.IncrementLikes(ctx, listingID, -1); err != nil {
			logger.Warn("Like counter decrement failed for listing %s: %v", listingID, err)
		}
		return false, nil
	}

	if err := uc.likeRepo.Set(ctx, userID, listingID); err != nil {
		return false, err
	}
	if err := uc.listingRepo.IncrementLikes(ctx, listingID, 1); err != nil {
		logger.Warn("Like counter increment failed for listing %s: %v", listingID, err)
	}

	return true, nil
}

func (uc *ListingUseCase) LikedIDs(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return nil, errors.NotAuthenticated(nil)
	}

	set, err := uc.likeRepo.ListIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}

	return ids, nil
}

func (uc *ListingUseCase) upload(ctx context.Context, file MediaFile, kind service.MediaKind) (string, error) {
	folder := uc.mediaFolder
	if kind == service.MediaKindVideo {
		folder = "videos"
	}

	result, err := uc.media.Upload(ctx, file.Reader, file.ContentType, kind, folder)
	if err != nil {
		return "", errors.UploadFailed(err)
	}

	return result.URL, nil
}

// uploadBatch uploads gallery images and videos concurrently. Completion
// order does not matter, but every upload must succeed before any URL is
// used.
func (uc *ListingUseCase) uploadBatch(ctx context.Context, gallery, videos []MediaFile) ([]string, []string, error) {
	g, gctx := errgroup.WithContext(ctx)

	galleryURLs := make([]string, len(gallery))
	for i, file := range gallery {
		i, file := i, file
		g.Go(func() error {
			url, err := uc.upload(gctx, file, service.MediaKindImage)
			if err != nil {
				return err
			}
			galleryURLs[i] = url
			return nil
		})
	}

	videoURLs := make([]string, len(videos))
	for i, file := range videos {
		i, file := i, file
		g.Go(func() error {
			url, err := uc.upload(gctx, file, service.MediaKindVideo)
			if err != nil {
				return err
			}
			videoURLs[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return galleryURLs, videoURLs, nil
}

// reconcileMedia builds the final images list: primary URL first, then kept
// existing URLs, then newly uploaded URLs, deduplicated. The primary URL is
// always present even when it was separately marked for removal from the
// gallery.
func reconcileMedia(primary string, kept, uploaded []string) []string {
	merged := make([]string, 0, 1+len(kept)+len(uploaded))
	merged = append(merged, primary)
	merged = append(merged, kept...)
	merged = append(merged, uploaded...)

	return dedupe(merged)
}

func keepExisting(existing []string, remove map[string]bool) []string {
	var kept []string
	for _, url := range existing {
		if !remove[url] {
			kept = append(kept, url)
		}
	}
	return kept
}

func dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	final := make([]string, 0, len(urls))
	for _, url := range urls {
		if url == "" || seen[url] {
			continue
		}
		seen[url] = true
		final = append(final, url)
	}
	return final
}

func splitLocations(raw string) []string {
	var locations []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			locations = append(locations, trimmed)
		}
	}
	return locations
}

func coerceFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func coerceInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func measurementsFrom(input ListingInput) entity.Measurements {
	return entity.Measurements{
		Waist:  coerceFloat(input.Waist),
		Height: coerceFloat(input.Height),
		Hips:   coerceFloat(input.Hips),
		Bust:   coerceFloat(input.Bust),
	}
}

func contactFrom(input ListingInput) entity.Contact {
	return entity.Contact{
		Phone:    strings.TrimSpace(input.Phone),
		Whatsapp: strings.TrimSpace(input.Whatsapp),
		Telegram: strings.TrimSpace(input.Telegram),
	}
}
