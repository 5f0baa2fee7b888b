package usecase

import (
	"context"
	"sync"

	"vitrina/internal/domain/entity"
	"vitrina/internal/domain/repository"
)

// ListingFeed owns the live listings subscription: it keeps the latest
// whole-snapshot result and fans it out to subscribers. Each feed instance
// owns its own snapshot and subscription lifetime; there is no ambient global
// cache.
type ListingFeed struct {
	listingRepo repository.ListingRepository
	likeRepo    repository.LikeRepository

	mu      sync.RWMutex
	current []*entity.Listing
	subs    map[chan []*entity.Listing]struct{}
}

func NewListingFeed(
	listingRepo repository.ListingRepository,
	likeRepo repository.LikeRepository,
) *ListingFeed {
	return &ListingFeed{
		listingRepo: listingRepo,
		likeRepo:    likeRepo,
		subs:        make(map[chan []*entity.Listing]struct{}),
	}
}

// Start begins consuming store snapshots until ctx is cancelled.
func (f *ListingFeed) Start(ctx context.Context) error {
	updates, err := f.listingRepo.Watch(ctx)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case listings, ok := <-updates:
				if !ok {
					return
				}
				f.publish(listings)
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

func (f *ListingFeed) publish(listings []*entity.Listing) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.current = listings
	for ch := range f.subs {
		// Replace any undelivered snapshot: each update fully supersedes the
		// previous one. Sending under the lock keeps Subscribe's cancel from
		// closing a channel mid-send.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- listings:
		default:
		}
	}
}

// Current returns the latest snapshot.
func (f *ListingFeed) Current() []*entity.Listing {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current
}

// Subscribe registers for snapshot updates. The returned cancel func must be
// called exactly once; the channel is closed by it.
func (f *ListingFeed) Subscribe() (<-chan []*entity.Listing, func()) {
	ch := make(chan []*entity.Listing, 1)

	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		delete(f.subs, ch)
		f.mu.Unlock()
		close(ch)
	}

	return ch, cancel
}

// WatchLiked streams the given user's liked-id set. Separate from the
// listing stream: the two subscriptions update independently, so a liked
// flag may briefly lag the listing set. That window is accepted eventual
// consistency.
func (f *ListingFeed) WatchLiked(ctx context.Context, userID string) (<-chan map[string]struct{}, error) {
	return f.likeRepo.Watch(ctx, userID)
}

// AnnotateLiked merges a listing snapshot with a liked-id set into the
// denormalized client view. Listings are never mutated.
func AnnotateLiked(listings []*entity.Listing, liked map[string]struct{}) []entity.LikedListing {
	items := make([]entity.LikedListing, 0, len(listings))
	for _, l := range listings {
		_, isLiked := liked[l.ID]
		items = append(items, entity.LikedListing{Listing: *l, Liked: isLiked})
	}
	return items
}
