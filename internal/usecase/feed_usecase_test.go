package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrina/internal/domain/entity"
)

func newFeed() *ListingFeed {
	return NewListingFeed(newFakeListingRepo(), newFakeLikeRepo())
}

func snapshot(ids ...string) []*entity.Listing {
	out := make([]*entity.Listing, 0, len(ids))
	for _, id := range ids {
		out = append(out, &entity.Listing{ID: id})
	}
	return out
}

func TestFeedCurrentTracksLatestSnapshot(t *testing.T) {
	feed := newFeed()

	assert.Empty(t, feed.Current())

	feed.publish(snapshot("a"))
	feed.publish(snapshot("a", "b"))

	current := feed.Current()
	require.Len(t, current, 2)
	assert.Equal(t, "b", current[1].ID)
}

func TestFeedSubscribeReceivesUpdates(t *testing.T) {
	feed := newFeed()

	ch, cancel := feed.Subscribe()
	defer cancel()

	feed.publish(snapshot("a"))

	got := <-ch
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestFeedSlowSubscriberGetsLatestOnly(t *testing.T) {
	feed := newFeed()

	ch, cancel := feed.Subscribe()
	defer cancel()

	// Nobody is reading; each publish supersedes the previous one.
	feed.publish(snapshot("a"))
	feed.publish(snapshot("a", "b"))
	feed.publish(snapshot("c"))

	got := <-ch
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].ID)
}

func TestFeedCancelStopsDelivery(t *testing.T) {
	feed := newFeed()

	ch, cancel := feed.Subscribe()
	cancel()

	feed.publish(snapshot("a"))

	// The channel was closed by cancel; no snapshot is delivered.
	_, ok := <-ch
	assert.False(t, ok)
}
