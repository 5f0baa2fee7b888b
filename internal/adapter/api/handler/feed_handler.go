package handler

import (
	"context"
	"encoding/json"
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"vitrina/internal/domain/entity"
	ws "vitrina/internal/infrastructure/websocket"
	"vitrina/internal/usecase"
	"vitrina/pkg/errors"
	"vitrina/pkg/logger"
)

// FeedHandler serves the live websocket feeds. The listings feed is public;
// a signed-in viewer may pass a token query parameter to get per-listing
// liked flags merged into every pushed snapshot.
type FeedHandler struct {
	feed           *usecase.ListingFeed
	commentUseCase *usecase.CommentUseCase
	wsManager      *ws.Manager
	firebaseAuth   usecase.FirebaseAuthClient
}

var feedHandler *FeedHandler

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func NewFeedHandler(
	feed *usecase.ListingFeed,
	commentUseCase *usecase.CommentUseCase,
	wsManager *ws.Manager,
	firebaseAuth usecase.FirebaseAuthClient,
) *FeedHandler {
	return &FeedHandler{
		feed:           feed,
		commentUseCase: commentUseCase,
		wsManager:      wsManager,
		firebaseAuth:   firebaseAuth,
	}
}

func SetupFeedHandler(
	feed *usecase.ListingFeed,
	commentUseCase *usecase.CommentUseCase,
	wsManager *ws.Manager,
	firebaseAuth usecase.FirebaseAuthClient,
) {
	feedHandler = NewFeedHandler(feed, commentUseCase, wsManager, firebaseAuth)
}

func GetFeedHandler() *FeedHandler {
	return feedHandler
}

type feedMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// HandleListings upgrades the connection and pushes the full listing snapshot
// on every change, annotated with the viewer's liked flags when signed in.
func (h *FeedHandler) HandleListings(c echo.Context) error {
	userID := h.viewerID(c)

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := &ws.Client{
		ID:     uuid.New().String(),
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 16),
	}

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	h.wsManager.Register <- client
	go client.WritePump()
	go func() {
		client.ReadPump()
		cancel()
	}()

	listingsCh, unsubscribe := h.feed.Subscribe()
	defer unsubscribe()

	var likedCh <-chan map[string]struct{}
	if userID != "" {
		likedCh, err = h.feed.WatchLiked(ctx, userID)
		if err != nil {
			logger.Error("Liked watch failed for user %s: %v", userID, err)
			likedCh = nil
		}
	}

	listings := h.feed.Current()
	liked := map[string]struct{}{}

	h.push(ctx, client, feedMessage{
		Type: "listings",
		Data: usecase.AnnotateLiked(listings, liked),
	})

	for {
		select {
		case snapshot, ok := <-listingsCh:
			if !ok {
				h.wsManager.Unregister <- client
				return nil
			}
			listings = snapshot
		case likedSet, ok := <-likedCh:
			if !ok {
				likedCh = nil
				continue
			}
			liked = likedSet
		case <-ctx.Done():
			h.wsManager.Unregister <- client
			return nil
		}

		h.push(ctx, client, feedMessage{
			Type: "listings",
			Data: usecase.AnnotateLiked(listings, liked),
		})
	}
}

// HandleComments streams one listing's comment threads.
func (h *FeedHandler) HandleComments(c echo.Context) error {
	listingID := c.Param("id")

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := &ws.Client{
		ID:     uuid.New().String(),
		UserID: h.viewerID(c),
		Conn:   conn,
		Send:   make(chan []byte, 16),
	}

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	h.wsManager.Register <- client
	go client.WritePump()
	go func() {
		client.ReadPump()
		cancel()
	}()

	threadsCh, err := h.commentUseCase.WatchThreads(ctx, listingID)
	if err != nil {
		h.wsManager.Unregister <- client
		return nil
	}

	for {
		select {
		case threads, ok := <-threadsCh:
			if !ok {
				h.wsManager.Unregister <- client
				return nil
			}
			h.push(ctx, client, feedMessage{Type: "comments", Data: threadsOrEmpty(threads)})
		case <-ctx.Done():
			h.wsManager.Unregister <- client
			return nil
		}
	}
}

// viewerID resolves the optional token query parameter. Browsers cannot set
// headers on websocket requests, so the token rides the URL here.
func (h *FeedHandler) viewerID(c echo.Context) string {
	token := c.QueryParam("token")
	if token == "" {
		return ""
	}

	uid, err := h.firebaseAuth.VerifyToken(c.Request().Context(), token)
	if err != nil {
		logger.Debug("Feed token rejected: %v", err)
		return ""
	}

	return uid
}

func (h *FeedHandler) push(ctx context.Context, client *ws.Client, msg feedMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		logger.Error("Feed message marshal failed: %v", err)
		return
	}

	select {
	case client.Send <- payload:
	case <-ctx.Done():
	}
}

func threadsOrEmpty(threads []entity.Thread) []entity.Thread {
	if threads == nil {
		return []entity.Thread{}
	}
	return threads
}
