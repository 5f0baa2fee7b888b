package usecase

import (
	"context"
	"strings"

	"vitrina/internal/domain/entity"
	"vitrina/internal/domain/repository"
	"vitrina/pkg/errors"
)

type CommentUseCase struct {
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
}

func NewCommentUseCase(
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
) *CommentUseCase {
	return &CommentUseCase{
		commentRepo: commentRepo,
		userRepo:    userRepo,
	}
}

type CreateCommentInput struct {
	Text     string
	ParentID string
}

// CreateComment appends one flat comment record. The author's handle is
// captured at write time and stays frozen on the record. ParentID is stored
// as given; threading drops records whose parent is missing, so a bad parent
// reference only hides the reply, it never corrupts a thread.
//
// The listing's commentsCount field is deliberately not updated here; it is
// unmaintained (see DESIGN.md).
func (uc *CommentUseCase) CreateComment(ctx context.Context, listingID, userID string, input CreateCommentInput) (*entity.Comment, error) {
	if userID == "" {
		return nil, errors.NotAuthenticated(nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, "PROFILE_MISSING") {
			return nil, errors.NoHandle()
		}
		return nil, err
	}
	if !user.HasHandle() {
		return nil, errors.NoHandle()
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, errors.EmptyText()
	}

	comment := &entity.Comment{
		AuthorID:       userID,
		AuthorUsername: user.Username,
		Text:           text,
		ParentID:       input.ParentID,
	}

	if err := uc.commentRepo.Create(ctx, listingID, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (uc *CommentUseCase) ListThreads(ctx context.Context, listingID string) ([]entity.Thread, error) {
	comments, err := uc.commentRepo.ListByListing(ctx, listingID)
	if err != nil {
		return nil, err
	}

	return BuildThreads(comments), nil
}

// WatchThreads streams the listing's comment set as threads on every change
// until ctx is cancelled.
func (uc *CommentUseCase) WatchThreads(ctx context.Context, listingID string) (<-chan []entity.Thread, error) {
	updates, err := uc.commentRepo.Watch(ctx, listingID)
	if err != nil {
		return nil, err
	}

	out := make(chan []entity.Thread, 1)
	go func() {
		defer close(out)
		for comments := range updates {
			select {
			case out <- BuildThreads(comments):
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// BuildThreads partitions a flat, creation-ordered comment slice into
// two-level threads. Every comment lands in exactly one place: the top-level
// list, or the reply list of its parent. Replies keep the relative order they
// had in the input. A reply whose parent is not a present top-level comment
// is dropped; it is never promoted to top level.
func BuildThreads(comments []entity.Comment) []entity.Thread {
	var top []entity.Comment
	repliesByParent := make(map[string][]entity.Comment)

	for _, c := range comments {
		if c.IsReply() {
			repliesByParent[c.ParentID] = append(repliesByParent[c.ParentID], c)
		} else {
			top = append(top, c)
		}
	}

	threads := make([]entity.Thread, 0, len(top))
	for _, t := range top {
		replies := repliesByParent[t.ID]
		if replies == nil {
			replies = []entity.Comment{}
		}
		threads = append(threads, entity.Thread{Comment: t, Replies: replies})
	}

	return threads
}
