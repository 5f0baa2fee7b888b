package usecase

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"vitrina/internal/domain/entity"
	"vitrina/internal/domain/service"
	"vitrina/pkg/errors"
)

type fakeListingRepo struct {
	mu       sync.Mutex
	listings map[string]*entity.Listing
	order    []string
	nextID   int

	failIncrementLikes bool
	likeDeltas         map[string][]int
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{
		listings:   make(map[string]*entity.Listing),
		likeDeltas: make(map[string][]int),
	}
}

func (r *fakeListingRepo) Create(ctx context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if listing.ID == "" {
		r.nextID++
		listing.ID = fmt.Sprintf("lst-%d", r.nextID)
	}
	now := time.Now()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	stored := *listing
	r.listings[listing.ID] = &stored
	r.order = append(r.order, listing.ID)
	return nil
}

func (r *fakeListingRepo) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing, ok := r.listings[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	copied := *listing
	return &copied, nil
}

func (r *fakeListingRepo) Update(ctx context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.listings[listing.ID]
	if !ok {
		return errors.NotFound("Listing", nil)
	}

	updated := *listing
	updated.CreatedAt = stored.CreatedAt
	updated.LikesCount = stored.LikesCount
	updated.CommentsCount = stored.CommentsCount
	updated.Views = stored.Views
	updated.UpdatedAt = time.Now()
	r.listings[listing.ID] = &updated
	return nil
}

func (r *fakeListingRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.listings, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeListingRepo) List(ctx context.Context) ([]*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*entity.Listing, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		copied := *r.listings[r.order[i]]
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeListingRepo) IncrementLikes(ctx context.Context, id string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failIncrementLikes {
		return errors.WriteFailed("counter write refused", nil)
	}
	listing, ok := r.listings[id]
	if !ok {
		return errors.NotFound("Listing", nil)
	}
	listing.LikesCount += int64(delta)
	r.likeDeltas[id] = append(r.likeDeltas[id], delta)
	return nil
}

func (r *fakeListingRepo) IncrementViews(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if listing, ok := r.listings[id]; ok {
		listing.Views++
	}
	return nil
}

func (r *fakeListingRepo) Watch(ctx context.Context) (<-chan []*entity.Listing, error) {
	ch := make(chan []*entity.Listing, 1)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

type fakeLikeRepo struct {
	mu    sync.Mutex
	likes map[string]map[string]struct{}
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: make(map[string]map[string]struct{})}
}

func (r *fakeLikeRepo) Set(ctx context.Context, userID, listingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.likes[userID] == nil {
		r.likes[userID] = make(map[string]struct{})
	}
	r.likes[userID][listingID] = struct{}{}
	return nil
}

func (r *fakeLikeRepo) Delete(ctx context.Context, userID, listingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.likes[userID], listingID)
	return nil
}

func (r *fakeLikeRepo) Exists(ctx context.Context, userID, listingID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.likes[userID][listingID]
	return ok, nil
}

func (r *fakeLikeRepo) ListIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]struct{}, len(r.likes[userID]))
	for id := range r.likes[userID] {
		out[id] = struct{}{}
	}
	return out, nil
}

func (r *fakeLikeRepo) Watch(ctx context.Context, userID string) (<-chan map[string]struct{}, error) {
	ch := make(chan map[string]struct{}, 1)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, errors.ProfileMissing(nil)
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) UpdateIdentityFields(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[user.ID]
	if !ok {
		return errors.ProfileMissing(nil)
	}
	stored.Email = user.Email
	stored.DisplayName = user.DisplayName
	stored.PhotoURL = user.PhotoURL
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) UpdateRole(ctx context.Context, id, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[id]
	if !ok {
		return errors.ProfileMissing(nil)
	}
	stored.Role = role
	return nil
}

type fakeUsernameRepo struct {
	mu       sync.Mutex
	userRepo *fakeUserRepo
	reserved map[string]string
}

func newFakeUsernameRepo(userRepo *fakeUserRepo) *fakeUsernameRepo {
	return &fakeUsernameRepo{
		userRepo: userRepo,
		reserved: make(map[string]string),
	}
}

func (r *fakeUsernameRepo) Reserve(ctx context.Context, handle, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.reserved[handle]; taken {
		return errors.HandleTaken()
	}

	r.userRepo.mu.Lock()
	user, ok := r.userRepo.users[userID]
	if !ok {
		r.userRepo.mu.Unlock()
		return errors.ProfileMissing(nil)
	}
	user.Username = handle
	r.userRepo.mu.Unlock()

	r.reserved[handle] = userID
	return nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[string][]entity.Comment
	nextID   int
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string][]entity.Comment)}
}

func (r *fakeCommentRepo) Create(ctx context.Context, listingID string, comment *entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	comment.ID = fmt.Sprintf("cmt-%d", r.nextID)
	comment.CreatedAt = time.Now()
	r.comments[listingID] = append(r.comments[listingID], *comment)
	return nil
}

func (r *fakeCommentRepo) ListByListing(ctx context.Context, listingID string) ([]entity.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]entity.Comment, len(r.comments[listingID]))
	copy(out, r.comments[listingID])
	return out, nil
}

func (r *fakeCommentRepo) Watch(ctx context.Context, listingID string) (<-chan []entity.Comment, error) {
	ch := make(chan []entity.Comment, 1)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

type fakeMedia struct {
	mu      sync.Mutex
	uploads int
	fail    bool
}

func (m *fakeMedia) Upload(ctx context.Context, file io.Reader, contentType string, kind service.MediaKind, folder string) (*service.UploadResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail {
		return nil, fmt.Errorf("bucket unavailable")
	}

	m.uploads++
	objectName := fmt.Sprintf("%s/%s-%d", folder, kind, m.uploads)
	return &service.UploadResult{
		URL:        "https://cdn.test/" + objectName,
		ObjectName: objectName,
	}, nil
}

func (m *fakeMedia) Delete(ctx context.Context, fileURL string) error {
	return nil
}

func (m *fakeMedia) Close() error {
	return nil
}

type fakeAuthClient struct {
	mu          sync.Mutex
	nextUID     int
	identities  map[string]*entity.Identity
	adminClaims map[string]bool
	tokens      map[string]string
}

func newFakeAuthClient() *fakeAuthClient {
	return &fakeAuthClient{
		identities:  make(map[string]*entity.Identity),
		adminClaims: make(map[string]bool),
		tokens:      make(map[string]string),
	}
}

func (f *fakeAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextUID++
	uid := fmt.Sprintf("uid-%d", f.nextUID)
	f.identities[uid] = &entity.Identity{UID: uid, Email: email, DisplayName: displayName}
	f.tokens["token-"+uid] = uid
	return uid, nil
}

func (f *fakeAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	uid, ok := f.tokens[token]
	if !ok {
		return "", fmt.Errorf("unknown token")
	}
	return uid, nil
}

func (f *fakeAuthClient) GetIdentity(ctx context.Context, uid string) (*entity.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	identity, ok := f.identities[uid]
	if !ok {
		return nil, fmt.Errorf("unknown uid %s", uid)
	}
	copied := *identity
	return &copied, nil
}

func (f *fakeAuthClient) SetAdminClaim(ctx context.Context, uid string, admin bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.adminClaims[uid] = admin
	return nil
}

func (f *fakeAuthClient) SignInWithEmailPassword(email, password string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for uid, identity := range f.identities {
		if identity.Email == email {
			return "token-" + uid, nil
		}
	}
	return "", fmt.Errorf("invalid credentials")
}
