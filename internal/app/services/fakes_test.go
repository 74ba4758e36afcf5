package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/conghanh/luanho/internal/app/models"
	"github.com/conghanh/luanho/internal/app/repositories"
	"github.com/conghanh/luanho/internal/pkg/apperrors"
)

// In-memory stand-ins for the pgx repositories. They mirror the repository
// semantics the services rely on, including the silent AddPoints no-op for
// uids without a users row.

type fakeUserStore struct {
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	clone := *user
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now()
	}
	f.users[user.UID] = &clone
	user.CreatedAt = clone.CreatedAt
	return nil
}

func (f *fakeUserStore) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	user, ok := f.users[uid]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) GetByProviderIdentity(ctx context.Context, provider models.AuthProvider, providerID string) (*models.User, error) {
	for _, user := range f.users {
		if user.Provider == provider && user.ProviderID != nil && *user.ProviderID == providerID {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) UpdateProfile(ctx context.Context, uid, displayName string) error {
	user, ok := f.users[uid]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.DisplayName = displayName
	return nil
}

func (f *fakeUserStore) UpdateAvatar(ctx context.Context, uid, photoURL string) error {
	user, ok := f.users[uid]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.PhotoURL = photoURL
	return nil
}

func (f *fakeUserStore) AddPoints(ctx context.Context, uid string, delta int) (int, error) {
	user, ok := f.users[uid]
	if !ok {
		return 0, nil
	}
	user.Points += delta
	return user.Points, nil
}

func (f *fakeUserStore) CountWithMorePoints(ctx context.Context, points int) (int, error) {
	count := 0
	for _, user := range f.users {
		if user.Points > points {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserStore) TopByPoints(ctx context.Context, limit int) ([]*models.User, error) {
	users := make([]*models.User, 0, len(f.users))
	for _, user := range f.users {
		clone := *user
		users = append(users, &clone)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Points != users[j].Points {
			return users[i].Points > users[j].Points
		}
		return users[i].UID < users[j].UID
	})
	if len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

type fakePostStore struct {
	posts []*models.Post
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{}
}

func (f *fakePostStore) find(id string) *models.Post {
	for _, post := range f.posts {
		if post.ID == id {
			return post
		}
	}
	return nil
}

func (f *fakePostStore) Create(ctx context.Context, post *models.Post) error {
	clone := *post
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now()
	}
	clone.LikedBy = append([]string{}, post.LikedBy...)
	f.posts = append(f.posts, &clone)
	post.CreatedAt = clone.CreatedAt
	return nil
}

func (f *fakePostStore) GetByID(ctx context.Context, id string) (*models.Post, error) {
	post := f.find(id)
	if post == nil {
		return nil, apperrors.ErrPostNotFound
	}
	clone := *post
	clone.LikedBy = append([]string{}, post.LikedBy...)
	return &clone, nil
}

func (f *fakePostStore) List(ctx context.Context, filter repositories.PostFilter) ([]*models.Post, error) {
	matched := make([]*models.Post, 0, len(f.posts))
	needle := strings.ToLower(filter.Search)
	for _, post := range f.posts {
		if filter.Category != "" && post.Category != filter.Category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(post.Title), needle) &&
			!strings.Contains(strings.ToLower(post.Content), needle) &&
			!strings.Contains(strings.ToLower(post.Author), needle) {
			continue
		}
		clone := *post
		clone.LikedBy = append([]string{}, post.LikedBy...)
		matched = append(matched, &clone)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if filter.Sort == models.SortTrending && matched[i].Likes != matched[j].Likes {
			return matched[i].Likes > matched[j].Likes
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (f *fakePostStore) ListByAuthor(ctx context.Context, authorUID string) ([]*models.Post, error) {
	matched := []*models.Post{}
	for _, post := range f.posts {
		if post.AuthorUID == authorUID {
			clone := *post
			matched = append(matched, &clone)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (f *fakePostStore) Delete(ctx context.Context, id string) error {
	for i, post := range f.posts {
		if post.ID == id {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrPostNotFound
}

func (f *fakePostStore) AddLike(ctx context.Context, postID, uid string) (int, error) {
	post := f.find(postID)
	if post == nil {
		return 0, apperrors.ErrPostNotFound
	}
	if post.LikedByUser(uid) {
		return 0, apperrors.ErrAlreadyLiked
	}
	post.Likes++
	post.LikedBy = append(post.LikedBy, uid)
	return post.Likes, nil
}

func (f *fakePostStore) RemoveLike(ctx context.Context, postID, uid string) (int, error) {
	post := f.find(postID)
	if post == nil {
		return 0, apperrors.ErrPostNotFound
	}
	if !post.LikedByUser(uid) {
		return 0, apperrors.ErrNotLiked
	}
	for i, member := range post.LikedBy {
		if member == uid {
			post.LikedBy = append(post.LikedBy[:i], post.LikedBy[i+1:]...)
			break
		}
	}
	post.Likes--
	return post.Likes, nil
}

func (f *fakePostStore) IncrementComments(ctx context.Context, postID string) (int, error) {
	post := f.find(postID)
	if post == nil {
		return 0, apperrors.ErrPostNotFound
	}
	post.Comments++
	return post.Comments, nil
}

func (f *fakePostStore) DistinctCategories(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	categories := []string{}
	for _, post := range f.posts {
		if !seen[post.Category] {
			seen[post.Category] = true
			categories = append(categories, post.Category)
		}
	}
	return categories, nil
}

type fakeCommentStore struct {
	comments []*models.Comment
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{}
}

func (f *fakeCommentStore) Create(ctx context.Context, comment *models.Comment) error {
	clone := *comment
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now()
	}
	f.comments = append(f.comments, &clone)
	comment.CreatedAt = clone.CreatedAt
	return nil
}

func (f *fakeCommentStore) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	for _, comment := range f.comments {
		if comment.ID == id {
			clone := *comment
			return &clone, nil
		}
	}
	return nil, apperrors.ErrCommentNotFound
}

func (f *fakeCommentStore) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	matched := []*models.Comment{}
	for _, comment := range f.comments {
		if comment.PostID == postID {
			clone := *comment
			matched = append(matched, &clone)
		}
	}
	return matched, nil
}

func (f *fakeCommentStore) ListByAuthor(ctx context.Context, authorUID string) ([]*models.Comment, error) {
	matched := []*models.Comment{}
	for _, comment := range f.comments {
		if comment.AuthorUID == authorUID {
			clone := *comment
			matched = append(matched, &clone)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

type fakeNotificationStore struct {
	notifications []*models.Notification
	read          map[string]bool
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{read: make(map[string]bool)}
}

func (f *fakeNotificationStore) Create(ctx context.Context, n *models.Notification) error {
	clone := *n
	f.notifications = append(f.notifications, &clone)
	return nil
}

func (f *fakeNotificationStore) MarkRead(ctx context.Context, id, toUID string) error {
	for _, n := range f.notifications {
		if n.ID == id && n.ToUID == toUID {
			n.Read = true
			f.read[id] = true
		}
	}
	return nil
}

type fakeCategoryStore struct {
	categories []*models.Category
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{}
}

func (f *fakeCategoryStore) Create(ctx context.Context, category *models.Category) error {
	for _, existing := range f.categories {
		if existing.Name == category.Name {
			return apperrors.ErrCategoryExists
		}
	}
	clone := *category
	clone.CreatedAt = time.Now()
	f.categories = append(f.categories, &clone)
	category.CreatedAt = clone.CreatedAt
	return nil
}

func (f *fakeCategoryStore) ListNames(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(f.categories))
	for _, category := range f.categories {
		names = append(names, category.Name)
	}
	return names, nil
}

type storedToken struct {
	userUID string
	expiry  time.Time
	revoked bool
}

type fakeTokenStore struct {
	tokens map[string]*storedToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*storedToken)}
}

func (f *fakeTokenStore) CreateToken(ctx context.Context, token, userUID string, expiryDate time.Time) error {
	f.tokens[token] = &storedToken{userUID: userUID, expiry: expiryDate}
	return nil
}

func (f *fakeTokenStore) GetTokenByValue(ctx context.Context, token string) (string, error) {
	stored, ok := f.tokens[token]
	if !ok {
		return "", apperrors.ErrTokenNotFound
	}
	if stored.revoked {
		return "", apperrors.ErrTokenRevoked
	}
	if time.Now().After(stored.expiry) {
		return "", apperrors.ErrTokenExpired
	}
	return stored.userUID, nil
}

func (f *fakeTokenStore) RevokeToken(ctx context.Context, token string) error {
	stored, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	stored.revoked = true
	return nil
}

func (f *fakeTokenStore) RevokeAllUserTokens(ctx context.Context, userUID string) error {
	for _, stored := range f.tokens {
		if stored.userUID == userUID {
			stored.revoked = true
		}
	}
	return nil
}

// fakeTxRunner runs the function directly; failWith aborts before it runs.
type fakeTxRunner struct {
	failWith error
	calls    int
}

func (f *fakeTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if f.failWith != nil {
		return f.failWith
	}
	return fn(ctx)
}

type publishedEvent struct {
	Topic   string
	Type    string
	Payload interface{}
}

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	events []publishedEvent
}

func (r *recordingPublisher) Publish(topic, eventType string, payload interface{}) {
	r.events = append(r.events, publishedEvent{Topic: topic, Type: eventType, Payload: payload})
}

func (r *recordingPublisher) topics() []string {
	topics := make([]string, 0, len(r.events))
	for _, event := range r.events {
		topics = append(topics, event.Topic)
	}
	return topics
}
