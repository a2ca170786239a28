package onboarding

import (
	"context"
	"fmt"
	"sync"
	"time"

	"instructorhub/pkg/types"
)

// In-memory collaborators for exercising the workflow without Postgres or S3.

type fakeOnboardingStore struct {
	mu    sync.Mutex
	seq   int
	items []*types.Onboarding

	lockCalls int
}

func newFakeOnboardingStore() *fakeOnboardingStore {
	return &fakeOnboardingStore{}
}

func (f *fakeOnboardingStore) Onboarding(_ context.Context, onboardingID string) (*types.Onboarding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.items {
		if o.ID == onboardingID {
			return o, nil
		}
	}
	return nil, types.ErrOnboardingNotFound
}

func (f *fakeOnboardingStore) LatestByUser(_ context.Context, userID string) (*types.Onboarding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.items) - 1; i >= 0; i-- {
		if f.items[i].UserID == userID {
			return f.items[i], nil
		}
	}
	return nil, types.ErrOnboardingNotFound
}

func (f *fakeOnboardingStore) LatestByUserInStatus(_ context.Context, userID string, statuses []types.OnboardingStatus) (*types.Onboarding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.items) - 1; i >= 0; i-- {
		o := f.items[i]
		if o.UserID != userID {
			continue
		}
		for _, status := range statuses {
			if o.Status == status {
				return o, nil
			}
		}
	}
	return nil, types.ErrOnboardingNotFound
}

func (f *fakeOnboardingStore) OnboardingsByStatus(_ context.Context, status types.OnboardingStatus) ([]*types.Onboarding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.Onboarding
	for _, o := range f.items {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOnboardingStore) AllOnboardings(_ context.Context) ([]*types.Onboarding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*types.Onboarding{}, f.items...), nil
}

func (f *fakeOnboardingStore) InReviewSummaries(_ context.Context) ([]*types.OnboardingSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.OnboardingSummary
	for _, o := range f.items {
		if o.Status != types.OnboardingStatusInReview {
			continue
		}
		out = append(out, &types.OnboardingSummary{
			ID:          o.ID,
			UserID:      o.UserID,
			FullName:    o.FullName,
			Status:      o.Status,
			SubmittedAt: o.SubmittedAt,
			CreatedAt:   o.CreatedAt,
		})
	}
	return out, nil
}

func (f *fakeOnboardingStore) CreateOnboarding(_ context.Context, onboarding *types.Onboarding) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	onboarding.ID = fmt.Sprintf("onb-%d", f.seq)
	onboarding.CreatedAt = time.Now()
	onboarding.UpdatedAt = onboarding.CreatedAt
	f.items = append(f.items, onboarding)
	return nil
}

func (f *fakeOnboardingStore) UpdateOnboarding(_ context.Context, onboarding *types.Onboarding) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, o := range f.items {
		if o.ID == onboarding.ID {
			onboarding.UpdatedAt = time.Now()
			f.items[i] = onboarding
			return nil
		}
	}
	return types.ErrOnboardingNotFound
}

func (f *fakeOnboardingStore) LockUser(_ context.Context, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lockCalls++
	return nil
}

type fakeDocumentStore struct {
	mu    sync.Mutex
	seq   int
	items []*types.Document
}

func newFakeDocumentStore() *fakeDocumentStore {
	return &fakeDocumentStore{}
}

func (f *fakeDocumentStore) Document(_ context.Context, documentID string) (*types.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.items {
		if d.ID == documentID {
			return d, nil
		}
	}
	return nil, types.ErrDocumentNotFound
}

func (f *fakeDocumentStore) DocumentsByOnboarding(_ context.Context, onboardingID string) ([]*types.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.Document
	for _, d := range f.items {
		if d.OnboardingID == onboardingID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDocumentStore) DocumentsByOnboardingAndPurpose(_ context.Context, onboardingID string, purpose types.DocumentPurpose) ([]*types.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.Document
	for _, d := range f.items {
		if d.OnboardingID == onboardingID && d.Purpose == purpose {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDocumentStore) CreateDocument(_ context.Context, doc *types.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	doc.ID = fmt.Sprintf("doc-%d", f.seq)
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = doc.CreatedAt
	f.items = append(f.items, doc)
	return nil
}

func (f *fakeDocumentStore) UpdateDocument(_ context.Context, doc *types.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, d := range f.items {
		if d.ID == doc.ID {
			doc.UpdatedAt = time.Now()
			f.items[i] = doc
			return nil
		}
	}
	return types.ErrDocumentNotFound
}

func (f *fakeDocumentStore) DeleteDocument(_ context.Context, documentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, d := range f.items {
		if d.ID == documentID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return types.ErrDocumentNotFound
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*types.User
}

func newFakeUserStore(users ...*types.User) *fakeUserStore {
	f := &fakeUserStore{users: map[string]*types.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserStore) User(_ context.Context, userID string) (*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil, types.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GrantRole(_ context.Context, userID string, role types.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return types.ErrUserNotFound
	}
	for _, have := range u.Roles {
		if have == role {
			return nil
		}
	}
	u.Roles = append(u.Roles, role)
	return nil
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string]types.ObjectInfo
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string]types.ObjectInfo{}}
}

func (f *fakeStorage) put(key string, sizeBytes int64, mimeType string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = types.ObjectInfo{SizeBytes: sizeBytes, MimeType: mimeType}
}

func (f *fakeStorage) PresignUpload(_ context.Context, key string) (*types.UploadTarget, error) {
	return &types.UploadTarget{
		URL:    "https://storage.test/" + key,
		Method: "PUT",
	}, nil
}

func (f *fakeStorage) StatObject(_ context.Context, key string) (*types.ObjectInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	info, ok := f.objects[key]
	if !ok {
		return nil, types.NewNotFound("object has not been uploaded")
	}
	return &info, nil
}

func (f *fakeStorage) PresignDownload(_ context.Context, key, _ string) (string, error) {
	return "https://storage.test/" + key + "?download", nil
}

type recordedEvent struct {
	event   Event
	userID  string
	payload map[string]string
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{}
}

func (f *fakeNotifier) Notify(_ context.Context, event Event, userID string, payload map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{event: event, userID: userID, payload: payload})
}

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
