package application

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/clubware/server/internal/domain/entity"
	"github.com/clubware/server/internal/domain/repository"
	"github.com/clubware/server/pkg/helpers"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// fakeUserRepo is an in-memory repository.UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User // keyed by id
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return fmt.Errorf("duplicate email %s", u.Email)
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return secureCopy(u), nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return secureCopy(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByEmailUnsecure(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetBySecret(_ context.Context, secret string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if secret == "" {
		return nil, repository.ErrNotFound
	}
	for _, u := range r.users {
		if u.Secret == secret {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) Exists(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) GetAll(_ context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, secureCopy(u))
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateByID(_ context.Context, id string, name string, perms []entity.Permission) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if name != "" {
		u.Name = name
	}
	u.Permissions = append([]entity.Permission(nil), perms...)
	return secureCopy(u), nil
}

func secureCopy(u *entity.User) *entity.User {
	cp := *u
	cp.Password = ""
	cp.Secret = ""
	cp.Permissions = append([]entity.Permission(nil), u.Permissions...)
	return &cp
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

// fakeEventRepo is an in-memory repository.EventRepository.
type fakeEventRepo struct {
	mu     sync.Mutex
	events map[string]*entity.ClubEvent
}

func newFakeEventRepo(events ...*entity.ClubEvent) *fakeEventRepo {
	r := &fakeEventRepo{events: make(map[string]*entity.ClubEvent)}
	for _, ev := range events {
		r.events[ev.ID] = ev
	}
	return r
}

func (r *fakeEventRepo) Create(_ context.Context, ev *entity.ClubEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *ev
	r.events[ev.ID] = &cp
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id string) (*entity.ClubEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev, ok := r.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *ev
	return &cp, nil
}

func (r *fakeEventRepo) GetAll(_ context.Context) ([]*entity.ClubEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.ClubEvent, 0, len(r.events))
	for _, ev := range r.events {
		cp := *ev
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeEventRepo) Update(_ context.Context, ev *entity.ClubEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[ev.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *ev
	r.events[ev.ID] = &cp
	return nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id string) (*entity.ClubEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev, ok := r.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.events, id)
	return ev, nil
}

var _ repository.EventRepository = (*fakeEventRepo)(nil)

// fakeImageStore counts uploads and deletes, returning a synthetic
// public URL per upload.
type fakeImageStore struct {
	mu       sync.Mutex
	uploads  int
	deletes  []string
	failPut  error
	failDel  error
	lastURL  string
	uploaded []string
}

func (s *fakeImageStore) Upload(_ context.Context, key, _ string, _ []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failPut != nil {
		return "", s.failPut
	}
	s.uploads++
	s.lastURL = "https://storage.googleapis.com/test-bucket/" + key
	s.uploaded = append(s.uploaded, s.lastURL)
	return s.lastURL, nil
}

func (s *fakeImageStore) Delete(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDel != nil {
		return s.failDel
	}
	s.deletes = append(s.deletes, url)
	return nil
}

var _ ImageStore = (*fakeImageStore)(nil)

// fakeTokenStore keeps one live token per email, in memory.
type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[string]string
	issued int
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]string)}
}

func (s *fakeTokenStore) Issue(_ context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tok, err := helpers.GenToken(16)
	if err != nil {
		return "", err
	}
	s.tokens[email] = tok
	s.issued++
	return tok, nil
}

func (s *fakeTokenStore) Validate(_ context.Context, email, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	live, ok := s.tokens[email]
	return ok && token != "" && live == token, nil
}

func (s *fakeTokenStore) Consume(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, email)
	return nil
}

var _ TokenStore = (*fakeTokenStore)(nil)

// fakeQueue records published email jobs.
type fakeQueue struct {
	mu   sync.Mutex
	jobs []any
	fail error
}

func (q *fakeQueue) PublishJSON(_ context.Context, body any) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.fail != nil {
		return q.fail
	}
	q.jobs = append(q.jobs, body)
	return nil
}

var _ EmailQueue = (*fakeQueue)(nil)
